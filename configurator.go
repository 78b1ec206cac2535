// configurator.go - NodeConfigurator: the frontend-thread API (§4.2, §6).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later

package hexodsp

import (
	"github.com/hexodsp/hexodsp/triplebuf"
)

// ParamDest addresses one node's input port as a connection destination.
type ParamDest struct {
	Node  NodeId
	Input int
}

// ParamSrc addresses one node's output port as a connection source.
type ParamSrc struct {
	Node   NodeId
	Output int
}

// NodeInstance is everything the configurator tracks for one allocated
// node, on the frontend side only; the audio-thread Node itself is created
// fresh by AddProgNode every time a Program is built.
type NodeInstance struct {
	Id    NodeId
	Entry RegistryEntry
	hole  bool // placeholder filling a skipped instance number, §4.2

	paramTargets []float32   // len(Entry.Inputs); latest set_param value
	modamts      []*float32  // len(Entry.Inputs); nil == unset
	atomTargets  []SAtom     // len(Entry.Atoms)
}

// nodeRange is the per-instance index-range assignment computed by
// RebuildNodePorts (§4.1 step 3).
type nodeRange struct {
	outStart, outEnd int
	inStart, inEnd   int
	atStart, atEnd   int
	modStart         int   // base of this node's modulator slots
	inputModSlot     []int // per input port: local mod slot, or -1
	connIn, connOut  []bool
}

// NodeConfigurator owns node allocation, the param/atom/modamt stores, and
// Program construction. It lives entirely on the frontend thread; every
// mutation either writes frontend-only bookkeeping or sends a Command down
// the command ring for the executor to apply no later than its next block
// (§5).
type NodeConfigurator struct {
	cmdRing  *CommandRing
	dropRing *DropRing
	feedback *FeedbackStore
	sr       float32
	observer Observer

	instances map[NodeId]*NodeInstance
	order     []NodeId // allocation order, dense (holes included)
	kindMax   map[string]int

	ranges    map[NodeId]nodeRange
	totalOut  int
	totalIn   int
	totalAt   int
	totalMods int

	paramGlobalIdx map[ParamId]int
	atomGlobalIdx  map[ParamId]int

	active       *Program
	activeLeds   map[NodeId]*NodeLEDs
	fbReaderByProg map[*Program]*triplebuf.Reader[[]float32]
	activeFbReader *triplebuf.Reader[[]float32]
	lastFeedback   []float32

	monitorProc *MonitorProcessor
	filters     *feedbackFilter

	generation uint64 // bumps on every graph-affecting mutation (§4.7)
}

// NewNodeConfigurator wires a fresh configurator to the given transport.
// observer may be nil, in which case a NopObserver is used.
func NewNodeConfigurator(cmdRing *CommandRing, dropRing *DropRing, feedback *FeedbackStore, sr float32, observer Observer) *NodeConfigurator {
	if observer == nil {
		observer = NopObserver{}
	}
	return &NodeConfigurator{
		cmdRing:        cmdRing,
		dropRing:       dropRing,
		feedback:       feedback,
		sr:             sr,
		observer:       observer,
		instances:      map[NodeId]*NodeInstance{},
		kindMax:        map[string]int{},
		ranges:         map[NodeId]nodeRange{},
		paramGlobalIdx: map[ParamId]int{},
		atomGlobalIdx:  map[ParamId]int{},
		fbReaderByProg: map[*Program]*triplebuf.Reader[[]float32]{},
		activeLeds:     map[NodeId]*NodeLEDs{},
		monitorProc:    NewMonitorProcessor(),
		filters:        newFeedbackFilter(),
	}
}

// CreateNode allocates id if not already present, filling any skipped
// instance numbers of the same kind with inert hole placeholders so index
// ranges stay dense (§4.2). Idempotent: calling it again for an existing id
// returns the same index and does not perturb state (§8).
func (c *NodeConfigurator) CreateNode(id NodeId) (int, error) {
	existing, exists := c.instances[id]
	if exists && !existing.hole {
		return c.indexOf(id), nil
	}
	entry, err := lookupNode(id.Kind)
	if err != nil {
		return -1, err
	}

	max, seen := c.kindMax[id.Kind]
	if !seen {
		max = -1
	}
	for i := max + 1; i < id.Instance; i++ {
		holeId := NewNodeId(id.Kind, i)
		if _, ok := c.instances[holeId]; !ok {
			c.instances[holeId] = &NodeInstance{Id: holeId, Entry: entry, hole: true}
			c.order = append(c.order, holeId)
		}
	}
	if id.Instance > max {
		c.kindMax[id.Kind] = id.Instance
	}

	inst := &NodeInstance{
		Id:           id,
		Entry:        entry,
		paramTargets: make([]float32, len(entry.Inputs)),
		modamts:      make([]*float32, len(entry.Inputs)),
		atomTargets:  make([]SAtom, len(entry.Atoms)),
	}
	for i, p := range entry.Inputs {
		inst.paramTargets[i] = p.Default
	}
	for i, a := range entry.Atoms {
		inst.atomTargets[i] = DefaultAtomFor(a.AtomKind)
	}
	c.instances[id] = inst
	if !exists {
		c.order = append(c.order, id)
	}

	c.generation++
	c.observer.UpdateProp(id)
	return c.indexOf(id), nil
}

func (c *NodeConfigurator) indexOf(id NodeId) int {
	for i, v := range c.order {
		if v == id {
			return i
		}
	}
	return -1
}

func (c *NodeConfigurator) paramPort(id ParamId) (*NodeInstance, PortInfo, error) {
	inst, ok := c.instances[id.Node]
	if !ok {
		return nil, PortInfo{}, &UnknownNodeError{Name: id.Node.Kind}
	}
	ports := inst.Entry.Inputs
	if id.IsAtom {
		ports = inst.Entry.Atoms
	}
	if id.Port < 0 || id.Port >= len(ports) {
		return nil, PortInfo{}, &UnknownParamIdError{Node: id.Node, Param: id.Name()}
	}
	return inst, ports[id.Port], nil
}

// SetParam stores the latest value for id and, if a Program is active and
// id resolves to a live global slot, ships a ParamUpdate/AtomUpdate down
// the command ring (§4.2). An AudioSampleAtom naming a path with no payload
// yet triggers an out-of-thread load; load failures are reported through
// errq rather than by dropping the command (wired by persistence.Loader,
// §4.9).
func (c *NodeConfigurator) SetParam(id ParamId, v SAtom) error {
	inst, port, err := c.paramPort(id)
	if err != nil {
		return err
	}
	// The global-index maps are keyed by the port's registered name, so
	// callers addressing a port by index alone still resolve.
	key := NewParamId(id.Node, id.Port, port.Name, id.IsAtom)

	if id.IsAtom {
		inst.atomTargets[id.Port] = v
		if c.active != nil {
			if gi, ok := c.atomGlobalIdx[key]; ok {
				old := c.active.atoms[gi]
				c.active.atoms[gi] = v
				c.cmdRing.Push(Command{Kind: CmdAtomUpdate, AtomIdx: gi, Atom: v})
				if c.dropRing != nil && old != nil {
					c.dropRing.Push(Droppable{Atom: old})
				}
			}
		}
	} else {
		f, ok := v.(ParamAtom)
		if !ok {
			return &InvalidAtomError{Tag: "param"}
		}
		inst.paramTargets[id.Port] = f.Value
		if c.active != nil {
			if gi, ok := c.paramGlobalIdx[key]; ok {
				c.cmdRing.Push(Command{Kind: CmdParamUpdate, InputIdx: gi, Value: f.Value})
			}
		}
	}

	c.observer.UpdateParam(id)
	return nil
}

// SetParamModamt sets or clears the modulation amount for id. If a modamt
// already existed, the amount is written in place and false (no rebuild
// needed) is returned. A nil<->non-nil transition changes the static
// modulator-slot count for the owning Program, so it returns true: the
// caller must RebuildNodePorts and re-upload (§4.2, §6).
func (c *NodeConfigurator) SetParamModamt(id ParamId, amount *float32) (bool, error) {
	inst, _, err := c.paramPort(id)
	if err != nil {
		return false, err
	}
	if id.IsAtom {
		return false, &UnknownParamIdError{Node: id.Node, Param: id.Name()}
	}

	had := inst.modamts[id.Port] != nil
	has := amount != nil
	if had && has {
		*inst.modamts[id.Port] = *amount
		if c.active != nil {
			if mi, ok := c.modSlotGlobal(id); ok {
				c.cmdRing.Push(Command{Kind: CmdModamtUpdate, ModIdx: mi, Amount: *amount})
			}
		}
		c.observer.UpdateParam(id)
		return false, nil
	}

	if has {
		cp := *amount
		inst.modamts[id.Port] = &cp
	} else {
		inst.modamts[id.Port] = nil
	}
	c.generation++
	c.observer.UpdateParam(id)
	return had != has, nil
}

func (c *NodeConfigurator) modSlotGlobal(id ParamId) (int, bool) {
	r, ok := c.ranges[id.Node]
	if !ok || id.Port >= len(r.inputModSlot) {
		return 0, false
	}
	local := r.inputModSlot[id.Port]
	if local < 0 {
		return 0, false
	}
	return r.modStart + local, true
}

// RebuildNodePorts recomputes every global index range from topoOrder and
// edges (normally produced by CompileTopology) and returns a fresh, empty
// Program sized to fit. Must be called before AddProgNode,
// SetProgNodeExecConnection, or UploadProg (§4.2).
func (c *NodeConfigurator) RebuildNodePorts(topoOrder []NodeId, edges []GraphEdge) (*Program, error) {
	c.ranges = make(map[NodeId]nodeRange, len(topoOrder))

	connIn := make(map[NodeId][]bool, len(topoOrder))
	connOut := make(map[NodeId][]bool, len(topoOrder))
	for _, id := range topoOrder {
		inst := c.instances[id]
		connIn[id] = make([]bool, len(inst.Entry.Inputs))
		connOut[id] = make([]bool, len(inst.Entry.Outputs))
	}
	for _, e := range edges {
		if ci, ok := connIn[e.ToNode]; ok && e.ToPort < len(ci) {
			ci[e.ToPort] = true
		}
		if co, ok := connOut[e.FromNode]; ok && e.FromPort < len(co) {
			co[e.FromPort] = true
		}
	}

	outCur, inCur, atCur, modCur := 0, 0, 0, 0
	for _, id := range topoOrder {
		inst, ok := c.instances[id]
		if !ok || inst.hole {
			return nil, &UnknownNodeError{Name: id.Kind}
		}
		nIn := len(inst.Entry.Inputs)
		nOut := len(inst.Entry.Outputs)
		nAt := len(inst.Entry.Atoms)

		slots := make([]int, nIn)
		base := modCur
		for i, m := range inst.modamts {
			if m != nil {
				slots[i] = modCur - base
				modCur++
			} else {
				slots[i] = -1
			}
		}

		r := nodeRange{
			outStart: outCur, outEnd: outCur + nOut,
			inStart: inCur, inEnd: inCur + nIn,
			atStart: atCur, atEnd: atCur + nAt,
			modStart:     base,
			inputModSlot: slots,
			connIn:       connIn[id],
			connOut:      connOut[id],
		}
		c.ranges[id] = r

		for i := range inst.Entry.Inputs {
			c.paramGlobalIdx[NewParamId(id, i, inst.Entry.Inputs[i].Name, false)] = inCur + i
		}
		for i := range inst.Entry.Atoms {
			c.atomGlobalIdx[NewParamId(id, i, inst.Entry.Atoms[i].Name, true)] = atCur + i
		}

		outCur += nOut
		inCur += nIn
		atCur += nAt
	}

	c.totalOut, c.totalIn, c.totalAt, c.totalMods = outCur, inCur, atCur, modCur
	prog := newProgram(outCur, inCur, atCur, modCur)

	tb := triplebuf.New[[]float32]()
	prog.outFeedback = tb.Writer()
	c.fbReaderByProg[prog] = tb.Reader()

	c.generation++
	return prog, nil
}

// AddProgNode instantiates a fresh Node for id (via the registry factory)
// and appends its NodeOp to prog, using the ranges computed by the most
// recent RebuildNodePorts. Must be called once per node, in the topological
// order RebuildNodePorts was given (§4.1 step 4, §6).
func (c *NodeConfigurator) AddProgNode(prog *Program, id NodeId) error {
	inst, ok := c.instances[id]
	if !ok {
		return &UnknownNodeError{Name: id.Kind}
	}
	r, ok := c.ranges[id]
	if !ok {
		return &UnknownNodeError{Name: id.Kind}
	}

	node := inst.Entry.New()
	if aware, ok := node.(NodeIdentityAware); ok {
		aware.SetNodeId(id)
	}
	node.SetSampleRate(c.sr)
	node.Reset()
	leds := &NodeLEDs{}

	nodeIdx := len(prog.nodes)
	prog.nodes = append(prog.nodes, node)
	prog.leds = append(prog.leds, leds)
	prog.prog = append(prog.prog, NodeOp{
		NodeIdx:  nodeIdx,
		Id:       id,
		OutStart: r.outStart, OutEnd: r.outEnd,
		InStart: r.inStart, InEnd: r.inEnd,
		AtStart: r.atStart, AtEnd: r.atEnd,
		ModStart: r.modStart, ModEnd: r.modStart + modCount(r.inputModSlot),
		ctx: NodeContext{InputConnected: r.connIn, OutputConnected: r.connOut},
	})

	c.activeLeds[id] = leds
	return nil
}

func modCount(slots []int) int {
	n := 0
	for _, s := range slots {
		if s >= 0 {
			n++
		}
	}
	return n
}

// SetProgNodeExecConnection resolves one edge against the ranges computed
// by RebuildNodePorts and appends it to dst's NodeOp (§4.1 step 4). If dst
// has a stored modamt, the edge is routed through that ModOp slot.
func (c *NodeConfigurator) SetProgNodeExecConnection(prog *Program, dst ParamDest, src ParamSrc) error {
	dstR, ok := c.ranges[dst.Node]
	if !ok {
		return &UnknownNodeError{Name: dst.Node.Kind}
	}
	srcR, ok := c.ranges[src.Node]
	if !ok {
		return &UnknownNodeError{Name: src.Node.Kind}
	}

	modGlobal := -1
	if dst.Input < len(dstR.inputModSlot) && dstR.inputModSlot[dst.Input] >= 0 {
		modGlobal = dstR.modStart + dstR.inputModSlot[dst.Input]
	}

	for i := range prog.prog {
		if prog.prog[i].Id == dst.Node {
			prog.prog[i].Inputs = append(prog.prog[i].Inputs, Edge{
				SrcOutGlobal: srcR.outStart + src.Output,
				DstInLocal:   dst.Input,
				ModOpGlobal:  modGlobal,
			})
			return nil
		}
	}
	return &UnknownNodeError{Name: dst.Node.Kind}
}

// UploadProg copies every instance's current param/modamt/atom targets into
// prog's flat arrays, detaches the previously active Program's
// triple-buffer consumer in favor of prog's, and ships NewProg down the
// command ring (§4.2 upload_prog).
func (c *NodeConfigurator) UploadProg(prog *Program, copyOldOut bool) error {
	for id, r := range c.ranges {
		inst := c.instances[id]
		if inst == nil || inst.hole {
			continue
		}
		for i, v := range inst.paramTargets {
			prog.params[r.inStart+i] = v
		}
		for i, a := range inst.atomTargets {
			if a != nil {
				prog.atoms[r.atStart+i] = a
			}
		}
		for i, m := range inst.modamts {
			if m != nil && dstInputModSlotValid(r, i) {
				prog.modops[r.modStart+r.inputModSlot[i]].SetAmount(*m)
			}
		}
	}

	c.active = prog
	c.activeFbReader = c.fbReaderByProg[prog]
	delete(c.fbReaderByProg, prog)

	c.cmdRing.Push(Command{Kind: CmdNewProg, Prog: prog, CopyOldOut: copyOldOut})

	c.observer.UpdateMatrix()
	return nil
}

func dstInputModSlotValid(r nodeRange, i int) bool {
	return i < len(r.inputModSlot) && r.inputModSlot[i] >= 0
}

// Monitor requests up to three input and three output local ports of id be
// fed into the six fixed monitor slots; unused slots are UnusedMonitorIdx
// (§4.6).
func (c *NodeConfigurator) Monitor(id NodeId, inputs, outputs []int) error {
	r, ok := c.ranges[id]
	if !ok {
		return &UnknownNodeError{Name: id.Kind}
	}
	var bufs [6]int
	for i := range bufs {
		bufs[i] = UnusedMonitorIdx
	}
	for i := 0; i < len(inputs) && i < 3; i++ {
		bufs[i] = r.inStart + inputs[i]
	}
	for i := 0; i < len(outputs) && i < 3; i++ {
		bufs[3+i] = r.outStart + outputs[i]
	}
	c.cmdRing.Push(Command{Kind: CmdSetMonitor, MonitorBufs: bufs})
	c.observer.UpdateMonitor()
	return nil
}

// UpdateOutputFeedback performs one non-blocking read of the active
// Program's output-feedback triple buffer (§4.7). Safe to call at any
// frontend refresh rate; if nothing new has been published since the last
// call it keeps the previous snapshot.
func (c *NodeConfigurator) UpdateOutputFeedback() {
	if c.activeFbReader == nil {
		return
	}
	if v, ok := c.activeFbReader.TryRead(); ok {
		c.lastFeedback = v
	}
}

// OutFbFor returns the last-published sample of id's outputIdx-th global
// output, or 0 if unavailable.
func (c *NodeConfigurator) OutFbFor(id NodeId, outputIdx int) float32 {
	r, ok := c.ranges[id]
	if !ok {
		return 0
	}
	gi := r.outStart + outputIdx
	if gi < 0 || gi >= len(c.lastFeedback) {
		return 0
	}
	return c.lastFeedback[gi]
}

// LedValueFor and PhaseValueFor read the two atomic telemetry scalars the
// currently active Program's node for id publishes every block.
func (c *NodeConfigurator) LedValueFor(id NodeId) float32 {
	if l, ok := c.activeLeds[id]; ok {
		return l.LED()
	}
	return 0
}

func (c *NodeConfigurator) PhaseValueFor(id NodeId) float32 {
	if l, ok := c.activeLeds[id]; ok {
		return l.Phase()
	}
	return 0
}

// UpdateFilters refreshes the output-feedback snapshot and flips the
// shared VisualFilter recalc gate, so the next FilteredLedFor/
// FilteredOutFbFor call for every tracked id recomputes its smoothed
// peaks exactly once (§4.7). Call this once per UI refresh tick, before
// reading any filtered value for that tick.
func (c *NodeConfigurator) UpdateFilters() {
	c.UpdateOutputFeedback()
	c.filters.triggerRecalc()
}

// FilteredLedFor returns the (negative, positive) smoothed peak pair of
// id's LED value over VisualFilter's sampling window. Call UpdateFilters
// once per tick before reading this so the window actually advances.
func (c *NodeConfigurator) FilteredLedFor(id NodeId) (float32, float32) {
	return c.filters.getLed(id, c.LedValueFor(id))
}

// FilteredOutFbFor returns the (negative, positive) smoothed peak pair of
// id's outputIdx-th global output over VisualFilter's sampling window.
func (c *NodeConfigurator) FilteredOutFbFor(id NodeId, outputIdx int) (float32, float32) {
	return c.filters.getOut(id, outputIdx, c.OutFbFor(id, outputIdx))
}

// GetMinMaxMonitorSamples returns the windowed min/max stream for one of
// the six monitor slots.
func (c *NodeConfigurator) GetMinMaxMonitorSamples(slot int) MinMaxMonitorSamples {
	return c.monitorProc.Samples(slot)
}

// Generation returns the mutation counter frontend caches key off of (§4.7).
func (c *NodeConfigurator) Generation() uint64 { return c.generation }

// SetSampleRate records a host sample-rate change: new Programs built after
// this call use sr. Existing shared feedback lines are resized by
// NodeExecutor.SetSampleRate, not here (§4.4 "Sample-rate changes propagate").
func (c *NodeConfigurator) SetSampleRate(sr float32) { c.sr = sr }

// FeedbackStore exposes the configurator's shared feedback-line store. No
// line is allocated at rebuild time: FbWr/FbRd create their per-instance
// ring through FeedbackStore.Line on their first Process call (§4.8).
func (c *NodeConfigurator) FeedbackStore() *FeedbackStore { return c.feedback }

// ParamSnapshot is one (node, param) pair's current frontend-side value,
// as handed to the persistence layer by Snapshot.
type ParamSnapshot struct {
	Node   NodeId
	Name   string
	Value  float32
	Modamt *float32
}

// AtomSnapshot is one (node, atom) pair's current frontend-side value.
type AtomSnapshot struct {
	Node  NodeId
	Name  string
	Value SAtom
}

// Snapshot returns every live (non-hole) node instance plus its current
// param, modamt, and atom values, in allocation order - exactly the shape
// the persistence package's save path serializes (§6).
func (c *NodeConfigurator) Snapshot() (nodes []NodeId, params []ParamSnapshot, atoms []AtomSnapshot) {
	for _, id := range c.order {
		inst := c.instances[id]
		if inst == nil || inst.hole {
			continue
		}
		nodes = append(nodes, id)
		for i, v := range inst.paramTargets {
			var m *float32
			if inst.modamts[i] != nil {
				cp := *inst.modamts[i]
				m = &cp
			}
			params = append(params, ParamSnapshot{Node: id, Name: inst.Entry.Inputs[i].Name, Value: v, Modamt: m})
		}
		for i, a := range inst.atomTargets {
			atoms = append(atoms, AtomSnapshot{Node: id, Name: inst.Entry.Atoms[i].Name, Value: a})
		}
	}
	return
}

// ParamPortIndex resolves a node's input port name to its index, used by
// the persistence load path to turn a stored param_name back into a
// ParamId without the persistence package knowing about RegistryEntry
// layout.
func (c *NodeConfigurator) ParamPortIndex(node NodeId, name string) (int, bool) {
	inst, ok := c.instances[node]
	if !ok {
		return 0, false
	}
	for i, p := range inst.Entry.Inputs {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}

// AtomPortIndex is ParamPortIndex's atom-slot equivalent.
func (c *NodeConfigurator) AtomPortIndex(node NodeId, name string) (int, bool) {
	inst, ok := c.instances[node]
	if !ok {
		return 0, false
	}
	for i, p := range inst.Entry.Atoms {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}

// PortInfoFor returns the PortInfo for node's input port index, used by the
// persistence layer to normalize/denormalize version-1-vs-2 values.
func (c *NodeConfigurator) PortInfoFor(node NodeId, port int) (PortInfo, bool) {
	inst, ok := c.instances[node]
	if !ok || port < 0 || port >= len(inst.Entry.Inputs) {
		return PortInfo{}, false
	}
	return inst.Entry.Inputs[port], true
}
