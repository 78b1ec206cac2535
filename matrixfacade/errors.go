// errors.go - editor-placement errors surfaced from the matrix façade (§7).
//
// Copyright (c) 2026 The HexoDSP-core Authors
// License: GPLv3 or later
package matrixfacade

import "fmt"

// NonEmptyCellError is returned by Place when the target cell already holds
// a node.
type NonEmptyCellError struct{ Cell Cell }

func (e *NonEmptyCellError) Error() string {
	return fmt.Sprintf("matrixfacade: cell (%d,%d) is not empty", e.Cell.X, e.Cell.Y)
}

// PosOutOfRangeError is returned when a cell coordinate falls outside the
// matrix's configured bounds.
type PosOutOfRangeError struct{ Cell Cell }

func (e *PosOutOfRangeError) Error() string {
	return fmt.Sprintf("matrixfacade: position (%d,%d) out of range", e.Cell.X, e.Cell.Y)
}
