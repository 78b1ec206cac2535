package ringbuffer

import "testing"

func TestRingRoundTrip(t *testing.T) {
	r := New[int](4)
	for i := 0; i < 4; i++ {
		if !r.Push(i) {
			t.Fatalf("Push(%d) failed, ring should not be full yet", i)
		}
	}
	if r.Push(99) {
		t.Fatal("Push succeeded on a full ring")
	}
	for i := 0; i < 4; i++ {
		v, ok := r.Pop()
		if !ok || v != i {
			t.Fatalf("Pop() = (%d, %v), want (%d, true)", v, ok, i)
		}
	}
	if _, ok := r.Pop(); ok {
		t.Fatal("Pop succeeded on an empty ring")
	}
}

func TestRingCapacityRoundsToPowerOfTwo(t *testing.T) {
	r := New[int](5)
	if r.Cap() != 8 {
		t.Fatalf("Cap() = %d, want 8", r.Cap())
	}
}

func TestRingLen(t *testing.T) {
	r := New[int](8)
	r.Push(1)
	r.Push(2)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	r.Pop()
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}
