package triplebuf

import "testing"

func TestTripleBufferPublishAndRead(t *testing.T) {
	tb := New[int]()
	w := tb.Writer()
	r := tb.Reader()

	if _, ok := r.TryRead(); ok {
		t.Fatal("TryRead succeeded before any Publish")
	}

	*w.Back() = 42
	w.Publish()

	v, ok := r.TryRead()
	if !ok || v != 42 {
		t.Fatalf("TryRead() = (%d, %v), want (42, true)", v, ok)
	}

	if _, ok := r.TryRead(); ok {
		t.Fatal("TryRead succeeded twice on the same publish")
	}
}

func TestTripleBufferLatestWins(t *testing.T) {
	tb := New[int]()
	w := tb.Writer()
	r := tb.Reader()

	*w.Back() = 1
	w.Publish()
	*w.Back() = 2
	w.Publish()

	v, ok := r.TryRead()
	if !ok || v != 2 {
		t.Fatalf("TryRead() = (%d, %v), want (2, true) - reader should see the latest publish", v, ok)
	}
}
