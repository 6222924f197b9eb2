package buffer

import "testing"

func TestTextBufferOffsets(t *testing.T) {
	tb := New()
	tb.Write("설명")
	tb.Write("\n")
	tb.Write("abc")

	if got := tb.String(); got != "설명\nabc" {
		t.Errorf("String() = %q", got)
	}
	if got := tb.ByteOffset(); got != len("설명\nabc") {
		t.Errorf("ByteOffset() = %d, want %d", got, len("설명\nabc"))
	}
	if got := tb.RuneOffset(); got != 6 {
		t.Errorf("RuneOffset() = %d, want 6", got)
	}

	tb.Reset()
	if tb.String() != "" || tb.ByteOffset() != 0 || tb.RuneOffset() != 0 {
		t.Errorf("Reset() left state: %q %d %d", tb.String(), tb.ByteOffset(), tb.RuneOffset())
	}
}
