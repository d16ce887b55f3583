package timeline

import "testing"

func TestActiveIndexScenario(t *testing.T) {
	tests := []struct {
		frame  int
		want   int
		wantOK bool
	}{
		{0, 0, true},
		{89, 0, true},
		{90, 1, true},
		{179, 1, true},
		{180, 2, true},
		{269, 2, true},
		{270, NoSegment, false},
		{-1, NoSegment, false},
	}
	for _, tt := range tests {
		got, ok := ActiveIndex(tt.frame, 3, 9, 30)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ActiveIndex(%d) = (%d, %v), want (%d, %v)", tt.frame, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestActiveIndexRealValuedSpread(t *testing.T) {
	// 7 segments over 10s at 30fps: 42.857... frames each.
	if idx, _ := ActiveIndex(42, 7, 10, 30); idx != 0 {
		t.Fatalf("frame 42: got %d, want 0", idx)
	}
	if idx, _ := ActiveIndex(43, 7, 10, 30); idx != 1 {
		t.Fatalf("frame 43: got %d, want 1", idx)
	}
	if idx, _ := ActiveIndex(299, 7, 10, 30); idx != 6 {
		t.Fatalf("frame 299: got %d, want 6", idx)
	}
}

func TestActiveIndexMonotonic(t *testing.T) {
	cases := []struct {
		segments int
		seconds  float64
		fps      int
	}{
		{1, 3.3, 30},
		{3, 9, 30},
		{7, 10, 30},
		{13, 4.27, 24},
		{40, 2, 60},
	}
	for _, c := range cases {
		total := FrameCount(c.seconds, c.fps)
		last := -1
		for frame := 0; frame < total; frame++ {
			idx, ok := ActiveIndex(frame, c.segments, c.seconds, c.fps)
			if !ok {
				continue
			}
			if idx < last {
				t.Fatalf("%+v: index went backward at frame %d (%d < %d)", c, frame, idx, last)
			}
			if idx > c.segments-1 {
				t.Fatalf("%+v: index %d exceeds last segment", c, idx)
			}
			last = idx
		}
	}
}

func TestActiveIndexDegenerateInputs(t *testing.T) {
	if _, ok := ActiveIndex(0, 0, 9, 30); ok {
		t.Fatal("expected no segment for zero segments")
	}
	if _, ok := ActiveIndex(0, 3, 0, 30); ok {
		t.Fatal("expected no segment for zero duration")
	}
	if _, ok := ActiveIndex(0, 3, 9, 0); ok {
		t.Fatal("expected no segment for zero fps")
	}
}

func TestSpans(t *testing.T) {
	spans := Spans(3, 9, 30, 270)
	want := []Span{
		{Index: 0, Start: 0, End: 89},
		{Index: 1, Start: 90, End: 179},
		{Index: 2, Start: 180, End: 269},
	}
	if len(spans) != len(want) {
		t.Fatalf("expected %d spans, got %+v", len(want), spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}
	if Spans(0, 9, 30, 270) != nil {
		t.Fatal("expected nil spans for zero segments")
	}
}
