package stat

import (
	"math"
	"testing"
)

func TestSampleMerge(t *testing.T) {
	table := NewTable()
	id := Key("Frame Times")

	table.Add(id, NewSample(1, 2))
	table.Add(id, NewSample(3, 4))

	s, ok := GetAs[*Sample](table, id)
	if !ok || s.Count() != 4 {
		t.Fatalf("after merge: got %v ok=%v, want 4 observations", s, ok)
	}
	if s.Mean() != 2.5 {
		t.Errorf("mean: got %g, want 2.5", s.Mean())
	}
}

func TestSampleSubRemovesMatches(t *testing.T) {
	s := NewSample(1, 2, 2, 3)

	s.Sub(NewSample(2, 9))

	if s.Count() != 3 {
		t.Fatalf("count after sub: got %d, want 3", s.Count())
	}
	if !s.Equal(NewSample(1, 2, 3)) {
		t.Errorf("after sub: got %v, want sample(1, 2, 3)", s.Obs)
	}
}

func TestSampleEqualIsOrderIndependent(t *testing.T) {
	if !NewSample(3, 1, 2).Equal(NewSample(1, 2, 3)) {
		t.Error("permuted samples reported unequal")
	}
	if NewSample(1, 2).Equal(NewSample(1, 2, 2)) {
		t.Error("different multisets reported equal")
	}
}

func TestSampleEqualWithNaN(t *testing.T) {
	nan := math.NaN()

	if !NewSample(1, nan).Equal(NewSample(nan, 1)) {
		t.Error("samples with NaN observations reported unequal")
	}
	if !NewSample(nan, nan).Equal(NewSample(nan, nan)) {
		t.Error("all-NaN sample not equal to itself")
	}
	if NewSample(1, nan).Equal(NewSample(1, 1)) {
		t.Error("NaN matched a real observation")
	}
}

func TestSampleSummaries(t *testing.T) {
	s := NewSample()
	for i := 1; i <= 10; i++ {
		s.Observe(float64(i))
	}

	if got := s.Mean(); math.Abs(got-5.5) > 1e-9 {
		t.Errorf("mean: got %g, want 5.5", got)
	}
	if got := s.Quantile(0.5); got < 5 || got > 6 {
		t.Errorf("median: got %g, want in [5, 6]", got)
	}
	if got := s.StdDev(); math.Abs(got-3.0276503540974917) > 1e-9 {
		t.Errorf("stddev: got %g", got)
	}
}

func TestSampleEmptySummaries(t *testing.T) {
	s := &Sample{}
	if s.Mean() != 0 || s.StdDev() != 0 || s.Quantile(0.5) != 0 {
		t.Errorf("empty sample summaries not zero: mean=%g std=%g q=%g",
			s.Mean(), s.StdDev(), s.Quantile(0.5))
	}
}
