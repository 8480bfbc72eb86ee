package stat

import (
	"fmt"
	"math"
	"sort"

	gstat "gonum.org/v1/gonum/stat"
)

// Sample accumulates float observations; merging concatenates the
// observation sets. Summary accessors aggregate within this one payload
// only.
type Sample struct {
	Obs []float64 `yaml:"obs" json:"obs"`
}

// NewSample returns a sample payload holding a copy of obs.
func NewSample(obs ...float64) *Sample {
	s := &Sample{Obs: make([]float64, len(obs))}
	copy(s.Obs, obs)
	return s
}

// Zero returns a fresh empty sample.
func (s *Sample) Zero() Value { return &Sample{} }

// Add appends the other sample's observations.
func (s *Sample) Add(other Value) {
	if o, ok := other.(*Sample); ok {
		s.Obs = append(s.Obs, o.Obs...)
	}
}

// Sub removes one matching observation per value in the other sample.
// Observations without a match are ignored.
func (s *Sample) Sub(other Value) {
	o, ok := other.(*Sample)
	if !ok {
		return
	}
	for _, v := range o.Obs {
		for i, have := range s.Obs {
			if have == v {
				s.Obs = append(s.Obs[:i], s.Obs[i+1:]...)
				break
			}
		}
	}
}

// Equal reports whether other is a sample holding the same multiset of
// observations. NaN observations compare equal to each other so that a
// sample always equals its own round trip.
func (s *Sample) Equal(other Value) bool {
	o, ok := other.(*Sample)
	if !ok || len(s.Obs) != len(o.Obs) {
		return false
	}
	// sort.Float64s places NaNs first, so they pair up positionally
	a := s.sorted()
	b := o.sorted()
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}

// Observe records a single observation.
func (s *Sample) Observe(v float64) { s.Obs = append(s.Obs, v) }

// Count returns the number of observations.
func (s *Sample) Count() int { return len(s.Obs) }

// Mean returns the observation mean, 0 when empty.
func (s *Sample) Mean() float64 {
	if len(s.Obs) == 0 {
		return 0
	}
	return gstat.Mean(s.Obs, nil)
}

// StdDev returns the sample standard deviation, 0 when fewer than two
// observations exist.
func (s *Sample) StdDev() float64 {
	if len(s.Obs) < 2 {
		return 0
	}
	return gstat.StdDev(s.Obs, nil)
}

// Quantile returns the empirical p-quantile, p in [0, 1]; 0 when empty.
func (s *Sample) Quantile(p float64) float64 {
	if len(s.Obs) == 0 {
		return 0
	}
	return gstat.Quantile(p, gstat.Empirical, s.sorted(), nil)
}

func (s *Sample) sorted() []float64 {
	out := make([]float64, len(s.Obs))
	copy(out, s.Obs)
	sort.Float64s(out)
	return out
}

func (s *Sample) String() string {
	return fmt.Sprintf("sample(n=%d, mean=%g)", s.Count(), s.Mean())
}
