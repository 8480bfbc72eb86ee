package stat

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Counter is an unsigned event count with saturating arithmetic.
type Counter uint64

// NewCounter returns a counter payload holding n.
func NewCounter(n uint64) *Counter {
	c := Counter(n)
	return &c
}

// Zero returns a fresh zero counter.
func (c *Counter) Zero() Value { return new(Counter) }

// Add merges another counter, saturating at the maximum.
func (c *Counter) Add(other Value) {
	o, ok := other.(*Counter)
	if !ok {
		return
	}
	if sum := *c + *o; sum >= *c {
		*c = sum
	} else {
		*c = math.MaxUint64
	}
}

// Sub subtracts another counter, flooring at zero.
func (c *Counter) Sub(other Value) {
	o, ok := other.(*Counter)
	if !ok {
		return
	}
	if *o >= *c {
		*c = 0
	} else {
		*c -= *o
	}
}

// Equal reports whether other is a counter with the same count.
func (c *Counter) Equal(other Value) bool {
	o, ok := other.(*Counter)
	return ok && *c == *o
}

// Count returns the counter value.
func (c *Counter) Count() uint64 { return uint64(*c) }

func (c Counter) String() string { return fmt.Sprintf("%d", uint64(c)) }

// Gauge is a float-valued stat with plain arithmetic.
type Gauge float64

// NewGauge returns a gauge payload holding v.
func NewGauge(v float64) *Gauge {
	g := Gauge(v)
	return &g
}

// Zero returns a fresh zero gauge.
func (g *Gauge) Zero() Value { return new(Gauge) }

// Add merges another gauge.
func (g *Gauge) Add(other Value) {
	if o, ok := other.(*Gauge); ok {
		*g += *o
	}
}

// Sub subtracts another gauge.
func (g *Gauge) Sub(other Value) {
	if o, ok := other.(*Gauge); ok {
		*g -= *o
	}
}

// Equal reports whether other is a gauge with the same value.
func (g *Gauge) Equal(other Value) bool {
	o, ok := other.(*Gauge)
	return ok && *g == *o
}

// Float returns the gauge value.
func (g *Gauge) Float() float64 { return float64(*g) }

func (g Gauge) String() string { return fmt.Sprintf("%g", float64(g)) }

// Elapsed accumulates a time.Duration, flooring at zero on subtraction.
type Elapsed time.Duration

// NewElapsed returns an elapsed payload holding d.
func NewElapsed(d time.Duration) *Elapsed {
	e := Elapsed(d)
	return &e
}

// Zero returns a fresh zero duration.
func (e *Elapsed) Zero() Value { return new(Elapsed) }

// Add merges another elapsed duration.
func (e *Elapsed) Add(other Value) {
	if o, ok := other.(*Elapsed); ok {
		*e += *o
	}
}

// Sub subtracts another elapsed duration, flooring at zero.
func (e *Elapsed) Sub(other Value) {
	o, ok := other.(*Elapsed)
	if !ok {
		return
	}
	if *o >= *e {
		*e = 0
	} else {
		*e -= *o
	}
}

// Equal reports whether other is an elapsed duration of the same length.
func (e *Elapsed) Equal(other Value) bool {
	o, ok := other.(*Elapsed)
	return ok && *e == *o
}

// Duration returns the accumulated duration.
func (e *Elapsed) Duration() time.Duration { return time.Duration(*e) }

func (e Elapsed) String() string { return time.Duration(e).String() }

// MarshalYAML stores the duration in its string form ("1h2m3s").
func (e Elapsed) MarshalYAML() (any, error) {
	return time.Duration(e).String(), nil
}

// UnmarshalYAML parses the duration string form.
func (e *Elapsed) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing elapsed: %w", err)
	}
	*e = Elapsed(d)
	return nil
}

// CountMap is a keyed tally mapping names to counts. Add is a union with
// per-key saturating summation; Sub floors each key at zero. Keys touched
// by a subtract stay present at zero rather than being deleted.
type CountMap map[string]uint64

// NewCountMap returns a count-map payload holding a copy of counts.
func NewCountMap(counts map[string]uint64) *CountMap {
	m := make(CountMap, len(counts))
	for k, n := range counts {
		m[k] = n
	}
	return &m
}

// Zero returns a fresh empty count map.
func (m *CountMap) Zero() Value {
	z := CountMap{}
	return &z
}

// Add merges another count map, summing per key.
func (m *CountMap) Add(other Value) {
	o, ok := other.(*CountMap)
	if !ok {
		return
	}
	if *m == nil {
		*m = CountMap{}
	}
	for k, n := range *o {
		cur := (*m)[k]
		if sum := cur + n; sum >= cur {
			(*m)[k] = sum
		} else {
			(*m)[k] = math.MaxUint64
		}
	}
}

// Sub subtracts another count map, flooring each key at zero.
func (m *CountMap) Sub(other Value) {
	o, ok := other.(*CountMap)
	if !ok {
		return
	}
	if *m == nil {
		*m = CountMap{}
	}
	for k, n := range *o {
		cur := (*m)[k]
		if n >= cur {
			(*m)[k] = 0
		} else {
			(*m)[k] = cur - n
		}
	}
}

// Equal reports whether other is a count map with identical entries.
func (m *CountMap) Equal(other Value) bool {
	o, ok := other.(*CountMap)
	if !ok || len(*m) != len(*o) {
		return false
	}
	for k, n := range *m {
		if on, ok := (*o)[k]; !ok || on != n {
			return false
		}
	}
	return true
}

// Count returns the tally for name.
func (m *CountMap) Count(name string) uint64 { return (*m)[name] }

func (m CountMap) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", k, m[k])
	}
	b.WriteByte('}')
	return b.String()
}
