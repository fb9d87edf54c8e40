// Package sample holds one tick's labeled temperature readings in display order.
package sample

// Well-known labels.
const (
	LabelCPU  = "CPU"
	LabelACPI = "ACPI"
	LabelGPU  = "GPU"
)

// Reading is a single labeled temperature in degrees Celsius.
type Reading struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Sample is an insertion-ordered mapping from label to temperature.
// The zero value is ready to use.
type Sample struct {
	order  []string
	values map[string]float64
}

// New returns an empty Sample.
func New() *Sample {
	return &Sample{values: make(map[string]float64)}
}

// Set stores v under label. A new label is appended; an existing one keeps
// its position and takes the new value.
func (s *Sample) Set(label string, v float64) {
	if s.values == nil {
		s.values = make(map[string]float64)
	}
	if _, ok := s.values[label]; !ok {
		s.order = append(s.order, label)
	}
	s.values[label] = v
}

// Get returns the value stored under label.
func (s *Sample) Get(label string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.values[label]
	return v, ok
}

// Len returns the number of readings. A nil Sample is empty.
func (s *Sample) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Labels returns the labels in insertion order.
func (s *Sample) Labels() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Readings returns the readings in insertion order.
func (s *Sample) Readings() []Reading {
	if s == nil {
		return nil
	}
	out := make([]Reading, 0, len(s.order))
	for _, label := range s.order {
		out = append(out, Reading{Label: label, Value: s.values[label]})
	}
	return out
}

// Clone returns an independent copy.
func (s *Sample) Clone() *Sample {
	c := New()
	if s == nil {
		return c
	}
	for _, label := range s.order {
		c.Set(label, s.values[label])
	}
	return c
}

// Delta returns current minus previous for label. ok is false when either
// sample lacks the label.
func Delta(current, previous *Sample, label string) (d float64, ok bool) {
	cur, ok := current.Get(label)
	if !ok {
		return 0, false
	}
	prev, ok := previous.Get(label)
	if !ok {
		return 0, false
	}
	return cur - prev, true
}
