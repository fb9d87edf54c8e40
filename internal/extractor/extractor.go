// Package extractor maps a decoded `sensors -j` document to an ordered Sample.
package extractor

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"tempwatch/internal/sample"
)

// Chip and feature names of the document produced by `sensors -j`.
const (
	CoretempChip   = "coretemp-isa-0000"
	ACPIChip       = "acpitz-acpi-0"
	PackageFeature = "Package id 0"
	CoreKeyPrefix  = "Core"
	// CoreInputOffset maps a coretemp core index to its input channel:
	// Core i reports temp{i+2}_input. Observed for the Intel coretemp driver
	// only; other chip families may number channels differently.
	CoreInputOffset = 2
)

type coreReading struct {
	index int
	value float64
}

// Extract returns CPU, ACPI and per-core readings in display order. Missing or
// non-numeric fields are skipped.
func Extract(doc map[string]any) *sample.Sample {
	s := sample.New()
	coretemp := object(doc[CoretempChip])

	if v, ok := number(lookup(coretemp, PackageFeature, "temp1_input")); ok {
		s.Set(sample.LabelCPU, v)
	}
	if v, ok := number(lookup(object(doc[ACPIChip]), "temp1", "temp1_input")); ok {
		s.Set(sample.LabelACPI, v)
	}

	for _, c := range cores(coretemp) {
		s.Set(CoreLabel(c.index), c.value)
	}
	return s
}

// WithGPU appends the GPU reading. It is always the last entry.
func WithGPU(s *sample.Sample, v float64) *sample.Sample {
	if s == nil {
		s = sample.New()
	}
	s.Set(sample.LabelGPU, v)
	return s
}

// CoreLabel returns the display label for core i.
func CoreLabel(i int) string {
	return "Core#" + strconv.Itoa(i)
}

// cores returns per-core readings sorted by index.
func cores(coretemp map[string]any) []coreReading {
	var out []coreReading
	for key, val := range coretemp {
		if !strings.HasPrefix(key, CoreKeyPrefix) {
			continue
		}
		fields := strings.Fields(key)
		if len(fields) < 2 {
			continue
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil || idx < 0 {
			continue
		}
		input := "temp" + strconv.Itoa(idx+CoreInputOffset) + "_input"
		if v, ok := number(object(val)[input]); ok {
			out = append(out, coreReading{index: idx, value: v})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func lookup(m map[string]any, feature, input string) any {
	return object(m[feature])[input]
}

func number(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
