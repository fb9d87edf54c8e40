package display

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"tempwatch/internal/config"
	"tempwatch/internal/sample"
)

// TimestampLayout matches "Mon Oct 19 2026 12:00:00".
const TimestampLayout = "Mon Jan 02 2006 15:04:05"

// Hint is printed under the header.
const Hint = "Press Ctrl+C to exit"

// Line is one rendered reading.
type Line struct {
	Label     string
	Value     float64
	Tier      Tier
	Delta     float64
	HasDelta  bool
	DeltaTier Tier
}

// Frame holds the readings of one tick.
type Frame struct {
	Lines []Line
}

// Header returns the first dashboard line.
func Header(interval float64, now time.Time) string {
	return fmt.Sprintf("Fetching temperatures every %ss... (%s)",
		strconv.FormatFloat(interval, 'f', -1, 64), now.Format(TimestampLayout))
}

// BuildFrame lays out cur in insertion order. When prev is non-nil, labels
// present in prev carry a delta; others do not. Deltas are rounded to the
// displayed precision before they are tiered.
func BuildFrame(cur, prev *sample.Sample, th config.ThresholdConfig) Frame {
	f := Frame{Lines: make([]Line, 0, cur.Len())}
	withDelta := prev.Len() > 0

	for _, r := range cur.Readings() {
		line := Line{
			Label: r.Label,
			Value: r.Value,
			Tier:  TempTier(r.Value, th),
		}
		if withDelta {
			if d, ok := sample.Delta(cur, prev, r.Label); ok {
				d = RoundDelta(d)
				line.Delta = d
				line.HasDelta = true
				line.DeltaTier = DeltaTier(d, th)
			}
		}
		f.Lines = append(f.Lines, line)
	}
	return f
}

// FormatValue formats a temperature with one decimal.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// RoundDelta rounds d to one decimal, the precision FormatDelta prints.
func RoundDelta(d float64) float64 {
	return math.Round(d*10) / 10
}

// FormatDelta formats a signed change with one decimal. A change that rounds
// to zero prints as +0.0.
func FormatDelta(d float64) string {
	s := fmt.Sprintf("%+.1f", d)
	if s == "-0.0" {
		return "+0.0"
	}
	return s
}
