// Package display formats readings and renders the dashboard.
package display

import "tempwatch/internal/config"

// Tier is a color band: Cool renders green, Warm yellow, Hot red and
// Neutral black.
type Tier int

const (
	Neutral Tier = iota
	Cool
	Warm
	Hot
)

func (t Tier) String() string {
	switch t {
	case Cool:
		return "cool"
	case Warm:
		return "warm"
	case Hot:
		return "hot"
	default:
		return "neutral"
	}
}

// TempTier bands an absolute temperature. Boundaries are inclusive on the
// upper tier: Warm and Hot start exactly at their thresholds.
func TempTier(v float64, th config.ThresholdConfig) Tier {
	switch {
	case v < th.Warm:
		return Cool
	case v < th.Hot:
		return Warm
	default:
		return Hot
	}
}

// DeltaTier bands a change from the previous sample.
func DeltaTier(d float64, th config.ThresholdConfig) Tier {
	switch {
	case d < 0:
		return Cool
	case d == 0:
		return Neutral
	case d < th.DeltaHot:
		return Warm
	default:
		return Hot
	}
}
