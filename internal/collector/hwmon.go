package collector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"tempwatch/internal/config"
	"tempwatch/internal/extractor"
	"tempwatch/internal/logger"
)

// TemperatureFunc reads kernel hwmon temperatures.
type TemperatureFunc func(ctx context.Context) ([]host.TemperatureStat, error)

// HwmonSource reads hwmon through gopsutil and re-shapes the coretemp and
// acpitz entries into the lm-sensors JSON layout.
type HwmonSource struct {
	temperatures TemperatureFunc
}

// NewHwmonSource creates a source backed by host.SensorsTemperaturesWithContext.
func NewHwmonSource() *HwmonSource {
	return &HwmonSource{temperatures: host.SensorsTemperaturesWithContext}
}

// NewHwmonSourceWith creates a source backed by fn.
func NewHwmonSourceWith(fn TemperatureFunc) *HwmonSource {
	return &HwmonSource{temperatures: fn}
}

// Name returns the source name.
func (s *HwmonSource) Name() string {
	return config.SourceHwmon
}

// Read collects the temperatures. Partial read warnings are logged; an error
// with no temperatures at all is a process failure.
func (s *HwmonSource) Read(ctx context.Context) (map[string]any, error) {
	temps, err := s.temperatures(ctx)
	if err != nil {
		if len(temps) == 0 {
			return nil, &Error{Kind: ProcessFailed, Command: s.Name(), Err: err}
		}
		log := logger.WithComponent("collector")
		log.Warn().Err(err).Str("source", s.Name()).Int("sensors", len(temps)).Msg("Partial hwmon read")
	}
	if len(temps) == 0 {
		return nil, &Error{Kind: ProcessFailed, Command: s.Name(), Err: errors.New("no hwmon temperature sensors found")}
	}

	return buildSensorsDocument(temps), nil
}

// buildSensorsDocument converts gopsutil sensor keys ("coretemp_packageid0",
// "coretemp_core3", "acpitz") into nested chip → feature → input maps.
func buildSensorsDocument(temps []host.TemperatureStat) map[string]any {
	doc := make(map[string]any)
	coretemp := make(map[string]any)
	var acpiSeen bool

	for _, t := range temps {
		// Skip sensors with zero or invalid readings
		if t.Temperature <= 0 || t.Temperature > 200 {
			continue
		}

		chip, feature := splitSensorKey(t.SensorKey)
		switch chip {
		case "coretemp":
			if feature == "packageid0" {
				if _, dup := coretemp[extractor.PackageFeature]; !dup {
					coretemp[extractor.PackageFeature] = map[string]any{"temp1_input": t.Temperature}
				}
				continue
			}
			idx, ok := strings.CutPrefix(feature, "core")
			if !ok {
				continue
			}
			n, err := strconv.Atoi(idx)
			if err != nil || n < 0 {
				continue
			}
			name := fmt.Sprintf("Core %d", n)
			if _, dup := coretemp[name]; dup {
				continue
			}
			coretemp[name] = map[string]any{
				fmt.Sprintf("temp%d_input", n+extractor.CoreInputOffset): t.Temperature,
			}

		case "acpitz":
			if acpiSeen {
				continue
			}
			acpiSeen = true
			doc[extractor.ACPIChip] = map[string]any{
				"temp1": map[string]any{"temp1_input": t.Temperature},
			}
		}
	}

	if len(coretemp) > 0 {
		doc[extractor.CoretempChip] = coretemp
	}
	return doc
}

// splitSensorKey splits at the first underscore and normalizes the feature
// part to lower case without spaces or underscores.
func splitSensorKey(key string) (chip, feature string) {
	chip, feature, _ = strings.Cut(strings.ToLower(key), "_")
	feature = strings.NewReplacer(" ", "", "_", "").Replace(feature)
	return chip, feature
}
