package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/host"

	"tempwatch/internal/extractor"
	"tempwatch/internal/sample"
)

func fakeTemperatures(stats []host.TemperatureStat, err error) TemperatureFunc {
	return func(context.Context) ([]host.TemperatureStat, error) {
		return stats, err
	}
}

func TestHwmon_ReshapesIntoSensorsLayout(t *testing.T) {
	src := NewHwmonSourceWith(fakeTemperatures([]host.TemperatureStat{
		{SensorKey: "acpitz", Temperature: 27.8},
		{SensorKey: "acpitz", Temperature: 29.8},
		{SensorKey: "coretemp_packageid0", Temperature: 48},
		{SensorKey: "coretemp_core3", Temperature: 42},
		{SensorKey: "coretemp_core0", Temperature: 46},
		{SensorKey: "nvme_composite", Temperature: 33.85},
	}, nil))

	doc, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	s := extractor.Extract(doc)
	want := map[string]float64{
		sample.LabelCPU:  48,
		sample.LabelACPI: 27.8,
		"Core#0":         46,
		"Core#3":         42,
	}
	if s.Len() != len(want) {
		t.Fatalf("expected %d readings, got %v", len(want), s.Labels())
	}
	for label, v := range want {
		got, ok := s.Get(label)
		if !ok || got != v {
			t.Errorf("%s: got %v (present=%v), want %v", label, got, ok, v)
		}
	}
}

func TestHwmon_SkipsInvalidReadings(t *testing.T) {
	src := NewHwmonSourceWith(fakeTemperatures([]host.TemperatureStat{
		{SensorKey: "coretemp_packageid0", Temperature: 0},
		{SensorKey: "coretemp_core1", Temperature: 250},
		{SensorKey: "coretemp_core2", Temperature: 44},
	}, nil))

	doc, err := src.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if labels := extractor.Extract(doc).Labels(); len(labels) != 1 || labels[0] != "Core#2" {
		t.Errorf("unexpected labels %v", labels)
	}
}

func TestHwmon_PartialWarningsTolerated(t *testing.T) {
	src := NewHwmonSourceWith(fakeTemperatures(
		[]host.TemperatureStat{{SensorKey: "coretemp_packageid0", Temperature: 50}},
		errors.New("failed to read temp9_input"),
	))

	if _, err := src.Read(context.Background()); err != nil {
		t.Errorf("partial read should succeed: %v", err)
	}
}

func TestHwmon_NoSensorsIsProcessFailed(t *testing.T) {
	for _, err := range []error{errors.New("permission denied"), nil} {
		src := NewHwmonSourceWith(fakeTemperatures(nil, err))

		_, got := src.Read(context.Background())
		if !errors.Is(got, ErrProcessFailed) {
			t.Errorf("input err=%v: expected ProcessFailed, got %v", err, got)
		}
	}
}

func TestSplitSensorKey(t *testing.T) {
	tests := []struct{ key, chip, feature string }{
		{"coretemp_packageid0", "coretemp", "packageid0"},
		{"coretemp_package_id_0", "coretemp", "packageid0"},
		{"coretemp_Core 3", "coretemp", "core3"},
		{"acpitz", "acpitz", ""},
	}
	for _, tt := range tests {
		chip, feature := splitSensorKey(tt.key)
		if chip != tt.chip || feature != tt.feature {
			t.Errorf("splitSensorKey(%q) = %q, %q", tt.key, chip, feature)
		}
	}
}
