package extractor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempwatch/internal/sample"
)

// sensorsOutput is trimmed `sensors -j` output from a 4-core Intel laptop.
const sensorsOutput = `{
   "acpitz-acpi-0":{
      "Adapter": "ACPI interface",
      "temp1":{"temp1_input": 27.800, "temp1_crit": 119.000}
   },
   "coretemp-isa-0000":{
      "Adapter": "ISA adapter",
      "Package id 0":{"temp1_input": 48.000, "temp1_max": 100.000, "temp1_crit": 100.000},
      "Core 1":{"temp3_input": 45.000, "temp3_max": 100.000},
      "Core 0":{"temp2_input": 46.000, "temp2_max": 100.000},
      "Core 3":{"temp5_input": 42.000},
      "Core 2":{"temp4_input": 44.000}
   },
   "nvme-pci-0100":{
      "Adapter": "PCI adapter",
      "Composite":{"temp1_input": 33.850}
   }
}`

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func TestExtract_FullDocument(t *testing.T) {
	s := Extract(decode(t, sensorsOutput))

	assert.Equal(t, []string{"CPU", "ACPI", "Core#0", "Core#1", "Core#2", "Core#3"}, s.Labels())

	v, ok := s.Get(sample.LabelCPU)
	require.True(t, ok)
	assert.Equal(t, 48.0, v)

	v, ok = s.Get(sample.LabelACPI)
	require.True(t, ok)
	assert.Equal(t, 27.8, v)
}

func TestExtract_CoreUsesOffsetInput(t *testing.T) {
	s := Extract(decode(t, sensorsOutput))

	v, ok := s.Get("Core#3")
	require.True(t, ok)
	assert.Equal(t, 42.0, v, "Core 3 reads temp5_input")
}

func TestExtract_CoresSortedNumerically(t *testing.T) {
	doc := decode(t, `{"coretemp-isa-0000":{
		"Core 10":{"temp12_input": 50.0},
		"Core 2":{"temp4_input": 41.0},
		"Core 1":{"temp3_input": 40.0}
	}}`)

	assert.Equal(t, []string{"Core#1", "Core#2", "Core#10"}, Extract(doc).Labels())
}

func TestExtract_MissingACPI(t *testing.T) {
	doc := decode(t, `{"coretemp-isa-0000":{"Package id 0":{"temp1_input": 61.5}}}`)
	s := Extract(doc)

	_, ok := s.Get(sample.LabelACPI)
	assert.False(t, ok)
	assert.Equal(t, []string{"CPU"}, s.Labels())
}

func TestExtract_SkipsMalformedFields(t *testing.T) {
	doc := decode(t, `{
		"coretemp-isa-0000":{
			"Package id 0":{"temp1_input": "hot"},
			"Core":{"temp2_input": 40.0},
			"Core x":{"temp2_input": 40.0},
			"Core 0":{"temp1_input": 40.0},
			"Core 1": 45.0,
			"Core 2":{"temp4_input": 44.0}
		},
		"acpitz-acpi-0":{"temp1": null}
	}`)

	assert.Equal(t, []string{"Core#2"}, Extract(doc).Labels())
}

func TestExtract_EmptyAndNil(t *testing.T) {
	assert.Equal(t, 0, Extract(nil).Len())
	assert.Equal(t, 0, Extract(map[string]any{}).Len())
}

func TestExtract_InsertionOrderWithGPU(t *testing.T) {
	doc := decode(t, `{
		"coretemp-isa-0000":{
			"Core 7":{"temp9_input": 43.0},
			"Package id 0":{"temp1_input": 48.0},
			"Core 4":{"temp6_input": 44.0}
		},
		"acpitz-acpi-0":{"temp1":{"temp1_input": 27.8}}
	}`)

	s := WithGPU(Extract(doc), 39.0)
	assert.Equal(t, []string{"CPU", "ACPI", "Core#4", "Core#7", "GPU"}, s.Labels())
}

func TestWithGPU_NilSample(t *testing.T) {
	s := WithGPU(nil, 0)

	v, ok := s.Get(sample.LabelGPU)
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestCoreLabel(t *testing.T) {
	assert.Equal(t, "Core#0", CoreLabel(0))
	assert.Equal(t, "Core#12", CoreLabel(12))
}
