package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	data := Dataset{
		Headers: []string{"Course", "Day", "Start"},
		Rows: []map[string]string{
			{"Course": "CSC301", "Day": "MONDAY", "Start": "08:00"},
			{"Course": "MTH101", "Day": "TUESDAY", "Start": "10:00"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Course,Day,Start\nCSC301,MONDAY,08:00\nMTH101,TUESDAY,10:00\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRenderGrid(t *testing.T) {
	exporter := NewPDFExporter()

	data := GridDataset{
		Days:  []string{"MONDAY", "TUESDAY"},
		Times: []string{"08:00 - 09:00", "09:00 - 10:00"},
		Cells: map[string]map[string][]string{
			"MONDAY": {
				"08:00 - 09:00": {"CSC301", "Dr. Bello"},
			},
		},
		Legend: []string{"CSC301 - Compiler Construction"},
	}

	out, err := exporter.RenderGrid(data, "First Semester")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFExporterRenderGridRequiresAxes(t *testing.T) {
	exporter := NewPDFExporter()

	_, err := exporter.RenderGrid(GridDataset{}, "")
	assert.Error(t, err)
}
