package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []Row {
	return []Row{
		{Course: "Calculus I", CourseNumber: 120701, ActivityID: "120701.01", Kind: "LECTURE", Lecturer: "Cohen",
			Day: "SUNDAY", Start: "10:00", End: "12:00", Location: "Hall A", Capacity: "10/50"},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleRows())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "course,course_number,activity_id,kind,lecturer,day,start,end,location,capacity", lines[0])
	assert.Equal(t, "Calculus I,120701,120701.01,LECTURE,Cohen,SUNDAY,10:00,12:00,Hall A,10/50", lines[1])
}

func TestCSVExporterEmpty(t *testing.T) {
	out, err := NewCSVExporter().Render(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "course,"))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleRows(), "Timetable")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := NewPDFExporter().Render(nil, "")
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
