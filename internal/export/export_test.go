package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []*domain.Task {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	first := domain.NewTask("Ship release", true, true, domain.Notes{
		Why:      "customers waiting",
		WithWhom: "Ops",
	})
	first.CreatedAt = created
	second := domain.NewTask("Café planning, \"Q3\"", false, true, domain.Notes{})
	second.CreatedAt = created.Add(time.Hour)
	third := domain.NewTask("Inbox zero", false, false, domain.Notes{Additional: "maybe never"})
	third.CreatedAt = created.Add(2 * time.Hour)
	return []*domain.Task{first, second, third}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Format
	}{
		{"", FormatJSON},
		{"json", FormatJSON},
		{"YAML", FormatYAML},
		{"yml", FormatYAML},
		{"csv", FormatCSV},
		{" pdf ", FormatPDF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseFormat("xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatProperties(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Equal(t, "yaml", FormatYAML.Extension())

	assert.True(t, FormatJSON.Decodable())
	assert.True(t, FormatYAML.Decodable())
	assert.False(t, FormatCSV.Decodable())
	assert.False(t, FormatPDF.Decodable())
}

func TestEncodeCSV(t *testing.T) {
	t.Parallel()
	tasks := sampleTasks()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatCSV, tasks))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(tasks)+1)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"Do First", "Ship release", "Yes", "Yes",
		"customers waiting", "", "", "Ops", "", "2024-03-01T09:30:00Z",
	}, rows[1])
	assert.Equal(t, "Delegate", rows[2][0])
	assert.Equal(t, "Café planning, \"Q3\"", rows[2][1], "quoting survives the round trip")
	assert.Equal(t, "Eliminate", rows[3][0])
	assert.Equal(t, "maybe never", rows[3][8])
}

func TestEncodeCSV_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatCSV, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestEncodePDF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatPDF, sampleTasks()))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))

	var empty bytes.Buffer
	require.NoError(t, Encode(&empty, FormatPDF, nil))
	assert.True(t, strings.HasPrefix(empty.String(), "%PDF-"))
}

func TestEncodeUnsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Encode(&buf, Format("xml"), sampleTasks())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			tasks := sampleTasks()

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, tasks))

			decoded, err := Decode(&buf, format)
			require.NoError(t, err)
			require.Len(t, decoded, len(tasks))

			for i := range tasks {
				assert.Equal(t, tasks[i].ID, decoded[i].ID)
				assert.Equal(t, tasks[i].Title, decoded[i].Title)
				assert.Equal(t, tasks[i].Urgent, decoded[i].Urgent)
				assert.Equal(t, tasks[i].Important, decoded[i].Important)
				assert.Equal(t, tasks[i].Notes, decoded[i].Notes)
				assert.Equal(t, tasks[i].Quadrant, decoded[i].Quadrant)
				assert.True(t, tasks[i].CreatedAt.Equal(decoded[i].CreatedAt))
			}
		})
	}
}

func TestDecodeJSON_Lenient(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	payload := `[
		{"id": "` + id.String() + `", "title": "naive time", "urgent": true,
		 "created_at": "2024-05-06T07:08:09.123456", "quadrant": 4},
		{"id": "not-a-uuid", "title": "bad id", "important": true, "notes": null},
		{"title": "no id or time", "created_at": "yesterday"}
	]`

	tasks, err := Decode(strings.NewReader(payload), FormatJSON)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, id, tasks[0].ID)
	assert.Equal(t, domain.QuadrantSchedule, tasks[0].Quadrant, "quadrant is derived from the flags")
	assert.Equal(t,
		time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.UTC),
		tasks[0].CreatedAt,
		"naive timestamps are read as UTC")

	assert.Equal(t, uuid.Nil, tasks[1].ID)
	assert.Equal(t, domain.Notes{}, tasks[1].Notes)
	assert.Equal(t, domain.QuadrantDelegate, tasks[1].Quadrant)

	assert.Equal(t, uuid.Nil, tasks[2].ID)
	assert.True(t, tasks[2].CreatedAt.IsZero())
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	payload := `
- title: from yaml
  urgent: true
  important: true
  notes:
    with_whom: team
  created_at: 2024-01-02T03:04:05+02:00
`
	tasks, err := Decode(strings.NewReader(payload), FormatYAML)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "team", tasks[0].Notes.WithWhom)
	assert.Equal(t, domain.QuadrantDoFirst, tasks[0].Quadrant)
	assert.Equal(t, time.Date(2024, 1, 2, 1, 4, 5, 0, time.UTC), tasks[0].CreatedAt)

	empty, err := Decode(strings.NewReader("[]"), FormatYAML)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"title": "not an array"}`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = Decode(strings.NewReader(`[{`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = Decode(strings.NewReader("title: scalar map"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = Decode(strings.NewReader("a,b"), FormatCSV)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeRequiresTopLevelArray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		payload string
	}{
		{"json null", FormatJSON, "null"},
		{"json empty body", FormatJSON, ""},
		{"json scalar", FormatJSON, `"tasks"`},
		{"yaml empty body", FormatYAML, ""},
		{"yaml whitespace only", FormatYAML, "\n  \n"},
		{"yaml null", FormatYAML, "~"},
		{"yaml explicit null", FormatYAML, "null"},
		{"yaml scalar", FormatYAML, "tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := Decode(strings.NewReader(tt.payload), tt.format)
			assert.ErrorIs(t, err, ErrInvalidPayload)
			assert.Nil(t, tasks)
		})
	}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		tasks, err := Decode(strings.NewReader("[]"), format)
		require.NoError(t, err, "explicit empty %s array", format)
		assert.Empty(t, tasks)
	}
}

func TestNoteLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, noteLines(domain.Notes{}))
	assert.Equal(t, []string{"Why: deadline", "Notes: call back"},
		noteLines(domain.Notes{Why: "deadline", Additional: "call back"}))
}
