package transfer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/task"
)

var sample = []task.Task{
	{ID: 1, Title: "Buy milk", Priority: task.Low},
	{ID: 2, Title: "Ship release", Priority: task.High, Completed: true},
	{ID: 5, Title: "", Priority: task.Medium},
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{JSON, YAML} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, sample))

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, sample, got)
		})
	}
}

func TestEncode_JSONLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, JSON, sample[:1]))

	want := `{
  "version": 1,
  "tasks": [
    {
      "id": 1,
      "title": "Buy milk",
      "priority": "low",
      "completed": false
    }
  ]
}
`
	assert.Equal(t, want, buf.String())
}

func TestEncode_YAMLLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, YAML, sample[:1]))

	want := `version: 1
tasks:
  - id: 1
    title: Buy milk
    priority: low
    completed: false
`
	assert.Equal(t, want, buf.String())
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, JSON, nil))
	assert.Contains(t, buf.String(), `"tasks": []`)

	got, err := Decode(&buf, JSON)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncode_RejectsInvalidTask(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, JSON, []task.Task{{ID: 1, Title: "x"}})
	assert.ErrorIs(t, err, task.ErrInvalidPriority)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		target error
	}{
		{
			name:   "urgent priority json",
			format: JSON,
			input:  `{"version":1,"tasks":[{"id":1,"title":"x","priority":"urgent","completed":false}]}`,
			target: task.ErrInvalidPriority,
		},
		{
			name:   "urgent priority yaml",
			format: YAML,
			input:  "version: 1\ntasks:\n  - id: 1\n    title: x\n    priority: urgent\n",
			target: task.ErrInvalidPriority,
		},
		{
			name:   "missing priority",
			format: JSON,
			input:  `{"version":1,"tasks":[{"id":1,"title":"x","completed":false}]}`,
			target: task.ErrInvalidPriority,
		},
		{
			name:   "duplicate id",
			format: YAML,
			input:  "version: 1\ntasks:\n  - {id: 3, title: a, priority: low}\n  - {id: 3, title: b, priority: high}\n",
			target: ErrDuplicateID,
		},
		{
			name:   "future version",
			format: JSON,
			input:  `{"version":2,"tasks":[]}`,
			target: ErrUnsupportedVersion,
		},
		{
			name:   "missing version",
			format: JSON,
			input:  `{"tasks":[]}`,
			target: ErrUnsupportedVersion,
		},
		{
			name:   "version zero",
			format: JSON,
			input:  `{"version":0,"tasks":[]}`,
			target: ErrUnsupportedVersion,
		},
		{
			name:   "negative version",
			format: YAML,
			input:  "version: -3\ntasks: []\n",
			target: ErrUnsupportedVersion,
		},
		{
			name:   "empty yaml stream",
			format: YAML,
			input:  "",
			target: ErrUnsupportedVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestDecode_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"tri-state completed", JSON, `{"version":1,"tasks":[{"id":1,"title":"x","priority":"low","completed":"in progress"}]}`},
		{"unknown json field", JSON, `{"version":1,"tasks":[{"id":1,"title":"x","priority":"low","due":"today"}]}`},
		{"unknown yaml field", YAML, "version: 1\ntasks:\n  - {id: 1, title: x, priority: low, due: today}\n"},
		{"not json", JSON, `tasks: []`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestDecode_AllowsUnassignedIDs(t *testing.T) {
	input := `{"version":1,"tasks":[{"id":0,"title":"a","priority":"low","completed":false},{"id":0,"title":"b","priority":"high","completed":false}]}`
	got, err := Decode(strings.NewReader(input), JSON)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": JSON, "JSON": JSON, "yaml": YAML, "yml": YAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	got, err := FormatFromPath("/tmp/backup.yml")
	require.NoError(t, err)
	assert.Equal(t, YAML, got)

	got, err = FormatFromPath("tasks.json")
	require.NoError(t, err)
	assert.Equal(t, JSON, got)

	_, err = FormatFromPath("tasks")
	assert.Error(t, err)
}
