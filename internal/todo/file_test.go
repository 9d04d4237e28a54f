package todo

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestMarshalRoundTrip(t *testing.T) {
	lists := map[string][]Task{
		"empty":    {},
		"scenario": scenarioList().Tasks(),
		"unicode and blanks": {
			{ID: 1, Note: "", Priority: PriorityMedium, Tags: ""},
			{ID: 2, Note: "Café: “quotes” & {braces}", Priority: PriorityHigh, Tags: "a b  c"},
			{ID: 3, Note: "line one\nline two", Priority: PriorityLow, Tags: "- yaml: trap"},
		},
	}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		for name, tasks := range lists {
			t.Run(string(format)+"/"+name, func(t *testing.T) {
				data, err := Marshal(tasks, format)
				if err != nil {
					t.Fatalf("Marshal: %v", err)
				}
				got, err := Unmarshal(data)
				if err != nil {
					t.Fatalf("Unmarshal: %v\n%s", err, data)
				}
				if !reflect.DeepEqual(got, tasks) {
					t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, tasks)
				}
			})
		}
	}
}

func TestMarshalRejectsInvalidUTF8(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		wantPath string
	}{
		{"note", Task{ID: 1, Note: "caf\xe9", Priority: PriorityLow}, "tasks[0].note"},
		{"tags", Task{ID: 1, Note: "ok", Priority: PriorityLow, Tags: "x\xff"}, "tasks[0].tags"},
	}
	for _, format := range []Format{FormatJSON, FormatYAML} {
		for _, tt := range tests {
			t.Run(string(format)+"/"+tt.name, func(t *testing.T) {
				data, err := Marshal([]Task{tt.task}, format)
				if err == nil {
					t.Fatalf("expected error, got %q", data)
				}
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if ve.Path != tt.wantPath {
					t.Errorf("path: got %q, want %q", ve.Path, tt.wantPath)
				}
			})
		}
	}
}

func TestValidateText(t *testing.T) {
	if err := ValidateText("note", "Café “quotes”"); err != nil {
		t.Errorf("valid text rejected: %v", err)
	}
	if err := ValidateText("note", "caf\xe9"); err == nil {
		t.Error("invalid UTF-8 accepted")
	}
}

func TestMarshalJSONLayout(t *testing.T) {
	data, err := Marshal([]Task{{ID: 1, Note: "n", Priority: PriorityLow, Tags: "t"}}, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.HasSuffix(s, "}\n") {
		t.Errorf("expected trailing newline, got %q", s)
	}
	if !strings.Contains(s, "\n  \"schema_version\": 1,") {
		t.Errorf("expected 2-space indentation, got:\n%s", s)
	}
}

func TestMarshalNilTasks(t *testing.T) {
	data, err := Marshal(nil, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"tasks": []`) {
		t.Errorf("nil tasks should encode as an empty array:\n%s", data)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		data string
		want Format
	}{
		{`{"schema_version": 1}`, FormatJSON},
		{"  \n\t{}", FormatJSON},
		{"schema_version: 1\n", FormatYAML},
		{"", FormatYAML},
	}
	for _, tt := range tests {
		if got := DetectFormat([]byte(tt.data)); got != tt.want {
			t.Errorf("DetectFormat(%q): got %s, want %s", tt.data, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q): got %s, %v; want %s", input, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml): expected error")
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{
			name: "not a document",
			data: "{not json",
		},
		{
			name: "empty",
			data: "",
		},
		{
			name:     "wrong schema version",
			data:     `{"schema_version": 2, "tasks": []}`,
			wantPath: "schema_version",
		},
		{
			name: "missing tasks",
			data: `{"schema_version": 1}`,
		},
		{
			name:     "bad priority",
			data:     `{"schema_version": 1, "tasks": [{"id": 1, "note": "n", "priority": "Urgent", "tags": ""}]}`,
			wantPath: "tasks[0].priority",
		},
		{
			name:     "zero id",
			data:     `{"schema_version": 1, "tasks": [{"id": 0, "note": "n", "priority": "Low", "tags": ""}]}`,
			wantPath: "tasks[0].id",
		},
		{
			name:     "fractional id",
			data:     `{"schema_version": 1, "tasks": [{"id": 1.5, "note": "n", "priority": "Low", "tags": ""}]}`,
			wantPath: "tasks[0].id",
		},
		{
			name:     "duplicate id",
			data:     `{"schema_version": 1, "tasks": [{"id": 1, "note": "a", "priority": "Low", "tags": ""}, {"id": 1, "note": "b", "priority": "Low", "tags": ""}]}`,
			wantPath: "tasks[1].id",
		},
		{
			name:     "id gap",
			data:     `{"schema_version": 1, "tasks": [{"id": 1, "note": "a", "priority": "Low", "tags": ""}, {"id": 3, "note": "b", "priority": "Low", "tags": ""}]}`,
			wantPath: "tasks[1].id",
		},
		{
			name:     "ids out of order",
			data:     `{"schema_version": 1, "tasks": [{"id": 2, "note": "a", "priority": "Low", "tags": ""}, {"id": 1, "note": "b", "priority": "Low", "tags": ""}]}`,
			wantPath: "tasks[0].id",
		},
		{
			name:     "missing tags",
			data:     `{"schema_version": 1, "tasks": [{"id": 1, "note": "a", "priority": "Low"}]}`,
			wantPath: "tasks[0]",
		},
		{
			name:     "yaml bad priority",
			data:     "schema_version: 1\ntasks:\n  - id: 1\n    note: a\n    priority: soon\n    tags: ''\n",
			wantPath: "tasks[0].priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := Unmarshal([]byte(tt.data))
			if err == nil {
				t.Fatalf("expected error, got tasks %+v", tasks)
			}
			if tt.wantPath == "" {
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q does not mention %q", err, tt.wantPath)
			}
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":                   "",
		"#":                  "",
		"/tasks/0/id":        "tasks[0].id",
		"#/schema_version":   "schema_version",
		"/a~1b/c~0d":         "a/b.c~d",
		"/tasks/12/priority": "tasks[12].priority",
	}
	for in, want := range tests {
		if got := jsonPointerToPath(in); got != want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", in, got, want)
		}
	}
}
