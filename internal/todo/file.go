package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the task file format version written by Marshal.
const SchemaVersion = 1

// Format selects the encoding of a task file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. An empty name means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q, must be one of: json, yaml", name)
}

// DetectFormat guesses the encoding of data: a document whose first
// non-space byte is '{' is JSON, anything else is YAML.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// File represents the task file structure.
type File struct {
	SchemaVersion int    `json:"schema_version" yaml:"schema_version"`
	Tasks         []Task `json:"tasks" yaml:"tasks"`
}

// Marshal encodes tasks as a task file.
// JSON output uses 2-space indentation and a trailing newline. Notes and
// tags must be valid UTF-8.
func Marshal(tasks []Task, format Format) ([]byte, error) {
	for i, t := range tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if err := ValidateText(path+".note", t.Note); err != nil {
			return nil, fmt.Errorf("marshal task file: %w", err)
		}
		if err := ValidateText(path+".tags", t.Tags); err != nil {
			return nil, fmt.Errorf("marshal task file: %w", err)
		}
	}

	f := File{SchemaVersion: SchemaVersion, Tasks: tasks}
	if f.Tasks == nil {
		f.Tasks = []Task{}
	}

	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal task file: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("marshal task file: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshal task file: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("marshal task file: unknown format %q", format)
	}
}

// Unmarshal decodes and validates a task file. The format is detected
// from the content. Validation failures are returned as *ValidationError
// values joined into one error.
func Unmarshal(data []byte) ([]Task, error) {
	format := DetectFormat(data)

	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	if errs := validateDocument(doc); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var f File
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	default:
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}

	if errs := validateTasks(f.Tasks); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if f.Tasks == nil {
		f.Tasks = []Task{}
	}
	return f.Tasks, nil
}

// decodeDocument decodes data into the generic form expected by the
// schema validator (JSON numbers, string-keyed maps).
func decodeDocument(data []byte, format Format) (interface{}, error) {
	if format == FormatJSON {
		var doc interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse task file: %w", err)
		}
		return doc, nil
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("parse task file: empty document")
	}
	// Round-trip through JSON so YAML ints and maps look like JSON values.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	return doc, nil
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func fileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(SchemaURL, strings.NewReader(Schema)); err != nil {
			schemaErr = fmt.Errorf("load task file schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(SchemaURL)
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a decoded document against the task file schema.
func validateDocument(doc interface{}) []error {
	schema, err := fileSchema()
	if err != nil {
		return []error{err}
	}
	if err := schema.Validate(doc); err != nil {
		return schemaErrors(err)
	}
	return nil
}

// validateTasks performs the checks the schema cannot express.
func validateTasks(tasks []Task) []error {
	var errs []error
	seen := make(map[int]int, len(tasks))
	for i, task := range tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if task.ID < 1 {
			errs = append(errs, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("must be positive, got %d", task.ID),
			})
		}
		if !task.Priority.Valid() {
			errs = append(errs, &ValidationError{
				Path: path + ".priority",
				Err:  fmt.Errorf("invalid priority %q, must be one of: Low, Medium, High", task.Priority),
			})
		}
		if first, dup := seen[task.ID]; dup {
			errs = append(errs, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("duplicate id %d, also used by tasks[%d]", task.ID, first),
			})
			continue
		}
		seen[task.ID] = i
		if task.ID >= 1 && task.ID != i+1 {
			errs = append(errs, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("out of sequence, got %d, want %d", task.ID, i+1),
			})
		}
	}
	return errs
}

func schemaErrors(err error) []error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []error{err}
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return errs
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
