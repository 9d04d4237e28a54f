package todo

// SchemaURL identifies the embedded task file schema.
const SchemaURL = "https://github.com/nibzard/tasker/tasks.schema.json"

// Schema is the JSON Schema every task file must satisfy.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "tasker task file",
  "type": "object",
  "required": ["schema_version", "tasks"],
  "additionalProperties": false,
  "properties": {
    "schema_version": { "const": 1 },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "note", "priority", "tags"],
        "additionalProperties": false,
        "properties": {
          "id": { "type": "integer", "minimum": 1 },
          "note": { "type": "string" },
          "priority": { "enum": ["Low", "Medium", "High"] },
          "tags": { "type": "string" }
        }
      }
    }
  }
}
`
