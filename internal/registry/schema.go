package registry

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// registrySchema is the JSON Schema every registry document must satisfy
// before the pipeline will touch it. Validation failures are configuration
// errors; the pipeline never guesses at a half-formed registry.
const registrySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["apis"],
  "properties": {
    "apis": {
      "type": "array",
      "items": { "$ref": "#/definitions/api" }
    },
    "template": { "$ref": "#/definitions/api" }
  },
  "additionalProperties": false,
  "definitions": {
    "api": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": { "type": "string", "minLength": 1 },
        "url": { "type": "string" },
        "schema_path": { "type": "string" },
        "entity_name": { "type": "string" },
        "id_field": { "type": "string" },
        "options": {
          "type": "object",
          "properties": {
            "generate_models": { "type": "boolean" },
            "generate_api": { "type": "boolean" },
            "generate_handlers": { "type": "boolean" },
            "update_router": { "type": "boolean" },
            "include_models": { "type": "array", "items": { "type": "string" } },
            "exclude_models": { "type": "array", "items": { "type": "string" } }
          },
          "additionalProperties": false
        }
      },
      "additionalProperties": false
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("registry.schema.json", registrySchema)

// validateDocument checks raw registry JSON against the embedded schema.
func validateDocument(raw []byte) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("registry is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("registry does not match schema: %w", err)
	}
	return nil
}
