package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schemas for the engine's frames. Only the fields the bot reads are
// constrained; the engine adds fields between seasons.
const configSchemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["unitInformation"],
  "properties": {
    "unitInformation": {
      "type": "array",
      "minItems": 6,
      "items": {"type": "object"}
    }
  }
}`

const turnSchemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["turnInfo", "p1Stats", "p1Units", "p2Units"],
  "properties": {
    "turnInfo": {"type": "array", "minItems": 2, "items": {"type": "integer"}},
    "p1Stats": {"type": "array", "minItems": 3, "items": {"type": "number"}},
    "p2Stats": {"type": "array", "items": {"type": "number"}},
    "p1Units": {"$ref": "#/definitions/unitLists"},
    "p2Units": {"$ref": "#/definitions/unitLists"}
  },
  "definitions": {
    "unitLists": {
      "type": "array",
      "items": {
        "type": "array",
        "items": {
          "type": "array",
          "minItems": 2,
          "items": [{"type": "number"}, {"type": "number"}]
        }
      }
    }
  }
}`

const actionSchemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["turnInfo", "events"],
  "properties": {
    "turnInfo": {"type": "array", "minItems": 2, "items": {"type": "integer"}},
    "events": {
      "type": "object",
      "required": ["breach"],
      "properties": {
        "breach": {
          "type": "array",
          "items": {
            "type": "array",
            "minItems": 5,
            "items": [
              {"type": "array", "minItems": 2, "maxItems": 2, "items": {"type": "integer"}},
              {"type": "number"},
              {},
              {},
              {"type": "integer", "enum": [1, 2]}
            ]
          }
        }
      }
    }
  }
}`

const endSchemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["turnInfo"],
  "properties": {
    "turnInfo": {"type": "array", "minItems": 1, "items": {"type": "integer"}}
  }
}`

var (
	configSchema = jsonschema.MustCompileString("config.json", configSchemaSrc)
	turnSchema   = jsonschema.MustCompileString("turn.json", turnSchemaSrc)
	actionSchema = jsonschema.MustCompileString("action.json", actionSchemaSrc)
	endSchema    = jsonschema.MustCompileString("end.json", endSchemaSrc)
)

func validate(s *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	return nil
}
