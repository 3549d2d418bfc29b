package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const worldGenSchemaURL = "worldgen.schema.json"

const worldGenSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "seed": {"type": "integer"},
    "chunk_size": {
      "type": "array",
      "items": {"type": "integer", "minimum": 1},
      "minItems": 3,
      "maxItems": 3
    },
    "noise": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "backend": {"enum": ["simplex", "perlin"]},
        "perlin_alpha": {"type": "number"},
        "perlin_beta": {"type": "number"},
        "perlin_octaves": {"type": "integer", "minimum": 1}
      }
    },
    "biome": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "slots": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "additionalProperties": false,
            "required": ["type", "weight"],
            "properties": {
              "type": {"enum": ["mountains", "flat", "quarry"]},
              "weight": {"type": "number", "exclusiveMinimum": 0}
            }
          }
        },
        "blend_threshold": {"type": "number", "minimum": 0, "maximum": 1},
        "scale": {"type": "number", "exclusiveMinimum": 0},
        "blend": {"type": "boolean"}
      }
    },
    "flat": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "min_height": {"type": "integer"},
        "max_height": {"type": "integer"},
        "horizontal_scale": {"type": "number", "exclusiveMinimum": 0},
        "vertical_scale": {"type": "number", "exclusiveMinimum": 0}
      }
    },
    "mountain": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "log_base": {"type": "number", "exclusiveMinimum": 1},
        "horizontal_scale": {"type": "number", "exclusiveMinimum": 0},
        "vertical_scale": {"type": "number", "exclusiveMinimum": 0}
      }
    },
    "quarry": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "min_height": {"type": "integer"},
        "max_height": {"type": "integer"},
        "scale": {"type": "number", "exclusiveMinimum": 0}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func worldGenSchemaValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(worldGenSchemaURL, strings.NewReader(worldGenSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = c.Compile(worldGenSchemaURL)
	})
	return compiledSchema, schemaErr
}

// Load reads a YAML world generation file on top of DefaultWorldGen.
// Keys missing from the file keep their default value.
func Load(path string) (WorldGen, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return WorldGen{}, err
	}
	cfg, err := Parse(raw)
	if err != nil {
		return WorldGen{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML world generation settings on top of DefaultWorldGen.
// The document is checked against the embedded schema before decoding.
func Parse(raw []byte) (WorldGen, error) {
	cfg := DefaultWorldGen()

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return cfg, fmt.Errorf("worldgen yaml: %w", err)
	}
	if doc != nil {
		if err := validateDocument(doc); err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("worldgen yaml: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("worldgen: %w", err)
	}
	return cfg, nil
}

// validateDocument runs the schema over a decoded YAML document.
// The document is normalized through JSON so numbers and maps have the shapes the validator expects.
func validateDocument(doc any) error {
	schema, err := worldGenSchemaValidator()
	if err != nil {
		return fmt.Errorf("worldgen schema: %w", err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("worldgen yaml: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(b, &normalized); err != nil {
		return fmt.Errorf("worldgen yaml: %w", err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("worldgen schema: %w", err)
	}
	return nil
}
