package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// overrideSchema is the JSON Schema every locale override file is validated
// against before decoding. The schema keeps the tagged block union closed:
// blocks with an unknown type fail validation instead of surviving as
// half-decoded data.
const overrideSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["slug"],
  "properties": {
    "slug": {"type": "string", "minLength": 1},
    "title": {"type": "string"},
    "description": {"type": "string"},
    "heading": {"type": "string"},
    "heroIntro": {"type": "string"},
    "heroImage": {"type": "string"},
    "heroImageAlt": {"type": "string"},
    "sourceUpdatedLabel": {"type": "string"},
    "tableOfContents": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "label"],
        "properties": {
          "id": {"type": "string"},
          "label": {"type": "string"}
        }
      }
    },
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "heading", "blocks"],
        "properties": {
          "id": {"type": "string"},
          "heading": {"type": "string"},
          "summary": {"type": "string"},
          "highlights": {"type": "array", "items": {"type": "string"}},
          "blocks": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["type"],
              "properties": {
                "type": {"enum": ["subheading", "paragraph", "list", "note"]},
                "text": {"type": "string"},
                "items": {"type": "array", "items": {"type": "string"}},
                "tone": {"enum": ["tip", "highlight", "compliance", "note"]}
              }
            }
          }
        }
      }
    },
    "bullets": {"type": "array", "items": {"type": "string"}},
    "faq": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "answer"],
        "properties": {
          "question": {"type": "string"},
          "answer": {"type": "string"}
        }
      }
    },
    "cta": {
      "type": "object",
      "properties": {
        "title": {"type": "string"},
        "description": {"type": "string"},
        "primaryLabel": {"type": "string"},
        "primaryHref": {"type": "string"},
        "secondaryLabel": {"type": "string"},
        "secondaryHref": {"type": "string"}
      }
    },
    "seo": {
      "type": "object",
      "properties": {
        "metaTitle": {"type": "string"},
        "metaDescription": {"type": "string"},
        "keywords": {"type": "array", "items": {"type": "string"}}
      }
    },
    "owner": {"type": "string"},
    "status": {"enum": ["draft", "published"]},
    "lastReviewedAt": {"type": "string"},
    "reviewEveryDays": {"type": "integer", "minimum": 1}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func overrideSchemaCompiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(overrideSchema))
		if err != nil {
			schemaErr = fmt.Errorf("failed to parse override schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("override.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("failed to add override schema resource: %w", err)
			return
		}

		compiledSchema, schemaErr = compiler.Compile("override.schema.json")
	})
	return compiledSchema, schemaErr
}

// collectInvalidFields walks the validation error tree and returns the
// top-level field name of every failing instance location.
func collectInvalidFields(verr *jsonschema.ValidationError, fields map[string]struct{}) {
	if len(verr.Causes) == 0 {
		if len(verr.InstanceLocation) > 0 {
			fields[verr.InstanceLocation[0]] = struct{}{}
		}
		return
	}
	for _, cause := range verr.Causes {
		collectInvalidFields(cause, fields)
	}
}

// DecodeOverride parses a locale override file. Fields that fail schema
// validation are dropped individually and reported back by name; the
// remaining fields still apply, so one malformed field never discards a whole
// override. Only an unreadable file or a missing/invalid slug is an error.
func DecodeOverride(data []byte) (*Override, []string, error) {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("override is not valid JSON: %w", err)
	}

	object, ok := instance.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("override must be a JSON object")
	}

	schema, err := overrideSchemaCompiled()
	if err != nil {
		return nil, nil, err
	}

	var dropped []string
	if err := schema.Validate(instance); err != nil {
		verr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, nil, fmt.Errorf("override validation failed: %w", err)
		}

		invalid := make(map[string]struct{})
		collectInvalidFields(verr, invalid)

		// A top-level failure with no instance path (e.g. missing slug)
		// cannot be repaired by dropping a field.
		if len(invalid) == 0 {
			return nil, nil, fmt.Errorf("override validation failed: %w", err)
		}

		for field := range invalid {
			if field == "slug" {
				return nil, nil, fmt.Errorf("override has invalid slug: %w", err)
			}
			delete(object, field)
			dropped = append(dropped, field)
		}
		sort.Strings(dropped)
	}

	cleaned, err := json.Marshal(object)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to re-encode override: %w", err)
	}

	var override Override
	if err := json.Unmarshal(cleaned, &override); err != nil {
		return nil, nil, fmt.Errorf("failed to decode override: %w", err)
	}
	if strings.TrimSpace(override.Slug) == "" {
		return nil, nil, fmt.Errorf("override is missing a slug")
	}

	return &override, dropped, nil
}
