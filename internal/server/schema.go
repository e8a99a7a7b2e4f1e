package server

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const debtSchema = `{
	"type": "object",
	"required": ["id", "balance", "apr", "minimum_payment"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"name": {"type": "string"},
		"kind": {"type": "string"},
		"balance": {"type": "number", "minimum": 0},
		"apr": {"type": "number", "minimum": 0, "maximum": 100},
		"minimum_payment": {"type": "number", "minimum": 0}
	}
}`

const horizonSchema = `{"type": "integer", "minimum": 1, "maximum": 1200}`

var requestSchemas = map[string]string{
	"simulate": `{
		"type": "object",
		"required": ["debts", "monthly_budget"],
		"properties": {
			"debts": {"type": "array", "minItems": 1, "items": ` + debtSchema + `},
			"monthly_budget": {"type": "number", "minimum": 0},
			"strategy": {"type": "string"},
			"max_months": ` + horizonSchema + `,
			"include_schedules": {"type": "boolean"}
		}
	}`,
	"compare": `{
		"type": "object",
		"required": ["debts", "monthly_budget"],
		"properties": {
			"debts": {"type": "array", "minItems": 1, "items": ` + debtSchema + `},
			"monthly_budget": {"type": "number", "minimum": 0},
			"max_months": ` + horizonSchema + `
		}
	}`,
	"amortize": `{
		"type": "object",
		"required": ["principal", "apr", "payment"],
		"properties": {
			"principal": {"type": "number", "minimum": 0},
			"apr": {"type": "number", "minimum": 0, "maximum": 100},
			"payment": {"type": "number", "minimum": 0},
			"max_months": ` + horizonSchema + `
		}
	}`,
	"scenarios": `{
		"type": "object",
		"required": ["debts"],
		"properties": {
			"debts": {"type": "array", "minItems": 1, "items": ` + debtSchema + `},
			"strategy": {"type": "string"},
			"scenarios": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["label", "budget"],
					"properties": {
						"label": {"type": "string", "minLength": 1},
						"budget": {"enum": ["fixed", "minimum", "minimum_plus_percent", "minimum_plus", "target_months"]},
						"amount": {"type": ["number", "string"]},
						"percent": {"type": ["number", "string"]},
						"months": {"type": "integer", "minimum": 1},
						"max_months": ` + horizonSchema + `,
						"strategy": {"type": "string"}
					}
				}
			}
		}
	}`,
}

// validators holds the compiled request schemas by endpoint.
type validators map[string]*gojsonschema.Schema

func compileSchemas() (validators, error) {
	v := make(validators, len(requestSchemas))
	for endpoint, raw := range requestSchemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compiling %s schema: %w", endpoint, err)
		}
		v[endpoint] = schema
	}
	return v, nil
}

// validate checks body against the endpoint schema and returns a readable
// summary of every violation.
func (v validators) validate(endpoint string, body []byte) error {
	schema, ok := v[endpoint]
	if !ok {
		return nil
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		msgs[i] = desc.String()
	}
	return fmt.Errorf("%w: %s", errBadRequest, strings.Join(msgs, "; "))
}
