package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/okian/nestegg/internal/domain/model"
)

// inputRecordSchema describes the body of POST /api/projection.
// Ages are whole years in [0, model.MaxAge]; amounts and percentages are
// plain numbers.
var inputRecordSchema = map[string]interface{}{ //nolint:gochecknoglobals // immutable schema document
	"$schema":              "http://json-schema.org/draft-07/schema#",
	"type":                 "object",
	"additionalProperties": false,
	"required":             []interface{}{"age", "balance", "salary", "contribution", "match", "roi", "retirementAge"},
	"properties": map[string]interface{}{
		"age":           ageSchema("current age in whole years; fractional ages are rejected"),
		"balance":       map[string]interface{}{"type": "number"},
		"salary":        map[string]interface{}{"type": "number"},
		"contribution":  map[string]interface{}{"type": "number"},
		"match":         map[string]interface{}{"type": "number"},
		"roi":           map[string]interface{}{"type": "number"},
		"retirementAge": ageSchema("target retirement age in whole years; fractional ages are rejected"),
	},
}

func ageSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     model.MaxAge,
		"description": description,
	}
}

// compiledSchema is built once; the schema document is static.
var compiledSchema = func() *gojsonschema.Schema { //nolint:gochecknoglobals // compiled once
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(inputRecordSchema))
	if err != nil {
		panic(fmt.Sprintf("input record schema: %v", err))
	}
	return s
}()

// validateInputRecord checks a raw JSON body against the Input Record schema.
// Malformed JSON wraps ErrBadRequest; schema violations wrap ErrSchema.
func validateInputRecord(body []byte) error {
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrSchema, strings.Join(errs, "; "))
	}
	return nil
}
