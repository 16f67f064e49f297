package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// optimizationSchema describes the minimum the model must return for its
// answer to be taken at face value. suggestions is checked by the caller so a
// malformed list degrades to an empty one instead of failing the whole reply.
const optimizationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["optimizedResume", "matchScore"],
  "properties": {
    "optimizedResume": {"type": "string", "minLength": 1},
    "matchScore": {"type": "number"}
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(optimizationSchema))
	})
	return schema, schemaErr
}

// ValidateOptimization validates a decoded model reply against the
// optimization schema.
func ValidateOptimization(m map[string]interface{}) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
