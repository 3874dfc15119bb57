package jobconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The payload maps a language id to that language's opaque field diff.
const diffPayloadSchema = `{
  "type": "object",
  "propertyNames": {"pattern": "^-?[0-9]+$"},
  "additionalProperties": {"type": ["object", "array", "null"]}
}`

var (
	diffSchemaOnce sync.Once
	diffSchema     *jsonschema.Schema
	diffSchemaErr  error
)

func compiledDiffSchema() (*jsonschema.Schema, error) {
	diffSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("diff_payload.json", strings.NewReader(diffPayloadSchema)); err != nil {
			diffSchemaErr = err
			return
		}
		diffSchema, diffSchemaErr = compiler.Compile("diff_payload.json")
	})
	return diffSchema, diffSchemaErr
}

func decodeDiffPayload(raw string) (map[string]json.RawMessage, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var generic any
	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()
	if err := decoder.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decode diff payload: %w", err)
	}
	schema, err := compiledDiffSchema()
	if err != nil {
		return nil, fmt.Errorf("compile diff payload schema: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("diff payload: %w", err)
	}
	var payloads map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &payloads); err != nil {
		return nil, fmt.Errorf("decode diff payload: %w", err)
	}
	return payloads, nil
}

// DiffFor returns the diff payload stored for languageID. A configuration
// without a payload for the language yields nil.
func (c *Configuration) DiffFor(languageID int) (json.RawMessage, error) {
	if c == nil {
		return nil, nil
	}
	payloads, err := decodeDiffPayload(c.DiffPayload)
	if err != nil {
		return nil, &ConfigurationError{Key: c.Key, Field: "flexformdiff", Err: err}
	}
	payload, ok := payloads[strconv.Itoa(languageID)]
	if !ok || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil, nil
	}
	return payload, nil
}
