package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
)

// Per-type state schemas. A registry merge-patch (status plus optional data
// keys) must validate against the schema for the device's type before it is
// applied. This is what keeps a lock's status inside {locked, unlocked} and a
// light's inside {on, off}.
var typeSchemas = map[string]json.RawMessage{
	device.TypeLight: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"status": {"type": "string", "enum": ["on", "off"]}
		},
		"required": ["status"],
		"additionalProperties": false
	}`),
	device.TypeThermostat: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"status": {"type": "string", "enum": ["on"]},
			"temperature": {"type": "number"},
			"mode": {"type": "string"}
		},
		"required": ["status"],
		"additionalProperties": false
	}`),
	device.TypeLock: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"status": {"type": "string", "enum": ["locked", "unlocked"]}
		},
		"required": ["status"],
		"additionalProperties": false
	}`),
	device.TypeCamera: json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"status": {"type": "string", "enum": ["on", "off"]},
			"recording": {"type": "boolean"}
		},
		"required": ["status"],
		"additionalProperties": false
	}`),
}

// Validator validates state patches against per-type JSON Schema documents.
// Compiled schemas are cached keyed by their raw bytes.
type Validator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewValidator creates a new Validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{
		cache: make(map[string]*jsonschema.Schema),
	}
}

// ValidateState validates a status/data patch for the given device type.
// Unknown device types have no schema and skip validation.
func (v *Validator) ValidateState(deviceType string, patch map[string]any) error {
	doc, ok := typeSchemas[deviceType]
	if !ok {
		return nil
	}
	return v.Validate(doc, patch)
}

// Validate validates payload against the given JSON Schema document.
// Returns nil if valid, or an error describing the validation failures.
func (v *Validator) Validate(schemaDoc json.RawMessage, payload map[string]any) error {
	if len(schemaDoc) == 0 || string(schemaDoc) == "{}" || string(schemaDoc) == "null" {
		return nil // No schema = no validation
	}

	compiled, err := v.compile(schemaDoc)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	return compiled.Validate(payload)
}

func (v *Validator) compile(schemaDoc json.RawMessage) (*jsonschema.Schema, error) {
	key := string(schemaDoc)

	v.mu.RLock()
	if s, ok := v.cache[key]; ok {
		v.mu.RUnlock()
		return s, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	// Double-check after acquiring write lock
	if s, ok := v.cache[key]; ok {
		return s, nil
	}

	var schemaMap any
	if err := json.Unmarshal(schemaDoc, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaMap); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}

	v.cache[key] = compiled
	return compiled, nil
}
