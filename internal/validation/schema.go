package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid           = errors.New("validation: schema invalid")
	ErrSchemaValidation        = errors.New("validation: schema validation failed")
	ErrUnknownComponentType    = errors.New("validation: unknown component type")
	ErrUnknownOverrideField    = errors.New("validation: override field missing from base fields")
	ErrOverrideKindMismatch    = errors.New("validation: override kind differs from base field")
	ErrDuplicateComponentID    = errors.New("validation: duplicate component id")
	ErrInvalidDocument         = errors.New("validation: invalid page document")
	errComponentSchemaNotFound = errors.New("validation: no schema for component type")
)

// Issue captures a single validation failure.
type Issue struct {
	Location string
	Message  string
}

// PayloadValidationError carries the JSON schema issues for one payload.
type PayloadValidationError struct {
	Issues []Issue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, location+": "+issue.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectIssues(validationErr)
	}
	return []Issue{{Message: err.Error()}}
}

// Compile compiles a JSON schema document (draft 2020-12).
func Compile(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return compiled, nil
}

// ValidatePayload validates a decoded JSON payload against compiled.
func ValidatePayload(compiled *jsonschema.Schema, payload any) error {
	if compiled == nil {
		return nil
	}
	if err := compiled.Validate(payload); err != nil {
		return &PayloadValidationError{Issues: Issues(err), Cause: err}
	}
	return nil
}

// toPayload round-trips v through JSON so the validator sees plain maps,
// slices and json.Number values.
func toPayload(v any) (any, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
