// Package auth implements the mock login widget and its form validation.
package auth

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"unicode/utf16"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

//go:embed schema/login.schema.json
var schemaBytes []byte

const schemaName = "login.schema.json"

// MinPasswordLength is counted in UTF-16 code units, the way browsers
// measure input length.
const MinPasswordLength = 6

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// Form field names.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPassword = "password"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldPhone, FieldPassword}

// Form is a submitted login form.
type Form struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Errors maps a field name to its message. Empty means the form is valid.
type Errors map[string]string

// rule is a failed schema keyword and the message shown for it. Within a
// field the first failing rule wins.
type rule struct {
	keyword string
	message string
}

var messages = map[string][]rule{
	FieldName: {
		{"required", "Name is required"},
		{"not", "Name is required"},
	},
	FieldEmail: {
		{"required", "Email is required"},
		{"not", "Email is required"},
		{"pattern", "Email is invalid"},
	},
	FieldPhone: {
		{"required", "Phone is required"},
		{"not", "Phone is required"},
		{"pattern", "Enter a valid phone number"},
	},
	FieldPassword: {
		{"required", "Password is required"},
		{"not", "Password is required"},
		{"format", "Password must be at least 6 characters"},
	},
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		c.AssertFormat()
		c.RegisterFormat(passwordFormat)
		if err := c.AddResource(schemaName, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaName)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// passwordFormat accepts strings of at least MinPasswordLength UTF-16 code
// units. minLength counts code points, which rejects "😀😀😀".
var passwordFormat = &jsonschema.Format{
	Name: "password",
	Validate: func(v any) error {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		if n := utf16Len(s); n < MinPasswordLength {
			return fmt.Errorf("length %d is less than %d", n, MinPasswordLength)
		}
		return nil
	},
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Validate checks f against the login schema. The error return is only for
// schema compilation failures; field problems come back in Errors.
func Validate(f Form) (Errors, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst := map[string]any{
		FieldName:     f.Name,
		FieldEmail:    f.Email,
		FieldPhone:    f.Phone,
		FieldPassword: f.Password,
	}

	err = schema.Validate(inst)
	if err == nil {
		return Errors{}, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	failed := make(map[string]map[string]bool)
	collectFailures(ve, failed)
	return toMessages(failed), nil
}

// collectFailures walks the error tree and records the failing keyword of
// every leaf, keyed by the top-level field it belongs to.
func collectFailures(ve *jsonschema.ValidationError, failed map[string]map[string]bool) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectFailures(cause, failed)
		}
		return
	}

	if req, ok := ve.ErrorKind.(*kind.Required); ok {
		for _, field := range req.Missing {
			mark(failed, field, "required")
		}
		return
	}

	if len(ve.InstanceLocation) == 0 || ve.ErrorKind == nil {
		return
	}
	kw := ve.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		return
	}
	mark(failed, ve.InstanceLocation[0], kw[0])
}

func mark(failed map[string]map[string]bool, field, keyword string) {
	if failed[field] == nil {
		failed[field] = make(map[string]bool)
	}
	failed[field][keyword] = true
}

func toMessages(failed map[string]map[string]bool) Errors {
	out := Errors{}
	for field, keywords := range failed {
		for _, r := range messages[field] {
			if keywords[r.keyword] {
				out[field] = r.message
				break
			}
		}
	}
	return out
}
