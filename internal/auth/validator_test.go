package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "+1 555-123-4567",
		Password: "secret1",
	}
}

func TestValidate_Valid(t *testing.T) {
	errs, err := Validate(validForm())
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidate_AllBlank(t *testing.T) {
	errs, err := Validate(Form{Name: "   ", Email: " ", Phone: "\t"})
	require.NoError(t, err)

	assert.Equal(t, Errors{
		FieldName:     "Name is required",
		FieldEmail:    "Email is required",
		FieldPhone:    "Phone is required",
		FieldPassword: "Password is required",
	}, errs)
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"ada@example.com", ""},
		{"a.b@c.io", ""},
		{"ada@example", "Email is invalid"},
		{"ada example.com", "Email is invalid"},
		{"@example.com", "Email is invalid"},
		{" ada@example.com", "Email is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			f := validForm()
			f.Email = tt.email
			errs, err := Validate(f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, errs[FieldEmail])
		})
	}
}

func TestValidate_Phone(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"5551234567", ""},
		{"555-123-4567", ""},
		{"(555) 123-4567", ""},
		{"+44 555 123 4567", ""},
		{"+91-555-123-4567", ""},
		{"12345", "Enter a valid phone number"},
		{"phone", "Enter a valid phone number"},
		{"555-123-45678", "Enter a valid phone number"},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			f := validForm()
			f.Phone = tt.phone
			errs, err := Validate(f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, errs[FieldPhone])
		})
	}
}

func TestValidate_Password(t *testing.T) {
	f := validForm()
	f.Password = "12345"
	errs, err := Validate(f)
	require.NoError(t, err)
	assert.Equal(t, Errors{FieldPassword: "Password must be at least 6 characters"}, errs)

	f.Password = "123456"
	errs, err = Validate(f)
	require.NoError(t, err)
	assert.Empty(t, errs)

	// Whitespace counts toward length.
	f.Password = "      "
	errs, err = Validate(f)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidate_PasswordLengthInUTF16Units(t *testing.T) {
	f := validForm()
	f.Password = "😀😀😀"
	errs, err := Validate(f)
	require.NoError(t, err)
	assert.Empty(t, errs, "each emoji is two UTF-16 units")

	f.Password = "😀😀"
	errs, err = Validate(f)
	require.NoError(t, err)
	assert.Equal(t, Errors{FieldPassword: "Password must be at least 6 characters"}, errs)
}

func TestValidate_UnicodeWhitespaceIsBlank(t *testing.T) {
	for _, blank := range []string{"\u00a0", "\u2003 ", "\ufeff", "\t\v"} {
		f := validForm()
		f.Name = blank
		f.Email = blank
		f.Phone = blank
		errs, err := Validate(f)
		require.NoError(t, err)
		assert.Equal(t, Errors{
			FieldName:  "Name is required",
			FieldEmail: "Email is required",
			FieldPhone: "Phone is required",
		}, errs, "%q", blank)
	}
}

func TestValidate_EmailRejectsUnicodeWhitespace(t *testing.T) {
	f := validForm()
	f.Email = "a\u00a0b@example.com"
	errs, err := Validate(f)
	require.NoError(t, err)
	assert.Equal(t, Errors{FieldEmail: "Email is invalid"}, errs)
}

func TestValidate_FieldsAreIndependent(t *testing.T) {
	f := validForm()
	f.Name = ""
	f.Phone = "nope"

	errs, err := Validate(f)
	require.NoError(t, err)
	assert.Equal(t, Errors{
		FieldName:  "Name is required",
		FieldPhone: "Enter a valid phone number",
	}, errs)
}
