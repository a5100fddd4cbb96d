package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,is-phone"`
	Role     string `json:"role" validate:"omitempty,is-user-role"`
}

func TestValidate_Success(t *testing.T) {
	v := New()

	err := v.Validate(&signupPayload{
		Email:    "user@test.com",
		Password: "secret123",
		Phone:    "+8801712345678",
		Role:     "customer",
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&signupPayload{Password: "short"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.NotContains(t, vErr.Errors, "Email")
}

func TestValidate_MinLengthMessage(t *testing.T) {
	v := New()

	err := v.Validate(&signupPayload{Email: "user@test.com", Password: "abc"})
	require.Error(t, err)

	vErr := err.(*ValidationError)
	assert.Equal(t, "Must be at least 6 characters long", vErr.Errors["password"])
}

func TestValidate_UserRoleTag(t *testing.T) {
	v := New()

	for _, role := range []string{"customer", "professional", "admin", ""} {
		err := v.Validate(&signupPayload{
			Email: "user@test.com", Password: "secret123", Role: role,
		})
		assert.NoError(t, err, "role %q should pass", role)
	}

	err := v.Validate(&signupPayload{
		Email: "user@test.com", Password: "secret123", Role: "superuser",
	})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Equal(t, "Must be a valid role", vErr.Errors["role"])
}

func TestValidate_PhoneTag(t *testing.T) {
	v := New()

	valid := []string{"01712345678", "+880 171 2345", "(02) 9123-456"}
	for _, phone := range valid {
		err := v.Validate(&signupPayload{
			Email: "user@test.com", Password: "secret123", Phone: phone,
		})
		assert.NoError(t, err, "phone %q should pass", phone)
	}

	invalid := []string{"123", "not-a-phone-number", "123456789012345678"}
	for _, phone := range invalid {
		err := v.Validate(&signupPayload{
			Email: "user@test.com", Password: "secret123", Phone: phone,
		})
		assert.Error(t, err, "phone %q should fail", phone)
	}
}
