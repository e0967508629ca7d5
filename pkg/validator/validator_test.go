package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type quantityForm struct {
	Quantity int    `json:"quantity" validate:"gte=0,lte=99"`
	Kind     string `validate:"omitempty,oneof=add set"`
}

func validForm() registerForm {
	return registerForm{
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(validForm()))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	f := validForm()
	f.Email = ""

	fields := fieldsOf(t, Validate(f))
	assert.Equal(t, "is required", fields["email"])
}

func TestValidate_Messages(t *testing.T) {
	f := validForm()
	f.Name = "A"
	f.Email = "not-an-email"
	f.Password = "12345"
	f.ConfirmPassword = "54321"

	fields := fieldsOf(t, Validate(f))
	assert.Equal(t, "must be at least 2 characters", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 6 characters", fields["password"])
	assert.Equal(t, "must match Password", fields["confirm_password"])
}

func TestValidate_Range(t *testing.T) {
	fields := fieldsOf(t, Validate(quantityForm{Quantity: 100}))
	assert.Equal(t, "must be less than or equal to 99", fields["quantity"])

	fields = fieldsOf(t, Validate(quantityForm{Quantity: -1}))
	assert.Equal(t, "must be greater than or equal to 0", fields["quantity"])

	fields = fieldsOf(t, Validate(quantityForm{Kind: "drop"}))
	assert.Contains(t, fields["Kind"], "one of")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(registerForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'name' is required")
}

func TestDecodeAndValidate(t *testing.T) {
	body := `{"name":"Ada","email":"ada@example.com","password":"secret1","confirm_password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var f registerForm
	require.NoError(t, DecodeAndValidate(req, &f))
	assert.Equal(t, "Ada", f.Name)
}

func TestDecodeAndValidate_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{invalid"))

	var f registerForm
	err := DecodeAndValidate(req, &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("guest-42", "required,max=64,excludesall=: "))
	assert.Error(t, Var("", "required"))
	assert.Error(t, Var("a:b", "excludesall=:"))
}
