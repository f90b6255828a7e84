package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type report struct {
	Status string `json:"status" validate:"oneof=reviewed actioned dismissed"`
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(signup{Username: "bob123", Email: "bob@x.com", Password: "secret1"}))
}

func TestStructFieldMessages(t *testing.T) {
	err := Struct(signup{Username: "bo", Email: "not-an-email", Password: "123"})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)

	byField := map[string]string{}
	for _, f := range verr.Fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "Username must be at least 3 characters long", byField["username"])
	assert.Equal(t, "Please provide a valid email address", byField["email"])
	assert.Equal(t, "Password must be at least 6 characters long", byField["password"])
}

func TestStructGenericMessage(t *testing.T) {
	err := Struct(report{Status: "bogus"})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status must be one of: reviewed actioned dismissed", verr.Fields[0].Message)
}
