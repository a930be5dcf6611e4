package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLoginError(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    ErrorKind
	}{
		{
			name:    "unknown email",
			message: "User with this email does not exist",
			want:    ErrorKindEmail,
		},
		{
			name:    "wrong password",
			message: "Invalid password",
			want:    ErrorKindPassword,
		},
		{
			name:    "deactivated account",
			message: "This account is inactive",
			want:    ErrorKindAccount,
		},
		{
			name:    "unrecognized message",
			message: "Something went wrong",
			want:    ErrorKindGeneral,
		},
		{
			name:    "empty message",
			message: "",
			want:    ErrorKindGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLoginError(tt.message))
		})
	}
}

func TestNewLoginError(t *testing.T) {
	err := NewLoginError("Invalid password")
	assert.Equal(t, "Invalid password", err.Error())
	assert.Equal(t, ErrorKindPassword, err.Kind)

	// Typed error survives wrapping.
	var loginErr *LoginError
	wrapped := errors.Join(errors.New("login failed"), err)
	assert.True(t, errors.As(wrapped, &loginErr))
	assert.Equal(t, ErrorKindPassword, loginErr.Kind)
}

func TestRole_DashboardPath(t *testing.T) {
	assert.Equal(t, "/dashboard/admin", RoleAdmin.DashboardPath())
	assert.Equal(t, "/dashboard/reader", RoleReader.DashboardPath())
	assert.Equal(t, "/dashboard/reader", Role("librarian").DashboardPath())
}

func TestUser_IsAdmin(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleReader}).IsAdmin())
}
