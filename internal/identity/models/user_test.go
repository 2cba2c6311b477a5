package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/pkg/domain"
	dErrors "fittrack/pkg/domain-errors"
)

func TestRoleForPosition(t *testing.T) {
	assert.Equal(t, domain.RoleAdmin, RoleForPosition(0))
	assert.Equal(t, domain.RoleUser, RoleForPosition(1))
	assert.Equal(t, domain.RoleUser, RoleForPosition(42))
}

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"complete", RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw"}, false},
		{"missing username", RegisterRequest{Email: "a@x.com", Password: "pw"}, true},
		{"blank email", RegisterRequest{Username: "alice", Email: "   ", Password: "pw"}, true},
		{"missing password", RegisterRequest{Username: "alice", Email: "a@x.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRegisterRequestTrimsButKeepsCase(t *testing.T) {
	req := RegisterRequest{Username: "  Alice ", Email: " A@X.com", Password: " pw "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Alice", req.Username)
	assert.Equal(t, "A@X.com", req.Email)
	assert.Equal(t, " pw ", req.Password)
}

func TestUpdateProfileRequestValidate(t *testing.T) {
	req := UpdateProfileRequest{Username: "bob", Email: ""}
	assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeInvalidInput))
}
