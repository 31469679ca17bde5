package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const secret = "test-secret"

func TestIssueParseRoundTrip(t *testing.T) {
	signed, jti, err := Issue(secret, "user-1", "STUDENT", TypeAccess, time.Minute)
	assert.NoError(t, err)
	assert.NotEmpty(t, jti)

	claims, err := Parse(secret, signed)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "STUDENT", claims.Role)
	assert.Equal(t, TypeAccess, claims.Type)
	assert.Equal(t, jti, claims.JTI)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, _, err := Issue(secret, "user-1", "STUDENT", TypeAccess, time.Minute)
	assert.NoError(t, err)

	_, err = Parse("other-secret", signed)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	signed, _, err := Issue(secret, "user-1", "STUDENT", TypeAccess, -time.Minute)
	assert.NoError(t, err)

	_, err = Parse(secret, signed)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(secret, "not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokenType(t *testing.T) {
	signed, _, err := Issue(secret, "user-1", "ADMIN", TypeRefresh, time.Hour)
	assert.NoError(t, err)

	claims, err := Parse(secret, signed)
	assert.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.Type)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestFromAuthHeader(t *testing.T) {
	testCases := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"bearer abc.def.ghi", "abc.def.ghi", false},
		{"  Bearer   abc.def.ghi  ", "abc.def.ghi", false},
		{"abc.def.ghi", "abc.def.ghi", false},
		{"", "", true},
		{"Bearer ", "", true},
		{"   ", "", true},
	}

	for _, tt := range testCases {
		got, err := FromAuthHeader(tt.header)
		if tt.wantErr {
			assert.Error(t, err, "header %q", tt.header)
			continue
		}
		assert.NoError(t, err, "header %q", tt.header)
		assert.Equal(t, tt.want, got)
	}
}
