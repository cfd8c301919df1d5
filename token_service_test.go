package blog_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	blog "github.com/goliatone/go-blog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testIdentity struct {
	id       string
	fullName string
	email    string
	role     string
}

func (t testIdentity) ID() string       { return t.id }
func (t testIdentity) FullName() string { return t.fullName }
func (t testIdentity) Email() string    { return t.email }
func (t testIdentity) Role() string     { return t.role }

var signingKey = []byte("test-signing-key-with-enough-bytes")

func newTestIdentity() testIdentity {
	return testIdentity{
		id:       "f47ac10b-58cc-0372-8567-0e02b2c3d479",
		fullName: "Ada Lovelace",
		email:    "ada@example.com",
		role:     blog.RoleUser,
	}
}

func TestTokenServiceGenerateAndValidate(t *testing.T) {
	svc := blog.NewTokenService(signingKey, 24, "go-blog", nil)
	identity := newTestIdentity()

	token, err := svc.Generate(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, identity.id, claims.UserID())
	assert.Equal(t, identity.fullName, claims.FullName)
	assert.Equal(t, identity.email, claims.Email)
	assert.Equal(t, identity.role, claims.Role())
	assert.Equal(t, "go-blog", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.Expires(), time.Minute)
}

func TestTokenServiceGenerateNilIdentity(t *testing.T) {
	svc := blog.NewTokenService(signingKey, 24, "go-blog", nil)

	_, err := svc.Generate(nil)
	assert.Error(t, err)
}

func TestTokenServiceValidateFailures(t *testing.T) {
	svc := blog.NewTokenService(signingKey, 24, "go-blog", nil)

	valid, err := svc.Generate(newTestIdentity())
	require.NoError(t, err)

	expiredSvc := blog.NewTokenService(signingKey, -1, "go-blog", nil)
	expired, err := expiredSvc.Generate(newTestIdentity())
	require.NoError(t, err)

	otherKeySvc := blog.NewTokenService([]byte("a-completely-different-signing-key"), 24, "go-blog", nil)
	wrongKey, err := otherKeySvc.Generate(newTestIdentity())
	require.NoError(t, err)

	wrongIssuerSvc := blog.NewTokenService(signingKey, 24, "someone-else", nil)
	wrongIssuer, err := wrongIssuerSvc.Generate(newTestIdentity())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Empty token", token: ""},
		{name: "Malformed token", token: "not.a.token"},
		{name: "Tampered payload", token: tamperToken(t, valid)},
		{name: "Expired token", token: expired},
		{name: "Signed with a different key", token: wrongKey},
		{name: "Wrong issuer", token: wrongIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Validate(tt.token)
			assert.Nil(t, claims)
			require.Error(t, err)
			assert.True(t, blog.IsInvalidToken(err), "all validation failures collapse to the same error")
		})
	}
}

// tamperToken flips the role inside the payload without re-signing.
func tamperToken(t *testing.T, token string) string {
	t.Helper()

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	doctored := strings.Replace(string(payload), blog.RoleUser, blog.RoleAdmin, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(doctored))

	return strings.Join(parts, ".")
}

func TestTokenPayloadCarriesNoCredentials(t *testing.T) {
	svc := blog.NewTokenService(signingKey, 24, "go-blog", nil)

	token, err := svc.Generate(newTestIdentity())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.NotContains(t, payload, "salt")
	assert.NotContains(t, payload, "password")
	assert.NotContains(t, payload, "password_digest")
}
