package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"github.com/yoockh/resumecraft/internal/models"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	tok, exp, err := j.Issue(&models.User{ID: "u-1", Email: "a@b.c", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))
	assert.LessOrEqual(t, len(tok), selfIssuedMaxLen)

	id, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u-1", Email: "a@b.c", Role: models.RoleAdmin}, id)
}

func TestJWT_RejectsTamperedAndExpired(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	tok, _, err := j.Issue(&models.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewJWT("other", time.Minute).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	j.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u-1", Issuer: issuer})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

type fakeProvider struct {
	calls int
	ok    bool
}

func (f *fakeProvider) Verify(_ context.Context, _ string) (ExternalIdentity, error) {
	f.calls++
	if !f.ok {
		return ExternalIdentity{}, errors.New("bad token")
	}
	return ExternalIdentity{Subject: "g-1", Email: "g@example.com"}, nil
}

func resolveTo(id string) Resolver {
	return func(_ context.Context, ext ExternalIdentity) (Identity, error) {
		return Identity{UserID: id, Email: ext.Email, Role: models.RoleUser}, nil
	}
}

func TestAuthenticate_ShortTokenTriesLocalFirst(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	tok, _, _ := j.Issue(&models.User{ID: "u-1"})
	p := &fakeProvider{ok: true}

	id, err := NewAuthenticator(j, p, resolveTo("g-user")).Authenticate(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Zero(t, p.calls)
}

func TestAuthenticate_LongTokenTriesProviderFirst(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	p := &fakeProvider{ok: true}
	long := strings.Repeat("x", selfIssuedMaxLen+1)

	id, err := NewAuthenticator(j, p, resolveTo("g-user")).Authenticate(context.Background(), long)
	require.NoError(t, err)
	assert.Equal(t, "g-user", id.UserID)
	assert.Equal(t, 1, p.calls)
}

func TestAuthenticate_FallsBack(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	// short garbage: local fails, provider accepts
	p := &fakeProvider{ok: true}
	id, err := NewAuthenticator(j, p, resolveTo("g-user")).Authenticate(context.Background(), "garbage")
	require.NoError(t, err)
	assert.Equal(t, "g-user", id.UserID)

	// both fail
	p = &fakeProvider{}
	_, err = NewAuthenticator(j, p, resolveTo("g-user")).Authenticate(context.Background(), strings.Repeat("y", 700))
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, 1, p.calls)

	// no provider configured
	_, err = NewAuthenticator(j, nil, nil).Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = NewAuthenticator(j, nil, nil).Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGoogleVerifier(t *testing.T) {
	g := NewGoogleVerifier("client-1")
	g.validate = func(_ context.Context, token, aud string) (*idtoken.Payload, error) {
		assert.Equal(t, "client-1", aud)
		if token != "good" {
			return nil, errors.New("invalid")
		}
		return &idtoken.Payload{Subject: "g-1", Claims: map[string]any{
			"email": "Jane@Example.com", "email_verified": true, "name": "Jane",
		}}, nil
	}

	ext, err := g.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, ExternalIdentity{Subject: "g-1", Email: "jane@example.com", Name: "Jane"}, ext)

	_, err = g.Verify(context.Background(), "bad")
	assert.Error(t, err)

	_, err = NewGoogleVerifier("").Verify(context.Background(), "good")
	assert.Error(t, err)
}

func TestIdentityFromPayload_Unverified(t *testing.T) {
	_, err := identityFromPayload(&idtoken.Payload{Claims: map[string]any{"email": "a@b.c"}})
	assert.Error(t, err)
}
