package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/idtoken"
)

// ExternalIdentity is a person vouched for by the identity provider. It is
// not yet mapped to a local user.
type ExternalIdentity struct {
	Subject string
	Email   string
	Name    string
}

type IdentityProvider interface {
	Verify(ctx context.Context, token string) (ExternalIdentity, error)
}

type GoogleVerifier struct {
	audience string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewGoogleVerifier checks Google ID tokens minted for clientID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{audience: clientID, validate: idtoken.Validate}
}

func (g *GoogleVerifier) Verify(ctx context.Context, token string) (ExternalIdentity, error) {
	if g.audience == "" {
		return ExternalIdentity{}, errors.New("google client id is not configured")
	}
	p, err := g.validate(ctx, token, g.audience)
	if err != nil {
		return ExternalIdentity{}, err
	}
	return identityFromPayload(p)
}

func identityFromPayload(p *idtoken.Payload) (ExternalIdentity, error) {
	email, _ := p.Claims["email"].(string)
	verified, _ := p.Claims["email_verified"].(bool)
	name, _ := p.Claims["name"].(string)
	if email == "" || !verified {
		return ExternalIdentity{}, errors.New("google account email is missing or unverified")
	}
	return ExternalIdentity{
		Subject: p.Subject,
		Email:   strings.ToLower(email),
		Name:    name,
	}, nil
}
