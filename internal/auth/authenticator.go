package auth

import "context"

// selfIssuedMaxLen bounds the length of our own HS256 tokens. Google ID
// tokens are RS256 with a larger claim set and run well past it.
const selfIssuedMaxLen = 600

// Resolver maps a provider identity onto a local user, creating one if needed.
type Resolver func(ctx context.Context, ext ExternalIdentity) (Identity, error)

type Authenticator struct {
	local    *JWT
	provider IdentityProvider
	resolve  Resolver
}

// NewAuthenticator: provider and resolve may be nil, which disables
// identity-provider login.
func NewAuthenticator(local *JWT, provider IdentityProvider, resolve Resolver) *Authenticator {
	return &Authenticator{local: local, provider: provider, resolve: resolve}
}

// Authenticate tries both schemes. Long tokens go to the identity provider
// first, short ones to local verification first; the other is the fallback.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrInvalidToken
	}
	if len(raw) > selfIssuedMaxLen {
		if id, err := a.viaProvider(ctx, raw); err == nil {
			return id, nil
		}
		return a.local.Verify(raw)
	}
	if id, err := a.local.Verify(raw); err == nil {
		return id, nil
	}
	return a.viaProvider(ctx, raw)
}

func (a *Authenticator) viaProvider(ctx context.Context, raw string) (Identity, error) {
	if a.provider == nil || a.resolve == nil {
		return Identity{}, ErrInvalidToken
	}
	ext, err := a.provider.Verify(ctx, raw)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return a.resolve(ctx, ext)
}
