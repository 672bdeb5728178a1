package services

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/resumecraft/internal/auth"
	"github.com/yoockh/resumecraft/internal/cache"
	"github.com/yoockh/resumecraft/internal/mailer"
	"github.com/yoockh/resumecraft/internal/models"
	pgrepo "github.com/yoockh/resumecraft/internal/repositories/postgres"
	"github.com/yoockh/resumecraft/internal/utils"
)

type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	Me(ctx context.Context, userID string) (*models.User, error)
	Authenticate(ctx context.Context, raw string) (auth.Identity, error)
}

type AuthOptions struct {
	ResetTokenTTL time.Duration
	FrontendURL   string
}

type resetTicket struct {
	UserID string `json:"userId"`
}

type authService struct {
	users    pgrepo.UserRepository
	tokens   *auth.JWT
	provider auth.IdentityProvider
	authn    *auth.Authenticator
	cache    cache.Cache
	mailer   mailer.Mailer
	opts     AuthOptions
	log      *logrus.Logger

	// mailSent is closed after each reset mail attempt; tests only
	mailSent chan<- struct{}
}

// NewAuthService: provider may be nil, which disables identity-provider login.
func NewAuthService(
	users pgrepo.UserRepository,
	tokens *auth.JWT,
	provider auth.IdentityProvider,
	c cache.Cache,
	m mailer.Mailer,
	opts AuthOptions,
	log *logrus.Logger,
) AuthService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = time.Hour
	}
	s := &authService{users: users, tokens: tokens, provider: provider, cache: c, mailer: m, opts: opts, log: log}
	if provider != nil {
		s.authn = auth.NewAuthenticator(tokens, provider, s.resolve)
	} else {
		s.authn = auth.NewAuthenticator(tokens, nil, nil)
	}
	return s
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	const op = "AuthService.Register"

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "a valid email is required", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrWeakPassword) {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Provider:     models.ProviderLocal,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "email already registered", err)
		}
		return nil, repoError(op, "user", err)
	}
	return s.issue(op, u)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "AuthService.Login"

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}
	if err != nil {
		return nil, repoError(op, "user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}
	return s.issue(op, u)
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	const op = "AuthService.GoogleLogin"

	if s.provider == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "google sign-in is not configured", nil)
	}
	ext, err := s.provider.Verify(ctx, strings.TrimSpace(idToken))
	if err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid google token", err)
	}
	u, err := s.upsertExternal(ctx, ext)
	if err != nil {
		return nil, repoError(op, "user", err)
	}
	return s.issue(op, u)
}

// upsertExternal finds the local account for ext by email, creating it on
// first sign-in.
func (s *authService) upsertExternal(ctx context.Context, ext auth.ExternalIdentity) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, ext.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(ext.Name)
	if name == "" {
		name = strings.SplitN(ext.Email, "@", 2)[0]
	}
	u = &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    ext.Email,
		Role:     models.RoleUser,
		Provider: models.ProviderGoogle,
	}
	err = s.users.Create(ctx, u)
	if errors.Is(err, utils.ErrDuplicate) {
		// lost a race with a concurrent first sign-in
		return s.users.GetByEmail(ctx, ext.Email)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) resolve(ctx context.Context, ext auth.ExternalIdentity) (auth.Identity, error) {
	u, err := s.upsertExternal(ctx, ext)
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

func (s *authService) issue(op string, u *models.User) (*AuthResult, error) {
	tok, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return &AuthResult{Token: tok, ExpiresAt: exp, User: u}, nil
}

// ForgotPassword always succeeds for well-formed input so callers cannot
// probe which emails have accounts.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	const op = "AuthService.ForgotPassword"

	email, err := normalizeEmail(email)
	if err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "a valid email is required", err)
	}
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, utils.ErrNotFound) {
		return nil
	}
	if err != nil {
		return repoError(op, "user", err)
	}
	if u.Provider == models.ProviderGoogle && u.PasswordHash == "" {
		return nil
	}

	token := uuid.NewString()
	if err := s.cache.SetJSON(ctx, cache.ResetTokenKey(token), resetTicket{UserID: u.ID}, s.opts.ResetTokenTTL); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to create reset token", err)
	}

	mailer.SendAsync(s.mailer, s.log, mailer.Message{
		To:      u.Email,
		Subject: "Reset your password",
		Body:    "Use this link to choose a new password: " + s.resetLink(token),
	}, s.mailSent)
	return nil
}

func (s *authService) resetLink(token string) string {
	return s.opts.FrontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	const op = "AuthService.ResetPassword"

	token = strings.TrimSpace(token)
	if token == "" {
		return utils.E(utils.CodeInvalidArgument, op, "reset token is required", nil)
	}
	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrWeakPassword) {
		return utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	var t resetTicket
	hit, err := s.cache.TakeJSON(ctx, cache.ResetTokenKey(token), &t)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to read reset token", err)
	}
	if !hit || t.UserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "reset token is invalid or expired", nil)
	}

	if err := s.users.UpdatePassword(ctx, t.UserID, hash); err != nil {
		return repoError(op, "user", err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	const op = "AuthService.Me"

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(op, "user", err)
	}
	return u, nil
}

func (s *authService) Authenticate(ctx context.Context, raw string) (auth.Identity, error) {
	const op = "AuthService.Authenticate"

	id, err := s.authn.Authenticate(ctx, raw)
	if err != nil {
		return auth.Identity{}, utils.E(utils.CodeUnauthorized, op, "invalid or expired token", err)
	}
	return id, nil
}

func normalizeEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	if addr.Address != s {
		return "", errors.New("email must be a bare address")
	}
	return s, nil
}
