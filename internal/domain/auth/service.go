package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apiclient"
	"github.com/hms/hms/internal/platform/session"
)

const minPasswordLength = 8

type Service struct {
	api    apiclient.Requester
	tokens session.TokenStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(api apiclient.Requester, tokens session.TokenStore, logger zerolog.Logger) *Service {
	return &Service{
		api:    api,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// -- Validation --

func ValidateLogin(req LoginRequest) []string {
	var problems []string
	if strings.TrimSpace(req.Email) == "" {
		problems = append(problems, "Email is required")
	}
	if req.Password == "" {
		problems = append(problems, "Password is required")
	}
	return problems
}

func ValidateSignup(req SignupRequest) []string {
	var problems []string
	if strings.TrimSpace(req.Name) == "" {
		problems = append(problems, "Name is required")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		problems = append(problems, "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		problems = append(problems, "Email is not valid")
	}
	if len(req.Password) < minPasswordLength {
		problems = append(problems, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if req.Role != "" && !validRoles[req.Role] {
		problems = append(problems, "Role must be one of patient, doctor, hospital")
	}
	return problems
}

// -- Session --

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	if err := apiclient.Invalid(ValidateSignup(req)); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = RolePatient
	}
	req.Email = strings.TrimSpace(req.Email)

	var resp authResponse
	if err := s.api.Post(ctx, "/signup", req, &resp); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	u := resp.toUser()
	if err := s.remember(ctx, &u); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("signed up")
	return &u, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, error) {
	if err := apiclient.Invalid(ValidateLogin(req)); err != nil {
		return nil, err
	}
	req.Email = strings.TrimSpace(req.Email)

	var resp authResponse
	if err := s.api.Post(ctx, "/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	u := resp.toUser()
	if u.Token == "" {
		return nil, fmt.Errorf("login: backend returned no token")
	}
	if err := s.remember(ctx, &u); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("logged in")
	return &u, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Current returns the identity of the stored token.
func (s *Service) Current(ctx context.Context) (session.Claims, error) {
	tok, err := s.tokens.Token(ctx)
	if err != nil {
		return session.Claims{}, err
	}
	claims, err := session.ParseClaims(tok)
	if err != nil {
		return session.Claims{}, err
	}
	if claims.Expired(s.now()) {
		return session.Claims{}, session.ErrNoSession
	}
	return claims, nil
}

// remember stores the token and fills identity fields the backend left out
// from the token claims.
func (s *Service) remember(ctx context.Context, u *User) error {
	if u.Token == "" {
		return nil
	}
	if claims, err := session.ParseClaims(u.Token); err == nil {
		if u.ID == "" {
			u.ID = claims.Subject
		}
		if u.Email == "" {
			u.Email = claims.Email
		}
		if claims.Role != "" && validRoles[Role(claims.Role)] {
			u.Role = Role(claims.Role)
		}
	}
	if err := s.tokens.SetToken(ctx, u.Token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
