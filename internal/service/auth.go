package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Skotchmaster/flogin/internal/domain"
	"github.com/Skotchmaster/flogin/internal/hash"
	"github.com/Skotchmaster/flogin/internal/logging"
	"github.com/Skotchmaster/flogin/internal/models"
	"github.com/Skotchmaster/flogin/internal/transport"
)

const (
	MsgLoginSuccess  = "login successful"
	MsgUserNotFound  = "username does not exist"
	MsgWrongPassword = "wrong password"
)

// LoginFailure tags why a login was rejected.
type LoginFailure int

const (
	FailureNone LoginFailure = iota
	FailureValidation
	FailureUserNotFound
	FailureWrongPassword
)

func (f LoginFailure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureValidation:
		return "validation"
	case FailureUserNotFound:
		return "user_not_found"
	case FailureWrongPassword:
		return "wrong_password"
	}
	return "unknown"
}

// BadCredentials reports whether the failure is about the credentials
// themselves rather than the shape of the request.
func (f LoginFailure) BadCredentials() bool {
	return f == FailureUserNotFound || f == FailureWrongPassword
}

type LoginResult struct {
	Success  bool
	Message  string
	Token    string
	Username string
	Failure  LoginFailure
}

type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type PasswordVerifier interface {
	Verify(hash, password string) bool
}

type AuthService struct {
	Users     UserStore
	Verifier  PasswordVerifier
	Validator *transport.Validator
	// NewToken mints the opaque session marker; defaults to a random UUID.
	NewToken func() string
}

func failed(f LoginFailure, msg string) *LoginResult {
	return &LoginResult{Message: msg, Failure: f}
}

// Login never reports rejected credentials as an error; err is set only for
// faults of the user store.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if err := s.validator().Validate(req); err != nil {
		var verr *transport.ValidationError
		if errors.As(err, &verr) {
			l.Info("login_rejected", "reason", FailureValidation.String(), "violation", verr.First())
			return failed(FailureValidation, verr.First()), nil
		}
		return nil, err
	}

	user, err := s.Users.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Info("login_rejected", "reason", FailureUserNotFound.String(), "username", req.Username)
			return failed(FailureUserNotFound, MsgUserNotFound), nil
		}
		return nil, err
	}

	if !s.verifier().Verify(user.PasswordHash, req.Password) {
		l.Info("login_rejected", "reason", FailureWrongPassword.String(), "username", req.Username)
		return failed(FailureWrongPassword, MsgWrongPassword), nil
	}

	return &LoginResult{
		Success:  true,
		Message:  MsgLoginSuccess,
		Token:    s.newToken(),
		Username: user.Username,
	}, nil
}

func (s *AuthService) validator() *transport.Validator {
	if s.Validator == nil {
		return defaultValidator
	}
	return s.Validator
}

func (s *AuthService) verifier() PasswordVerifier {
	if s.Verifier == nil {
		return hash.Bcrypt{}
	}
	return s.Verifier
}

func (s *AuthService) newToken() string {
	if s.NewToken == nil {
		return uuid.NewString()
	}
	return s.NewToken()
}
