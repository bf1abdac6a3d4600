package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/almasbek/auth-gateway/internal/domain"
	"github.com/almasbek/auth-gateway/internal/email"
	"github.com/almasbek/auth-gateway/internal/metrics"
	"github.com/almasbek/auth-gateway/internal/repository"
)

// passwordHasher is the subset of security.Hasher the usecase needs.
type passwordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// tokenIssuer is the subset of token.Issuer the usecase needs.
type tokenIssuer interface {
	Issue(userID, role string) (string, error)
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher passwordHasher
	tokens tokenIssuer
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, hasher passwordHasher, tokens tokenIssuer, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

// Register hashes the password and persists a new user. Returns
// domain.ErrEmailTaken when the email is already registered. The welcome
// email is best-effort: a send failure is logged, never surfaced.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, password, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, emailAddr, hash, role)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	subject := "Welcome"
	body := fmt.Sprintf("<p>Your account %s has been created.</p>", user.Email)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "error", err)
	}

	return user, nil
}

// Login verifies the credentials and returns a signed token. Unknown email
// and wrong password both map to domain.ErrInvalidCredentials so the caller
// cannot enumerate accounts.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(user.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return signed, nil
}
