package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// UserRepository defines the user persistence operations the service layer needs.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthService registers users and exchanges credentials for bearer tokens.
type AuthService interface {
	// Register creates a user and returns its id.
	// Returns store.ErrUsernameExists or store.ErrEmailExists on collision,
	// checking the username first, and domain validation errors for bad input.
	Register(ctx context.Context, username, email, password string) (int64, error)

	// Login verifies the credentials and returns a signed access token.
	// Returns ErrInvalidCredentials for an unknown user or a wrong password.
	Login(ctx context.Context, username, password string) (string, error)
}

type authServiceImpl struct {
	users    UserRepository
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users UserRepository,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	logger *slog.Logger,
) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authServiceImpl{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// Register implements AuthService.Register.
func (s *authServiceImpl) Register(ctx context.Context, username, email, password string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, email, password)
	if err != nil {
		log.Debug("registration rejected by validation", redact.ErrorAttr(err))
		return 0, err
	}

	if err := s.ensureAvailable(ctx, user); err != nil {
		return 0, err
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", redact.ErrorAttr(err))
		return 0, NewServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can win the race after the checks above.
		if errors.Is(err, store.ErrDuplicate) {
			log.Info("registration lost a uniqueness race", redact.ErrorAttr(err))
			return 0, err
		}
		log.Error("failed to save user", redact.ErrorAttr(err))
		return 0, NewServiceError("register", "failed to save user", err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	return user.ID, nil
}

func (s *authServiceImpl) ensureAvailable(ctx context.Context, user *domain.User) error {
	if _, err := s.users.GetByUsername(ctx, user.Username); err == nil {
		return store.ErrUsernameExists
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return NewServiceError("register", "failed to check username", err)
	}

	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return store.ErrEmailExists
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return NewServiceError("register", "failed to check email", err)
	}

	return nil
}

// Login implements AuthService.Login.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	username = strings.TrimSpace(username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown user")
			s.compareDummy(log, password)
			return "", ErrInvalidCredentials
		}
		log.Error("failed to look up user", redact.ErrorAttr(err))
		return "", NewServiceError("login", "failed to look up user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.Warn("password comparison failed", redact.ErrorAttr(err))
		}
		log.Debug("login attempt with wrong password", slog.Int64("user_id", user.ID))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate token", redact.ErrorAttr(err))
		return "", NewServiceError("login", "failed to generate token", err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return token, nil
}

// compareDummy checks password against a throwaway hash so that a login for
// an unknown username costs the same as one with a wrong password.
func (s *authServiceImpl) compareDummy(log *slog.Logger, password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			log.Warn("failed to prepare dummy password hash", redact.ErrorAttr(err))
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_ = s.verifier.Compare(s.dummyHash, password)
	}
}
