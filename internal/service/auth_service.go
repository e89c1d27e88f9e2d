package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

type userStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *model.User) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(encoded string, candidate string) (bool, error)
}

type tokenIssuer interface {
	Issue(subject string, role string, ttl time.Duration) (string, time.Time, error)
}

type tokenValidator interface {
	Validate(token string) (*model.Claims, error)
}

type AuthService struct {
	users     userStore
	hasher    passwordHasher
	issuer    tokenIssuer
	validator tokenValidator
	accessTTL time.Duration
	now       func() time.Time

	// dummyHash is verified against when the email is unknown so that
	// login takes the same time either way.
	dummyHash string
}

func NewAuthService(users userStore, hasher passwordHasher, issuer tokenIssuer, validator tokenValidator, accessTTL time.Duration) (*AuthService, error) {
	if accessTTL <= 0 {
		return nil, errors.New("access token ttl must be positive")
	}

	dummyHash, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, err
	}

	return &AuthService{
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		validator: validator,
		accessTTL: accessTTL,
		now:       time.Now,
		dummyHash: dummyHash,
	}, nil
}

func (s *AuthService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *AuthService) Register(ctx context.Context, name string, email string, password string) (model.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return model.Session{}, apierror.New(apierror.KindMissingCredentials, "name, email and password are required", "")
	}

	user, err := s.createUser(ctx, name, email, password, model.RoleUser)
	if err != nil {
		return model.Session{}, err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return s.issueSession(user)
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.Session{}, apierror.New(apierror.KindMissingCredentials, "email and password are required", "")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		_, _ = s.hasher.Verify(s.dummyHash, password)
		return model.Session{}, wrongCredentials()
	}
	if err != nil {
		return model.Session{}, apierror.Wrap(apierror.KindDatabaseError, "find user", err)
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return model.Session{}, err
	}
	if !ok {
		return model.Session{}, wrongCredentials()
	}

	return s.issueSession(user)
}

// ValidateToken verifies a session token and returns its claims.
func (s *AuthService) ValidateToken(token string) (*model.Claims, error) {
	return s.validator.Validate(token)
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, apierror.New(apierror.KindUserNotFound, "user not found", "")
	}
	if err != nil {
		return model.User{}, apierror.Wrap(apierror.KindDatabaseError, "find user", err)
	}
	return user, nil
}

// EnsureAdmin creates an admin account when email is not registered yet.
// It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name string, email string, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}

	user, err := s.createUser(ctx, name, email, password, model.RoleAdmin)
	if apierror.Is(err, apierror.KindAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	slog.Info("admin user created", "user_id", user.ID, "email", user.Email)
	return true, nil
}

func (s *AuthService) createUser(ctx context.Context, name string, email string, password string, role string) (model.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.User{}, apierror.Wrap(apierror.KindDatabaseError, "check existing user", err)
	}
	if exists {
		return model.User{}, alreadyExists()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}

	now := s.now().UTC()
	user := model.User{
		Name:         name,
		Role:         role,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique constraint catches a concurrent registration that passed
	// the existence check.
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.User{}, alreadyExists()
		}
		return model.User{}, apierror.Wrap(apierror.KindDatabaseError, "create user", err)
	}

	return user, nil
}

func (s *AuthService) issueSession(user model.User) (model.Session, error) {
	token, expiresAt, err := s.issuer.Issue(user.Email, user.Role, s.accessTTL)
	if err != nil {
		return model.Session{}, err
	}

	return model.Session{
		User:      user.Public(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func wrongCredentials() error {
	return apierror.New(apierror.KindWrongCredentials, "wrong credentials", "")
}

func alreadyExists() error {
	return apierror.New(apierror.KindAlreadyExists, "User already exists", "")
}
