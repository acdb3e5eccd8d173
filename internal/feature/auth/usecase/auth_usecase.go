package usecase

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"mandacaru_broker/internal/feature/auth/domain/entity"
)

const minPasswordLength = 8

// dummyHash is compared against when the email is unknown so both paths cost one bcrypt run.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts user persistence.
type UserRepository interface {
	// Create stores a new user and fills its ID. Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenGenerator issues access tokens.
type TokenGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// AuthUsecase registers and authenticates users.
type AuthUsecase struct {
	users  UserRepository
	tokens TokenGenerator
	cost   int
}

// NewAuthUsecase creates an AuthUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenGenerator) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Signup registers a user with a bcrypt-hashed password.
func (u *AuthUsecase) Signup(ctx context.Context, email, password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return pkgerrors.Wrap(err, "hash password")
	}
	return u.users.Create(ctx, &entity.User{Email: normalizeEmail(email), Password: string(hashed)})
}

// Login checks the credentials and returns a signed token.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	hash := dummyHash
	if user != nil {
		hash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if user == nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", pkgerrors.Wrap(err, "generate token")
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
