package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"kudos/api/internal/ids"
	"kudos/api/internal/models"
	"kudos/api/internal/repository"
	"kudos/api/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users UserStore
	log   zerolog.Logger
}

func NewAuthService(users UserStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		log:   log,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register hashes the password and creates the user with its profile.
// A taken email yields repository.ErrDuplicateEmail and no new row.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Profile: models.Profile{
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Department: models.DepartmentMarketing,
		},
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login resolves the email and compares the password hash. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}
