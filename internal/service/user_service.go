package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"kudos/api/internal/models"
)

type UserService struct {
	users UserStore
	log   zerolog.Logger
}

func NewUserService(users UserStore, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log,
	}
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Roster returns every colleague of the user, ordered by first name.
func (s *UserService) Roster(ctx context.Context, excludeID string) ([]models.User, error) {
	return s.users.ListOthers(ctx, excludeID)
}

type SaveProfileInput struct {
	Email      string
	FirstName  string
	LastName   string
	Department models.Department
}

// SaveProfile persists the validated profile form. Field validation is
// the caller's job; this only normalizes and writes.
func (s *UserService) SaveProfile(ctx context.Context, userID string, input SaveProfileInput) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	patch := models.ProfilePatch{
		FirstName:  &input.FirstName,
		LastName:   &input.LastName,
		Department: &input.Department,
	}
	if err := s.users.Update(ctx, userID, email, patch); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return nil
}

// Delete hard-deletes the account. Profile and kudos cascade away in
// the database.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}
