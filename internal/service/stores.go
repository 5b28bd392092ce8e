package service

import (
	"context"

	"kudos/api/internal/models"
)

// UserStore is the slice of the user repository the services depend on.
// Implementations return repository.ErrUserNotFound and
// repository.ErrDuplicateEmail for the corresponding conditions.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ListOthers(ctx context.Context, excludeID string) ([]models.User, error)
	Update(ctx context.Context, id string, email string, patch models.ProfilePatch) error
	UpdateProfilePic(ctx context.Context, id string, url string) error
	Delete(ctx context.Context, id string) error
}

// KudoStore is the slice of the kudo repository the services depend on.
type KudoStore interface {
	Create(ctx context.Context, kudo models.Kudo) error
	ListReceived(ctx context.Context, recipientID string, sort models.KudoSort, filter string) ([]models.KudoWithAuthor, error)
	Recent(ctx context.Context) ([]models.RecentKudo, error)
}
