package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"

	"kudos/api/internal/ids"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

// AvatarStore is the narrow object-storage contract the upload needs:
// store a byte stream, get back a URL.
type AvatarStore interface {
	PutAvatar(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

var avatarExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type AvatarService struct {
	users UserStore
	store AvatarStore
	log   zerolog.Logger
}

func NewAvatarService(users UserStore, store AvatarStore, log zerolog.Logger) *AvatarService {
	return &AvatarService{
		users: users,
		store: store,
		log:   log,
	}
}

// Upload streams the file to object storage and persists the resulting
// URL on the user's profile. The content type is sniffed from the first
// bytes, not trusted from the client.
func (s *AvatarService) Upload(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if file == nil || header == nil {
		return "", errors.New("invalid file payload")
	}

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read head: %w", err)
	}
	head = head[:n]
	if len(head) == 0 {
		return "", errors.New("empty file")
	}

	contentType := http.DetectContentType(head)
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	key := fmt.Sprintf("%s/%s.%s", userID, ids.New(), ext)
	body := io.MultiReader(bytes.NewReader(head), file)

	url, err := s.store.PutAvatar(ctx, key, body, header.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	if err := s.users.UpdateProfilePic(ctx, userID, url); err != nil {
		return "", fmt.Errorf("save avatar url: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("key", key).Msg("avatar uploaded")
	return url, nil
}
