package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"kudos/api/internal/ids"
	"kudos/api/internal/models"
)

var ErrSelfKudo = errors.New("cannot send a kudo to yourself")

const (
	recentCacheKey = "kudos:recent"
	recentCacheTTL = 30 * time.Second
)

type KudoService struct {
	kudos KudoStore
	cache *redis.Client
	log   zerolog.Logger
}

func NewKudoService(kudos KudoStore, cache *redis.Client, log zerolog.Logger) *KudoService {
	return &KudoService{
		kudos: kudos,
		cache: cache,
		log:   log,
	}
}

type SendKudoInput struct {
	Message     string
	AuthorID    string
	RecipientID string
	Style       models.KudoStyle
}

// Send creates one kudo record. Sending a kudo to yourself is rejected.
func (s *KudoService) Send(ctx context.Context, input SendKudoInput) error {
	if input.AuthorID == input.RecipientID {
		return ErrSelfKudo
	}

	kudo := models.Kudo{
		ID:          ids.New(),
		Message:     input.Message,
		AuthorID:    input.AuthorID,
		RecipientID: input.RecipientID,
		Style:       input.Style,
	}

	if err := s.kudos.Create(ctx, kudo); err != nil {
		return err
	}

	s.invalidateRecent(ctx)
	s.log.Info().
		Str("author_id", input.AuthorID).
		Str("recipient_id", input.RecipientID).
		Msg("kudo sent")
	return nil
}

// Feed returns the kudos received by the user with the requested sort
// and filter applied in the database.
func (s *KudoService) Feed(ctx context.Context, recipientID string, sort models.KudoSort, filter string) ([]models.KudoWithAuthor, error) {
	return s.kudos.ListReceived(ctx, recipientID, sort, filter)
}

// Recent returns the 3 newest kudos system-wide, read through a short
// redis cache since every home load wants the same rows.
func (s *KudoService) Recent(ctx context.Context) ([]models.RecentKudo, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, recentCacheKey).Bytes(); err == nil {
			var cached []models.RecentKudo
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	recent, err := s.kudos.Recent(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(recent); err == nil {
			if err := s.cache.Set(ctx, recentCacheKey, raw, recentCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("cache recent kudos failed")
			}
		}
	}
	return recent, nil
}

func (s *KudoService) invalidateRecent(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, recentCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("invalidate recent kudos failed")
	}
}
