package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// AvatarLister yields every avatar URL still referenced by a profile.
type AvatarLister interface {
	ListProfilePics(ctx context.Context) ([]string, error)
}

// AvatarBucket is the object-storage slice the sweep needs.
type AvatarBucket interface {
	ListAvatarKeys(ctx context.Context) ([]string, error)
	RemoveAvatar(ctx context.Context, key string) error
	PublicURL(key string) string
}

type Scheduler struct {
	cron  *cron.Cron
	users AvatarLister
	store AvatarBucket
	log   zerolog.Logger
}

func NewScheduler(users AvatarLister, store AvatarBucket, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		users: users,
		store: store,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.sweepOrphanAvatars); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for a running job, up to a bound.
func (s *Scheduler) Stop() {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

// sweepOrphanAvatars deletes bucket objects whose URL no longer appears
// on any profile. Re-uploading an avatar leaves the previous object
// behind; this is the cleanup path.
func (s *Scheduler) sweepOrphanAvatars() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	removed, err := s.SweepOnce(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("avatar sweep failed")
		return
	}
	s.log.Info().Int("removed", removed).Msg("avatar sweep done")
}

// SweepOnce runs one sweep pass and returns how many objects were
// removed.
func (s *Scheduler) SweepOnce(ctx context.Context) (int, error) {
	urls, err := s.users.ListProfilePics(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		referenced[url] = struct{}{}
	}

	keys, err := s.store.ListAvatarKeys(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, key := range keys {
		if _, ok := referenced[s.store.PublicURL(key)]; ok {
			continue
		}
		if err := s.store.RemoveAvatar(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("remove orphan avatar failed")
			continue
		}
		removed++
	}
	return removed, nil
}
