package jobs

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

type fakeLister struct {
	urls []string
}

func (f *fakeLister) ListProfilePics(context.Context) ([]string, error) {
	return f.urls, nil
}

type fakeBucket struct {
	keys    []string
	removed []string
}

func (f *fakeBucket) ListAvatarKeys(context.Context) ([]string, error) {
	return f.keys, nil
}

func (f *fakeBucket) RemoveAvatar(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeBucket) PublicURL(key string) string {
	return "https://storage.test/kudos-avatars/" + key
}

func TestSweepOnce_RemovesOnlyOrphans(t *testing.T) {
	bucket := &fakeBucket{keys: []string{"u1/a.png", "u1/old.png", "u2/b.jpg"}}
	lister := &fakeLister{urls: []string{
		"https://storage.test/kudos-avatars/u1/a.png",
		"https://storage.test/kudos-avatars/u2/b.jpg",
	}}

	s := NewScheduler(lister, bucket, zerolog.Nop())
	removed, err := s.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce returned error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if len(bucket.removed) != 1 || bucket.removed[0] != "u1/old.png" {
		t.Errorf("removed keys = %v, want [u1/old.png]", bucket.removed)
	}
}

func TestSweepOnce_EmptyBucket(t *testing.T) {
	s := NewScheduler(&fakeLister{}, &fakeBucket{}, zerolog.Nop())
	removed, err := s.SweepOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
