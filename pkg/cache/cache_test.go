package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/solaceapp/solace/pkg/memory"
)

type fakeStore struct {
	entries    map[string]memory.CachedResponse
	getErr     error
	putErr     error
	getCalls   int
	purgeCalls int
	lastCutoff int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]memory.CachedResponse{}}
}

func (f *fakeStore) GetCachedResponse(_ context.Context, key, personality string) (memory.CachedResponse, error) {
	f.getCalls++
	if f.getErr != nil {
		return memory.CachedResponse{}, f.getErr
	}
	entry, ok := f.entries[personality+"/"+key]
	if !ok {
		return memory.CachedResponse{}, memory.ErrNotFound
	}
	return entry, nil
}

func (f *fakeStore) PutCachedResponse(_ context.Context, key, personality, response string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[personality+"/"+key] = memory.CachedResponse{
		Key:         key,
		Personality: personality,
		Response:    response,
		CreatedAtMS: time.Now().UnixMilli(),
	}
	return nil
}

func (f *fakeStore) PurgeExpiredCache(_ context.Context, cutoffMS int64) (int, error) {
	f.purgeCalls++
	f.lastCutoff = cutoffMS
	purged := 0
	for k, entry := range f.entries {
		if entry.CreatedAtMS < cutoffMS {
			delete(f.entries, k)
			purged++
		}
	}
	return purged, nil
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"How are you???", "how are you"},
		{"  What's   up!  ", "whats up"},
		{"HELLO, WORLD. 123", "hello world 123"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"How are you???", "  What's   up!  ", "already normal text"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestGetPutRoundTrip(t *testing.T) {
	store := newFakeStore()
	c := NewResponseCache(store, DefaultTTL, 16, zerolog.Nop())
	ctx := context.Background()

	if _, ok := c.Get(ctx, "how are you", "default"); ok {
		t.Fatal("expected miss on empty cache")
	}
	if !c.Put(ctx, "how are you", "default", "I'm doing well!") {
		t.Fatal("Put should succeed")
	}
	got, ok := c.Get(ctx, "how are you", "default")
	if !ok || got != "I'm doing well!" {
		t.Fatalf("Get = %q, %v", got, ok)
	}
	if _, ok := c.Get(ctx, "how are you", "coach"); ok {
		t.Fatal("entry must be scoped per personality")
	}
}

func TestGetHotLayerSkipsStore(t *testing.T) {
	store := newFakeStore()
	c := NewResponseCache(store, DefaultTTL, 16, zerolog.Nop())
	ctx := context.Background()

	c.Put(ctx, "whats up", "default", "Not much!")
	before := store.getCalls
	for i := 0; i < 5; i++ {
		if _, ok := c.Get(ctx, "whats up", "default"); !ok {
			t.Fatal("expected hit")
		}
	}
	if store.getCalls != before {
		t.Fatalf("hot hits should not touch the store, got %d extra reads", store.getCalls-before)
	}
}

func TestGetExpiredEntryIsMiss(t *testing.T) {
	store := newFakeStore()
	c := NewResponseCache(store, DefaultTTL, 16, zerolog.Nop())
	ctx := context.Background()

	store.entries["default/old question"] = memory.CachedResponse{
		Key:         "old question",
		Personality: "default",
		Response:    "old answer",
		CreatedAtMS: time.Now().Add(-8 * 24 * time.Hour).UnixMilli(),
	}
	if _, ok := c.Get(ctx, "old question", "default"); ok {
		t.Fatal("entry past TTL must be treated as absent")
	}
}

func TestGetHotLayerKeepsOriginalAge(t *testing.T) {
	store := newFakeStore()
	ttl := 200 * time.Millisecond
	c := NewResponseCache(store, ttl, 16, zerolog.Nop())
	ctx := context.Background()

	// Entry with only 50ms of life left. The first Get promotes it into
	// the hot layer; that must not restart its TTL clock.
	store.entries["default/nearly expired"] = memory.CachedResponse{
		Key:         "nearly expired",
		Personality: "default",
		Response:    "stale answer",
		CreatedAtMS: time.Now().Add(-150 * time.Millisecond).UnixMilli(),
	}
	if got, ok := c.Get(ctx, "nearly expired", "default"); !ok || got != "stale answer" {
		t.Fatalf("fresh hit before expiry: got %q, %v", got, ok)
	}

	time.Sleep(100 * time.Millisecond)

	if got, ok := c.Get(ctx, "nearly expired", "default"); ok {
		t.Fatalf("entry older than TTL must be a miss even from the hot layer, got %q", got)
	}
}

func TestStoreFailuresDegrade(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("disk on fire")
	store.putErr = errors.New("disk on fire")
	c := NewResponseCache(store, DefaultTTL, 16, zerolog.Nop())
	ctx := context.Background()

	if _, ok := c.Get(ctx, "anything", "default"); ok {
		t.Fatal("read failure must degrade to miss")
	}
	if c.Put(ctx, "anything", "default", "answer") {
		t.Fatal("write failure must report false")
	}
}

func TestPutRejectsEmpty(t *testing.T) {
	c := NewResponseCache(newFakeStore(), DefaultTTL, 16, zerolog.Nop())
	if c.Put(context.Background(), "", "default", "answer") {
		t.Fatal("empty key must not be cached")
	}
	if c.Put(context.Background(), "key", "default", "") {
		t.Fatal("empty response must not be cached")
	}
}

func TestSweeperPurgesWithTTLCutoff(t *testing.T) {
	store := newFakeStore()
	s, err := NewSweeper(store, DefaultTTL, "*/15 * * * *", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSweeper failed: %v", err)
	}

	store.entries["default/stale"] = memory.CachedResponse{CreatedAtMS: 1}
	store.entries["default/fresh"] = memory.CachedResponse{CreatedAtMS: time.Now().UnixMilli()}

	purged, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
	wantCutoff := time.Now().Add(-DefaultTTL).UnixMilli()
	if diff := wantCutoff - store.lastCutoff; diff < -2000 || diff > 2000 {
		t.Fatalf("cutoff = %d, want ~%d", store.lastCutoff, wantCutoff)
	}
}

func TestSweeperRejectsBadSchedule(t *testing.T) {
	if _, err := NewSweeper(newFakeStore(), DefaultTTL, "not a cron line", zerolog.Nop()); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}
