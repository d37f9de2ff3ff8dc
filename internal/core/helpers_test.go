package core

import (
	"fmt"
	"testing"
	"time"

	"gwi.com/room-redesign/internal/store"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("fav-%d", n)
	}
}

// zeroRand makes new favorites start at the lowest seeds: 10 likes, 5 comments.
func zeroRand(int) int { return 0 }

type testEnv struct {
	app   *App
	kv    *store.MemoryStore
	clock *fakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv := store.NewMemoryStore()
	clock := &fakeClock{t: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	app := NewApp(kv, Options{
		Now:      clock.Now,
		Location: time.UTC,
		NewID:    sequentialIDs(),
		RandIntN: zeroRand,
	})
	app.Init()
	return &testEnv{app: app, kv: kv, clock: clock}
}

func (e *testEnv) mustGet(t *testing.T, key string) string {
	t.Helper()
	v, ok, err := e.kv.Get(key)
	if err != nil || !ok {
		t.Fatalf("key %s not persisted (ok=%v, err=%v)", key, ok, err)
	}
	return v
}

func (e *testEnv) login(t *testing.T, email string) store.User {
	t.Helper()
	u, err := e.app.Login(email, "1234")
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return u
}

// failingKV fails every write; reads see nothing.
type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, nil }
func (failingKV) Set(string, string) error         { return fmt.Errorf("quota exceeded") }
func (failingKV) Delete(string) error              { return fmt.Errorf("quota exceeded") }
