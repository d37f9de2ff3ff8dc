package core

import (
	"log/slog"
	"strconv"
	"time"

	"gwi.com/room-redesign/internal/store"
)

const MaxDailyRedesigns = 5

// RateLimiter tracks the current user's redesigns per calendar day.
// The "is today the tracked day" check is repeated in each operation on
// purpose: CanRedesign resets eagerly, RemainingToday only reports.
type RateLimiter struct {
	kv  store.KV
	now func() time.Time
	loc *time.Location

	userID          string
	dailyCount      int
	lastTrackedDate string // YYYY-MM-DD
}

func NewRateLimiter(kv store.KV, now func() time.Time, loc *time.Location) *RateLimiter {
	return &RateLimiter{kv: kv, now: now, loc: loc}
}

func (r *RateLimiter) today() string {
	return r.now().In(r.loc).Format(time.DateOnly)
}

func (r *RateLimiter) load(userID string) {
	r.userID = userID
	r.dailyCount = 0
	r.lastTrackedDate = ""

	if raw, ok, err := r.kv.Get(store.Namespaced(store.RedesignCountKey, userID)); err != nil {
		slog.Error("Failed to read redesign count", "user", userID, "error", err)
	} else if ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			slog.Warn("Ignoring invalid redesign count", "user", userID, "value", raw)
		} else {
			r.dailyCount = n
		}
	}

	if raw, ok, err := r.kv.Get(store.Namespaced(store.LastRedesignDateKey, userID)); err != nil {
		slog.Error("Failed to read last redesign date", "user", userID, "error", err)
	} else if ok {
		r.lastTrackedDate = raw
	}
}

func (r *RateLimiter) reset() {
	r.userID = ""
	r.dailyCount = 0
	r.lastTrackedDate = ""
}

func (r *RateLimiter) persist() {
	persistString(r.kv, store.Namespaced(store.RedesignCountKey, r.userID), strconv.Itoa(r.dailyCount))
	persistString(r.kv, store.Namespaced(store.LastRedesignDateKey, r.userID), r.lastTrackedDate)
}

// CanRedesign reports whether another redesign is allowed today. A stale
// tracked date is reset to today with a zero count and persisted.
func (r *RateLimiter) CanRedesign() bool {
	if r.userID == "" {
		return false
	}
	today := r.today()
	if r.lastTrackedDate != today {
		r.dailyCount = 0
		r.lastTrackedDate = today
		r.persist()
		return true
	}
	return r.dailyCount < MaxDailyRedesigns
}

func (r *RateLimiter) RecordAttempt() {
	if r.userID == "" {
		return
	}
	today := r.today()
	if r.lastTrackedDate != today {
		r.dailyCount = 1
		r.lastTrackedDate = today
	} else {
		r.dailyCount++
	}
	r.persist()
}

func (r *RateLimiter) RemainingToday() int {
	if r.userID == "" {
		return 0
	}
	today := r.today()
	if r.lastTrackedDate != today {
		return MaxDailyRedesigns
	}
	return max(0, MaxDailyRedesigns-r.dailyCount)
}
