package core

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"gwi.com/room-redesign/internal/store"
)

// Options overrides the App's clock, zone and randomness. Zero values pick
// the real ones.
type Options struct {
	Now      func() time.Time
	Location *time.Location
	NewID    func() string
	RandIntN func(n int) int
}

// App is the client application state: the session and everything scoped to
// the current user. All methods are safe for concurrent use; each call runs
// against the state as it is when the call takes the lock.
type App struct {
	mu        sync.Mutex
	session   *SessionManager
	limiter   *RateLimiter
	favorites *FavoritesStore
	social    *SocialGraph
	community *Community
}

func NewApp(kv store.KV, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.NewID == nil {
		opts.NewID = newFavoriteID
	}
	if opts.RandIntN == nil {
		opts.RandIntN = rand.IntN
	}

	limiter := NewRateLimiter(kv, opts.Now, opts.Location)
	favorites := NewFavoritesStore(kv, opts.Now, opts.NewID, opts.RandIntN)
	social := NewSocialGraph(kv)

	return &App{
		session:   NewSessionManager(kv, limiter, favorites, social),
		limiter:   limiter,
		favorites: favorites,
		social:    social,
		community: NewCommunity(),
	}
}

// newFavoriteID returns a time-ordered UUIDv7.
func newFavoriteID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Init restores the persisted session. Call once before serving.
func (a *App) Init() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Init()
}

func (a *App) Login(email, password string) (store.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Login(email, password)
}

func (a *App) Signup(name, email, password string) (store.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Signup(name, email, password)
}

func (a *App) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Logout()
}

func (a *App) CurrentUser() (store.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.CurrentUser()
}

// Rate limiting

func (a *App) CanRedesign() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limiter.CanRedesign()
}

func (a *App) RecordAttempt() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.limiter.RecordAttempt()
}

func (a *App) RemainingToday() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limiter.RemainingToday()
}

// Favorites

func (a *App) Favorites() []store.FavoriteItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.favorites.Favorites()
}

func (a *App) Favorite(id string) (store.FavoriteItem, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.favorites.Favorite(id)
}

func (a *App) AddFavorite(redesignedImageData, style string) (store.FavoriteItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.favorites.AddFavorite(redesignedImageData, style)
}

func (a *App) RemoveFavorite(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.favorites.RemoveFavorite(id)
}

func (a *App) UpdateFavoriteTitle(id, newTitle string) (store.FavoriteItem, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.favorites.UpdateFavoriteTitle(id, newTitle)
}

func (a *App) ToggleUserLike(id string) (store.FavoriteItem, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.favorites.ToggleUserLike(id)
}

// Social graph and community

func (a *App) IsFollowing(username string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.social.IsFollowing(username)
}

func (a *App) ToggleFollow(username string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.social.ToggleFollow(username)
}

func (a *App) FollowingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.social.FollowingCount()
}

func (a *App) Following() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.social.Following()
}

// CommunityFeed lists the mock profiles with the current user's follow state.
func (a *App) CommunityFeed() []ProfileView {
	a.mu.Lock()
	defer a.mu.Unlock()

	profiles := a.community.Profiles()
	views := make([]ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, viewProfile(p, a.social.IsFollowing(p.Username)))
	}
	return views
}

func (a *App) Profile(username string) (ProfileView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.community.Profile(username)
	if !ok {
		return ProfileView{}, ErrProfileNotFound
	}
	return viewProfile(p, a.social.IsFollowing(username)), nil
}
