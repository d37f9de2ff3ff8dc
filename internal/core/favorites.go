package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"gwi.com/room-redesign/internal/store"
)

// FavoritesStore holds the current user's saved redesigns, most recent first.
type FavoritesStore struct {
	kv       store.KV
	now      func() time.Time
	newID    func() string
	randIntN func(n int) int

	userID string
	items  []store.FavoriteItem
}

func NewFavoritesStore(kv store.KV, now func() time.Time, newID func() string, randIntN func(int) int) *FavoritesStore {
	return &FavoritesStore{kv: kv, now: now, newID: newID, randIntN: randIntN}
}

func (f *FavoritesStore) load(userID string) {
	f.userID = userID
	f.items = nil

	var items []store.FavoriteItem
	if loadJSON(f.kv, store.Namespaced(store.FavoritesKey, userID), &items) {
		f.items = items
	}
}

func (f *FavoritesStore) reset() {
	f.userID = ""
	f.items = nil
}

func (f *FavoritesStore) persist() {
	items := f.items
	if items == nil {
		items = []store.FavoriteItem{}
	}
	persistJSON(f.kv, store.Namespaced(store.FavoritesKey, f.userID), items)
}

// Favorites returns a copy of the list.
func (f *FavoritesStore) Favorites() []store.FavoriteItem {
	out := make([]store.FavoriteItem, len(f.items))
	copy(out, f.items)
	return out
}

func (f *FavoritesStore) Favorite(id string) (store.FavoriteItem, bool) {
	if i := f.indexOf(id); i >= 0 {
		return f.items[i], true
	}
	return store.FavoriteItem{}, false
}

func (f *FavoritesStore) indexOf(id string) int {
	for i := range f.items {
		if f.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddFavorite saves a redesign at the head of the list with a derived title.
// Likes and comments start from display seeds.
func (f *FavoritesStore) AddFavorite(redesignedImageData, style string) (store.FavoriteItem, error) {
	if f.userID == "" {
		return store.FavoriteItem{}, ErrNotLoggedIn
	}

	item := store.FavoriteItem{
		ID:                  f.newID(),
		RedesignedImageData: redesignedImageData,
		Title:               deriveTitle(style, f.items),
		Style:               style,
		CreatedAt:           f.now(),
		Likes:               10 + f.randIntN(200),
		Comments:            5 + f.randIntN(50),
		UserHasLiked:        false,
	}

	items := make([]store.FavoriteItem, 0, len(f.items)+1)
	items = append(items, item)
	f.items = append(items, f.items...)
	f.persist()
	return item, nil
}

// RemoveFavorite deletes id; unknown ids are ignored.
func (f *FavoritesStore) RemoveFavorite(id string) error {
	if f.userID == "" {
		return ErrNotLoggedIn
	}
	i := f.indexOf(id)
	if i < 0 {
		return nil
	}
	f.items = append(f.items[:i:i], f.items[i+1:]...)
	f.persist()
	return nil
}

// UpdateFavoriteTitle overwrites the title as given, empty included.
func (f *FavoritesStore) UpdateFavoriteTitle(id, newTitle string) (store.FavoriteItem, bool, error) {
	if f.userID == "" {
		return store.FavoriteItem{}, false, ErrNotLoggedIn
	}
	i := f.indexOf(id)
	if i < 0 {
		return store.FavoriteItem{}, false, nil
	}
	f.items[i].Title = newTitle
	f.persist()
	return f.items[i], true, nil
}

// ToggleUserLike flips the like flag and moves the count by one with it.
// There is no floor: a record with likes 0 and the flag set goes to -1.
func (f *FavoritesStore) ToggleUserLike(id string) (store.FavoriteItem, bool, error) {
	if f.userID == "" {
		return store.FavoriteItem{}, false, ErrNotLoggedIn
	}
	i := f.indexOf(id)
	if i < 0 {
		return store.FavoriteItem{}, false, nil
	}
	it := &f.items[i]
	if it.UserHasLiked {
		it.Likes--
	} else {
		it.Likes++
	}
	it.UserHasLiked = !it.UserHasLiked
	f.persist()
	return *it, true, nil
}

// deriveTitle names a new favorite of style given the existing list:
// "Modern", then "Modern 2", "Modern 3", ... Titles sharing the prefix but
// matching neither form fall through to "<style> <matches+1>".
func deriveTitle(style string, existing []store.FavoriteItem) string {
	var matches []store.FavoriteItem
	for _, it := range existing {
		if strings.HasPrefix(it.Title, style) {
			matches = append(matches, it)
		}
	}
	if len(matches) == 0 {
		return style
	}

	suffix := regexp.MustCompile(`^` + regexp.QuoteMeta(style) + `\s+(\d+)$`)
	plainExists := false
	maxNum := 0
	for _, it := range matches {
		if it.Title == style {
			plainExists = true
		}
		if m := suffix.FindStringSubmatch(it.Title); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxNum {
				maxNum = n
			}
		}
	}

	switch {
	case plainExists && len(matches) == 1 && maxNum == 0:
		return style + " 2"
	case maxNum > 0:
		return style + " " + strconv.Itoa(maxNum+1)
	default:
		return style + " " + strconv.Itoa(len(matches)+1)
	}
}
