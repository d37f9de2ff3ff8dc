package core

import (
	"slices"

	"gwi.com/room-redesign/internal/store"
)

// SocialGraph is the set of usernames the current user follows. Usernames
// are not checked against any profile registry.
type SocialGraph struct {
	kv store.KV

	userID    string
	following []string // insertion order, unique
}

func NewSocialGraph(kv store.KV) *SocialGraph {
	return &SocialGraph{kv: kv}
}

func (s *SocialGraph) load(userID string) {
	s.userID = userID
	s.following = nil

	var names []string
	if loadJSON(s.kv, store.Namespaced(store.FollowedUsersKey, userID), &names) {
		for _, n := range names {
			if !slices.Contains(s.following, n) {
				s.following = append(s.following, n)
			}
		}
	}
}

func (s *SocialGraph) reset() {
	s.userID = ""
	s.following = nil
}

func (s *SocialGraph) IsFollowing(username string) bool {
	return slices.Contains(s.following, username)
}

// ToggleFollow adds or removes username and returns the new state.
func (s *SocialGraph) ToggleFollow(username string) (bool, error) {
	if s.userID == "" {
		return false, ErrNotLoggedIn
	}

	following := true
	if i := slices.Index(s.following, username); i >= 0 {
		s.following = slices.Delete(slices.Clone(s.following), i, i+1)
		following = false
	} else {
		s.following = append(s.following, username)
	}

	names := s.following
	if names == nil {
		names = []string{}
	}
	persistJSON(s.kv, store.Namespaced(store.FollowedUsersKey, s.userID), names)
	return following, nil
}

func (s *SocialGraph) FollowingCount() int {
	return len(s.following)
}

func (s *SocialGraph) Following() []string {
	return append([]string{}, s.following...)
}
