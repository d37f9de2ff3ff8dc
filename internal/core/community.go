package core

import "slices"

type CommunityDesign struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Style    string `json:"style"`
	ImageURL string `json:"imageUrl"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}

// Profile is a mock community member. BaseFollowers excludes the current user.
type Profile struct {
	Username      string            `json:"username"`
	DisplayName   string            `json:"displayName"`
	Bio           string            `json:"bio"`
	BaseFollowers int               `json:"-"`
	Following     int               `json:"following"`
	Designs       []CommunityDesign `json:"designs"`
}

// ProfileView is a Profile as seen by the current user.
type ProfileView struct {
	Profile
	Followers   int  `json:"followers"`
	IsFollowing bool `json:"isFollowing"`
}

var communityProfiles = []Profile{
	{
		Username:      "nordic_nest",
		DisplayName:   "Astrid Lund",
		Bio:           "Light woods, soft textiles, long winters.",
		BaseFollowers: 1284,
		Following:     312,
		Designs: []CommunityDesign{
			{ID: "nn-1", Title: "Scandinavian Living Room", Style: "Scandinavian", ImageURL: "https://picsum.photos/seed/nordic1/600/400", Likes: 342, Comments: 41},
			{ID: "nn-2", Title: "Hygge Reading Nook", Style: "Scandinavian", ImageURL: "https://picsum.photos/seed/nordic2/600/400", Likes: 198, Comments: 17},
		},
	},
	{
		Username:      "loft_life",
		DisplayName:   "Marcus Reyes",
		Bio:           "Exposed brick and steel, converted warehouses.",
		BaseFollowers: 876,
		Following:     95,
		Designs: []CommunityDesign{
			{ID: "ll-1", Title: "Industrial Kitchen", Style: "Industrial", ImageURL: "https://picsum.photos/seed/loft1/600/400", Likes: 251, Comments: 29},
		},
	},
	{
		Username:      "boho_bungalow",
		DisplayName:   "Priya Nair",
		Bio:           "Plants everywhere, rattan and warm colour.",
		BaseFollowers: 2051,
		Following:     480,
		Designs: []CommunityDesign{
			{ID: "bb-1", Title: "Bohemian Bedroom", Style: "Bohemian", ImageURL: "https://picsum.photos/seed/boho1/600/400", Likes: 503, Comments: 64},
			{ID: "bb-2", Title: "Sunroom Jungle", Style: "Bohemian", ImageURL: "https://picsum.photos/seed/boho2/600/400", Likes: 417, Comments: 38},
		},
	},
	{
		Username:      "minimal_maya",
		DisplayName:   "Maya Chen",
		Bio:           "Less, but better.",
		BaseFollowers: 1533,
		Following:     121,
		Designs: []CommunityDesign{
			{ID: "mm-1", Title: "Minimalist Studio", Style: "Minimalist", ImageURL: "https://picsum.photos/seed/minimal1/600/400", Likes: 389, Comments: 22},
		},
	},
}

// Community is the read-only directory of mock profiles behind the feed.
type Community struct {
	profiles []Profile
}

func NewCommunity() *Community {
	return &Community{profiles: communityProfiles}
}

func (c *Community) Profiles() []Profile {
	return slices.Clone(c.profiles)
}

func (c *Community) Profile(username string) (Profile, bool) {
	for _, p := range c.profiles {
		if p.Username == username {
			return p, true
		}
	}
	return Profile{}, false
}

func viewProfile(p Profile, following bool) ProfileView {
	v := ProfileView{Profile: p, Followers: p.BaseFollowers, IsFollowing: following}
	if following {
		v.Followers++
	}
	return v
}
