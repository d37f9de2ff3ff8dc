package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gwi.com/room-redesign/internal/auth"
	"gwi.com/room-redesign/internal/core"
	"gwi.com/room-redesign/internal/store"
)

const noItemsNotice = "No distinct shoppable items were found in this photo."

type APIHandler struct {
	app    *core.App
	design *core.DesignService
}

func NewAPIHandler(app *core.App, design *core.DesignService) *APIHandler {
	return &APIHandler{app: app, design: design}
}

type sessionResponse struct {
	LoggedIn bool        `json:"loggedIn"`
	User     *store.User `json:"user"`
}

func (h *APIHandler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.app.CurrentUser()
	resp := sessionResponse{LoggedIn: ok}
	if ok {
		resp.User = &user
	}
	writeJSON(w, http.StatusOK, resp)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User     store.User `json:"user"`
	Token    string     `json:"token"`
	Redirect string     `json:"redirect"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.app.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeAuth(w, http.StatusOK, user)
}

func (h *APIHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.app.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeAuth(w, http.StatusCreated, user)
}

func (h *APIHandler) writeAuth(w http.ResponseWriter, status int, user store.User) {
	token, err := auth.GenerateJWT(user.ID)
	if err != nil {
		slog.Error("Failed to generate token", "user", user.ID, "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal", "Failed to generate token")
		return
	}
	slog.Debug("Issued token", "user", user.ID)
	writeJSON(w, status, authResponse{User: user, Token: token, Redirect: "/"})
}

func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.app.Logout()
	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/sign-in"})
}

type photoRequest struct {
	Photo string `json:"photo"`
	Style string `json:"style"`
}

type identifyResponse struct {
	Items  []core.ShoppableItem `json:"items"`
	Notice string               `json:"notice,omitempty"`
}

func (h *APIHandler) IdentifyHandler(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items, err := h.design.IdentifyItems(r.Context(), req.Photo)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := identifyResponse{Items: items}
	if len(items) == 0 {
		resp.Notice = noItemsNotice
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *APIHandler) CommunityHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"profiles": h.app.CommunityFeed()})
}

type quotaResponse struct {
	CanRedesign    bool `json:"canRedesign"`
	RemainingToday int  `json:"remainingToday"`
	DailyLimit     int  `json:"dailyLimit"`
}

func (h *APIHandler) QuotaHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, quotaResponse{
		CanRedesign:    h.app.CanRedesign(),
		RemainingToday: h.app.RemainingToday(),
		DailyLimit:     core.MaxDailyRedesigns,
	})
}

func (h *APIHandler) RedesignHandler(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.design.Redesign(r.Context(), req.Photo, req.Style)
	if err != nil {
		slog.Info("Redesign rejected", "user", userIDFrom(r.Context()), "style", req.Style, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *APIHandler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"favorites": h.app.Favorites()})
}

type createFavoriteRequest struct {
	Image string `json:"image"`
	Style string `json:"style"`
}

func (h *APIHandler) CreateFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	var req createFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.design.SaveRedesign(req.Image, req.Style)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type updateFavoriteRequest struct {
	Title string `json:"title"`
}

func (h *APIHandler) UpdateFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	var req updateFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, found, err := h.app.UpdateFavoriteTitle(chi.URLParam(r, "favoriteID"), req.Title)
	h.writeFavorite(w, item, found, err)
}

func (h *APIHandler) ToggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	item, found, err := h.app.ToggleUserLike(chi.URLParam(r, "favoriteID"))
	h.writeFavorite(w, item, found, err)
}

func (h *APIHandler) writeFavorite(w http.ResponseWriter, item store.FavoriteItem, found bool, err error) {
	switch {
	case err != nil:
		writeError(w, err)
	case !found:
		writeErrorMessage(w, http.StatusNotFound, "not_found", "favorite not found")
	default:
		writeJSON(w, http.StatusOK, item)
	}
}

func (h *APIHandler) DeleteFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "favoriteID")
	if _, ok := h.app.Favorite(id); !ok {
		writeErrorMessage(w, http.StatusNotFound, "not_found", "favorite not found")
		return
	}
	if err := h.app.RemoveFavorite(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type followingResponse struct {
	Following []string `json:"following"`
	Count     int      `json:"count"`
}

func (h *APIHandler) FollowingHandler(w http.ResponseWriter, r *http.Request) {
	following := h.app.Following()
	writeJSON(w, http.StatusOK, followingResponse{Following: following, Count: len(following)})
}

type toggleFollowResponse struct {
	Username    string `json:"username"`
	IsFollowing bool   `json:"isFollowing"`
	Count       int    `json:"count"`
}

func (h *APIHandler) ToggleFollowHandler(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		writeErrorMessage(w, http.StatusBadRequest, "validation", "username is required")
		return
	}

	following, err := h.app.ToggleFollow(username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleFollowResponse{
		Username:    username,
		IsFollowing: following,
		Count:       h.app.FollowingCount(),
	})
}

func (h *APIHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.app.Profile(chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
