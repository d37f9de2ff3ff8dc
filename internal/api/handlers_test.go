package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gwi.com/room-redesign/internal/config"
	"gwi.com/room-redesign/internal/core"
	"gwi.com/room-redesign/internal/store"
	"gwi.com/room-redesign/internal/utils"
)

const photo = "data:image/png;base64,aGVsbG8="

func TestMain(m *testing.M) {
	config.AppConfig.JWTSecret = "handler-test-secret"
	config.AppConfig.TokenTTL = time.Hour
	os.Exit(m.Run())
}

type stubIdentifier struct {
	items []core.IdentifiedItem
	err   error
}

func (s *stubIdentifier) IdentifyItems(context.Context, utils.DataURL) ([]core.IdentifiedItem, error) {
	return s.items, s.err
}

type stubRedesigner struct {
	err error
}

func (s *stubRedesigner) RedesignRoom(context.Context, utils.DataURL, string) (utils.DataURL, error) {
	if s.err != nil {
		return utils.DataURL{}, s.err
	}
	return utils.DataURL{MIMEType: "image/png", Data: []byte("new room")}, nil
}

type testServer struct {
	handler    http.Handler
	app        *core.App
	identifier *stubIdentifier
	redesigner *stubRedesigner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	app := core.NewApp(store.NewMemoryStore(), core.Options{
		Now:      func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) },
		Location: time.UTC,
		RandIntN: func(int) int { return 0 },
	})
	app.Init()

	ident := &stubIdentifier{}
	red := &stubRedesigner{}
	h := NewAPIHandler(app, core.NewDesignService(app, ident, red))
	return &testServer{
		handler:    NewRouter(h, []string{"http://localhost:9002"}),
		app:        app,
		identifier: ident,
		redesigner: red,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/login", "", LoginRequest{Email: email, Password: "1234"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp authResponse
	decode(t, rec, &resp)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorKind(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	decode(t, rec, &resp)
	return resp.Kind
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLoginAndSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/session", "", nil)
	assert.JSONEq(t, `{"loggedIn":false,"user":null}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/login", "", LoginRequest{Email: "jane@example.com", Password: "1234"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp authResponse
	decode(t, rec, &resp)
	assert.Equal(t, "/", resp.Redirect)
	assert.Equal(t, "jane", resp.User.DisplayName)
	assert.NotEmpty(t, resp.Token)

	rec = s.do(t, http.MethodGet, "/api/session", "", nil)
	var sess sessionResponse
	decode(t, rec, &sess)
	assert.True(t, sess.LoggedIn)
	require.NotNil(t, sess.User)
	assert.Equal(t, "jane@example.com", sess.User.Email)
}

func TestLogin_BadPassword(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/login", "", LoginRequest{Email: "jane@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "auth", errorKind(t, rec))
}

func TestSignup(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/signup", "", SignupRequest{Email: "jane@example.com", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", errorKind(t, rec))

	rec = s.do(t, http.MethodPost, "/api/signup", "", SignupRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp authResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Jane Doe", resp.User.DisplayName)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "jane@example.com")

	rec := s.do(t, http.MethodPost, "/api/logout", "", nil)
	assert.JSONEq(t, `{"redirect":"/sign-in"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/quota", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)
	janeToken := s.login(t, "jane@example.com")
	s.login(t, "john@example.com")

	rec := s.do(t, http.MethodGet, "/api/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/favorites", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/favorites", janeToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "token of a replaced session")
}

func TestRedesignAndQuota(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "jane@example.com")

	rec := s.do(t, http.MethodPost, "/api/redesigns", token, photoRequest{Photo: photo, Style: "Japandi"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res core.RedesignResult
	decode(t, rec, &res)
	assert.Equal(t, "data:image/png;base64,bmV3IHJvb20=", res.Image)
	assert.Equal(t, core.MaxDailyRedesigns-1, res.RemainingToday)

	rec = s.do(t, http.MethodGet, "/api/quota", token, nil)
	var q quotaResponse
	decode(t, rec, &q)
	assert.Equal(t, quotaResponse{CanRedesign: true, RemainingToday: 4, DailyLimit: 5}, q)
}

func TestRedesign_RateLimited(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "jane@example.com")

	for range core.MaxDailyRedesigns {
		rec := s.do(t, http.MethodPost, "/api/redesigns", token, photoRequest{Photo: photo, Style: "Modern"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := s.do(t, http.MethodPost, "/api/redesigns", token, photoRequest{Photo: photo, Style: "Modern"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limited", errorKind(t, rec))
}

func TestRedesign_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"overloaded", errors.New("Error 503: model is overloaded"), http.StatusServiceUnavailable, "overloaded"},
		{"no image", core.ErrNoImageGenerated, http.StatusBadGateway, "generation_failed"},
		{"other", errors.New("Error 400: API key not valid"), http.StatusBadGateway, "generation_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			token := s.login(t, "jane@example.com")
			s.redesigner.err = tt.err

			rec := s.do(t, http.MethodPost, "/api/redesigns", token, photoRequest{Photo: photo, Style: "Modern"})
			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp errorResponse
			decode(t, rec, &resp)
			assert.Equal(t, tt.wantKind, resp.Kind)
			assert.Contains(t, resp.Error, tt.err.Error())
			if tt.wantKind == "overloaded" {
				assert.Equal(t, overloadedNotice, resp.Notice)
			}
			assert.Equal(t, core.MaxDailyRedesigns, s.app.RemainingToday())
		})
	}
}

func TestRedesign_Validation(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "jane@example.com")

	rec := s.do(t, http.MethodPost, "/api/redesigns", token, photoRequest{Photo: photo})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", errorKind(t, rec))

	rec = s.do(t, http.MethodPost, "/api/redesigns", token, "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentify(t *testing.T) {
	s := newTestServer(t)
	s.identifier.items = []core.IdentifiedItem{{ItemName: "Floor lamp", ItemDescription: "Brass arc lamp", SuggestedSearchQuery: "brass arc floor lamp"}}

	rec := s.do(t, http.MethodPost, "/api/identify", "", photoRequest{Photo: photo})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp identifyResponse
	decode(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "https://www.google.com/search?tbm=shop&hl=en&gl=us&q=brass+arc+floor+lamp", resp.Items[0].ShoppingURL)
	assert.Empty(t, resp.Notice)
}

func TestIdentify_Empty(t *testing.T) {
	s := newTestServer(t)
	s.identifier.items = []core.IdentifiedItem{}

	rec := s.do(t, http.MethodPost, "/api/identify", "", photoRequest{Photo: photo})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp identifyResponse
	decode(t, rec, &resp)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Equal(t, noItemsNotice, resp.Notice)
}

func TestFavoritesLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "jane@example.com")

	rec := s.do(t, http.MethodPost, "/api/favorites", token, createFavoriteRequest{Image: photo, Style: "Boho"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item store.FavoriteItem
	decode(t, rec, &item)
	assert.Equal(t, "Boho", item.Title)
	assert.Equal(t, 10, item.Likes)

	rec = s.do(t, http.MethodPatch, "/api/favorites/"+item.ID, token, updateFavoriteRequest{Title: "Sunroom"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &item)
	assert.Equal(t, "Sunroom", item.Title)

	rec = s.do(t, http.MethodPost, "/api/favorites/"+item.ID+"/like", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &item)
	assert.True(t, item.UserHasLiked)
	assert.Equal(t, 11, item.Likes)

	rec = s.do(t, http.MethodGet, "/api/favorites", token, nil)
	var list struct {
		Favorites []store.FavoriteItem `json:"favorites"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Favorites, 1)

	rec = s.do(t, http.MethodDelete, "/api/favorites/"+item.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, s.app.Favorites())
}

func TestFavorites_UnknownID(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "jane@example.com")

	for _, req := range []struct {
		method, path string
		body         any
	}{
		{http.MethodPatch, "/api/favorites/missing", updateFavoriteRequest{Title: "x"}},
		{http.MethodPost, "/api/favorites/missing/like", nil},
		{http.MethodDelete, "/api/favorites/missing", nil},
	} {
		rec := s.do(t, req.method, req.path, token, req.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, req.method+" "+req.path)
	}
}

func TestFollowAndCommunity(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "jane@example.com")

	rec := s.do(t, http.MethodGet, "/api/profiles/loft_life", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var before core.ProfileView
	decode(t, rec, &before)
	assert.False(t, before.IsFollowing)

	rec = s.do(t, http.MethodPost, "/api/following/loft_life", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled toggleFollowResponse
	decode(t, rec, &toggled)
	assert.Equal(t, toggleFollowResponse{Username: "loft_life", IsFollowing: true, Count: 1}, toggled)

	rec = s.do(t, http.MethodGet, "/api/profiles/loft_life", token, nil)
	var after core.ProfileView
	decode(t, rec, &after)
	assert.True(t, after.IsFollowing)
	assert.Equal(t, before.Followers+1, after.Followers)

	rec = s.do(t, http.MethodGet, "/api/following", token, nil)
	assert.JSONEq(t, `{"following":["loft_life"],"count":1}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/community", "", nil)
	var feed struct {
		Profiles []core.ProfileView `json:"profiles"`
	}
	decode(t, rec, &feed)
	assert.NotEmpty(t, feed.Profiles)

	rec = s.do(t, http.MethodGet, "/api/profiles/nobody", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/redesigns", nil)
	req.Header.Set("Origin", "http://localhost:9002")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:9002", rec.Header().Get("Access-Control-Allow-Origin"))
}
