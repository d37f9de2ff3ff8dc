package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gwi.com/room-redesign/internal/store"
	"gwi.com/room-redesign/internal/utils"
)

type ItemIdentifier interface {
	IdentifyItems(ctx context.Context, img utils.DataURL) ([]IdentifiedItem, error)
}

type RoomRedesigner interface {
	RedesignRoom(ctx context.Context, img utils.DataURL, style string) (utils.DataURL, error)
}

type RedesignResult struct {
	Image          string `json:"image"`
	Style          string `json:"style"`
	RemainingToday int    `json:"remainingToday"`
}

// ShoppableItem is an IdentifiedItem with its external shopping link.
type ShoppableItem struct {
	IdentifiedItem
	ShoppingURL string `json:"shoppingUrl"`
}

// DesignService runs the two AI interactions on behalf of the app state.
// Calls are not deduplicated: concurrent redesigns each reach the model and
// each record an attempt when they finish.
type DesignService struct {
	app        *App
	identifier ItemIdentifier
	redesigner RoomRedesigner
}

func NewDesignService(app *App, identifier ItemIdentifier, redesigner RoomRedesigner) *DesignService {
	return &DesignService{app: app, identifier: identifier, redesigner: redesigner}
}

func parsePhoto(photo string) (utils.DataURL, error) {
	if strings.TrimSpace(photo) == "" {
		return utils.DataURL{}, ErrMissingPhoto
	}
	img, err := utils.ParseDataURL(photo)
	if err != nil {
		return utils.DataURL{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return img, nil
}

// Redesign restyles photo. Validation and the daily quota are checked before
// the model is called; only successful generations count against the quota.
func (s *DesignService) Redesign(ctx context.Context, photo, style string) (RedesignResult, error) {
	img, err := parsePhoto(photo)
	if err != nil {
		return RedesignResult{}, err
	}
	style = strings.TrimSpace(style)
	if style == "" {
		return RedesignResult{}, ErrMissingStyle
	}

	user, ok := s.app.CurrentUser()
	if !ok {
		return RedesignResult{}, ErrNotLoggedIn
	}
	if !s.app.CanRedesign() {
		return RedesignResult{}, ErrRateLimited
	}

	out, err := s.redesigner.RedesignRoom(ctx, img, style)
	if err != nil {
		slog.Error("Redesign failed", "user", user.ID, "style", style, "error", err)
		if !errors.Is(err, ErrNoImageGenerated) && isOverloaded(err) {
			return RedesignResult{}, fmt.Errorf("%w: %w", ErrModelOverloaded, err)
		}
		return RedesignResult{}, fmt.Errorf("%w: redesign: %w", ErrGenerationFailed, err)
	}

	s.app.RecordAttempt()
	slog.Info("Room redesigned", "user", user.ID, "style", style)
	return RedesignResult{
		Image:          out.String(),
		Style:          style,
		RemainingToday: s.app.RemainingToday(),
	}, nil
}

// IdentifyItems proposes shopping searches for items in photo. An empty list
// means nothing was identified.
func (s *DesignService) IdentifyItems(ctx context.Context, photo string) ([]ShoppableItem, error) {
	img, err := parsePhoto(photo)
	if err != nil {
		return nil, err
	}

	items, err := s.identifier.IdentifyItems(ctx, img)
	if err != nil {
		slog.Error("Item identification failed", "error", err)
		if isOverloaded(err) {
			return nil, fmt.Errorf("%w: %w", ErrModelOverloaded, err)
		}
		return nil, fmt.Errorf("%w: identify items: %w", ErrGenerationFailed, err)
	}

	out := make([]ShoppableItem, 0, len(items))
	for _, it := range items {
		out = append(out, ShoppableItem{
			IdentifiedItem: it,
			ShoppingURL:    utils.ShoppingSearchURL(it.SuggestedSearchQuery),
		})
	}
	return out, nil
}

// SaveRedesign stores a generated image as a favorite.
func (s *DesignService) SaveRedesign(image, style string) (store.FavoriteItem, error) {
	if strings.TrimSpace(image) == "" {
		return store.FavoriteItem{}, ErrMissingPhoto
	}
	style = strings.TrimSpace(style)
	if style == "" {
		return store.FavoriteItem{}, ErrMissingStyle
	}
	if _, err := utils.ParseDataURL(image); err != nil {
		return store.FavoriteItem{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return s.app.AddFavorite(image, style)
}
