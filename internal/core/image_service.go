package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
	"gwi.com/room-redesign/internal/utils"
)

const defaultRedesignModelName = "gemini-2.0-flash-preview-image-generation"

// ImageService answers the room redesign contract with Gemini image output.
type ImageService struct {
	client    *genai.Client
	modelName string
}

func NewImageService(ctx context.Context, apiKey, modelName string) (*ImageService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI image client: %w", err)
	}
	if modelName == "" {
		modelName = defaultRedesignModelName
	}
	return &ImageService{client: client, modelName: modelName}, nil
}

func redesignPrompt(style string) string {
	return fmt.Sprintf("Redesign the room in this photo in a %s interior design style. "+
		"Keep the room's layout, walls, windows and camera angle, and replace furniture, colours, "+
		"materials and decor to match the style. Return the redesigned room as an image.", style)
}

// RedesignRoom returns the model's image for img restyled as style. A
// response without an image is ErrNoImageGenerated.
func (s *ImageService) RedesignRoom(ctx context.Context, img utils.DataURL, style string) (utils.DataURL, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(img.Data, img.MIMEType),
		genai.NewPartFromText(redesignPrompt(style)),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := s.client.Models.GenerateContent(ctx, s.modelName, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return utils.DataURL{}, fmt.Errorf("gemini redesign request failed: %w", err)
	}
	return extractImage(resp)
}

func extractImage(resp *genai.GenerateContentResponse) (utils.DataURL, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return utils.DataURL{}, ErrNoImageGenerated
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return utils.DataURL{MIMEType: mimeType, Data: part.InlineData.Data}, nil
		}
		text.WriteString(part.Text)
	}

	if text.Len() > 0 {
		slog.Warn("Redesign model answered without an image", "text", text.String())
	}
	return utils.DataURL{}, ErrNoImageGenerated
}
