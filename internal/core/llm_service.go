package core

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"google.golang.org/api/option"
	"gwi.com/room-redesign/internal/utils"
)

const (
	defaultIdentifyModelName = "gemini-2.0-flash"

	identifySystemInstruction = "You are an interior design shopping assistant. " +
		"Look at the room in the image and pick out up to 5 distinct, clearly visible furniture or decor items " +
		"that a shopper could buy. Do not invent items that are not in the picture."

	identifyPrompt = "For each item give: itemName (1-3 words), itemDescription (5-15 words describing its look, " +
		"material and colour) and suggestedSearchQuery (a query for an online shopping search that would find " +
		"similar products). Return an empty items list if nothing suitable is visible."
)

type IdentifiedItem struct {
	ItemName             string `json:"itemName"`
	ItemDescription      string `json:"itemDescription"`
	SuggestedSearchQuery string `json:"suggestedSearchQuery"`
}

type identifyOutput struct {
	Items []IdentifiedItem `json:"items"`
}

//go:embed schemas/identify_items.json
var identifyItemsSchemaJSON string

var identifyItemsSchema = jsonschema.MustCompileString("identify_items.json", identifyItemsSchemaJSON)

// identifyResponseSchema is the same contract in the form Gemini accepts.
var identifyResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"items": {
			Type:        genai.TypeArray,
			Description: "At most 5 items visible in the image",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"itemName":             {Type: genai.TypeString, Description: "Short label, 1-3 words"},
					"itemDescription":      {Type: genai.TypeString, Description: "Visual description, 5-15 words"},
					"suggestedSearchQuery": {Type: genai.TypeString, Description: "Shopping search query"},
				},
				Required: []string{"itemName", "itemDescription", "suggestedSearchQuery"},
			},
		},
	},
	Required: []string{"items"},
}

// LLMService answers the item identification contract with Gemini structured output.
type LLMService struct {
	client    *genai.Client
	modelName string
}

func NewLLMService(ctx context.Context, apiKey, modelName string) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	if modelName == "" {
		modelName = defaultIdentifyModelName
	}
	return &LLMService{client: client, modelName: modelName}, nil
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			slog.Error("Error closing GenAI client", "error", err)
		} else {
			slog.Info("GenAI client closed.")
		}
	}
}

// IdentifyItems lists shoppable items in img. A missing or malformed model
// answer is an empty list, not an error; only a failed call is an error.
func (s *LLMService) IdentifyItems(ctx context.Context, img utils.DataURL) ([]IdentifiedItem, error) {
	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(identifySystemInstruction)},
	}
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = identifyResponseSchema

	resp, err := model.GenerateContent(ctx, genai.Blob{MIMEType: img.MIMEType, Data: img.Data}, genai.Text(identifyPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini identify request failed: %w", err)
	}

	return decodeIdentifiedItems(collectText(resp)), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

var codeFence = regexp.MustCompile("```(?:json)?")

// decodeIdentifiedItems validates the model's JSON against the output schema.
func decodeIdentifiedItems(text string) []IdentifiedItem {
	text = strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
	if text == "" {
		slog.Info("Identification returned no output")
		return []IdentifiedItem{}
	}

	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		slog.Warn("Identification output is not JSON", "error", err)
		return []IdentifiedItem{}
	}
	if err := identifyItemsSchema.Validate(raw); err != nil {
		slog.Warn("Identification output failed schema validation", "error", err)
		return []IdentifiedItem{}
	}

	var out identifyOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		slog.Warn("Identification output could not be decoded", "error", err)
		return []IdentifiedItem{}
	}
	if out.Items == nil {
		return []IdentifiedItem{}
	}
	return out.Items
}
