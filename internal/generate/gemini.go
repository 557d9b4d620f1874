package generate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// APIKeyEnvVars are read, in order, when no API key is configured.
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// Request is one generation call.
type Request struct {
	Prompt
	// Temperature overrides the model default when non-nil.
	Temperature *float32
	// JSON asks the model for an application/json response.
	JSON bool
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Compile-time interface check.
var _ Generator = (*GeminiGenerator)(nil)

// ResolveAPIKey returns configured when set, else the first non-empty
// variable of APIKeyEnvVars.
func ResolveAPIKey(configured string) (string, error) {
	if k := strings.TrimSpace(configured); k != "" {
		return k, nil
	}
	for _, name := range APIKeyEnvVars {
		if k := strings.TrimSpace(os.Getenv(name)); k != "" {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: set %s", ErrMissingAPIKey, strings.Join(APIKeyEnvVars, " or "))
}

// GeminiGenerator calls the Gemini API through the genai SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a client for the Gemini developer API. An empty
// model selects DefaultModel.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating client: %v", ErrGeneration, err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Model returns the model name requests are sent to.
func (g *GeminiGenerator) Model() string { return g.model }

// Generate sends req and returns the response text.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{Temperature: req.Temperature}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.User), cfg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
