package vision

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/config"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/imaging"
)

var _ Generator = (*Gemini)(nil)

// Gemini answers image questions through the official Gemini SDK.
type Gemini struct {
	client *genai.Client
	model  string
	maxOut int
}

// NewGemini creates a Gemini-backed generator from config.
func NewGemini(ctx context.Context, cfg config.VisionConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, model: cfg.Model, maxOut: cfg.MaxOutputTokens}, nil
}

// Configured is always true for a constructed client; construction fails
// without a credential.
func (g *Gemini) Configured() bool { return true }

// Generate issues exactly one GenerateContent call carrying the question and
// the image as an inline part, and extracts the first candidate's text.
func (g *Gemini) Generate(ctx context.Context, question string, img *imaging.Image) (string, error) {
	if img == nil {
		return "", errors.New("gemini: no image supplied")
	}

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: question},
				{InlineData: &genai.Blob{MIMEType: img.MIMEType, Data: img.Data}},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: int32(g.maxOut),
	})
	if err != nil {
		return "", err
	}

	text := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text += part.Text
			}
		}
	}
	return text, nil
}
