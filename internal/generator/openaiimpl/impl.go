package openaiimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/generator"
	"github.com/dealerhub/social-publisher/pkg/config"
	"github.com/dealerhub/social-publisher/pkg/formatter"
	"github.com/dealerhub/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type OpenAIImpl struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     logger.Logger
}

func New(opts Opts) *OpenAIImpl {
	return &OpenAIImpl{
		baseURL:    opts.Config.OpenAI.BaseURL,
		apiKey:     opts.Config.OpenAI.APIKey,
		model:      opts.Config.OpenAI.Model,
		httpClient: &http.Client{Timeout: opts.Config.OpenAI.Timeout},
		logger:     opts.Logger.WithComponent("OpenAIGenerator"),
	}
}

var _ generator.Client = (*OpenAIImpl)(nil)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const systemPrompt = "You write social media copy for Amazon sellers: short, persuasive, sales-focused posts that highlight the product and include a call to action."

var styleHints = map[domain.ContentStyle]string{
	domain.StyleEngaging:    "catchy and conversational",
	domain.StyleInformative: "factual, focused on specs and benefits",
	domain.StylePromotional: "deal-focused with a strong call to action",
}

func (g *OpenAIImpl) Generate(ctx context.Context, product *domain.Product, platform domain.Platform, style domain.ContentStyle) (string, error) {
	hint, ok := styleHints[style]
	if !ok {
		hint = styleHints[domain.StyleEngaging]
	}

	prompt := fmt.Sprintf(`Write a %s post for this Amazon product. Tone: %s.

Title: %s
Description: %s
Price: %s
Category: %s
Brand: %s

Requirements:
- At most %d characters
- Mention it is available on Amazon
- Add fitting hashtags
- A few emoji are fine, do not overdo it
- Return only the post text, no explanations`,
		platform, hint,
		product.Title, product.Description,
		formatter.FormatPrice(product.Price, product.Currency),
		product.Category, product.Brand,
		domain.DefaultCharLimits[platform])

	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(detail))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("openai response decode failed: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai returned empty content")
	}
	return content, nil
}
