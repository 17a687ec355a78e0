package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/karlseguin/ccache/v3"

	"basha-backend/logging"
	"basha-backend/models"
)

const (
	FallbackDescription  = "Affordable housing option for students in a prime location."
	FallbackAreaInsights = "A popular area for students with plenty of amenities nearby."
)

var errAIDisabled = errors.New("ai endpoint not configured")

type AIConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

type aiRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type aiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Text    string `json:"text"`
}

// AIService writes listing copy through a text generation endpoint.
// Every call falls back to a fixed string on failure.
type AIService struct {
	cfg      AIConfig
	client   *http.Client
	insights *ccache.Cache[string]
}

func NewAIService(cfg AIConfig) *AIService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &AIService{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		insights: ccache.New(ccache.Configure[string]().MaxSize(100)),
	}
}

func (s *AIService) Close() {
	s.insights.Stop()
}

func (s *AIService) GenerateDescription(ctx context.Context, in models.DescriptionInput) string {
	details, _ := json.Marshal(in)
	prompt := fmt.Sprintf("Generate an attractive, student-friendly 2-sentence description for a rental listing in Dhaka based on these details: %s. Make it sound trustworthy and local.", details)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		l := logging.Ctx(ctx)
		l.Warn().Err(err).Msg("description generation failed, using fallback")
		return FallbackDescription
	}
	return text
}

// AreaInsights is cached per area for an hour. Fallbacks are not cached.
func (s *AIService) AreaInsights(ctx context.Context, area string) string {
	if item := s.insights.Get(area); item != nil && !item.Expired() {
		return item.Value()
	}

	prompt := fmt.Sprintf("Provide 3 quick bullet points about living in %s, Dhaka as a student. Focus on transport, food, and safety.", area)
	text, err := s.generate(ctx, prompt)
	if err != nil {
		l := logging.Ctx(ctx)
		l.Debug().Err(err).Str("area", area).Msg("area insights unavailable, using fallback")
		return FallbackAreaInsights
	}
	s.insights.Set(area, text, time.Hour)
	return text
}

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	if s.cfg.Endpoint == "" {
		return "", errAIDisabled
	}

	b, err := json.Marshal(aiRequest{Model: s.cfg.Model, Prompt: prompt})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var ar aiResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return "", fmt.Errorf("JSON parse error: %w", err)
	}
	if ar.Status != "" && ar.Status != "success" {
		return "", fmt.Errorf("API status error: %s - %s", ar.Status, ar.Message)
	}
	text := strings.TrimSpace(ar.Text)
	if text == "" {
		return "", errors.New("empty generation")
	}
	return text, nil
}
