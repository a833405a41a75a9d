package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/gokatarajesh/find-the-ai/internal/metrics"
)

const defaultSystemPrompt = "I will give you a quote. Summarize it with a witty sentence, in your own words."

// ErrEmptyParaphrase is returned when the model reply normalizes to nothing.
var ErrEmptyParaphrase = errors.New("model returned an empty paraphrase")

// Config holds connection details for the chat completion API.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
	Timeout      time.Duration
	MaxAttempts  int
	MaxBackoff   time.Duration
}

// Cache stores paraphrases by quote id (implemented by
// repository.ParaphraseRepository).
type Cache interface {
	Lookup(ctx context.Context, quoteID string) (string, bool, error)
	Save(ctx context.Context, quoteID, content, model string) error
}

// Paraphraser turns human quotes into AI look-alikes.
type Paraphraser struct {
	client      openai.Client
	config      Config
	cache       Cache
	logger      zerolog.Logger
	backoffBase time.Duration
}

func NewParaphraser(cfg Config, cache Cache, logger zerolog.Logger) *Paraphraser {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 4
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.ChatModelGPT3_5Turbo)
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		// retries are driven by Paraphrase so backoff stays under our cap
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")+"/"))
	}

	return &Paraphraser{
		client:      openai.NewClient(opts...),
		config:      cfg,
		cache:       cache,
		logger:      logger.With().Str("component", "paraphraser").Logger(),
		backoffBase: time.Second,
	}
}

// Paraphrase returns the normalized paraphrase of content, from the cache
// when quoteID was seen before.
func (p *Paraphraser) Paraphrase(ctx context.Context, quoteID, content string) (string, error) {
	if p.cache != nil {
		cached, ok, err := p.cache.Lookup(ctx, quoteID)
		switch {
		case err != nil:
			p.logger.Warn().Err(err).Str("quote_id", quoteID).Msg("paraphrase cache read failed")
		case ok:
			metrics.ParaphraseLookups.WithLabelValues(metrics.SourceCache).Inc()
			return cached, nil
		}
	}

	if p.config.APIKey == "" {
		metrics.ParaphraseLookups.WithLabelValues(metrics.SourceError).Inc()
		return "", fmt.Errorf("OPENAI_API_KEY not configured")
	}

	reply, err := p.complete(ctx, content)
	if err != nil {
		metrics.ParaphraseLookups.WithLabelValues(metrics.SourceError).Inc()
		return "", fmt.Errorf("paraphrase %s: %w", quoteID, err)
	}
	text, err := Normalize(reply)
	if err != nil {
		metrics.ParaphraseLookups.WithLabelValues(metrics.SourceError).Inc()
		return "", fmt.Errorf("paraphrase %s: %w", quoteID, err)
	}
	metrics.ParaphraseLookups.WithLabelValues(metrics.SourceLLM).Inc()

	if p.cache != nil {
		if err := p.cache.Save(ctx, quoteID, text, p.config.Model); err != nil {
			p.logger.Warn().Err(err).Str("quote_id", quoteID).Msg("paraphrase cache write failed")
		}
	}
	return text, nil
}

func (p *Paraphraser) complete(ctx context.Context, content string) (string, error) {
	backoff := retry.WithCappedDuration(p.config.MaxBackoff,
		retry.WithMaxRetries(uint64(p.config.MaxAttempts-1), retry.NewExponential(p.backoffBase)))

	var reply string
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(p.config.Model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(p.config.SystemPrompt),
				openai.UserMessage(content),
			},
		})
		if err != nil {
			p.logger.Debug().Err(err).Int("attempt", attempt).Msg("chat completion failed")
			return retry.RetryableError(err)
		}
		if len(resp.Choices) == 0 {
			return retry.RetryableError(errors.New("chat completion returned no choices"))
		}
		reply = resp.Choices[0].Message.Content
		return nil
	})
	return reply, err
}

// Normalize cleans a model reply: it keeps the text before the first dash
// (models like to append "- Author"), removes double quotes, turns
// exclamation marks into periods and makes sure the sentence ends with one.
func Normalize(reply string) (string, error) {
	text, _, _ := strings.Cut(reply, "-")
	text = strings.ReplaceAll(text, `"`, "")
	text = strings.ReplaceAll(text, "!", ".")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyParaphrase
	}
	if !strings.HasSuffix(text, ".") {
		text += "."
	}
	return text, nil
}
