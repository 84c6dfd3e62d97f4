package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/sentistream/internal/model"
)

// OpenAIEngine scores text through OpenAI's Chat Completions API. It is
// an optional alternative to the builtin lexical engine.
type OpenAIEngine struct {
	client *openai.Client
	config model.EngineConfig
}

// NewOpenAIEngine creates a new OpenAI-backed engine.
func NewOpenAIEngine(cfg model.EngineConfig) (*OpenAIEngine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIEngine{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Name returns the engine name.
func (e *OpenAIEngine) Name() string { return "openai" }

const scoringPrompt = `Score the sentiment of the text below. Respond with ONLY a JSON object
of the form {"neg": 0.0, "neu": 0.0, "pos": 0.0, "compound": 0.0} where
neg, neu, pos are proportions in [0,1] summing to 1 and compound is an
overall polarity in [-1,1]. No prose, no code fences.

Text: %q`

// PolarityScores asks the model for polarity proportions and a compound
// score.
func (e *OpenAIEngine) PolarityScores(ctx context.Context, text string) (model.Scores, error) {
	mdl := e.config.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}

	timeout := time.Duration(e.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: mdl,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a sentiment polarity scorer. You reply with a single JSON object and nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(scoringPrompt, text),
			},
		},
		MaxTokens:   100,
		Temperature: 0,
	})
	if err != nil {
		return model.Scores{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return model.Scores{}, fmt.Errorf("no response from OpenAI")
	}

	return parseScores(resp.Choices[0].Message.Content)
}

// parseScores decodes the model's JSON reply, tolerating stray code
// fences.
func parseScores(reply string) (model.Scores, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	var scores model.Scores
	if err := json.Unmarshal([]byte(reply), &scores); err != nil {
		return model.Scores{}, fmt.Errorf("parse scores reply: %w", err)
	}
	return scores, nil
}
