package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hyperengineering/between/internal/puzzle"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Compile-time interface check
var _ CandidateSource = (*OpenAI)(nil)

// ChatService defines the interface for making chat completion API
// calls. This abstraction enables testing without calling the real
// OpenAI API.
type ChatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAI implements the candidate source using OpenAI's chat API.
type OpenAI struct {
	chat  ChatService
	model openai.ChatModel
}

// NewOpenAI creates a new OpenAI candidate source.
func NewOpenAI(apiKey, model string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		chat:  client.Chat.Completions,
		model: openai.ChatModel(model),
	}
}

// Generate requests a batch of candidates and decodes the model's
// response. Individual malformed records are dropped; a payload with no
// recognizable JSON array at all is an error.
func (o *OpenAI) Generate(ctx context.Context, count int, avoid string) ([]puzzle.Candidate, error) {
	resp, err := o.chat.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a puzzle generator for a word game. Return only valid JSON arrays."),
			openai.UserMessage(buildPrompt(count, avoid)),
		}),
		Model:       openai.F(o.model),
		Temperature: openai.F(0.7),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		return nil, fmt.Errorf("candidate generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("candidate generation failed: no choices returned")
	}

	candidates, err := decodeCandidates(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("candidate generation failed: %w", err)
	}
	return candidates, nil
}

// ModelName returns the chat model name.
func (o *OpenAI) ModelName() string {
	return string(o.model)
}

func buildPrompt(count int, avoid string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Generate exactly %d "Between" puzzles. Each puzzle must have:
- Two anchor concepts (Anchor A and Anchor B) that form a clear spectrum or ordering
- One single-word or very short phrase answer that is the obvious middle concept
- A category describing the spectrum type (e.g., "temperature", "size", "intensity", "lifecycle", "speed")

Rules:
1. The answer must be a single common English word or very short phrase (max 2 words)
2. There must be exactly one obvious correct answer
3. Anchors should clearly imply an ordering (not synonyms)
4. Use common vocabulary only - no obscure words
5. The answer should be semantically equidistant from both anchors
`, count)

	if avoid != "" {
		fmt.Fprintf(&b, "\nAvoid reusing these recent anchor pairs and answers:\n%s\n", avoid)
	}

	b.WriteString(`
Format your response as a JSON array of objects with this exact structure:
[
  {
    "anchorA": "Cold",
    "anchorB": "Hot",
    "answer": "Warm",
    "category": "temperature"
  }
]

Return ONLY the JSON array, no other text.`)

	return b.String()
}

// decodeCandidates extracts the JSON array from a model response and
// decodes it one record at a time. A record that fails to decode or is
// missing required fields is dropped; only a payload with no parsable
// array is an error.
func decodeCandidates(content string) ([]puzzle.Candidate, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in model response")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	candidates := make([]puzzle.Candidate, 0, len(raw))
	var dropped int
	for _, record := range raw {
		var c puzzle.Candidate
		if err := json.Unmarshal(record, &c); err != nil {
			dropped++
			continue
		}
		if c.AnchorA == "" || c.AnchorB == "" || c.Answer == "" || c.Category == "" {
			dropped++
			continue
		}
		candidates = append(candidates, c)
	}

	if dropped > 0 {
		slog.Debug("dropped malformed candidate records",
			"dropped", dropped,
			"kept", len(candidates),
			"component", "generator",
		)
	}

	return candidates, nil
}
