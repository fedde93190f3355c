package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Firesoulcoder/prompt-to-site-generator/internal/ai/prompts"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/utils"
)

// Responses shorter than this are treated as truncated or degenerate.
const minContentLength = 100

// ProgressEvent is emitted by the generation pipeline so callers can show
// real progress instead of polling a loading flag.
type ProgressEvent struct {
	Stage   string `json:"stage"` // "started", "generating", "validating", "complete", "error"
	Percent int    `json:"percent"`
	Message string `json:"message,omitempty"`
}

// ProgressFunc receives progress events. A nil ProgressFunc is allowed.
type ProgressFunc func(ProgressEvent)

func emit(report ProgressFunc, stage string, percent int, message string) {
	if report != nil {
		report(ProgressEvent{Stage: stage, Percent: percent, Message: message})
	}
}

// GenerateWebsite turns a natural-language prompt into a complete HTML
// document. It never fails: any transport error, malformed response, or
// undersized generation yields the deterministic fallback document instead,
// so the caller always has something displayable.
func (g *Generator) GenerateWebsite(ctx context.Context, userPrompt string, report ProgressFunc) string {
	emit(report, "started", 0, "")

	fullPrompt := fmt.Sprintf(prompts.GetSiteGenerationPrompt(), userPrompt)

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fullPrompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: 0.3,
	}

	emit(report, "generating", 30, "")

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil && utils.ShouldRetry(err) {
		log.Printf("Generation call failed, retrying once after delay... Error: %v", err)
		time.Sleep(2 * time.Second)
		resp, err = g.client.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		log.Printf("Error generating website, using fallback HTML: %v", err)
		emit(report, "error", 100, err.Error())
		return FallbackHTML(userPrompt)
	}

	emit(report, "validating", 80, "")

	content, err := extractContent(resp)
	if err == nil {
		err = checkLength(content)
	}
	if err != nil {
		log.Printf("Unusable generation response, using fallback HTML: %v", err)
		emit(report, "error", 100, err.Error())
		return FallbackHTML(userPrompt)
	}

	emit(report, "complete", 100, "")
	return SanitizeHTML(content)
}

// extractContent validates the response shape: a non-empty choice list whose
// first message carries non-empty content.
func extractContent(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("completion returned empty message content")
	}
	return content, nil
}

func checkLength(content string) error {
	if len(content) < minContentLength {
		return fmt.Errorf("completion content too short (%d chars), likely invalid", len(content))
	}
	return nil
}
