package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Firesoulcoder/prompt-to-site-generator/internal/ai/prompts"
	"github.com/Firesoulcoder/prompt-to-site-generator/internal/utils"
)

// EnhanceWebsite applies an instruction to an existing HTML document and
// returns the modified document. Unlike GenerateWebsite it fails loudly:
// callers must be able to tell "no change applied" from "change applied",
// so no fallback content is ever substituted here.
func (g *Generator) EnhanceWebsite(ctx context.Context, htmlContent, instruction string) (string, error) {
	fullPrompt := prompts.GetEnhancementPrompt(htmlContent, instruction)

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fullPrompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: 0.3,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil && utils.ShouldRetry(err) {
		log.Printf("Enhancement call failed, retrying once after delay... Error: %v", err)
		time.Sleep(2 * time.Second)
		resp, err = g.client.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		return "", fmt.Errorf("enhancement completion failed: %w", err)
	}

	content, err := extractContent(resp)
	if err != nil {
		return "", fmt.Errorf("enhancement produced unusable output: %w", err)
	}

	// The length check runs on the fence-stripped document, not the raw
	// response: fence wrappers must not pad an undersized result past it.
	sanitized := SanitizeHTML(content)
	if err := checkLength(sanitized); err != nil {
		return "", fmt.Errorf("enhancement produced unusable output: %w", err)
	}
	return sanitized, nil
}
