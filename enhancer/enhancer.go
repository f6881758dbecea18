package enhancer

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/menotliam/Chatbot-AI-4Enterprise/config"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
)

const SYSTEM_DIRECTIVE = `You are an expert at formatting and improving chatbot replies. Make the reply polished and professional without changing its meaning.`

const REWRITE_DIRECTIVE = `Rewrite the assistant reply below for the customer who asked the original question. Style: a sincere sales consultant - friendly, honest, practical, concise, never robotic or overly formal.
Rules:
1. Keep clear formatting: separate sections with line breaks, use **text** to bold product titles.
2. NEVER invent links or prices. Only include a link if the original reply contains a real URL; if there is no URL, drop the "Where to buy" part entirely. Real links go inside the platform name as a markdown link, e.g. [Shopee](https://...).
3. Do NOT add emoji or decorative symbols of any kind, anywhere in the reply.
4. Weave one short, honest assessment into each product description (e.g. "suitable for families with small children because...") instead of a separate opinion section.
5. If the original reply contains prices or deals, put them under a "Price & Deals" line; never guess prices that are not in the data.
6. List every feature present in the original reply per product (capacity, usage, safety notes, storage, who it suits); skip any item the original reply does not cover instead of writing "no information" or making it up.
7. No tables, JSON or metadata - write like a consultant talking to the customer.
Return only the rewritten reply text, not an explanation of what you did.`

// urlPattern is intentionally loose; it only needs to agree with itself
// when comparing raw and enhanced output.
var urlPattern = regexp.MustCompile(`https?://[^\s)\]>"']+`)

// Enhancer post-processes raw assistant replies through a single-shot
// rewrite call. It degrades gracefully: any failure of the secondary call
// returns the raw reply unchanged rather than an error.
type Enhancer struct {
	http      *resty.Client
	model     string
	maxTokens int
}

func New(cfg config.AppConfig) *Enhancer {
	c := resty.New()
	c.SetBaseURL(cfg.Assistant.BaseURL)
	c.SetTimeout(30 * time.Second)
	c.SetAuthToken(cfg.OpenAIAPIKey)

	return &Enhancer{
		http:      c,
		model:     cfg.Enhancer.Model,
		maxTokens: cfg.Enhancer.MaxTokens,
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Rewrite sends the raw reply through the rewrite model and returns the
// enhanced text. The rewrite is policy-constrained (no fabricated
// links/prices, no symbols); since the model's compliance is unverifiable,
// a deterministic link guard rejects output that introduces URLs absent
// from the raw reply, and the caller is expected to strip symbols from
// whatever Rewrite returns.
func (e *Enhancer) Rewrite(ctx context.Context, rawReply, originalMessage string) string {
	enhanced, err := e.complete(ctx, rawReply, originalMessage)
	if err != nil {
		logger.Log.Errorf("enhancer: rewrite failed, keeping raw reply: %v", err)
		return rawReply
	}
	if enhanced == "" {
		logger.Log.Warnf("enhancer: rewrite returned empty result, keeping raw reply")
		return rawReply
	}
	if introducesLinks(rawReply, enhanced) {
		logger.Log.Warnf("enhancer: rewrite introduced links not present in the raw reply, keeping raw reply")
		return rawReply
	}
	return enhanced
}

func (e *Enhancer) complete(ctx context.Context, rawReply, originalMessage string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nOriginal question: %q\nOriginal reply:\n%s", REWRITE_DIRECTIVE, originalMessage, rawReply)

	var result chatCompletionResponse
	resp, err := e.http.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model: e.model,
			Messages: []chatMessage{
				{Role: "system", Content: SYSTEM_DIRECTIVE},
				{Role: "user", Content: prompt},
			},
			MaxTokens:   e.maxTokens,
			Temperature: 0.3,
		}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat completion: status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}

// introducesLinks reports whether enhanced contains a URL that raw does
// not. The no-fabricated-links rule lives in the rewrite prompt, which a
// model can ignore; this check cannot be ignored.
func introducesLinks(raw, enhanced string) bool {
	known := map[string]bool{}
	for _, u := range urlPattern.FindAllString(raw, -1) {
		known[u] = true
	}
	for _, u := range urlPattern.FindAllString(enhanced, -1) {
		if !known[u] {
			return true
		}
	}
	return false
}
