package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Run statuses of the external assistant protocol. A run is terminal once
// it reaches completed, failed or cancelled.
const (
	runStatusCompleted = "completed"
	runStatusFailed    = "failed"
	runStatusCancelled = "cancelled"
)

// client speaks the hosted assistant wire protocol: create a thread seeded
// with context messages, start a run against it, poll the run and list the
// thread messages the run produced.
type client struct {
	http        *resty.Client
	assistantID string
}

func newClient(baseURL, apiKey, assistantID string) *client {
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetTimeout(30 * time.Second)
	c.SetAuthToken(apiKey)
	c.SetHeader("OpenAI-Beta", "assistants=v2")

	return &client{http: c, assistantID: assistantID}
}

type threadMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type thread struct {
	ID string `json:"id"`
}

type run struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Usage  *Usage `json:"usage,omitempty"`
}

type messageContent struct {
	Type string `json:"type"`
	Text *struct {
		Value string `json:"value"`
	} `json:"text,omitempty"`
}

type message struct {
	ID      string           `json:"id"`
	Role    string           `json:"role"`
	Content []messageContent `json:"content"`
}

type messageList struct {
	Data []message `json:"data"`
}

func (c *client) createThread(ctx context.Context, messages []threadMessage) (*thread, error) {
	var t thread
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"messages": messages}).
		SetResult(&t).
		Post("/threads")
	if err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create thread: status %d: %s", resp.StatusCode(), resp.String())
	}
	return &t, nil
}

func (c *client) createRun(ctx context.Context, threadID string) (*run, error) {
	var r run
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"assistant_id": c.assistantID}).
		SetResult(&r).
		Post(fmt.Sprintf("/threads/%s/runs", threadID))
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create run: status %d: %s", resp.StatusCode(), resp.String())
	}
	return &r, nil
}

func (c *client) getRun(ctx context.Context, threadID, runID string) (*run, error) {
	var r run
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&r).
		Get(fmt.Sprintf("/threads/%s/runs/%s", threadID, runID))
	if err != nil {
		return nil, fmt.Errorf("retrieve run: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("retrieve run: status %d: %s", resp.StatusCode(), resp.String())
	}
	return &r, nil
}

func (c *client) listRunMessages(ctx context.Context, threadID, runID string) ([]message, error) {
	var list messageList
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("run_id", runID).
		SetResult(&list).
		Get(fmt.Sprintf("/threads/%s/messages", threadID))
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list messages: status %d: %s", resp.StatusCode(), resp.String())
	}
	return list.Data, nil
}
