// Package aiclient talks to the external AI generation server. The server is
// treated as unreliable and possibly slow; every call carries a timeout and
// failures surface as EXTERNAL_SERVICE_FAILURE errors for the caller to log
// and discard.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"snsapp/internal/models"
	"snsapp/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultTimeout = 30 * time.Second

// Client is a typed HTTP client for the generation server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// PostContext is the post portion of a generation request payload.
type PostContext struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorContext identifies a content author in a generation request.
type AuthorContext struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
}

// CommentContext is the comment portion of a recomment generation request.
type CommentContext struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// RecommentContext is one existing reply in the thread context.
type RecommentContext struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// RecommentRequest is the thread context sent for bot reply generation.
type RecommentRequest struct {
	Post       PostContext        `json:"post"`
	Author     AuthorContext      `json:"author"`
	Comment    CommentContext     `json:"comment"`
	Recomments []RecommentContext `json:"recomments"`
}

// BoardPostRequest is the context sent for cadence-triggered bot posts.
type BoardPostRequest struct {
	BoardType string        `json:"board_type"`
	Posts     []PostContext `json:"posts"`
}

// SummaryRequest asks for a YouTube video summary.
type SummaryRequest struct {
	PostID     uint   `json:"post_id"`
	YoutubeURL string `json:"youtube_url"`
}

type contentResponse struct {
	Data struct {
		Content string `json:"content"`
	} `json:"data"`
}

// GenerateRecomment asks the server for a bot reply to the given thread.
func (c *Client) GenerateRecomment(ctx context.Context, req RecommentRequest) (string, error) {
	return c.generate(ctx, "/recomments/bot", req)
}

// GenerateBoardPost asks the server for a bot post from recent board activity.
func (c *Client) GenerateBoardPost(ctx context.Context, req BoardPostRequest) (string, error) {
	return c.generate(ctx, "/posts/bot", req)
}

// SummarizeYoutube asks the server to summarize a linked video.
func (c *Client) SummarizeYoutube(ctx context.Context, req SummaryRequest) (string, error) {
	return c.generate(ctx, "/summaries/youtube", req)
}

func (c *Client) generate(ctx context.Context, endpoint string, payload any) (string, error) {
	ctx, span := observability.Tracer.Start(ctx, "aiclient"+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", c.baseURL+endpoint)),
	)
	defer span.End()

	content, err := c.post(ctx, endpoint, payload)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
	}
	return content, err
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", models.NewExternalServiceError("encoding generation request failed", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return "", models.NewExternalServiceError("building generation request failed", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		observability.AIRequestFailures.WithLabelValues(endpoint).Inc()
		return "", models.NewExternalServiceError("generation server unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.AIRequestFailures.WithLabelValues(endpoint).Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", models.NewExternalServiceError(
			fmt.Sprintf("generation server returned %d: %s", resp.StatusCode, snippet), nil)
	}

	var parsed contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		observability.AIRequestFailures.WithLabelValues(endpoint).Inc()
		return "", models.NewExternalServiceError("malformed generation response", err)
	}
	if parsed.Data.Content == "" {
		observability.AIRequestFailures.WithLabelValues(endpoint).Inc()
		return "", models.NewExternalServiceError("generation response contained no content", nil)
	}
	return parsed.Data.Content, nil
}
