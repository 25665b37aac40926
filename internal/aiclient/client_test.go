package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"snsapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GenerateRecomment(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody RecommentRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"data":{"content":"generated reply"}}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	content, err := c.GenerateRecomment(context.Background(), RecommentRequest{
		Post:    PostContext{ID: 1, Content: "post body"},
		Author:  AuthorContext{ID: 2, Nickname: "alice"},
		Comment: CommentContext{ID: 3, Content: "nice post"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated reply", content)
	assert.Equal(t, "/recomments/bot", gotPath)
	assert.Equal(t, uint(3), gotBody.Comment.ID)
	assert.Equal(t, "alice", gotBody.Author.Nickname)
}

func TestClient_GenerateBoardPost_Endpoint(t *testing.T) {
	t.Parallel()

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":{"content":"bot post"}}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	content, err := c.GenerateBoardPost(context.Background(), BoardPostRequest{BoardType: "free"})
	require.NoError(t, err)
	assert.Equal(t, "bot post", content)
	assert.Equal(t, "/posts/bot", gotPath)
}

func TestClient_SummarizeYoutube_Endpoint(t *testing.T) {
	t.Parallel()

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":{"content":"summary"}}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.SummarizeYoutube(context.Background(), SummaryRequest{PostID: 1, YoutubeURL: "https://youtu.be/x"})
	require.NoError(t, err)
	assert.Equal(t, "/summaries/youtube", gotPath)
}

func TestClient_ErrorResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "server error", body: `upstream exploded`, code: http.StatusInternalServerError},
		{name: "malformed json", body: `{"data":`, code: http.StatusOK},
		{name: "empty content", body: `{"data":{"content":""}}`, code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := New(ts.URL)
			_, err := c.GenerateRecomment(context.Background(), RecommentRequest{})
			require.Error(t, err)
			assert.True(t, models.HasCode(err, models.CodeExternalService))
		})
	}
}

func TestClient_ServerUnreachable(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	c := New(ts.URL)
	_, err := c.GenerateBoardPost(context.Background(), BoardPostRequest{})
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeExternalService))
}
