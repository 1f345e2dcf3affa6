package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spacequiz/internal/quiz"
)

func TestClient_FetchBatch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, generatePath, r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"questions":[{"id":"1","question":"Q?","options":["a","b","c","d"],"correctIndex":2,"explanation":"e"}],"modelUsed":"gemini-2.0-flash"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL+"/", 0)
	c.Model = "gemini-2.5-pro"

	batch, err := c.FetchBatch(context.Background(), quiz.Hard)
	require.NoError(t, err)
	require.Equal(t, 1, batch.Len())
	assert.Equal(t, 2, batch[0].CorrectIndex)
	assert.Equal(t, "difficulty=hard&model=gemini-2.5-pro", gotQuery)
}

func TestClient_ErrorBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Missing GEMINI_API_KEY"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, 0).FetchBatch(context.Background(), quiz.Easy)

	var reqErr *ClientRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.Equal(t, "Missing GEMINI_API_KEY", reqErr.Error())
}

func TestClient_StatusOnlyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, 0).FetchBatch(context.Background(), quiz.Easy)

	var reqErr *ClientRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "Request failed: 502", reqErr.Message)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).FetchBatch(context.Background(), quiz.Easy)

	var reqErr *ClientRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 0, reqErr.Status)
	assert.Contains(t, reqErr.Message, "Request failed")
	assert.NotNil(t, errors.Unwrap(err))
}

func TestClient_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, 0).FetchBatch(context.Background(), quiz.Easy)

	var reqErr *ClientRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "Failed to load questions", reqErr.Message)
}

// TestClient_DrivesSession runs the medium → hard boundary end to end
// against a fake server.
func TestClient_DrivesSession(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Query().Get("difficulty"))
		w.Write([]byte(`{"questions":[
			{"id":"1","question":"Q1","options":["a","b","c","d"],"correctIndex":0},
			{"id":"2","question":"Q2","options":["a","b","c","d"],"correctIndex":1},
			{"id":"3","question":"Q3","options":["a","b","c","d"],"correctIndex":2},
			{"id":"4","question":"Q4","options":["a","b","c","d"],"correctIndex":3},
			{"id":"5","question":"Q5","options":["a","b","c","d"],"correctIndex":0}
		]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 0)
	s := New()
	ctx := context.Background()

	tk, _ := s.Start(quiz.Medium)
	batch, err := c.FetchBatch(ctx, tk.Difficulty)
	require.True(t, s.Resolve(tk.Generation, batch, err))

	var load bool
	for i := 0; i < 5; i++ {
		q, ok := s.Current()
		require.True(t, ok)
		require.True(t, s.Select(q.CorrectIndex))
		tk, load = s.Advance()
	}
	require.True(t, load)

	batch, err = c.FetchBatch(ctx, tk.Difficulty)
	require.True(t, s.Resolve(tk.Generation, batch, err))

	assert.Equal(t, []string{"medium", "hard"}, requested)
	assert.Equal(t, quiz.Hard, s.Difficulty())
}
