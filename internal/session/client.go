package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/abhisek/spacequiz/internal/quiz"
)

// DefaultClientTimeout bounds one batch request end to end. The server may
// spend two full upstream attempts before answering, so this sits above
// twice the default upstream timeout.
const DefaultClientTimeout = 60 * time.Second

const generatePath = "/api/generate-quiz"

// ClientRequestError is a failure reaching the endpoint or a non-2xx reply.
// Its message is what the learner sees next to the retry affordance.
type ClientRequestError struct {
	// Status is the HTTP status, or 0 for transport failures.
	Status  int
	Message string
	Err     error
}

func (e *ClientRequestError) Error() string {
	return e.Message
}

func (e *ClientRequestError) Unwrap() error { return e.Err }

// Client fetches batches from the generation endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// Model, when set, overrides the server's primary model.
	Model string
}

// NewClient creates a Client for the server at baseURL, e.g.
// "http://localhost:8788". A zero timeout means DefaultClientTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type batchResponse struct {
	Questions quiz.Batch `json:"questions"`
	ModelUsed string     `json:"modelUsed"`
	Error     string     `json:"error"`
}

// FetchBatch performs GET /api/generate-quiz for difficulty d. Every
// failure is a *ClientRequestError.
func (c *Client) FetchBatch(ctx context.Context, d quiz.Difficulty) (quiz.Batch, error) {
	q := url.Values{"difficulty": {d.String()}}
	if c.Model != "" {
		q.Set("model", c.Model)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+generatePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &ClientRequestError{Message: fmt.Sprintf("Request failed: %v", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientRequestError{Message: fmt.Sprintf("Request failed: %v", err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &ClientRequestError{Status: resp.StatusCode, Message: fmt.Sprintf("Request failed: %v", err), Err: err}
	}

	var out batchResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("Request failed: %d", resp.StatusCode)
		if decodeErr == nil && out.Error != "" {
			msg = out.Error
		}
		return nil, &ClientRequestError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &ClientRequestError{
			Status:  resp.StatusCode,
			Message: "Failed to load questions",
			Err:     decodeErr,
		}
	}

	return out.Questions, nil
}
