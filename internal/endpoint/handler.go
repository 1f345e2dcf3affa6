package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/abhisek/spacequiz/internal/llm"
	"github.com/abhisek/spacequiz/internal/quiz"
	"github.com/abhisek/spacequiz/internal/quizgen"
)

// GeneratePath is the route of the quiz generation endpoint.
const GeneratePath = "/api/generate-quiz"

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

var tracer = otel.Tracer("github.com/abhisek/spacequiz/internal/endpoint")

// Handler serves GET /api/generate-quiz.
type Handler struct {
	gen quizgen.Generator

	// setupErr, when set, is returned for every request instead of
	// generating. It holds the configuration error found at startup.
	setupErr error
}

// NewHandler creates a Handler that generates batches with gen.
func NewHandler(gen quizgen.Generator) *Handler {
	return &Handler{gen: gen}
}

// NewMisconfiguredHandler creates a Handler that answers every generation
// request with err, typically an *llm.ErrConfiguration. The server still
// starts so health checks and the error body stay observable.
func NewMisconfiguredHandler(err error) *Handler {
	return &Handler{setupErr: err}
}

type generateResponse struct {
	Questions quiz.Batch `json:"questions"`
	ModelUsed string     `json:"modelUsed,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	reqID := r.Header.Get(RequestIDHeader)
	if _, err := uuid.Parse(reqID); err != nil {
		reqID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, reqID)

	ctx, span := tracer.Start(r.Context(), "quiz.generate")
	defer span.End()
	ctx = llm.WithRequestID(ctx, reqID)

	status := http.StatusOK
	defer func() {
		if p := recover(); p != nil {
			status = http.StatusInternalServerError
			writeJSON(w, status, map[string]any{
				"error":   "Unexpected error",
				"message": fmt.Sprint(p),
			})
		}
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		log.Printf("generate-quiz id=%s status=%d dur=%s", reqID, status, time.Since(start).Round(time.Millisecond))
	}()

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		status = http.StatusMethodNotAllowed
		writeJSON(w, status, map[string]any{"error": "Method not allowed"})
		return
	}

	q := r.URL.Query()
	input := quizgen.GenerateInput{
		Difficulty: quiz.ParseDifficulty(q.Get("difficulty")),
		Model:      q.Get("model"),
	}
	span.SetAttributes(
		attribute.String("quiz.difficulty", input.Difficulty.String()),
		attribute.String("quiz.model_override", input.Model),
		attribute.String("request.id", reqID),
	)

	if h.setupErr != nil {
		status = h.writeError(w, h.setupErr)
		span.RecordError(h.setupErr)
		return
	}

	res, err := h.gen.Generate(ctx, input)
	if err != nil {
		span.RecordError(err)
		status = h.writeError(w, err)
		log.Printf("generate-quiz id=%s difficulty=%s failed: %v", reqID, input.Difficulty, err)
		return
	}

	batch := res.Batch
	if batch == nil {
		batch = quiz.Batch{}
	}
	span.SetAttributes(
		attribute.Int("quiz.questions", batch.Len()),
		attribute.String("llm.model_used", res.ModelUsed),
	)
	writeJSON(w, status, generateResponse{Questions: batch, ModelUsed: res.ModelUsed})
}

// writeError maps a generation failure to its HTTP response and returns the
// status written.
func (h *Handler) writeError(w http.ResponseWriter, err error) int {
	var (
		cfgErr    *llm.ErrConfiguration
		upstream  *llm.ErrUpstreamGeneration
		malformed *quizgen.MalformedResponseError
	)

	switch {
	case errors.As(err, &cfgErr):
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": cfgErr.Error()})
		return http.StatusInternalServerError

	case errors.As(err, &upstream):
		provider := upstream.PrimaryProvider()
		if provider == "" {
			provider = "Upstream"
		}
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":         provider + " request failed",
			"details":       errString(upstream.Primary()),
			"fallbackError": errString(upstream.Fallback()),
		})
		return http.StatusBadGateway

	case errors.As(err, &malformed):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "Invalid model response",
			"raw":   malformed.Raw,
		})
		return http.StatusInternalServerError

	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Unexpected error",
			"message": err.Error(),
		})
		return http.StatusInternalServerError
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
