package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/config"
	apperrors "github.com/ahmadmousily/FAQ-Question/pkg/errors"
)

const noMatchMessage = "No relevant FAQ found."

// Resolver is the slice of the FAQ domain the HTTP transport needs; narrowed
// to an interface so handler tests can stub it.
type Resolver interface {
	Resolve(ctx context.Context, query string, topK int, department string) ([]faq.Result, error)
	Browse(ctx context.Context) ([]faq.Group, error)
}

// Handler wires the HTTP transport to the FAQ domain.
type Handler struct {
	cfg      config.SearchConfig
	resolver Resolver
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg config.SearchConfig, resolver Resolver, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		resolver: resolver,
		logger:   logger.With("component", "http.handler"),
	}
}

type searchResponse struct {
	Query      string       `json:"query"`
	Department string       `json:"department,omitempty"`
	Results    []faq.Result `json:"results"`
	Message    string       `json:"message,omitempty"`
}

// Search resolves a free-text query to the best matching FAQ entries.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "query parameter cannot be empty", nil))
		return
	}

	topK := h.cfg.DefaultTopK
	if raw := c.Query("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "top_k must be a positive integer", err))
			return
		}
		topK = parsed
	}
	if topK > h.cfg.MaxTopK {
		topK = h.cfg.MaxTopK
	}
	department := c.Query("department")

	results, err := h.resolver.Resolve(c.Request.Context(), query, topK, department)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	resp := searchResponse{
		Query:      query,
		Department: strings.TrimSpace(department),
		Results:    results,
	}
	if len(results) == 0 {
		resp.Message = noMatchMessage
	}
	c.JSON(http.StatusOK, resp)
}

// ListFAQs returns the whole corpus grouped by department.
func (h *Handler) ListFAQs(c *gin.Context) {
	groups, err := h.resolver.Browse(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": groups})
}

// domainError translates the domain error taxonomy to transport status codes.
// NoMatch never reaches here: it is an empty result set, not an error.
func domainError(err error) *HTTPError {
	switch apperrors.Code(err) {
	case "invalid_input":
		return NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err)
	case "store_error":
		return NewHTTPError(http.StatusBadGateway, "store_error", "search backend unavailable, try again", err)
	case "encoder_error":
		return NewHTTPError(http.StatusBadGateway, "encoder_error", "embedding backend unavailable, try again", err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
	}
}
