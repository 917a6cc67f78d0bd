package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/deckplan/deckplan/pkg/errors"
	"github.com/deckplan/deckplan/pkg/geometry"
	"github.com/deckplan/deckplan/pkg/httputil"
	"github.com/deckplan/deckplan/pkg/observability"
)

// HTTP fetches canvas metadata from a remote JSON endpoint:
//
//	GET {BaseURL}/v1/documents/{id}/canvas
//	→ {"dimensions": {"width": 720, "height": 405}, "layouts": [...], "masters": [...]}
//
// Transient failures (network errors, 5xx) are retried with exponential
// backoff; 4xx responses are permanent. Timeout policy belongs to the
// provided Client (or the caller's ctx), not to this type.
type HTTP struct {
	BaseURL string
	Token   string // optional bearer token
	Client  *http.Client

	// Attempts and Delay tune the retry loop; zero values mean 3 attempts
	// starting at one second.
	Attempts int
	Delay    time.Duration
}

// NewHTTP creates an HTTP provider with default retry settings.
func NewHTTP(baseURL string) *HTTP {
	return &HTTP{BaseURL: baseURL, Client: http.DefaultClient}
}

// FetchCanvasSize implements [Provider].
func (h *HTTP) FetchCanvasSize(ctx context.Context, documentID string) (geometry.Size, error) {
	meta, err := h.FetchMetadata(ctx, documentID)
	if err != nil {
		return geometry.Size{}, err
	}
	return meta.Dimensions, nil
}

// FetchMetadata implements [MetadataFetcher].
func (h *HTTP) FetchMetadata(ctx context.Context, documentID string) (Metadata, error) {
	if err := errors.ValidateDocumentID(documentID); err != nil {
		return Metadata{}, err
	}

	attempts, delay := h.Attempts, h.Delay
	if attempts <= 0 {
		attempts = 3
	}
	if delay <= 0 {
		delay = time.Second
	}

	var meta Metadata
	observability.Provider().OnFetch(ctx, documentID)
	start := time.Now()
	err := httputil.Retry(ctx, attempts, delay, func() error {
		var fetchErr error
		meta, fetchErr = h.fetchOnce(ctx, documentID)
		return fetchErr
	})
	observability.Provider().OnFetchComplete(ctx, documentID, time.Since(start), err)
	if err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

func (h *HTTP) fetchOnce(ctx context.Context, documentID string) (Metadata, error) {
	endpoint := fmt.Sprintf("%s/v1/documents/%s/canvas", h.BaseURL, url.PathEscape(documentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Metadata{}, err
	}
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Metadata{}, httputil.Retryable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Metadata{}, errors.New(errors.ErrCodeNotFound, "document %s not found", documentID)
	case resp.StatusCode >= 500:
		return Metadata{}, httputil.Retryable(errors.New(errors.ErrCodeProvider, "canvas endpoint returned %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return Metadata{}, errors.New(errors.ErrCodeProvider, "canvas endpoint returned %d", resp.StatusCode)
	}

	var meta Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return Metadata{}, errors.Wrap(errors.ErrCodeProvider, err, "decode canvas response")
	}
	return meta, nil
}

// Ensure HTTP implements both provider interfaces.
var (
	_ Provider        = (*HTTP)(nil)
	_ MetadataFetcher = (*HTTP)(nil)
)
