package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deckplan/deckplan/pkg/engine"
	"github.com/deckplan/deckplan/pkg/errors"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(engine.New(nil, nil, nil), nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestPlanEndpoint(t *testing.T) {
	srv := newTestServer(t)

	t.Run("places a batch", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/plan", `{
			"document_id": "doc-1",
			"items": [
				{"text": "Title"},
				{"text": "Subtitle"},
				{"text": "Body copy"}
			]
		}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var result engine.PlaceResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(result.Elements) != 3 {
			t.Fatalf("got %d elements, want 3", len(result.Elements))
		}
		if result.Elements[0].Bounds.Y != 32 {
			t.Errorf("first element y = %v, want 32", result.Elements[0].Bounds.Y)
		}
		if result.Elements[0].ObjectID == "" {
			t.Error("element missing object id")
		}
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/plan", `{"document_id": "doc-1", "items": []}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}

		var body struct {
			Code errors.Code `json:"code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Code != errors.ErrCodeInvalidInput {
			t.Errorf("code = %v, want INVALID_INPUT", body.Code)
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/plan", `{"document_id": `)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/plan", `{"document_id": "doc-1", "slides": []}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestArrangeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	t.Run("applies strategy", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/arrange", `{
			"document_id": "doc-1",
			"strategy": "grid",
			"elements": [
				{"id": "a", "bounds": {"x": 0, "y": 0, "width": 100, "height": 50}},
				{"id": "b", "bounds": {"x": 0, "y": 0, "width": 100, "height": 50}}
			]
		}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var result engine.ArrangeResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Elements[0].Bounds.Overlaps(result.Elements[1].Bounds) {
			t.Error("grid left elements overlapping")
		}
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/arrange", `{
			"document_id": "doc-1",
			"strategy": "spiral",
			"elements": [{"id": "a", "bounds": {"x": 0, "y": 0, "width": 10, "height": 10}}]
		}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestFitEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/fit", `{
		"text": "Hello World",
		"max_width": 400,
		"max_height": 120
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result engine.FitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.FontSize < 8 || result.FontSize > 72 {
		t.Errorf("font size %v outside default range", result.FontSize)
	}
	if !result.Fits {
		t.Error("generous box reported as not fitting")
	}
}

func TestMutationEndpoint(t *testing.T) {
	srv := newTestServer(t)

	t.Run("accepts notification", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/documents/doc-1/mutations", `{}`)
		if resp.StatusCode != http.StatusAccepted {
			t.Errorf("status = %d, want 202", resp.StatusCode)
		}
	})

	t.Run("rejects oversized document id", func(t *testing.T) {
		id := make([]byte, 300)
		for i := range id {
			id[i] = 'a'
		}
		resp := postJSON(t, srv.URL+"/v1/documents/"+string(id)+"/mutations", `{}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}
