// Package provider defines the canvas size provider boundary and its
// implementations.
//
// The layout engine never talks to the presentation service directly; it
// asks a [Provider] for a document's canvas size and treats any failure as
// "use the default canvas". Three implementations cover the deployment
// spectrum: [Static] for tests and offline use, [HTTP] for a remote
// metadata endpoint, and [Mongo] for installations that keep deck metadata
// in MongoDB.
package provider

import (
	"context"

	"github.com/deckplan/deckplan/pkg/geometry"
)

// Provider resolves the canvas size for a document. Implementations may
// block on network round trips; cancellation arrives via ctx. Callers must
// be prepared for failure and substitute [geometry.DefaultCanvas].
type Provider interface {
	FetchCanvasSize(ctx context.Context, documentID string) (geometry.Size, error)
}

// Metadata is the full canvas metadata some providers can supply beyond
// the raw size.
type Metadata struct {
	Dimensions geometry.Size `json:"dimensions"`
	Layouts    []string      `json:"layouts,omitempty"`
	Masters    []string      `json:"masters,omitempty"`
}

// MetadataFetcher is an optional interface for providers that can return
// layout and master identifiers along with the canvas size. Callers probe
// for it with a type assertion and fall back to [Provider.FetchCanvasSize].
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, documentID string) (Metadata, error)
}

// FetchMetadata resolves the richest metadata p can provide: the full
// [Metadata] when p implements [MetadataFetcher], otherwise just the size.
func FetchMetadata(ctx context.Context, p Provider, documentID string) (Metadata, error) {
	if mf, ok := p.(MetadataFetcher); ok {
		return mf.FetchMetadata(ctx, documentID)
	}
	size, err := p.FetchCanvasSize(ctx, documentID)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{Dimensions: size}, nil
}

// Static is a Provider that always returns a fixed size. Zero dimensions
// mean [geometry.DefaultCanvas].
type Static struct {
	Size geometry.Size
}

// FetchCanvasSize returns the configured size.
func (s Static) FetchCanvasSize(_ context.Context, _ string) (geometry.Size, error) {
	if s.Size.Width <= 0 || s.Size.Height <= 0 {
		return geometry.DefaultCanvas, nil
	}
	return s.Size, nil
}

// Ensure Static implements Provider.
var _ Provider = Static{}
