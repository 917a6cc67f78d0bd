package provider

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deckplan/deckplan/pkg/errors"
	"github.com/deckplan/deckplan/pkg/geometry"
)

// MongoConfig configures a [Mongo] provider.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database and Collection locate the deck metadata documents.
	// Defaults: "deckplan" / "documents".
	Database   string
	Collection string
}

// Mongo resolves canvas metadata from a MongoDB collection of deck
// documents:
//
//	{ "_id": "<document id>",
//	  "canvas": { "width": 720, "height": 405 },
//	  "layouts": ["LAYOUT_TITLE", ...],
//	  "masters": ["MASTER_DEFAULT"] }
//
// Intended for self-hosted installations whose deck metadata already lives
// in MongoDB; hosted deployments use [HTTP] instead.
type Mongo struct {
	coll   *mongo.Collection
	client *mongo.Client
}

// deckDocument mirrors the stored metadata shape.
type deckDocument struct {
	ID      string        `bson:"_id"`
	Canvas  geometry.Size `bson:"canvas"`
	Layouts []string      `bson:"layouts,omitempty"`
	Masters []string      `bson:"masters,omitempty"`
}

// NewMongo connects to MongoDB and verifies the connection with a ping.
// Call [Mongo.Close] to release the client.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if cfg.Database == "" {
		cfg.Database = "deckplan"
	}
	if cfg.Collection == "" {
		cfg.Collection = "documents"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Mongo{
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		client: client,
	}, nil
}

// FetchCanvasSize implements [Provider].
func (m *Mongo) FetchCanvasSize(ctx context.Context, documentID string) (geometry.Size, error) {
	meta, err := m.FetchMetadata(ctx, documentID)
	if err != nil {
		return geometry.Size{}, err
	}
	return meta.Dimensions, nil
}

// FetchMetadata implements [MetadataFetcher].
func (m *Mongo) FetchMetadata(ctx context.Context, documentID string) (Metadata, error) {
	if err := errors.ValidateDocumentID(documentID); err != nil {
		return Metadata{}, err
	}

	var doc deckDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": documentID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Metadata{}, errors.New(errors.ErrCodeNotFound, "document %s not found", documentID)
	}
	if err != nil {
		return Metadata{}, errors.Wrap(errors.ErrCodeProvider, err, "query deck metadata for %s", documentID)
	}

	return Metadata{
		Dimensions: doc.Canvas,
		Layouts:    doc.Layouts,
		Masters:    doc.Masters,
	}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ensure Mongo implements both provider interfaces.
var (
	_ Provider        = (*Mongo)(nil)
	_ MetadataFetcher = (*Mongo)(nil)
)
