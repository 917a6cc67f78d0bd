package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/deckplan/deckplan/pkg/errors"
	"github.com/deckplan/deckplan/pkg/geometry"
	"github.com/deckplan/deckplan/pkg/planner"
)

// Deck is a parsed deck manifest: a document id, an optional canvas
// override, and the text items to place in order.
type Deck struct {
	DocumentID string
	Canvas     geometry.Size // zero when the manifest does not override
	Items      []planner.Item
}

// deckFile mirrors the TOML manifest layout:
//
//	document = "quarterly-review"
//
//	[canvas]
//	width = 960
//	height = 540
//
//	[[item]]
//	text = "Q3 Results"
//	font_size = 36
type deckFile struct {
	Document string     `toml:"document"`
	Canvas   canvasSpec `toml:"canvas"`
	Items    []deckItem `toml:"item"`
}

type canvasSpec struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type deckItem struct {
	Text      string   `toml:"text"`
	X         *float64 `toml:"x"`
	Y         *float64 `toml:"y"`
	Width     float64  `toml:"width"`
	Height    float64  `toml:"height"`
	FontSize  float64  `toml:"font_size"`
	Bold      *bool    `toml:"bold"`
	Alignment string   `toml:"alignment"`
	Color     string   `toml:"color"`
}

// LoadDeck reads and validates a TOML deck manifest.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest %s", path)
	}
	return parseDeck(data)
}

func parseDeck(data []byte) (*Deck, error) {
	var file deckFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest")
	}

	if file.Document == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest missing document id")
	}
	if err := errors.ValidateDocumentID(file.Document); err != nil {
		return nil, err
	}
	if len(file.Items) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest has no items")
	}
	if (file.Canvas.Width == 0) != (file.Canvas.Height == 0) {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "canvas override needs both width and height")
	}
	if file.Canvas.Width < 0 || file.Canvas.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "canvas dimensions cannot be negative")
	}

	deck := &Deck{
		DocumentID: file.Document,
		Canvas:     geometry.Size{Width: file.Canvas.Width, Height: file.Canvas.Height},
		Items:      make([]planner.Item, len(file.Items)),
	}

	for i, item := range file.Items {
		if item.Text == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "item %d has no text", i)
		}
		deck.Items[i] = planner.Item{
			Text:      item.Text,
			X:         item.X,
			Y:         item.Y,
			Width:     item.Width,
			Height:    item.Height,
			FontSize:  item.FontSize,
			Bold:      item.Bold,
			Alignment: item.Alignment,
			Color:     item.Color,
		}
	}

	return deck, nil
}
