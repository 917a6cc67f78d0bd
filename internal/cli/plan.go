package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckplan/deckplan/pkg/engine"
	"github.com/deckplan/deckplan/pkg/geometry"
	"github.com/deckplan/deckplan/pkg/provider"
)

// planCommand creates the plan command for placing deck manifests.
func (c *CLI) planCommand() *cobra.Command {
	var (
		output  string
		backend backendFlags
	)

	cmd := &cobra.Command{
		Use:   "plan [deck.toml]",
		Short: "Place a deck manifest's text items on the canvas",
		Long: `Place a deck manifest's text items on the canvas.

The plan command reads a TOML deck manifest, detects a preset for each text
item (title, subtitle, body, bullet, metric), derives fonts and box sizes,
stacks items vertically, and clamps every box into canvas bounds. The
output is a layout.json file that can be inspected with 'preview'.

The canvas size comes from the manifest's [canvas] section when present,
otherwise from the configured metadata backend, otherwise the default
720x405 canvas.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd.Context(), args[0], output, backend)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	backend.register(cmd)

	return cmd
}

// runPlan loads the manifest, places its items, and writes the layout.
func (c *CLI) runPlan(ctx context.Context, input, output string, backend backendFlags) error {
	deck, err := LoadDeck(input)
	if err != nil {
		return fmt.Errorf("load manifest %s: %w", input, err)
	}

	eng, err := c.planEngine(ctx, deck, backend)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d items...", len(deck.Items)))
	spinner.Start()

	result, err := eng.Place(ctx, engine.PlaceOptions{
		DocumentID: deck.DocumentID,
		Items:      deck.Items,
	})
	if err != nil {
		spinner.StopWithError("Placement failed")
		return fmt.Errorf("place items: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := writeLayoutFile(result, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	clamped := 0
	for _, el := range result.Elements {
		clamped += len(el.Warnings)
		for _, w := range el.Warnings {
			printWarning("%s: %s", truncateText(el.Text, 30), w)
		}
	}

	printSuccess("Plan complete")
	printFile(outputPath)
	printStats(len(result.Elements), clamped, result.FromCache)
	printNewline()
	printNextStep("Preview", appName+" preview "+outputPath)

	return nil
}

// planEngine wires the engine for a plan run. A manifest canvas override
// wins over any configured backend.
func (c *CLI) planEngine(ctx context.Context, deck *Deck, backend backendFlags) (*engine.Engine, error) {
	if deck.Canvas != (geometry.Size{}) {
		return engine.New(nil, provider.Static{Size: deck.Canvas}, c.Logger), nil
	}
	return c.newEngine(ctx, backend)
}

// writeLayoutFile writes a placement result as indented JSON.
func writeLayoutFile(result *engine.PlaceResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// readLayoutFile reads a placement result written by writeLayoutFile.
func readLayoutFile(path string) (*engine.PlaceResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var result engine.PlaceResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return &result, nil
}

// truncateText shortens text for single-line display.
func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
