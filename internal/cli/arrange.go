package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckplan/deckplan/pkg/arrange"
	"github.com/deckplan/deckplan/pkg/engine"
	"github.com/deckplan/deckplan/pkg/provider"
)

// arrangeCommand creates the arrange command for repositioning elements.
func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		output   string
		strategy string
		resolve  bool
		document string
		canvas   string
		backend  backendFlags
	)

	cmd := &cobra.Command{
		Use:   "arrange [elements.json]",
		Short: "Reposition an element batch with a layout strategy",
		Long: `Reposition an element batch with a layout strategy.

The arrange command reads a JSON array of elements (id plus bounds) and
recomputes their positions with the selected strategy: grid, stack, or
flow. With --resolve, overlaps remaining after placement are untangled by
nudging elements downward and wrapping into new columns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArrange(cmd.Context(), args[0], output, document, strategy, canvas, resolve, backend)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.arranged.json)")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", string(arrange.StrategyStack), "layout strategy: grid, stack, flow")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve overlaps after placement")
	cmd.Flags().StringVarP(&document, "document", "d", "offline", "document id for canvas resolution")
	cmd.Flags().StringVar(&canvas, "canvas", "", "canvas size override as WxH in points, e.g. 960x540")
	backend.register(cmd)

	return cmd
}

func (c *CLI) runArrange(ctx context.Context, input, output, document, strategy, canvas string, resolve bool, backend backendFlags) error {
	elements, err := readElementsFile(input)
	if err != nil {
		return fmt.Errorf("load elements %s: %w", input, err)
	}

	var eng *engine.Engine
	if canvas != "" {
		size, err := parseCanvas(canvas)
		if err != nil {
			return err
		}
		eng = engine.New(nil, provider.Static{Size: size}, c.Logger)
	} else {
		eng, err = c.newEngine(ctx, backend)
		if err != nil {
			return err
		}
	}

	tracker := newProgress(loggerFromContext(ctx))
	result, err := eng.Arrange(ctx, engine.ArrangeOptions{
		DocumentID:        document,
		Strategy:          arrange.Strategy(strategy),
		Elements:          elements,
		ResolveCollisions: resolve,
	})
	if err != nil {
		return fmt.Errorf("arrange elements: %w", err)
	}
	tracker.done(fmt.Sprintf("Arranged %d elements with %s", len(result.Elements), result.Strategy))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".arranged.json"
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	printSuccess("Arrange complete")
	printFile(outputPath)

	return nil
}

// readElementsFile reads a JSON array of elements.
func readElementsFile(path string) ([]arrange.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var elements []arrange.Element
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("parse elements: %w", err)
	}
	return elements, nil
}
