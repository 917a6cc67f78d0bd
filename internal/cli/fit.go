package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deckplan/deckplan/pkg/engine"
)

// fitCommand creates the fit command for solving font sizes.
func (c *CLI) fitCommand() *cobra.Command {
	var (
		width   float64
		height  float64
		minSize float64
		maxSize float64
	)

	cmd := &cobra.Command{
		Use:   "fit [text]",
		Short: "Solve the largest font size that fits a box",
		Long: `Solve the largest font size that fits a box.

The fit command estimates the rendered footprint of the given text at
candidate font sizes and reports the largest size (to 0.1pt) whose
estimate fits the target box, including word wrap. When even the minimum
size overflows, the required box is reported instead of truncating.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := engine.New(nil, nil, c.Logger)
			result, err := eng.FitText(cmd.Context(), engine.FitOptions{
				Text:        args[0],
				MaxWidth:    width,
				MaxHeight:   height,
				MinFontSize: minSize,
				MaxFontSize: maxSize,
			})
			if err != nil {
				return err
			}

			printKeyValue("font size", fmt.Sprintf("%.1fpt", result.FontSize))
			printKeyValue("box", fmt.Sprintf("%.1f × %.1f pt", result.RequiredBox.Width, result.RequiredBox.Height))
			if !result.Fits {
				printWarning("Text overflows %.0f×%.0f even at the minimum size; grow the box", width, height)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "W", 400, "target box width in points")
	cmd.Flags().Float64VarP(&height, "height", "H", 100, "target box height in points")
	cmd.Flags().Float64Var(&minSize, "min", engine.DefaultMinFontSize, "minimum font size in points")
	cmd.Flags().Float64Var(&maxSize, "max", engine.DefaultMaxFontSize, "maximum font size in points")

	return cmd
}
