package cmd

import (
	"fmt"

	"github.com/mj1618/desktop-vision/internal/model"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture windows or displays to PNG files",
	Long: `Capture one or more windows, one display, or every display to PNG files and
print the result with the written file paths.

Examples:
  desktop-vision screenshot --window-id 4242
  desktop-vision screenshot --window-id 4242 --output ~/shot.png --scale 0.5
  desktop-vision screenshot --window-id 4242 --window-id 4243 --output-dir /tmp/shots
  desktop-vision screenshot --display 0
  desktop-vision screenshot --all-displays`,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().StringSlice("window-id", nil, "Capture window by ID (repeatable)")
	screenshotCmd.Flags().Int("display", -1, "Capture display by index")
	screenshotCmd.Flags().Bool("all-displays", false, "Capture every display")
	screenshotCmd.Flags().String("mode", "full", "Capture mode: full, content")
	screenshotCmd.Flags().String("output", "", "Output file path ending in .png (single window only)")
	screenshotCmd.Flags().String("output-dir", "", "Output directory (multiple windows)")
	screenshotCmd.Flags().Float64("scale", 1, "Scale factor, greater than 0 and at most 1 (for token efficiency)")
	screenshotCmd.Flags().Bool("pretty", false, "Pretty-print output (no-op for YAML)")
	screenshotCmd.MarkFlagsMutuallyExclusive("window-id", "display", "all-displays")
	screenshotCmd.MarkFlagsOneRequired("window-id", "display", "all-displays")
	screenshotCmd.MarkFlagsMutuallyExclusive("output", "output-dir")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	windowIDs, _ := cmd.Flags().GetStringSlice("window-id")
	display, _ := cmd.Flags().GetInt("display")
	mode, _ := cmd.Flags().GetString("mode")
	outputPath, _ := cmd.Flags().GetString("output")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	scale, _ := cmd.Flags().GetFloat64("scale")

	if outputPath != "" && len(windowIDs) != 1 {
		return fmt.Errorf("--output requires exactly one --window-id")
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	switch {
	case len(windowIDs) == 1 && outputDir == "":
		res, err := svc.CaptureWindow(ctx, model.CaptureWindowRequest{
			WindowID:   windowIDs[0],
			Mode:       model.CaptureMode(mode),
			OutputPath: outputPath,
			Scale:      scale,
		})
		return printResult(cmd, res, err)
	case len(windowIDs) > 0:
		res, err := svc.CaptureWindows(ctx, model.CaptureWindowsRequest{
			WindowIDs: windowIDs,
			Mode:      model.CaptureMode(mode),
			OutputDir: outputDir,
			Scale:     scale,
		})
		return printResult(cmd, res, err)
	case cmd.Flags().Changed("display"):
		res, err := svc.CaptureDisplay(ctx, model.CaptureDisplayRequest{Display: &display, Scale: scale})
		return printResult(cmd, res, err)
	default:
		res, err := svc.CaptureDisplay(ctx, model.CaptureDisplayRequest{Scale: scale})
		return printResult(cmd, res, err)
	}
}
