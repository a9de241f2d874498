package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subsync/internal/subtitle"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [caption_file]",
	Short: "Rewrite a caption file as SRT or WebVTT",
	Long: `Parse a caption file (or URL) and write its cues back out as SRT or
WebVTT. Malformed blocks are dropped; cues come out sorted by start time.

The output format is taken from --format, else from the output file's
extension, else the opposite of the input format.

Examples:
  subsync convert movie.srt
  subsync convert movie.srt -o movie.vtt
  subsync convert https://example.com/ep1.vtt -f srt -o ep1.srt
  subsync convert movie.vtt -o -`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("output", "o", "", "Output file path (- for stdout)")
	convertCmd.Flags().
		StringP("format", "f", "", "Output caption format (srt, vtt)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	formatFlag, _ := cmd.Flags().GetString("format")

	format, err := resolveOutputFormat(inputPath, outputPath, formatFlag)
	if err != nil {
		return err
	}

	cues, err := loadCues(cmd.Context(), inputPath)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		if format == subtitle.FormatVTT {
			return subtitle.WriteVTT(cmd.OutOrStdout(), cues)
		}
		return subtitle.WriteSRT(cmd.OutOrStdout(), cues)
	}

	if outputPath == "" {
		base := filepath.Base(inputPath)
		outputPath = strings.TrimSuffix(base, filepath.Ext(base)) +
			subtitle.GetExtensionForFormat(format)
	}

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return err
	}

	logger.Infow("Converting captions",
		"input", inputPath,
		"output", outputPath,
		"format", format,
		"cues", len(cues),
	)

	if err := writer.Write(cues, outputPath); err != nil {
		return fmt.Errorf("failed to write captions: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Captions written: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Cues: %d\n", len(cues))
	return nil
}

func resolveOutputFormat(inputPath, outputPath, formatFlag string) (subtitle.Format, error) {
	if formatFlag != "" {
		format, err := subtitle.FormatFromHint(formatFlag)
		if err != nil {
			return "", fmt.Errorf("invalid format %q: supported formats are srt, vtt", formatFlag)
		}
		return format, nil
	}

	if outputPath != "" && outputPath != "-" {
		if format, err := subtitle.FormatFromHint(outputPath); err == nil {
			return format, nil
		}
		return "", fmt.Errorf("cannot infer caption format from %q, use --format", outputPath)
	}

	input, err := subtitle.FormatFromHint(inputPath)
	if err != nil {
		return "", err
	}
	if input == subtitle.FormatSRT {
		return subtitle.FormatVTT, nil
	}
	return subtitle.FormatSRT, nil
}
