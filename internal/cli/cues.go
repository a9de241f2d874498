package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgpai22/subsync/internal/subtitle"
	"github.com/mgpai22/subsync/internal/track"
	"github.com/spf13/cobra"
)

var cuesCmd = &cobra.Command{
	Use:   "cues [caption_file]",
	Short: "Print the cues of a caption file",
	Long: `Parse an SRT or WebVTT caption file (or URL) and print its cues in
start order. Malformed blocks are reported as warnings and skipped.

Examples:
  subsync cues movie.srt
  subsync cues https://example.com/subs/ep1.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runCues,
}

func init() {
	rootCmd.AddCommand(cuesCmd)
}

func runCues(cmd *cobra.Command, args []string) error {
	cues, err := loadCues(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, cue := range cues {
		fmt.Fprintf(out, "%4d  %s\n", i+1, formatCue(cue))
	}
	fmt.Fprintf(out, "%d cues\n", len(cues))
	return nil
}

// fetches and parses a caption file or URL
func loadCues(ctx context.Context, source string) ([]subtitle.Cue, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	loader := track.NewAutoLoader(cfg.HTTPTimeout)
	resp, err := loader.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source, err)
	}
	if err := track.CheckResponse(source, resp); err != nil {
		return nil, err
	}

	decoder := subtitle.Decoder{OnWarning: func(w subtitle.Warning) {
		logger.Warnw("Invalid cue",
			"source", source,
			"reason", w.Reason,
			"block", w.Block,
		)
	}}
	cues, err := decoder.Parse(resp.Body, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}

	logger.Debugw("Parsed captions", "source", source, "cues", len(cues))
	return cues, nil
}

func formatCue(cue subtitle.Cue) string {
	return fmt.Sprintf("%s --> %s  %s",
		subtitle.FormatTime(cue.Start, '.'),
		subtitle.FormatTime(cue.Stop, '.'),
		strings.ReplaceAll(cue.Text, subtitle.LineBreak, " / "),
	)
}
