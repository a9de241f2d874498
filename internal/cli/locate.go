package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mgpai22/subsync/internal/subtitle"
	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate [caption_file] [time]",
	Short: "Show the cues around a playback position",
	Long: `Print the previous, current and next cue of a caption file at the given
playback position. The position is in seconds or a timestamp.

Examples:
  subsync locate movie.srt 83.5
  subsync locate movie.vtt 00:01:23.500`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	position, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	cues, err := loadCues(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	previous, current, next := subtitle.Locate(cues, position)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Position: %s\n", subtitle.FormatTime(position, '.'))
	printSlot(out, "Previous", previous)
	printSlot(out, "Current", current)
	printSlot(out, "Next", next)
	return nil
}

func printSlot(out io.Writer, name string, cue *subtitle.Cue) {
	if cue == nil {
		fmt.Fprintf(out, "  %-9s -\n", name+":")
		return
	}
	fmt.Fprintf(out, "  %-9s %s\n", name+":", formatCue(*cue))
}

// seconds ("83.5") or a timestamp ("00:01:23.500", "01:23,500")
func parsePosition(s string) (float64, error) {
	s = strings.TrimSpace(s)
	var (
		pos float64
		err error
	)
	if strings.Contains(s, ":") {
		pos, err = subtitle.ParseTime(s)
	} else {
		pos, err = strconv.ParseFloat(s, 64)
	}
	if err != nil || math.IsNaN(pos) || math.IsInf(pos, 0) {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	if pos < 0 {
		return 0, fmt.Errorf("invalid position %q: must not be negative", s)
	}
	return pos, nil
}
