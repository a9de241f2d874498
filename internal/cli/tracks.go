package cli

import (
	"fmt"
	"io"

	"github.com/mgpai22/subsync/internal/ffmpeg"
	"github.com/mgpai22/subsync/internal/media"
	"github.com/mgpai22/subsync/internal/store"
	"github.com/mgpai22/subsync/internal/track"
	"github.com/spf13/cobra"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks [media_file]",
	Short: "List the caption tracks of a media file",
	Long: `List the caption tracks found for a media file, which one would be
selected first, and the remembered playback position.

Tracks are looked up next to the media file using the configured languages
and extensions: movie.vtt, movie.srt, movie.eng.vtt, movie.eng.srt, ...
Subtitle streams muxed into the media file are listed when ffprobe is
installed; they cannot be selected.

Examples:
  subsync tracks movie.mp4
  subsync tracks movie.mp4 --track Commentary=extras/commentary.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTracks,
}

func init() {
	rootCmd.AddCommand(tracksCmd)
	addTrackFlags(tracksCmd)
}

func addTrackFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringArrayP("track", "t", nil, "Extra caption track as label=source (repeatable)")
	cmd.Flags().
		Bool("no-discover", false, "Do not look for caption files next to the media file")
}

// discovered tracks followed by those given with --track
func collectTracks(cmd *cobra.Command, mediaPath string) ([]track.Track, error) {
	noDiscover, _ := cmd.Flags().GetBool("no-discover")
	extra, _ := cmd.Flags().GetStringArray("track")

	var tracks []track.Track
	if !noDiscover && !track.IsRemote(mediaPath) {
		found, err := track.Discover(mediaPath, cfg.Languages, cfg.Extensions)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, found...)
	}

	for _, value := range extra {
		t, err := track.ParseTrackFlag(value)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// the configured state file, or memory when none is configured or it
// cannot be read
func openStore() store.Store {
	if cfg.StateFile == "" {
		return store.NewMemory()
	}
	st, err := store.OpenFile(cfg.StateFile)
	if err != nil {
		logger.Warnw("Failed to open state file, state will not be saved",
			"path", cfg.StateFile,
			"error", err,
		)
		return store.NewMemory()
	}
	logger.Debugw("Using state file", "path", st.Path())
	return st
}

func runTracks(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]

	tracks, err := collectTracks(cmd, mediaPath)
	if err != nil {
		return err
	}

	resource := track.ResourceKey(mediaPath)
	st := openStore()
	registry := track.NewRegistry(resource, tracks, st)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Media: %s\n", resource)

	if registry.Len() == 0 {
		fmt.Fprintln(out, "No caption tracks found")
	} else {
		first, _ := registry.DefaultIndex()
		fmt.Fprintln(out, "Tracks:")
		for i, t := range registry.Tracks() {
			marker := " "
			if i == first {
				marker = "*"
			}
			lang := t.Language
			if lang == "" {
				lang = "-"
			}
			fmt.Fprintf(out, " %s [%d] %-12s %-4s %s\n", marker, i, t.Label, lang, t.Source)
		}
	}

	if pos, ok := st.Get(store.PositionKey(resource)); ok {
		fmt.Fprintf(out, "Saved position: %ss\n", pos)
	}

	if !track.IsRemote(mediaPath) && media.IsMediaFile(mediaPath) && ffmpeg.Available() {
		printEmbeddedStreams(out, mediaPath)
	}
	return nil
}

func printEmbeddedStreams(out io.Writer, mediaPath string) {
	info, err := ffmpeg.Probe(mediaPath, cfg.Player.ProbeTimeout)
	if err != nil {
		logger.Debugw("Probe failed", "media", mediaPath, "error", err)
		return
	}
	if len(info.Subtitles) == 0 {
		return
	}

	fmt.Fprintln(out, "Embedded subtitle streams (not selectable):")
	for _, s := range info.Subtitles {
		fmt.Fprintf(out, "   #%d %s %s %s\n", s.Index, s.Codec, s.Language, s.Title)
	}
}
