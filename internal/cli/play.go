package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/mgpai22/subsync/internal/clipboard"
	"github.com/mgpai22/subsync/internal/config"
	"github.com/mgpai22/subsync/internal/ffmpeg"
	"github.com/mgpai22/subsync/internal/media"
	"github.com/mgpai22/subsync/internal/player"
	"github.com/mgpai22/subsync/internal/track"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [media_file]",
	Short: "Play the captions of a media file in the terminal",
	Long: `Run a virtual playback clock for a media file and print each caption
as it comes up. The clock is bounded by the media duration, read with
ffprobe when it is installed, or given with --duration.

The selected track and position are saved to the state file and restored
the next time the same media file is played.

Commands are read from stdin, one per line:
  p play/pause, n next caption, b previous caption, v next track,
  V subtitles off, s <time> seek, r <rate> rate, c copy caption,
  i status, q quit

Examples:
  subsync play movie.mp4
  subsync play movie.mp4 --rate 1.5 --paused
  subsync play https://example.com/ep1.mp4 -t English=https://example.com/ep1.en.vtt -d 24m`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	addTrackFlags(playCmd)

	playCmd.Flags().
		DurationP("duration", "d", 0, "Media duration (skips ffprobe)")
	playCmd.Flags().
		Float64P("rate", "r", 0, "Playback rate (default from config)")
	playCmd.Flags().
		Bool("paused", false, "Start paused")
}

func runPlay(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]

	rate, _ := cmd.Flags().GetFloat64("rate")
	if !cmd.Flags().Changed("rate") {
		rate = cfg.Player.Rate
	}
	if !config.ValidRate(rate) {
		return fmt.Errorf("invalid rate %v", rate)
	}
	paused, _ := cmd.Flags().GetBool("paused")
	autoplay := cfg.Player.Autoplay && !paused

	tracks, err := collectTracks(cmd, mediaPath)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		logger.Warnw("No caption tracks found", "media", mediaPath)
	}

	duration := resolveDuration(cmd, mediaPath)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	loop := player.NewLoop(0)
	clock := media.NewVirtualClock(duration)
	clock.SetRate(rate)

	engine, err := player.New(player.Options{
		Resource:   track.ResourceKey(mediaPath),
		Tracks:     tracks,
		Clock:      clock,
		Loader:     track.NewAutoLoader(cfg.HTTPTimeout),
		Store:      openStore(),
		Renderer:   player.NewTextRenderer(cmd.OutOrStdout()),
		Dispatcher: loop,
		Logger:     logger.With("media", filepath.Base(mediaPath)),
	})
	if err != nil {
		return err
	}

	ctl := &controller{
		engine:    engine,
		clock:     clock,
		clipboard: clipboard.System{},
		out:       cmd.OutOrStdout(),
	}

	logger.Infow("Starting playback",
		"media", mediaPath,
		"tracks", len(tracks),
		"duration", time.Duration(clock.Duration()*float64(time.Second)),
		"rate", rate,
	)

	loop.Post(func() {
		engine.Start()
		if autoplay {
			clock.Play()
		}
	})

	go tick(ctx, loop, clock, cfg.Player.TickInterval, cancel)
	go readCommands(ctx, cmd.InOrStdin(), loop, ctl, cancel)

	err = loop.Run(ctx)

	// the loop has stopped; nothing else touches the engine now
	engine.HandleEvent(media.EventTimeUpdate)
	engine.Close()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// media duration from --duration, else ffprobe, else unbounded
func resolveDuration(cmd *cobra.Command, mediaPath string) time.Duration {
	if d, _ := cmd.Flags().GetDuration("duration"); d > 0 {
		return d
	}
	if track.IsRemote(mediaPath) || !media.IsMediaFile(mediaPath) || !ffmpeg.Available() {
		logger.Debugw("Media duration unknown, clock is unbounded", "media", mediaPath)
		return 0
	}

	d, err := ffmpeg.GetDuration(mediaPath, cfg.Player.ProbeTimeout)
	if err != nil {
		logger.Warnw("Failed to probe media duration",
			"media", mediaPath,
			"error", err,
		)
		return 0
	}
	return d
}

// posts clock ticks to the loop and stops playback once the media ends
func tick(ctx context.Context, loop *player.Loop, clock *media.VirtualClock, interval time.Duration, stop context.CancelFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			loop.Post(func() {
				playing := !clock.Paused()
				clock.Tick()
				if playing && clock.Ended() {
					logger.Infow("End of media")
					stop()
				}
			})
		}
	}
}

// feeds stdin lines to the controller on the loop goroutine
func readCommands(ctx context.Context, in io.Reader, loop *player.Loop, ctl *controller, stop context.CancelFunc) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()
		loop.Post(func() {
			err := ctl.Handle(line)
			switch {
			case errors.Is(err, errQuit):
				stop()
			case err != nil:
				logger.Warnw("Command failed", "command", line, "error", err)
			}
		})
	}
	if err := scanner.Err(); err != nil {
		logger.Debugw("Stopped reading commands", "error", err)
	}
}
