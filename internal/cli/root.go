package cli

import (
	"context"

	"github.com/mgpai22/subsync/internal/config"
	"github.com/mgpai22/subsync/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subsync",
	Short: "Caption synchronization for media playback",
	Long: `Subsync loads SRT and WebVTT caption tracks for a media file and keeps
the displayed caption in step with the playback clock.

Tracks are discovered next to the media file (movie.vtt, movie.eng.srt, ...)
or given explicitly. The selected track and playback position are remembered
per media file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, path, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if path != "" {
			logger.Debugw("Loaded config", "path", path)
		}
		return nil
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default: ./subsync.yaml or ~/.subsync/config.yaml)")
}
