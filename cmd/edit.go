package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/tracklet/internal/logging"
	"github.com/fakeyudi/tracklet/internal/tui"
)

var (
	editFrame int
	editWatch bool
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Open an annotation document in the interactive editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("edit needs an interactive terminal; use `tracklet combine` in scripts")
		}
		path := args[0]
		store, doc, err := loadDocument(path)
		if err != nil {
			return err
		}

		cfg := GetConfig()

		// Logging to the terminal would tear the alternate screen.
		tuiLogger := logging.Discard()
		if cfg.LogFile != "" {
			l, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()
			tuiLogger = l
		}

		frame := editFrame
		if !cmd.Flags().Changed("frame") {
			if frames := doc.Frames(); len(frames) > 0 {
				frame = frames[0]
			}
		}

		width, height := cfg.CanvasWidth, cfg.CanvasHeight
		if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil {
			width, height = w, h
		}

		tuiLogger.Info("editor started", "path", path, "frame", frame, "watch", editWatch)
		return tui.Run(cmd.Context(), doc, store, tui.Options{
			Frame:          frame,
			Width:          width,
			Height:         height,
			HighlightColor: cfg.HighlightColor,
			ReadOnly:       isReadOnly(path),
			Watch:          editWatch,
			Logger:         tuiLogger,
		})
	},
}

// isReadOnly reports whether the current user cannot write path.
func isReadOnly(path string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return true
	}
	f.Close()
	return false
}

func init() {
	editCmd.Flags().IntVar(&editFrame, "frame", 0, "frame to open (default: first frame with objects)")
	editCmd.Flags().BoolVar(&editWatch, "watch", false, "reload the document when it changes on disk")
	rootCmd.AddCommand(editCmd)
}
