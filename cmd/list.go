package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/tracklet/internal/report"
)

var (
	listFormat string
	listFrame  int
)

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List the objects and groups of an annotation document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		_, doc, err := loadDocument(path)
		if err != nil {
			return err
		}

		format := listFormat
		if format == "" {
			format = GetConfig().DefaultFormat
		}
		renderer, err := report.ForFormat(format)
		if err != nil {
			return err
		}

		var frames []int
		if cmd.Flags().Changed("frame") {
			frames = append(frames, listFrame)
		}
		out, err := renderer.Render(report.Build(path, doc, frames...))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "", "output format: markdown or json (default from config)")
	listCmd.Flags().IntVar(&listFrame, "frame", 0, "only list this frame")
	rootCmd.AddCommand(listCmd)
}
