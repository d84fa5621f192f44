package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/tracklet/internal/annotation"
	"github.com/fakeyudi/tracklet/internal/canvas"
	"github.com/fakeyudi/tracklet/internal/combine"
	"github.com/fakeyudi/tracklet/internal/report"
)

var (
	combineSelect []int
	combineAt     []string
	combineFrame  int
	combineDryRun bool
	combineFormat string
)

var combineCmd = &cobra.Command{
	Use:   "combine <file>",
	Short: "Combine objects into a group without the editor",
	Long: `Combine runs the same combine mode as the editor without a terminal UI.
Objects named with --select are picked first, in order, then the cells given
with --at are clicked on the frame canvas. Picking an object twice removes it
again. Objects that do not share label, frame and type with the first pick
are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		store, doc, err := loadDocument(path)
		if err != nil {
			return err
		}
		cfg := GetConfig()
		log := GetLogger()

		format := combineFormat
		if format == "" {
			format = cfg.DefaultFormat
		}
		renderer, err := report.ForFormat(format)
		if err != nil {
			return err
		}

		clicks, err := parseCells(combineAt)
		if err != nil {
			return err
		}

		frame, err := combineTargetFrame(cmd, doc)
		if err != nil {
			return err
		}

		cv := canvas.New(cfg.CanvasWidth, cfg.CanvasHeight, canvas.Options{HighlightColor: cfg.HighlightColor})
		cv.SetLabels(doc.Labels)
		cv.Render(frame, doc.Objects)

		var result combine.Result
		h := combine.New(cv, cv, cv.Resolve, func(r combine.Result) { result = r }, combine.WithLogger(log))
		h.SetCombineMode(true)
		for _, id := range combineSelect {
			o, ok := doc.Object(id)
			if !ok {
				h.Cancel()
				return fmt.Errorf("object %d not found", id)
			}
			h.Select(o)
		}
		for _, c := range clicks {
			cv.Pick(c[0], c[1])
		}
		staged := h.Selected()
		h.SetCombineMode(false)

		for _, id := range combineSelect {
			if !slices.ContainsFunc(staged, func(o combine.Object) bool { return o.ClientID() == id }) {
				log.Warn("object skipped", "client_id", id, "frame", frame)
			}
		}
		if !result.Combined() {
			return fmt.Errorf("nothing to combine on frame %d: need at least two matching objects, got %d", frame, len(staged))
		}

		ids := make([]int, len(result.Objects))
		for i, o := range result.Objects {
			ids[i] = o.ClientID()
		}
		g, err := doc.Combine(ids, time.Now())
		if err != nil {
			return err
		}
		if !combineDryRun {
			if err := store.Save(doc); err != nil {
				return err
			}
		}
		log.Info("combined", "group", g.ID, "objects", ids, "dry_run", combineDryRun)

		rep := report.Build(path, doc, frame)
		rep.Combined = &g
		rep.DryRun = combineDryRun
		out, err := renderer.Render(rep)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

// combineTargetFrame returns --frame when given, else the frame of the first
// selected object, else the first frame of the document.
func combineTargetFrame(cmd *cobra.Command, doc *annotation.Document) (int, error) {
	if cmd.Flags().Changed("frame") {
		return combineFrame, nil
	}
	if len(combineSelect) > 0 {
		o, ok := doc.Object(combineSelect[0])
		if !ok {
			return 0, fmt.Errorf("object %d not found", combineSelect[0])
		}
		return o.FrameIndex, nil
	}
	if frames := doc.Frames(); len(frames) > 0 {
		return frames[0], nil
	}
	return 0, nil
}

// parseCells parses "X,Y" pairs.
func parseCells(values []string) ([][2]int, error) {
	cells := make([][2]int, 0, len(values))
	for _, v := range values {
		xs, ys, ok := strings.Cut(v, ",")
		x, errX := strconv.Atoi(strings.TrimSpace(xs))
		y, errY := strconv.Atoi(strings.TrimSpace(ys))
		if !ok || errX != nil || errY != nil {
			return nil, fmt.Errorf("invalid --at %q: want X,Y", v)
		}
		cells = append(cells, [2]int{x, y})
	}
	return cells, nil
}

func init() {
	combineCmd.Flags().IntSliceVar(&combineSelect, "select", nil, "client ID to pick (repeatable)")
	combineCmd.Flags().StringArrayVar(&combineAt, "at", nil, "canvas cell X,Y to click (repeatable)")
	combineCmd.Flags().IntVar(&combineFrame, "frame", 0, "frame to render (default: frame of the first --select)")
	combineCmd.Flags().BoolVar(&combineDryRun, "dry-run", false, "print the result without saving")
	combineCmd.Flags().StringVar(&combineFormat, "format", "", "output format: markdown or json (default from config)")
	rootCmd.AddCommand(combineCmd)
}
