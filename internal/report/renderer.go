package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Renderer serializes a Report to bytes.
type Renderer interface {
	Render(r *Report) ([]byte, error)
}

// ForFormat returns the renderer for "markdown" or "json".
func ForFormat(format string) (Renderer, error) {
	switch format {
	case "markdown", "md", "":
		return &MarkdownRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want markdown or json)", format)
	}
}

// JSONRenderer renders a Report as indented JSON.
type JSONRenderer struct{}

func (j *JSONRenderer) Render(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// MarkdownRenderer renders a Report as human-readable Markdown.
type MarkdownRenderer struct{}

func (m *MarkdownRenderer) Render(r *Report) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# tracklet: %s\n\n", r.Source)

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Frames: %d\n", len(r.Frames))
	fmt.Fprintf(&sb, "- Objects: %d\n", r.ObjectCount())
	fmt.Fprintf(&sb, "- Groups: %d\n", len(r.Groups))
	sb.WriteString("\n")

	if r.Combined != nil {
		if r.DryRun {
			sb.WriteString("## Combined (dry run, not saved)\n\n")
		} else {
			sb.WriteString("## Combined\n\n")
		}
		writeGroup(&sb, r.Combined.ID, r.Combined.Frame, string(r.Combined.Type), r.Combined.Members)
		sb.WriteString("\n")
	}

	for _, f := range r.Frames {
		fmt.Fprintf(&sb, "## Frame %d\n\n", f.Index)
		if len(f.Objects) == 0 {
			sb.WriteString("_No objects._\n\n")
			continue
		}
		sb.WriteString("| Client ID | Label | Type | Group |\n")
		sb.WriteString("|-----------|-------|------|-------|\n")
		for _, o := range f.Objects {
			group := o.GroupID
			if group == "" {
				group = "-"
			}
			fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", o.ClientID, o.Label, o.Type, group)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Groups\n\n")
	if len(r.Groups) == 0 {
		sb.WriteString("_No groups._\n")
	} else {
		for _, g := range r.Groups {
			writeGroup(&sb, g.ID, g.Frame, string(g.Type), g.Members)
		}
	}
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}

func writeGroup(sb *strings.Builder, id string, frame int, typ string, members []int) {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = strconv.Itoa(m)
	}
	fmt.Fprintf(sb, "- `%s` frame %d, %s: %s\n", id, frame, typ, strings.Join(ids, ", "))
}
