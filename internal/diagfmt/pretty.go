package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"candidc/internal/diag"
	"candidc/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	gutter *color.Color
	second *color.Color
	bold   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		gutter: color.New(color.FgBlue, color.Bold),
		second: color.New(color.FgBlue),
		bold:   color.New(color.Bold),
	}
	all := []*color.Color{p.gutter, p.second, p.bold}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty renders every diagnostic of bag in source-excerpt form:
//
//	error[SEM3002]: unbound type identifier: Missing
//	 --> main.did:1:23
//	  |
//	1 | type A = record { x : Missing };
//	  |                       ^^^^^^^
//	  = note: ...
//
// Primary labels are underlined with '^', secondary ones with '-'.
// bag should be sorted beforehand if a stable order matters.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	sevColor := pal.sev[d.Severity]
	if sevColor == nil {
		sevColor = pal.sev[diag.SevError]
	}
	fmt.Fprintf(&sb, "%s%s\n",
		sevColor.Sprintf("%s[%s]", diag.SeverityLabel(d.Severity), d.Code.ID()),
		pal.bold.Sprint(": "+d.Message))

	labels := orderedLabels(d)
	width := gutterWidth(labels, fs)
	pad := strings.Repeat(" ", width)
	for i, l := range labels {
		start, _ := fs.Resolve(l.Span)
		arrow := "-->"
		if i > 0 {
			arrow = ":::"
		}
		fmt.Fprintf(&sb, "%s%s %s:%d:%d\n", pad, pal.gutter.Sprint(arrow),
			formatPath(fs, l.Span.File, opts.PathMode), start.Line, start.Col)
		fmt.Fprintf(&sb, "%s %s\n", pad, pal.gutter.Sprint("|"))

		line, under := excerpt(fs.Get(l.Span.File), l.Span, opts.TabWidth)
		num := strconv.FormatUint(uint64(start.Line), 10)
		fmt.Fprintf(&sb, "%s %s %s\n",
			pal.gutter.Sprint(strings.Repeat(" ", width-len(num))+num),
			pal.gutter.Sprint("|"), line)

		mark, c := "^", sevColor
		if !l.Primary {
			mark, c = "-", pal.second
		}
		marks := strings.Repeat(" ", under.pad) + strings.Repeat(mark, under.width)
		if l.Message != "" {
			marks += " " + l.Message
		}
		fmt.Fprintf(&sb, "%s %s %s\n", pad, pal.gutter.Sprint("|"), c.Sprint(marks))
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			for j, part := range strings.Split(n, "\n") {
				prefix := "= note: "
				if j > 0 {
					prefix = "        "
				}
				fmt.Fprintf(&sb, "%s %s%s\n", pad, pal.bold.Sprint(prefix), part)
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// orderedLabels puts primary labels first and keeps the rest in the order
// they were attached, which for import chains is innermost first.
func orderedLabels(d *diag.Diagnostic) []diag.Label {
	out := make([]diag.Label, 0, len(d.Labels))
	for _, l := range d.Labels {
		if l.Primary {
			out = append(out, l)
		}
	}
	return append(out, d.Secondary()...)
}

func gutterWidth(labels []diag.Label, fs *source.FileSet) int {
	w := 1
	for _, l := range labels {
		start, _ := fs.Resolve(l.Span)
		w = max(w, len(strconv.FormatUint(uint64(start.Line), 10)))
	}
	return w
}

type underline struct {
	pad   int
	width int
}

// excerpt returns the first line of sp with tabs expanded and the display
// columns the underline covers. Spans running past the line are cut at its
// end; empty spans get a single mark.
func excerpt(f *source.File, sp source.Span, tabWidth int) (string, underline) {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	lineStart, lineEnd := f.LineBounds(sp.Start)
	raw := string(f.Content[lineStart:lineEnd])

	startCol := 0
	if sp.Start > lineStart {
		startCol = min(int(sp.Start-lineStart), len(raw))
	}
	endCol := 0
	if sp.End > lineStart {
		endCol = min(int(sp.End-lineStart), len(raw))
	}
	if endCol < startCol {
		endCol = startCol
	}

	tabs := strings.Repeat(" ", tabWidth)
	expand := func(s string) string { return strings.ReplaceAll(s, "\t", tabs) }
	before := runewidth.StringWidth(expand(raw[:startCol]))
	span := runewidth.StringWidth(expand(raw[startCol:endCol]))
	return expand(raw), underline{pad: before, width: max(span, 1)}
}
