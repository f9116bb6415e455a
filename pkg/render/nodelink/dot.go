package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/keggrest/kegg/pkg/integrations/kegg"
	"github.com/keggrest/kegg/pkg/render"
)

// Options configures link diagram rendering.
type Options struct {
	// Cluster groups nodes into boxes by their database prefix
	// ("hsa", "path", "cpd", ...).
	Cluster bool

	// Title is drawn above the diagram when non-empty.
	Title string
}

// palette colors node groups in order of first appearance.
var palette = []string{"#dbeafe", "#dcfce7", "#fef3c7", "#fce7f3", "#ede9fe", "#e0f2fe"}

// ToDOT converts link or conv rows to Graphviz DOT format. Each distinct
// identifier becomes one node and each row one edge, in response order.
// Duplicate rows collapse into a single edge.
func ToDOT(links []kegg.Link, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.2;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	groups, order := groupNodes(links)
	for i, prefix := range order {
		color := palette[i%len(palette)]
		indent := "  "
		if opts.Cluster {
			fmt.Fprintf(&buf, "  subgraph %q {\n    label=%q;\n    style=\"rounded,dashed\";\n", "cluster_"+prefix, prefix)
			indent = "    "
		}
		for _, id := range groups[prefix] {
			fmt.Fprintf(&buf, "%s%q [label=%q, fillcolor=%q];\n", indent, id, label(id), color)
		}
		if opts.Cluster {
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("\n")
	seen := make(map[kegg.Link]bool, len(links))
	for _, l := range links {
		if seen[l] {
			continue
		}
		seen[l] = true
		fmt.Fprintf(&buf, "  %q -> %q;\n", l.From, l.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// groupNodes returns the distinct identifiers per database prefix, and the
// prefixes in order of first appearance.
func groupNodes(links []kegg.Link) (map[string][]string, []string) {
	groups := make(map[string][]string)
	var order []string
	seen := make(map[string]bool)
	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		p := prefix(id)
		if _, ok := groups[p]; !ok {
			order = append(order, p)
		}
		groups[p] = append(groups[p], id)
	}
	for _, l := range links {
		add(l.From)
		add(l.To)
	}
	return groups, order
}

func prefix(id string) string {
	if p, _, ok := strings.Cut(id, ":"); ok {
		return p
	}
	return ""
}

// label drops the database prefix when nodes are grouped by it anyway.
func label(id string) string {
	if _, rest, ok := strings.Cut(id, ":"); ok && rest != "" {
		return rest
	}
	return id
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
