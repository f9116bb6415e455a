// Package nodelink renders KEGG link and conv results as node-link diagrams.
//
// # Overview
//
// Every identifier in a link response becomes a box and every row an
// arrow from the source entry to the linked entry. Nodes are colored by
// database prefix ("hsa", "path", "cpd", ...), and can optionally be
// grouped into one cluster per prefix.
//
// # Usage
//
// Convert links to DOT format, then render to SVG:
//
//	links, _ := client.Link(ctx, "pathway", "hsa:10458+ece:Z5100")
//	dot := nodelink.ToDOT(links, nodelink.Options{Cluster: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
