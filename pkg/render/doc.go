// Package render provides output format conversion for rendered diagrams.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Diagrams of KEGG link
// results are produced by the [nodelink] subpackage:
//
//	dot := nodelink.ToDOT(links, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/keggrest/kegg/pkg/render/nodelink
package render
