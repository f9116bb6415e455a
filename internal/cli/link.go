package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keggrest/kegg/pkg/integrations/kegg"
	"github.com/keggrest/kegg/pkg/render/nodelink"
)

// Link output formats.
const (
	formatTable = "table"
	formatDOT   = "dot"
	formatSVG   = "svg"
	formatPDF   = "pdf"
	formatPNG   = "png"
)

// linkCommand creates the link command.
func (c *CLI) linkCommand() *cobra.Command {
	var opts linkOutput

	cmd := &cobra.Command{
		Use:   "link <target-database> <source>",
		Short: "Find related entries in another database",
		Long: `Find related entries by following KEGG cross-references.

The source is a database name or one or more entries joined with "+".
Besides the default table, the links can be written as a Graphviz graph
(--format dot) or rendered to svg, pdf or png. PDF and PNG output
requires librsvg (rsvg-convert).`,
		Example: `  kegg link pathway hsa:10458+ece:Z5100
  kegg link pathway hsa:10458 --format svg -o links.svg
  kegg link compound path:map00010 --format dot --cluster`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var links []kegg.Link
			err := c.withClient(cmd.Context(), fmt.Sprintf("Linking %s to %s", args[1], args[0]), func(ctx context.Context, client *kegg.Client) error {
				var err error
				links, err = client.Link(ctx, args[0], args[1])
				return err
			})
			if err != nil {
				return err
			}
			if opts.title == "" {
				opts.title = args[1] + " → " + args[0]
			}
			return c.writeLinks(cmd, links, opts)
		},
	}

	opts.register(cmd)
	return cmd
}

// convCommand creates the conv command.
func (c *CLI) convCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "conv <target-database> <source>",
		Short: "Convert identifiers between KEGG and outside databases",
		Example: `  kegg conv ncbi-geneid eco
  kegg conv ncbi-proteinid hsa:10458+ece:Z5100`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var links []kegg.Link
			err := c.withClient(cmd.Context(), fmt.Sprintf("Converting %s to %s", args[1], args[0]), func(ctx context.Context, client *kegg.Client) error {
				var err error
				links, err = client.Conv(ctx, args[0], args[1])
				return err
			})
			if err != nil {
				return err
			}
			return c.writeLinks(cmd, links, linkOutput{format: formatTable})
		},
	}
}

// compoundsCommand creates the compounds command.
func (c *CLI) compoundsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "compounds <pathway>",
		Short:   "List the compounds of a pathway",
		Example: `  kegg compounds path:map00010`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids []string
			err := c.withClient(cmd.Context(), "Fetching compounds of "+args[0], func(ctx context.Context, client *kegg.Client) error {
				var err error
				ids, err = client.Compounds(ctx, args[0])
				return err
			})
			if err != nil {
				return err
			}

			w := out(cmd)
			if c.flags.json {
				return writeJSON(w, ids)
			}
			for _, id := range ids {
				fmt.Fprintln(w, id)
			}
			return nil
		},
	}
}

// linkOutput holds the output flags of the link command.
type linkOutput struct {
	format  string
	output  string
	cluster bool
	scale   float64
	title   string
}

func (o *linkOutput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", formatTable, "output format: table, dot, svg, pdf, png")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&o.cluster, "cluster", false, "group graph nodes by database")
	cmd.Flags().Float64Var(&o.scale, "scale", 2.0, "png scale factor")
	cmd.Flags().StringVar(&o.title, "title", "", "graph title")
}

// writeLinks prints links as a table or JSON, or renders them as a graph.
func (c *CLI) writeLinks(cmd *cobra.Command, links []kegg.Link, o linkOutput) error {
	if c.flags.json && o.format == formatTable {
		return writeJSON(out(cmd), links)
	}

	if o.format == formatTable {
		w := out(cmd)
		rows := make([][]string, len(links))
		for i, l := range links {
			rows[i] = []string{l.From, l.To}
		}
		renderTable(w, []string{"Source", "Target"}, rows)
		printCount(w, len(links), "link", "links")
		return nil
	}

	data, err := renderLinks(cmd.Context(), links, o)
	if err != nil {
		return err
	}
	if o.output == "" {
		_, err := out(cmd).Write(data)
		return err
	}
	if err := os.WriteFile(o.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.output, err)
	}
	printStatus(cmd.ErrOrStderr(), statusDone, "Rendered %d links", len(links))
	printDetail(cmd.ErrOrStderr(), "→ %s", o.output)
	return nil
}

// renderLinks converts links to the requested graph format.
func renderLinks(ctx context.Context, links []kegg.Link, o linkOutput) ([]byte, error) {
	dot := nodelink.ToDOT(links, nodelink.Options{Cluster: o.cluster, Title: o.title})
	switch o.format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case formatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case formatPNG:
		return nodelink.RenderPNG(ctx, dot, o.scale)
	default:
		return nil, fmt.Errorf("unknown format %q (want %s, %s, %s, %s or %s)",
			o.format, formatTable, formatDOT, formatSVG, formatPDF, formatPNG)
	}
}
