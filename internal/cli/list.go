package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/keggrest/kegg/pkg/integrations/kegg"
	"github.com/keggrest/kegg/pkg/parse"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <database> [organism]",
		Short: "List the entries of a KEGG database",
		Long: `List the entries of a KEGG database.

The optional organism code restricts pathway and module lists to one
organism, e.g. "kegg list pathway hsa".`,
		Example: `  kegg list pathway
  kegg list pathway hsa
  kegg list hsa:10458+ece:Z5100`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m *parse.Mapping
			err := c.withClient(cmd.Context(), "Listing "+args[0], func(ctx context.Context, client *kegg.Client) error {
				var err error
				m, err = client.List(ctx, args[0], args[1:]...)
				return err
			})
			if err != nil {
				return err
			}
			return c.printMapping(cmd, m, "entry", "entries")
		},
	}
}

// organismsCommand creates the organisms command.
func (c *CLI) organismsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "organisms",
		Short: "List the KEGG organisms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var orgs []parse.Organism
			err := c.withClient(cmd.Context(), "Listing organisms", func(ctx context.Context, client *kegg.Client) error {
				var err error
				orgs, err = client.Organisms(ctx)
				return err
			})
			if err != nil {
				return err
			}

			w := out(cmd)
			if c.flags.json {
				return writeJSON(w, orgs)
			}
			rows := make([][]string, len(orgs))
			for i, o := range orgs {
				rows[i] = []string{o.TNumber, o.Code, o.Species, o.Phylogeny}
			}
			renderTable(w, []string{"T number", "Code", "Species", "Phylogeny"}, rows)
			printCount(w, len(orgs), "organism", "organisms")
			return nil
		},
	}
}

// printMapping prints an identifier to description mapping as a table.
func (c *CLI) printMapping(cmd *cobra.Command, m *parse.Mapping, singular, plural string) error {
	w := out(cmd)
	if c.flags.json {
		return writeJSON(w, m)
	}
	rows := make([][]string, 0, m.Len())
	for k, v := range m.All() {
		rows = append(rows, []string{k, v})
	}
	renderTable(w, []string{"ID", "Description"}, rows)
	printCount(w, m.Len(), singular, plural)
	return nil
}
