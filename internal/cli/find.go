package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/keggrest/kegg/pkg/integrations/kegg"
	"github.com/keggrest/kegg/pkg/parse"
)

// findCommand creates the find command.
func (c *CLI) findCommand() *cobra.Command {
	var (
		option      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "find <database> <query>",
		Short: "Search a KEGG database",
		Long: `Search a KEGG database for entries matching a query.

For compound and drug databases, --option selects a chemical search:
formula, exact_mass or mol_weight. For exact_mass and mol_weight the
query may be a range such as "174.05-174.15".

With --interactive the results open in a picker and the selected entry
is retrieved and printed.`,
		Example: `  kegg find genes "shiga toxin"
  kegg find compound C7H10O5 --option formula
  kegg find compound glucose --interactive`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, query := args[0], args[1]

			var m *parse.Mapping
			err := c.withClient(cmd.Context(), fmt.Sprintf("Searching %s for %q", db, query), func(ctx context.Context, client *kegg.Client) error {
				var err error
				m, err = client.Find(ctx, db, query, option)
				return err
			})
			if err != nil {
				return err
			}

			if !interactive || c.flags.json {
				return c.printMapping(cmd, m, "match", "matches")
			}
			return c.pickAndGet(cmd, fmt.Sprintf("Matches for %q in %s", query, db), m)
		},
	}

	cmd.Flags().StringVar(&option, "option", "", "search option: formula, exact_mass, mol_weight, nop")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a result and retrieve it")

	return cmd
}

// pickAndGet lets the user choose one entry of m and prints it.
func (c *CLI) pickAndGet(cmd *cobra.Command, title string, m *parse.Mapping) error {
	if m.Len() == 0 {
		printStatus(cmd.ErrOrStderr(), statusNote, "No matches")
		return nil
	}

	p := tea.NewProgram(NewEntryListModel(title, entryItems(m)))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(EntryListModel)
	if !ok || fm.Selected == nil {
		printDetail(cmd.ErrOrStderr(), "No selection made")
		return nil
	}

	return c.runGet(cmd, []string{fm.Selected.ID}, false)
}
