package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keggrest/kegg/pkg/integrations/kegg"
	"github.com/keggrest/kegg/pkg/parse"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <database>",
		Short: "Show release and statistics of a KEGG database",
		Example: `  kegg info kegg
  kegg info pathway
  kegg info hsa`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res parse.Result
			err := c.withClient(cmd.Context(), "Fetching info/"+args[0], func(ctx context.Context, client *kegg.Client) error {
				var err error
				res, err = client.Info(ctx, args[0])
				return err
			})
			if err != nil {
				return err
			}

			w := out(cmd)
			if c.flags.json {
				return writeJSON(w, res)
			}
			if res.Kind == parse.KindKeyValue {
				for k, v := range res.KeyValue.All() {
					printKeyValue(w, k, v)
				}
				return nil
			}
			for _, item := range res.List {
				fmt.Fprintln(w, item)
			}
			return nil
		},
	}
}
