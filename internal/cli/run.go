package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/keggrest/kegg/pkg/integrations/kegg"
)

// withClient creates a client for the duration of fn, showing a spinner
// with msg on a terminal while fn runs. The spinner is suppressed for JSON
// output so that the output stays machine-readable.
func (c *CLI) withClient(ctx context.Context, msg string, fn func(context.Context, *kegg.Client) error) error {
	client, closeClient, err := c.newClient(ctx)
	if err != nil {
		return err
	}
	defer closeClient()

	var spinner *Spinner
	if !c.flags.json && isTerminal(os.Stderr) {
		spinner = newSpinner(ctx, os.Stderr, msg)
		spinner.Start()
	}
	p := newProgress(loggerFromContext(ctx))

	err = fn(ctx, client)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	p.debug(msg)
	return nil
}

// out returns the writer for command results.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
