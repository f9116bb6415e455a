package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keggrest/kegg/pkg/integrations/kegg"
	"github.com/keggrest/kegg/pkg/parse"
)

// fastaWidth is the line width of printed sequences.
const fastaWidth = 60

// getCommand creates the get command.
func (c *CLI) getCommand() *cobra.Command {
	var (
		option string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "get <entry>...",
		Short: "Retrieve KEGG entries",
		Long: `Retrieve up to 10 KEGG entries.

Without --option the entries are parsed and printed field by field. With
--option the response is printed as returned by KEGG; supported options
are mol, kcf, conf, kgml, json, aaseq and ntseq.`,
		Example: `  kegg get cpd:C00031
  kegg get hsa:10458 ece:Z5100
  kegg get C00031 --option mol`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if option != "" {
				return c.runGetRaw(cmd, option, args)
			}
			return c.runGet(cmd, args, raw)
		},
	}

	cmd.Flags().StringVar(&option, "option", "", "return the entries in another format")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the flat files unparsed")

	return cmd
}

func (c *CLI) runGet(cmd *cobra.Command, ids []string, raw bool) error {
	if raw {
		return c.runGetRaw(cmd, "", ids)
	}

	var entries []kegg.Entry
	err := c.withClient(cmd.Context(), "Fetching "+strings.Join(ids, ", "), func(ctx context.Context, client *kegg.Client) error {
		var err error
		entries, err = client.Get(ctx, ids...)
		return err
	})
	if err != nil {
		return err
	}

	w := out(cmd)
	if c.flags.json {
		return writeJSON(w, entries)
	}
	if len(entries) == 0 {
		printStatus(cmd.ErrOrStderr(), statusWarn, "No entries found")
		return nil
	}
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printEntry(w, e)
	}
	return nil
}

func (c *CLI) runGetRaw(cmd *cobra.Command, option string, ids []string) error {
	var text string
	err := c.withClient(cmd.Context(), "Fetching "+strings.Join(ids, ", "), func(ctx context.Context, client *kegg.Client) error {
		var err error
		text, err = client.GetRaw(ctx, option, ids...)
		return err
	})
	if err != nil {
		return err
	}
	if c.flags.json {
		return writeJSON(out(cmd), map[string]string{"option": option, "text": text})
	}
	fmt.Fprintln(out(cmd), text)
	return nil
}

// printEntry writes the fields of an entry in KEGG order. Titles are
// styled; values are printed as returned.
func printEntry(w io.Writer, e kegg.Entry) {
	if e.ID != "" {
		fmt.Fprintln(w, StyleTitle.Render(e.ID)+"  "+StyleDim.Render(e.Kind))
	}
	if len(e.Names) > 0 {
		fmt.Fprintln(w, StyleValue.Render(strings.Join(e.Names, "; ")))
	}
	for _, tag := range e.Record.Tags {
		if tag == "ENTRY" || tag == "NAME" || tag == parse.Terminator {
			continue
		}
		lines := e.Record.Get(tag)
		if len(lines) == 0 {
			printKeyValue(w, tag, "")
			continue
		}
		printKeyValue(w, tag, lines[0])
		for _, l := range lines[1:] {
			printKeyValue(w, "", l)
		}
	}
}

// seqCommand creates the seq command.
func (c *CLI) seqCommand() *cobra.Command {
	var nucleotide bool

	cmd := &cobra.Command{
		Use:   "seq <gene>...",
		Short: "Retrieve gene sequences in FASTA format",
		Example: `  kegg seq hsa:10458
  kegg seq eco:b0001 --nt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seqType := kegg.AASeq
			if nucleotide {
				seqType = kegg.NTSeq
			}

			var seqs []parse.Sequence
			err := c.withClient(cmd.Context(), "Fetching sequences", func(ctx context.Context, client *kegg.Client) error {
				var err error
				seqs, err = client.GetSequences(ctx, seqType, args...)
				return err
			})
			if err != nil {
				return err
			}

			w := out(cmd)
			if c.flags.json {
				return writeJSON(w, seqs)
			}
			for _, s := range seqs {
				writeFASTA(w, s, fastaWidth)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&nucleotide, "nt", false, "nucleotide instead of amino acid sequences")

	return cmd
}

// writeFASTA writes s with residues wrapped at width columns.
func writeFASTA(w io.Writer, s parse.Sequence, width int) {
	fmt.Fprintln(w, ">"+s.Header)
	for r := s.Residues; len(r) > 0; {
		n := min(width, len(r))
		fmt.Fprintln(w, r[:n])
		r = r[n:]
	}
}
