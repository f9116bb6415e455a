package kegg

import (
	"context"
	"strings"
	"time"

	"github.com/keggrest/kegg/pkg/cache"
	kerrors "github.com/keggrest/kegg/pkg/errors"
	"github.com/keggrest/kegg/pkg/httputil"
	"github.com/keggrest/kegg/pkg/integrations"
	"github.com/keggrest/kegg/pkg/observability"
	"github.com/keggrest/kegg/pkg/parse"
)

const (
	// DefaultBaseURL is the public KEGG REST endpoint.
	DefaultBaseURL = "https://rest.kegg.jp"

	// GenomeBaseURL is the GenomeNet mirror of the KEGG REST API.
	GenomeBaseURL = "http://rest.genome.jp"

	// MaxGetEntries is the number of entries KEGG returns per get request.
	MaxGetEntries = 10

	// Namespace prefixes cache keys and labels cache metrics.
	Namespace = "kegg"
)

// Find options.
const (
	FindFormula   = "formula"
	FindExactMass = "exact_mass"
	FindMolWeight = "mol_weight"
	FindNOP       = "nop"
)

// Sequence types accepted by [Client.GetSequences].
const (
	AASeq = "aaseq"
	NTSeq = "ntseq"
)

var (
	findOptions = []string{FindFormula, FindExactMass, FindMolWeight, FindNOP}
	seqTypes    = []string{AASeq, NTSeq}

	// Get options that return text. "image" is binary and not supported.
	rawOptions = []string{AASeq, NTSeq, "mol", "kcf", "conf", "kgml", "json"}
)

// Client provides access to the KEGG REST API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a KEGG client with the given cache backend.
//
// Parameters:
//   - backend: cache for raw responses (nil or [cache.NewNullCache] disables caching)
//   - cacheTTL: how long responses are cached (0 keeps them until cleared)
//   - opts: fetcher options such as [integrations.WithRetry]
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...integrations.Option) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, Namespace, cacheTTL, opts...),
		baseURL: DefaultBaseURL,
	}
}

// SetBaseURL points the client at another endpoint, such as a mirror or a
// test server. It must be called before the client is shared.
func (c *Client) SetBaseURL(u string) error {
	if err := kerrors.ValidateURL(u); err != nil {
		return err
	}
	c.baseURL = strings.TrimRight(u, "/")
	return nil
}

// BaseURL returns the endpoint requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// URL builds the request URL for an operation and its arguments.
func (c *Client) URL(op string, args ...string) string {
	return httputil.JoinPath(c.baseURL, append([]string{op}, args...)...)
}

// call fetches the URL of op and hands the body to parse, reporting the
// operation to the observability hooks. parse returns the item count.
func (c *Client) call(ctx context.Context, op string, args []string, parse func(string) (int, error)) error {
	hooks := observability.Operation()
	hooks.OnOperationStart(ctx, op)
	start := time.Now()

	n, err := func() (int, error) {
		body, err := c.Fetch(ctx, c.URL(op, args...))
		if err != nil {
			return 0, err
		}
		return parse(body)
	}()

	hooks.OnOperationComplete(ctx, op, n, time.Since(start), err)
	if err != nil {
		c.Logger().Debug("operation failed", "op", op, "args", args, "error", err)
	}
	return err
}

// Info returns the statistics of a database. KEGG answers with aligned
// "key  value" lines, which are returned as key/value pairs; other answers
// are returned as a list.
func (c *Client) Info(ctx context.Context, db string) (parse.Result, error) {
	if err := kerrors.ValidateDatabase(db); err != nil {
		return parse.Result{}, err
	}
	var res parse.Result
	err := c.call(ctx, "info", []string{db}, func(body string) (int, error) {
		res = parse.ParseListOrKeyValue(body)
		if res.Kind == parse.KindKeyValue {
			return res.KeyValue.Len(), nil
		}
		return len(res.List), nil
	})
	return res, err
}

// List returns the entries of a database as identifier to description.
// db may also be "+"-joined entry identifiers, which lists just those
// entries. An optional organism code restricts pathway and module lists.
func (c *Client) List(ctx context.Context, db string, org ...string) (*parse.Mapping, error) {
	args := []string{db}
	validate := kerrors.ValidateDatabase
	if strings.ContainsAny(db, ":+") {
		validate = validateSource
	}
	if err := validate(db); err != nil {
		return nil, err
	}
	if len(org) > 1 {
		return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "list accepts at most one organism, got %d", len(org))
	}
	if len(org) == 1 && org[0] != "" {
		if err := kerrors.ValidateDatabase(org[0]); err != nil {
			return nil, err
		}
		args = append(args, org[0])
	}
	return c.mapping(ctx, "list", args)
}

// Organisms returns the KEGG organism table.
func (c *Client) Organisms(ctx context.Context) ([]parse.Organism, error) {
	var orgs []parse.Organism
	err := c.call(ctx, "list", []string{"organism"}, func(body string) (int, error) {
		var err error
		orgs, err = parse.ParseOrganisms(body)
		return len(orgs), err
	})
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

// Find searches db for entries matching query. option is one of
// [FindFormula], [FindExactMass], [FindMolWeight] or [FindNOP] and may be
// empty. The result maps identifiers to the matching line.
func (c *Client) Find(ctx context.Context, db, query, option string) (*parse.Mapping, error) {
	if err := kerrors.ValidateDatabase(db); err != nil {
		return nil, err
	}
	if err := kerrors.ValidateQuery(query); err != nil {
		return nil, err
	}
	if err := kerrors.ValidateOption(option, findOptions...); err != nil {
		return nil, err
	}
	return c.mapping(ctx, "find", []string{db, query, option})
}

func (c *Client) mapping(ctx context.Context, op string, args []string) (*parse.Mapping, error) {
	var m *parse.Mapping
	err := c.call(ctx, op, args, func(body string) (int, error) {
		var err error
		m, err = parse.ParseList(body, 2, 1)
		if err != nil {
			return 0, err
		}
		return m.Len(), nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Get retrieves up to [MaxGetEntries] entries as parsed flat files.
func (c *Client) Get(ctx context.Context, ids ...string) ([]Entry, error) {
	if err := kerrors.ValidateEntryIDs(ids); err != nil {
		return nil, err
	}
	var entries []Entry
	err := c.call(ctx, "get", []string{strings.Join(ids, "+")}, func(body string) (int, error) {
		var err error
		entries, err = parseEntries(body)
		return len(entries), err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetRaw retrieves entries in a text format selected by option ("mol",
// "kcf", "kgml", "json", "conf", "aaseq", "ntseq") and returns the body
// unparsed. An empty option returns the flat files as text.
func (c *Client) GetRaw(ctx context.Context, option string, ids ...string) (string, error) {
	if err := kerrors.ValidateEntryIDs(ids); err != nil {
		return "", err
	}
	if option == "image" {
		return "", kerrors.New(kerrors.ErrCodeUnsupported, "get option %q returns binary data", option)
	}
	if err := kerrors.ValidateOption(option, rawOptions...); err != nil {
		return "", err
	}
	var text string
	err := c.call(ctx, "get", []string{strings.Join(ids, "+"), option}, func(body string) (int, error) {
		text = body
		return len(parse.SplitEntries(body)), nil
	})
	return text, err
}

// GetSequences retrieves amino acid ([AASeq]) or nucleotide ([NTSeq])
// sequences of gene entries.
func (c *Client) GetSequences(ctx context.Context, seqType string, ids ...string) ([]parse.Sequence, error) {
	if seqType == "" {
		return nil, kerrors.New(kerrors.ErrCodeInvalidOption, "sequence type is required (%s or %s)", AASeq, NTSeq)
	}
	if err := kerrors.ValidateOption(seqType, seqTypes...); err != nil {
		return nil, err
	}
	if err := kerrors.ValidateEntryIDs(ids); err != nil {
		return nil, err
	}
	var seqs []parse.Sequence
	err := c.call(ctx, "get", []string{strings.Join(ids, "+"), seqType}, func(body string) (int, error) {
		seqs = parse.ParseFASTA(body)
		return len(seqs), nil
	})
	if err != nil {
		return nil, err
	}
	return seqs, nil
}

// Conv converts identifiers between KEGG and outside databases. source is
// a database name or a "+"-joined list of entries.
func (c *Client) Conv(ctx context.Context, target, source string) ([]Link, error) {
	return c.links(ctx, "conv", target, source)
}

// Link returns cross-references from source entries to the target
// database. source is a database name or a "+"-joined list of entries.
func (c *Client) Link(ctx context.Context, target, source string) ([]Link, error) {
	return c.links(ctx, "link", target, source)
}

func (c *Client) links(ctx context.Context, op, target, source string) ([]Link, error) {
	if err := kerrors.ValidateDatabase(target); err != nil {
		return nil, err
	}
	if err := validateSource(source); err != nil {
		return nil, err
	}
	var links []Link
	err := c.call(ctx, op, []string{target, source}, func(body string) (int, error) {
		m, err := parse.ParseMatrix(body, 2)
		if err != nil {
			return 0, err
		}
		links = linksFromMatrix(m)
		return len(links), nil
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// Compounds returns the compounds linked to a pathway, in response order
// and without duplicates.
func (c *Client) Compounds(ctx context.Context, pathway string) ([]string, error) {
	if err := kerrors.ValidateEntryID(pathway); err != nil {
		return nil, err
	}
	links, err := c.links(ctx, "link", "compound", pathway)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(links))
	ids := make([]string, 0, len(links))
	for _, l := range links {
		if !seen[l.To] {
			seen[l.To] = true
			ids = append(ids, l.To)
		}
	}
	return ids, nil
}

// validateSource accepts a database name or "+"-joined entry identifiers.
func validateSource(source string) error {
	if strings.TrimSpace(source) == "" {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "source cannot be empty")
	}
	ids := strings.Split(source, "+")
	if len(ids) > 1 {
		return kerrors.ValidateEntryIDs(ids)
	}
	return kerrors.ValidateEntryID(source)
}
