// Package pkg provides the libraries behind the kegg client.
//
// # Overview
//
// KEGG (https://www.kegg.jp) serves its databases over a small REST API
// whose responses are plain text: tab-separated lists, aligned key/value
// blocks, multi-record flat files and FASTA. The pkg directory is
// organized into these areas:
//
//  1. [parse] - Pure parsers for the KEGG text formats
//  2. [integrations/kegg] - The REST client (URL building, fetch, parse)
//  3. [integrations] - Shared fetcher with caching, retries and URL cleaning
//  4. [cache] - Response caches (file, Redis, MongoDB, null)
//  5. [render/nodelink] - Graphviz rendering of link results
//
// # Architecture
//
// The data flow of every operation:
//
//	operation arguments
//	         ↓
//	    [integrations/kegg] (validate, build URL)
//	         ↓
//	    [integrations] (clean URL, cache lookup, GET with retry)
//	         ↓
//	    [parse] (text → Mapping, Matrix, Record, ...)
//	         ↓
//	    typed result
//
// # Quick Start
//
//	client := kegg.NewClient(nil, 0)
//	links, err := client.Link(ctx, "pathway", "hsa:10458+ece:Z5100")
//	if err != nil {
//	    return err
//	}
//	for _, l := range links {
//	    fmt.Println(l.From, "→", l.To)
//	}
//
// The parsers can be used on their own, for example on saved responses:
//
//	rec, err := parse.ParseFlatFile(text)
//	fmt.Println(rec.First("NAME"))
//
// # Supporting Packages
//
// [errors] - Structured error codes (FORMAT, SHAPE, INVALID_*) and
// [errors.TransportError] for non-success responses.
//
// [httputil] - Retry with exponential backoff and URL path helpers.
//
// [observability] - Hooks for operations, cache and HTTP events, with a
// Prometheus implementation.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./...                        # Unit tests (no network)
//	go test -tags integration ./pkg/...  # Against rest.kegg.jp, Redis, MongoDB
//
// [parse]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/parse
// [integrations/kegg]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/integrations/kegg
// [integrations]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/cache
// [render/nodelink]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/errors
// [errors.TransportError]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/errors#TransportError
// [httputil]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/keggrest/kegg/pkg/buildinfo
package pkg
