// Package integrations provides the HTTP fetcher shared by remote API clients.
//
// # Overview
//
// [Client] issues GET requests and returns response bodies as text. It:
//   - cleans URLs with [httputil.CleanURL] before requesting them
//   - fails on any non-2xx status with a [*errors.TransportError]
//   - trims surrounding whitespace from successful bodies
//   - optionally caches raw bodies in a [cache.Cache] backend
//   - optionally retries transient failures (connection errors, 5xx)
//
// The KEGG client lives in the [kegg] subpackage and embeds [Client]:
//
//	client := kegg.NewClient(cache.NewNullCache(), 0)
//	pathways, err := client.List(ctx, "pathway", "hsa")
//
// # Errors
//
// A 404 unwraps to [ErrNotFound]; every other failure unwraps to
// [ErrNetwork]. Use errors.As with [*errors.TransportError] to read the
// status and body.
//
// [kegg]: github.com/keggrest/kegg/pkg/integrations/kegg
// [httputil.CleanURL]: github.com/keggrest/kegg/pkg/httputil.CleanURL
// [cache.Cache]: github.com/keggrest/kegg/pkg/cache.Cache
// [*errors.TransportError]: github.com/keggrest/kegg/pkg/errors.TransportError
package integrations
