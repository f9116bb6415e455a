// Package httputil provides HTTP helpers shared by the KEGG fetcher.
//
// # Overview
//
//   - [CleanURL]: percent-encodes the characters KEGG identifiers and
//     queries may contain (space, '#', ':') while keeping the scheme and
//     authority intact
//   - [Retry]: bounded retry with exponential backoff for transient failures
//
// # URL Cleaning
//
// KEGG paths embed identifiers such as "hsa:10458" and free-text queries
// such as "shiga toxin". [CleanURL] turns
//
//	https://rest.kegg.jp/find/genes/shiga toxin
//
// into
//
//	https://rest.kegg.jp/find/genes/shiga%20toxin
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried; everything else is
// returned immediately. The fetcher marks network failures and 5xx
// responses as retryable. With attempts = 1 (the library default) [Retry]
// calls fn exactly once.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch()
//	})
package httputil
