// Package kegg provides a client for the KEGG REST API.
//
// # Overview
//
// Each KEGG operation is one method on [Client]: it validates its
// arguments, builds the request URL, fetches the response through the
// shared [integrations.Client] and applies the matching parser from
// [parse]:
//
//	client := kegg.NewClient(cache.NewNullCache(), 0)
//
//	info, _ := client.Info(ctx, "kegg")             // list or key/value
//	paths, _ := client.List(ctx, "pathway", "hsa")  // id -> name
//	entries, _ := client.Get(ctx, "cpd:C00001")     // flat-file entries
//	links, _ := client.Link(ctx, "pathway", "hsa:10458")
//
// Results are plain values; none of them hold a reference to the client.
// An empty 200 response yields an empty result rather than an error.
//
// # Mirrors
//
// [DefaultBaseURL] is the public KEGG endpoint. [GenomeBaseURL] is the
// GenomeNet mirror; pass either to [Client.SetBaseURL].
//
// [integrations.Client]: github.com/keggrest/kegg/pkg/integrations.Client
// [parse]: github.com/keggrest/kegg/pkg/parse
package kegg
