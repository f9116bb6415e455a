// Package parse converts KEGG REST response text into Go structures.
//
// # Overview
//
// KEGG answers every operation with line-oriented plain text. Fields are
// separated either by a single tab or by a "wide gap" of two or more
// spaces, depending on the endpoint, and flat-file entries end with a "///"
// line. Each function in this package handles one of those shapes:
//
//   - [ParseMatrix]: tab-separated rows reshaped to a fixed column count
//     (link and conv output)
//   - [ParseOrganisms]: the four-column organism catalogue
//   - [ParseList]: tab-separated lines reduced to a key/value [Mapping]
//     (list and find output)
//   - [ParseKeyValue], [ParseListOrKeyValue]: wide-gap text such as info
//   - [ParseFlatFile], [ParseFlatFiles]: DBGET flat-file entries
//   - [TaggedLines], [ReferenceLines], [ParseReferences]: reference blocks inside an entry
//   - [ParseFASTA]: aaseq/ntseq sequence output
//
// # Purity
//
// Every parser is a pure function of its input. Results use ordered types
// ([Mapping], [Record]) rather than bare maps where insertion order is part
// of the data, so parsing the same text twice yields identical values.
//
// # Errors
//
// Parsers that cannot represent the input fail with a
// [github.com/keggrest/kegg/pkg/errors.Error] carrying
// [github.com/keggrest/kegg/pkg/errors.ErrCodeFormat] or
// [github.com/keggrest/kegg/pkg/errors.ErrCodeShape]. Parsers documented as
// lenient skip the offending lines instead. No parser returns partial data
// together with an error.
package parse
