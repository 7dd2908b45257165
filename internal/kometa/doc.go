// Package kometa renders the overlay and collection documents Kometa reads.
//
// Documents are built from a small value model (Map, Str, Quoted, Int, Float,
// Bool, Null, List) and serialized through yaml.v3 nodes, so output is
// byte-stable: map entries keep insertion order, numbers print as plain
// decimals, and Quoted scalars are always double-quoted even when YAML would
// accept them bare.
//
// An empty selection renders as the sentinel comment "#No matching shows
// found". A collection whose shows all lack TVDB ids is suppressed and never
// written.
package kometa
