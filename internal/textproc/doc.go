// Package textproc provides text normalization for indexing and querying.
//
// The Normalizer is the single tokenization path in the system: page
// content goes through it when a document is indexed, and query strings
// go through it when a search runs. Sharing one path guarantees that the
// query vocabulary and the index vocabulary are identical.
package textproc
