// Package main provides the entry point for the intrasearch CLI.
//
// Intrasearch is a self-hosted search engine for intranet sites.
// It crawls a bounded set of trusted domains, builds a TF-IDF index,
// and answers ranked keyword queries from the terminal.
//
// Usage:
//
//	intrasearch crawl https://wiki.example.com
//	intrasearch search "deploy checklist"
//
// See --help for all available options.
package main

// main is the entry point for intrasearch.
func main() {
	Execute()
}
