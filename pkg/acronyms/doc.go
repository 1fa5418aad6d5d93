// Package acronyms finds acronym definitions such as
// "Test Driven Development (TDD)" in plain sentences and tallies how often
// each (acronym, expansion) pair appears across a corpus.
//
// Detection is positional: the N tokens immediately before a bracketed,
// all-uppercase token of N letters are taken as its expansion. Stop-words
// are not skipped, so "Royal Bank of Scotland (RBS)" yields
// "Bank of Scotland".
package acronyms
