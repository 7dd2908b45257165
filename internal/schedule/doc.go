// Package schedule groups matched premieres by air date and names the groups.
//
// Groups and id lists are always sorted (dates ascending, ids ascending) so
// that rendering the same set of shows twice yields identical documents.
package schedule
