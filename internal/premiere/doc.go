// Package premiere selects series whose next unaired episode is a season
// premiere airing inside the look-ahead window.
//
// Only the single nearest future episode of each series is inspected: a
// pending mid-season episode hides a later premiere, and a far-future
// premiere never outranks a nearer regular episode. Evaluate is a pure
// function over one series' episode snapshot; Selector drives it across the
// catalog, fetching episodes one series at a time.
package premiere
