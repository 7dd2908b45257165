// Package sonarr is the episode feed adapter: it reads the series catalog and
// per-series episode lists from the Sonarr v3 API and discovers which API base
// path a Sonarr root URL answers on.
//
// Timestamps are normalized to UTC while decoding. Episodes whose airDateUtc
// is missing or malformed carry a nil AirTime rather than failing the fetch.
package sonarr
