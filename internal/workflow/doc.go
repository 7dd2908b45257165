// Package workflow runs one NSSK pass end to end: it takes the run lock,
// discovers the Sonarr API base, fetches the catalog and every series'
// episodes, selects upcoming premieres, renders both Kometa documents, writes
// them, and sends the optional ntfy summary.
//
// Documents are only rendered after the whole fetch pass has succeeded, so an
// upstream failure never leaves a half-updated pair of files behind.
package workflow
