// Package services defines shared utilities consumed by the NSSK workflow and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run correlation IDs and Sonarr series IDs for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (configuration, connectivity, upstream) for reporting.
package services
