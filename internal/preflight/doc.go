// Package preflight provides readiness checks for the services and paths NSSK
// depends on.
//
// The CLI "nssk check" command runs RunAll and renders the results; "nssk run"
// does not depend on it and fails on its own when something is missing.
package preflight
