// Package main hosts the nssk CLI entrypoint and command graph.
//
// "nssk run" performs one pass: read Sonarr, select the season premieres
// airing inside the window, and write the Kometa overlay and collection
// files. The remaining commands scaffold and inspect configuration, check
// connectivity, and test notifications.
package main
