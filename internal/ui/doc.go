// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the repertoire:
//  1. [SongListView] : Browse, filter, and sort the song collection
//  2. [SongDetailView] : Inspect a single song's key, score, and tags
//  3. [RandomView] : Show a randomly picked song to sing next
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// The collection is loaded once on Init and mutations (favorite toggles) go through
// the library managers, so the displayed state always reflects backend acknowledgements.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, f, s, r, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
