// Package state provides a thread-safe container for the latest poll
// results, shared between the background poller and the UI.
package state
