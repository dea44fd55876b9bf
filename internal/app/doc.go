// Package app provides the orchestration layer for courtwatch.
//
// # Overview
//
// This package wires together configuration, the feed client, the notifier,
// state management, and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Modes
//
// Watch mode (Run) keeps a background poller running and shows the current
// availability table in a terminal UI. Once mode (RunOnce) performs a single
// fetch-diff-notify-save cycle and exits; it is meant for cron.
//
// # Polling Behavior
//
// The watch-mode poller runs continuously at the configured interval. On
// each cycle it:
//
//   - Fetches the availability feed
//   - Tabularises the payload into the slot table
//   - Diffs the table against the last notified state
//   - Notifies and persists the state when anything changed
//   - Updates the shared state.Store atomically
//
// Consecutive poll failures stretch the interval exponentially up to a cap,
// so an unreachable booking site is not hammered.
//
// # Error Handling
//
// Fatal errors (returned from Run/RunOnce):
//
//   - Configuration that cannot be loaded
//   - Feed client initialization failure
//   - In once mode: the fetch, the notification, or the state save failing
//
// Recoverable errors (logged, polling continues):
//
//   - Periodic fetch failures in watch mode
//   - Notification failures in watch mode (the change set is re-sent on the
//     next successful cycle because the previous state is kept)
package app
