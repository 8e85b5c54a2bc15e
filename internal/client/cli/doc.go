// Package cli provides the interactive CivicWatch command-line client.
//
// It wires configuration, the encrypted credential store, the typed API
// client, and an interactive REPL over the report feed. Typical flow:
// restore the stored session, refresh the feed, and execute user commands.
//
// Key features:
//   - Login / Register / Logout / account deletion
//   - Browse the report feed with search, filters, sort and pagination
//   - Submit new reports with an optional image attachment
//   - Pin / unpin reports; the pinned set is shared across screens
//   - Admin lifecycle commands: validate, resolve, deny
//   - Global statistics
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
