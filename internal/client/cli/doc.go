// Package cli provides the interactive Daily Notes command-line client.
//
// It wires configuration, the HTTP gateway, session and note services, and
// an interactive REPL. Typical flow: restore the previous session from the
// stored token, load the note collection, and execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - List and search notes
//   - Add / Edit / Delete notes (delete with confirmation)
//   - Profile: show identity, update display name, change password
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
