// Package cli provides the interactive opsapi command-line client.
//
// It wires configuration, the HTTP API client and a REPL. Typical flow:
// register once, log in, then record and list operations. The token lives
// only in memory and is dropped on logout or exit.
//
// Commands:
//   - register, login, logout
//   - add <type> [json]   record an operation; without inline JSON the
//     payload is read as multiple lines
//   - list [n]            show the newest operations
//   - profile, status
//   - help, exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
