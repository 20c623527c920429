// Package gateway abstracts the remote Daily Notes service: authenticated
// read/write operations for notes and for user identity.
//
// The package owns the Failure error type used across the whole client, the
// Gateway interface, its HTTP implementation, and the on-disk token cache
// that lets a session survive between runs.
package gateway
