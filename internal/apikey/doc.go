// Package apikey resolves, validates, stores, and optionally verifies the
// spectator API key.
//
// # Resolution Chain
//
// [Resolve] walks the sources in order of explicitness and returns the
// first key found:
//
//  1. --api-key flag
//  2. bare positional argument
//  3. SPECTATOR_API_KEY environment variable
//  4. .env file in the working directory
//  5. OS keyring
//
// Interactive prompting is the caller's fallback when Resolve returns
// [ErrKeyNotFound]. A malformed key from any source is an error, not a
// fall-through: the user named that key on purpose.
//
// # Storage
//
// [Store], [Load], and [Delete] keep a single key in the OS keyring under
// the "spectator" service. Keyring availability varies by platform; during
// resolution every keyring failure simply means "no stored key".
//
// # Verification
//
// [Verify] performs a best-effort remote check of the key. It distinguishes
// a real rejection ([ErrKeyRejected]) from the service being unreachable
// ([VerifyUnavailableError]); only the former should stop a setup run.
package apikey
