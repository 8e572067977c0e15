// Package driving defines the interfaces external actors use to drive the
// core. The CLI is the primary driving adapter; any future UI, voice, or
// HTTP surface calls through the same interfaces.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
