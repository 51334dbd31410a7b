// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RepoScanner: Discovers publishable files under the scan root
//   - WikiClient: Fetches and saves wiki pages
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Minifier: JavaScript minification. Without it, files are published
//     unminified.
//   - RepoHost: Default-branch resolution for source links. Without it, the
//     configured fallback branch is used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
