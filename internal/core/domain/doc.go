// Package domain defines the core business entities for gitsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Repository: A checked-out Git repository under the scan root
//   - SourceFile: One publishable file discovered by the scan
//   - Page: The desired end state of one wiki page
//   - RunReport: Aggregated results of one synchronisation run
//   - Config: The complete runtime configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
