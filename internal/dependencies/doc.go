// Package dependencies supplies production defaults for collaborators that
// commands accept as optional overrides.
package dependencies
