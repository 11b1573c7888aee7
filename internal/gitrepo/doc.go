// Package gitrepo builds git remote addresses for repository identifiers.
package gitrepo
