// Package catalog decides how repositories are listed and produces the
// sorted owner/name identifiers offered to the user.
//
// CapabilityProbe checks whether gh is installed and authenticated.
// Enumerator then lists the account through gh or, failing that, through the
// public GitHub API. Exactly one strategy runs per enumeration.
package catalog
