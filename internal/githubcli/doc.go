// Package githubcli wraps the GitHub CLI for repopicker.
//
// It lists the repositories reachable by the signed-in gh session through
// gh api user/repos and reports whether gh holds an authenticated session,
// decoding gh's JSON output into plain values. The client depends on a narrow
// executor interface so tests can stub gh.
package githubcli
