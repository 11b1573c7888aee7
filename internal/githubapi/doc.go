// Package githubapi lists an account's public repositories through the
// unauthenticated GitHub REST endpoint, fetched with curl.
package githubapi
