// Package workspace materializes a selected repository on disk.
//
// A directory that already holds git metadata is fast-forwarded with
// git pull --ff-only; anything else is cloned over SSH.
package workspace
