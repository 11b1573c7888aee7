// Package filesystem abstracts the few filesystem calls used to inspect local working copies.
package filesystem
