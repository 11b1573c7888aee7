// Package pathutils resolves user-supplied directory paths for the CLI.
package pathutils
