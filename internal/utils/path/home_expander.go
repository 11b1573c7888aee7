package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant          = "~"
	currentDirectoryConstant      = "."
	forwardSlashSeparatorConstant = "/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander resolves configured destination directories, replacing a leading home shortcut with the user's home directory.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	resolveOnce           sync.Once
	homeDirectory         string
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(nil)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand returns the cleaned destination path. Blank input yields the current directory. "~user" forms and unresolvable home directories are returned unchanged.
func (expander *HomeExpander) Expand(destination string) string {
	trimmedDestination := strings.TrimSpace(destination)
	if len(trimmedDestination) == 0 {
		return currentDirectoryConstant
	}
	if expander == nil || !strings.HasPrefix(trimmedDestination, homeShortcutConstant) {
		return filepath.Clean(trimmedDestination)
	}

	remainder := strings.TrimPrefix(trimmedDestination, homeShortcutConstant)
	if len(remainder) > 0 && !strings.HasPrefix(remainder, forwardSlashSeparatorConstant) && !strings.HasPrefix(remainder, string(os.PathSeparator)) {
		return trimmedDestination
	}

	homeDirectory := expander.lookupHomeDirectory()
	if len(homeDirectory) == 0 {
		return trimmedDestination
	}
	return filepath.Join(homeDirectory, remainder)
}

func (expander *HomeExpander) lookupHomeDirectory() string {
	expander.resolveOnce.Do(func() {
		resolvedDirectory, lookupError := expander.homeDirectoryProvider()
		if lookupError == nil {
			expander.homeDirectory = resolvedDirectory
		}
	})
	return expander.homeDirectory
}
