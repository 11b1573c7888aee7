package execshell

import "os/exec"

// ToolLocator reports whether an executable can be resolved.
type ToolLocator interface {
	LookPath(executable CommandName) (string, error)
}

// LookupFunc adapts a plain lookup function such as exec.LookPath to ToolLocator.
type LookupFunc func(file string) (string, error)

// LookPath implements ToolLocator.
func (lookup LookupFunc) LookPath(executable CommandName) (string, error) {
	return lookup(string(executable))
}

// NewPathToolLocator returns a ToolLocator that searches PATH.
func NewPathToolLocator() ToolLocator {
	return LookupFunc(exec.LookPath)
}
