// Package execshell runs the external tools repopicker orchestrates.
//
// ShellExecutor wraps a CommandRunner with structured zap logging and
// lifecycle observers, OSCommandRunner executes processes through os/exec,
// and ToolLocator answers whether git, gh, or curl are installed. Callers
// depend on narrow interfaces so the tools can be stubbed in tests.
package execshell
