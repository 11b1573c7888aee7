// Package cli constructs the repopicker command-line interface. It loads the
// layered configuration (embedded defaults, config.yaml, REPOPICKER_*
// environment variables, flags), builds the zap logger, and runs the picker
// command as the root command.
package cli
