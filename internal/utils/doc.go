// Package utils holds the CLI plumbing shared by the repopicker commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// REPOPICKER_ environment variables through Viper. LoggerFactory builds the
// zap logger in structured or console form, and FlushingWriter keeps prompts
// visible on buffered output streams.
package utils
