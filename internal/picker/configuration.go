package picker

import (
	"strings"

	"github.com/temirov/repopicker/internal/gitrepo"
)

const (
	defaultAPIBaseURLConstant      = "https://api.github.com"
	defaultRepositoryLimitConstant = 200
	defaultDestinationConstant     = "."
)

// CommandConfiguration captures persistent settings for the picker command.
type CommandConfiguration struct {
	Host        string                 `mapstructure:"host"`
	APIBaseURL  string                 `mapstructure:"api_base_url"`
	Limit       int                    `mapstructure:"limit"`
	Destination string                 `mapstructure:"destination"`
	Protocol    gitrepo.RemoteProtocol `mapstructure:"protocol"`
}

// DefaultCommandConfiguration returns baseline configuration values for the picker command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Host:        defaultHostConstant,
		APIBaseURL:  defaultAPIBaseURLConstant,
		Limit:       defaultRepositoryLimitConstant,
		Destination: defaultDestinationConstant,
		Protocol:    gitrepo.RemoteProtocolSSH,
	}
}

// Sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := CommandConfiguration{
		Host:        strings.TrimSpace(configuration.Host),
		APIBaseURL:  strings.TrimRight(strings.TrimSpace(configuration.APIBaseURL), "/"),
		Limit:       configuration.Limit,
		Destination: strings.TrimSpace(configuration.Destination),
		Protocol:    configuration.Protocol,
	}

	if len(sanitized.Host) == 0 {
		sanitized.Host = defaults.Host
	}
	if len(sanitized.APIBaseURL) == 0 {
		sanitized.APIBaseURL = defaults.APIBaseURL
	}
	if sanitized.Limit <= 0 {
		sanitized.Limit = defaults.Limit
	}
	if len(sanitized.Destination) == 0 {
		sanitized.Destination = defaults.Destination
	}
	if len(sanitized.Protocol) == 0 {
		sanitized.Protocol = defaults.Protocol
	}
	return sanitized
}
