package gitrepo

import (
	"fmt"
	"strings"
)

const (
	gitUserPrefixConstant              = "git@"
	httpsProtocolPrefixConstant        = "https://"
	sshPathDelimiterConstant           = ":"
	pathSeparatorConstant              = "/"
	gitSuffixConstant                  = ".git"
	remoteURLErrorTemplateConstant     = "%s: %s"
	requiredValueMessageConstant       = "value required"
	unsupportedProtocolMessageConstant = "unsupported remote protocol"
	hostFieldNameConstant              = "host"
	ownerFieldNameConstant             = "owner"
	repositoryFieldNameConstant        = "repository"
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
)

// ParseRemoteProtocol resolves a case-insensitive protocol name.
func ParseRemoteProtocol(value string) (RemoteProtocol, error) {
	protocol := RemoteProtocol(strings.ToLower(strings.TrimSpace(value)))
	switch protocol {
	case RemoteProtocolSSH, RemoteProtocolHTTPS:
		return protocol, nil
	default:
		return "", UnsupportedProtocolError{Protocol: RemoteProtocol(value)}
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so configuration values decode into a validated protocol.
func (protocol *RemoteProtocol) UnmarshalText(text []byte) error {
	parsedProtocol, parseError := ParseRemoteProtocol(string(text))
	if parseError != nil {
		return parseError
	}
	*protocol = parsedProtocol
	return nil
}

// RemoteURL describes the pieces of a clone address.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// MissingComponentError indicates a RemoteURL field was empty.
type MissingComponentError struct {
	Component string
}

// Error describes the missing component.
func (componentError MissingComponentError) Error() string {
	return fmt.Sprintf(remoteURLErrorTemplateConstant, componentError.Component, requiredValueMessageConstant)
}

// UnsupportedProtocolError indicates the provided protocol cannot be formatted.
type UnsupportedProtocolError struct {
	Protocol RemoteProtocol
}

// Error describes the unsupported protocol.
func (protocolError UnsupportedProtocolError) Error() string {
	return fmt.Sprintf(remoteURLErrorTemplateConstant, protocolError.Protocol, unsupportedProtocolMessageConstant)
}

// FormatRemoteURL renders the clone address. SSH remotes use the scp-like host:owner/name.git form.
func FormatRemoteURL(remote RemoteURL) (string, error) {
	host := strings.TrimSpace(remote.Host)
	owner := strings.TrimSpace(remote.Owner)
	repository := strings.TrimSuffix(strings.TrimSpace(remote.Repository), gitSuffixConstant)

	for _, component := range []struct {
		name  string
		value string
	}{
		{name: hostFieldNameConstant, value: host},
		{name: ownerFieldNameConstant, value: owner},
		{name: repositoryFieldNameConstant, value: repository},
	} {
		if len(component.value) == 0 {
			return "", MissingComponentError{Component: component.name}
		}
	}

	switch remote.Protocol {
	case RemoteProtocolSSH:
		return gitUserPrefixConstant + host + sshPathDelimiterConstant + owner + pathSeparatorConstant + repository + gitSuffixConstant, nil
	case RemoteProtocolHTTPS:
		return httpsProtocolPrefixConstant + host + pathSeparatorConstant + owner + pathSeparatorConstant + repository + gitSuffixConstant, nil
	default:
		return "", UnsupportedProtocolError{Protocol: remote.Protocol}
	}
}
