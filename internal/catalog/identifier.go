package catalog

import (
	"fmt"
	"sort"
	"strings"
)

const (
	identifierSeparatorConstant            = "/"
	invalidIdentifierErrorTemplateConstant = "invalid repository identifier %q: expected owner/name"
)

// RepositoryIdentifier is an owner/name pair such as "alice/zebra".
type RepositoryIdentifier string

// InvalidIdentifierError reports a value that is not exactly two non-empty segments.
type InvalidIdentifierError struct {
	Value string
}

// Error describes the malformed identifier.
func (identifierError InvalidIdentifierError) Error() string {
	return fmt.Sprintf(invalidIdentifierErrorTemplateConstant, identifierError.Value)
}

// ParseRepositoryIdentifier validates and trims an owner/name string.
func ParseRepositoryIdentifier(value string) (RepositoryIdentifier, error) {
	trimmedValue := strings.TrimSpace(value)
	segments := strings.Split(trimmedValue, identifierSeparatorConstant)
	if len(segments) != 2 || len(segments[0]) == 0 || len(segments[1]) == 0 {
		return "", InvalidIdentifierError{Value: value}
	}
	return RepositoryIdentifier(trimmedValue), nil
}

// Owner returns the segment before the separator.
func (identifier RepositoryIdentifier) Owner() string {
	owner, _, _ := strings.Cut(string(identifier), identifierSeparatorConstant)
	return owner
}

// Name returns the segment after the separator.
func (identifier RepositoryIdentifier) Name() string {
	_, name, _ := strings.Cut(string(identifier), identifierSeparatorConstant)
	return name
}

func (identifier RepositoryIdentifier) String() string {
	return string(identifier)
}

// normalizeIdentifiers parses, de-duplicates, and sorts raw identifiers.
func normalizeIdentifiers(rawIdentifiers []string) ([]RepositoryIdentifier, error) {
	seen := make(map[RepositoryIdentifier]struct{}, len(rawIdentifiers))
	identifiers := make([]RepositoryIdentifier, 0, len(rawIdentifiers))
	for _, rawIdentifier := range rawIdentifiers {
		identifier, parseError := ParseRepositoryIdentifier(rawIdentifier)
		if parseError != nil {
			return nil, parseError
		}
		if _, duplicate := seen[identifier]; duplicate {
			continue
		}
		seen[identifier] = struct{}{}
		identifiers = append(identifiers, identifier)
	}

	sort.Slice(identifiers, func(leftIndex, rightIndex int) bool {
		return identifiers[leftIndex] < identifiers[rightIndex]
	})
	return identifiers, nil
}
