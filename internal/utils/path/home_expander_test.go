package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/repopicker/internal/utils/path"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	homeDirectory := filepath.Join(string(filepath.Separator), "home", "alice")

	testCases := []struct {
		name         string
		destination  string
		expectedPath string
	}{
		{name: "blank_destination", destination: "  ", expectedPath: "."},
		{name: "current_directory", destination: ".", expectedPath: "."},
		{name: "home_only", destination: "~", expectedPath: homeDirectory},
		{name: "home_subdirectory", destination: "~/src/github", expectedPath: filepath.Join(homeDirectory, "src", "github")},
		{name: "relative_directory", destination: "work/../repos", expectedPath: "repos"},
		{name: "other_user_shortcut", destination: "~bob/src", expectedPath: "~bob/src"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				return homeDirectory, nil
			})
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.destination))
		})
	}
}

func TestHomeExpanderLeavesShortcutWhenHomeUnavailable(testInstance *testing.T) {
	lookupCount := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		lookupCount++
		return "", errors.New("no home")
	})

	require.Equal(testInstance, "~/src", expander.Expand("~/src"))
	require.Equal(testInstance, "~", expander.Expand("~"))
	require.Equal(testInstance, 1, lookupCount)
}
