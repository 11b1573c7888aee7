package filesystem_test

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repopicker/internal/filesystem"
)

func TestOSFileSystemCreatesAndStatsDirectories(testInstance *testing.T) {
	var fileSystem filesystem.FileSystem = filesystem.OSFileSystem{}
	nestedDirectory := filepath.Join(testInstance.TempDir(), "projects", "alice")

	_, statError := fileSystem.Stat(nestedDirectory)
	require.ErrorIs(testInstance, statError, fs.ErrNotExist)

	require.NoError(testInstance, fileSystem.MkdirAll(nestedDirectory, 0o755))

	info, statError := fileSystem.Stat(nestedDirectory)
	require.NoError(testInstance, statError)
	require.True(testInstance, info.IsDir())
}
