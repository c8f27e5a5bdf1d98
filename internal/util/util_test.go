package util

import (
	"io"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/stretchr/testify/require"
)

func TestParseFileSkipsBlankLines(t *testing.T) {
	var lines []string

	err := ParseFile(strings.NewReader(heredoc.Doc(`
		  first line

		second   line  
	`)), func(line string) error {
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"first line", "second   line"}, lines)
}

func TestReadFileReturning(t *testing.T) {
	filePath := path.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(filePath, []byte("contents\n"), 0o644))

	data, err := ReadFileReturning(filePath, func(file io.Reader) (string, error) {
		data, err := io.ReadAll(file)
		return string(data), err
	})
	require.NoError(t, err)
	require.Equal(t, "contents\n", data)
}

func TestReadFileMissing(t *testing.T) {
	err := ReadFile(path.Join(t.TempDir(), "missing"), func(file io.Reader) error {
		return nil
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatList(t *testing.T) {
	require.Equal(t, "sdb, sda1, sda", FormatList([]string{"sdb", "sda1", "sda"}, false))
	require.Equal(t, "sda, sda1, sdb", FormatList([]string{"sdb", "sda1", "sda"}, true))
	require.Equal(t, "", FormatList([]int{}, true))
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Interval Delta", Title("interval delta"))
}
