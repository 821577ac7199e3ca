package watch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/headerscan/cmd/formatters"
	"github.com/LegacyCodeHQ/headerscan/internal/diag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand_RegistersScanFlags(t *testing.T) {
	cmd := NewCommand()

	for _, name := range []string{"include", "debug", "format", "target", "parser", "config"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
	}
	assert.Equal(t, "I", cmd.Flags().Lookup("include").Shorthand)
	assert.Equal(t, "D", cmd.Flags().Lookup("debug").Shorthand)
}

func TestNewCommand_RequiresSeeds(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs([]string{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	require.Error(t, err)
}

func TestNewCommand_InvalidIncludeDirectoryFailsBeforeWatching(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs([]string{"-I", t.TempDir() + "/missing", "a.h"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestNewPublisher_FormatErrorIsLoggedOnEveryPublish(t *testing.T) {
	var out, logs bytes.Buffer
	publish := newPublisher(&out, &formatters.MakeFormatter{}, formatters.FormatOptions{}, diag.New(&logs, false))

	publish([]string{"a.h"})
	publish([]string{"a.h", "b.h"})

	assert.Empty(t, out.String())
	assert.Equal(t, 2, strings.Count(logs.String(), "Failed to format dependencies"))
}

func TestNewPublisher_WritesFormattedFiles(t *testing.T) {
	var out, logs bytes.Buffer
	publish := newPublisher(&out, &formatters.ListFormatter{}, formatters.FormatOptions{}, diag.New(&logs, false))

	publish([]string{"a.h", "b.h"})

	assert.Equal(t, "a.h\nb.h\n", out.String())
	assert.Empty(t, logs.String())
}
