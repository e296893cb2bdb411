package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperstream/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/paperstream/internal/core/ports/driving"
	"github.com/custodia-labs/paperstream/internal/core/services"
	"github.com/custodia-labs/paperstream/internal/logger"
)

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{
		"config", "root", "metadata", "prefer", "on-neither",
		"word-tokenizer", "sentence-tokenizer",
		"no-title", "no-abstract", "no-body", "verbose",
	} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
}

func TestExecute_RunsSetup(t *testing.T) {
	defer func() {
		setup = nil
		settingsService = nil
		opener = nil
		logger.SetVerbose(false)
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	}()

	var gotDir string
	rootCmd.SetArgs([]string{"config", "show", "--config", "/tmp/ps", "--verbose"})
	err := Execute(context.Background(), func(dir string) (driving.SettingsService, Opener, error) {
		gotDir = dir
		return services.NewSettingsService(memory.NewConfigStore()), &testOpener{}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "/tmp/ps", gotDir)
	assert.True(t, logger.IsVerbose())
	assert.NotNil(t, settingsService)
}

func TestExecute_SetupError(t *testing.T) {
	defer func() {
		setup = nil
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs([]string{"config", "show"})
	err := Execute(context.Background(), func(string) (driving.SettingsService, Opener, error) {
		return nil, nil, errors.New("boom")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialise")
}
