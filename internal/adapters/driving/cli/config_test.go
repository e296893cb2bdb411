package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

func TestConfigSetCmd_RequiresTwoArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCmd("config", "set", "policy.prefer")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestConfigSetCmd_ThenShow(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCmd("config", "set", "policy.prefer", "b")
	require.NoError(t, err)
	assert.Contains(t, out, "policy.prefer set.")

	out, _, err = executeCmd("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "policy.prefer = b")
	assert.Contains(t, out, "corpus.root = mem://corpus")
	assert.Contains(t, out, "Prefer: b (on neither: exclude)")
	assert.Contains(t, out, "Filters: [lowercase stem]")
}

func TestConfigSetCmd_Invalid(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCmd("config", "set", "tokenizer.word", "whitespace")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestConfigCmd_ShowsByDefault(t *testing.T) {
	_, cleanup := setupTestServicesWith(nil)
	defer cleanup()

	out, _, err := executeCmd("config")

	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "Root: (not set)")
}
