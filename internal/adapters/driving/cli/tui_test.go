package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vmt/internal/adapters/driving/tui"
	"github.com/custodia-labs/vmt/internal/core/domain"
)

func TestTUICmd_Exists(t *testing.T) {
	// Verify the tui command is registered
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui [session-file]" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_HasDescription(t *testing.T) {
	assert.NotEmpty(t, tuiCmd.Short)
	assert.Contains(t, tuiCmd.Long, "ctrl+s")
	assert.Contains(t, tuiCmd.Long, "session file")
}

func TestTUICmd_AcceptsAtMostOneArg(t *testing.T) {
	require.NotNil(t, tuiCmd.Args)
	assert.NoError(t, tuiCmd.Args(tuiCmd, nil))
	assert.NoError(t, tuiCmd.Args(tuiCmd, []string{"a.vmt.json"}))
	assert.Error(t, tuiCmd.Args(tuiCmd, []string{"a", "b"}))
}

func TestRunTUI_MissingServices(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { servicesSet = false })

	_, err := execute(t, "", "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
	assert.ErrorIs(t, err, tui.ErrMissingAnalysisService)
}

func TestRunTUI_MissingMediaService(t *testing.T) {
	setupTestServices(t)
	mediaService = nil

	_, err := execute(t, "", "tui")

	require.Error(t, err)
	assert.ErrorIs(t, err, tui.ErrMissingMediaService)
}

func TestLoadSessionForTUI(t *testing.T) {
	env := setupTestServices(t)
	created := createSession(t, env, "tui.vmt.json")

	session, err := loadSessionForTUI(tuiCmd, "tui.vmt.json")

	require.NoError(t, err)
	assert.Equal(t, created.ID, session.ID)
}

func TestLoadSessionForTUI_Errors(t *testing.T) {
	setupTestServices(t)

	_, err := loadSessionForTUI(tuiCmd, "missing.vmt.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sessionService = nil
	_, err = loadSessionForTUI(tuiCmd, "missing.vmt.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session service not configured")
}
