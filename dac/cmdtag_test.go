package dac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCmdTag_String(t *testing.T) {
	require.Equal(t, "NONE", CmdNone.String())
	require.Equal(t, "ERASE", CmdErase.String())
	require.Equal(t, "FILL_MEMORY", CmdFillMemory.String())
	require.Equal(t, "FW_VERSION_CHECK", CmdFwVersionCheck.String())
	require.Equal(t, "CmdTag(0x7F)", CmdTag(0x7F).String())
}

func TestCmdTagFromName(t *testing.T) {
	for tag, name := range cmdTagNames {
		got, err := CmdTagFromName(name)
		require.NoError(t, err)
		require.Equal(t, tag, got)
	}

	_, err := CmdTagFromName("FORMAT_DISK")
	require.Error(t, err)
}
