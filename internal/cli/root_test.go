package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"interval", "no-resolve", "interface", "all-interfaces"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}

func TestRootCommandDefaults(t *testing.T) {
	f := rootCmd.Flags().Lookup("interval")
	require.NotNil(t, f)
	assert.Equal(t, "1s", f.DefValue)

	f = rootCmd.Flags().Lookup("no-resolve")
	require.NotNil(t, f)
	assert.Equal(t, "false", f.DefValue)
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3")
	assert.Equal(t, "1.2.3", rootCmd.Version)
}
