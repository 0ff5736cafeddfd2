package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationsCommand(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "stations.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(`station_name,latitude,longitude,encoded
Near,35.7800,-78.8380,3
Far,35.9000,-78.8382,1
`), 0o644))
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("routing:\n  provider: graphhopper\nstations:\n  path: "+csvPath+"\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"stations", "--config", cfgFile, "--lat", "35.7796", "--lon", "-78.8382"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Near")
	assert.Contains(t, out.String(), "35.780000")
	assert.Contains(t, out.String(), "-78.838000")
	assert.NotContains(t, out.String(), "Far")
}

func TestStationsCommandInvalidLatitude(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("routing:\n  provider: graphhopper\n"), 0o644))

	rootCmd.SetArgs([]string{"stations", "--config", cfgFile, "--lat", "95", "--lon", "0"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.Error(t, rootCmd.Execute())
}
