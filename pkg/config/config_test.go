package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "panrule-test-*.conf")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	return tmpfile.Name()
}

func TestLoadConfig(t *testing.T) {
	file := writeConfig(t, `[device]
address = fw01.example.com
username = operator
password = paloalto
devicegroup = Cloud Edge

[logging]
debug = true
`)

	settings := LoadConfig([]string{file})

	assert.Equal(t, "fw01.example.com", settings.Address)
	assert.Equal(t, "operator", settings.Username)
	assert.Equal(t, "paloalto", settings.Password)
	assert.Equal(t, "Cloud Edge", settings.DeviceGroup)
	assert.True(t, settings.Debug)
}

func TestLoadConfigUsernameDefault(t *testing.T) {
	file := writeConfig(t, `[device]
address = fw01.example.com
api_key = LUFRPT1234
`)

	settings := LoadConfig([]string{file})

	assert.Equal(t, "admin", settings.Username)
	assert.Equal(t, "LUFRPT1234", settings.APIKey)
	assert.False(t, settings.Debug)
}

func TestLoadConfigMissingFiles(t *testing.T) {
	settings := LoadConfig([]string{"/nonexistent/panrule.conf"})

	assert.Equal(t, "admin", settings.Username)
	assert.Empty(t, settings.Address)
}

func TestLoadConfigSkipsEmptyFile(t *testing.T) {
	empty := writeConfig(t, "")
	file := writeConfig(t, `[device]
address = fw02.example.com
`)

	settings := LoadConfig([]string{empty, file})

	assert.Equal(t, "fw02.example.com", settings.Address)
}

func TestFiles(t *testing.T) {
	files := Files()

	require.Len(t, files, 2)
	assert.Equal(t, "/etc/panrule/panrule.conf", files[0])
	assert.Contains(t, files[1], ".panrule.conf")
}
