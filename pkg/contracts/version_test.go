package contracts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, DataFormatVersion, info.DataFormat)
}

func TestVersionStrings(t *testing.T) {
	assert.Equal(t, "nhlvis v"+Version, GetVersionString())
	assert.Contains(t, GetFullVersionString(), "commit: "+GitCommit)
}
