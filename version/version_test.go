package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
	assert.NotEmpty(t, info.CommitHash)
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abcdef1", Info{CommitHash: "abcdef1234567"}.Short())
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}

func TestString(t *testing.T) {
	info := Info{Version: "v0.3.0", CommitHash: "abcdef1234", BuildTime: "today", Frontend: "v0.2.0"}
	assert.Equal(t, "py2rs v0.3.0 (commit abcdef1, built today, gpython v0.2.0)", info.String())
}
