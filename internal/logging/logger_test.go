package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG", slog.LevelWarn))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, parseLevel("", slog.LevelWarn))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose", slog.LevelInfo))
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/action.go", shortPath("/home/dev/src/safeguard-cli/internal/usecase/action.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/build/main.go"))
}
