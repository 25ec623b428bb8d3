package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesToConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_DIR", dir)

	require.NoError(t, InitLogger())

	LogInfo("logger smoke entry %d", 42)

	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("trendline-info-%s.log", date)))
	require.NoError(t, err)
	assert.Contains(t, string(data), "logger smoke entry 42")

	for _, level := range []string{"error", "debug"} {
		_, err := os.Stat(filepath.Join(dir, fmt.Sprintf("trendline-%s-%s.log", level, date)))
		assert.NoError(t, err)
	}
}
