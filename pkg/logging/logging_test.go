package logging_test

import (
	"bufio"
	"os"
	"testing"

	"github.com/DziubanMaciej/CheckMate/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesRequiredLinesToStdout(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	original := os.Stdout
	os.Stdout = w

	logger, err := logging.New()
	os.Stdout = original
	require.NoError(t, err)

	logger.Sugar().Infof("Name set to %s", "Watcher1")
	logger.Sugar().Info("Received abort command")
	logger.Sugar().Infof("Client %s has error: %s", "Watcher1", "disk full")
	logger.Sugar().Infof("Client %s is ok", "Watcher2")
	// Sync on a pipe can return "invalid argument" (no fsync support); that's
	// not a sign the writes themselves failed, so its error is ignored here
	// the same way production code ignores it after a deferred Sync.
	_ = logger.Sync()
	require.NoError(t, w.Close())

	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Name set to Watcher1")
	assert.Contains(t, lines[1], "Received abort command")
	assert.Contains(t, lines[2], "Client Watcher1 has error: disk full")
	assert.Contains(t, lines[3], "Client Watcher2 is ok")
}
