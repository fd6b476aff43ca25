package testlog

import (
	"testing"

	"github.com/danmuck/ipsetctl/internal/logging"
)

func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
}
