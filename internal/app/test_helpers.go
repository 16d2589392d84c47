package app

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. Logs and
// rendered results share the returned buffer.
func SetupAppTest(t *testing.T, appConfig *Config) (*App, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp := NewApp(buf, appConfig, DefaultLoader())

	t.Cleanup(func() {
		if os.Getenv("REACTSYNTH_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), buf.String())
		}
	})

	return testApp, buf
}
