package tpc

import (
	"fmt"
	"os"
	"testing"
)

// recordingLogger keeps messages so tests can assert on warnings.
type recordingLogger struct {
	infos    []string
	warnings []string
	errors   []string
}

func (l *recordingLogger) Info(message string, module string) {
	l.infos = append(l.infos, fmt.Sprintf("[%s] %s", module, message))
}

func (l *recordingLogger) Warning(message string, module string) {
	l.warnings = append(l.warnings, fmt.Sprintf("[%s] %s", module, message))
}

func (l *recordingLogger) Error(message string) {
	l.errors = append(l.errors, message)
}

func TestMain(m *testing.M) {
	SetLogger(&recordingLogger{})
	SetConfiguration(Configuration{Verbosity: 0, CompressionLevel: 4})
	os.Exit(m.Run())
}
