package main

import (
	"encoding/json"
	"log/slog"
	"os"

	tpc "github.com/alice-tpc/digitdump_go/pkg"
)

func LoadConfiguration(filename string) (tpc.Configuration, error) {
	var config tpc.Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Verbosity = 0
	config.FirstTimeBin = 0
	config.LastTimeBin = 1000
	config.ADCMin = -100
	config.ADCMax = 1024
	config.NoiseThreshold = 0
	config.CompressionLevel = 4

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

// Logger adapts a single slog logger to the library's Logger interface.
type Logger struct {
	Log *slog.Logger
}

func (l Logger) Info(message string, module string) {
	l.Log.Info(message, "module", module)
}

func (l Logger) Warning(message string, module string) {
	l.Log.Warn(message, "module", module)
}

func (l Logger) Error(message string) {
	l.Log.Error(message)
}
