package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tpc "github.com/alice-tpc/digitdump_go/pkg"
)

var configuration tpc.Configuration
var logger Logger

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger = Logger{Log: slog.New(slog.NewTextHandler(os.Stdout, opts))}
}

// Occupancy study: runs the zero-suppression filter over a raw sample
// file and accumulates how often every pad fired, normalized per event.
func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	tpc.SetConfiguration(configuration)
	tpc.SetLogger(logger)

	geometry := tpc.NewGeometry()

	calib, err := tpc.LoadCalibPads(configuration.PedestalAndNoiseFile)
	if err != nil {
		message := fmt.Errorf("Error loading pedestal and noise file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	mask := tpc.NewPadMaskFromConfig(configuration.MaskedPads)

	filter := tpc.NewSignalFilter(configuration.FilterParams(), geometry, calib, mask)
	occupancy := tpc.NewOccupancyMap(geometry)

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("Error opening file: %w", err)
		logger.Error(message.Error())
		return
	}
	defer file.Close()

	start := time.Now()
	fileReader := tpc.NewFileReader(file)
	for {
		header, samples, err := fileReader.NextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			break
		}
		if occupancy.Events() >= configuration.MaxEvents {
			break
		}
		for _, s := range samples {
			decision, digit := filter.Evaluate(tpc.CRU(s.CRU), int(s.Row), int(s.Pad), int(s.TimeBin), s.Signal)
			if decision == tpc.Accept {
				occupancy.Fill(digit)
			}
		}
		occupancy.EndEvent()
		if configuration.Verbosity > 1 {
			message := fmt.Sprintf("Event %d done", header.EventID)
			logger.Info(message, "main")
		}
	}

	if err := occupancy.WriteHDF5(configuration.FileOut); err != nil {
		logger.Error(err.Error())
		return
	}

	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Events: %d", occupancy.Events()), "main")
	logger.Info(fmt.Sprintf("Pads with occupancy: %d", occupancy.Pads()), "main")
	logger.Info(fmt.Sprintf("Total time: %d ms", duration.Milliseconds()), "main")
}
