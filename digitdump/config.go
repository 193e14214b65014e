package main

import (
	"encoding/json"
	"fmt"
	"os"

	tpc "github.com/alice-tpc/digitdump_go/pkg"
)

func LoadConfiguration(filename string) (tpc.Configuration, error) {
	var config tpc.Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Skip = 0
	config.Verbosity = 0
	config.FirstTimeBin = 0
	config.LastTimeBin = 1000
	config.ADCMin = -100
	config.ADCMax = 1024
	config.NoiseThreshold = 0
	config.CheckDuplicates = true
	config.RemoveDuplicates = false
	config.NoDB = false
	config.RunNumber = 0
	config.Host = "tpc-conditions.cern.ch"
	config.User = "tpcreader"
	config.Passwd = "readonly"
	config.DBName = "TPCCOND"
	config.NumWorkers = 1
	config.WriteData = true
	config.InMemoryOnly = false
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

func printConfiguration(config tpc.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("First time bin: %d", config.FirstTimeBin), "config")
	logger.Info(fmt.Sprintf("Last time bin: %d", config.LastTimeBin), "config")
	logger.Info(fmt.Sprintf("ADC min: %g", config.ADCMin), "config")
	logger.Info(fmt.Sprintf("ADC max: %g", config.ADCMax), "config")
	logger.Info(fmt.Sprintf("Noise threshold: %g", config.NoiseThreshold), "config")
	logger.Info(fmt.Sprintf("Pedestal and noise file: %s", config.PedestalAndNoiseFile), "config")
	logger.Info(fmt.Sprintf("Check duplicates: %t", config.CheckDuplicates), "config")
	logger.Info(fmt.Sprintf("Remove duplicates: %t", config.RemoveDuplicates), "config")
	logger.Info(fmt.Sprintf("Masked pads (config): %d", len(config.MaskedPads)), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("In memory only: %t", config.InMemoryOnly), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
}
