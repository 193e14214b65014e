package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"

	tpc "github.com/alice-tpc/digitdump_go/pkg"
)

var dbConn *sqlx.DB
var configuration tpc.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

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

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	geometry := tpc.NewGeometry()

	// An explicitly configured calibration file that cannot be read is a
	// misconfiguration; an empty path only warns.
	calib, err := tpc.LoadCalibPads(configuration.PedestalAndNoiseFile)
	if err != nil {
		message := fmt.Errorf("Error loading pedestal and noise file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}

	mask := tpc.NewPadMaskFromConfig(configuration.MaskedPads)
	if !configuration.NoDB {
		dbConn, err = tpc.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			return
		}
		defer dbConn.Close()

		dbMask, err := tpc.LoadPadMaskFromDB(dbConn, configuration.RunNumber)
		if err != nil {
			message := fmt.Errorf("Error loading pad mask from database: %w", err)
			logger.Error(message.Error())
			return
		}
		mask.Merge(dbMask)
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("Error opening file: %w", err)
		logger.Error(message.Error())
		return
	}
	defer file.Close()

	fileReader := tpc.NewFileReader(file)
	evtCount, err := fileReader.CountEvents()
	if err != nil {
		message := fmt.Errorf("Error counting events: %w", err)
		logger.Error(message.Error())
		return
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events: %d", evtCount)
		logger.Info(message, "main")
	}
	evtsToRead := numberOfEventsToProcess(evtCount, configuration.Skip, configuration.MaxEvents)

	var writer *tpc.Writer
	if configuration.WriteData && !configuration.InMemoryOnly {
		writer = tpc.NewWriter(configuration.FileOut)
	}

	start := time.Now()
	jobs := make(chan WorkerData, 100)
	results := make(chan *tpc.EventDigits, 100)

	shared := SharedTables{Geometry: geometry, Calib: calib, Mask: mask}
	for w := 1; w <= configuration.NumWorkers; w++ {
		go worker(w, shared, jobs, results)
	}
	go sendEventsToWorkers(fileReader, jobs)

	evtsProcessed := 0
	nDigits := 0
	nDuplicates := 0
	for evtsProcessed < evtsToRead {
		event := <-results
		evtsProcessed++
		if event.Error {
			continue
		}
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Processed event %d: %d digits", event.EventID, event.Total())
			logger.Info(message, "main")
		}
		nDigits += event.Total()
		nDuplicates += event.Duplicates.Total()
		if writer != nil {
			writer.WriteEvent(event)
		}
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			message := fmt.Errorf("Error closing output file: %w", err)
			logger.Error(message.Error())
		}
	}

	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Events processed: %d", evtsProcessed), "main")
	logger.Info(fmt.Sprintf("Digits kept: %d", nDigits), "main")
	if configuration.CheckDuplicates {
		action := "found"
		if configuration.RemoveDuplicates {
			action = "removed"
		}
		logger.Info(fmt.Sprintf("Duplicate digits %s: %d", action, nDuplicates), "main")
	}
	logger.Info(fmt.Sprintf("Total time: %d ms", duration.Milliseconds()), "main")
}

func numberOfEventsToProcess(fileEvtCount int, skipEvts int, maxEvtCount int) int {
	evtsToRead := fileEvtCount
	if maxEvtCount < evtsToRead {
		evtsToRead = maxEvtCount
	}
	evtsToRead -= skipEvts
	if evtsToRead < 0 {
		evtsToRead = 0
	}
	return evtsToRead
}
