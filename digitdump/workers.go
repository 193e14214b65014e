package main

import (
	"fmt"
	"io"

	tpc "github.com/alice-tpc/digitdump_go/pkg"
)

type WorkerData struct {
	Header  tpc.RawEventHeader
	Samples []tpc.RawSample
}

// SharedTables are the read-only inputs every worker session consults.
// They must not be mutated once the workers are running.
type SharedTables struct {
	Geometry *tpc.Geometry
	Calib    *tpc.CalibPads
	Mask     *tpc.PadMask
}

func worker(id int, shared SharedTables, jobs <-chan WorkerData, results chan<- *tpc.EventDigits) {
	defer func() {
		if r := recover(); r != nil {
			message := fmt.Sprintf("Worker %d recovered from panic: %v", id, r)
			logger.Error(message)
			results <- &tpc.EventDigits{Error: true}
		}
	}()

	// Each worker owns a full session; only the tables are shared.
	dump := tpc.NewDigitDump(configuration.FilterParams(), shared.Geometry)
	dump.SetCalibPads(shared.Calib)
	dump.SetPadMask(shared.Mask)
	dump.SetInMemoryOnly(true)
	dump.SetDuplicateCheck(configuration.CheckDuplicates, configuration.RemoveDuplicates)
	defer dump.Close()

	for job := range jobs {
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Worker %d filtering event %d (%d samples)", id, job.Header.EventID, len(job.Samples))
			logger.Info(message, "workers")
		}
		for _, s := range job.Samples {
			_, err := dump.Update(tpc.CRU(s.CRU), int(s.Row), int(s.Pad), int(s.TimeBin), s.Signal)
			if err != nil {
				message := fmt.Errorf("worker %d: error filtering sample: %w", id, err)
				logger.Error(message.Error())
			}
		}
		event, err := dump.EndEvent(job.Header.EventID, job.Header.Timestamp)
		if err != nil {
			message := fmt.Errorf("worker %d: error closing event %d: %w", id, job.Header.EventID, err)
			logger.Error(message.Error())
			results <- &tpc.EventDigits{Error: true}
			continue
		}
		results <- event
	}
}

func sendEventsToWorkers(fileReader *tpc.FileReader, jobs chan<- WorkerData) {
	evtCount := -1
	for {
		header, samples, err := fileReader.NextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			break
		}
		evtCount++
		if evtCount >= configuration.MaxEvents {
			break
		}
		if evtCount < configuration.Skip {
			continue
		}
		jobs <- WorkerData{Header: header, Samples: samples}
	}
	close(jobs)
}
