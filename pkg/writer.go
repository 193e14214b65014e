package tpc

import (
	"errors"
	"fmt"
	"sort"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	"golang.org/x/exp/maps"
)

// Writer persists filtered events to an HDF5 file: an event index and run
// info under "Run", one digit table per sector under "Digits" (created
// lazily when a sector first has data) and a duplicate-count table under
// "QA".
type Writer struct {
	File            *hdf5.File
	Filename        string
	FirstEvt        bool
	RunGroup        *hdf5.Group
	DigitsGroup     *hdf5.Group
	QAGroup         *hdf5.Group
	EventTable      *hdf5.Dataset
	RunInfoTable    *hdf5.Dataset
	DuplicatesTable *hdf5.Dataset
	SectorTables    map[int]*hdf5.Dataset
	SectorRows      map[int]int
	DuplicateRows   int
	EvtCounter      int
}

func NewWriter(filename string) *Writer {
	writer := &Writer{}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Creating digit file: %s", filename)
		logger.Info(message, "writer")
	}
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.DigitsGroup = createGroup(writer.File, "Digits")
	writer.QAGroup = createGroup(writer.File, "QA")
	writer.EventTable = createTable(writer.RunGroup, "events", EventDataHDF5{})
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writer.DuplicatesTable = createTable(writer.QAGroup, "duplicates", DuplicateHDF5{})
	writer.SectorTables = make(map[int]*hdf5.Dataset)
	writer.SectorRows = make(map[int]int)
	writer.EvtCounter = 0
	return writer
}

func (w *Writer) WriteEvent(event *EventDigits) {
	if !w.FirstEvt {
		runInfo := RunInfoHDF5{run_number: int32(configuration.RunNumber)}
		writeEntryToTable(w.RunInfoTable, runInfo, 0)
		w.FirstEvt = true
	}

	eventEntry := EventDataHDF5{
		evt_number: int32(event.EventID),
		timestamp:  event.Timestamp,
		n_digits:   int32(event.Total()),
	}
	writeEntryToTable(w.EventTable, eventEntry, w.EvtCounter)

	for sector := 0; sector < MaxSector; sector++ {
		digits := event.Digits[sector]
		if len(digits) == 0 {
			continue
		}
		w.writeSectorDigits(sector, digits)
	}

	for sector, nDuplicates := range event.Duplicates.PerSector {
		if nDuplicates == 0 {
			continue
		}
		entry := DuplicateHDF5{
			evt_number:   int32(event.EventID),
			sector:       int32(sector),
			n_duplicates: int32(nDuplicates),
		}
		writeEntryToTable(w.DuplicatesTable, entry, w.DuplicateRows)
		w.DuplicateRows++
	}

	w.EvtCounter++
}

func (w *Writer) writeSectorDigits(sector int, digits []Digit) {
	dset, ok := w.SectorTables[sector]
	if !ok {
		name := fmt.Sprintf("TPCDigit_%d", sector)
		dset = createTable(w.DigitsGroup, name, DigitHDF5{})
		w.SectorTables[sector] = dset
	}

	// The array MUST be allocated at creation, if not, HDF5 will panic
	// doing appends will not work
	rows := make([]DigitHDF5, len(digits))
	for i, digit := range digits {
		rows[i] = DigitHDF5{
			cru:      int32(digit.CRU),
			row:      int32(digit.Row),
			pad:      int32(digit.Pad),
			time_bin: int32(digit.TimeBin),
			charge:   digit.Charge,
		}
	}
	writeArrayToTable(dset, &rows, w.SectorRows[sector])
	w.SectorRows[sector] += len(rows)
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Closing digit file: %s", w.Filename)
		logger.Info(message, "writer")
	}
	var errs []error

	if err := w.EventTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing event table: %w", err))
	}
	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.DuplicatesTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing duplicates table: %w", err))
	}

	sectors := maps.Keys(w.SectorTables)
	sort.Ints(sectors)
	for _, sector := range sectors {
		if err := w.SectorTables[sector].Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing digit table for sector %d: %w", sector, err))
		}
	}

	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run group: %w", err))
	}
	if err := w.DigitsGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing digits group: %w", err))
	}
	if err := w.QAGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing QA group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
