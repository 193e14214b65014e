package tpc

import "fmt"

type SessionState int

const (
	StateUninitialized SessionState = iota
	StateReady
	StateClosed
)

// DigitDump is one digit filtering session: raw samples go through the
// zero-suppression filter into the per-sector store, and every event
// boundary hands off a sorted, deduplicated snapshot. A session is
// single-threaded; run one per worker and share only the read-only
// calibration, mask and geometry between them.
type DigitDump struct {
	params FilterParams
	geo    *Geometry
	calib  *CalibPads
	mask   *PadMask
	filter *SignalFilter
	store  *DigitStore
	writer *Writer

	state            SessionState
	outputFile       string
	inMemoryOnly     bool
	checkDuplicates  bool
	removeDuplicates bool
	eventCount       int
	decisions        [NumDecisions]int64
}

func NewDigitDump(params FilterParams, geo *Geometry) *DigitDump {
	return &DigitDump{
		params: params,
		geo:    geo,
		store:  NewDigitStore(),
		state:  StateUninitialized,
	}
}

// SetCalibPads injects already-loaded baseline tables. When set, Init
// skips loading the pedestal and noise file.
func (d *DigitDump) SetCalibPads(calib *CalibPads) {
	d.calib = calib
}

func (d *DigitDump) SetPadMask(mask *PadMask) {
	d.mask = mask
}

// SetInMemoryOnly disables output setup; filtered digits are only handed
// back from EndEvent.
func (d *DigitDump) SetInMemoryOnly(inMemoryOnly bool) {
	d.inMemoryOnly = inMemoryOnly
}

func (d *DigitDump) SetOutputFile(filename string) {
	d.outputFile = filename
}

func (d *DigitDump) SetDuplicateCheck(check bool, remove bool) {
	d.checkDuplicates = check
	d.removeDuplicates = remove
}

// Init loads the baseline tables and sets up the output. Called lazily
// from Update on the first sample; calling it twice is a no-op.
func (d *DigitDump) Init() error {
	switch d.state {
	case StateReady:
		return nil
	case StateClosed:
		return fmt.Errorf("session already closed")
	}

	if d.calib == nil {
		calib, err := LoadCalibPads(d.params.PedestalAndNoiseFile)
		if err != nil {
			return err
		}
		d.calib = calib
	}
	d.filter = NewSignalFilter(d.params, d.geo, d.calib, d.mask)

	if !d.inMemoryOnly {
		d.writer = NewWriter(d.outputFile)
	}

	d.state = StateReady
	return nil
}

// Update evaluates one raw sample and, on acceptance, appends the digit
// to the store. Each sample is evaluated exactly once, synchronously.
func (d *DigitDump) Update(cru CRU, row int, pad int, timeBin int, signal float32) (Decision, error) {
	// Cheapest and most frequent rejection, checked before any setup or
	// table lookup.
	if (timeBin < d.params.FirstTimeBin) || (timeBin > d.params.LastTimeBin) {
		d.decisions[RejectTimeWindow]++
		return RejectTimeWindow, nil
	}

	if d.state != StateReady {
		if err := d.Init(); err != nil {
			return RejectTimeWindow, err
		}
	}

	decision, digit := d.filter.Evaluate(cru, row, pad, timeBin, signal)
	d.decisions[decision]++
	if decision == Accept {
		d.store.Append(digit)
	}
	return decision, nil
}

// EndEvent sorts and deduplicates the store, writes the event unless the
// session is in-memory only, and clears the store for the next event.
// The returned snapshot is detached from the store.
func (d *DigitDump) EndEvent(eventID uint32, timestamp uint64) (*EventDigits, error) {
	if d.state != StateReady {
		if err := d.Init(); err != nil {
			return nil, err
		}
	}

	event := &EventDigits{
		EventID:   eventID,
		Timestamp: timestamp,
	}

	d.store.Sort()
	if d.checkDuplicates {
		event.Duplicates = d.store.CheckDuplicates(d.removeDuplicates)
	}

	for sector := 0; sector < MaxSector; sector++ {
		digits := d.store.Sector(sector)
		if len(digits) == 0 {
			continue
		}
		event.Digits[sector] = append([]Digit(nil), digits...)
	}

	if d.writer != nil {
		d.writer.WriteEvent(event)
	}

	d.store.Clear()
	d.eventCount++
	return event, nil
}

// Close flushes any pending output and ends the session. Further Update
// or EndEvent calls fail.
func (d *DigitDump) Close() error {
	if d.state == StateClosed {
		return nil
	}
	d.state = StateClosed
	if d.writer != nil {
		return d.writer.Close()
	}
	return nil
}

func (d *DigitDump) State() SessionState {
	return d.state
}

func (d *DigitDump) EventCount() int {
	return d.eventCount
}

// DecisionCounts returns how often each filter outcome occurred, indexed
// by Decision.
func (d *DigitDump) DecisionCounts() [NumDecisions]int64 {
	return d.decisions
}
