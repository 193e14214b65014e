package tpc

// RawEventHeader frames one event in a raw sample file.
type RawEventHeader struct {
	EventID   uint32
	NSamples  uint32
	Timestamp uint64
}

// RawSample is one uncorrected charge sample as read from file.
type RawSample struct {
	CRU     uint16
	Row     uint8
	Pad     uint8
	TimeBin int32
	Signal  float32
}

// EventDigits is the hand-off unit at each event boundary: the sorted,
// deduplicated digits of one event, detached from the session store.
type EventDigits struct {
	EventID    uint32
	Timestamp  uint64
	Digits     [MaxSector][]Digit
	Duplicates DuplicateReport
	Error      bool
}

func (e *EventDigits) Total() int {
	total := 0
	for sector := range e.Digits {
		total += len(e.Digits[sector])
	}
	return total
}
