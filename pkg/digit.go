package tpc

import (
	"fmt"
	"sort"
)

// Digit is one accepted, baseline-corrected charge sample. Immutable once
// appended to a store.
type Digit struct {
	CRU     CRU
	Charge  float32
	Row     int // sector-global row
	Pad     int
	TimeBin int
}

func (d Digit) Sector() int {
	return d.CRU.Sector()
}

// DigitStore holds the accepted digits of the current event, one
// append-only sequence per sector. Ordering and deduplication happen only
// at event boundaries; appends are plain pushes.
type DigitStore struct {
	digits [MaxSector][]Digit
}

func NewDigitStore() *DigitStore {
	return &DigitStore{}
}

func (s *DigitStore) Append(d Digit) {
	sector := d.Sector()
	s.digits[sector] = append(s.digits[sector], d)
}

// Sector returns the digits of one sector. The slice is owned by the
// store and only valid until the next Clear.
func (s *DigitStore) Sector(sector int) []Digit {
	return s.digits[sector]
}

func (s *DigitStore) Total() int {
	total := 0
	for sector := range s.digits {
		total += len(s.digits[sector])
	}
	return total
}

// Clear empties all sectors, keeping the backing arrays for the next
// event.
func (s *DigitStore) Clear() {
	for sector := range s.digits {
		s.digits[sector] = s.digits[sector][:0]
	}
}

// Sort orders every sector by (time bin, row, pad) ascending. The sort is
// stable: charge is not a tie-break key, entries with identical
// coordinates keep their arrival order.
func (s *DigitStore) Sort() {
	for sector := range s.digits {
		digits := s.digits[sector]
		sort.SliceStable(digits, func(i, j int) bool {
			a, b := digits[i], digits[j]
			if a.TimeBin != b.TimeBin {
				return a.TimeBin < b.TimeBin
			}
			if a.Row != b.Row {
				return a.Row < b.Row
			}
			return a.Pad < b.Pad
		})
	}
}

// DuplicateReport counts, per sector, the duplicates found (or removed)
// by one CheckDuplicates pass.
type DuplicateReport struct {
	PerSector [MaxSector]int
}

func (r DuplicateReport) Total() int {
	total := 0
	for _, n := range r.PerSector {
		total += n
	}
	return total
}

// CheckDuplicates sorts the store and scans each sector for adjacent
// digits with identical (time bin, row, pad). With removeDuplicates each
// run of identical coordinates collapses to its first entry; without it
// the digits are only counted. The operation is idempotent: a second
// removing pass reports zero duplicates.
func (s *DigitStore) CheckDuplicates(removeDuplicates bool) DuplicateReport {
	s.Sort()

	isEqual := func(a, b Digit) bool {
		if (a.TimeBin == b.TimeBin) && (a.Row == b.Row) && (a.Pad == b.Pad) {
			if configuration.Verbosity > 1 {
				message := fmt.Sprintf("digit found twice at sector %2d, cru %3d, row %3d, pad %3d, time %6d, ADC %.2f (other: %.2f)",
					b.Sector(), b.CRU, b.Row, b.Pad, b.TimeBin, b.Charge, a.Charge)
				logger.Info(message, "digits")
			}
			return true
		}
		return false
	}

	var report DuplicateReport
	for sector := range s.digits {
		digits := s.digits[sector]
		if len(digits) == 0 {
			continue
		}

		nDuplicates := 0
		if removeDuplicates {
			last := 0
			for i := 1; i < len(digits); i++ {
				if isEqual(digits[last], digits[i]) {
					nDuplicates++
					continue
				}
				last++
				digits[last] = digits[i]
			}
			s.digits[sector] = digits[:last+1]
		} else {
			for i := 1; i < len(digits); i++ {
				if isEqual(digits[i-1], digits[i]) {
					nDuplicates++
				}
			}
		}

		if nDuplicates > 0 {
			action := "found"
			if removeDuplicates {
				action = "removed"
			}
			message := fmt.Sprintf("%s %d duplicate digits in sector %d", action, nDuplicates, sector)
			logger.Warning(message, "digits")
		}
		report.PerSector[sector] = nDuplicates
	}
	return report
}
