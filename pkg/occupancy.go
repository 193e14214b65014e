package tpc

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

type occupancyKey struct {
	Sector int32
	Row    int32
	Pad    int32
}

// OccupancyMap accumulates, over a run, how often each (sector, row, pad)
// fired with an accepted digit. Counts are normalized to a per-event rate
// when written out.
type OccupancyMap struct {
	geo    *Geometry
	counts map[occupancyKey]int64
	events int
}

func NewOccupancyMap(geo *Geometry) *OccupancyMap {
	return &OccupancyMap{
		geo:    geo,
		counts: make(map[occupancyKey]int64),
	}
}

func (o *OccupancyMap) Fill(digit Digit) {
	key := occupancyKey{
		Sector: int32(digit.Sector()),
		Row:    int32(digit.Row),
		Pad:    int32(digit.Pad),
	}
	o.counts[key]++
}

func (o *OccupancyMap) EndEvent() {
	o.events++
}

func (o *OccupancyMap) Events() int {
	return o.events
}

func (o *OccupancyMap) Pads() int {
	return len(o.counts)
}

// Entries returns the accumulated counts ordered by (sector, row, pad).
func (o *OccupancyMap) Entries() []OccupancyHDF5 {
	keys := maps.Keys(o.counts)
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Sector != b.Sector {
			return a.Sector < b.Sector
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Pad < b.Pad
	})

	entries := make([]OccupancyHDF5, len(keys))
	for i, key := range keys {
		count := o.counts[key]
		var rate float32
		if o.events > 0 {
			rate = float32(count) / float32(o.events)
		}
		entries[i] = OccupancyHDF5{
			sector: key.Sector,
			row:    key.Row,
			pad:    key.Pad,
			count:  count,
			rate:   rate,
		}
	}
	return entries
}

// WriteHDF5 dumps the occupancy table to a new file under "QA/occupancy".
func (o *OccupancyMap) WriteHDF5(filename string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("error writing occupancy file %q: %v", filename, r)
		}
	}()

	file := openFile(filename)
	group := createGroup(file, "QA")
	table := createTable(group, "occupancy", OccupancyHDF5{})

	entries := o.Entries()
	if len(entries) > 0 {
		writeArrayToTable(table, &entries, 0)
	}

	if cerr := table.Close(); cerr != nil {
		err = fmt.Errorf("error closing occupancy table: %w", cerr)
	}
	if cerr := group.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("error closing QA group: %w", cerr)
	}
	if cerr := file.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("error closing occupancy file: %w", cerr)
	}
	return err
}
