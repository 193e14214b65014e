package tpc

import "fmt"

// PadMask is the set of disabled channels of one session, keyed on
// (roc, row, pad). The reference implementation scanned a list; the
// hashed set keeps the same accept/reject behavior. Read-only after
// construction, so safe to share across concurrent filters.
type PadMask struct {
	pads map[PadCoord]struct{}
}

func NewPadMask() *PadMask {
	return &PadMask{pads: make(map[PadCoord]struct{})}
}

// NewPadMaskFromConfig builds a mask from (roc, row, pad) triples, the
// inline configuration source. An empty list yields an empty mask.
func NewPadMaskFromConfig(triples [][3]int) *PadMask {
	mask := NewPadMask()
	for _, t := range triples {
		mask.Add(t[0], t[1], t[2])
	}
	if len(triples) > 0 && configuration.Verbosity > 0 {
		message := fmt.Sprintf("Masking %d pads from configuration", mask.Size())
		logger.Info(message, "padmask")
	}
	return mask
}

func (m *PadMask) Add(roc int, row int, pad int) {
	m.pads[PadCoord{ROC: int32(roc), Row: int32(row), Pad: int32(pad)}] = struct{}{}
}

// Contains reports whether the channel is masked. A nil mask masks
// nothing.
func (m *PadMask) Contains(roc int, row int, pad int) bool {
	if m == nil {
		return false
	}
	_, ok := m.pads[PadCoord{ROC: int32(roc), Row: int32(row), Pad: int32(pad)}]
	return ok
}

// Merge adds all channels of other into m.
func (m *PadMask) Merge(other *PadMask) {
	if other == nil {
		return
	}
	for coord := range other.pads {
		m.pads[coord] = struct{}{}
	}
}

func (m *PadMask) Size() int {
	if m == nil {
		return 0
	}
	return len(m.pads)
}
