package tpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, params FilterParams) *DigitDump {
	t.Helper()
	dump := NewDigitDump(params, NewGeometry())
	dump.SetCalibPads(&CalibPads{})
	dump.SetInMemoryOnly(true)
	return dump
}

func TestSessionFilterAndEndEvent(t *testing.T) {
	dump := newTestSession(t, testParams())
	dump.SetDuplicateCheck(true, true)

	samples := []RawSample{
		{CRU: 0, Row: 2, Pad: 3, TimeBin: 5, Signal: 10},
		{CRU: 0, Row: 1, Pad: 1, TimeBin: 3, Signal: 5},
		{CRU: 0, Row: 2, Pad: 3, TimeBin: 5, Signal: 9},
		{CRU: 0, Row: 0, Pad: 0, TimeBin: 500, Signal: 50}, // out of window
	}
	for _, s := range samples {
		_, err := dump.Update(CRU(s.CRU), int(s.Row), int(s.Pad), int(s.TimeBin), s.Signal)
		require.NoError(t, err)
	}

	event, err := dump.EndEvent(1, 12345)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), event.EventID)
	assert.Equal(t, uint64(12345), event.Timestamp)

	digits := event.Digits[0]
	require.Len(t, digits, 2)
	assert.Equal(t, Digit{TimeBin: 3, Row: 1, Pad: 1, Charge: 5}, digits[0])
	assert.Equal(t, Digit{TimeBin: 5, Row: 2, Pad: 3, Charge: 10}, digits[1])
	assert.Equal(t, 1, event.Duplicates.PerSector[0])

	counts := dump.DecisionCounts()
	assert.Equal(t, int64(3), counts[Accept])
	assert.Equal(t, int64(1), counts[RejectTimeWindow])

	// the store is cleared for the next event
	next, err := dump.EndEvent(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, next.Total())
	assert.Equal(t, 2, dump.EventCount())
}

func TestSessionLazyInit(t *testing.T) {
	dump := newTestSession(t, testParams())
	assert.Equal(t, StateUninitialized, dump.State())

	// an out-of-window sample is rejected before any initialization
	decision, err := dump.Update(0, 0, 0, 1000, 50)
	require.NoError(t, err)
	assert.Equal(t, RejectTimeWindow, decision)
	assert.Equal(t, StateUninitialized, dump.State())

	decision, err = dump.Update(0, 0, 0, 5, 50)
	require.NoError(t, err)
	assert.Equal(t, Accept, decision)
	assert.Equal(t, StateReady, dump.State())
}

func TestSessionInitIsIdempotent(t *testing.T) {
	dump := newTestSession(t, testParams())
	require.NoError(t, dump.Init())
	require.NoError(t, dump.Init())
	assert.Equal(t, StateReady, dump.State())
}

func TestSessionSnapshotIsDetached(t *testing.T) {
	dump := newTestSession(t, testParams())

	_, err := dump.Update(0, 2, 3, 5, 10)
	require.NoError(t, err)
	first, err := dump.EndEvent(1, 0)
	require.NoError(t, err)

	_, err = dump.Update(0, 4, 4, 7, 20)
	require.NoError(t, err)
	_, err = dump.EndEvent(2, 0)
	require.NoError(t, err)

	// the first snapshot is unaffected by later events
	require.Len(t, first.Digits[0], 1)
	assert.Equal(t, 5, first.Digits[0][0].TimeBin)
}

func TestSessionClosed(t *testing.T) {
	dump := newTestSession(t, testParams())
	require.NoError(t, dump.Init())
	require.NoError(t, dump.Close())
	assert.Equal(t, StateClosed, dump.State())

	// closing twice is fine
	require.NoError(t, dump.Close())

	_, err := dump.Update(0, 0, 0, 5, 50)
	assert.Error(t, err)
	_, err = dump.EndEvent(1, 0)
	assert.Error(t, err)
}

func TestSessionFatalOnBadCalibFile(t *testing.T) {
	params := testParams()
	params.PedestalAndNoiseFile = "/nonexistent/pedestals.h5"
	dump := NewDigitDump(params, NewGeometry())
	dump.SetInMemoryOnly(true)

	_, err := dump.Update(0, 0, 0, 5, 50)
	require.Error(t, err)

	var openErr *ErrOpenFile
	assert.ErrorAs(t, err, &openErr)
}

func TestSessionReportOnlyKeepsDuplicates(t *testing.T) {
	dump := newTestSession(t, testParams())
	dump.SetDuplicateCheck(true, false)

	_, err := dump.Update(0, 2, 3, 5, 10)
	require.NoError(t, err)
	_, err = dump.Update(0, 2, 3, 5, 9)
	require.NoError(t, err)

	event, err := dump.EndEvent(1, 0)
	require.NoError(t, err)
	assert.Len(t, event.Digits[0], 2)
	assert.Equal(t, 1, event.Duplicates.PerSector[0])
}
