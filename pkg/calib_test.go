package tpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalibTableGetValue(t *testing.T) {
	table := NewCalibTable("Pedestals")
	table.SetValue(0, 5, 7, 2.5)

	assert.InDelta(t, 2.5, float64(table.GetValue(0, 5, 7)), 1e-6)
	// unknown coordinates default to zero
	assert.Zero(t, table.GetValue(0, 5, 8))
	assert.Equal(t, 1, table.Size())
}

func TestCalibTableNilIsZero(t *testing.T) {
	var table *CalibTable
	assert.Zero(t, table.GetValue(0, 0, 0))
	assert.Equal(t, 0, table.Size())
}

func TestCalibPadsAbsentTables(t *testing.T) {
	// no tables loaded: every lookup is a zero baseline
	calib := &CalibPads{}
	assert.Zero(t, calib.Pedestal(0, 0, 0))
	assert.Zero(t, calib.NoiseValue(71, 88, 100))

	var nilCalib *CalibPads
	assert.Zero(t, nilCalib.Pedestal(0, 0, 0))
}

func TestLoadCalibPadsEmptyPathWarns(t *testing.T) {
	recorder := &recordingLogger{}
	SetLogger(recorder)
	defer SetLogger(&recordingLogger{})

	calib, err := LoadCalibPads("")
	require.NoError(t, err)
	require.NotNil(t, calib)
	assert.Nil(t, calib.Pedestals)
	assert.Nil(t, calib.Noise)
	require.Len(t, recorder.warnings, 1)
	assert.Contains(t, recorder.warnings[0], "No pedestal and noise file name set")
}

func TestLoadCalibPadsMissingFileFails(t *testing.T) {
	calib, err := LoadCalibPads("/nonexistent/pedestals.h5")
	require.Error(t, err)
	assert.Nil(t, calib)

	var openErr *ErrOpenFile
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, "/nonexistent/pedestals.h5", openErr.Filename)
}
