package tpc

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// PadCoord addresses one pad inside a readout chamber.
type PadCoord struct {
	ROC int32
	Row int32
	Pad int32
}

type CalPadEntryHDF5 struct {
	roc   int32
	row   int32
	pad   int32
	value float32
}

// CalibTable is a read-only per-pad table of float values keyed on
// (roc, row, pad). A nil table is valid and returns 0 for every pad.
type CalibTable struct {
	Name   string
	values map[PadCoord]float32
}

func NewCalibTable(name string) *CalibTable {
	return &CalibTable{
		Name:   name,
		values: make(map[PadCoord]float32),
	}
}

func (t *CalibTable) SetValue(roc int, row int, pad int, value float32) {
	t.values[PadCoord{ROC: int32(roc), Row: int32(row), Pad: int32(pad)}] = value
}

// GetValue returns the stored value, or 0 if the table is absent or the
// pad is unknown.
func (t *CalibTable) GetValue(roc int, row int, pad int) float32 {
	if t == nil {
		return 0
	}
	return t.values[PadCoord{ROC: int32(roc), Row: int32(row), Pad: int32(pad)}]
}

func (t *CalibTable) Size() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// CalibPads holds the pedestal and noise baselines of one session. Both
// tables may be nil when no calibration file was requested.
type CalibPads struct {
	Pedestals *CalibTable
	Noise     *CalibTable
}

func (c *CalibPads) Pedestal(roc int, row int, pad int) float32 {
	if c == nil {
		return 0
	}
	return c.Pedestals.GetValue(roc, row, pad)
}

func (c *CalibPads) NoiseValue(roc int, row int, pad int) float32 {
	if c == nil {
		return 0
	}
	return c.Noise.GetValue(roc, row, pad)
}

// LoadCalibPads reads the "Pedestals" and "Noise" tables from an HDF5
// file. An empty path is a legitimate operating mode (first-pass raw
// dumps run without baselines) and yields empty tables; a non-empty path
// that cannot be read is a misconfiguration and fails hard.
func LoadCalibPads(path string) (*CalibPads, error) {
	if len(path) == 0 {
		logger.Warning("No pedestal and noise file name set", "calib")
		return &CalibPads{}, nil
	}

	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: path, Err: err}
	}
	defer f.Close()

	pedestals, err := readCalibTable(f, "Pedestals")
	if err != nil {
		return nil, err
	}
	noise, err := readCalibTable(f, "Noise")
	if err != nil {
		return nil, err
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Loaded %d pedestal and %d noise values from %s",
			pedestals.Size(), noise.Size(), path)
		logger.Info(message, "calib")
	}
	return &CalibPads{Pedestals: pedestals, Noise: noise}, nil
}

func readCalibTable(f *hdf5.File, name string) (*CalibTable, error) {
	dset, err := f.OpenDataset(name)
	if err != nil {
		return nil, &ErrMissingTable{TableName: name, Err: err}
	}
	defer dset.Close()

	space := dset.Space()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, &ErrMissingTable{TableName: name, Err: err}
	}
	space.Close()

	entries := make([]CalPadEntryHDF5, dims[0])
	if err := dset.Read(&entries); err != nil {
		return nil, &ErrMissingTable{TableName: name, Err: err}
	}

	table := NewCalibTable(name)
	for _, entry := range entries {
		table.SetValue(int(entry.roc), int(entry.row), int(entry.pad), entry.value)
	}
	return table, nil
}
