package tpc

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestRawFile(t *testing.T, events []struct {
	Header  RawEventHeader
	Samples []RawSample
}) *os.File {
	t.Helper()
	name := filepath.Join(t.TempDir(), "raw.bin")
	f, err := os.Create(name)
	require.NoError(t, err)
	for _, evt := range events {
		require.NoError(t, WriteRawEvent(f, evt.Header, evt.Samples))
	}
	require.NoError(t, f.Close())

	file, err := os.Open(name)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file
}

func TestFileReaderRoundTrip(t *testing.T) {
	events := []struct {
		Header  RawEventHeader
		Samples []RawSample
	}{
		{
			Header: RawEventHeader{EventID: 1, Timestamp: 1000},
			Samples: []RawSample{
				{CRU: 0, Row: 2, Pad: 3, TimeBin: 5, Signal: 12.5},
				{CRU: 42, Row: 0, Pad: 1, TimeBin: 7, Signal: -3.0},
			},
		},
		{
			Header:  RawEventHeader{EventID: 2, Timestamp: 2000},
			Samples: nil,
		},
	}
	file := writeTestRawFile(t, events)
	reader := NewFileReader(file)

	count, err := reader.CountEvents()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	header, samples, err := reader.NextEvent()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), header.EventID)
	assert.Equal(t, uint64(1000), header.Timestamp)
	require.Len(t, samples, 2)
	assert.Equal(t, RawSample{CRU: 0, Row: 2, Pad: 3, TimeBin: 5, Signal: 12.5}, samples[0])
	assert.Equal(t, RawSample{CRU: 42, Row: 0, Pad: 1, TimeBin: 7, Signal: -3.0}, samples[1])

	header, samples, err = reader.NextEvent()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), header.EventID)
	assert.Empty(t, samples)

	_, _, err = reader.NextEvent()
	assert.Equal(t, io.EOF, err)
}

func TestFileReaderTruncatedPayload(t *testing.T) {
	file := writeTestRawFile(t, []struct {
		Header  RawEventHeader
		Samples []RawSample
	}{
		{
			Header:  RawEventHeader{EventID: 1},
			Samples: []RawSample{{CRU: 0, TimeBin: 1, Signal: 1}},
		},
	})

	// chop off the last bytes of the sample payload
	info, err := file.Stat()
	require.NoError(t, err)
	require.NoError(t, os.Truncate(file.Name(), info.Size()-4))

	reader := NewFileReader(file)
	_, _, err = reader.NextEvent()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}
