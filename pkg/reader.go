package tpc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

var (
	rawHeaderSize = binary.Size(RawEventHeader{})
	rawSampleSize = binary.Size(RawSample{})
)

// FileReader reads raw sample files: a sequence of little-endian packed
// events, each a RawEventHeader followed by NSamples RawSample records.
type FileReader struct {
	File     *os.File
	EvtCount int
}

func NewFileReader(file *os.File) *FileReader {
	return &FileReader{File: file, EvtCount: -1}
}

// CountEvents scans the whole file counting event headers and rewinds to
// the beginning.
func (r *FileReader) CountEvents() (int, error) {
	evtCount := 0
	for {
		header, err := r.readHeader()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		payloadSize := int64(header.NSamples) * int64(rawSampleSize)
		if _, err := r.File.Seek(payloadSize, io.SeekCurrent); err != nil {
			return 0, err
		}
		evtCount++
	}
	// Go back to the beginning of the file
	if _, err := r.File.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return evtCount, nil
}

// NextEvent reads the next event. Returns io.EOF after the last one.
func (r *FileReader) NextEvent() (RawEventHeader, []RawSample, error) {
	header, err := r.readHeader()
	if err != nil {
		return header, nil, err
	}

	payload := make([]byte, int(header.NSamples)*rawSampleSize)
	if _, err := io.ReadFull(r.File, payload); err != nil {
		return header, nil, fmt.Errorf("error reading payload of event %d: %w", header.EventID, err)
	}

	samples := make([]RawSample, header.NSamples)
	payloadReader := bytes.NewReader(payload)
	if err := binary.Read(payloadReader, binary.LittleEndian, &samples); err != nil {
		return header, nil, fmt.Errorf("error decoding samples of event %d: %w", header.EventID, err)
	}

	r.EvtCount++
	return header, samples, nil
}

func (r *FileReader) readHeader() (RawEventHeader, error) {
	var header RawEventHeader
	headerBinary := make([]byte, rawHeaderSize)
	if _, err := io.ReadFull(r.File, headerBinary); err != nil {
		if err == io.ErrUnexpectedEOF {
			return header, fmt.Errorf("truncated event header: %w", err)
		}
		return header, err
	}
	headerReader := bytes.NewReader(headerBinary)
	if err := binary.Read(headerReader, binary.LittleEndian, &header); err != nil {
		return header, err
	}
	return header, nil
}

// WriteRawEvent appends one framed event to w. The header's NSamples
// field is set from the slice length.
func WriteRawEvent(w io.Writer, header RawEventHeader, samples []RawSample) error {
	header.NSamples = uint32(len(samples))
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, samples)
}
