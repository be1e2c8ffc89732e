// Copyright 2026 the dcmio authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"compress/flate"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

const (
	preambleSize = 128
	magicWord    = "DICM"
)

// File is a parsed DICOM Part 10 stream: the optional preamble, the file
// meta group, and the main data set. Headerless DIMSE dumps additionally
// carry a command set (group 0000).
//
// The ImplicitVR, LittleEndian and Deflated flags are authoritative for the
// data set encoding on write; TransferSyntaxUID is kept alongside so that
// encapsulated syntaxes, which share Explicit VR Little Endian framing,
// round-trip their UID.
type File struct {
	// Preamble holds the 128 byte preamble, or nil when the stream had none
	Preamble []byte

	// Meta is the file meta group (0002), or nil
	Meta *DataSet

	// CommandSet holds group 0000 elements, present only in DIMSE dumps
	// read with ReadOptions.Force
	CommandSet *DataSet

	// DataSet is the main data set
	DataSet *DataSet

	TransferSyntaxUID string
	ImplicitVR        bool
	LittleEndian      bool
	Deflated          bool

	hasPreamble bool
	hasMeta     bool
}

// NewFile returns a File around the given data set, set up for a conformant
// Explicit VR Little Endian write
func NewFile(ds *DataSet) *File {
	if ds == nil {
		ds = NewDataSet()
	}
	return &File{
		DataSet:           ds,
		TransferSyntaxUID: ExplicitVRLittleEndianUID,
		LittleEndian:      true,
		hasPreamble:       true,
		hasMeta:           true,
	}
}

// ReadFile parses the DICOM file at path. Unlike Read it supports
// ReadOptions.DeferSizeThreshold, leaving large payloads on disk until
// accessed.
func ReadFile(path string, opts ReadOptions) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	state := &readState{
		logger:         opts.logger(),
		deferThreshold: opts.DeferSizeThreshold,
		stop:           opts.stopPredicate(),
	}
	if opts.DeferSizeThreshold > 0 {
		if info, err := f.Stat(); err == nil {
			state.sourcePath = path
			state.sourceModTime = info.ModTime()
		}
	}
	file, err := read(newDcmReader(f), state, opts)
	if err != nil {
		return file, fmt.Errorf("reading %s: %w", path, err)
	}
	return file, nil
}

// Read parses a DICOM Part 10 stream. Streams without the DICM marker are
// rejected with ErrNotDICOM unless ReadOptions.Force is set, in which case
// the stream is parsed as a bare data set.
func Read(r io.Reader, opts ReadOptions) (*File, error) {
	state := &readState{
		logger: opts.logger(),
		stop:   opts.stopPredicate(),
	}
	return read(newDcmReader(r), state, opts)
}

func read(dr *dcmReader, state *readState, opts ReadOptions) (*File, error) {
	file := &File{LittleEndian: true}

	if err := readHeader(dr, file, opts); err != nil {
		return nil, err
	}

	if file.hasMeta || peekMetaGroup(dr) {
		meta, err := readFileMeta(dr, state)
		if err != nil {
			file.Meta = meta
			return file, err
		}
		if meta.Len() > 0 {
			file.Meta = meta
			file.hasMeta = true
		}
	}

	uid := transferSyntaxFromMeta(file.Meta)
	if uid == "" {
		uid = sniffTransferSyntax(dr)
		state.logger.Warn("transfer syntax UID not declared; guessing from element framing",
			zap.String("guessed", uid))
	}
	syntax := lookupTransferSyntax(uid)
	file.TransferSyntaxUID = uid
	file.ImplicitVR = syntax.implicit
	file.LittleEndian = syntax.order == binary.LittleEndian
	file.Deflated = syntax.deflated

	if syntax.deflated {
		// positions in the inflated stream do not map back to file offsets,
		// so deferred loading is unavailable
		state.sourcePath = ""
		dr = newDcmReader(flate.NewReader(dr))
		syntax = explicitVRLittleEndian
	}

	it := newDataElementIterator(dr, syntax, state)
	ds, err := collectDataSet(it)
	file.DataSet = ds
	splitCommandSet(file)
	if err != nil {
		return file, err
	}
	return file, nil
}

// readHeader consumes the preamble and DICM marker when present. Without the
// marker the stream is only readable under ReadOptions.Force.
func readHeader(dr *dcmReader, file *File, opts ReadOptions) error {
	b, _ := dr.Peek(preambleSize + 4)
	switch {
	case len(b) >= preambleSize+4 && string(b[preambleSize:preambleSize+4]) == magicWord:
		file.Preamble = append([]byte{}, b[:preambleSize]...)
		file.hasPreamble = true
		file.hasMeta = true
		return dr.Discard(preambleSize + 4)
	case len(b) >= 4 && string(b[:4]) == magicWord:
		file.hasMeta = true
		return dr.Discard(4)
	default:
		if !opts.Force {
			return ErrNotDICOM
		}
		return nil
	}
}

func peekMetaGroup(dr *dcmReader) bool {
	b, err := dr.Peek(2)
	if err != nil || len(b) < 2 {
		return false
	}
	return binary.LittleEndian.Uint16(b) == 0x0002
}

func transferSyntaxFromMeta(meta *DataSet) string {
	if meta == nil {
		return ""
	}
	element := meta.Get(TransferSyntaxUIDTag)
	if element == nil {
		return ""
	}
	uid, err := element.StringValue()
	if err != nil {
		return ""
	}
	return uid
}

// sniffTransferSyntax guesses the framing of an undeclared stream from its
// first element header: two uppercase VR characters at offset 4 indicate
// Explicit VR Little Endian, anything else Implicit VR Little Endian
func sniffTransferSyntax(dr *dcmReader) string {
	b, err := dr.Peek(6)
	if err == nil && len(b) >= 6 {
		if _, vrErr := lookupVRByName(string(b[4:6])); vrErr == nil {
			return ExplicitVRLittleEndianUID
		}
	}
	return ImplicitVRLittleEndianUID
}

// splitCommandSet moves group 0000 elements out of the main data set.
// They only occur in headerless DIMSE dumps.
func splitCommandSet(file *File) {
	if file.DataSet == nil {
		return
	}
	for tag, element := range file.DataSet.Elements {
		if !tag.IsCommandElement() {
			continue
		}
		if file.CommandSet == nil {
			file.CommandSet = NewDataSet()
		}
		file.CommandSet.Add(element)
		file.DataSet.Delete(tag)
	}
}

// WriteFile writes the file to path. See Write.
func (f *File) WriteFile(path string, opts WriteOptions) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Write(out, opts); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return out.Close()
}

// Write serializes the file. By default the output is a conformant Part 10
// stream: preamble, DICM marker and a completed file meta group are written
// regardless of how the file was read. WriteOptions.WriteLikeOriginal
// preserves the original framing instead.
//
// Ambiguous VRs are resolved in a pre-pass; any that remain unresolved fail
// the write when the target syntax is explicit VR.
func (f *File) Write(w io.Writer, opts WriteOptions) error {
	syntax, err := f.resolveSyntax()
	if err != nil {
		return err
	}
	if f.DataSet != nil {
		ResolveAmbiguousVRs(f.DataSet, syntax.implicit)
	}

	dw := &dcmWriter{w}
	if err := f.writeHeaderAndMeta(dw, syntax, opts); err != nil {
		return err
	}

	bodyWriter := dw
	var deflater *flate.Writer
	if syntax.deflated {
		deflater, err = flate.NewWriter(w, flate.DefaultCompression)
		if err != nil {
			return err
		}
		bodyWriter = &dcmWriter{deflater}
		syntax = explicitVRLittleEndian
	}

	if f.CommandSet != nil && f.CommandSet.Len() > 0 {
		// command sets are always Implicit VR Little Endian (PS3.7 6.3.1)
		if err := writeDataSet(bodyWriter, f.CommandSet, implicitVRLittleEndian); err != nil {
			return err
		}
	}
	if f.DataSet != nil {
		if err := writeDataSet(bodyWriter, f.DataSet, syntax); err != nil {
			return err
		}
	}

	if deflater != nil {
		return deflater.Close()
	}
	return nil
}

func (f *File) writeHeaderAndMeta(dw *dcmWriter, syntax transferSyntax, opts WriteOptions) error {
	// a stream can carry the DICM marker without the 128 byte preamble;
	// WriteLikeOriginal reproduces exactly the framing that was read
	writePreamble := !opts.WriteLikeOriginal || f.hasPreamble
	writeMarker := writePreamble || f.hasMeta

	if writePreamble {
		preamble := f.Preamble
		if len(preamble) != preambleSize {
			preamble = make([]byte, preambleSize)
		}
		if err := dw.Bytes(preamble); err != nil {
			return err
		}
	}
	if writeMarker {
		if err := dw.String(magicWord); err != nil {
			return err
		}
	}

	if opts.WriteLikeOriginal {
		if f.hasMeta && f.Meta != nil {
			return writeFileMeta(dw, f.Meta)
		}
		return nil
	}

	meta, err := completeFileMeta(f.Meta, f.DataSet, syntax.uid)
	if err != nil {
		return err
	}
	return writeFileMeta(dw, meta)
}

// resolveSyntax derives the write-time transfer syntax from the encoding
// flags. The declared UID is kept when its framing agrees with the flags, so
// encapsulated syntaxes survive a round trip; otherwise the flags win.
func (f *File) resolveSyntax() (transferSyntax, error) {
	if f.TransferSyntaxUID != "" {
		ts := lookupTransferSyntax(f.TransferSyntaxUID)
		if ts.implicit == f.ImplicitVR &&
			(ts.order == binary.ByteOrder(binary.LittleEndian)) == f.LittleEndian &&
			ts.deflated == f.Deflated {
			return ts, nil
		}
	}
	return syntaxForEncoding(f.ImplicitVR, f.LittleEndian, f.Deflated)
}
