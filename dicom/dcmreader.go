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
	"bufio"
	"encoding/binary"
	"io"
)

// dcmReader is a wrapper around io.Reader, providing convenience methods for
// parsing tags, numbers and strings. It tracks the absolute position in the
// stream and supports peeking, which lets the element iterator stop before
// an element without consuming its header.
type dcmReader struct {
	br  *bufio.Reader
	pos int64
}

func newDcmReader(r io.Reader) *dcmReader {
	return &dcmReader{br: bufio.NewReaderSize(r, 8192)}
}

// Read implements io.Reader so a dcmReader can feed a decompressor
func (dr *dcmReader) Read(p []byte) (int, error) {
	n, err := dr.br.Read(p)
	dr.pos += int64(n)
	return n, err
}

// Pos returns the number of bytes consumed from the underlying stream
func (dr *dcmReader) Pos() int64 {
	return dr.pos
}

// Peek returns the next n bytes without advancing the stream. At end of
// stream fewer than n bytes are returned together with the buffered error.
func (dr *dcmReader) Peek(n int) ([]byte, error) {
	return dr.br.Peek(n)
}

// Discard advances the stream by n bytes
func (dr *dcmReader) Discard(n int) error {
	discarded, err := dr.br.Discard(n)
	dr.pos += int64(discarded)
	return err
}

// Skip advances the input stream by n bytes
func (dr *dcmReader) Skip(n int64) error {
	for n > 0 {
		step := n
		if step > 1<<30 {
			step = 1 << 30
		}
		discarded, err := dr.br.Discard(int(step))
		dr.pos += int64(discarded)
		if err != nil {
			return err
		}
		n -= step
	}
	return nil
}

// Bytes returns a byte array of size n from the input stream. io.EOF is
// returned only when no bytes were available; a partial read surfaces
// io.ErrUnexpectedEOF.
func (dr *dcmReader) Bytes(n int64) ([]byte, error) {
	b := make([]byte, n)
	gotN, err := io.ReadFull(dr.br, b)
	dr.pos += int64(gotN)
	if err != nil {
		return b[:gotN], err
	}
	return b, nil
}

// String returns a string of length n from the input stream
func (dr *dcmReader) String(n int64) (string, error) {
	b, err := dr.Bytes(n)
	return string(b), err
}

// UInt16 returns a uint16 from the input stream
func (dr *dcmReader) UInt16(order binary.ByteOrder) (uint16, error) {
	b, err := dr.Bytes(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

// UInt32 returns a uint32 from the input stream
func (dr *dcmReader) UInt32(order binary.ByteOrder) (uint32, error) {
	b, err := dr.Bytes(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// Tag returns a DataElementTag from the input stream
func (dr *dcmReader) Tag(order binary.ByteOrder) (DataElementTag, error) {
	group, err := dr.UInt16(order)
	if err != nil {
		return 0, err
	}
	element, err := dr.UInt16(order)
	if err != nil {
		return 0, err
	}

	return NewDataElementTag(group, element), nil
}
