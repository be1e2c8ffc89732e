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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// StopPredicate decides whether the parse should end in front of the element
// whose header was just read. The element's value is not consumed: a
// subsequent parse of the remaining stream starts exactly at its header.
type StopPredicate func(tag DataElementTag, vr *VR, length uint32) bool

// StopBeforePixelData stops in front of (7FE0,0008), (7FE0,0009) or
// (7FE0,0010), leaving the bulk pixel payload unread
func StopBeforePixelData(tag DataElementTag, vr *VR, length uint32) bool {
	switch tag {
	case FloatPixelDataTag, DoubleFloatPixelDataTag, PixelDataTag:
		return true
	default:
		return false
	}
}

// readState carries the per-parse configuration shared by the top-level
// iterator and every nested sequence item iterator
type readState struct {
	logger         *zap.Logger
	deferThreshold int64
	sourcePath     string
	sourceModTime  time.Time
	stop           StopPredicate
}

// dataElementIterator is a pull iterator over the data elements of a single
// data set. Next returns io.EOF at the end of the data set: the byte budget
// for defined-length items, a delimitation item for undefined-length ones,
// end of stream, or the stop predicate firing.
type dataElementIterator struct {
	dr      *dcmReader
	syntax  transferSyntax
	state   *readState
	charset *SpecificCharacterSet

	// limit is the stream position at which this data set ends, or -1 when
	// it is bounded by a delimiter or the end of the stream
	limit int64

	// topLevel enables the stop predicate; nested item iterators never stop
	topLevel bool

	done bool
}

func newDataElementIterator(dr *dcmReader, syntax transferSyntax, state *readState) *dataElementIterator {
	return &dataElementIterator{
		dr:       dr,
		syntax:   syntax,
		state:    state,
		charset:  defaultCharacterSet,
		limit:    -1,
		topLevel: true,
	}
}

// Next returns the next data element of the data set, or io.EOF once the
// data set is exhausted. Sequence elements arrive fully parsed; all other
// elements arrive raw.
func (it *dataElementIterator) Next() (*DataElement, error) {
	if it.done {
		return nil, io.EOF
	}
	if it.limit >= 0 && it.dr.Pos() >= it.limit {
		it.done = true
		return nil, io.EOF
	}

	offset := it.dr.Pos()
	tag, vr, length, headerLen, err := it.peekElementHeader()
	if err == io.EOF {
		it.done = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	switch tag {
	case ItemDelimitationItemTag:
		// ends an undefined length item
		it.warnDelimiterLength(length)
		if err := it.dr.Discard(headerLen); err != nil {
			return nil, err
		}
		it.done = true
		return nil, io.EOF
	case SequenceDelimitationItemTag:
		// a sequence delimiter where an element is expected means the
		// enclosing item had no delimiter of its own; leave it for the
		// sequence reader to consume
		it.done = true
		return nil, io.EOF
	case ItemTag:
		return nil, fmt.Errorf("unexpected item tag at offset %d", offset)
	}

	if it.topLevel && it.state.stop != nil && it.state.stop(tag, vr, length) {
		it.done = true
		return nil, io.EOF
	}

	if err := it.dr.Discard(headerLen); err != nil {
		return nil, err
	}

	element := &DataElement{
		Tag:             tag,
		VR:              vr,
		ValueLength:     length,
		undefinedLength: length == UndefinedLength,
		littleEndian:    it.syntax.order == binary.LittleEndian,
		implicitVR:      it.syntax.implicit,
		offset:          offset,
		charset:         it.charset,
	}

	if err := it.readValue(element); err != nil {
		return nil, fmt.Errorf("element %s at offset %d: %w", tag, offset, err)
	}

	if tag == SpecificCharacterSetTag {
		it.updateCharacterSet(element)
	}
	return element, nil
}

// peekElementHeader parses the next element header without consuming it.
// io.EOF is returned only on a clean end of stream.
func (it *dataElementIterator) peekElementHeader() (tag DataElementTag, vr *VR, length uint32, headerLen int, err error) {
	order := it.syntax.order

	b, err := it.dr.Peek(8)
	if err != nil && len(b) == 0 {
		return 0, nil, 0, 0, io.EOF
	}
	if len(b) < 8 {
		return 0, nil, 0, 0, fmt.Errorf("truncated element header at offset %d: %v", it.dr.Pos(), io.ErrUnexpectedEOF)
	}
	tag = NewDataElementTag(order.Uint16(b[0:2]), order.Uint16(b[2:4]))

	if tag.GroupNumber() == 0xFFFE {
		// delimitation items have no VR, always a 32-bit length
		return tag, nil, order.Uint32(b[4:8]), 8, nil
	}

	if it.syntax.implicit {
		return tag, tag.DictionaryVR(), order.Uint32(b[4:8]), 8, nil
	}

	vr, vrErr := lookupVRByName(string(b[4:6]))
	if vrErr != nil {
		return 0, nil, 0, 0, fmt.Errorf("at offset %d: %v", it.dr.Pos()+4, vrErr)
	}
	if !has32BitLength(vr) {
		return tag, vr, uint32(order.Uint16(b[6:8])), 8, nil
	}

	b, err = it.dr.Peek(12)
	if err != nil || len(b) < 12 {
		return 0, nil, 0, 0, fmt.Errorf("truncated element header at offset %d: %v", it.dr.Pos(), io.ErrUnexpectedEOF)
	}
	return tag, vr, order.Uint32(b[8:12]), 12, nil
}

// readValue consumes the element's value field. Sequences are parsed into a
// *Sequence; everything else is captured (or deferred) as raw bytes.
func (it *dataElementIterator) readValue(element *DataElement) error {
	if element.VR == SQVR {
		return it.readSequenceValue(element, it.syntax)
	}

	if element.undefinedLength {
		if it.looksLikeSequence(element) {
			// an undefined length UN element holds an Implicit VR Little
			// Endian data set per PS3.5 6.2.2
			childSyntax := it.syntax
			if element.VR == UNVR {
				childSyntax = implicitVRLittleEndian
			}
			return it.readSequenceValue(element, childSyntax)
		}
		b, err := it.scanUndefinedLengthValue()
		if err != nil {
			return err
		}
		element.raw = b
		return nil
	}

	if it.shouldDefer(element) {
		element.deferred = &deferredValue{
			path:    it.state.sourcePath,
			offset:  it.dr.Pos(),
			length:  element.ValueLength,
			modTime: it.state.sourceModTime,
			logger:  it.state.logger,
		}
		return it.dr.Skip(int64(element.ValueLength))
	}

	b, err := it.dr.Bytes(int64(element.ValueLength))
	if err != nil {
		return fmt.Errorf("reading %d byte value: %v", element.ValueLength, err)
	}
	element.raw = b
	return nil
}

func (it *dataElementIterator) readSequenceValue(element *DataElement, childSyntax transferSyntax) error {
	seq, err := readSequence(it.dr, childSyntax, element.ValueLength, it.charset, it.state)
	if err != nil {
		return err
	}
	element.value = seq
	element.decoded = true
	return nil
}

func (it *dataElementIterator) shouldDefer(element *DataElement) bool {
	return it.state.deferThreshold > 0 &&
		it.state.sourcePath != "" &&
		int64(element.ValueLength) > it.state.deferThreshold &&
		element.Tag != SpecificCharacterSetTag
}

// looksLikeSequence decides whether an undefined length non-SQ element holds
// a sequence of data set items rather than a delimited byte payload. The
// data dictionary is consulted first; for unknown tags a 4-byte lookahead
// checks for an Item tag, which opens a data set item. Encapsulated pixel
// data also starts with Item tags, but its tags carry a non-SQ dictionary VR
// and never reach the lookahead.
func (it *dataElementIterator) looksLikeSequence(element *DataElement) bool {
	if element.VR != UNVR && !it.syntax.implicit {
		return false
	}
	if dictVR := element.Tag.DictionaryVR(); dictVR != UNVR {
		return dictVR == SQVR
	}

	order := it.syntax.order
	if element.VR == UNVR {
		order = binary.LittleEndian
	}
	b, err := it.dr.Peek(4)
	if err != nil || len(b) < 4 {
		return false
	}
	return NewDataElementTag(order.Uint16(b[0:2]), order.Uint16(b[2:4])) == ItemTag
}

// scanUndefinedLengthValue captures the bytes of an undefined length value up
// to, and excluding, its sequence delimitation item. Encapsulated payloads
// are item structured, so the scan walks item headers; content that is not
// item structured falls back to a byte scan for the delimiter pattern.
func (it *dataElementIterator) scanUndefinedLengthValue() ([]byte, error) {
	order := it.syntax.order
	var buf bytes.Buffer

	for {
		hdr, err := it.dr.Peek(8)
		if err != nil || len(hdr) < 8 {
			return nil, fmt.Errorf("unterminated undefined length value: %v", io.ErrUnexpectedEOF)
		}
		tag := NewDataElementTag(order.Uint16(hdr[0:2]), order.Uint16(hdr[2:4]))
		length := order.Uint32(hdr[4:8])

		switch {
		case tag == SequenceDelimitationItemTag:
			it.warnDelimiterLength(length)
			if err := it.dr.Discard(8); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		case tag == ItemTag && length != UndefinedLength:
			if err := it.dr.Discard(8); err != nil {
				return nil, err
			}
			buf.Write(hdr[:8])
			b, err := it.dr.Bytes(int64(length))
			if err != nil {
				return nil, fmt.Errorf("reading %d byte item fragment: %v", length, err)
			}
			buf.Write(b)
		default:
			return it.scanForSequenceDelimiter(&buf)
		}
	}
}

// scanForSequenceDelimiter consumes bytes into buf until the sequence
// delimitation item is found, which is consumed but not captured. Only the
// 4 tag bytes are matched: a delimiter carrying a malformed non-zero length
// still terminates the value, with a warning.
func (it *dataElementIterator) scanForSequenceDelimiter(buf *bytes.Buffer) ([]byte, error) {
	pattern := make([]byte, 4)
	order := it.syntax.order
	order.PutUint16(pattern[0:2], 0xFFFE)
	order.PutUint16(pattern[2:4], 0xE0DD)

	for {
		window, err := it.dr.Peek(4096)
		if len(window) < 8 {
			return nil, fmt.Errorf("unterminated undefined length value: %v", io.ErrUnexpectedEOF)
		}
		if i := bytes.Index(window, pattern); i >= 0 && i+8 <= len(window) {
			b, err := it.dr.Bytes(int64(i))
			if err != nil {
				return nil, err
			}
			buf.Write(b)
			it.warnDelimiterLength(order.Uint32(window[i+4 : i+8]))
			if err := it.dr.Discard(8); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}
		// keep 7 bytes so a delimiter split across windows is still found
		consume := len(window) - 7
		b, readErr := it.dr.Bytes(int64(consume))
		if readErr != nil {
			return nil, readErr
		}
		buf.Write(b)
		if err != nil {
			// the stream ended inside the final window without a delimiter
			return nil, fmt.Errorf("unterminated undefined length value: %v", io.ErrUnexpectedEOF)
		}
	}
}

// warnDelimiterLength logs delimitation items carrying a non-zero length.
// The length field of a delimiter is defined as zero; reading continues.
func (it *dataElementIterator) warnDelimiterLength(length uint32) {
	if length != 0 {
		it.state.logger.Warn("delimitation item with non-zero length",
			zap.Uint32("length", length))
	}
}

func (it *dataElementIterator) updateCharacterSet(element *DataElement) {
	b, err := element.RawBytes()
	if err != nil {
		return
	}
	terms := splitText(string(b), true)
	cs, err := parseSpecificCharacterSet(terms)
	if err != nil {
		it.state.logger.Warn("unrecognized specific character set term; using default repertoire",
			zap.Strings("terms", terms),
			zap.Error(err))
	}
	it.charset = cs
}
