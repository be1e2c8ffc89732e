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
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// DataElement models a DICOM Data Element as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
//
// An element read from a stream starts out raw: the undecoded payload bytes
// are held (or, for deferred elements, their file location) and the typed
// value is materialized by Value on first access, exactly once. The raw bytes
// are retained after materialization so an unmodified element reproduces its
// exact original bytes on write; SetValue discards them.
type DataElement struct {
	Tag DataElementTag

	// VR is the Value Representation. May be a dictionary-ambiguous VR
	// (e.g. "US or SS") for elements read under implicit VR.
	VR *VR

	// ValueLength is the value length in bytes as declared in the stream,
	// possibly UndefinedLength. For constructed elements it is computed at
	// write time.
	ValueLength uint32

	undefinedLength bool
	littleEndian    bool
	implicitVR      bool
	offset          int64

	raw      []byte
	deferred *deferredValue
	charset  *SpecificCharacterSet

	value   interface{}
	decoded bool
}

// NewDataElement returns a decoded element holding the given value. A nil vr
// is filled in from the data dictionary. Accepted value types mirror the
// types produced by Value: []string, []PersonName, []IntegerString,
// []DecimalString, numeric slices, []byte, []DataElementTag and *Sequence.
func NewDataElement(tag DataElementTag, vr *VR, value interface{}) *DataElement {
	if vr == nil {
		vr = tag.DictionaryVR()
	}
	return &DataElement{
		Tag:          tag,
		VR:           vr,
		littleEndian: true,
		value:        value,
		decoded:      true,
	}
}

// Offset returns the position of the element's header in the stream it was
// read from. Diagnostics only.
func (e *DataElement) Offset() int64 {
	return e.offset
}

// IsUndefinedLength reports whether the element was encoded with the
// undefined length sentinel and a closing delimiter
func (e *DataElement) IsUndefinedLength() bool {
	return e.undefinedLength
}

// IsDecoded reports whether the typed value has been materialized. A freshly
// read element is raw; the transition to decoded happens on the first Value
// call and is never reversed.
func (e *DataElement) IsDecoded() bool {
	return e.decoded
}

// IsDeferred reports whether the payload bytes were left on disk at read
// time and will be reloaded on access
func (e *DataElement) IsDeferred() bool {
	return e.deferred != nil && e.raw == nil
}

// RawBytes returns the undecoded payload bytes, reloading them from the
// source file for deferred elements. Returns nil for elements constructed
// from values (no original bytes exist).
func (e *DataElement) RawBytes() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}
	if e.deferred == nil {
		return nil, nil
	}
	b, err := e.deferred.load()
	if err != nil {
		return nil, fmt.Errorf("element %s: %w", e.Tag, err)
	}
	e.raw = b
	return b, nil
}

// Value materializes and returns the element's typed value. The conversion
// runs once; repeated calls return the memoized value without re-parsing.
func (e *DataElement) Value() (interface{}, error) {
	if e.decoded {
		return e.value, nil
	}

	b, err := e.RawBytes()
	if err != nil {
		return nil, err
	}
	order := e.byteOrder()
	cs := e.charset
	if cs == nil {
		cs = defaultCharacterSet
	}
	v, err := convertValue(e.VR, b, order, cs)
	if err != nil {
		return nil, fmt.Errorf("element %s: %v", e.Tag, err)
	}

	e.value = v
	e.decoded = true
	return v, nil
}

// SetValue replaces the element's value and invalidates the original bytes:
// the next write re-encodes from the new value.
func (e *DataElement) SetValue(v interface{}) {
	e.value = v
	e.decoded = true
	e.raw = nil
	e.deferred = nil
	if _, ok := v.(*Sequence); !ok {
		e.undefinedLength = false
		e.ValueLength = 0
	}
}

// StringValue returns the element's value as a single string. It fails when
// the value is not text-like or holds more than one value.
func (e *DataElement) StringValue() (string, error) {
	v, err := e.Value()
	if err != nil {
		return "", err
	}
	strs, ok := v.([]string)
	if !ok {
		return "", fmt.Errorf("element %s: expected string value, got %T", e.Tag, v)
	}
	if len(strs) != 1 {
		return "", fmt.Errorf("element %s: expected exactly 1 value, got %d", e.Tag, len(strs))
	}
	return strs[0], nil
}

// firstUint16 returns the first value of a 16-bit numeric element. Used by
// the ambiguous VR resolver, which needs sibling values such as
// BitsAllocated before VRs are final; elements still carrying an ambiguous
// VR are read directly from their raw bytes.
func (e *DataElement) firstUint16() (uint16, bool) {
	if e.decoded {
		switch v := e.value.(type) {
		case []uint16:
			if len(v) > 0 {
				return v[0], true
			}
		case []int16:
			if len(v) > 0 {
				return uint16(v[0]), true
			}
		}
	}
	b, err := e.RawBytes()
	if err != nil || len(b) < 2 {
		return 0, false
	}
	return e.byteOrder().Uint16(b[:2]), true
}

func (e *DataElement) byteOrder() binary.ByteOrder {
	if e.littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// rawValidFor reports whether the retained raw bytes can be emitted verbatim
// in the given byte order. Text and single-byte payloads are order
// insensitive; multi-byte numeric payloads require a matching order.
func (e *DataElement) rawValidFor(order binary.ByteOrder) bool {
	if e.raw == nil && e.deferred == nil {
		return false
	}
	if e.byteOrder() == order {
		return true
	}
	switch e.VR.kind {
	case textVR, uniqueIdentifierVR:
		return true
	}
	switch e.VR {
	case OBVR, UNVR:
		return true
	}
	return false
}

func (e *DataElement) String() string {
	name := "?"
	if kw := e.Tag.Keyword(); kw != "" {
		name = kw
	}
	return fmt.Sprintf("%s %s %s", e.Tag, e.VR, name)
}

// deferredValue records where a skipped payload lives so it can be reloaded
// on demand. The modification time taken at read time detects (but does not
// reject) sources that changed in the meantime.
type deferredValue struct {
	path    string
	offset  int64
	length  uint32
	modTime time.Time
	logger  *zap.Logger
}

func (d *deferredValue) load() ([]byte, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeferredSource, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && !info.ModTime().Equal(d.modTime) {
		// stale data is preferred over failing an interactive caller
		d.logger.Warn("deferred value source changed since read; returned data may be stale",
			zap.String("path", d.path),
			zap.Time("readAt", d.modTime),
			zap.Time("now", info.ModTime()))
	}

	if _, err := f.Seek(d.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking to %d: %v", ErrDeferredSource, d.offset, err)
	}
	b := make([]byte, d.length)
	if _, err := io.ReadFull(f, b); err != nil {
		return nil, fmt.Errorf("%w: reading %d bytes at %d: %v", ErrDeferredSource, d.length, d.offset, err)
	}
	return b, nil
}
