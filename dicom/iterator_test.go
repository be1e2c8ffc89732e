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
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testIterator(b []byte, syntax transferSyntax) *dataElementIterator {
	return newDataElementIterator(newDcmReader(bytes.NewReader(b)), syntax, &readState{logger: zap.NewNop()})
}

func TestIterator_explicitLittleEndian(t *testing.T) {
	in := []byte{
		0x08, 0x00, 0x60, 0x00, // (0008,0060) Modality
		'C', 'S', // VR
		0x02, 0x00, // 16-bit length: 2
		'M', 'R',
	}
	it := testIterator(in, explicitVRLittleEndian)

	element, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, DataElementTag(0x00080060), element.Tag)
	assert.Equal(t, CSVR, element.VR)
	assert.Equal(t, uint32(2), element.ValueLength)
	assert.Equal(t, int64(0), element.Offset())
	assert.False(t, element.IsDecoded())

	raw, err := element.RawBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("MR"), raw)

	_, err = it.Next()
	assert.Equal(t, io.EOF, err)
}

func TestIterator_explicitLongForm(t *testing.T) {
	in := []byte{
		0xE0, 0x7F, 0x10, 0x00, // (7FE0,0010) PixelData
		'O', 'B', // VR
		0x00, 0x00, // reserved
		0x04, 0x00, 0x00, 0x00, // 32-bit length: 4
		0x01, 0x02, 0x03, 0x04,
	}
	it := testIterator(in, explicitVRLittleEndian)

	element, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, PixelDataTag, element.Tag)
	assert.Equal(t, OBVR, element.VR)
	raw, err := element.RawBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, raw)
}

func TestIterator_implicitUsesDictionaryVR(t *testing.T) {
	in := []byte{
		0x10, 0x00, 0x10, 0x00, // (0010,0010) PatientName
		0x08, 0x00, 0x00, 0x00, // 32-bit length: 8
		'D', 'o', 'e', '^', 'J', 'o', 'h', 'n',
		0x28, 0x00, 0x03, 0x01, // (0028,0103) PixelRepresentation
		0x02, 0x00, 0x00, 0x00, // length: 2
		0x00, 0x00,
	}
	it := testIterator(in, implicitVRLittleEndian)

	element, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, PNVR, element.VR)

	// ambiguous dictionary VRs survive an implicit read unresolved
	element, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, USorSSVR, element.VR)
}

func TestIterator_explicitBigEndian(t *testing.T) {
	in := []byte{
		0x00, 0x28, 0x00, 0x10, // (0028,0010) Rows
		'U', 'S',
		0x00, 0x02, // length: 2
		0x02, 0x00, // 512 big endian
	}
	it := testIterator(in, explicitVRBigEndian)

	element, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, RowsTag, element.Tag)
	v, err := element.Value()
	require.NoError(t, err)
	assert.Equal(t, []uint16{512}, v)
}

func TestIterator_unknownExplicitVR(t *testing.T) {
	in := []byte{
		0x08, 0x00, 0x60, 0x00,
		'Q', 'Q', // not a VR
		0x00, 0x00,
	}
	it := testIterator(in, explicitVRLittleEndian)
	_, err := it.Next()
	assert.Error(t, err)
}

func TestIterator_truncatedValue(t *testing.T) {
	in := []byte{
		0x08, 0x00, 0x60, 0x00,
		'C', 'S',
		0x08, 0x00, // claims 8 bytes
		'M', 'R', // only 2 present
	}
	it := testIterator(in, explicitVRLittleEndian)
	_, err := it.Next()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}

func TestIterator_stopPredicateLeavesHeaderUnread(t *testing.T) {
	in := []byte{
		0x28, 0x00, 0x10, 0x00, // (0028,0010) Rows
		'U', 'S',
		0x02, 0x00,
		0x00, 0x02,
		0xE0, 0x7F, 0x10, 0x00, // (7FE0,0010) PixelData
		'O', 'W',
		0x00, 0x00,
		0x04, 0x00, 0x00, 0x00,
		0x01, 0x02, 0x03, 0x04,
	}
	dr := newDcmReader(bytes.NewReader(in))
	it := newDataElementIterator(dr, explicitVRLittleEndian, &readState{
		logger: zap.NewNop(),
		stop:   StopBeforePixelData,
	})

	element, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, RowsTag, element.Tag)

	_, err = it.Next()
	assert.Equal(t, io.EOF, err)

	// the pixel data header must still be in the stream, byte for byte
	rest, err := dr.Bytes(int64(len(in)) - dr.Pos())
	require.NoError(t, err)
	assert.Equal(t, in[10:], rest)
}

func TestIterator_charsetAppliesToFollowingElements(t *testing.T) {
	in := []byte{
		0x08, 0x00, 0x05, 0x00, // (0008,0005) SpecificCharacterSet
		'C', 'S',
		0x0A, 0x00,
		'I', 'S', 'O', '_', 'I', 'R', ' ', '1', '0', '0',
		0x10, 0x00, 0x10, 0x00, // (0010,0010) PatientName
		'P', 'N',
		0x08, 0x00,
		'M', 0xFC, 'l', 'l', 'e', 'r', '^', 'A',
	}
	it := testIterator(in, explicitVRLittleEndian)

	_, err := it.Next()
	require.NoError(t, err)

	element, err := it.Next()
	require.NoError(t, err)
	v, err := element.Value()
	require.NoError(t, err)
	assert.Equal(t, []PersonName{{Alphabetic: "Müller^A"}}, v)
}

func TestIterator_encapsulatedPixelData(t *testing.T) {
	in := []byte{
		0xE0, 0x7F, 0x10, 0x00, // (7FE0,0010) PixelData
		'O', 'B',
		0x00, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF, // undefined length
		0xFE, 0xFF, 0x00, 0xE0, // item: basic offset table
		0x00, 0x00, 0x00, 0x00, // empty
		0xFE, 0xFF, 0x00, 0xE0, // item: fragment
		0x04, 0x00, 0x00, 0x00,
		0xAA, 0xBB, 0xCC, 0xDD,
		0xFE, 0xFF, 0xDD, 0xE0, // sequence delimitation item
		0x00, 0x00, 0x00, 0x00,
	}
	it := testIterator(in, explicitVRLittleEndian)

	element, err := it.Next()
	require.NoError(t, err)
	assert.True(t, element.IsUndefinedLength())

	// the payload keeps its item structure, the delimiter is stripped
	raw, err := element.RawBytes()
	require.NoError(t, err)
	assert.Equal(t, in[12:len(in)-8], raw)

	offsets, fragments, err := ParseEncapsulatedFragments(raw, it.syntax.order)
	require.NoError(t, err)
	assert.Empty(t, offsets)
	require.Len(t, fragments, 1)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, fragments[0])
}

func TestIterator_undefinedLengthUnknownPayload(t *testing.T) {
	// an undefined length private element whose content is not item
	// structured is captured by scanning for the delimiter
	in := []byte{
		0x09, 0x00, 0x01, 0x10, // (0009,1001) private
		0xFF, 0xFF, 0xFF, 0xFF, // undefined length
		0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x11, 0x22, 0x33,
		0xFE, 0xFF, 0xDD, 0xE0, // sequence delimitation item
		0x00, 0x00, 0x00, 0x00,
	}
	it := testIterator(in, implicitVRLittleEndian)

	element, err := it.Next()
	require.NoError(t, err)
	raw, err := element.RawBytes()
	require.NoError(t, err)
	assert.Equal(t, in[8:16], raw)

	_, err = it.Next()
	assert.Equal(t, io.EOF, err)
}

func TestIterator_undefinedLengthDelimiterWithNonZeroLength(t *testing.T) {
	// the length field of a delimitation item is defined as zero; a malformed
	// non-zero length still terminates the value, with a warning
	in := []byte{
		0xE0, 0x7F, 0x10, 0x00, // (7FE0,0010) PixelData, implicit framing
		0xFF, 0xFF, 0xFF, 0xFF, // undefined length
		0x01, 0x02, 0x03, 0x04,
		0xFE, 0xFF, 0xDD, 0xE0, // sequence delimitation item
		0x04, 0x00, 0x00, 0x00, // malformed non-zero length
	}
	core, logs := observer.New(zap.WarnLevel)
	it := newDataElementIterator(newDcmReader(bytes.NewReader(in)), implicitVRLittleEndian,
		&readState{logger: zap.New(core)})

	element, err := it.Next()
	require.NoError(t, err)
	raw, err := element.RawBytes()
	require.NoError(t, err)
	assert.Equal(t, in[8:12], raw)

	_, err = it.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 1, logs.FilterMessageSnippet("non-zero length").Len())
}

func TestIterator_deferredElement(t *testing.T) {
	in := []byte{
		0xE0, 0x7F, 0x10, 0x00, // (7FE0,0010) PixelData
		'O', 'W',
		0x00, 0x00,
		0x08, 0x00, 0x00, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}
	dr := newDcmReader(bytes.NewReader(in))
	it := newDataElementIterator(dr, explicitVRLittleEndian, &readState{
		logger:         zap.NewNop(),
		deferThreshold: 7,
		sourcePath:     "some.dcm",
	})

	element, err := it.Next()
	require.NoError(t, err)
	assert.True(t, element.IsDeferred())
	assert.Equal(t, int64(12), element.deferred.offset)
	assert.Equal(t, uint32(8), element.deferred.length)

	// the payload was skipped, not buffered
	assert.Equal(t, int64(len(in)), dr.Pos())
}

func TestIterator_lengthEqualToDeferThresholdLoadsEagerly(t *testing.T) {
	in := []byte{
		0xE0, 0x7F, 0x10, 0x00, // (7FE0,0010) PixelData
		'O', 'W',
		0x00, 0x00,
		0x08, 0x00, 0x00, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}
	it := newDataElementIterator(newDcmReader(bytes.NewReader(in)), explicitVRLittleEndian, &readState{
		logger:         zap.NewNop(),
		deferThreshold: 8,
		sourcePath:     "some.dcm",
	})

	element, err := it.Next()
	require.NoError(t, err)
	assert.False(t, element.IsDeferred())
	raw, err := element.RawBytes()
	require.NoError(t, err)
	assert.Equal(t, in[12:], raw)
}
