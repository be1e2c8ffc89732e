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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPart10 assembles a minimal Part 10 stream: zero preamble, DICM
// marker, a file meta group declaring uid, and the given body bytes
func buildPart10(uid string, body []byte) []byte {
	uidBytes := []byte(uid)
	if len(uidBytes)%2 != 0 {
		uidBytes = append(uidBytes, 0x00)
	}

	var out bytes.Buffer
	out.Write(make([]byte, 128))
	out.WriteString("DICM")

	groupLength := 8 + len(uidBytes)
	out.Write([]byte{0x02, 0x00, 0x00, 0x00, 'U', 'L', 0x04, 0x00})
	out.Write([]byte{byte(groupLength), 0x00, 0x00, 0x00})
	out.Write([]byte{0x02, 0x00, 0x10, 0x00, 'U', 'I', byte(len(uidBytes)), 0x00})
	out.Write(uidBytes)
	out.Write(body)
	return out.Bytes()
}

var explicitLEBody = []byte{
	0x08, 0x00, 0x60, 0x00, // (0008,0060) Modality
	'C', 'S',
	0x02, 0x00,
	'M', 'R',
	0x10, 0x00, 0x10, 0x00, // (0010,0010) PatientName
	'P', 'N',
	0x08, 0x00,
	'D', 'o', 'e', '^', 'J', 'o', 'h', 'n',
}

func TestRead_part10ExplicitLE(t *testing.T) {
	in := buildPart10(ExplicitVRLittleEndianUID, explicitLEBody)
	file, err := Read(bytes.NewReader(in), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, ExplicitVRLittleEndianUID, file.TransferSyntaxUID)
	assert.False(t, file.ImplicitVR)
	assert.True(t, file.LittleEndian)
	assert.False(t, file.Deflated)
	assert.Equal(t, make([]byte, 128), file.Preamble)

	require.NotNil(t, file.Meta)
	assert.NotNil(t, file.Meta.Get(TransferSyntaxUIDTag))

	require.Equal(t, 2, file.DataSet.Len())
	modality, err := file.DataSet.GetByKeyword("Modality").StringValue()
	require.NoError(t, err)
	assert.Equal(t, "MR", modality)
}

func TestRead_rejectsNonDICOM(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a dicom stream at all")), ReadOptions{})
	assert.ErrorIs(t, err, ErrNotDICOM)
}

func TestRead_forceHeaderlessImplicit(t *testing.T) {
	in := []byte{
		0x08, 0x00, 0x60, 0x00, // (0008,0060) Modality, implicit framing
		0x02, 0x00, 0x00, 0x00,
		'C', 'T',
	}
	file, err := Read(bytes.NewReader(in), ReadOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, ImplicitVRLittleEndianUID, file.TransferSyntaxUID)
	assert.True(t, file.ImplicitVR)
	assert.Nil(t, file.Preamble)

	modality, err := file.DataSet.Get(DataElementTag(0x00080060)).StringValue()
	require.NoError(t, err)
	assert.Equal(t, "CT", modality)
}

func TestRead_forceHeaderlessExplicitSniffed(t *testing.T) {
	file, err := Read(bytes.NewReader(explicitLEBody), ReadOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, ExplicitVRLittleEndianUID, file.TransferSyntaxUID)
}

func TestRead_forceSplitsCommandSet(t *testing.T) {
	in := []byte{
		0x00, 0x00, 0x00, 0x01, // (0000,0100) CommandField, implicit framing
		0x02, 0x00, 0x00, 0x00,
		0x01, 0x80, // C-STORE-RSP
		0x08, 0x00, 0x18, 0x00, // (0008,0018) SOPInstanceUID
		0x04, 0x00, 0x00, 0x00,
		'1', '.', '2', 0x00,
	}
	file, err := Read(bytes.NewReader(in), ReadOptions{Force: true})
	require.NoError(t, err)

	require.NotNil(t, file.CommandSet)
	assert.Equal(t, 1, file.CommandSet.Len())
	assert.Equal(t, 1, file.DataSet.Len())
	assert.Nil(t, file.DataSet.Get(DataElementTag(0x00000100)))
}

func TestRead_stopBeforePixelData(t *testing.T) {
	body := append(append([]byte{}, explicitLEBody...),
		0xE0, 0x7F, 0x10, 0x00, // (7FE0,0010)
		'O', 'B',
		0x00, 0x00,
		0x04, 0x00, 0x00, 0x00,
		0x01, 0x02, 0x03, 0x04,
	)
	file, err := Read(bytes.NewReader(buildPart10(ExplicitVRLittleEndianUID, body)),
		ReadOptions{StopBeforePixelData: true})
	require.NoError(t, err)
	assert.Nil(t, file.DataSet.Get(PixelDataTag))
	assert.Equal(t, 2, file.DataSet.Len())
}

func TestFile_writeLikeOriginalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		body []byte
	}{
		{"explicit little endian", ExplicitVRLittleEndianUID, explicitLEBody},
		{"implicit little endian", ImplicitVRLittleEndianUID, []byte{
			0x08, 0x00, 0x60, 0x00,
			0x02, 0x00, 0x00, 0x00,
			'M', 'R',
		}},
		{"explicit big endian", ExplicitVRBigEndianUID, []byte{
			0x00, 0x28, 0x00, 0x10, // (0028,0010) Rows
			'U', 'S',
			0x00, 0x02,
			0x02, 0x00,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := buildPart10(tc.uid, tc.body)
			file, err := Read(bytes.NewReader(in), ReadOptions{})
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, file.Write(&out, WriteOptions{WriteLikeOriginal: true}))
			assert.Equal(t, in, out.Bytes())
		})
	}
}

func TestFile_writeLikeOriginalKeepsMissingPreamble(t *testing.T) {
	// DICM marker at offset 0, no preamble
	in := buildPart10(ExplicitVRLittleEndianUID, explicitLEBody)[preambleSize:]
	file, err := Read(bytes.NewReader(in), ReadOptions{})
	require.NoError(t, err)
	assert.Nil(t, file.Preamble)

	var out bytes.Buffer
	require.NoError(t, file.Write(&out, WriteOptions{WriteLikeOriginal: true}))
	assert.Equal(t, in, out.Bytes())
}

func TestFile_canonicalWriteSynthesizesMeta(t *testing.T) {
	ds := dataSetOf(
		NewDataElement(SOPClassUIDTag, UIVR, []string{"1.2.840.10008.5.1.4.1.1.2"}),
		NewDataElement(SOPInstanceUIDTag, UIVR, []string{"1.2.3.4"}),
		NewDataElement(DataElementTag(0x00080060), CSVR, []string{"CT"}),
	)
	file := NewFile(ds)

	var out bytes.Buffer
	require.NoError(t, file.Write(&out, WriteOptions{}))

	parsed, err := Read(bytes.NewReader(out.Bytes()), ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, ExplicitVRLittleEndianUID, parsed.TransferSyntaxUID)

	sopInstance, err := parsed.Meta.Get(MediaStorageSOPInstanceUIDTag).StringValue()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", sopInstance)

	groupLength, err := parsed.Meta.Get(FileMetaInformationGroupLengthTag).Value()
	require.NoError(t, err)
	assert.IsType(t, []uint32{}, groupLength)

	modality, err := parsed.DataSet.GetByKeyword("Modality").StringValue()
	require.NoError(t, err)
	assert.Equal(t, "CT", modality)
}

func TestFile_canonicalWriteRequiresSOPIdentifiers(t *testing.T) {
	file := NewFile(dataSetOf(NewDataElement(DataElementTag(0x00080060), CSVR, []string{"CT"})))
	var out bytes.Buffer
	err := file.Write(&out, WriteOptions{})
	assert.ErrorIs(t, err, ErrMissingFileMeta)
}

func TestFile_implicitBigEndianRejected(t *testing.T) {
	file := NewFile(NewDataSet())
	file.ImplicitVR = true
	file.LittleEndian = false
	file.TransferSyntaxUID = ""

	var out bytes.Buffer
	err := file.Write(&out, WriteOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedSyntax)
}

func TestFile_deflatedRoundTrip(t *testing.T) {
	ds := dataSetOf(
		NewDataElement(SOPClassUIDTag, UIVR, []string{"1.2.840.10008.5.1.4.1.1.7"}),
		NewDataElement(SOPInstanceUIDTag, UIVR, []string{NewUID()}),
		NewDataElement(DataElementTag(0x00100010), PNVR, []PersonName{{Alphabetic: "Doe^John"}}),
	)
	file := NewFile(ds)
	file.Deflated = true
	file.TransferSyntaxUID = DeflatedExplicitVRLittleEndianUID

	var first bytes.Buffer
	require.NoError(t, file.Write(&first, WriteOptions{}))

	parsed, err := Read(bytes.NewReader(first.Bytes()), ReadOptions{})
	require.NoError(t, err)
	assert.True(t, parsed.Deflated)
	assert.Equal(t, DeflatedExplicitVRLittleEndianUID, parsed.TransferSyntaxUID)

	name, err := parsed.DataSet.Get(DataElementTag(0x00100010)).Value()
	require.NoError(t, err)
	assert.Equal(t, []PersonName{{Alphabetic: "Doe^John"}}, name)

	// deterministic compression: a second write reproduces the stream
	var second bytes.Buffer
	require.NoError(t, parsed.Write(&second, WriteOptions{WriteLikeOriginal: true}))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestFile_encapsulatedSyntaxKeepsUID(t *testing.T) {
	body := []byte{
		0xE0, 0x7F, 0x10, 0x00,
		'O', 'B',
		0x00, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF,
		0xFE, 0xFF, 0x00, 0xE0, // empty basic offset table
		0x00, 0x00, 0x00, 0x00,
		0xFE, 0xFF, 0x00, 0xE0, // one fragment
		0x02, 0x00, 0x00, 0x00,
		0xAB, 0xCD,
		0xFE, 0xFF, 0xDD, 0xE0,
		0x00, 0x00, 0x00, 0x00,
	}
	in := buildPart10(JPEGBaselineUID, body)
	file, err := Read(bytes.NewReader(in), ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, JPEGBaselineUID, file.TransferSyntaxUID)
	assert.False(t, file.ImplicitVR)

	var out bytes.Buffer
	require.NoError(t, file.Write(&out, WriteOptions{WriteLikeOriginal: true}))
	assert.Equal(t, in, out.Bytes())
}

func TestReadFile_deferredPixelData(t *testing.T) {
	body := append(append([]byte{}, explicitLEBody...),
		0xE0, 0x7F, 0x10, 0x00,
		'O', 'B',
		0x00, 0x00,
		0x08, 0x00, 0x00, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	)
	path := filepath.Join(t.TempDir(), "deferred.dcm")
	require.NoError(t, os.WriteFile(path, buildPart10(ExplicitVRLittleEndianUID, body), 0644))

	file, err := ReadFile(path, ReadOptions{DeferSizeThreshold: 7})
	require.NoError(t, err)

	pixelData := file.DataSet.Get(PixelDataTag)
	require.NotNil(t, pixelData)
	assert.True(t, pixelData.IsDeferred())

	// elements at or below the threshold load eagerly
	assert.False(t, file.DataSet.GetByKeyword("Modality").IsDeferred())

	v, err := pixelData.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, v)
	assert.False(t, pixelData.IsDeferred())
}

func TestFile_writeFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.dcm")
	ds := dataSetOf(
		NewDataElement(SOPClassUIDTag, UIVR, []string{"1.2.840.10008.5.1.4.1.1.7"}),
		NewDataElement(SOPInstanceUIDTag, UIVR, []string{"1.2.3"}),
		NewDataElement(RowsTag, USVR, []uint16{64}),
	)
	require.NoError(t, NewFile(ds).WriteFile(path, WriteOptions{}))

	parsed, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	rows, err := parsed.DataSet.Get(RowsTag).Value()
	require.NoError(t, err)
	assert.Equal(t, []uint16{64}, rows)
}
