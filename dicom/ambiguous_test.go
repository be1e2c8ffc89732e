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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataSetOf(elements ...*DataElement) *DataSet {
	ds := NewDataSet()
	for _, e := range elements {
		ds.Add(e)
	}
	return ds
}

func TestResolveAmbiguousVRs_pixelRepresentation(t *testing.T) {
	tests := []struct {
		name     string
		pixelRep uint16
		want     *VR
	}{
		{"unsigned", 0, USVR},
		{"signed", 1, SSVR},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			padding := rawElement(DataElementTag(0x00280120), USorSSVR, []byte{0x00, 0xF8})
			ds := dataSetOf(
				NewDataElement(PixelRepresentationTag, USVR, []uint16{tc.pixelRep}),
				padding,
			)
			ResolveAmbiguousVRs(ds, false)
			assert.Equal(t, tc.want, padding.VR)
		})
	}
}

func TestResolveAmbiguousVRs_missingContextLeavesAmbiguous(t *testing.T) {
	padding := rawElement(DataElementTag(0x00280120), USorSSVR, []byte{0x00, 0xF8})
	ds := dataSetOf(padding)
	ResolveAmbiguousVRs(ds, false)
	assert.Equal(t, USorSSVR, padding.VR)
}

func TestResolveAmbiguousVRs_idempotent(t *testing.T) {
	padding := rawElement(DataElementTag(0x00280120), USorSSVR, []byte{0x00, 0xF8})
	ds := dataSetOf(
		NewDataElement(PixelRepresentationTag, USVR, []uint16{1}),
		padding,
	)
	ResolveAmbiguousVRs(ds, false)
	ResolveAmbiguousVRs(ds, false)
	assert.Equal(t, SSVR, padding.VR)

	v, err := padding.Value()
	require.NoError(t, err)
	assert.Equal(t, []int16{-2048}, v)
}

func TestResolveAmbiguousVRs_resetsMemoizedValue(t *testing.T) {
	padding := rawElement(DataElementTag(0x00280120), USorSSVR, []byte{0x00, 0xF8})
	ds := dataSetOf(
		NewDataElement(PixelRepresentationTag, USVR, []uint16{1}),
		padding,
	)

	// decode before resolution: ambiguous VRs materialize as raw bytes
	v, err := padding.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xF8}, v)

	ResolveAmbiguousVRs(ds, false)
	v, err = padding.Value()
	require.NoError(t, err)
	assert.Equal(t, []int16{-2048}, v)
}

func TestResolveAmbiguousVRs_pixelData(t *testing.T) {
	tests := []struct {
		name          string
		bitsAllocated uint16
		payloadLen    int
		undefined     bool
		want          *VR
	}{
		{"encapsulated is OB", 8, 0, true, OBVR},
		{"16 bit is OW", 16, 8, false, OWVR},
		{"8 bit packed is OB", 8, 4, false, OBVR},
		{"8 bit stored in words is OW", 8, 8, false, OWVR},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pixelData := rawElement(PixelDataTag, OBorOWVR, make([]byte, tc.payloadLen))
			pixelData.undefinedLength = tc.undefined
			ds := dataSetOf(
				NewDataElement(RowsTag, USVR, []uint16{2}),
				NewDataElement(ColumnsTag, USVR, []uint16{2}),
				NewDataElement(BitsAllocatedTag, USVR, []uint16{tc.bitsAllocated}),
				pixelData,
			)
			ResolveAmbiguousVRs(ds, false)
			assert.Equal(t, tc.want, pixelData.VR)
		})
	}
}

func TestResolveAmbiguousVRs_pixelDataNoBitsAllocated(t *testing.T) {
	pixelData := rawElement(PixelDataTag, OBorOWVR, []byte{0x00, 0x01})
	ds := dataSetOf(pixelData)
	ResolveAmbiguousVRs(ds, false)
	assert.Equal(t, OBorOWVR, pixelData.VR)
}

func TestResolveAmbiguousVRs_waveformData(t *testing.T) {
	tests := []struct {
		name          string
		bitsAllocated uint16
		implicitVR    bool
		want          *VR
	}{
		{"16 bit is OW", 16, false, OWVR},
		{"8 bit implicit is OW", 8, true, OWVR},
		{"8 bit explicit stays ambiguous", 8, false, OBorOWVR},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			waveform := rawElement(WaveformDataTag, OBorOWVR, []byte{0x01, 0x02})
			ds := dataSetOf(
				NewDataElement(WaveformBitsAllocatedTag, USVR, []uint16{tc.bitsAllocated}),
				waveform,
			)
			ResolveAmbiguousVRs(ds, tc.implicitVR)
			assert.Equal(t, tc.want, waveform.VR)
		})
	}
}

func TestResolveAmbiguousVRs_lutDescriptorEntryCount(t *testing.T) {
	// 40000 entries reads as a negative SS; the first value forces US even
	// with a signed pixel representation
	descriptor := rawElement(DataElementTag(0x00283002), USorSSVR,
		[]byte{0x40, 0x9C, 0x00, 0x00, 0x10, 0x00})
	ds := dataSetOf(
		NewDataElement(PixelRepresentationTag, USVR, []uint16{1}),
		descriptor,
	)
	ResolveAmbiguousVRs(ds, false)
	assert.Equal(t, USVR, descriptor.VR)
}

func TestResolveAmbiguousVRs_lutData(t *testing.T) {
	tests := []struct {
		name       string
		descriptor []byte // first value is the entry count
		want       *VR
	}{
		{"single entry is US", []byte{0x01, 0x00, 0x00, 0x00, 0x10, 0x00}, USVR},
		{"multiple entries is OW", []byte{0x00, 0x01, 0x00, 0x00, 0x10, 0x00}, OWVR},
		{"no descriptor is OW", nil, OWVR},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lutData := rawElement(DataElementTag(0x00283006), USorOWVR, []byte{0x01, 0x00, 0x02, 0x00})
			ds := dataSetOf(lutData)
			if tc.descriptor != nil {
				ds.Add(rawElement(DataElementTag(0x00283002), USorSSVR, tc.descriptor))
			}
			ResolveAmbiguousVRs(ds, false)
			assert.Equal(t, tc.want, lutData.VR)
		})
	}
}

func TestResolveAmbiguousVRs_paletteDataFollowsItsDescriptor(t *testing.T) {
	redData := rawElement(DataElementTag(0x00281201), USorOWVR, []byte{0x10, 0x00})
	ds := dataSetOf(
		rawElement(DataElementTag(0x00281101), USorSSVR, []byte{0x01, 0x00, 0x00, 0x00, 0x10, 0x00}),
		redData,
	)
	ResolveAmbiguousVRs(ds, false)
	assert.Equal(t, USVR, redData.VR)
}

func TestResolveAmbiguousVRs_overlayData(t *testing.T) {
	overlay := rawElement(DataElementTag(0x60023000), OBorOWVR, []byte{0x01, 0x00})

	ds := dataSetOf(overlay)
	ResolveAmbiguousVRs(ds, false)
	assert.Equal(t, OBorOWVR, overlay.VR)

	ResolveAmbiguousVRs(ds, true)
	assert.Equal(t, OWVR, overlay.VR)
}

func TestResolveAmbiguousVRs_sequenceItemsInheritPixelRepresentation(t *testing.T) {
	nested := rawElement(DataElementTag(0x00280106), USorSSVR, []byte{0xFF, 0xFF})
	item := dataSetOf(nested)
	ds := dataSetOf(
		NewDataElement(PixelRepresentationTag, USVR, []uint16{1}),
		NewDataElement(DataElementTag(0x00283010), SQVR, NewSequence(item)),
	)
	ResolveAmbiguousVRs(ds, false)
	assert.Equal(t, SSVR, nested.VR)
}
