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

// ResolveAmbiguousVRs pins down dictionary-ambiguous VRs ("US or SS",
// "OB or OW", "US or OW") using sibling element values, as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_8.1.2
// and PS3.3 C.7.6.3. Sequence items are resolved recursively and inherit the
// enclosing data set's Pixel Representation when they declare none.
//
// The resolution is best effort and idempotent: elements whose context is
// missing keep their ambiguous VR, and writing them in an explicit VR syntax
// fails with ErrAmbiguousVR. implicitVR indicates the syntax the data set is
// destined for; a few rules depend on it.
func ResolveAmbiguousVRs(ds *DataSet, implicitVR bool) {
	resolveDataSet(ds, implicitVR, nil)
}

func resolveDataSet(ds *DataSet, implicitVR bool, inheritedPixelRep *uint16) {
	pixelRep := inheritedPixelRep
	if v, ok := ds.uint16Value(PixelRepresentationTag); ok {
		pixelRep = &v
	}

	// ascending tag order resolves descriptors before the data that depends
	// on them
	for _, tag := range ds.SortedTags() {
		element := ds.Elements[tag]

		if element.VR == SQVR {
			if seq, ok := element.value.(*Sequence); ok && seq != nil {
				for _, item := range seq.Items {
					resolveDataSet(item, implicitVR, pixelRep)
				}
			}
			continue
		}
		if !element.VR.IsAmbiguous() {
			continue
		}
		resolveElement(ds, element, implicitVR, pixelRep)
	}
}

func resolveElement(ds *DataSet, element *DataElement, implicitVR bool, pixelRep *uint16) {
	switch {
	case element.Tag == PixelDataTag:
		resolvePixelData(ds, element)
	case element.Tag == WaveformDataTag:
		resolveWaveformData(ds, element, implicitVR)
	case element.Tag.GroupNumber()&0xFF00 == 0x6000 && element.Tag.ElementNumber() == 0x3000:
		// Overlay Data: under implicit VR the payload is 16-bit words; under
		// explicit VR both forms occur in the wild and the choice cannot be
		// derived from the data set
		if implicitVR {
			setResolvedVR(element, OWVR)
		}
	case element.VR == USorOWVR:
		resolveLUTData(ds, element)
	case element.VR == USorSSVR:
		resolveSignedness(element, pixelRep)
	}
}

// resolvePixelData pins (7FE0,0010) down to OB or OW. Encapsulated pixel
// data (undefined length) is OB; native pixel data follows Bits Allocated,
// with the payload size against Rows*Columns breaking the 8-bit tie.
func resolvePixelData(ds *DataSet, element *DataElement) {
	if element.IsUndefinedLength() {
		setResolvedVR(element, OBVR)
		return
	}
	bitsAllocated, ok := ds.uint16Value(BitsAllocatedTag)
	if !ok {
		return
	}
	if bitsAllocated > 8 {
		setResolvedVR(element, OWVR)
		return
	}

	rows, rowsOK := ds.uint16Value(RowsTag)
	cols, colsOK := ds.uint16Value(ColumnsTag)
	if rowsOK && colsOK && rows > 0 && cols > 0 {
		if int64(element.ValueLength) >= 2*int64(rows)*int64(cols) {
			setResolvedVR(element, OWVR)
			return
		}
	}
	setResolvedVR(element, OBVR)
}

// resolveWaveformData pins (5400,1010) down using Waveform Bits Allocated.
// With 8 bits per sample the explicit VR form is genuinely ambiguous and is
// left unresolved.
func resolveWaveformData(ds *DataSet, element *DataElement, implicitVR bool) {
	bitsAllocated, ok := ds.uint16Value(WaveformBitsAllocatedTag)
	if !ok {
		return
	}
	if bitsAllocated > 8 || implicitVR {
		setResolvedVR(element, OWVR)
	}
}

// resolveLUTData pins "US or OW" lookup table data down using the first
// value of its LUT Descriptor, the entry count: a single entry table is US,
// anything else OW, which also covers tables longer than 64KB. Without a
// descriptor OW is assumed.
func resolveLUTData(ds *DataSet, element *DataElement) {
	if descriptor, ok := lutDescriptorFor(element.Tag); ok {
		if entries, entriesOK := ds.uint16Value(descriptor); entriesOK && entries == 1 {
			setResolvedVR(element, USVR)
			return
		}
	}
	setResolvedVR(element, OWVR)
}

// lutDescriptorFor maps lookup table data onto the descriptor that declares
// its entry count (PS3.3 C.11)
func lutDescriptorFor(tag DataElementTag) (DataElementTag, bool) {
	switch tag {
	case 0x00281201:
		return 0x00281101, true
	case 0x00281202:
		return 0x00281102, true
	case 0x00281203:
		return 0x00281103, true
	case 0x00283006:
		return 0x00283002, true
	default:
		return 0, false
	}
}

// resolveSignedness pins "US or SS" elements down using Pixel
// Representation. The first value of a LUT Descriptor is an entry count and
// is forced unsigned when it would read as negative.
func resolveSignedness(element *DataElement, pixelRep *uint16) {
	if isLUTDescriptorTag(element.Tag) {
		if first, ok := element.firstUint16(); ok && first > 0x7FFF {
			setResolvedVR(element, USVR)
			return
		}
	}
	if pixelRep == nil {
		return
	}
	if *pixelRep == 0 {
		setResolvedVR(element, USVR)
	} else {
		setResolvedVR(element, SSVR)
	}
}

func isLUTDescriptorTag(tag DataElementTag) bool {
	switch tag {
	case 0x00281101, 0x00281102, 0x00281103, 0x00283002:
		return true
	default:
		return false
	}
}

// setResolvedVR swaps in the resolved VR and drops any memoized value so the
// next access re-parses under the final VR
func setResolvedVR(element *DataElement, vr *VR) {
	if element.VR == vr {
		return
	}
	element.VR = vr
	if element.raw != nil || element.deferred != nil {
		element.value = nil
		element.decoded = false
	}
}
