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
	"fmt"

	"github.com/openimaging/dcmio/dicom/dict"
)

// DataElementTag is a unique identifier for a Data Element composed of an
// ordered pair of numbers called the group number and the element number as
// specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
//
// The least significant 16 bits is the element number. The most significant
// 16 bits is the group number. The uint32 ordering of tags is the canonical
// element ordering within a data set.
type DataElementTag uint32

// NewDataElementTag returns the tag with the given group and element numbers
func NewDataElementTag(group, element uint16) DataElementTag {
	return DataElementTag(uint32(group)<<16 | uint32(element))
}

// GroupNumber returns the group number component of the DataElementTag
func (t DataElementTag) GroupNumber() uint16 {
	return uint16(t >> 16)
}

// ElementNumber returns the element number component of the DataElementTag
func (t DataElementTag) ElementNumber() uint16 {
	return uint16(t & 0xFFFF)
}

// IsMetaElement is true if and only if the tag belongs to the File Meta
// group (0002)
func (t DataElementTag) IsMetaElement() bool {
	return t.GroupNumber() == 0x0002
}

// IsCommandElement is true if and only if the tag belongs to the DIMSE
// Command Set group (0000)
func (t DataElementTag) IsCommandElement() bool {
	return t.GroupNumber() == 0x0000
}

// IsPrivate is true for tags in odd-numbered groups
func (t DataElementTag) IsPrivate() bool {
	return t.GroupNumber()%2 == 1
}

func (t DataElementTag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.GroupNumber(), t.ElementNumber())
}

// DictionaryVR returns the VR registered for this tag in the data dictionary.
// Tags absent from the dictionary resolve to UN.
func (t DataElementTag) DictionaryVR() *VR {
	if e, ok := dict.Lookup(uint32(t)); ok {
		if vr, err := lookupVRByName(e.VR); err == nil {
			return vr
		}
	}
	return UNVR
}

// Keyword returns the data dictionary keyword for this tag, or "" when the
// tag is unknown
func (t DataElementTag) Keyword() string {
	if e, ok := dict.Lookup(uint32(t)); ok {
		return e.Keyword
	}
	return ""
}

// TagFromKeyword returns the tag registered for the given data dictionary
// keyword
func TagFromKeyword(keyword string) (DataElementTag, bool) {
	e, ok := dict.ByKeyword(keyword)
	if !ok {
		return 0, false
	}
	return DataElementTag(e.Tag), true
}

// Commonly referenced tags. The delimiter pseudo-tags (group FFFE) carry no
// VR and never appear inside a DataSet.
const (
	FileMetaInformationGroupLengthTag DataElementTag = 0x00020000
	FileMetaInformationVersionTag     DataElementTag = 0x00020001
	MediaStorageSOPClassUIDTag        DataElementTag = 0x00020002
	MediaStorageSOPInstanceUIDTag     DataElementTag = 0x00020003
	TransferSyntaxUIDTag              DataElementTag = 0x00020010
	ImplementationClassUIDTag         DataElementTag = 0x00020012
	ImplementationVersionNameTag      DataElementTag = 0x00020013

	SpecificCharacterSetTag DataElementTag = 0x00080005
	SOPClassUIDTag          DataElementTag = 0x00080016
	SOPInstanceUIDTag       DataElementTag = 0x00080018

	RowsTag                DataElementTag = 0x00280010
	ColumnsTag             DataElementTag = 0x00280011
	BitsAllocatedTag       DataElementTag = 0x00280100
	PixelRepresentationTag DataElementTag = 0x00280103

	WaveformBitsAllocatedTag DataElementTag = 0x54001004
	WaveformDataTag          DataElementTag = 0x54001010

	FloatPixelDataTag       DataElementTag = 0x7FE00008
	DoubleFloatPixelDataTag DataElementTag = 0x7FE00009
	PixelDataTag            DataElementTag = 0x7FE00010

	ItemTag                     DataElementTag = 0xFFFEE000
	ItemDelimitationItemTag     DataElementTag = 0xFFFEE00D
	SequenceDelimitationItemTag DataElementTag = 0xFFFEE0DD
)
