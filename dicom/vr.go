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
	"strings"
)

// vrType groups common encodings together
type vrType int

const (
	// textVR is for value fields that are interpreted as delimited text with space padding
	textVR vrType = iota

	// numberBinaryVR is for value fields that are parsed as fixed-width binary numbers
	numberBinaryVR

	// bulkDataVR is for opaque byte payloads (OB, OW, OF, OL, OD, OV, UN).
	// The payload is kept as-is; byte swapping for big endian OW streams is
	// the consumer's responsibility, not this package's.
	bulkDataVR

	// uniqueIdentifierVR is for VR: UI. It has null padding
	uniqueIdentifierVR

	// sequenceVR is for VR: SQ
	sequenceVR

	// tagVR is for attribute tags. Distinct from numberBinaryVR because a tag
	// is a pair of 16-bit numbers, not one 32-bit number
	tagVR

	// ambiguousVR is for dictionary entries whose VR depends on sibling
	// element values (e.g. "US or SS") and is only pinned down by
	// ResolveAmbiguousVRs before an explicit VR write
	ambiguousVR
)

// UndefinedLength as specified
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
const UndefinedLength = 0xffffffff

// VR models the DICOM Value Representations (VR)
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
type VR struct {
	// Name represents the 2-character VR code, or a dictionary-ambiguous
	// form such as "US or SS"
	Name string

	kind vrType
}

// IsAmbiguous is true for dictionary VRs that require context to resolve
// (e.g. "US or SS"). Such a VR cannot be written in an explicit VR syntax.
func (vr *VR) IsAmbiguous() bool {
	return strings.Contains(vr.Name, " or ")
}

func (vr *VR) String() string {
	return vr.Name
}

// paddingByte is the byte used to pad odd-length values of this VR
func (vr *VR) paddingByte() byte {
	switch vr.kind {
	case uniqueIdentifierVR, bulkDataVR, ambiguousVR:
		return 0x00
	default:
		return 0x20
	}
}

// usesCharacterSet is true for the text VRs whose byte interpretation depends
// on the active Specific Character Set (0008,0005)
func (vr *VR) usesCharacterSet() bool {
	switch vr {
	case SHVR, LOVR, STVR, LTVR, PNVR, UCVR, UTVR:
		return true
	default:
		return false
	}
}

// trimsLeadingSpace is false for the text VRs where leading spaces are
// significant (ST, LT, UT, UR trim trailing padding only)
func (vr *VR) trimsLeadingSpace() bool {
	switch vr {
	case STVR, LTVR, UTVR, URVR:
		return false
	default:
		return true
	}
}

var vrLookupMap = map[string]*VR{}

func newVR(text string, vrType vrType) *VR {
	vr := &VR{text, vrType}
	vrLookupMap[vr.Name] = vr

	return vr
}

func lookupVRByName(name string) (*VR, error) {
	r, ok := vrLookupMap[name]
	if !ok {
		return nil, fmt.Errorf("unknown vr name: %q", name)
	}
	return r, nil
}

// VR list obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
var (
	// textual VRs
	CSVR = newVR("CS", textVR)
	SHVR = newVR("SH", textVR)
	LOVR = newVR("LO", textVR)
	STVR = newVR("ST", textVR)
	LTVR = newVR("LT", textVR)
	ASVR = newVR("AS", textVR)

	// person name
	PNVR = newVR("PN", textVR)

	// application entity
	AEVR = newVR("AE", textVR)

	// dates/time VR
	DAVR = newVR("DA", textVR)
	TMVR = newVR("TM", textVR)
	DTVR = newVR("DT", textVR)

	// textual numbers. Decoded values retain the original string so that an
	// unmodified element reproduces its exact bytes on write.
	ISVR = newVR("IS", textVR)
	DSVR = newVR("DS", textVR)

	// unlimited char, URI, unlimited text
	UCVR = newVR("UC", textVR)
	URVR = newVR("UR", textVR)
	UTVR = newVR("UT", textVR)

	// binary numbers
	SSVR = newVR("SS", numberBinaryVR)
	USVR = newVR("US", numberBinaryVR)
	SLVR = newVR("SL", numberBinaryVR)
	ULVR = newVR("UL", numberBinaryVR)
	SVVR = newVR("SV", numberBinaryVR)
	UVVR = newVR("UV", numberBinaryVR)
	FLVR = newVR("FL", numberBinaryVR)
	FDVR = newVR("FD", numberBinaryVR)

	// opaque binary payloads
	OBVR = newVR("OB", bulkDataVR)
	ODVR = newVR("OD", bulkDataVR)
	OLVR = newVR("OL", bulkDataVR)
	OVVR = newVR("OV", bulkDataVR)
	OWVR = newVR("OW", bulkDataVR)
	OFVR = newVR("OF", bulkDataVR)

	// unknown
	UNVR = newVR("UN", bulkDataVR)

	// attribute tag
	ATVR = newVR("AT", tagVR)

	// unique identifier
	UIVR = newVR("UI", uniqueIdentifierVR)

	// sequence
	SQVR = newVR("SQ", sequenceVR)

	// dictionary-ambiguous VRs, resolved by ResolveAmbiguousVRs
	USorSSVR     = newVR("US or SS", ambiguousVR)
	OBorOWVR     = newVR("OB or OW", ambiguousVR)
	USorOWVR     = newVR("US or OW", ambiguousVR)
	USorSSorOWVR = newVR("US or SS or OW", ambiguousVR)
)
