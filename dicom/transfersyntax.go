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
)

// list of transfer syntaxes obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	// ImplicitVRLittleEndianUID is the Implicit VR Little Endian UID
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"
	// ExplicitVRLittleEndianUID is the Explicit VR Little Endian UID
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"
	// ExplicitVRBigEndianUID is the Explicit VR Big Endian UID
	ExplicitVRBigEndianUID = "1.2.840.10008.1.2.2"
	// DeflatedExplicitVRLittleEndianUID is the Deflated Explicit VR Little Endian UID
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
	// JPEGBaselineUID is the JPEG Baseline (Process 1) transfer syntax UID
	JPEGBaselineUID = "1.2.840.10008.1.2.4.50"
)

// transferSyntax describes how data elements are framed: implicit or explicit
// VR, byte order, and whether the data set bytes are raw-DEFLATE compressed.
// Encapsulated (compressed pixel data) syntaxes keep their own uid but use
// Explicit VR Little Endian framing; only the pixel payload is compressed.
type transferSyntax struct {
	uid      string
	implicit bool
	order    binary.ByteOrder
	deflated bool
}

var (
	implicitVRLittleEndian         = transferSyntax{ImplicitVRLittleEndianUID, true, binary.LittleEndian, false}
	explicitVRLittleEndian         = transferSyntax{ExplicitVRLittleEndianUID, false, binary.LittleEndian, false}
	explicitVRBigEndian            = transferSyntax{ExplicitVRBigEndianUID, false, binary.BigEndian, false}
	deflatedExplicitVRLittleEndian = transferSyntax{DeflatedExplicitVRLittleEndianUID, false, binary.LittleEndian, true}
)

func lookupTransferSyntax(uid string) transferSyntax {
	switch uid {
	case ImplicitVRLittleEndianUID:
		return implicitVRLittleEndian
	case ExplicitVRLittleEndianUID:
		return explicitVRLittleEndian
	case ExplicitVRBigEndianUID:
		return explicitVRBigEndian
	case DeflatedExplicitVRLittleEndianUID:
		return deflatedExplicitVRLittleEndian
	}

	// any other syntax uses explicit VR little endian framing according to
	// PS3.5 A.4: http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
	return transferSyntax{uid, false, binary.LittleEndian, false}
}

// syntaxForEncoding maps the (implicit, littleEndian, deflated) triple onto
// one of the four standard transfer syntaxes. Implicit VR with big endian
// byte order is not defined by the standard and is rejected, never coerced.
func syntaxForEncoding(implicitVR, littleEndian, deflated bool) (transferSyntax, error) {
	switch {
	case implicitVR && !littleEndian:
		return transferSyntax{}, ErrUnsupportedSyntax
	case implicitVR:
		return implicitVRLittleEndian, nil
	case deflated && littleEndian:
		return deflatedExplicitVRLittleEndian, nil
	case deflated:
		return transferSyntax{}, fmt.Errorf("deflated big endian is not a valid transfer syntax")
	case littleEndian:
		return explicitVRLittleEndian, nil
	default:
		return explicitVRBigEndian, nil
	}
}

const (
	vrSize  = 2
	tagSize = 4
)

// has32BitLength is true for the VRs whose explicit form carries 2 reserved
// bytes and a 32-bit length. The 2 header forms are defined at
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func has32BitLength(vr *VR) bool {
	switch vr {
	case OBVR, ODVR, OFVR, OLVR, OVVR, OWVR, SQVR, UCVR, URVR, UTVR, UNVR:
		return true
	default:
		return false
	}
}

// headerSize returns the number of bytes occupied by an element header (tag,
// VR and length fields) in the given syntax
func headerSize(syntax transferSyntax, vr *VR) uint32 {
	if syntax.implicit {
		return tagSize + 4
	}
	if has32BitLength(vr) {
		return tagSize + vrSize + 2 /*reserved*/ + 4
	}
	return tagSize + vrSize + 2
}
