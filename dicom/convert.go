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
	"strconv"
	"strings"
)

// PersonName is a decoded PN value split into its component groups as
// specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2.1
type PersonName struct {
	Alphabetic  string
	Ideographic string
	Phonetic    string
}

func (pn PersonName) String() string {
	s := pn.Alphabetic + "=" + pn.Ideographic + "=" + pn.Phonetic
	return strings.TrimRight(s, "=")
}

// IntegerString is a decoded IS value. The original text is retained so an
// unusual rendering such as "01" or "1 " survives a decode and re-encode.
type IntegerString struct {
	Original string
	Value    int64
}

func (is IntegerString) String() string { return is.Original }

// DecimalString is a decoded DS value, original text retained for the same
// reason as IntegerString
type DecimalString struct {
	Original string
	Value    float64
}

func (ds DecimalString) String() string { return ds.Original }

// convertValue parses a raw value field into its typed form. The multiplicity
// of text VRs comes from backslash delimiters; binary VRs derive it from the
// value length.
func convertValue(vr *VR, b []byte, order binary.ByteOrder, cs *SpecificCharacterSet) (interface{}, error) {
	switch vr.kind {
	case textVR:
		return convertText(vr, b, cs)
	case uniqueIdentifierVR:
		return splitText(string(bytes.TrimRight(b, "\x00")), true), nil
	case numberBinaryVR:
		return convertNumbers(vr, b, order)
	case tagVR:
		return convertTags(b, order)
	case bulkDataVR, ambiguousVR:
		cp := make([]byte, len(b))
		copy(cp, b)
		return cp, nil
	case sequenceVR:
		return nil, fmt.Errorf("SQ values are parsed structurally, not converted")
	default:
		return nil, fmt.Errorf("unsupported vr: %v", vr)
	}
}

func convertText(vr *VR, b []byte, cs *SpecificCharacterSet) (interface{}, error) {
	switch vr {
	case PNVR:
		return convertPersonNames(b, cs)
	case ISVR:
		return convertIntegerStrings(b)
	case DSVR:
		return convertDecimalStrings(b)
	}

	var s string
	if vr.usesCharacterSet() {
		s = cs.decode(b)
	} else {
		s = string(b)
	}

	// ST, LT, UT and UR are always single-valued: backslash is ordinary text
	// there, not a value delimiter
	switch vr {
	case STVR, LTVR, UTVR, URVR:
		if s == "" {
			return []string{}, nil
		}
		return []string{strings.TrimRight(s, " ")}, nil
	}
	return splitText(s, vr.trimsLeadingSpace()), nil
}

// splitText splits a backslash-delimited value field into its values. An
// empty field has zero values, not one empty value.
func splitText(s string, trimLeading bool) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, `\`)
	for i, p := range parts {
		p = strings.TrimRight(p, " ")
		if trimLeading {
			p = strings.TrimLeft(p, " ")
		}
		parts[i] = p
	}
	return parts
}

func convertPersonNames(b []byte, cs *SpecificCharacterSet) ([]PersonName, error) {
	// component groups are decoded separately: the alphabetic group uses the
	// primary repertoire while ideographic and phonetic groups use the
	// declared code extension
	names := []PersonName{}
	if len(b) == 0 {
		return names, nil
	}
	for _, raw := range bytes.Split(bytes.TrimRight(b, " "), []byte(`\`)) {
		var groups [3]string
		for i, g := range bytes.SplitN(raw, []byte("="), 3) {
			groups[i] = strings.TrimRight(decodeWith(cs.componentGroupEncoding(i), g), " ")
		}
		names = append(names, PersonName{
			Alphabetic:  groups[0],
			Ideographic: groups[1],
			Phonetic:    groups[2],
		})
	}
	return names, nil
}

func convertIntegerStrings(b []byte) ([]IntegerString, error) {
	vals := []IntegerString{}
	for _, s := range splitText(string(b), true) {
		if s == "" {
			vals = append(vals, IntegerString{Original: s})
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing IS value %q: %v", s, err)
		}
		vals = append(vals, IntegerString{Original: s, Value: n})
	}
	return vals, nil
}

func convertDecimalStrings(b []byte) ([]DecimalString, error) {
	vals := []DecimalString{}
	for _, s := range splitText(string(b), true) {
		if s == "" {
			vals = append(vals, DecimalString{Original: s})
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing DS value %q: %v", s, err)
		}
		vals = append(vals, DecimalString{Original: s, Value: f})
	}
	return vals, nil
}

func convertNumbers(vr *VR, b []byte, order binary.ByteOrder) (interface{}, error) {
	width := map[*VR]int{
		SSVR: 2, USVR: 2,
		SLVR: 4, ULVR: 4, FLVR: 4,
		SVVR: 8, UVVR: 8, FDVR: 8,
	}[vr]
	if len(b)%width != 0 {
		return nil, fmt.Errorf("value length %d is not a multiple of %d (vr %v)", len(b), width, vr)
	}
	count := len(b) / width
	r := bytes.NewReader(b)

	switch vr {
	case SSVR:
		v := make([]int16, count)
		return v, binary.Read(r, order, v)
	case USVR:
		v := make([]uint16, count)
		return v, binary.Read(r, order, v)
	case SLVR:
		v := make([]int32, count)
		return v, binary.Read(r, order, v)
	case ULVR:
		v := make([]uint32, count)
		return v, binary.Read(r, order, v)
	case SVVR:
		v := make([]int64, count)
		return v, binary.Read(r, order, v)
	case UVVR:
		v := make([]uint64, count)
		return v, binary.Read(r, order, v)
	case FLVR:
		v := make([]float32, count)
		return v, binary.Read(r, order, v)
	case FDVR:
		v := make([]float64, count)
		return v, binary.Read(r, order, v)
	}
	return nil, fmt.Errorf("unsupported binary number vr: %v", vr)
}

func convertTags(b []byte, order binary.ByteOrder) ([]DataElementTag, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("AT value length %d is not a multiple of 4", len(b))
	}
	tags := make([]DataElementTag, 0, len(b)/4)
	for i := 0; i < len(b); i += 4 {
		group := order.Uint16(b[i : i+2])
		element := order.Uint16(b[i+2 : i+4])
		tags = append(tags, NewDataElementTag(group, element))
	}
	return tags, nil
}
