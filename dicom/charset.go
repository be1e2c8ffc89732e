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

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// defaultCharacterRepertoire decodes the DICOM default repertoire (ISO-IR 6).
// Windows-1252 is a tolerant ASCII superset; files that omit (0008,0005) but
// carry 8-bit bytes are common in the wild.
var defaultCharacterRepertoire encoding.Encoding = charmap.Windows1252

// lookupLabelByTerm is a mapping of Specific Character Set defined terms to
// golang charset labels. See the link below for the list of defined terms.
// http://dicom.nema.org/medical/dicom/current/output/chtml/part02/sect_D.6.2.html
var lookupLabelByTerm = map[string]string{
	"ISO_IR 100": "iso-ir-100",
	"ISO_IR 101": "iso-ir-101",
	"ISO_IR 109": "iso-ir-109",
	"ISO_IR 110": "iso-ir-110",
	"ISO_IR 144": "iso-ir-144",
	"ISO_IR 127": "iso-ir-127",
	"ISO_IR 126": "iso-ir-126",
	"ISO_IR 138": "iso-ir-138",
	"ISO_IR 148": "iso-ir-148",
	"ISO_IR 166": "tis-620",

	"ISO 2022 IR 100": "iso-ir-100",
	"ISO 2022 IR 101": "iso-ir-101",
	"ISO 2022 IR 109": "iso-ir-109",
	"ISO 2022 IR 110": "iso-ir-110",
	"ISO 2022 IR 144": "iso-ir-144",
	"ISO 2022 IR 127": "iso-ir-127",
	"ISO 2022 IR 126": "iso-ir-126",
	"ISO 2022 IR 138": "iso-ir-138",
	"ISO 2022 IR 148": "iso-ir-148",
	"ISO 2022 IR 166": "tis-620",
}

// encodingByTerm covers the terms that need an x/text encoding directly
// rather than a charset label lookup (multi-byte East Asian repertoires and
// UTF-8).
var encodingByTerm = map[string]encoding.Encoding{
	"ISO_IR 6":        defaultCharacterRepertoire,
	"ISO 2022 IR 6":   defaultCharacterRepertoire,
	"ISO_IR 13":       japanese.ShiftJIS,
	"ISO 2022 IR 13":  japanese.ShiftJIS,
	"ISO 2022 IR 87":  japanese.ISO2022JP,
	"ISO 2022 IR 159": japanese.ISO2022JP,
	"ISO 2022 IR 149": korean.EUCKR,
	"ISO_IR 192":      unicode.UTF8,
	"GB18030":         simplifiedchinese.GB18030,
	"GBK":             simplifiedchinese.GBK,
}

func lookupEncoding(term string) (encoding.Encoding, error) {
	if coding, ok := encodingByTerm[term]; ok {
		return coding, nil
	}

	label, ok := lookupLabelByTerm[term]
	if !ok {
		return nil, fmt.Errorf("specific character set defined term not found: %q", term)
	}

	coding, _ := charset.Lookup(label)
	if coding == nil {
		return nil, fmt.Errorf("missing encoding for label %q", label)
	}
	return coding, nil
}

// SpecificCharacterSet is the ordered list of text codecs declared by a
// (0008,0005) element. The first codec applies to single-byte text and the
// first component group of person names; later codecs apply to the extended
// (ideographic, phonetic) person name groups.
type SpecificCharacterSet struct {
	terms     []string
	encodings []encoding.Encoding
}

// defaultCharacterSet is the active character set in the absence of a
// (0008,0005) element: the single default repertoire.
var defaultCharacterSet = &SpecificCharacterSet{
	terms:     []string{"ISO_IR 6"},
	encodings: []encoding.Encoding{defaultCharacterRepertoire},
}

// parseSpecificCharacterSet translates the defined terms of a (0008,0005)
// value into a SpecificCharacterSet. Unknown terms fall back to the default
// repertoire; the error reports the first unknown term so callers can log it.
func parseSpecificCharacterSet(terms []string) (*SpecificCharacterSet, error) {
	if len(terms) == 0 {
		return defaultCharacterSet, nil
	}

	var firstErr error
	cs := &SpecificCharacterSet{}
	for i, term := range terms {
		if term == "" {
			// an empty first value means the default repertoire with
			// extensions following
			cs.terms = append(cs.terms, "ISO_IR 6")
			cs.encodings = append(cs.encodings, defaultCharacterRepertoire)
			continue
		}
		coding, err := lookupEncoding(term)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			coding = defaultCharacterRepertoire
		}
		cs.terms = append(cs.terms, terms[i])
		cs.encodings = append(cs.encodings, coding)
	}
	return cs, firstErr
}

// Terms returns the defined terms this character set was built from
func (cs *SpecificCharacterSet) Terms() []string {
	return cs.terms
}

// decode interprets b using the primary codec. Decoding is best effort:
// malformed input falls back to the raw bytes, never to an error, since a
// misdeclared character set should not abort a parse.
func (cs *SpecificCharacterSet) decode(b []byte) string {
	return decodeWith(cs.encodings[0], b)
}

// encode converts text back to bytes using the primary codec
func (cs *SpecificCharacterSet) encode(s string) []byte {
	return encodeWith(cs.encodings[0], s)
}

// componentGroupEncoding returns the codec for person name component group
// idx: group 0 (alphabetic) uses the primary codec, groups 1-2 (ideographic,
// phonetic) use the last declared extension codec.
func (cs *SpecificCharacterSet) componentGroupEncoding(idx int) encoding.Encoding {
	if idx == 0 || len(cs.encodings) == 1 {
		return cs.encodings[0]
	}
	return cs.encodings[len(cs.encodings)-1]
}

func decodeWith(coding encoding.Encoding, b []byte) string {
	decoded, err := coding.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

func encodeWith(coding encoding.Encoding, s string) []byte {
	encoded, err := encoding.ReplaceUnsupported(coding.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return encoded
}
