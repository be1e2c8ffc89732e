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

// writeDataSet writes the elements of ds in ascending tag order. File meta
// (0002) elements are rejected: they carry their own framing and are written
// by writeFileMeta.
func writeDataSet(dw *dcmWriter, ds *DataSet, syntax transferSyntax) error {
	for _, element := range ds.SortedElements() {
		if element.Tag.IsMetaElement() {
			return fmt.Errorf("file meta element %s in data set body", element.Tag)
		}
		if err := writeDataElement(dw, element, syntax); err != nil {
			return err
		}
	}
	return nil
}

func writeDataElement(dw *dcmWriter, element *DataElement, syntax transferSyntax) error {
	vr := element.VR
	if vr == nil {
		vr = element.Tag.DictionaryVR()
	}
	if !syntax.implicit && vr.IsAmbiguous() {
		return fmt.Errorf("element %s (%s): %w", element.Tag, vr, ErrAmbiguousVR)
	}

	if seq, ok := sequenceValue(element); ok {
		return writeSequenceElement(dw, element, seq, syntax)
	}

	payload, err := encodeValue(element, syntax.order)
	if err != nil {
		return fmt.Errorf("element %s: %v", element.Tag, err)
	}

	if element.IsUndefinedLength() {
		// the captured payload retains its item structure; re-emit it
		// verbatim between the header and the closing delimiter
		if err := writeElementHeader(dw, element.Tag, vr, UndefinedLength, syntax); err != nil {
			return err
		}
		if err := dw.Bytes(payload); err != nil {
			return err
		}
		return dw.Delimiter(syntax.order, SequenceDelimitationItemTag)
	}

	if len(payload)%2 != 0 {
		payload = append(payload, vr.paddingByte())
	}
	if err := writeElementHeader(dw, element.Tag, vr, uint32(len(payload)), syntax); err != nil {
		return err
	}
	return dw.Bytes(payload)
}

func sequenceValue(element *DataElement) (*Sequence, bool) {
	if !element.decoded {
		return nil, false
	}
	seq, ok := element.value.(*Sequence)
	return seq, ok && seq != nil
}

func writeSequenceElement(dw *dcmWriter, element *DataElement, seq *Sequence, syntax transferSyntax) error {
	vr := element.VR
	contentSyntax := syntax
	undefined := seq.IsUndefinedLength()
	if vr == UNVR {
		// a sequence held in a UN element keeps Implicit VR Little Endian
		// content and undefined length framing (PS3.5 6.2.2)
		contentSyntax = implicitVRLittleEndian
		undefined = true
	}

	if undefined {
		if err := writeElementHeader(dw, element.Tag, vr, UndefinedLength, syntax); err != nil {
			return err
		}
		for _, item := range seq.Items {
			if err := writeItem(dw, item, contentSyntax); err != nil {
				return fmt.Errorf("element %s: %w", element.Tag, err)
			}
		}
		return dw.Delimiter(syntax.order, SequenceDelimitationItemTag)
	}

	var buf bytes.Buffer
	bufWriter := &dcmWriter{&buf}
	for _, item := range seq.Items {
		if err := writeItem(bufWriter, item, contentSyntax); err != nil {
			return fmt.Errorf("element %s: %w", element.Tag, err)
		}
	}
	if err := writeElementHeader(dw, element.Tag, vr, uint32(buf.Len()), syntax); err != nil {
		return err
	}
	return dw.Bytes(buf.Bytes())
}

func writeItem(dw *dcmWriter, item *DataSet, syntax transferSyntax) error {
	if item.undefinedLengthItem {
		if err := dw.Tag(syntax.order, ItemTag); err != nil {
			return err
		}
		if err := dw.UInt32(syntax.order, UndefinedLength); err != nil {
			return err
		}
		if err := writeDataSet(dw, item, syntax); err != nil {
			return err
		}
		return dw.Delimiter(syntax.order, ItemDelimitationItemTag)
	}

	var buf bytes.Buffer
	if err := writeDataSet(&dcmWriter{&buf}, item, syntax); err != nil {
		return err
	}
	if err := dw.Tag(syntax.order, ItemTag); err != nil {
		return err
	}
	if err := dw.UInt32(syntax.order, uint32(buf.Len())); err != nil {
		return err
	}
	return dw.Bytes(buf.Bytes())
}

// writeElementHeader writes the tag, VR and length fields in the form the
// syntax requires:
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func writeElementHeader(dw *dcmWriter, tag DataElementTag, vr *VR, length uint32, syntax transferSyntax) error {
	if err := dw.Tag(syntax.order, tag); err != nil {
		return err
	}
	if syntax.implicit {
		return dw.UInt32(syntax.order, length)
	}

	if err := dw.String(vr.Name); err != nil {
		return err
	}
	if has32BitLength(vr) {
		if err := dw.UInt16(syntax.order, 0); err != nil {
			return err
		}
		return dw.UInt32(syntax.order, length)
	}
	if length > 0xFFFF {
		return fmt.Errorf("element %s: value length %d overflows the 16-bit length field of VR %s", tag, length, vr)
	}
	return dw.UInt16(syntax.order, uint16(length))
}

// encodeValue produces the value field bytes for a non-sequence element. The
// retained raw bytes are reused whenever they are valid for the target byte
// order; otherwise the decoded value is re-encoded.
func encodeValue(element *DataElement, order binary.ByteOrder) ([]byte, error) {
	if element.rawValidFor(order) {
		return element.RawBytes()
	}

	v, err := element.Value()
	if err != nil {
		return nil, err
	}
	cs := element.charset
	if cs == nil {
		cs = defaultCharacterSet
	}
	vr := element.VR

	switch v := v.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return v, nil
	case string:
		return encodeText([]string{v}, vr, cs), nil
	case []string:
		return encodeText(v, vr, cs), nil
	case []PersonName:
		return encodePersonNames(v, cs), nil
	case []IntegerString:
		// values without an original wire form are caller constructed and are
		// formatted from Value, zero included
		parts := make([]string, len(v))
		for i, is := range v {
			parts[i] = is.Original
			if is.Original == "" {
				parts[i] = strconv.FormatInt(is.Value, 10)
			}
		}
		return []byte(strings.Join(parts, `\`)), nil
	case []DecimalString:
		parts := make([]string, len(v))
		for i, d := range v {
			parts[i] = d.Original
			if d.Original == "" {
				parts[i] = strconv.FormatFloat(d.Value, 'g', -1, 64)
			}
		}
		return []byte(strings.Join(parts, `\`)), nil
	case []DataElementTag:
		var buf bytes.Buffer
		for _, tag := range v {
			bw := &dcmWriter{&buf}
			if err := bw.Tag(order, tag); err != nil {
				return nil, err
			}
		}
		return buf.Bytes(), nil
	case []int16, []uint16, []int32, []uint32, []int64, []uint64, []float32, []float64:
		var buf bytes.Buffer
		if err := binary.Write(&buf, order, v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cannot encode value of type %T for VR %s", v, vr)
	}
}

func encodeText(values []string, vr *VR, cs *SpecificCharacterSet) []byte {
	s := strings.Join(values, `\`)
	if vr.usesCharacterSet() {
		return cs.encode(s)
	}
	return []byte(s)
}

func encodePersonNames(names []PersonName, cs *SpecificCharacterSet) []byte {
	encoded := make([][]byte, len(names))
	for i, name := range names {
		groups := [][]byte{
			encodeWith(cs.componentGroupEncoding(0), name.Alphabetic),
			encodeWith(cs.componentGroupEncoding(1), name.Ideographic),
			encodeWith(cs.componentGroupEncoding(2), name.Phonetic),
		}
		joined := bytes.Join(groups, []byte("="))
		encoded[i] = bytes.TrimRight(joined, "=")
	}
	return bytes.Join(encoded, []byte(`\`))
}
