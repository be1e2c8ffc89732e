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
)

// ParseEncapsulatedFragments splits the item-structured payload of an
// undefined length pixel data element into the Basic Offset Table and the
// compressed fragments, per
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
//
// The payload is the raw value of the element as returned by RawBytes: item
// headers included, sequence delimitation item excluded. The first item is
// the offset table, which may be empty; every following item is a fragment.
func ParseEncapsulatedFragments(payload []byte, order binary.ByteOrder) (offsets []uint32, fragments [][]byte, err error) {
	items, err := splitItems(payload, order)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("encapsulated payload has no basic offset table item")
	}

	table := items[0]
	if len(table)%4 != 0 {
		return nil, nil, fmt.Errorf("basic offset table length %d is not a multiple of 4", len(table))
	}
	offsets = make([]uint32, 0, len(table)/4)
	for i := 0; i < len(table); i += 4 {
		offsets = append(offsets, order.Uint32(table[i:i+4]))
	}
	return offsets, items[1:], nil
}

func splitItems(payload []byte, order binary.ByteOrder) ([][]byte, error) {
	items := [][]byte{}
	for pos := 0; pos < len(payload); {
		if len(payload)-pos < 8 {
			return nil, fmt.Errorf("truncated item header at payload offset %d", pos)
		}
		tag := NewDataElementTag(order.Uint16(payload[pos:pos+2]), order.Uint16(payload[pos+2:pos+4]))
		length := order.Uint32(payload[pos+4 : pos+8])
		if tag != ItemTag {
			return nil, fmt.Errorf("expected item tag at payload offset %d, got %s", pos, tag)
		}
		if length == UndefinedLength {
			return nil, fmt.Errorf("undefined length item at payload offset %d", pos)
		}
		pos += 8
		if pos+int(length) > len(payload) {
			return nil, fmt.Errorf("item at payload offset %d overruns the payload", pos-8)
		}
		items = append(items, payload[pos:pos+int(length)])
		pos += int(length)
	}
	return items, nil
}

// EncodeEncapsulatedFragments builds the item-structured payload of an
// undefined length pixel data element. Pass the result to SetValue on an
// element marked undefined length; the writer appends the sequence
// delimitation item. A nil offsets slice produces an empty offset table.
func EncodeEncapsulatedFragments(offsets []uint32, fragments [][]byte, order binary.ByteOrder) ([]byte, error) {
	var buf bytes.Buffer
	dw := &dcmWriter{&buf}

	table := make([]byte, 4*len(offsets))
	for i, off := range offsets {
		order.PutUint32(table[4*i:], off)
	}
	if err := writeFragmentItem(dw, order, table); err != nil {
		return nil, err
	}
	for i, fragment := range fragments {
		if len(fragment)%2 != 0 {
			return nil, fmt.Errorf("fragment %d has odd length %d", i, len(fragment))
		}
		if err := writeFragmentItem(dw, order, fragment); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeFragmentItem(dw *dcmWriter, order binary.ByteOrder, b []byte) error {
	if err := dw.Tag(order, ItemTag); err != nil {
		return err
	}
	if err := dw.UInt32(order, uint32(len(b))); err != nil {
		return err
	}
	return dw.Bytes(b)
}
