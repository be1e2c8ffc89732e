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
	"io"

	"go.uber.org/zap"
)

// collectDataSet drains the iterator into a DataSet. On a mid-stream error
// the elements read so far are returned together with the error, so callers
// can salvage a truncated file.
func collectDataSet(it *dataElementIterator) (*DataSet, error) {
	ds := NewDataSet()
	ds.offset = it.dr.Pos()

	for {
		element, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			ds.CharacterSet = it.charset
			return ds, err
		}
		if prev := ds.Get(element.Tag); prev != nil {
			it.state.logger.Warn("duplicate tag in data set; keeping the later element",
				zap.Stringer("tag", element.Tag),
				zap.Int64("firstOffset", prev.Offset()),
				zap.Int64("secondOffset", element.Offset()))
		}
		ds.Add(element)
	}

	ds.CharacterSet = it.charset
	return ds, nil
}

// readSequence parses a sequence value: zero length yields an empty
// sequence, undefined length reads items until the sequence delimitation
// item, and a defined length reads items until the byte budget is spent.
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func readSequence(dr *dcmReader, syntax transferSyntax, length uint32, cs *SpecificCharacterSet, state *readState) (*Sequence, error) {
	seq := &Sequence{Items: []*DataSet{}}
	if length == 0 {
		return seq, nil
	}

	limit := int64(-1)
	if length == UndefinedLength {
		seq.undefinedLength = true
	} else {
		limit = dr.Pos() + int64(length)
	}

	for {
		if limit >= 0 && dr.Pos() >= limit {
			return seq, nil
		}

		itemOffset := dr.Pos()
		tag, err := dr.Tag(syntax.order)
		if err != nil {
			return seq, fmt.Errorf("reading item tag at offset %d: %v", itemOffset, err)
		}
		itemLength, err := dr.UInt32(syntax.order)
		if err != nil {
			return seq, fmt.Errorf("reading item length at offset %d: %v", itemOffset, err)
		}

		switch tag {
		case SequenceDelimitationItemTag:
			// also accepted inside a defined length sequence: some writers
			// emit both a length and a delimiter
			if itemLength != 0 {
				state.logger.Warn("delimitation item with non-zero length",
					zap.Uint32("length", itemLength))
			}
			return seq, nil
		case ItemTag:
			item, err := readItem(dr, syntax, itemLength, cs, state, itemOffset)
			if item != nil {
				seq.append(item)
			}
			if err != nil {
				return seq, err
			}
		default:
			return seq, fmt.Errorf("expected item tag at offset %d, got %s", itemOffset, tag)
		}
	}
}

// readItem parses one sequence item into a DataSet. The item inherits the
// enclosing data set's character set unless it declares its own (0008,0005).
func readItem(dr *dcmReader, syntax transferSyntax, length uint32, cs *SpecificCharacterSet, state *readState, offset int64) (*DataSet, error) {
	it := &dataElementIterator{
		dr:      dr,
		syntax:  syntax,
		state:   state,
		charset: cs,
		limit:   -1,
	}
	if length != UndefinedLength {
		it.limit = dr.Pos() + int64(length)
	}

	item, err := collectDataSet(it)
	item.offset = offset
	item.undefinedLengthItem = length == UndefinedLength
	if err != nil {
		return item, fmt.Errorf("item at offset %d: %w", offset, err)
	}
	return item, nil
}
