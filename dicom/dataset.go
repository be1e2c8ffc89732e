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
	"sort"
	"strings"
)

// DataSet models a DICOM Data Set as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
//
// Element lookup is by tag; iteration order is the ascending uint32 tag
// order via SortedElements.
type DataSet struct {
	// Elements is a map of DataElementTag to *DataElement
	Elements map[DataElementTag]*DataElement

	// CharacterSet is the character set declared by this data set's
	// (0008,0005), or the parent's for nested items that omit it
	CharacterSet *SpecificCharacterSet

	undefinedLengthItem bool
	offset              int64
}

// NewDataSet returns an empty DataSet
func NewDataSet() *DataSet {
	return &DataSet{
		Elements:     map[DataElementTag]*DataElement{},
		CharacterSet: defaultCharacterSet,
	}
}

// Add inserts the element, replacing any element with the same tag
func (ds *DataSet) Add(e *DataElement) {
	ds.Elements[e.Tag] = e
}

// Get returns the element with the given tag, or nil
func (ds *DataSet) Get(tag DataElementTag) *DataElement {
	return ds.Elements[tag]
}

// Delete removes the element with the given tag if present
func (ds *DataSet) Delete(tag DataElementTag) {
	delete(ds.Elements, tag)
}

// Len returns the number of elements in the data set
func (ds *DataSet) Len() int {
	return len(ds.Elements)
}

// Offset returns the stream position of the first element of this data set.
// For sequence items this is the position of the Item tag. Diagnostics only.
func (ds *DataSet) Offset() int64 {
	return ds.offset
}

// SortedTags returns the tags in the data set in ascending order
func (ds *DataSet) SortedTags() []DataElementTag {
	tags := make([]DataElementTag, 0, len(ds.Elements))
	for tag := range ds.Elements {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// SortedElements returns the elements of the data set in ascending tag order
func (ds *DataSet) SortedElements() []*DataElement {
	tags := ds.SortedTags()
	elems := make([]*DataElement, 0, len(tags))
	for _, tag := range tags {
		elems = append(elems, ds.Elements[tag])
	}
	return elems
}

// GetByKeyword returns the element registered under the given data dictionary
// keyword, e.g. "PatientName"
func (ds *DataSet) GetByKeyword(keyword string) *DataElement {
	tag, ok := TagFromKeyword(keyword)
	if !ok {
		return nil
	}
	return ds.Get(tag)
}

// SetByKeyword adds an element by data dictionary keyword with the
// dictionary's VR. It fails when the keyword is unknown.
func (ds *DataSet) SetByKeyword(keyword string, value interface{}) error {
	tag, ok := TagFromKeyword(keyword)
	if !ok {
		return fmt.Errorf("unknown data dictionary keyword: %q", keyword)
	}
	ds.Add(NewDataElement(tag, nil, value))
	return nil
}

// uint16Value returns the first 16-bit value of the element with the given
// tag. Used by the ambiguous VR resolver.
func (ds *DataSet) uint16Value(tag DataElementTag) (uint16, bool) {
	e := ds.Get(tag)
	if e == nil {
		return 0, false
	}
	return e.firstUint16()
}

func (ds *DataSet) String() string {
	var sb strings.Builder
	for _, e := range ds.SortedElements() {
		fmt.Fprintf(&sb, "%s\n", e)
	}
	return sb.String()
}
