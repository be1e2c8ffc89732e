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
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Implementation identifiers written into synthesized file meta groups
// (PS3.10 7.1)
const (
	implementationClassUID = "2.25.305101021197676493887190356951431953440"
	implementationVersion  = "DCMIO_1_0"
	fileMetaVersionMajor   = 0x00
	fileMetaVersionMinor   = 0x01
)

// readFileMeta reads the File Meta group, which is always encoded in
// Explicit VR Little Endian regardless of the transfer syntax of the data
// set that follows (PS3.10 7.1). Reading stops in front of the first element
// outside group 0002.
func readFileMeta(dr *dcmReader, state *readState) (*DataSet, error) {
	metaState := &readState{
		logger: state.logger,
		stop: func(tag DataElementTag, vr *VR, length uint32) bool {
			return !tag.IsMetaElement()
		},
	}
	it := newDataElementIterator(dr, explicitVRLittleEndian, metaState)

	meta, err := collectDataSet(it)
	if err != nil {
		return meta, fmt.Errorf("reading file meta group: %w", err)
	}
	return meta, nil
}

// completeFileMeta fills in the file meta elements a conformant Part 10
// stream requires (PS3.10 Table 7.1-1), synthesizing what is missing. The
// media storage SOP identifiers are borrowed from the main data set;
// ErrMissingFileMeta is returned when they are available from neither place.
func completeFileMeta(meta, dataSet *DataSet, transferSyntaxUID string) (*DataSet, error) {
	out := NewDataSet()
	if meta != nil {
		for tag, element := range meta.Elements {
			out.Elements[tag] = element
		}
	}

	if out.Get(FileMetaInformationVersionTag) == nil {
		out.Add(NewDataElement(FileMetaInformationVersionTag, OBVR,
			[]byte{fileMetaVersionMajor, fileMetaVersionMinor}))
	}
	out.Add(NewDataElement(TransferSyntaxUIDTag, UIVR, []string{transferSyntaxUID}))
	if out.Get(ImplementationClassUIDTag) == nil {
		out.Add(NewDataElement(ImplementationClassUIDTag, UIVR, []string{implementationClassUID}))
		out.Add(NewDataElement(ImplementationVersionNameTag, SHVR, []string{implementationVersion}))
	}

	missing := []DataElementTag{}
	for _, pair := range [][2]DataElementTag{
		{MediaStorageSOPClassUIDTag, SOPClassUIDTag},
		{MediaStorageSOPInstanceUIDTag, SOPInstanceUIDTag},
	} {
		metaTag, dataTag := pair[0], pair[1]
		if out.Get(metaTag) != nil {
			continue
		}
		borrowed := borrowUID(dataSet, dataTag)
		if borrowed == "" {
			missing = append(missing, metaTag)
			continue
		}
		out.Add(NewDataElement(metaTag, UIVR, []string{borrowed}))
	}
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, tag := range missing {
			names[i] = tag.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingFileMeta, strings.Join(names, ", "))
	}
	return out, nil
}

func borrowUID(ds *DataSet, tag DataElementTag) string {
	if ds == nil {
		return ""
	}
	element := ds.Get(tag)
	if element == nil {
		return ""
	}
	s, err := element.StringValue()
	if err != nil {
		return ""
	}
	return s
}

// writeFileMeta writes the File Meta group in Explicit VR Little Endian,
// prefixed by a File Meta Information Group Length element holding the byte
// length of everything after it
func writeFileMeta(dw *dcmWriter, meta *DataSet) error {
	var buf bytes.Buffer
	bufWriter := &dcmWriter{&buf}
	for _, element := range meta.SortedElements() {
		if element.Tag == FileMetaInformationGroupLengthTag {
			continue
		}
		if !element.Tag.IsMetaElement() {
			return fmt.Errorf("non file meta element %s in file meta group", element.Tag)
		}
		if err := writeDataElement(bufWriter, element, explicitVRLittleEndian); err != nil {
			return err
		}
	}

	groupLength := NewDataElement(FileMetaInformationGroupLengthTag, ULVR, []uint32{uint32(buf.Len())})
	if err := writeDataElement(dw, groupLength, explicitVRLittleEndian); err != nil {
		return err
	}
	return dw.Bytes(buf.Bytes())
}

// NewUID generates a unique identifier under the UUID-derived "2.25" root
// defined in PS3.5 B.2
func NewUID() string {
	id := uuid.New()
	var n big.Int
	n.SetBytes(id[:])
	return "2.25." + n.String()
}
