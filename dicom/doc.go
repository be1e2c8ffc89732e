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

// Package dicom reads and writes the DICOM file format defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part10.html
//
// ReadFile parses a Part 10 file into a File: preamble, file meta group and
// the main data set. Element values are kept as raw bytes until first
// accessed through DataElement.Value, and an element whose value was never
// replaced writes back its exact original bytes, so read-modify-write cycles
// only disturb the elements actually changed.
//
//	file, err := dicom.ReadFile("ct.dcm", dicom.ReadOptions{})
//	if err != nil {
//		// handle error
//	}
//	name, _ := file.DataSet.GetByKeyword("PatientName").Value()
//
// All four standard uncompressed transfer syntaxes are supported, plus
// Deflated Explicit VR Little Endian and the element framing of encapsulated
// syntaxes. Writing defaults to a conformant Part 10 stream;
// WriteOptions.WriteLikeOriginal reproduces the framing a file was read
// with instead.
package dicom
