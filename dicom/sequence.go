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

// Sequence models a Sequence of Items as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
type Sequence struct {
	// Items are the data sets contained in the sequence, in stream order
	Items []*DataSet

	undefinedLength bool
}

// NewSequence returns a sequence over the given items, encoded with explicit
// item lengths on write
func NewSequence(items ...*DataSet) *Sequence {
	return &Sequence{Items: items}
}

func (s *Sequence) append(item *DataSet) {
	s.Items = append(s.Items, item)
}

// IsUndefinedLength reports whether the sequence was read with (and will be
// written with) the undefined length encoding
func (s *Sequence) IsUndefinedLength() bool {
	return s.undefinedLength
}

func (s *Sequence) String() string {
	var sb strings.Builder
	for i, item := range s.Items {
		fmt.Fprintf(&sb, "item %d:\n%v", i, item)
	}
	return sb.String()
}
