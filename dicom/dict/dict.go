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

// Package dict provides the DICOM data dictionary consumed by the codec core:
// a mapping from data element tags to their value representation, name and
// keyword, plus the reverse keyword lookup used for keyword-based data set
// access. The table is restricted to the standard tags this repository
// exercises; unknown tags resolve to a not-found result, never to a guess.
package dict

import "fmt"

// Entry is a single data dictionary record.
//
// VR holds the value representation as registered in PS3.6, which for some
// tags is ambiguous until write time (e.g. "US or SS", "OB or OW").
type Entry struct {
	Tag     uint32
	VR      string
	Name    string
	Keyword string
}

var byTag = map[uint32]Entry{}
var byKeyword = map[string]Entry{}

func init() {
	for _, e := range entries {
		byTag[e.Tag] = e
		byKeyword[e.Keyword] = e
	}
}

// tagMasks normalizes repeating-group tags before lookup. Tags in the DICOM
// data dictionary have wildcards (e.g. the Overlay Data tag is defined as
// (60xx,3000) and stored here with the x's set to 0). The mask 0xFF00FFFF
// folds a concrete repeating-group tag onto its dictionary form.
var tagMasks = []uint32{0xFFFFFFFF, 0xFF00FFFF}

// Lookup returns the dictionary entry for tag. Group length elements
// (gggg,0000) are synthesized since they share a single definition for every
// group. The boolean result reports whether the tag is known.
func Lookup(tag uint32) (Entry, bool) {
	if tag&0xFFFF == 0 {
		group := tag >> 16
		return Entry{
			Tag:     tag,
			VR:      "UL",
			Name:    fmt.Sprintf("Group %04X Length", group),
			Keyword: "",
		}, true
	}
	for _, m := range tagMasks {
		if e, ok := byTag[tag&m]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

// ByKeyword returns the dictionary entry whose keyword matches exactly.
func ByKeyword(keyword string) (Entry, bool) {
	e, ok := byKeyword[keyword]
	return e, ok
}
