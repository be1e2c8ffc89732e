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

import "errors"

// Error kinds surfaced by the package. Callers match them with errors.Is;
// the wrapped message carries the offending tag and offset where known.
var (
	// ErrNotDICOM is returned when the DICM marker is absent and
	// ReadOptions.Force is not set.
	ErrNotDICOM = errors.New("missing DICM marker (set ReadOptions.Force to read headerless streams)")

	// ErrAmbiguousVR is returned when an element still carries a
	// dictionary-ambiguous VR at explicit VR write time. Run
	// ResolveAmbiguousVRs first or write with an implicit VR syntax.
	ErrAmbiguousVR = errors.New("ambiguous VR at write time")

	// ErrMissingFileMeta is returned when a conformant write is requested
	// but required File Meta elements are absent and cannot be synthesized.
	ErrMissingFileMeta = errors.New("missing required file meta elements")

	// ErrUnsupportedSyntax is returned for the Implicit VR + Big Endian
	// combination, which the standard does not define.
	ErrUnsupportedSyntax = errors.New("implicit VR big endian is not a valid transfer syntax")

	// ErrDeferredSource is returned when a deferred element's value is
	// requested but the source file can no longer be read.
	ErrDeferredSource = errors.New("deferred value source unavailable")
)
