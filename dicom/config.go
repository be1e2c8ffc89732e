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

import "go.uber.org/zap"

// ReadOptions configures Read and ReadFile
type ReadOptions struct {
	// Force reads streams that lack the preamble and DICM marker: the whole
	// stream is parsed as a bare data set, guessing Implicit VR Little Endian
	// framing when no file meta group is present.
	Force bool

	// DeferSizeThreshold, when positive, leaves the payload of any element
	// larger than this many bytes on disk, to be loaded on first access. Only
	// effective for ReadFile on a non-deflated stream; Read always loads
	// payloads eagerly.
	DeferSizeThreshold int64

	// StopBeforePixelData stops the parse in front of the pixel data element,
	// leaving it and everything after it unread. Shorthand for setting Stop
	// to StopBeforePixelData.
	StopBeforePixelData bool

	// Stop, when non-nil, is consulted with each top-level element header
	// before its value is read; returning true ends the parse in front of
	// that element. It is not consulted inside sequence items.
	Stop StopPredicate

	// Logger receives parse warnings (duplicate tags, unknown character set
	// terms). Defaults to zap.NewNop().
	Logger *zap.Logger
}

func (opts ReadOptions) logger() *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}

func (opts ReadOptions) stopPredicate() StopPredicate {
	if opts.Stop != nil {
		return opts.Stop
	}
	if opts.StopBeforePixelData {
		return StopBeforePixelData
	}
	return nil
}

// WriteOptions configures Write and WriteFile
type WriteOptions struct {
	// WriteLikeOriginal preserves the framing the File was read with: no
	// preamble or file meta group is synthesized when absent, and the
	// original transfer syntax flags are used as-is. When false the output
	// is a conformant Part 10 file: preamble, DICM marker and a complete
	// file meta group are always written.
	WriteLikeOriginal bool

	// Logger receives write warnings. Defaults to zap.NewNop().
	Logger *zap.Logger
}

func (opts WriteOptions) logger() *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}
