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
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTransferSyntax(t *testing.T) {
	ts := lookupTransferSyntax(ImplicitVRLittleEndianUID)
	assert.True(t, ts.implicit)
	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), ts.order)

	ts = lookupTransferSyntax(ExplicitVRBigEndianUID)
	assert.False(t, ts.implicit)
	assert.Equal(t, binary.ByteOrder(binary.BigEndian), ts.order)

	ts = lookupTransferSyntax(DeflatedExplicitVRLittleEndianUID)
	assert.True(t, ts.deflated)

	// encapsulated syntaxes keep their uid with explicit VR LE framing
	ts = lookupTransferSyntax(JPEGBaselineUID)
	assert.Equal(t, JPEGBaselineUID, ts.uid)
	assert.False(t, ts.implicit)
	assert.False(t, ts.deflated)
	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), ts.order)
}

func TestSyntaxForEncoding(t *testing.T) {
	ts, err := syntaxForEncoding(true, true, false)
	require.NoError(t, err)
	assert.Equal(t, ImplicitVRLittleEndianUID, ts.uid)

	ts, err = syntaxForEncoding(false, true, true)
	require.NoError(t, err)
	assert.Equal(t, DeflatedExplicitVRLittleEndianUID, ts.uid)

	_, err = syntaxForEncoding(true, false, false)
	assert.ErrorIs(t, err, ErrUnsupportedSyntax)
}

func TestHeaderSize(t *testing.T) {
	assert.Equal(t, uint32(8), headerSize(implicitVRLittleEndian, OBVR))
	assert.Equal(t, uint32(8), headerSize(explicitVRLittleEndian, CSVR))
	assert.Equal(t, uint32(12), headerSize(explicitVRLittleEndian, OBVR))
	assert.Equal(t, uint32(12), headerSize(explicitVRLittleEndian, SQVR))
}
