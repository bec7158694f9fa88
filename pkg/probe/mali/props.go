// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mali

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/NVIDIA/gpu-probe/pkg/errors"
)

// Property IDs from the kbase GET_GPUPROPS stream. Only the IDs needed
// for identification are decoded; everything else is skipped by width.
const (
	propProductID         = 1
	propL2Log2CacheSize   = 14
	propL2NumSlices       = 15
	propRawL2Features     = 29
	propRawCoreFeatures   = 30
	propRawGPUID          = 55
	propRawThreadFeatures = 59
	propNumCoreGroups     = 62

	// IDs 64-79 carry one shader-core mask per core group.
	propCoreMaskFirst = 64
	propCoreMaskLast  = 79
)

// DecodeConfig controls how tolerant the property decoder is of
// irregular streams. Older kernels emit core-group masks without a
// preceding group count, and some truncate the final record.
type DecodeConfig struct {
	// AcceptTruncated stops decoding at a partial trailing record
	// instead of failing.
	AcceptTruncated bool

	// AcceptUncountedMasks folds in core masks whose index exceeds the
	// reported core-group count (or appears before any count at all).
	AcceptUncountedMasks bool
}

var (
	// Lenient accepts the quirks observed across vendor kernel builds.
	Lenient = DecodeConfig{AcceptTruncated: true, AcceptUncountedMasks: true}

	// Strict requires a well-formed stream and ignores masks outside
	// the reported core-group count.
	Strict = DecodeConfig{}
)

// Properties is the decoded subset of the kbase property stream.
type Properties struct {
	ProductID         uint32
	L2Log2CacheSize   uint64
	NumL2Slices       uint64
	RawL2Features     uint64
	RawCoreFeatures   uint32
	RawGPUID          uint64
	RawThreadFeatures uint32
	NumCoreGroups     uint64
	ShaderCoreMask    uint64
}

// NumShaderCores is the population count of the combined core mask.
func (p Properties) NumShaderCores() uint32 {
	return uint32(bits.OnesCount64(p.ShaderCoreMask))
}

// decodeProps walks the packed key/value stream. The key's low two bits
// select the value width as 1<<code bytes, so every width is decodable;
// the only malformation is a record cut short by the buffer end.
func decodeProps(buf []byte, cfg DecodeConfig) (Properties, error) {
	var p Properties
	sawGroupCount := false

	pos := 0
	for pos < len(buf) {
		if pos+4 > len(buf) {
			if cfg.AcceptTruncated {
				break
			}
			return p, errors.New(errors.ErrCodeMalformedResponse,
				fmt.Sprintf("property stream truncated at offset %d", pos))
		}
		key := binary.LittleEndian.Uint32(buf[pos:])
		pos += 4

		id := key >> 2
		width := 1 << (key & 3)
		if pos+width > len(buf) {
			if cfg.AcceptTruncated {
				break
			}
			return p, errors.New(errors.ErrCodeMalformedResponse,
				fmt.Sprintf("property %d value truncated at offset %d", id, pos))
		}

		var v uint64
		switch width {
		case 1:
			v = uint64(buf[pos])
		case 2:
			v = uint64(binary.LittleEndian.Uint16(buf[pos:]))
		case 4:
			v = uint64(binary.LittleEndian.Uint32(buf[pos:]))
		case 8:
			v = binary.LittleEndian.Uint64(buf[pos:])
		}
		pos += width

		switch {
		case id == propProductID:
			p.ProductID = uint32(v)
		case id == propL2Log2CacheSize:
			p.L2Log2CacheSize = v
		case id == propL2NumSlices:
			p.NumL2Slices = v
		case id == propRawL2Features:
			p.RawL2Features = v
		case id == propRawCoreFeatures:
			p.RawCoreFeatures = uint32(v)
		case id == propRawGPUID:
			p.RawGPUID = v
		case id == propRawThreadFeatures:
			p.RawThreadFeatures = uint32(v)
		case id == propNumCoreGroups:
			p.NumCoreGroups = v
			sawGroupCount = true
		case id >= propCoreMaskFirst && id <= propCoreMaskLast:
			group := uint64(id - propCoreMaskFirst)
			counted := sawGroupCount && group < p.NumCoreGroups
			if counted || cfg.AcceptUncountedMasks {
				p.ShaderCoreMask |= v
			}
		}
	}
	return p, nil
}
