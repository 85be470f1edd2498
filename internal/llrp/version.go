//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import "strconv"

// VersionNum is an LLRP protocol version.
// It occupies 3 bits of the message header.
type VersionNum uint8

const (
	versionUnknown = VersionNum(0)
	Version1_0_1   = VersionNum(1)
	Version1_1     = VersionNum(2)

	// VersionMin is the lowest version this package speaks.
	VersionMin = Version1_0_1
	// VersionMax is the highest version this package understands.
	VersionMax = Version1_1
)

func (v VersionNum) String() string {
	switch v {
	case Version1_0_1:
		return "1.0.1"
	case Version1_1:
		return "1.1"
	default:
		return "unknown version " + strconv.Itoa(int(v))
	}
}
