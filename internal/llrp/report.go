//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"encoding/binary"
	"encoding/hex"
)

// Is reports whether the Custom parameter carries the given vendor subtype.
func (c *Custom) Is(vendor VendorPEN, subtype CustomParamSubtype) bool {
	return VendorPEN(c.VendorID) == vendor && c.Subtype == subtype
}

// ExtractRSSI returns the tag's peak RSSI in dBm.
//
// Impinj Readers can report a dBm x100 value in a Custom parameter;
// when present it wins over the standard one-byte PeakRSSI,
// which is why the result is a float.
func (rt *TagReportData) ExtractRSSI() (float64, bool) {
	for i := range rt.Custom {
		c := &rt.Custom[i]
		if c.Is(PENImpinj, ImpinjPeakRSSI) && len(c.Data) == 2 {
			cB := int16(binary.BigEndian.Uint16(c.Data)) // #nosec G115
			return float64(cB) / 100.0, true
		}
	}

	if rt.PeakRSSI != nil {
		return float64(*rt.PeakRSSI), true
	}
	return 0, false
}

// ReadDataAsHex returns the data of a successful C1G2 Read result
// as a lowercase hex string.
func (rt *TagReportData) ReadDataAsHex() (string, bool) {
	res := rt.C1G2ReadOpSpecResult
	if res == nil || res.C1G2ReadOpSpecResultType != C1G2ReadSuccess {
		return "", false
	}
	return wordsToHex(res.Data), true
}

// wordsToHex is hex.EncodeToString for the 16-bit words
// C1G2 memory operations traffic in.
func wordsToHex(words []uint16) string {
	b := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(b[i*2:], w)
	}
	return hex.EncodeToString(b)
}
