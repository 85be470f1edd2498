//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

// VendorPEN is an IANA Private Enterprise Number,
// used to namespace Custom parameters and messages.
type VendorPEN uint32

const (
	PENImpinj = VendorPEN(25882)
	PENAlien  = VendorPEN(17996)
	PENZebra  = VendorPEN(10642)
)

// ImpinjModel is the ModelName reported
// in an Impinj Reader's GeneralDeviceCapabilities.
type ImpinjModel uint32

const (
	SpeedwayR220 = ImpinjModel(2001001)
	SpeedwayR420 = ImpinjModel(2001002)
	XPortal      = ImpinjModel(2001003)
	XArrayWM     = ImpinjModel(2001004)
	XArrayEAP    = ImpinjModel(2001006)
	XArray       = ImpinjModel(2001007)
	XSpan        = ImpinjModel(2001008)
	SpeedwayR120 = ImpinjModel(2001009)
	R700         = ImpinjModel(2001052)
)

// CustomParamSubtype distinguishes Custom parameters within a vendor's PEN.
// It's an alias, not a defined type, so vendor constants stay assignable
// to the uint32 Subtype field of Custom.
type CustomParamSubtype = uint32

// ImpinjParamSubtype is a CustomParamSubtype under the Impinj PEN.
type ImpinjParamSubtype = CustomParamSubtype

const (
	ImpinjSearchMode               = ImpinjParamSubtype(23)
	ImpinjTagReportContentSelector = ImpinjParamSubtype(50)
	ImpinjEnablePeakRSSI           = ImpinjParamSubtype(53)
	ImpinjPeakRSSI                 = ImpinjParamSubtype(57)
)

// impinjSearchMode is the payload of an ImpinjSearchMode Custom parameter.
// Impinj collapses C1G2 state-aware filtering into a few fixed modes,
// since their Readers don't expose the standard aware-filtering controls.
type impinjSearchMode = uint16

const (
	// impjReaderSelected lets the Reader pick; its behavior is undocumented.
	impjReaderSelected = impinjSearchMode(0)

	// impjSingleTarget queries tags A->B.
	// Singulated tags stay quiet until their session flag decays.
	impjSingleTarget = impinjSearchMode(1)

	// impjDualTarget queries A->B until quiet, then B->A, in a loop.
	// Best for repeated observation of small, static populations in S2/S3.
	impjDualTarget = impinjSearchMode(2)

	// impjSingleTargetSuppressed is single target plus TagFocus:
	// Impinj Monza tags are told to refresh their S1 flag persistence,
	// so each tag reports once rather than flip-flopping every 500ms-5s.
	// Only meaningful in Session 1 with mostly-Monza populations.
	impjSingleTargetSuppressed = impinjSearchMode(3)

	// impjSingleTargetReset queries B->A, returning tags to the A state.
	impjSingleTargetReset = impinjSearchMode(5)

	// impjDualTargetWithReset queries A->B until quiet,
	// then issues a Select to flip the session B->A in one shot.
	// Impinj recommends it for high-count, high-throughput populations.
	impjDualTargetWithReset = impinjSearchMode(6)
)
