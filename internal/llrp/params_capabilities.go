//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

// ReaderCapability selects which capability groups a Reader should return.
type ReaderCapability uint8

const (
	ReaderCapAll                       = ReaderCapability(0)
	ReaderCapGeneralDeviceCapabilities = ReaderCapability(1)
	ReaderCapLLRPCapabilities          = ReaderCapability(2)
	ReaderCapRegulatoryCapabilities    = ReaderCapability(3)
	ReaderCapAirProtocolCapabilities   = ReaderCapability(4)
)

// GeneralDeviceCapabilities describes the device itself:
// who made it, its antenna and GPIO counts, and its receive sensitivity table.
type GeneralDeviceCapabilities struct {
	MaxSupportedAntennas    uint16
	CanSetAntennaProperties bool
	HasUTCClock             bool
	DeviceManufacturer      uint32
	Model                   uint32
	FirmwareVersion         string
	ReceiveSensitivities    []ReceiveSensitivityTableEntry
	GPIOCapabilities        GPIOCapabilities
	PerAntennaAirProtocols  []PerAntennaAirProtocol
}

func (gdc GeneralDeviceCapabilities) encodeTo(b *msgBuilder) {
	b.tlv(ParamGeneralDeviceCapabilities, func() {
		b.u16(gdc.MaxSupportedAntennas)
		var flags uint16
		if gdc.CanSetAntennaProperties {
			flags |= 1 << 15
		}
		if gdc.HasUTCClock {
			flags |= 1 << 14
		}
		b.u16(flags)
		b.u32(gdc.DeviceManufacturer)
		b.u32(gdc.Model)
		b.str(gdc.FirmwareVersion)
		for _, e := range gdc.ReceiveSensitivities {
			e.encodeTo(b)
		}
		gdc.GPIOCapabilities.encodeTo(b)
		for _, p := range gdc.PerAntennaAirProtocols {
			p.encodeTo(b)
		}
	})
}

func (gdc *GeneralDeviceCapabilities) decode(r *pReader, ph paramHeader) {
	gdc.MaxSupportedAntennas = r.u16()
	flags := r.u16()
	gdc.CanSetAntennaProperties = flags&(1<<15) != 0
	gdc.HasUTCClock = flags&(1<<14) != 0
	gdc.DeviceManufacturer = r.u32()
	gdc.Model = r.u32()
	gdc.FirmwareVersion = r.str()
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamReceiveSensitivityTableEntry:
			var e ReceiveSensitivityTableEntry
			e.decode(r, sub)
			gdc.ReceiveSensitivities = append(gdc.ReceiveSensitivities, e)
		case ParamGPIOCapabilities:
			gdc.GPIOCapabilities.decode(r, sub)
		case ParamPerAntennaAirProtocol:
			var p PerAntennaAirProtocol
			p.decode(r, sub)
			gdc.PerAntennaAirProtocols = append(gdc.PerAntennaAirProtocols, p)
		default:
			r.skip(sub)
		}
	}
}

type ReceiveSensitivityTableEntry struct {
	Index              uint16
	ReceiveSensitivity int16 // dB relative to max sensitivity
}

func (e ReceiveSensitivityTableEntry) encodeTo(b *msgBuilder) {
	b.tlv(ParamReceiveSensitivityTableEntry, func() {
		b.u16(e.Index)
		b.u16(uint16(e.ReceiveSensitivity))
	})
}

func (e *ReceiveSensitivityTableEntry) decode(r *pReader, ph paramHeader) {
	e.Index = r.u16()
	e.ReceiveSensitivity = int16(r.u16())
	r.endParam(ph)
}

type PerAntennaAirProtocol struct {
	AntennaID      uint16
	AirProtocolIDs []AirProtocolIDType
}

func (p PerAntennaAirProtocol) encodeTo(b *msgBuilder) {
	b.tlv(ParamPerAntennaAirProtocol, func() {
		b.u16(p.AntennaID)
		b.u16(uint16(len(p.AirProtocolIDs)))
		for _, id := range p.AirProtocolIDs {
			b.u8(uint8(id))
		}
	})
}

func (p *PerAntennaAirProtocol) decode(r *pReader, ph paramHeader) {
	p.AntennaID = r.u16()
	n := int(r.u16())
	for i := 0; i < n && r.err == nil; i++ {
		p.AirProtocolIDs = append(p.AirProtocolIDs, AirProtocolIDType(r.u8()))
	}
	r.endParam(ph)
}

type GPIOCapabilities struct {
	NumGPIs uint16
	NumGPOs uint16
}

func (g GPIOCapabilities) encodeTo(b *msgBuilder) {
	b.tlv(ParamGPIOCapabilities, func() {
		b.u16(g.NumGPIs)
		b.u16(g.NumGPOs)
	})
}

func (g *GPIOCapabilities) decode(r *pReader, ph paramHeader) {
	g.NumGPIs = r.u16()
	g.NumGPOs = r.u16()
	r.endParam(ph)
}

// LLRPCapabilities describes protocol-level limits:
// how many ROSpecs, AccessSpecs, and OpSpecs the Reader can hold.
type LLRPCapabilities struct {
	CanDoRFSurvey                          bool
	CanReportBufferFillWarning             bool
	SupportsClientRequestOpSpec            bool
	CanDoTagInventoryStateAwareSingulation bool
	SupportsEventsAndReportHolding         bool
	MaxPriorityLevelSupported              uint8
	ClientRequestedOpSpecTimeout           uint16
	MaxROSpecs                             uint32
	MaxSpecsPerROSpec                      uint32
	MaxInventoryParameterSpecsPerAISpec    uint32
	MaxAccessSpecs                         uint32
	MaxOpSpecsPerAccessSpec                uint32
}

func (lc LLRPCapabilities) encodeTo(b *msgBuilder) {
	b.tlv(ParamLLRPCapabilities, func() {
		var flags uint8
		if lc.CanDoRFSurvey {
			flags |= 1 << 7
		}
		if lc.CanReportBufferFillWarning {
			flags |= 1 << 6
		}
		if lc.SupportsClientRequestOpSpec {
			flags |= 1 << 5
		}
		if lc.CanDoTagInventoryStateAwareSingulation {
			flags |= 1 << 4
		}
		if lc.SupportsEventsAndReportHolding {
			flags |= 1 << 3
		}
		b.u8(flags)
		b.u8(lc.MaxPriorityLevelSupported)
		b.u16(lc.ClientRequestedOpSpecTimeout)
		b.u32(lc.MaxROSpecs)
		b.u32(lc.MaxSpecsPerROSpec)
		b.u32(lc.MaxInventoryParameterSpecsPerAISpec)
		b.u32(lc.MaxAccessSpecs)
		b.u32(lc.MaxOpSpecsPerAccessSpec)
	})
}

func (lc *LLRPCapabilities) decode(r *pReader, ph paramHeader) {
	flags := r.u8()
	lc.CanDoRFSurvey = flags&(1<<7) != 0
	lc.CanReportBufferFillWarning = flags&(1<<6) != 0
	lc.SupportsClientRequestOpSpec = flags&(1<<5) != 0
	lc.CanDoTagInventoryStateAwareSingulation = flags&(1<<4) != 0
	lc.SupportsEventsAndReportHolding = flags&(1<<3) != 0
	lc.MaxPriorityLevelSupported = r.u8()
	lc.ClientRequestedOpSpecTimeout = r.u16()
	lc.MaxROSpecs = r.u32()
	lc.MaxSpecsPerROSpec = r.u32()
	lc.MaxInventoryParameterSpecsPerAISpec = r.u32()
	lc.MaxAccessSpecs = r.u32()
	lc.MaxOpSpecsPerAccessSpec = r.u32()
	r.endParam(ph)
}

// RegulatoryCapabilities describes what the regulatory region permits.
type RegulatoryCapabilities struct {
	CountryCode            uint16
	CommunicationsStandard uint16
	UHFBandCapabilities    *UHFBandCapabilities
	Custom                 []Custom
	Unknowns               []UnknownParameter
}

func (rc RegulatoryCapabilities) encodeTo(b *msgBuilder) {
	b.tlv(ParamRegulatoryCapabilities, func() {
		b.u16(rc.CountryCode)
		b.u16(rc.CommunicationsStandard)
		if rc.UHFBandCapabilities != nil {
			rc.UHFBandCapabilities.encodeTo(b)
		}
		for _, u := range rc.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range rc.Custom {
			c.encodeTo(b)
		}
	})
}

func (rc *RegulatoryCapabilities) decode(r *pReader, ph paramHeader) {
	rc.CountryCode = r.u16()
	rc.CommunicationsStandard = r.u16()
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamUHFBandCapabilities:
			rc.UHFBandCapabilities = &UHFBandCapabilities{}
			rc.UHFBandCapabilities.decode(r, sub)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			rc.Custom = append(rc.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				rc.Unknowns = append(rc.Unknowns, r.unknown(sub))
			}
		}
	}
}

type UHFBandCapabilities struct {
	TransmitPowerLevels  []TransmitPowerLevelTableEntry
	FrequencyInformation FrequencyInformation
	C1G2RFModes          UHFC1G2RFModeTable
}

func (uc UHFBandCapabilities) encodeTo(b *msgBuilder) {
	b.tlv(ParamUHFBandCapabilities, func() {
		for _, e := range uc.TransmitPowerLevels {
			e.encodeTo(b)
		}
		uc.FrequencyInformation.encodeTo(b)
		uc.C1G2RFModes.encodeTo(b)
	})
}

func (uc *UHFBandCapabilities) decode(r *pReader, ph paramHeader) {
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamTransmitPowerLevelTableEntry:
			var e TransmitPowerLevelTableEntry
			e.decode(r, sub)
			uc.TransmitPowerLevels = append(uc.TransmitPowerLevels, e)
		case ParamFrequencyInformation:
			uc.FrequencyInformation.decode(r, sub)
		case ParamUHFC1G2RFModeTable:
			uc.C1G2RFModes.decode(r, sub)
		default:
			r.skip(sub)
		}
	}
}

type TransmitPowerLevelTableEntry struct {
	Index              uint16
	TransmitPowerValue MillibelMilliwatt
}

func (e TransmitPowerLevelTableEntry) encodeTo(b *msgBuilder) {
	b.tlv(ParamTransmitPowerLevelTableEntry, func() {
		b.u16(e.Index)
		b.u16(uint16(e.TransmitPowerValue))
	})
}

func (e *TransmitPowerLevelTableEntry) decode(r *pReader, ph paramHeader) {
	e.Index = r.u16()
	e.TransmitPowerValue = MillibelMilliwatt(r.u16())
	r.endParam(ph)
}

// FrequencyInformation is a one-of: hop tables when the region hops,
// a fixed table otherwise.
type FrequencyInformation struct {
	Hopping             bool
	FrequencyHopTables  []FrequencyHopTable
	FixedFrequencyTable *FixedFrequencyTable
}

func (fi FrequencyInformation) encodeTo(b *msgBuilder) {
	b.tlv(ParamFrequencyInformation, func() {
		b.bool1(fi.Hopping)
		for _, t := range fi.FrequencyHopTables {
			t.encodeTo(b)
		}
		if fi.FixedFrequencyTable != nil {
			fi.FixedFrequencyTable.encodeTo(b)
		}
	})
}

func (fi *FrequencyInformation) decode(r *pReader, ph paramHeader) {
	fi.Hopping = r.bool1()
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamFrequencyHopTable:
			var t FrequencyHopTable
			t.decode(r, sub)
			fi.FrequencyHopTables = append(fi.FrequencyHopTables, t)
		case ParamFixedFrequencyTable:
			fi.FixedFrequencyTable = &FixedFrequencyTable{}
			fi.FixedFrequencyTable.decode(r, sub)
		default:
			r.skip(sub)
		}
	}
}

type FrequencyHopTable struct {
	HopTableID  uint8
	Frequencies []Kilohertz
}

func (t FrequencyHopTable) encodeTo(b *msgBuilder) {
	b.tlv(ParamFrequencyHopTable, func() {
		b.u8(t.HopTableID)
		b.u8(0) // reserved
		b.u16(uint16(len(t.Frequencies)))
		for _, f := range t.Frequencies {
			b.u32(uint32(f))
		}
	})
}

func (t *FrequencyHopTable) decode(r *pReader, ph paramHeader) {
	t.HopTableID = r.u8()
	_ = r.u8()
	n := int(r.u16())
	for i := 0; i < n && r.err == nil; i++ {
		t.Frequencies = append(t.Frequencies, Kilohertz(r.u32()))
	}
	r.endParam(ph)
}

type FixedFrequencyTable struct {
	Frequencies []Kilohertz
}

func (t FixedFrequencyTable) encodeTo(b *msgBuilder) {
	b.tlv(ParamFixedFrequencyTable, func() {
		b.u16(uint16(len(t.Frequencies)))
		for _, f := range t.Frequencies {
			b.u32(uint32(f))
		}
	})
}

func (t *FixedFrequencyTable) decode(r *pReader, ph paramHeader) {
	n := int(r.u16())
	for i := 0; i < n && r.err == nil; i++ {
		t.Frequencies = append(t.Frequencies, Kilohertz(r.u32()))
	}
	r.endParam(ph)
}

// C1G2LLRPCapabilities is the C1G2 air protocol capability group.
// The last four flags were added in LLRP 1.1;
// 1.0.1 Readers always report them false.
type C1G2LLRPCapabilities struct {
	SupportsBlockErase         bool
	SupportsBlockWrite         bool
	SupportsBlockPermalock     bool
	SupportsTagRecommissioning bool
	SupportsUMIMethod2         bool
	SupportsXPC                bool
	MaxSelectFiltersPerQuery   uint16
}

func (cc C1G2LLRPCapabilities) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2LLRPCapabilities, func() {
		var flags uint8
		if cc.SupportsBlockErase {
			flags |= 1 << 7
		}
		if cc.SupportsBlockWrite {
			flags |= 1 << 6
		}
		if cc.SupportsBlockPermalock {
			flags |= 1 << 5
		}
		if cc.SupportsTagRecommissioning {
			flags |= 1 << 4
		}
		if cc.SupportsUMIMethod2 {
			flags |= 1 << 3
		}
		if cc.SupportsXPC {
			flags |= 1 << 2
		}
		b.u8(flags)
		b.u16(cc.MaxSelectFiltersPerQuery)
	})
}

func (cc *C1G2LLRPCapabilities) decode(r *pReader, ph paramHeader) {
	flags := r.u8()
	cc.SupportsBlockErase = flags&(1<<7) != 0
	cc.SupportsBlockWrite = flags&(1<<6) != 0
	cc.SupportsBlockPermalock = flags&(1<<5) != 0
	cc.SupportsTagRecommissioning = flags&(1<<4) != 0
	cc.SupportsUMIMethod2 = flags&(1<<3) != 0
	cc.SupportsXPC = flags&(1<<2) != 0
	cc.MaxSelectFiltersPerQuery = r.u16()
	r.endParam(ph)
}

type UHFC1G2RFModeTable struct {
	UHFC1G2RFModeTableEntries []UHFC1G2RFModeTableEntry
}

func (t UHFC1G2RFModeTable) encodeTo(b *msgBuilder) {
	b.tlv(ParamUHFC1G2RFModeTable, func() {
		for _, e := range t.UHFC1G2RFModeTableEntries {
			e.encodeTo(b)
		}
	})
}

func (t *UHFC1G2RFModeTable) decode(r *pReader, ph paramHeader) {
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		if sub.typ != ParamUHFC1G2RFModeTableEntry {
			r.skip(sub)
			continue
		}
		var e UHFC1G2RFModeTableEntry
		e.decode(r, sub)
		t.UHFC1G2RFModeTableEntries = append(t.UHFC1G2RFModeTableEntries, e)
	}
}

// DivideRatio is the C1G2 TRcal divide ratio selector.
type DivideRatio uint8

const (
	DREightToOne       = DivideRatio(0) // 8
	DRSixtyFourToThree = DivideRatio(1) // 64/3
)

// C1G2 backscatter data encodings, as M-value exponents.
const (
	FM0     = uint8(0)
	Miller2 = uint8(1)
	Miller4 = uint8(2)
	Miller8 = uint8(3)
)

// C1G2 forward link modulations.
const (
	DoubleSidebandASK = uint8(0)
	SingleSidebandASK = uint8(1)
	PhaseReversalASK  = uint8(2)
)

// SpectralMaskType abstracts Reader density; a higher mask implies
// an environment where more of the channel spectrum is occupied.
type SpectralMaskType uint8

const (
	SpectralMaskUnknown            = SpectralMaskType(0)
	SpectralMaskSingleInterrogator = SpectralMaskType(1)
	SpectralMaskMultiInterrogator  = SpectralMaskType(2)
	SpectralMaskDenseInterrogator  = SpectralMaskType(3)
)

type UHFC1G2RFModeTableEntry struct {
	ModeID                uint32
	DivideRatio           DivideRatio
	IsEPCHagConformant    bool
	Modulation            uint8 // M-value exponent: FM0=0, Miller2=1, Miller4=2, Miller8=3
	ForwardLinkModulation uint8
	SpectralMask          SpectralMaskType
	BackscatterDataRate   uint32 // bps
	PIERatio              uint32 // PIE x1000, relative offset from 1000
	MinTariTime           uint32 // ns
	MaxTariTime           uint32 // ns
	StepTariTime          uint32 // ns
}

func (e UHFC1G2RFModeTableEntry) encodeTo(b *msgBuilder) {
	b.tlv(ParamUHFC1G2RFModeTableEntry, func() {
		b.u32(e.ModeID)
		var flags uint8
		flags |= uint8(e.DivideRatio&1) << 7
		if e.IsEPCHagConformant {
			flags |= 1 << 6
		}
		b.u8(flags)
		b.u8(e.Modulation)
		b.u8(e.ForwardLinkModulation)
		b.u8(uint8(e.SpectralMask))
		b.u32(e.BackscatterDataRate)
		b.u32(e.PIERatio)
		b.u32(e.MinTariTime)
		b.u32(e.MaxTariTime)
		b.u32(e.StepTariTime)
	})
}

func (e *UHFC1G2RFModeTableEntry) decode(r *pReader, ph paramHeader) {
	e.ModeID = r.u32()
	flags := r.u8()
	e.DivideRatio = DivideRatio(flags >> 7)
	e.IsEPCHagConformant = flags&(1<<6) != 0
	e.Modulation = r.u8()
	e.ForwardLinkModulation = r.u8()
	e.SpectralMask = SpectralMaskType(r.u8())
	e.BackscatterDataRate = r.u32()
	e.PIERatio = r.u32()
	e.MinTariTime = r.u32()
	e.MaxTariTime = r.u32()
	e.StepTariTime = r.u32()
	r.endParam(ph)
}
