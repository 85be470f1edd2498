//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

// The TV parameter value types reported within TagReportData.
// Each is a named type so TagReportData can distinguish
// "not reported" (nil) from a legitimate zero value.
type (
	ROSpecID                 uint32
	SpecIndex                uint16
	InventoryParameterSpecID uint16
	AntennaID                uint16
	PeakRSSI                 int8
	ChannelIndex             uint16
	FirstSeenUTC             Microsecs64
	FirstSeenUptime          Microsecs64
	LastSeenUTC              Microsecs64
	LastSeenUptime           Microsecs64
	TagSeenCount             uint16
	AccessSpecID             uint32
	C1G2CRC                  uint16
	C1G2PC                   uint16
	C1G2XPCW1                uint16
	C1G2XPCW2                uint16
)

// EPC96 is the compact TV encoding of a 96-bit EPC,
// by far the most common EPC length.
type EPC96 struct {
	EPC []byte
}

// EPCData is the general-purpose EPC encoding for EPCs of any bit length.
type EPCData struct {
	EPCNumBits uint16
	EPC        []byte
}

func (ed EPCData) encodeTo(b *msgBuilder) {
	b.tlv(ParamEPCData, func() {
		b.u16(ed.EPCNumBits)
		b.raw(ed.EPC)
	})
}

func (ed *EPCData) decode(r *pReader, ph paramHeader) {
	ed.EPCNumBits = r.u16()
	ed.EPC = r.raw(bitsToBytes(ed.EPCNumBits))
	r.endParam(ph)
}

// C1G2SingulationDetails reports air-protocol collision/empty slot counts.
type C1G2SingulationDetails struct {
	NumCollisionSlots uint16
	NumEmptySlots     uint16
}

// ClientRequestOpSpecResult is reported when a ClientRequestOpSpec ran.
type ClientRequestOpSpecResult struct {
	OpSpecID uint16
}

// TagReportData is one tag observation within an ROAccessReport.
//
// Only the EPC is mandatory. Every other field is present only if enabled
// by the ROSpec's TagReportContentSelector, so consumers must treat nil
// as "not reported", never as zero. Readers may also omit a field whose
// value matches the previous report (see BasicDevice.ProcessTagReport).
type TagReportData struct {
	EPCData                                 EPCData
	EPC96                                   EPC96
	ROSpecID                                *ROSpecID
	SpecIndex                               *SpecIndex
	InventoryParameterSpecID                *InventoryParameterSpecID
	AntennaID                               *AntennaID
	PeakRSSI                                *PeakRSSI
	ChannelIndex                            *ChannelIndex
	FirstSeenUTC                            *FirstSeenUTC
	FirstSeenUptime                         *FirstSeenUptime
	LastSeenUTC                             *LastSeenUTC
	LastSeenUptime                          *LastSeenUptime
	TagSeenCount                            *TagSeenCount
	C1G2PC                                  *C1G2PC
	C1G2XPCW1                               *C1G2XPCW1
	C1G2XPCW2                               *C1G2XPCW2
	C1G2CRC                                 *C1G2CRC
	C1G2SingulationDetails                  *C1G2SingulationDetails
	AccessSpecID                            *AccessSpecID
	C1G2ReadOpSpecResult                    *C1G2ReadOpSpecResult
	C1G2WriteOpSpecResult                   *C1G2WriteOpSpecResult
	C1G2KillOpSpecResult                    *C1G2KillOpSpecResult
	C1G2LockOpSpecResult                    *C1G2LockOpSpecResult
	C1G2BlockEraseOpSpecResult              *C1G2BlockEraseOpSpecResult
	C1G2BlockWriteOpSpecResult              *C1G2BlockWriteOpSpecResult
	C1G2RecommissionOpSpecResult            *C1G2RecommissionOpSpecResult
	C1G2BlockPermalockOpSpecResult          *C1G2BlockPermalockOpSpecResult
	C1G2GetBlockPermalockStatusOpSpecResult *C1G2GetBlockPermalockStatusOpSpecResult
	ClientRequestOpSpecResult               *ClientRequestOpSpecResult
	Custom                                  []Custom

	// Unknowns holds TLV parameters this package doesn't model,
	// preserved byte-exact in arrival order.
	Unknowns []UnknownParameter
}

// EPC returns the tag's EPC, whichever encoding the Reader chose.
// If both encodings are somehow populated, EPC96 wins: Readers that use
// the compact form never send EPCData alongside it, so a populated EPC96
// is the Reader's chosen encoding.
func (rt *TagReportData) EPC() []byte {
	if len(rt.EPC96.EPC) > 0 {
		return rt.EPC96.EPC
	}
	return rt.EPCData.EPC
}

func (rt TagReportData) encodeTo(b *msgBuilder) {
	b.tlv(ParamTagReportData, func() {
		if len(rt.EPC96.EPC) > 0 {
			b.tv(ParamEPC96)
			b.raw(rt.EPC96.EPC)
		} else {
			rt.EPCData.encodeTo(b)
		}
		if rt.ROSpecID != nil {
			b.tv(ParamROSpecID)
			b.u32(uint32(*rt.ROSpecID))
		}
		if rt.SpecIndex != nil {
			b.tv(ParamSpecIndex)
			b.u16(uint16(*rt.SpecIndex))
		}
		if rt.InventoryParameterSpecID != nil {
			b.tv(ParamInventoryParameterSpecID)
			b.u16(uint16(*rt.InventoryParameterSpecID))
		}
		if rt.AntennaID != nil {
			b.tv(ParamAntennaID)
			b.u16(uint16(*rt.AntennaID))
		}
		if rt.PeakRSSI != nil {
			b.tv(ParamPeakRSSI)
			b.u8(uint8(*rt.PeakRSSI))
		}
		if rt.ChannelIndex != nil {
			b.tv(ParamChannelIndex)
			b.u16(uint16(*rt.ChannelIndex))
		}
		if rt.FirstSeenUTC != nil {
			b.tv(ParamFirstSeenUTC)
			b.u64(uint64(*rt.FirstSeenUTC))
		}
		if rt.FirstSeenUptime != nil {
			b.tv(ParamFirstSeenUptime)
			b.u64(uint64(*rt.FirstSeenUptime))
		}
		if rt.LastSeenUTC != nil {
			b.tv(ParamLastSeenUTC)
			b.u64(uint64(*rt.LastSeenUTC))
		}
		if rt.LastSeenUptime != nil {
			b.tv(ParamLastSeenUptime)
			b.u64(uint64(*rt.LastSeenUptime))
		}
		if rt.TagSeenCount != nil {
			b.tv(ParamTagSeenCount)
			b.u16(uint16(*rt.TagSeenCount))
		}
		if rt.C1G2PC != nil {
			b.tv(ParamC1G2PC)
			b.u16(uint16(*rt.C1G2PC))
		}
		if rt.C1G2XPCW1 != nil {
			b.tv(ParamC1G2XPCW1)
			b.u16(uint16(*rt.C1G2XPCW1))
		}
		if rt.C1G2XPCW2 != nil {
			b.tv(ParamC1G2XPCW2)
			b.u16(uint16(*rt.C1G2XPCW2))
		}
		if rt.C1G2CRC != nil {
			b.tv(ParamC1G2CRC)
			b.u16(uint16(*rt.C1G2CRC))
		}
		if rt.C1G2SingulationDetails != nil {
			b.tv(ParamC1G2SingulationDetails)
			b.u16(rt.C1G2SingulationDetails.NumCollisionSlots)
			b.u16(rt.C1G2SingulationDetails.NumEmptySlots)
		}
		if rt.AccessSpecID != nil {
			b.tv(ParamAccessSpecID)
			b.u32(uint32(*rt.AccessSpecID))
		}
		if rt.C1G2ReadOpSpecResult != nil {
			rt.C1G2ReadOpSpecResult.encodeTo(b)
		}
		if rt.C1G2WriteOpSpecResult != nil {
			rt.C1G2WriteOpSpecResult.encodeTo(b)
		}
		if rt.C1G2KillOpSpecResult != nil {
			rt.C1G2KillOpSpecResult.encodeTo(b)
		}
		if rt.C1G2LockOpSpecResult != nil {
			rt.C1G2LockOpSpecResult.encodeTo(b)
		}
		if rt.C1G2BlockEraseOpSpecResult != nil {
			rt.C1G2BlockEraseOpSpecResult.encodeTo(b)
		}
		if rt.C1G2BlockWriteOpSpecResult != nil {
			rt.C1G2BlockWriteOpSpecResult.encodeTo(b)
		}
		if rt.C1G2RecommissionOpSpecResult != nil {
			rt.C1G2RecommissionOpSpecResult.encodeTo(b)
		}
		if rt.C1G2BlockPermalockOpSpecResult != nil {
			rt.C1G2BlockPermalockOpSpecResult.encodeTo(b)
		}
		if rt.C1G2GetBlockPermalockStatusOpSpecResult != nil {
			rt.C1G2GetBlockPermalockStatusOpSpecResult.encodeTo(b)
		}
		if rt.ClientRequestOpSpecResult != nil {
			b.tv(ParamClientRequestOpSpecResult)
			b.u16(rt.ClientRequestOpSpecResult.OpSpecID)
		}
		for _, u := range rt.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range rt.Custom {
			c.encodeTo(b)
		}
	})
}

func (rt *TagReportData) decode(r *pReader, ph paramHeader) {
	var sawEPC bool
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamEPCData:
			rt.EPCData.decode(r, sub)
			sawEPC = true
		case ParamEPC96:
			rt.EPC96.EPC = r.raw(12)
			sawEPC = true
		case ParamROSpecID:
			v := ROSpecID(r.u32())
			rt.ROSpecID = &v
		case ParamSpecIndex:
			v := SpecIndex(r.u16())
			rt.SpecIndex = &v
		case ParamInventoryParameterSpecID:
			v := InventoryParameterSpecID(r.u16())
			rt.InventoryParameterSpecID = &v
		case ParamAntennaID:
			v := AntennaID(r.u16())
			rt.AntennaID = &v
		case ParamPeakRSSI:
			v := PeakRSSI(r.u8())
			rt.PeakRSSI = &v
		case ParamChannelIndex:
			v := ChannelIndex(r.u16())
			rt.ChannelIndex = &v
		case ParamFirstSeenUTC:
			v := FirstSeenUTC(r.u64())
			rt.FirstSeenUTC = &v
		case ParamFirstSeenUptime:
			v := FirstSeenUptime(r.u64())
			rt.FirstSeenUptime = &v
		case ParamLastSeenUTC:
			v := LastSeenUTC(r.u64())
			rt.LastSeenUTC = &v
		case ParamLastSeenUptime:
			v := LastSeenUptime(r.u64())
			rt.LastSeenUptime = &v
		case ParamTagSeenCount:
			v := TagSeenCount(r.u16())
			rt.TagSeenCount = &v
		case ParamC1G2PC:
			v := C1G2PC(r.u16())
			rt.C1G2PC = &v
		case ParamC1G2XPCW1:
			v := C1G2XPCW1(r.u16())
			rt.C1G2XPCW1 = &v
		case ParamC1G2XPCW2:
			v := C1G2XPCW2(r.u16())
			rt.C1G2XPCW2 = &v
		case ParamC1G2CRC:
			v := C1G2CRC(r.u16())
			rt.C1G2CRC = &v
		case ParamC1G2SingulationDetails:
			rt.C1G2SingulationDetails = &C1G2SingulationDetails{
				NumCollisionSlots: r.u16(),
				NumEmptySlots:     r.u16(),
			}
		case ParamAccessSpecID:
			v := AccessSpecID(r.u32())
			rt.AccessSpecID = &v
		case ParamC1G2ReadOpSpecResult:
			rt.C1G2ReadOpSpecResult = &C1G2ReadOpSpecResult{}
			rt.C1G2ReadOpSpecResult.decode(r, sub)
		case ParamC1G2WriteOpSpecResult:
			rt.C1G2WriteOpSpecResult = &C1G2WriteOpSpecResult{}
			rt.C1G2WriteOpSpecResult.decode(r, sub)
		case ParamC1G2KillOpSpecResult:
			rt.C1G2KillOpSpecResult = &C1G2KillOpSpecResult{}
			rt.C1G2KillOpSpecResult.decode(r, sub)
		case ParamC1G2LockOpSpecResult:
			rt.C1G2LockOpSpecResult = &C1G2LockOpSpecResult{}
			rt.C1G2LockOpSpecResult.decode(r, sub)
		case ParamC1G2BlockEraseOpSpecResult:
			rt.C1G2BlockEraseOpSpecResult = &C1G2BlockEraseOpSpecResult{}
			rt.C1G2BlockEraseOpSpecResult.decode(r, sub)
		case ParamC1G2BlockWriteOpSpecResult:
			rt.C1G2BlockWriteOpSpecResult = &C1G2BlockWriteOpSpecResult{}
			rt.C1G2BlockWriteOpSpecResult.decode(r, sub)
		case ParamC1G2RecommissionOpSpecResult:
			rt.C1G2RecommissionOpSpecResult = &C1G2RecommissionOpSpecResult{}
			rt.C1G2RecommissionOpSpecResult.decode(r, sub)
		case ParamC1G2BlockPermalockOpSpecResult:
			rt.C1G2BlockPermalockOpSpecResult = &C1G2BlockPermalockOpSpecResult{}
			rt.C1G2BlockPermalockOpSpecResult.decode(r, sub)
		case ParamC1G2GetBlockPermalockStatusOpSpecResult:
			rt.C1G2GetBlockPermalockStatusOpSpecResult = &C1G2GetBlockPermalockStatusOpSpecResult{}
			rt.C1G2GetBlockPermalockStatusOpSpecResult.decode(r, sub)
		case ParamClientRequestOpSpecResult:
			rt.ClientRequestOpSpecResult = &ClientRequestOpSpecResult{OpSpecID: r.u16()}
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			rt.Custom = append(rt.Custom, c)
		default:
			if sub.tv {
				// A TV here would have failed in nextParam; a known TV
				// outside its usual context still has a fixed size.
				r.skip(sub)
			} else {
				rt.Unknowns = append(rt.Unknowns, r.unknown(sub))
			}
		}
	}
	if !sawEPC {
		r.failf(ErrMissingParameter, "TagReportData has no EPCData or EPC-96")
	}
}

// RFSurveyReportData carries the RSSI sweep results of an RFSurveySpec.
type RFSurveyReportData struct {
	ROSpecID                  *ROSpecID
	SpecIndex                 *SpecIndex
	FrequencyRSSILevelEntries []FrequencyRSSILevelEntry
	Custom                    []Custom
	Unknowns                  []UnknownParameter
}

func (rd RFSurveyReportData) encodeTo(b *msgBuilder) {
	b.tlv(ParamRFSurveyReportData, func() {
		if rd.ROSpecID != nil {
			b.tv(ParamROSpecID)
			b.u32(uint32(*rd.ROSpecID))
		}
		if rd.SpecIndex != nil {
			b.tv(ParamSpecIndex)
			b.u16(uint16(*rd.SpecIndex))
		}
		for _, fe := range rd.FrequencyRSSILevelEntries {
			fe.encodeTo(b)
		}
		for _, u := range rd.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range rd.Custom {
			c.encodeTo(b)
		}
	})
}

func (rd *RFSurveyReportData) decode(r *pReader, ph paramHeader) {
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamROSpecID:
			v := ROSpecID(r.u32())
			rd.ROSpecID = &v
		case ParamSpecIndex:
			v := SpecIndex(r.u16())
			rd.SpecIndex = &v
		case ParamFrequencyRSSILevelEntry:
			var fe FrequencyRSSILevelEntry
			fe.decode(r, sub)
			rd.FrequencyRSSILevelEntries = append(rd.FrequencyRSSILevelEntries, fe)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			rd.Custom = append(rd.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				rd.Unknowns = append(rd.Unknowns, r.unknown(sub))
			}
		}
	}
}

// FrequencyRSSILevelEntry is one sampled channel within an RF survey.
type FrequencyRSSILevelEntry struct {
	Frequency    Kilohertz
	Bandwidth    Kilohertz
	AverageRSSI  PeakRSSI
	PeakRSSI     PeakRSSI
	UTCTimestamp *UTCTimestamp
	Uptime       *Uptime
}

func (fe FrequencyRSSILevelEntry) encodeTo(b *msgBuilder) {
	b.tlv(ParamFrequencyRSSILevelEntry, func() {
		b.u32(uint32(fe.Frequency))
		b.u32(uint32(fe.Bandwidth))
		b.u8(uint8(fe.AverageRSSI))
		b.u8(uint8(fe.PeakRSSI))
		if fe.Uptime != nil {
			fe.Uptime.encodeTo(b)
		} else if fe.UTCTimestamp != nil {
			fe.UTCTimestamp.encodeTo(b)
		}
	})
}

func (fe *FrequencyRSSILevelEntry) decode(r *pReader, ph paramHeader) {
	fe.Frequency = Kilohertz(r.u32())
	fe.Bandwidth = Kilohertz(r.u32())
	fe.AverageRSSI = PeakRSSI(r.u8())
	fe.PeakRSSI = PeakRSSI(r.u8())
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamUTCTimestamp:
			fe.UTCTimestamp = new(UTCTimestamp)
			fe.UTCTimestamp.decode(r, sub)
		case ParamUptime:
			fe.Uptime = new(Uptime)
			fe.Uptime.decode(r, sub)
		default:
			r.skip(sub)
		}
	}
}

// ClientRequestResponse is the client's answer to a ClientRequestOp,
// telling the Reader which AccessSpec to run against the singulated tag.
type ClientRequestResponse struct {
	AccessSpecID uint32
	EPCData      EPCData
	Custom       *Custom
}

func (cr ClientRequestResponse) encodeTo(b *msgBuilder) {
	b.tlv(ParamClientRequestResponse, func() {
		b.u32(cr.AccessSpecID)
		cr.EPCData.encodeTo(b)
		if cr.Custom != nil {
			cr.Custom.encodeTo(b)
		}
	})
}

func (cr *ClientRequestResponse) decode(r *pReader, ph paramHeader) {
	cr.AccessSpecID = r.u32()
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamEPCData:
			cr.EPCData.decode(r, sub)
		case ParamCustom:
			cr.Custom = &Custom{}
			cr.Custom.decode(r, sub)
		default:
			r.skip(sub)
		}
	}
}
