//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

// ROSpecState is the Reader-side lifecycle state of an ROSpec.
type ROSpecState uint8

const (
	ROSpecStateDisabled = ROSpecState(0)
	ROSpecStateInactive = ROSpecState(1)
	ROSpecStateActive   = ROSpecState(2)
)

func (s ROSpecState) String() string {
	switch s {
	case ROSpecStateDisabled:
		return "Disabled"
	case ROSpecStateInactive:
		return "Inactive"
	case ROSpecStateActive:
		return "Active"
	}
	return "unknown ROSpecState"
}

// ROSpec directs a Reader's operation: when to run (boundary spec),
// what to do (antenna inventory specs), and how to report results.
type ROSpec struct {
	ROSpecID           uint32
	Priority           uint8
	ROSpecCurrentState ROSpecState
	ROBoundarySpec     ROBoundarySpec
	AISpecs            []AISpec
	RFSurveySpecs      []RFSurveySpec
	ROReportSpec       *ROReportSpec
	Custom             []Custom

	// Unknowns holds TLV parameters this package doesn't model,
	// preserved byte-exact in arrival order.
	Unknowns []UnknownParameter
}

func (rs ROSpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamROSpec, func() {
		b.u32(rs.ROSpecID)
		b.u8(rs.Priority)
		b.u8(uint8(rs.ROSpecCurrentState))
		rs.ROBoundarySpec.encodeTo(b)
		for _, ai := range rs.AISpecs {
			ai.encodeTo(b)
		}
		for _, rf := range rs.RFSurveySpecs {
			rf.encodeTo(b)
		}
		if rs.ROReportSpec != nil {
			rs.ROReportSpec.encodeTo(b)
		}
		for _, u := range rs.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range rs.Custom {
			c.encodeTo(b)
		}
	})
}

func (rs *ROSpec) decode(r *pReader, ph paramHeader) {
	rs.ROSpecID = r.u32()
	rs.Priority = r.u8()
	rs.ROSpecCurrentState = ROSpecState(r.u8())
	var sawBoundary bool
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamROBoundarySpec:
			rs.ROBoundarySpec.decode(r, sub)
			sawBoundary = true
		case ParamAISpec:
			var ai AISpec
			ai.decode(r, sub)
			rs.AISpecs = append(rs.AISpecs, ai)
		case ParamRFSurveySpec:
			var rf RFSurveySpec
			rf.decode(r, sub)
			rs.RFSurveySpecs = append(rs.RFSurveySpecs, rf)
		case ParamROReportSpec:
			rs.ROReportSpec = &ROReportSpec{}
			rs.ROReportSpec.decode(r, sub)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			rs.Custom = append(rs.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				rs.Unknowns = append(rs.Unknowns, r.unknown(sub))
			}
		}
	}
	if !sawBoundary {
		r.failf(ErrMissingParameter, "ROSpec %d has no ROBoundarySpec", rs.ROSpecID)
	}
}

// ROBoundarySpec pairs the triggers that start and stop an ROSpec.
type ROBoundarySpec struct {
	StartTrigger ROSpecStartTrigger
	StopTrigger  ROSpecStopTrigger
}

func (bs ROBoundarySpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamROBoundarySpec, func() {
		bs.StartTrigger.encodeTo(b)
		bs.StopTrigger.encodeTo(b)
	})
}

func (bs *ROBoundarySpec) decode(r *pReader, ph paramHeader) {
	var sawStart, sawStop bool
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamROSpecStartTrigger:
			bs.StartTrigger.decode(r, sub)
			sawStart = true
		case ParamROSpecStopTrigger:
			bs.StopTrigger.decode(r, sub)
			sawStop = true
		default:
			r.skip(sub)
		}
	}
	if !sawStart {
		r.failf(ErrMissingParameter, "ROBoundarySpec has no ROSpecStartTrigger")
	}
	if !sawStop {
		r.failf(ErrMissingParameter, "ROBoundarySpec has no ROSpecStopTrigger")
	}
}

type ROSpecStartTriggerType uint8

const (
	ROStartTriggerNone      = ROSpecStartTriggerType(0)
	ROStartTriggerImmediate = ROSpecStartTriggerType(1)
	ROStartTriggerPeriodic  = ROSpecStartTriggerType(2)
	ROStartTriggerGPI       = ROSpecStartTriggerType(3)
)

type ROSpecStartTrigger struct {
	Trigger         ROSpecStartTriggerType
	PeriodicTrigger *PeriodicTriggerValue
	GPITrigger      *GPITriggerValue
}

func (st ROSpecStartTrigger) encodeTo(b *msgBuilder) {
	b.tlv(ParamROSpecStartTrigger, func() {
		b.u8(uint8(st.Trigger))
		if st.Trigger == ROStartTriggerPeriodic && st.PeriodicTrigger != nil {
			st.PeriodicTrigger.encodeTo(b)
		}
		if st.Trigger == ROStartTriggerGPI && st.GPITrigger != nil {
			st.GPITrigger.encodeTo(b)
		}
	})
}

func (st *ROSpecStartTrigger) decode(r *pReader, ph paramHeader) {
	st.Trigger = ROSpecStartTriggerType(r.u8())
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamPeriodicTriggerValue:
			st.PeriodicTrigger = &PeriodicTriggerValue{}
			st.PeriodicTrigger.decode(r, sub)
		case ParamGPITriggerValue:
			st.GPITrigger = &GPITriggerValue{}
			st.GPITrigger.decode(r, sub)
		default:
			r.skip(sub)
		}
	}
	switch st.Trigger {
	case ROStartTriggerPeriodic:
		if st.PeriodicTrigger == nil {
			r.failf(ErrMissingParameter, "periodic ROSpecStartTrigger has no PeriodicTriggerValue")
		}
	case ROStartTriggerGPI:
		if st.GPITrigger == nil {
			r.failf(ErrMissingParameter, "GPI ROSpecStartTrigger has no GPITriggerValue")
		}
	}
}

// PeriodicTriggerValue fires every Period ms, optionally phase-aligned
// to a UTC offset when the Reader has a clock.
type PeriodicTriggerValue struct {
	Offset       Millisecs32
	Period       Millisecs32
	UTCTimestamp *UTCTimestamp
}

func (pt PeriodicTriggerValue) encodeTo(b *msgBuilder) {
	b.tlv(ParamPeriodicTriggerValue, func() {
		b.u32(uint32(pt.Offset))
		b.u32(uint32(pt.Period))
		if pt.UTCTimestamp != nil {
			pt.UTCTimestamp.encodeTo(b)
		}
	})
}

func (pt *PeriodicTriggerValue) decode(r *pReader, ph paramHeader) {
	pt.Offset = Millisecs32(r.u32())
	pt.Period = Millisecs32(r.u32())
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		if sub.typ == ParamUTCTimestamp {
			pt.UTCTimestamp = new(UTCTimestamp)
			pt.UTCTimestamp.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
}

// GPITriggerValue fires when a GPI port reaches Event (true = high).
// In stop triggers, Timeout bounds the wait; 0 means wait forever.
type GPITriggerValue struct {
	Port    uint16
	Event   bool
	Timeout Millisecs32
}

func (gt GPITriggerValue) encodeTo(b *msgBuilder) {
	b.tlv(ParamGPITriggerValue, func() {
		b.u16(gt.Port)
		b.bool1(gt.Event)
		b.u32(uint32(gt.Timeout))
	})
}

func (gt *GPITriggerValue) decode(r *pReader, ph paramHeader) {
	gt.Port = r.u16()
	gt.Event = r.bool1()
	gt.Timeout = Millisecs32(r.u32())
	r.endParam(ph)
}

type ROSpecStopTriggerType uint8

const (
	ROStopTriggerNone           = ROSpecStopTriggerType(0)
	ROStopTriggerDuration       = ROSpecStopTriggerType(1)
	ROStopTriggerGPIWithTimeout = ROSpecStopTriggerType(2)
)

type ROSpecStopTrigger struct {
	Trigger              ROSpecStopTriggerType
	DurationTriggerValue Millisecs32
	GPITrigger           *GPITriggerValue
}

func (st ROSpecStopTrigger) encodeTo(b *msgBuilder) {
	b.tlv(ParamROSpecStopTrigger, func() {
		b.u8(uint8(st.Trigger))
		b.u32(uint32(st.DurationTriggerValue))
		if st.Trigger == ROStopTriggerGPIWithTimeout && st.GPITrigger != nil {
			st.GPITrigger.encodeTo(b)
		}
	})
}

func (st *ROSpecStopTrigger) decode(r *pReader, ph paramHeader) {
	st.Trigger = ROSpecStopTriggerType(r.u8())
	st.DurationTriggerValue = Millisecs32(r.u32())
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		if sub.typ == ParamGPITriggerValue {
			st.GPITrigger = &GPITriggerValue{}
			st.GPITrigger.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
	if st.Trigger == ROStopTriggerGPIWithTimeout && st.GPITrigger == nil {
		r.failf(ErrMissingParameter, "GPI ROSpecStopTrigger has no GPITriggerValue")
	}
}

// AISpec inventories tags on a set of antennas until its stop trigger fires.
// An antenna id of 0 in AntennaIDs means "all antennas".
type AISpec struct {
	AntennaIDs              []AntennaID
	StopTrigger             AISpecStopTrigger
	InventoryParameterSpecs []InventoryParameterSpec
	Custom                  []Custom
	Unknowns                []UnknownParameter
}

func (ai AISpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamAISpec, func() {
		b.u16(uint16(len(ai.AntennaIDs)))
		for _, a := range ai.AntennaIDs {
			b.u16(uint16(a))
		}
		ai.StopTrigger.encodeTo(b)
		for _, ips := range ai.InventoryParameterSpecs {
			ips.encodeTo(b)
		}
		for _, u := range ai.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range ai.Custom {
			c.encodeTo(b)
		}
	})
}

func (ai *AISpec) decode(r *pReader, ph paramHeader) {
	n := int(r.u16())
	for i := 0; i < n && r.err == nil; i++ {
		ai.AntennaIDs = append(ai.AntennaIDs, AntennaID(r.u16()))
	}
	var sawStop bool
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamAISpecStopTrigger:
			ai.StopTrigger.decode(r, sub)
			sawStop = true
		case ParamInventoryParameterSpec:
			var ips InventoryParameterSpec
			ips.decode(r, sub)
			ai.InventoryParameterSpecs = append(ai.InventoryParameterSpecs, ips)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			ai.Custom = append(ai.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				ai.Unknowns = append(ai.Unknowns, r.unknown(sub))
			}
		}
	}
	if !sawStop {
		r.failf(ErrMissingParameter, "AISpec has no AISpecStopTrigger")
	}
}

type AISpecStopTriggerType uint8

const (
	AIStopTriggerNone           = AISpecStopTriggerType(0)
	AIStopTriggerDuration       = AISpecStopTriggerType(1)
	AIStopTriggerGPIWithTimeout = AISpecStopTriggerType(2)
	AIStopTriggerTagObservation = AISpecStopTriggerType(3)
)

type AISpecStopTrigger struct {
	Trigger               AISpecStopTriggerType
	DurationTriggerValue  Millisecs32
	GPITrigger            *GPITriggerValue
	TagObservationTrigger *TagObservationTrigger
}

func (st AISpecStopTrigger) encodeTo(b *msgBuilder) {
	b.tlv(ParamAISpecStopTrigger, func() {
		b.u8(uint8(st.Trigger))
		b.u32(uint32(st.DurationTriggerValue))
		if st.Trigger == AIStopTriggerGPIWithTimeout && st.GPITrigger != nil {
			st.GPITrigger.encodeTo(b)
		}
		if st.Trigger == AIStopTriggerTagObservation && st.TagObservationTrigger != nil {
			st.TagObservationTrigger.encodeTo(b)
		}
	})
}

func (st *AISpecStopTrigger) decode(r *pReader, ph paramHeader) {
	st.Trigger = AISpecStopTriggerType(r.u8())
	st.DurationTriggerValue = Millisecs32(r.u32())
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamGPITriggerValue:
			st.GPITrigger = &GPITriggerValue{}
			st.GPITrigger.decode(r, sub)
		case ParamTagObservationTrigger:
			st.TagObservationTrigger = &TagObservationTrigger{}
			st.TagObservationTrigger.decode(r, sub)
		default:
			r.skip(sub)
		}
	}
	switch st.Trigger {
	case AIStopTriggerGPIWithTimeout:
		if st.GPITrigger == nil {
			r.failf(ErrMissingParameter, "GPI AISpecStopTrigger has no GPITriggerValue")
		}
	case AIStopTriggerTagObservation:
		if st.TagObservationTrigger == nil {
			r.failf(ErrMissingParameter, "tag-observation AISpecStopTrigger has no TagObservationTrigger")
		}
	}
}

type TagObservationTriggerType uint8

const (
	TagObsTriggerUponNTags   = TagObservationTriggerType(0)
	TagObsTriggerNoNewAfterT = TagObservationTriggerType(1)
	TagObsTriggerNAttempts   = TagObservationTriggerType(2)
	TagObsTriggerNUniqueTags = TagObservationTriggerType(3)
	TagObsTriggerNoNewUnique = TagObservationTriggerType(4)
)

// TagObservationTrigger stops an AISpec once a tag-count or quiet-period
// condition is met. Timeout bounds the wait in every variant; 0 disables it.
type TagObservationTrigger struct {
	Trigger          TagObservationTriggerType
	NumberOfTags     uint16
	NumberOfAttempts uint16
	T                Millisecs32
	Timeout          Millisecs32
}

func (t TagObservationTrigger) encodeTo(b *msgBuilder) {
	b.tlv(ParamTagObservationTrigger, func() {
		b.u8(uint8(t.Trigger))
		b.u8(0) // reserved
		b.u16(t.NumberOfTags)
		b.u16(t.NumberOfAttempts)
		b.u32(uint32(t.T))
		b.u32(uint32(t.Timeout))
	})
}

func (t *TagObservationTrigger) decode(r *pReader, ph paramHeader) {
	t.Trigger = TagObservationTriggerType(r.u8())
	_ = r.u8()
	t.NumberOfTags = r.u16()
	t.NumberOfAttempts = r.u16()
	t.T = Millisecs32(r.u32())
	t.Timeout = Millisecs32(r.u32())
	r.endParam(ph)
}

// RFSurveySpec sweeps one antenna across a frequency range and reports
// the RSSI observed on each channel.
type RFSurveySpec struct {
	AntennaID      AntennaID
	StartFrequency Kilohertz
	EndFrequency   Kilohertz
	StopTrigger    RFSurveySpecStopTrigger
	Custom         []Custom
	Unknowns       []UnknownParameter
}

func (rf RFSurveySpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamRFSurveySpec, func() {
		b.u16(uint16(rf.AntennaID))
		b.u32(uint32(rf.StartFrequency))
		b.u32(uint32(rf.EndFrequency))
		rf.StopTrigger.encodeTo(b)
		for _, u := range rf.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range rf.Custom {
			c.encodeTo(b)
		}
	})
}

func (rf *RFSurveySpec) decode(r *pReader, ph paramHeader) {
	rf.AntennaID = AntennaID(r.u16())
	rf.StartFrequency = Kilohertz(r.u32())
	rf.EndFrequency = Kilohertz(r.u32())
	var sawStop bool
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamRFSurveySpecStopTrigger:
			rf.StopTrigger.decode(r, sub)
			sawStop = true
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			rf.Custom = append(rf.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				rf.Unknowns = append(rf.Unknowns, r.unknown(sub))
			}
		}
	}
	if !sawStop {
		r.failf(ErrMissingParameter, "RFSurveySpec has no RFSurveySpecStopTrigger")
	}
}

type RFSurveySpecStopTriggerType uint8

const (
	RFSurveyStopTriggerNone        = RFSurveySpecStopTriggerType(0)
	RFSurveyStopTriggerDuration    = RFSurveySpecStopTriggerType(1)
	RFSurveyStopTriggerNIterations = RFSurveySpecStopTriggerType(2)
)

type RFSurveySpecStopTrigger struct {
	Trigger        RFSurveySpecStopTriggerType
	DurationPeriod Millisecs32
	N              uint32
}

func (st RFSurveySpecStopTrigger) encodeTo(b *msgBuilder) {
	b.tlv(ParamRFSurveySpecStopTrigger, func() {
		b.u8(uint8(st.Trigger))
		b.u32(uint32(st.DurationPeriod))
		b.u32(st.N)
	})
}

func (st *RFSurveySpecStopTrigger) decode(r *pReader, ph paramHeader) {
	st.Trigger = RFSurveySpecStopTriggerType(r.u8())
	st.DurationPeriod = Millisecs32(r.u32())
	st.N = r.u32()
	r.endParam(ph)
}

// InventoryParameterSpec binds an air protocol and optional per-antenna
// RF configuration to an AISpec.
type InventoryParameterSpec struct {
	InventoryParameterSpecID uint16
	AirProtocolID            AirProtocolIDType
	AntennaConfigurations    []AntennaConfiguration
	Custom                   []Custom
	Unknowns                 []UnknownParameter
}

func (ips InventoryParameterSpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamInventoryParameterSpec, func() {
		b.u16(ips.InventoryParameterSpecID)
		b.u8(uint8(ips.AirProtocolID))
		for _, ac := range ips.AntennaConfigurations {
			ac.encodeTo(b)
		}
		for _, u := range ips.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range ips.Custom {
			c.encodeTo(b)
		}
	})
}

func (ips *InventoryParameterSpec) decode(r *pReader, ph paramHeader) {
	ips.InventoryParameterSpecID = r.u16()
	ips.AirProtocolID = AirProtocolIDType(r.u8())
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamAntennaConfiguration:
			var ac AntennaConfiguration
			ac.decode(r, sub)
			ips.AntennaConfigurations = append(ips.AntennaConfigurations, ac)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			ips.Custom = append(ips.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				ips.Unknowns = append(ips.Unknowns, r.unknown(sub))
			}
		}
	}
}

// ROReportTrigger selects when accumulated tag reports are sent.
type ROReportTrigger uint8

const (
	ROReportTriggerNone         = ROReportTrigger(0)
	ROReportTriggerNTagsOrAIEnd = ROReportTrigger(1)
	ROReportTriggerNTagsOrROEnd = ROReportTrigger(2)
)

// ROReportSpec controls report batching and which optional fields
// each TagReportData carries.
type ROReportSpec struct {
	Trigger                  ROReportTrigger
	N                        uint16
	TagReportContentSelector TagReportContentSelector
	Custom                   []Custom
	Unknowns                 []UnknownParameter
}

func (rrs ROReportSpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamROReportSpec, func() {
		b.u8(uint8(rrs.Trigger))
		b.u16(rrs.N)
		rrs.TagReportContentSelector.encodeTo(b)
		for _, u := range rrs.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range rrs.Custom {
			c.encodeTo(b)
		}
	})
}

func (rrs *ROReportSpec) decode(r *pReader, ph paramHeader) {
	rrs.Trigger = ROReportTrigger(r.u8())
	rrs.N = r.u16()
	var sawSelector bool
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamTagReportContentSelector:
			rrs.TagReportContentSelector.decode(r, sub)
			sawSelector = true
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			rrs.Custom = append(rrs.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				rrs.Unknowns = append(rrs.Unknowns, r.unknown(sub))
			}
		}
	}
	if !sawSelector {
		r.failf(ErrMissingParameter, "ROReportSpec has no TagReportContentSelector")
	}
}

// TagReportContentSelector enables optional TagReportData fields.
// Whatever is disabled here simply never appears in reports, so consumers
// must treat those fields as unknown rather than zero.
type TagReportContentSelector struct {
	EnableROSpecID             bool
	EnableSpecIndex            bool
	EnableInventoryParamSpecID bool
	EnableAntennaID            bool
	EnableChannelIndex         bool
	EnablePeakRSSI             bool
	EnableFirstSeenTimestamp   bool
	EnableLastSeenTimestamp    bool
	EnableTagSeenCount         bool
	EnableAccessSpecID         bool
	C1G2EPCMemorySelector      *C1G2EPCMemorySelector
	Unknowns                   []UnknownParameter
}

func (s TagReportContentSelector) encodeTo(b *msgBuilder) {
	b.tlv(ParamTagReportContentSelector, func() {
		var flags uint16
		set := func(on bool, bit uint) {
			if on {
				flags |= 1 << bit
			}
		}
		set(s.EnableROSpecID, 15)
		set(s.EnableSpecIndex, 14)
		set(s.EnableInventoryParamSpecID, 13)
		set(s.EnableAntennaID, 12)
		set(s.EnableChannelIndex, 11)
		set(s.EnablePeakRSSI, 10)
		set(s.EnableFirstSeenTimestamp, 9)
		set(s.EnableLastSeenTimestamp, 8)
		set(s.EnableTagSeenCount, 7)
		set(s.EnableAccessSpecID, 6)
		b.u16(flags)
		if s.C1G2EPCMemorySelector != nil {
			s.C1G2EPCMemorySelector.encodeTo(b)
		}
		for _, u := range s.Unknowns {
			u.encodeTo(b)
		}
	})
}

func (s *TagReportContentSelector) decode(r *pReader, ph paramHeader) {
	flags := r.u16()
	s.EnableROSpecID = flags&(1<<15) != 0
	s.EnableSpecIndex = flags&(1<<14) != 0
	s.EnableInventoryParamSpecID = flags&(1<<13) != 0
	s.EnableAntennaID = flags&(1<<12) != 0
	s.EnableChannelIndex = flags&(1<<11) != 0
	s.EnablePeakRSSI = flags&(1<<10) != 0
	s.EnableFirstSeenTimestamp = flags&(1<<9) != 0
	s.EnableLastSeenTimestamp = flags&(1<<8) != 0
	s.EnableTagSeenCount = flags&(1<<7) != 0
	s.EnableAccessSpecID = flags&(1<<6) != 0
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		if sub.typ == ParamC1G2EPCMemorySelector {
			s.C1G2EPCMemorySelector = &C1G2EPCMemorySelector{}
			s.C1G2EPCMemorySelector.decode(r, sub)
		} else if sub.tv {
			r.skip(sub)
		} else {
			s.Unknowns = append(s.Unknowns, r.unknown(sub))
		}
	}
}

// C1G2EPCMemorySelector asks the Reader to include the CRC and PC word
// from EPC memory in each tag report.
type C1G2EPCMemorySelector struct {
	CRCEnabled    bool
	PCBitsEnabled bool
}

func (s C1G2EPCMemorySelector) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2EPCMemorySelector, func() {
		var flags uint8
		if s.CRCEnabled {
			flags |= 1 << 7
		}
		if s.PCBitsEnabled {
			flags |= 1 << 6
		}
		b.u8(flags)
	})
}

func (s *C1G2EPCMemorySelector) decode(r *pReader, ph paramHeader) {
	flags := r.u8()
	s.CRCEnabled = flags&(1<<7) != 0
	s.PCBitsEnabled = flags&(1<<6) != 0
	r.endParam(ph)
}
