//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

// AccessSpecState is the Reader-side lifecycle state of an AccessSpec.
// Unlike ROSpecs, AccessSpecs have no Inactive state: enabling one makes
// it immediately eligible to match tags.
type AccessSpecState uint8

const (
	AccessSpecStateDisabled = AccessSpecState(0)
	AccessSpecStateActive   = AccessSpecState(1)
)

func (s AccessSpecState) String() string {
	switch s {
	case AccessSpecStateDisabled:
		return "Disabled"
	case AccessSpecStateActive:
		return "Active"
	}
	return "unknown AccessSpecState"
}

// AccessSpec describes tag operations to perform when a singulated tag
// matches its TagSpec. AntennaID and ROSpecID of 0 mean "any".
type AccessSpec struct {
	AccessSpecID     uint32
	AntennaID        AntennaID
	AirProtocolID    AirProtocolIDType
	IsActive         bool
	ROSpecID         uint32
	Trigger          AccessSpecStopTrigger
	AccessCommand    AccessCommand
	AccessReportSpec *AccessReportSpec
	Custom           []Custom
	Unknowns         []UnknownParameter
}

// State reports the AccessSpec's lifecycle state as an enumeration.
func (as AccessSpec) State() AccessSpecState {
	if as.IsActive {
		return AccessSpecStateActive
	}
	return AccessSpecStateDisabled
}

func (as AccessSpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamAccessSpec, func() {
		b.u32(as.AccessSpecID)
		b.u16(uint16(as.AntennaID))
		b.u8(uint8(as.AirProtocolID))
		b.bool1(as.IsActive)
		b.u32(as.ROSpecID)
		as.Trigger.encodeTo(b)
		as.AccessCommand.encodeTo(b)
		if as.AccessReportSpec != nil {
			as.AccessReportSpec.encodeTo(b)
		}
		for _, u := range as.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range as.Custom {
			c.encodeTo(b)
		}
	})
}

func (as *AccessSpec) decode(r *pReader, ph paramHeader) {
	as.AccessSpecID = r.u32()
	as.AntennaID = AntennaID(r.u16())
	as.AirProtocolID = AirProtocolIDType(r.u8())
	as.IsActive = r.bool1()
	as.ROSpecID = r.u32()
	var sawTrigger, sawCommand bool
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamAccessSpecStopTrigger:
			as.Trigger.decode(r, sub)
			sawTrigger = true
		case ParamAccessCommand:
			as.AccessCommand.decode(r, sub)
			sawCommand = true
		case ParamAccessReportSpec:
			as.AccessReportSpec = &AccessReportSpec{}
			as.AccessReportSpec.decode(r, sub)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			as.Custom = append(as.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				as.Unknowns = append(as.Unknowns, r.unknown(sub))
			}
		}
	}
	if !sawTrigger {
		r.failf(ErrMissingParameter, "AccessSpec %d has no AccessSpecStopTrigger", as.AccessSpecID)
	}
	if !sawCommand {
		r.failf(ErrMissingParameter, "AccessSpec %d has no AccessCommand", as.AccessSpecID)
	}
}

type AccessSpecStopTriggerType uint8

const (
	AccessSpecStopTriggerNone           = AccessSpecStopTriggerType(0)
	AccessSpecStopTriggerOperationCount = AccessSpecStopTriggerType(1)
)

// AccessSpecStopTrigger deletes the AccessSpec after OperationCountValue
// executions when the trigger is OperationCount; 0 means no limit.
type AccessSpecStopTrigger struct {
	Trigger             AccessSpecStopTriggerType
	OperationCountValue uint16
}

func (st AccessSpecStopTrigger) encodeTo(b *msgBuilder) {
	b.tlv(ParamAccessSpecStopTrigger, func() {
		b.u8(uint8(st.Trigger))
		b.u16(st.OperationCountValue)
	})
}

func (st *AccessSpecStopTrigger) decode(r *pReader, ph paramHeader) {
	st.Trigger = AccessSpecStopTriggerType(r.u8())
	st.OperationCountValue = r.u16()
	r.endParam(ph)
}

// AccessCommand pairs the tag pattern to match with the ordered list of
// operations to execute on each matching tag.
type AccessCommand struct {
	TagSpec  C1G2TagSpec
	OpSpecs  []OpSpec
	Custom   []Custom
	Unknowns []UnknownParameter
}

func (ac AccessCommand) encodeTo(b *msgBuilder) {
	b.tlv(ParamAccessCommand, func() {
		ac.TagSpec.encodeTo(b)
		for _, op := range ac.OpSpecs {
			op.encodeTo(b)
		}
		for _, u := range ac.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range ac.Custom {
			c.encodeTo(b)
		}
	})
}

func (ac *AccessCommand) decode(r *pReader, ph paramHeader) {
	var sawTagSpec bool
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamC1G2TagSpec:
			ac.TagSpec.decode(r, sub)
			sawTagSpec = true
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			ac.Custom = append(ac.Custom, c)
		default:
			if op, ok := decodeOpSpec(r, sub); ok {
				ac.OpSpecs = append(ac.OpSpecs, op)
			} else if sub.tv {
				r.skip(sub)
			} else {
				ac.Unknowns = append(ac.Unknowns, r.unknown(sub))
			}
		}
	}
	if !sawTagSpec {
		r.failf(ErrMissingParameter, "AccessCommand has no C1G2TagSpec")
	}
}

type AccessReportTriggerType uint8

const (
	AccessReportTriggerROReport        = AccessReportTriggerType(0)
	AccessReportTriggerEndOfAccessSpec = AccessReportTriggerType(1)
)

// AccessReportSpec controls when op results are reported: folded into the
// ROSpec's report stream, or immediately as each AccessSpec completes.
type AccessReportSpec struct {
	Trigger AccessReportTriggerType
}

func (ars AccessReportSpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamAccessReportSpec, func() {
		b.u8(uint8(ars.Trigger))
	})
}

func (ars *AccessReportSpec) decode(r *pReader, ph paramHeader) {
	ars.Trigger = AccessReportTriggerType(r.u8())
	r.endParam(ph)
}
