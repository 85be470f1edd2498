//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

// OpSpecID identifies an access operation in exception events.
type OpSpecID uint16

// ConnectionAttemptEvent reports the outcome of a connection attempt.
// The Reader sends one as its first message on every new connection.
type ConnectionAttemptEvent uint16

const (
	ConnSuccess                            = ConnectionAttemptEvent(0)
	ConnFailedReaderInitiatedAlreadyExists = ConnectionAttemptEvent(1)
	ConnFailedClientInitiatedAlreadyExists = ConnectionAttemptEvent(2)
	ConnFailedReasonUnknown                = ConnectionAttemptEvent(3)
	ConnAttemptedAgain                     = ConnectionAttemptEvent(4)
)

func (c ConnectionAttemptEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamConnectionAttemptEvent, func() {
		b.u16(uint16(c))
	})
}

func (c *ConnectionAttemptEvent) decode(r *pReader, ph paramHeader) {
	*c = ConnectionAttemptEvent(r.u16())
	r.endParam(ph)
}

// ConnectionCloseEvent announces the Reader is closing the connection.
type ConnectionCloseEvent struct{}

func (ConnectionCloseEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamConnectionCloseEvent, func() {})
}

func (*ConnectionCloseEvent) decode(r *pReader, ph paramHeader) {
	r.endParam(ph)
}

// HoppingEvent reports a frequency hop in hopping regulatory regions.
type HoppingEvent struct {
	HopTableID       uint16
	NextChannelIndex uint16
}

func (h HoppingEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamHoppingEvent, func() {
		b.u16(h.HopTableID)
		b.u16(h.NextChannelIndex)
	})
}

func (h *HoppingEvent) decode(r *pReader, ph paramHeader) {
	h.HopTableID = r.u16()
	h.NextChannelIndex = r.u16()
	r.endParam(ph)
}

// GPIEvent reports a GPI port transition.
type GPIEvent struct {
	Port  uint16
	Event bool // true = transition to high
}

func (g GPIEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamGPIEvent, func() {
		b.u16(g.Port)
		b.bool1(g.Event)
	})
}

func (g *GPIEvent) decode(r *pReader, ph paramHeader) {
	g.Port = r.u16()
	g.Event = r.bool1()
	r.endParam(ph)
}

type ROSpecEventType uint8

const (
	ROSpecStarted   = ROSpecEventType(0)
	ROSpecEnded     = ROSpecEventType(1)
	ROSpecPreempted = ROSpecEventType(2)
)

// ROSpecEvent reports ROSpec lifecycle transitions the Reader performed
// on its own: trigger-driven starts and stops, and preemptions.
type ROSpecEvent struct {
	EventType          ROSpecEventType
	ROSpecID           uint32
	PreemptingROSpecID uint32 // only meaningful when EventType is Preempted
}

func (e ROSpecEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamROSpecEvent, func() {
		b.u8(uint8(e.EventType))
		b.u32(e.ROSpecID)
		b.u32(e.PreemptingROSpecID)
	})
}

func (e *ROSpecEvent) decode(r *pReader, ph paramHeader) {
	e.EventType = ROSpecEventType(r.u8())
	e.ROSpecID = r.u32()
	e.PreemptingROSpecID = r.u32()
	r.endParam(ph)
}

// ReportBufferLevelWarningEvent warns the report buffer is filling.
type ReportBufferLevelWarningEvent struct {
	ReportBufferPercentageFull uint8
}

func (e ReportBufferLevelWarningEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamReportBufferLevelWarningEvent, func() {
		b.u8(e.ReportBufferPercentageFull)
	})
}

func (e *ReportBufferLevelWarningEvent) decode(r *pReader, ph paramHeader) {
	e.ReportBufferPercentageFull = r.u8()
	r.endParam(ph)
}

// ReportBufferOverflowErrorEvent means the Reader dropped reports.
type ReportBufferOverflowErrorEvent struct{}

func (ReportBufferOverflowErrorEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamReportBufferOverflowErrorEvent, func() {})
}

func (*ReportBufferOverflowErrorEvent) decode(r *pReader, ph paramHeader) {
	r.endParam(ph)
}

// ReaderExceptionEvent reports a Reader-side problem. Only Message is
// required; the optional references narrow down what was affected.
type ReaderExceptionEvent struct {
	Message                  string
	ROSpecID                 *ROSpecID
	SpecIndex                *SpecIndex
	InventoryParameterSpecID *InventoryParameterSpecID
	AntennaID                *AntennaID
	AccessSpecID             *AccessSpecID
	OpSpecID                 *OpSpecID
	Custom                   []Custom
	Unknowns                 []UnknownParameter
}

func (e ReaderExceptionEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamReaderExceptionEvent, func() {
		b.str(e.Message)
		if e.ROSpecID != nil {
			b.tv(ParamROSpecID)
			b.u32(uint32(*e.ROSpecID))
		}
		if e.SpecIndex != nil {
			b.tv(ParamSpecIndex)
			b.u16(uint16(*e.SpecIndex))
		}
		if e.InventoryParameterSpecID != nil {
			b.tv(ParamInventoryParameterSpecID)
			b.u16(uint16(*e.InventoryParameterSpecID))
		}
		if e.AntennaID != nil {
			b.tv(ParamAntennaID)
			b.u16(uint16(*e.AntennaID))
		}
		if e.AccessSpecID != nil {
			b.tv(ParamAccessSpecID)
			b.u32(uint32(*e.AccessSpecID))
		}
		if e.OpSpecID != nil {
			b.tv(ParamOpSpecID)
			b.u16(uint16(*e.OpSpecID))
		}
		for _, u := range e.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range e.Custom {
			c.encodeTo(b)
		}
	})
}

func (e *ReaderExceptionEvent) decode(r *pReader, ph paramHeader) {
	e.Message = r.str()
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamROSpecID:
			v := ROSpecID(r.u32())
			e.ROSpecID = &v
		case ParamSpecIndex:
			v := SpecIndex(r.u16())
			e.SpecIndex = &v
		case ParamInventoryParameterSpecID:
			v := InventoryParameterSpecID(r.u16())
			e.InventoryParameterSpecID = &v
		case ParamAntennaID:
			v := AntennaID(r.u16())
			e.AntennaID = &v
		case ParamAccessSpecID:
			v := AccessSpecID(r.u32())
			e.AccessSpecID = &v
		case ParamOpSpecID:
			v := OpSpecID(r.u16())
			e.OpSpecID = &v
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			e.Custom = append(e.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				e.Unknowns = append(e.Unknowns, r.unknown(sub))
			}
		}
	}
}

type RFSurveyEventType uint8

const (
	RFSurveyStarted = RFSurveyEventType(0)
	RFSurveyEnded   = RFSurveyEventType(1)
)

type RFSurveyEvent struct {
	EventType RFSurveyEventType
	ROSpecID  uint32
	SpecIndex uint16
}

func (e RFSurveyEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamRFSurveyEvent, func() {
		b.u8(uint8(e.EventType))
		b.u32(e.ROSpecID)
		b.u16(e.SpecIndex)
	})
}

func (e *RFSurveyEvent) decode(r *pReader, ph paramHeader) {
	e.EventType = RFSurveyEventType(r.u8())
	e.ROSpecID = r.u32()
	e.SpecIndex = r.u16()
	r.endParam(ph)
}

type AISpecEventType uint8

const AISpecEnded = AISpecEventType(0)

// AISpecEvent reports that an AISpec's stop trigger fired.
type AISpecEvent struct {
	EventType              AISpecEventType
	ROSpecID               uint32
	SpecIndex              uint16
	C1G2SingulationDetails *C1G2SingulationDetails
}

func (e AISpecEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamAISpecEvent, func() {
		b.u8(uint8(e.EventType))
		b.u32(e.ROSpecID)
		b.u16(e.SpecIndex)
		if e.C1G2SingulationDetails != nil {
			b.tv(ParamC1G2SingulationDetails)
			b.u16(e.C1G2SingulationDetails.NumCollisionSlots)
			b.u16(e.C1G2SingulationDetails.NumEmptySlots)
		}
	})
}

func (e *AISpecEvent) decode(r *pReader, ph paramHeader) {
	e.EventType = AISpecEventType(r.u8())
	e.ROSpecID = r.u32()
	e.SpecIndex = r.u16()
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		if sub.typ == ParamC1G2SingulationDetails {
			e.C1G2SingulationDetails = &C1G2SingulationDetails{
				NumCollisionSlots: r.u16(),
				NumEmptySlots:     r.u16(),
			}
		} else {
			r.skip(sub)
		}
	}
}

type AntennaEventType uint8

const (
	AntennaDisconnected = AntennaEventType(0)
	AntennaConnected    = AntennaEventType(1)
)

type AntennaEvent struct {
	EventType AntennaEventType
	AntennaID AntennaID
}

func (e AntennaEvent) encodeTo(b *msgBuilder) {
	b.tlv(ParamAntennaEvent, func() {
		b.u8(uint8(e.EventType))
		b.u16(uint16(e.AntennaID))
	})
}

func (e *AntennaEvent) decode(r *pReader, ph paramHeader) {
	e.EventType = AntennaEventType(r.u8())
	e.AntennaID = AntennaID(r.u16())
	r.endParam(ph)
}

// ReaderEventNotificationData is the body of a ReaderEventNotification:
// a timestamp plus whichever event occurred.
type ReaderEventNotificationData struct {
	UTCTimestamp UTCTimestamp
	Uptime       *Uptime

	HoppingEvent                   *HoppingEvent
	GPIEvent                       *GPIEvent
	ROSpecEvent                    *ROSpecEvent
	ReportBufferLevelWarningEvent  *ReportBufferLevelWarningEvent
	ReportBufferOverflowErrorEvent *ReportBufferOverflowErrorEvent
	ReaderExceptionEvent           *ReaderExceptionEvent
	RFSurveyEvent                  *RFSurveyEvent
	AISpecEvent                    *AISpecEvent
	AntennaEvent                   *AntennaEvent
	ConnectionAttemptEvent         *ConnectionAttemptEvent
	ConnectionCloseEvent           *ConnectionCloseEvent
	Custom                         []Custom

	// Unknowns preserves event parameters this package doesn't model.
	Unknowns []UnknownParameter
}

func (d ReaderEventNotificationData) encodeTo(b *msgBuilder) {
	b.tlv(ParamReaderEventNotificationData, func() {
		if d.Uptime != nil {
			d.Uptime.encodeTo(b)
		} else {
			d.UTCTimestamp.encodeTo(b)
		}
		if d.HoppingEvent != nil {
			d.HoppingEvent.encodeTo(b)
		}
		if d.GPIEvent != nil {
			d.GPIEvent.encodeTo(b)
		}
		if d.ROSpecEvent != nil {
			d.ROSpecEvent.encodeTo(b)
		}
		if d.ReportBufferLevelWarningEvent != nil {
			d.ReportBufferLevelWarningEvent.encodeTo(b)
		}
		if d.ReportBufferOverflowErrorEvent != nil {
			d.ReportBufferOverflowErrorEvent.encodeTo(b)
		}
		if d.ReaderExceptionEvent != nil {
			d.ReaderExceptionEvent.encodeTo(b)
		}
		if d.RFSurveyEvent != nil {
			d.RFSurveyEvent.encodeTo(b)
		}
		if d.AISpecEvent != nil {
			d.AISpecEvent.encodeTo(b)
		}
		if d.AntennaEvent != nil {
			d.AntennaEvent.encodeTo(b)
		}
		if d.ConnectionAttemptEvent != nil {
			d.ConnectionAttemptEvent.encodeTo(b)
		}
		if d.ConnectionCloseEvent != nil {
			d.ConnectionCloseEvent.encodeTo(b)
		}
		for _, u := range d.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range d.Custom {
			c.encodeTo(b)
		}
	})
}

func (d *ReaderEventNotificationData) decode(r *pReader, ph paramHeader) {
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamUTCTimestamp:
			d.UTCTimestamp.decode(r, sub)
		case ParamUptime:
			d.Uptime = new(Uptime)
			d.Uptime.decode(r, sub)
		case ParamHoppingEvent:
			d.HoppingEvent = &HoppingEvent{}
			d.HoppingEvent.decode(r, sub)
		case ParamGPIEvent:
			d.GPIEvent = &GPIEvent{}
			d.GPIEvent.decode(r, sub)
		case ParamROSpecEvent:
			d.ROSpecEvent = &ROSpecEvent{}
			d.ROSpecEvent.decode(r, sub)
		case ParamReportBufferLevelWarningEvent:
			d.ReportBufferLevelWarningEvent = &ReportBufferLevelWarningEvent{}
			d.ReportBufferLevelWarningEvent.decode(r, sub)
		case ParamReportBufferOverflowErrorEvent:
			d.ReportBufferOverflowErrorEvent = &ReportBufferOverflowErrorEvent{}
			d.ReportBufferOverflowErrorEvent.decode(r, sub)
		case ParamReaderExceptionEvent:
			d.ReaderExceptionEvent = &ReaderExceptionEvent{}
			d.ReaderExceptionEvent.decode(r, sub)
		case ParamRFSurveyEvent:
			d.RFSurveyEvent = &RFSurveyEvent{}
			d.RFSurveyEvent.decode(r, sub)
		case ParamAISpecEvent:
			d.AISpecEvent = &AISpecEvent{}
			d.AISpecEvent.decode(r, sub)
		case ParamAntennaEvent:
			d.AntennaEvent = &AntennaEvent{}
			d.AntennaEvent.decode(r, sub)
		case ParamConnectionAttemptEvent:
			d.ConnectionAttemptEvent = new(ConnectionAttemptEvent)
			d.ConnectionAttemptEvent.decode(r, sub)
		case ParamConnectionCloseEvent:
			d.ConnectionCloseEvent = &ConnectionCloseEvent{}
			d.ConnectionCloseEvent.decode(r, sub)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			d.Custom = append(d.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				d.Unknowns = append(d.Unknowns, r.unknown(sub))
			}
		}
	}
}
