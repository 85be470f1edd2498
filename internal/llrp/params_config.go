//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

// AntennaProperties describes a physical antenna port.
// AntennaGain is dBi x100.
type AntennaProperties struct {
	AntennaConnected bool
	AntennaID        AntennaID
	AntennaGain      MillibelIsotropic
}

func (ap AntennaProperties) encodeTo(b *msgBuilder) {
	b.tlv(ParamAntennaProperties, func() {
		b.bool1(ap.AntennaConnected)
		b.u16(uint16(ap.AntennaID))
		b.u16(uint16(ap.AntennaGain))
	})
}

func (ap *AntennaProperties) decode(r *pReader, ph paramHeader) {
	ap.AntennaConnected = r.bool1()
	ap.AntennaID = AntennaID(r.u16())
	ap.AntennaGain = MillibelIsotropic(r.u16())
	r.endParam(ph)
}

// AntennaConfiguration carries per-antenna RF settings.
// AntennaID 0 applies the configuration to all antennas.
type AntennaConfiguration struct {
	AntennaID            AntennaID
	RFReceiver           *RFReceiver
	RFTransmitter        *RFTransmitter
	C1G2InventoryCommand *C1G2InventoryCommand
	Custom               []Custom
	Unknowns             []UnknownParameter
}

func (ac AntennaConfiguration) encodeTo(b *msgBuilder) {
	b.tlv(ParamAntennaConfiguration, func() {
		b.u16(uint16(ac.AntennaID))
		if ac.RFReceiver != nil {
			ac.RFReceiver.encodeTo(b)
		}
		if ac.RFTransmitter != nil {
			ac.RFTransmitter.encodeTo(b)
		}
		if ac.C1G2InventoryCommand != nil {
			ac.C1G2InventoryCommand.encodeTo(b)
		}
		for _, u := range ac.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range ac.Custom {
			c.encodeTo(b)
		}
	})
}

func (ac *AntennaConfiguration) decode(r *pReader, ph paramHeader) {
	ac.AntennaID = AntennaID(r.u16())
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamRFReceiver:
			ac.RFReceiver = &RFReceiver{}
			ac.RFReceiver.decode(r, sub)
		case ParamRFTransmitter:
			ac.RFTransmitter = &RFTransmitter{}
			ac.RFTransmitter.decode(r, sub)
		case ParamC1G2InventoryCommand:
			ac.C1G2InventoryCommand = &C1G2InventoryCommand{}
			ac.C1G2InventoryCommand.decode(r, sub)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			ac.Custom = append(ac.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				ac.Unknowns = append(ac.Unknowns, r.unknown(sub))
			}
		}
	}
}

// RFReceiver selects an entry from the capability report's
// receive sensitivity table.
type RFReceiver struct {
	ReceiverSensitivity uint16
}

func (rr RFReceiver) encodeTo(b *msgBuilder) {
	b.tlv(ParamRFReceiver, func() {
		b.u16(rr.ReceiverSensitivity)
	})
}

func (rr *RFReceiver) decode(r *pReader, ph paramHeader) {
	rr.ReceiverSensitivity = r.u16()
	r.endParam(ph)
}

// RFTransmitter selects the transmit power (an index into the capability
// report's power table) and, depending on the regulatory region,
// either a hop table or a fixed channel index.
type RFTransmitter struct {
	HopTableID         uint16
	ChannelIndex       uint16
	TransmitPowerIndex uint16
}

func (rt RFTransmitter) encodeTo(b *msgBuilder) {
	b.tlv(ParamRFTransmitter, func() {
		b.u16(rt.HopTableID)
		b.u16(rt.ChannelIndex)
		b.u16(rt.TransmitPowerIndex)
	})
}

func (rt *RFTransmitter) decode(r *pReader, ph paramHeader) {
	rt.HopTableID = r.u16()
	rt.ChannelIndex = r.u16()
	rt.TransmitPowerIndex = r.u16()
	r.endParam(ph)
}

type GPIPortState uint8

const (
	GPIStateLow     = GPIPortState(0)
	GPIStateHigh    = GPIPortState(1)
	GPIStateUnknown = GPIPortState(2)
)

type GPIPortCurrentState struct {
	Port    uint16
	Enabled bool
	State   GPIPortState
}

func (gp GPIPortCurrentState) encodeTo(b *msgBuilder) {
	b.tlv(ParamGPIPortCurrentState, func() {
		b.u16(gp.Port)
		b.bool1(gp.Enabled)
		b.u8(uint8(gp.State))
	})
}

func (gp *GPIPortCurrentState) decode(r *pReader, ph paramHeader) {
	gp.Port = r.u16()
	gp.Enabled = r.bool1()
	gp.State = GPIPortState(r.u8())
	r.endParam(ph)
}

type GPOWriteData struct {
	Port uint16
	Data bool
}

func (gw GPOWriteData) encodeTo(b *msgBuilder) {
	b.tlv(ParamGPOWriteData, func() {
		b.u16(gw.Port)
		b.bool1(gw.Data)
	})
}

func (gw *GPOWriteData) decode(r *pReader, ph paramHeader) {
	gw.Port = r.u16()
	gw.Data = r.bool1()
	r.endParam(ph)
}

type KeepAliveTriggerType uint8

const (
	KATriggerNone     = KeepAliveTriggerType(0)
	KATriggerPeriodic = KeepAliveTriggerType(1)
)

// KeepAliveSpec asks the Reader to send KeepAlive messages every
// Interval ms. The client must acknowledge each one.
type KeepAliveSpec struct {
	Trigger  KeepAliveTriggerType
	Interval Millisecs32
}

func (ks KeepAliveSpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamKeepAliveSpec, func() {
		b.u8(uint8(ks.Trigger))
		b.u32(uint32(ks.Interval))
	})
}

func (ks *KeepAliveSpec) decode(r *pReader, ph paramHeader) {
	ks.Trigger = KeepAliveTriggerType(r.u8())
	ks.Interval = Millisecs32(r.u32())
	r.endParam(ph)
}

// LLRPConfigurationStateValue is an opaque counter the Reader changes
// whenever its configuration changes, by any means. Comparing values
// from two points in time says only "same" or "different".
type LLRPConfigurationStateValue uint32

func (cs LLRPConfigurationStateValue) encodeTo(b *msgBuilder) {
	b.tlv(ParamLLRPConfigurationStateValue, func() {
		b.u32(uint32(cs))
	})
}

func (cs *LLRPConfigurationStateValue) decode(r *pReader, ph paramHeader) {
	*cs = LLRPConfigurationStateValue(r.u32())
	r.endParam(ph)
}

type IdentificationType uint8

const (
	IDTypeMAC = IdentificationType(0) // EUI-64
	IDTypeEPC = IdentificationType(1)
)

// Identification is the Reader's unique ID, either a MAC or an EPC.
type Identification struct {
	IDType   IdentificationType
	ReaderID []byte
}

func (id Identification) encodeTo(b *msgBuilder) {
	b.tlv(ParamIdentification, func() {
		b.u8(uint8(id.IDType))
		b.u16(uint16(len(id.ReaderID)))
		b.raw(id.ReaderID)
	})
}

func (id *Identification) decode(r *pReader, ph paramHeader) {
	id.IDType = IdentificationType(r.u8())
	n := int(r.u16())
	id.ReaderID = r.raw(n)
	r.endParam(ph)
}

// EventsAndReports, when HoldEventsAndReportsUponReconnect is set,
// makes the Reader queue events and reports after (re)connecting
// until it receives an EnableEventsAndReports message.
type EventsAndReports struct {
	HoldEventsAndReportsUponReconnect bool
}

func (er EventsAndReports) encodeTo(b *msgBuilder) {
	b.tlv(ParamEventsAndReports, func() {
		b.bool1(er.HoldEventsAndReportsUponReconnect)
	})
}

func (er *EventsAndReports) decode(r *pReader, ph paramHeader) {
	er.HoldEventsAndReportsUponReconnect = r.bool1()
	r.endParam(ph)
}

// NotificationEventType enumerates the Reader events a client can
// subscribe to via ReaderEventNotificationSpec.
type NotificationEventType uint16

const (
	NotifyHoppedToNextChannel     = NotificationEventType(0)
	NotifyGPIEvent                = NotificationEventType(1)
	NotifyROSpecEvent             = NotificationEventType(2)
	NotifyReportBufferFillWarning = NotificationEventType(3)
	NotifyReaderExceptionEvent    = NotificationEventType(4)
	NotifyRFSurveyEvent           = NotificationEventType(5)
	NotifyAISpecEvent             = NotificationEventType(6)
	NotifyAISpecEventWithDetails  = NotificationEventType(7)
	NotifyAntennaEvent            = NotificationEventType(8)
)

type EventNotificationState struct {
	Event             NotificationEventType
	NotificationState bool
}

func (es EventNotificationState) encodeTo(b *msgBuilder) {
	b.tlv(ParamEventNotificationState, func() {
		b.u16(uint16(es.Event))
		b.bool1(es.NotificationState)
	})
}

func (es *EventNotificationState) decode(r *pReader, ph paramHeader) {
	es.Event = NotificationEventType(r.u16())
	es.NotificationState = r.bool1()
	r.endParam(ph)
}

// ReaderEventNotificationSpec subscribes or unsubscribes the client
// from each event type. Events not named keep their current state.
type ReaderEventNotificationSpec struct {
	EventNotificationStates []EventNotificationState
}

func (ns ReaderEventNotificationSpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamReaderEventNotificationSpec, func() {
		for _, es := range ns.EventNotificationStates {
			es.encodeTo(b)
		}
	})
}

func (ns *ReaderEventNotificationSpec) decode(r *pReader, ph paramHeader) {
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		if sub.typ != ParamEventNotificationState {
			r.skip(sub)
			continue
		}
		var es EventNotificationState
		es.decode(r, sub)
		ns.EventNotificationStates = append(ns.EventNotificationStates, es)
	}
}
