//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import "fmt"

// ParamType identifies an LLRP parameter.
// TV types use 7 bits; TLV types use 10.
// Values follow the EPCGlobal LLRP v1.0.1 registry.
type ParamType uint16

const (
	// TV-encoded parameters: type in 7 bits, fixed payload size (tvLengths).
	ParamAntennaID                 = ParamType(1)
	ParamFirstSeenUTC              = ParamType(2)
	ParamFirstSeenUptime           = ParamType(3)
	ParamLastSeenUTC               = ParamType(4)
	ParamLastSeenUptime            = ParamType(5)
	ParamPeakRSSI                  = ParamType(6)
	ParamChannelIndex              = ParamType(7)
	ParamTagSeenCount              = ParamType(8)
	ParamROSpecID                  = ParamType(9)
	ParamInventoryParameterSpecID  = ParamType(10)
	ParamC1G2CRC                   = ParamType(11)
	ParamC1G2PC                    = ParamType(12)
	ParamEPC96                     = ParamType(13)
	ParamSpecIndex                 = ParamType(14)
	ParamClientRequestOpSpecResult = ParamType(15)
	ParamAccessSpecID              = ParamType(16)
	ParamOpSpecID                  = ParamType(17)
	ParamC1G2SingulationDetails    = ParamType(18)
	ParamC1G2XPCW1                 = ParamType(19)
	ParamC1G2XPCW2                 = ParamType(20)

	// TLV-encoded parameters.
	ParamUTCTimestamp                   = ParamType(128)
	ParamUptime                         = ParamType(129)
	ParamGeneralDeviceCapabilities      = ParamType(137)
	ParamReceiveSensitivityTableEntry   = ParamType(139)
	ParamPerAntennaAirProtocol          = ParamType(140)
	ParamGPIOCapabilities               = ParamType(141)
	ParamLLRPCapabilities               = ParamType(142)
	ParamRegulatoryCapabilities         = ParamType(143)
	ParamUHFBandCapabilities            = ParamType(144)
	ParamTransmitPowerLevelTableEntry   = ParamType(145)
	ParamFrequencyInformation           = ParamType(146)
	ParamFrequencyHopTable              = ParamType(147)
	ParamFixedFrequencyTable            = ParamType(148)
	ParamROSpec                         = ParamType(177)
	ParamROBoundarySpec                 = ParamType(178)
	ParamROSpecStartTrigger             = ParamType(179)
	ParamPeriodicTriggerValue           = ParamType(180)
	ParamGPITriggerValue                = ParamType(181)
	ParamROSpecStopTrigger              = ParamType(182)
	ParamAISpec                         = ParamType(183)
	ParamAISpecStopTrigger              = ParamType(184)
	ParamTagObservationTrigger          = ParamType(185)
	ParamInventoryParameterSpec         = ParamType(186)
	ParamRFSurveySpec                   = ParamType(187)
	ParamRFSurveySpecStopTrigger        = ParamType(188)
	ParamAccessSpec                     = ParamType(207)
	ParamAccessSpecStopTrigger          = ParamType(208)
	ParamAccessCommand                  = ParamType(209)
	ParamClientRequestOpSpec            = ParamType(210)
	ParamClientRequestResponse          = ParamType(211)
	ParamLLRPConfigurationStateValue    = ParamType(217)
	ParamIdentification                 = ParamType(218)
	ParamGPOWriteData                   = ParamType(219)
	ParamKeepAliveSpec                  = ParamType(220)
	ParamAntennaProperties              = ParamType(221)
	ParamAntennaConfiguration           = ParamType(222)
	ParamRFReceiver                     = ParamType(223)
	ParamRFTransmitter                  = ParamType(224)
	ParamGPIPortCurrentState            = ParamType(225)
	ParamEventsAndReports               = ParamType(226)
	ParamROReportSpec                   = ParamType(237)
	ParamTagReportContentSelector       = ParamType(238)
	ParamAccessReportSpec               = ParamType(239)
	ParamTagReportData                  = ParamType(240)
	ParamEPCData                        = ParamType(241)
	ParamRFSurveyReportData             = ParamType(242)
	ParamFrequencyRSSILevelEntry        = ParamType(243)
	ParamReaderEventNotificationSpec    = ParamType(244)
	ParamEventNotificationState         = ParamType(245)
	ParamReaderEventNotificationData    = ParamType(246)
	ParamHoppingEvent                   = ParamType(247)
	ParamGPIEvent                       = ParamType(248)
	ParamROSpecEvent                    = ParamType(249)
	ParamReportBufferLevelWarningEvent  = ParamType(250)
	ParamReportBufferOverflowErrorEvent = ParamType(251)
	ParamReaderExceptionEvent           = ParamType(252)
	ParamRFSurveyEvent                  = ParamType(253)
	ParamAISpecEvent                    = ParamType(254)
	ParamAntennaEvent                   = ParamType(255)
	ParamConnectionAttemptEvent         = ParamType(256)
	ParamConnectionCloseEvent           = ParamType(257)
	ParamLLRPStatus                     = ParamType(287)
	ParamFieldError                     = ParamType(288)
	ParamParameterError                 = ParamType(289)
	ParamC1G2LLRPCapabilities           = ParamType(327)
	ParamUHFC1G2RFModeTable             = ParamType(328)
	ParamUHFC1G2RFModeTableEntry        = ParamType(329)
	ParamC1G2InventoryCommand           = ParamType(330)
	ParamC1G2Filter                     = ParamType(331)
	ParamC1G2TagInventoryMask           = ParamType(332)
	ParamC1G2AwareFilterAction          = ParamType(333)
	ParamC1G2UnawareFilterAction        = ParamType(334)
	ParamC1G2RFControl                  = ParamType(335)
	ParamC1G2SingulationControl         = ParamType(336)
	ParamC1G2AwareSingulationAction     = ParamType(337)
	ParamC1G2TagSpec                    = ParamType(338)
	ParamC1G2TargetTag                  = ParamType(339)
	ParamC1G2Read                       = ParamType(341)
	ParamC1G2Write                      = ParamType(342)
	ParamC1G2Kill                       = ParamType(343)
	ParamC1G2Lock                       = ParamType(344)
	ParamC1G2LockPayload                = ParamType(345)
	ParamC1G2BlockErase                 = ParamType(346)
	ParamC1G2BlockWrite                 = ParamType(347)
	ParamC1G2EPCMemorySelector          = ParamType(348)
	ParamC1G2ReadOpSpecResult           = ParamType(349)
	ParamC1G2WriteOpSpecResult          = ParamType(350)
	ParamC1G2KillOpSpecResult           = ParamType(351)
	ParamC1G2LockOpSpecResult           = ParamType(352)
	ParamC1G2BlockEraseOpSpecResult     = ParamType(353)
	ParamC1G2BlockWriteOpSpecResult     = ParamType(354)
	ParamC1G2Recommission               = ParamType(355)
	ParamC1G2BlockPermalock             = ParamType(356)
	ParamC1G2GetBlockPermalockStatus    = ParamType(357)
	ParamC1G2RecommissionOpSpecResult   = ParamType(358)
	ParamC1G2BlockPermalockOpSpecResult = ParamType(359)

	ParamC1G2GetBlockPermalockStatusOpSpecResult = ParamType(360)
	ParamCustom                                  = ParamType(1023)
)

func (pt ParamType) String() string {
	return fmt.Sprintf("ParamType(%d)", uint16(pt))
}

// Units used throughout the protocol surface.
type (
	// Millisecs32 is a duration in milliseconds.
	Millisecs32 uint32
	// Microsecs64 is a timestamp or duration in microseconds.
	Microsecs64 uint64
	// Kilohertz is a frequency in kHz.
	Kilohertz uint32
	// MillibelMilliwatt is power in dBm x100.
	MillibelMilliwatt int16
	// MillibelIsotropic is antenna gain in dBi x100.
	MillibelIsotropic int16
)

// AirProtocolIDType identifies an air protocol; only C1G2 is standardized.
type AirProtocolIDType uint8

const (
	AirProtoUnspecified         = AirProtocolIDType(0)
	AirProtoEPCGlobalClass1Gen2 = AirProtocolIDType(1)
)

// StatusCode is an LLRPStatus code, per LLRP v1.0.1 §14.1.1.
type StatusCode uint16

const (
	StatusSuccess = StatusCode(0)

	// Message-scoped errors.
	StatusMsgParamError       = StatusCode(100)
	StatusMsgFieldError       = StatusCode(101)
	StatusMsgParamUnexpected  = StatusCode(102)
	StatusMsgParamMissing     = StatusCode(103)
	StatusMsgParamDuplicate   = StatusCode(104)
	StatusMsgParamOverflow    = StatusCode(105)
	StatusMsgFieldOverflow    = StatusCode(106)
	StatusMsgParamUnknown     = StatusCode(107)
	StatusMsgFieldUnknown     = StatusCode(108)
	StatusMsgUnsupported      = StatusCode(109)
	StatusMsgVerUnsupported   = StatusCode(110)
	StatusMsgParamUnsupported = StatusCode(111)

	// Parameter-scoped errors, reported within a ParameterError.
	StatusParamParamError       = StatusCode(200)
	StatusParamFieldError       = StatusCode(201)
	StatusParamParamUnexpected  = StatusCode(202)
	StatusParamParamMissing     = StatusCode(203)
	StatusParamParamDuplicate   = StatusCode(204)
	StatusParamParamOverflow    = StatusCode(205)
	StatusParamFieldOverflow    = StatusCode(206)
	StatusParamParamUnknown     = StatusCode(207)
	StatusParamFieldUnknown     = StatusCode(208)
	StatusParamParamUnsupported = StatusCode(209)

	// Field-scoped errors, reported within a FieldError.
	StatusFieldInvalid    = StatusCode(300)
	StatusFieldOutOfRange = StatusCode(301)

	StatusDeviceError = StatusCode(401)
)

func (sc StatusCode) String() string {
	switch sc {
	case StatusSuccess:
		return "Success"
	case StatusFieldInvalid:
		return "FieldInvalid"
	case StatusFieldOutOfRange:
		return "FieldOutOfRange"
	case StatusDeviceError:
		return "DeviceError"
	default:
		return fmt.Sprintf("StatusCode(%d)", uint16(sc))
	}
}

// FieldError points at a field the Reader rejected.
type FieldError struct {
	FieldIndex uint16
	ErrorCode  StatusCode
}

func (fe FieldError) encodeTo(b *msgBuilder) {
	b.tlv(ParamFieldError, func() {
		b.u16(fe.FieldIndex)
		b.u16(uint16(fe.ErrorCode))
	})
}

func (fe *FieldError) decode(r *pReader, ph paramHeader) {
	fe.FieldIndex = r.u16()
	fe.ErrorCode = StatusCode(r.u16())
	r.endParam(ph)
}

// ParameterError points at a parameter the Reader rejected;
// it may nest a more precise field or parameter error.
type ParameterError struct {
	ParameterType ParamType
	ErrorCode     StatusCode
	FieldError    *FieldError
	ParameterErr  *ParameterError
}

func (pe ParameterError) encodeTo(b *msgBuilder) {
	b.tlv(ParamParameterError, func() {
		b.u16(uint16(pe.ParameterType))
		b.u16(uint16(pe.ErrorCode))
		if pe.FieldError != nil {
			pe.FieldError.encodeTo(b)
		}
		if pe.ParameterErr != nil {
			pe.ParameterErr.encodeTo(b)
		}
	})
}

func (pe *ParameterError) decode(r *pReader, ph paramHeader) {
	pe.ParameterType = ParamType(r.u16())
	pe.ErrorCode = StatusCode(r.u16())
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamFieldError:
			pe.FieldError = &FieldError{}
			pe.FieldError.decode(r, sub)
		case ParamParameterError:
			pe.ParameterErr = &ParameterError{}
			pe.ParameterErr.decode(r, sub)
		default:
			r.skip(sub)
		}
	}
}

// LLRPStatus is the result a Reader attaches to every response.
type LLRPStatus struct {
	Status           StatusCode
	ErrorDescription string
	FieldError       *FieldError
	ParameterError   *ParameterError
}

func successStatus() LLRPStatus {
	return LLRPStatus{Status: StatusSuccess}
}

// Err converts a non-success status into a *StatusError for msgType.
func (ls LLRPStatus) Err(msgType MessageType) error {
	if ls.Status == StatusSuccess {
		return nil
	}
	return &StatusError{LLRPStatus: ls, Message: msgType}
}

func (ls LLRPStatus) encodeTo(b *msgBuilder) {
	b.tlv(ParamLLRPStatus, func() {
		b.u16(uint16(ls.Status))
		b.str(ls.ErrorDescription)
		if ls.FieldError != nil {
			ls.FieldError.encodeTo(b)
		}
		if ls.ParameterError != nil {
			ls.ParameterError.encodeTo(b)
		}
	})
}

func (ls *LLRPStatus) decode(r *pReader, ph paramHeader) {
	ls.Status = StatusCode(r.u16())
	ls.ErrorDescription = r.str()
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamFieldError:
			ls.FieldError = &FieldError{}
			ls.FieldError.decode(r, sub)
		case ParamParameterError:
			ls.ParameterError = &ParameterError{}
			ls.ParameterError.decode(r, sub)
		default:
			r.skip(sub)
		}
	}
}

// UTCTimestamp is microseconds since the Unix epoch.
type UTCTimestamp Microsecs64

func (t UTCTimestamp) encodeTo(b *msgBuilder) {
	b.tlv(ParamUTCTimestamp, func() { b.u64(uint64(t)) })
}

func (t *UTCTimestamp) decode(r *pReader, ph paramHeader) {
	*t = UTCTimestamp(r.u64())
	r.endParam(ph)
}

// Uptime is microseconds since the Reader booted.
type Uptime Microsecs64

func (t Uptime) encodeTo(b *msgBuilder) {
	b.tlv(ParamUptime, func() { b.u64(uint64(t)) })
}

func (t *Uptime) decode(r *pReader, ph paramHeader) {
	*t = Uptime(r.u64())
	r.endParam(ph)
}

// Custom is a vendor extension parameter. Its payload is opaque to this
// package and preserved byte-exact through decode and re-encode.
type Custom struct {
	VendorID uint32
	Subtype  uint32
	Data     []byte
}

func (c Custom) encodeTo(b *msgBuilder) {
	b.tlv(ParamCustom, func() {
		b.u32(c.VendorID)
		b.u32(c.Subtype)
		b.raw(c.Data)
	})
}

func (c *Custom) decode(r *pReader, ph paramHeader) {
	c.VendorID = r.u32()
	c.Subtype = r.u32()
	c.Data = r.raw(ph.end - r.pos)
}

// UnknownParameter holds a TLV parameter this package has no schema for.
// Because TLV lengths are explicit, these can always be carried through
// and re-encoded byte-identically.
type UnknownParameter struct {
	ParamType ParamType
	Data      []byte
}

func (u UnknownParameter) encodeTo(b *msgBuilder) {
	b.tlv(u.ParamType, func() { b.raw(u.Data) })
}
