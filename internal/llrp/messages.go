//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"encoding"
	"fmt"
)

// MessageType identifies an LLRP message.
// It occupies 10 bits of the message header.
type MessageType uint16

const (
	MsgGetReaderCapabilities         = MessageType(1)
	MsgGetReaderConfig               = MessageType(2)
	MsgSetReaderConfig               = MessageType(3)
	MsgCloseConnection               = MessageType(4)
	MsgGetReaderCapabilitiesResponse = MessageType(11)
	MsgGetReaderConfigResponse       = MessageType(12)
	MsgSetReaderConfigResponse       = MessageType(13)
	MsgCloseConnectionResponse       = MessageType(14)
	MsgAddROSpec                     = MessageType(20)
	MsgDeleteROSpec                  = MessageType(21)
	MsgStartROSpec                   = MessageType(22)
	MsgStopROSpec                    = MessageType(23)
	MsgEnableROSpec                  = MessageType(24)
	MsgDisableROSpec                 = MessageType(25)
	MsgGetROSpecs                    = MessageType(26)
	MsgAddROSpecResponse             = MessageType(30)
	MsgDeleteROSpecResponse          = MessageType(31)
	MsgStartROSpecResponse           = MessageType(32)
	MsgStopROSpecResponse            = MessageType(33)
	MsgEnableROSpecResponse          = MessageType(34)
	MsgDisableROSpecResponse         = MessageType(35)
	MsgGetROSpecsResponse            = MessageType(36)
	MsgAddAccessSpec                 = MessageType(40)
	MsgDeleteAccessSpec              = MessageType(41)
	MsgEnableAccessSpec              = MessageType(42)
	MsgDisableAccessSpec             = MessageType(43)
	MsgGetAccessSpecs                = MessageType(44)
	MsgClientRequestOp               = MessageType(45)
	MsgGetSupportedVersion           = MessageType(46)
	MsgSetProtocolVersion            = MessageType(47)
	MsgAddAccessSpecResponse         = MessageType(50)
	MsgDeleteAccessSpecResponse      = MessageType(51)
	MsgEnableAccessSpecResponse      = MessageType(52)
	MsgDisableAccessSpecResponse     = MessageType(53)
	MsgGetAccessSpecsResponse        = MessageType(54)
	MsgClientRequestOpResponse       = MessageType(55)
	MsgGetSupportedVersionResponse   = MessageType(56)
	MsgSetProtocolVersionResponse    = MessageType(57)
	MsgGetReport                     = MessageType(60)
	MsgROAccessReport                = MessageType(61)
	MsgKeepAlive                     = MessageType(62)
	MsgReaderEventNotification       = MessageType(63)
	MsgEnableEventsAndReports        = MessageType(64)
	MsgKeepAliveAck                  = MessageType(72)
	MsgErrorMessage                  = MessageType(100)
	MsgCustomMessage                 = MessageType(1023)
)

var msgNames = map[MessageType]string{
	MsgGetReaderCapabilities:         "GetReaderCapabilities",
	MsgGetReaderConfig:               "GetReaderConfig",
	MsgSetReaderConfig:               "SetReaderConfig",
	MsgCloseConnection:               "CloseConnection",
	MsgGetReaderCapabilitiesResponse: "GetReaderCapabilitiesResponse",
	MsgGetReaderConfigResponse:       "GetReaderConfigResponse",
	MsgSetReaderConfigResponse:       "SetReaderConfigResponse",
	MsgCloseConnectionResponse:       "CloseConnectionResponse",
	MsgAddROSpec:                     "AddROSpec",
	MsgDeleteROSpec:                  "DeleteROSpec",
	MsgStartROSpec:                   "StartROSpec",
	MsgStopROSpec:                    "StopROSpec",
	MsgEnableROSpec:                  "EnableROSpec",
	MsgDisableROSpec:                 "DisableROSpec",
	MsgGetROSpecs:                    "GetROSpecs",
	MsgAddROSpecResponse:             "AddROSpecResponse",
	MsgDeleteROSpecResponse:          "DeleteROSpecResponse",
	MsgStartROSpecResponse:           "StartROSpecResponse",
	MsgStopROSpecResponse:            "StopROSpecResponse",
	MsgEnableROSpecResponse:          "EnableROSpecResponse",
	MsgDisableROSpecResponse:         "DisableROSpecResponse",
	MsgGetROSpecsResponse:            "GetROSpecsResponse",
	MsgAddAccessSpec:                 "AddAccessSpec",
	MsgDeleteAccessSpec:              "DeleteAccessSpec",
	MsgEnableAccessSpec:              "EnableAccessSpec",
	MsgDisableAccessSpec:             "DisableAccessSpec",
	MsgGetAccessSpecs:                "GetAccessSpecs",
	MsgClientRequestOp:               "ClientRequestOp",
	MsgGetSupportedVersion:           "GetSupportedVersion",
	MsgSetProtocolVersion:            "SetProtocolVersion",
	MsgAddAccessSpecResponse:         "AddAccessSpecResponse",
	MsgDeleteAccessSpecResponse:      "DeleteAccessSpecResponse",
	MsgEnableAccessSpecResponse:      "EnableAccessSpecResponse",
	MsgDisableAccessSpecResponse:     "DisableAccessSpecResponse",
	MsgGetAccessSpecsResponse:        "GetAccessSpecsResponse",
	MsgClientRequestOpResponse:       "ClientRequestOpResponse",
	MsgGetSupportedVersionResponse:   "GetSupportedVersionResponse",
	MsgSetProtocolVersionResponse:    "SetProtocolVersionResponse",
	MsgGetReport:                     "GetReport",
	MsgROAccessReport:                "ROAccessReport",
	MsgKeepAlive:                     "KeepAlive",
	MsgReaderEventNotification:       "ReaderEventNotification",
	MsgEnableEventsAndReports:        "EnableEventsAndReports",
	MsgKeepAliveAck:                  "KeepAliveAck",
	MsgErrorMessage:                  "ErrorMessage",
	MsgCustomMessage:                 "CustomMessage",
}

func (mt MessageType) String() string {
	if s, ok := msgNames[mt]; ok {
		return s
	}
	return fmt.Sprintf("MessageType(%d)", uint16(mt))
}

// responseType returns the message type a Reader uses to answer mt.
// Reader-initiated messages (reports, events, keepalives) have none.
func (mt MessageType) responseType() (MessageType, bool) {
	switch mt {
	case MsgGetReaderCapabilities, MsgGetReaderConfig, MsgSetReaderConfig, MsgCloseConnection:
		return mt + 10, true
	case MsgAddROSpec, MsgDeleteROSpec, MsgStartROSpec, MsgStopROSpec,
		MsgEnableROSpec, MsgDisableROSpec, MsgGetROSpecs,
		MsgAddAccessSpec, MsgDeleteAccessSpec, MsgEnableAccessSpec,
		MsgDisableAccessSpec, MsgGetAccessSpecs, MsgClientRequestOp,
		MsgGetSupportedVersion, MsgSetProtocolVersion:
		return mt + 10, true
	case MsgCustomMessage:
		return MsgCustomMessage, true
	}
	return 0, false
}

// Outgoing is a message body this package can serialize and send.
type Outgoing interface {
	encoding.BinaryMarshaler
	Type() MessageType
}

// Incoming is a message body this package can receive and deserialize.
type Incoming interface {
	encoding.BinaryUnmarshaler
	Type() MessageType
}

// Statusable is implemented by every response carrying an LLRPStatus.
type Statusable interface {
	Status() LLRPStatus
}

// emptyBody rejects payload bytes on messages defined to have none.
func emptyBody(mt MessageType, data []byte) error {
	if len(data) != 0 {
		return codecErrf(ErrTrailingBytes, "%v carries no body, got %d bytes", mt, len(data))
	}
	return nil
}

// statusOnlyBody decodes a body that is exactly one LLRPStatus parameter.
func statusOnlyBody(ls *LLRPStatus, data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		if sub.typ == ParamLLRPStatus {
			ls.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
	return r.finish()
}

// GetSupportedVersion asks which protocol versions the Reader speaks.
// Only defined in LLRP v1.1+; v1.0.1 Readers answer with an ErrorMessage.
type GetSupportedVersion struct{}

func (*GetSupportedVersion) Type() MessageType              { return MsgGetSupportedVersion }
func (*GetSupportedVersion) MarshalBinary() ([]byte, error) { return nil, nil }
func (*GetSupportedVersion) UnmarshalBinary(data []byte) error {
	return emptyBody(MsgGetSupportedVersion, data)
}

type GetSupportedVersionResponse struct {
	CurrentVersion      VersionNum
	MaxSupportedVersion VersionNum
	LLRPStatus          LLRPStatus
}

func (*GetSupportedVersionResponse) Type() MessageType {
	return MsgGetSupportedVersionResponse
}

func (m *GetSupportedVersionResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *GetSupportedVersionResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u8(uint8(m.CurrentVersion))
	b.u8(uint8(m.MaxSupportedVersion))
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *GetSupportedVersionResponse) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.CurrentVersion = VersionNum(r.u8())
	m.MaxSupportedVersion = VersionNum(r.u8())
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		if sub.typ == ParamLLRPStatus {
			m.LLRPStatus.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
	return r.finish()
}

// SetProtocolVersion pins the connection to a single protocol version.
// Only defined in LLRP v1.1+.
type SetProtocolVersion struct {
	TargetVersion VersionNum
}

func (*SetProtocolVersion) Type() MessageType { return MsgSetProtocolVersion }

func (m *SetProtocolVersion) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u8(uint8(m.TargetVersion))
	return b.finish()
}

func (m *SetProtocolVersion) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.TargetVersion = VersionNum(r.u8())
	return r.finish()
}

type SetProtocolVersionResponse struct {
	LLRPStatus LLRPStatus
}

func (*SetProtocolVersionResponse) Type() MessageType {
	return MsgSetProtocolVersionResponse
}

func (m *SetProtocolVersionResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *SetProtocolVersionResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *SetProtocolVersionResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// GetReaderCapabilities requests the Reader's device capability report,
// either all of it or one section.
type GetReaderCapabilities struct {
	ReaderCapabilitiesRequestedData ReaderCapability
	Custom                          []Custom
}

func (*GetReaderCapabilities) Type() MessageType { return MsgGetReaderCapabilities }

func (m *GetReaderCapabilities) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u8(uint8(m.ReaderCapabilitiesRequestedData))
	for _, c := range m.Custom {
		c.encodeTo(b)
	}
	return b.finish()
}

func (m *GetReaderCapabilities) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.ReaderCapabilitiesRequestedData = ReaderCapability(r.u8())
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		if sub.typ == ParamCustom {
			var c Custom
			c.decode(r, sub)
			m.Custom = append(m.Custom, c)
		} else {
			r.skip(sub)
		}
	}
	return r.finish()
}

type GetReaderCapabilitiesResponse struct {
	LLRPStatus                LLRPStatus
	GeneralDeviceCapabilities *GeneralDeviceCapabilities
	LLRPCapabilities          *LLRPCapabilities
	RegulatoryCapabilities    *RegulatoryCapabilities
	C1G2LLRPCapabilities      *C1G2LLRPCapabilities
	Custom                    []Custom
	Unknowns                  []UnknownParameter
}

func (*GetReaderCapabilitiesResponse) Type() MessageType {
	return MsgGetReaderCapabilitiesResponse
}

func (m *GetReaderCapabilitiesResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *GetReaderCapabilitiesResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	if m.GeneralDeviceCapabilities != nil {
		m.GeneralDeviceCapabilities.encodeTo(b)
	}
	if m.LLRPCapabilities != nil {
		m.LLRPCapabilities.encodeTo(b)
	}
	if m.RegulatoryCapabilities != nil {
		m.RegulatoryCapabilities.encodeTo(b)
	}
	if m.C1G2LLRPCapabilities != nil {
		m.C1G2LLRPCapabilities.encodeTo(b)
	}
	for _, u := range m.Unknowns {
		u.encodeTo(b)
	}
	for _, c := range m.Custom {
		c.encodeTo(b)
	}
	return b.finish()
}

func (m *GetReaderCapabilitiesResponse) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		switch sub.typ {
		case ParamLLRPStatus:
			m.LLRPStatus.decode(r, sub)
		case ParamGeneralDeviceCapabilities:
			m.GeneralDeviceCapabilities = &GeneralDeviceCapabilities{}
			m.GeneralDeviceCapabilities.decode(r, sub)
		case ParamLLRPCapabilities:
			m.LLRPCapabilities = &LLRPCapabilities{}
			m.LLRPCapabilities.decode(r, sub)
		case ParamRegulatoryCapabilities:
			m.RegulatoryCapabilities = &RegulatoryCapabilities{}
			m.RegulatoryCapabilities.decode(r, sub)
		case ParamC1G2LLRPCapabilities:
			m.C1G2LLRPCapabilities = &C1G2LLRPCapabilities{}
			m.C1G2LLRPCapabilities.decode(r, sub)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			m.Custom = append(m.Custom, c)
		default:
			m.Unknowns = append(m.Unknowns, r.unknown(sub))
		}
	}
	return r.finish()
}

// ReaderConfigRequestedDataType selects which section of the Reader's
// configuration a GetReaderConfig asks for.
type ReaderConfigRequestedDataType uint8

const (
	ReaderConfReqAll                         = ReaderConfigRequestedDataType(0)
	ReaderConfReqIdentification              = ReaderConfigRequestedDataType(1)
	ReaderConfReqAntennaProperties           = ReaderConfigRequestedDataType(2)
	ReaderConfReqAntennaConfiguration        = ReaderConfigRequestedDataType(3)
	ReaderConfReqROReportSpec                = ReaderConfigRequestedDataType(4)
	ReaderConfReqReaderEventNotificationSpec = ReaderConfigRequestedDataType(5)
	ReaderConfReqAccessReportSpec            = ReaderConfigRequestedDataType(6)
	ReaderConfReqLLRPConfigurationStateValue = ReaderConfigRequestedDataType(7)
	ReaderConfReqKeepAliveSpec               = ReaderConfigRequestedDataType(8)
	ReaderConfReqGPIPortCurrentState         = ReaderConfigRequestedDataType(9)
	ReaderConfReqGPOWriteData                = ReaderConfigRequestedDataType(10)
	ReaderConfReqEventsAndReports            = ReaderConfigRequestedDataType(11)
)

// GetReaderConfig requests the Reader's current configuration.
// AntennaID, GPIPortNum, and GPOPortNum scope the per-port sections;
// 0 means all.
type GetReaderConfig struct {
	AntennaID     AntennaID
	RequestedData ReaderConfigRequestedDataType
	GPIPortNum    uint16
	GPOPortNum    uint16
	Custom        []Custom
}

func (*GetReaderConfig) Type() MessageType { return MsgGetReaderConfig }

func (m *GetReaderConfig) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u16(uint16(m.AntennaID))
	b.u8(uint8(m.RequestedData))
	b.u16(m.GPIPortNum)
	b.u16(m.GPOPortNum)
	for _, c := range m.Custom {
		c.encodeTo(b)
	}
	return b.finish()
}

func (m *GetReaderConfig) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.AntennaID = AntennaID(r.u16())
	m.RequestedData = ReaderConfigRequestedDataType(r.u8())
	m.GPIPortNum = r.u16()
	m.GPOPortNum = r.u16()
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		if sub.typ == ParamCustom {
			var c Custom
			c.decode(r, sub)
			m.Custom = append(m.Custom, c)
		} else {
			r.skip(sub)
		}
	}
	return r.finish()
}

type GetReaderConfigResponse struct {
	LLRPStatus                  LLRPStatus
	Identification              *Identification
	AntennaProperties           []AntennaProperties
	AntennaConfigurations       []AntennaConfiguration
	ReaderEventNotificationSpec *ReaderEventNotificationSpec
	ROReportSpec                *ROReportSpec
	AccessReportSpec            *AccessReportSpec
	LLRPConfigurationStateValue *LLRPConfigurationStateValue
	KeepAliveSpec               *KeepAliveSpec
	GPIPortCurrentStates        []GPIPortCurrentState
	GPOWriteData                []GPOWriteData
	EventsAndReports            *EventsAndReports
	Custom                      []Custom
	Unknowns                    []UnknownParameter
}

func (*GetReaderConfigResponse) Type() MessageType { return MsgGetReaderConfigResponse }

func (m *GetReaderConfigResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *GetReaderConfigResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	if m.Identification != nil {
		m.Identification.encodeTo(b)
	}
	for _, ap := range m.AntennaProperties {
		ap.encodeTo(b)
	}
	for _, ac := range m.AntennaConfigurations {
		ac.encodeTo(b)
	}
	if m.ReaderEventNotificationSpec != nil {
		m.ReaderEventNotificationSpec.encodeTo(b)
	}
	if m.ROReportSpec != nil {
		m.ROReportSpec.encodeTo(b)
	}
	if m.AccessReportSpec != nil {
		m.AccessReportSpec.encodeTo(b)
	}
	if m.LLRPConfigurationStateValue != nil {
		m.LLRPConfigurationStateValue.encodeTo(b)
	}
	if m.KeepAliveSpec != nil {
		m.KeepAliveSpec.encodeTo(b)
	}
	for _, gp := range m.GPIPortCurrentStates {
		gp.encodeTo(b)
	}
	for _, gw := range m.GPOWriteData {
		gw.encodeTo(b)
	}
	if m.EventsAndReports != nil {
		m.EventsAndReports.encodeTo(b)
	}
	for _, u := range m.Unknowns {
		u.encodeTo(b)
	}
	for _, c := range m.Custom {
		c.encodeTo(b)
	}
	return b.finish()
}

func (m *GetReaderConfigResponse) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		switch sub.typ {
		case ParamLLRPStatus:
			m.LLRPStatus.decode(r, sub)
		case ParamIdentification:
			m.Identification = &Identification{}
			m.Identification.decode(r, sub)
		case ParamAntennaProperties:
			var ap AntennaProperties
			ap.decode(r, sub)
			m.AntennaProperties = append(m.AntennaProperties, ap)
		case ParamAntennaConfiguration:
			var ac AntennaConfiguration
			ac.decode(r, sub)
			m.AntennaConfigurations = append(m.AntennaConfigurations, ac)
		case ParamReaderEventNotificationSpec:
			m.ReaderEventNotificationSpec = &ReaderEventNotificationSpec{}
			m.ReaderEventNotificationSpec.decode(r, sub)
		case ParamROReportSpec:
			m.ROReportSpec = &ROReportSpec{}
			m.ROReportSpec.decode(r, sub)
		case ParamAccessReportSpec:
			m.AccessReportSpec = &AccessReportSpec{}
			m.AccessReportSpec.decode(r, sub)
		case ParamLLRPConfigurationStateValue:
			m.LLRPConfigurationStateValue = new(LLRPConfigurationStateValue)
			m.LLRPConfigurationStateValue.decode(r, sub)
		case ParamKeepAliveSpec:
			m.KeepAliveSpec = &KeepAliveSpec{}
			m.KeepAliveSpec.decode(r, sub)
		case ParamGPIPortCurrentState:
			var gp GPIPortCurrentState
			gp.decode(r, sub)
			m.GPIPortCurrentStates = append(m.GPIPortCurrentStates, gp)
		case ParamGPOWriteData:
			var gw GPOWriteData
			gw.decode(r, sub)
			m.GPOWriteData = append(m.GPOWriteData, gw)
		case ParamEventsAndReports:
			m.EventsAndReports = &EventsAndReports{}
			m.EventsAndReports.decode(r, sub)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			m.Custom = append(m.Custom, c)
		default:
			m.Unknowns = append(m.Unknowns, r.unknown(sub))
		}
	}
	return r.finish()
}

// SetReaderConfig overwrites parts of the Reader's configuration.
// Only the parameters present are changed; ResetToFactoryDefaults
// first restores everything to defaults.
type SetReaderConfig struct {
	ResetToFactoryDefaults      bool
	ReaderEventNotificationSpec *ReaderEventNotificationSpec
	AntennaProperties           []AntennaProperties
	AntennaConfigurations       []AntennaConfiguration
	ROReportSpec                *ROReportSpec
	AccessReportSpec            *AccessReportSpec
	KeepAliveSpec               *KeepAliveSpec
	GPOWriteData                []GPOWriteData
	GPIPortCurrentStates        []GPIPortCurrentState
	EventsAndReports            *EventsAndReports
	Custom                      []Custom
}

func (*SetReaderConfig) Type() MessageType { return MsgSetReaderConfig }

func (m *SetReaderConfig) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.bool1(m.ResetToFactoryDefaults)
	if m.ReaderEventNotificationSpec != nil {
		m.ReaderEventNotificationSpec.encodeTo(b)
	}
	for _, ap := range m.AntennaProperties {
		ap.encodeTo(b)
	}
	for _, ac := range m.AntennaConfigurations {
		ac.encodeTo(b)
	}
	if m.ROReportSpec != nil {
		m.ROReportSpec.encodeTo(b)
	}
	if m.AccessReportSpec != nil {
		m.AccessReportSpec.encodeTo(b)
	}
	if m.KeepAliveSpec != nil {
		m.KeepAliveSpec.encodeTo(b)
	}
	for _, gw := range m.GPOWriteData {
		gw.encodeTo(b)
	}
	for _, gp := range m.GPIPortCurrentStates {
		gp.encodeTo(b)
	}
	if m.EventsAndReports != nil {
		m.EventsAndReports.encodeTo(b)
	}
	for _, c := range m.Custom {
		c.encodeTo(b)
	}
	return b.finish()
}

func (m *SetReaderConfig) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.ResetToFactoryDefaults = r.bool1()
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		switch sub.typ {
		case ParamReaderEventNotificationSpec:
			m.ReaderEventNotificationSpec = &ReaderEventNotificationSpec{}
			m.ReaderEventNotificationSpec.decode(r, sub)
		case ParamAntennaProperties:
			var ap AntennaProperties
			ap.decode(r, sub)
			m.AntennaProperties = append(m.AntennaProperties, ap)
		case ParamAntennaConfiguration:
			var ac AntennaConfiguration
			ac.decode(r, sub)
			m.AntennaConfigurations = append(m.AntennaConfigurations, ac)
		case ParamROReportSpec:
			m.ROReportSpec = &ROReportSpec{}
			m.ROReportSpec.decode(r, sub)
		case ParamAccessReportSpec:
			m.AccessReportSpec = &AccessReportSpec{}
			m.AccessReportSpec.decode(r, sub)
		case ParamKeepAliveSpec:
			m.KeepAliveSpec = &KeepAliveSpec{}
			m.KeepAliveSpec.decode(r, sub)
		case ParamGPOWriteData:
			var gw GPOWriteData
			gw.decode(r, sub)
			m.GPOWriteData = append(m.GPOWriteData, gw)
		case ParamGPIPortCurrentState:
			var gp GPIPortCurrentState
			gp.decode(r, sub)
			m.GPIPortCurrentStates = append(m.GPIPortCurrentStates, gp)
		case ParamEventsAndReports:
			m.EventsAndReports = &EventsAndReports{}
			m.EventsAndReports.decode(r, sub)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			m.Custom = append(m.Custom, c)
		default:
			r.skip(sub)
		}
	}
	return r.finish()
}

type SetReaderConfigResponse struct {
	LLRPStatus LLRPStatus
}

func (*SetReaderConfigResponse) Type() MessageType { return MsgSetReaderConfigResponse }

func (m *SetReaderConfigResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *SetReaderConfigResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *SetReaderConfigResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// CloseConnection asks the Reader to end the session gracefully.
// The Reader responds, then closes the transport.
type CloseConnection struct{}

func (*CloseConnection) Type() MessageType              { return MsgCloseConnection }
func (*CloseConnection) MarshalBinary() ([]byte, error) { return nil, nil }
func (*CloseConnection) UnmarshalBinary(data []byte) error {
	return emptyBody(MsgCloseConnection, data)
}

type CloseConnectionResponse struct {
	LLRPStatus LLRPStatus
}

func (*CloseConnectionResponse) Type() MessageType { return MsgCloseConnectionResponse }

func (m *CloseConnectionResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *CloseConnectionResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *CloseConnectionResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// AddROSpec sends a new ROSpec to the Reader.
// Its ROSpecCurrentState must be Disabled and its id must be unused.
type AddROSpec struct {
	ROSpec ROSpec
}

func (*AddROSpec) Type() MessageType { return MsgAddROSpec }

func (m *AddROSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.ROSpec.encodeTo(b)
	return b.finish()
}

func (m *AddROSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		if sub.typ == ParamROSpec {
			m.ROSpec.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
	return r.finish()
}

type AddROSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*AddROSpecResponse) Type() MessageType { return MsgAddROSpecResponse }

func (m *AddROSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *AddROSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *AddROSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// DeleteROSpec removes an ROSpec in any state. ROSpecID 0 removes all.
type DeleteROSpec struct {
	ROSpecID uint32
}

func (*DeleteROSpec) Type() MessageType { return MsgDeleteROSpec }

func (m *DeleteROSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u32(m.ROSpecID)
	return b.finish()
}

func (m *DeleteROSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.ROSpecID = r.u32()
	return r.finish()
}

type DeleteROSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*DeleteROSpecResponse) Type() MessageType { return MsgDeleteROSpecResponse }

func (m *DeleteROSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *DeleteROSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *DeleteROSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// StartROSpec manually starts an enabled ROSpec, regardless of its
// start trigger. The target must not be Disabled.
type StartROSpec struct {
	ROSpecID uint32
}

func (*StartROSpec) Type() MessageType { return MsgStartROSpec }

func (m *StartROSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u32(m.ROSpecID)
	return b.finish()
}

func (m *StartROSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.ROSpecID = r.u32()
	return r.finish()
}

type StartROSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*StartROSpecResponse) Type() MessageType { return MsgStartROSpecResponse }

func (m *StartROSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *StartROSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *StartROSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// StopROSpec halts an active ROSpec, returning it to Inactive.
type StopROSpec struct {
	ROSpecID uint32
}

func (*StopROSpec) Type() MessageType { return MsgStopROSpec }

func (m *StopROSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u32(m.ROSpecID)
	return b.finish()
}

func (m *StopROSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.ROSpecID = r.u32()
	return r.finish()
}

type StopROSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*StopROSpecResponse) Type() MessageType { return MsgStopROSpecResponse }

func (m *StopROSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *StopROSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *StopROSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// EnableROSpec moves a Disabled ROSpec to Inactive,
// arming its start trigger. ROSpecID 0 enables all.
type EnableROSpec struct {
	ROSpecID uint32
}

func (*EnableROSpec) Type() MessageType { return MsgEnableROSpec }

func (m *EnableROSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u32(m.ROSpecID)
	return b.finish()
}

func (m *EnableROSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.ROSpecID = r.u32()
	return r.finish()
}

type EnableROSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*EnableROSpecResponse) Type() MessageType { return MsgEnableROSpecResponse }

func (m *EnableROSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *EnableROSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *EnableROSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// DisableROSpec returns an ROSpec to Disabled, stopping it first
// if it's running. ROSpecID 0 disables all.
type DisableROSpec struct {
	ROSpecID uint32
}

func (*DisableROSpec) Type() MessageType { return MsgDisableROSpec }

func (m *DisableROSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u32(m.ROSpecID)
	return b.finish()
}

func (m *DisableROSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.ROSpecID = r.u32()
	return r.finish()
}

type DisableROSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*DisableROSpecResponse) Type() MessageType { return MsgDisableROSpecResponse }

func (m *DisableROSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *DisableROSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *DisableROSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// GetROSpecs requests every ROSpec the Reader holds,
// with current states as the Reader sees them.
type GetROSpecs struct{}

func (*GetROSpecs) Type() MessageType              { return MsgGetROSpecs }
func (*GetROSpecs) MarshalBinary() ([]byte, error) { return nil, nil }
func (*GetROSpecs) UnmarshalBinary(data []byte) error {
	return emptyBody(MsgGetROSpecs, data)
}

type GetROSpecsResponse struct {
	LLRPStatus LLRPStatus
	ROSpecs    []ROSpec
}

func (*GetROSpecsResponse) Type() MessageType { return MsgGetROSpecsResponse }

func (m *GetROSpecsResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *GetROSpecsResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	for _, rs := range m.ROSpecs {
		rs.encodeTo(b)
	}
	return b.finish()
}

func (m *GetROSpecsResponse) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		switch sub.typ {
		case ParamLLRPStatus:
			m.LLRPStatus.decode(r, sub)
		case ParamROSpec:
			var rs ROSpec
			rs.decode(r, sub)
			m.ROSpecs = append(m.ROSpecs, rs)
		default:
			r.skip(sub)
		}
	}
	return r.finish()
}

// AddAccessSpec sends a new AccessSpec to the Reader.
// It must arrive disabled (IsActive false) with an unused id.
type AddAccessSpec struct {
	AccessSpec AccessSpec
}

func (*AddAccessSpec) Type() MessageType { return MsgAddAccessSpec }

func (m *AddAccessSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.AccessSpec.encodeTo(b)
	return b.finish()
}

func (m *AddAccessSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		if sub.typ == ParamAccessSpec {
			m.AccessSpec.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
	return r.finish()
}

type AddAccessSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*AddAccessSpecResponse) Type() MessageType { return MsgAddAccessSpecResponse }

func (m *AddAccessSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *AddAccessSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *AddAccessSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// DeleteAccessSpec removes an AccessSpec. AccessSpecID 0 removes all.
type DeleteAccessSpec struct {
	AccessSpecID uint32
}

func (*DeleteAccessSpec) Type() MessageType { return MsgDeleteAccessSpec }

func (m *DeleteAccessSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u32(m.AccessSpecID)
	return b.finish()
}

func (m *DeleteAccessSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.AccessSpecID = r.u32()
	return r.finish()
}

type DeleteAccessSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*DeleteAccessSpecResponse) Type() MessageType { return MsgDeleteAccessSpecResponse }

func (m *DeleteAccessSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *DeleteAccessSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *DeleteAccessSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// EnableAccessSpec makes an AccessSpec eligible to run.
// AccessSpecID 0 enables all.
type EnableAccessSpec struct {
	AccessSpecID uint32
}

func (*EnableAccessSpec) Type() MessageType { return MsgEnableAccessSpec }

func (m *EnableAccessSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u32(m.AccessSpecID)
	return b.finish()
}

func (m *EnableAccessSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.AccessSpecID = r.u32()
	return r.finish()
}

type EnableAccessSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*EnableAccessSpecResponse) Type() MessageType { return MsgEnableAccessSpecResponse }

func (m *EnableAccessSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *EnableAccessSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *EnableAccessSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// DisableAccessSpec stops an AccessSpec from matching tags.
// AccessSpecID 0 disables all.
type DisableAccessSpec struct {
	AccessSpecID uint32
}

func (*DisableAccessSpec) Type() MessageType { return MsgDisableAccessSpec }

func (m *DisableAccessSpec) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u32(m.AccessSpecID)
	return b.finish()
}

func (m *DisableAccessSpec) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.AccessSpecID = r.u32()
	return r.finish()
}

type DisableAccessSpecResponse struct {
	LLRPStatus LLRPStatus
}

func (*DisableAccessSpecResponse) Type() MessageType { return MsgDisableAccessSpecResponse }

func (m *DisableAccessSpecResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *DisableAccessSpecResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *DisableAccessSpecResponse) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// GetAccessSpecs requests every AccessSpec the Reader holds.
type GetAccessSpecs struct{}

func (*GetAccessSpecs) Type() MessageType              { return MsgGetAccessSpecs }
func (*GetAccessSpecs) MarshalBinary() ([]byte, error) { return nil, nil }
func (*GetAccessSpecs) UnmarshalBinary(data []byte) error {
	return emptyBody(MsgGetAccessSpecs, data)
}

type GetAccessSpecsResponse struct {
	LLRPStatus  LLRPStatus
	AccessSpecs []AccessSpec
}

func (*GetAccessSpecsResponse) Type() MessageType { return MsgGetAccessSpecsResponse }

func (m *GetAccessSpecsResponse) Status() LLRPStatus { return m.LLRPStatus }

func (m *GetAccessSpecsResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	for _, as := range m.AccessSpecs {
		as.encodeTo(b)
	}
	return b.finish()
}

func (m *GetAccessSpecsResponse) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		switch sub.typ {
		case ParamLLRPStatus:
			m.LLRPStatus.decode(r, sub)
		case ParamAccessSpec:
			var as AccessSpec
			as.decode(r, sub)
			m.AccessSpecs = append(m.AccessSpecs, as)
		default:
			r.skip(sub)
		}
	}
	return r.finish()
}

// ClientRequestOp is sent by the Reader when a ClientRequestOpSpec runs:
// it reports the singulated tag and waits for the client to pick an
// AccessSpec within the Reader's ClientRequestedOpSpecTimeout.
type ClientRequestOp struct {
	TagReportData TagReportData
}

func (*ClientRequestOp) Type() MessageType { return MsgClientRequestOp }

func (m *ClientRequestOp) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.TagReportData.encodeTo(b)
	return b.finish()
}

func (m *ClientRequestOp) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		if sub.typ == ParamTagReportData {
			m.TagReportData.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
	return r.finish()
}

type ClientRequestOpResponse struct {
	ClientRequestResponse ClientRequestResponse
}

func (*ClientRequestOpResponse) Type() MessageType { return MsgClientRequestOpResponse }

func (m *ClientRequestOpResponse) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.ClientRequestResponse.encodeTo(b)
	return b.finish()
}

func (m *ClientRequestOpResponse) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		if sub.typ == ParamClientRequestResponse {
			m.ClientRequestResponse.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
	return r.finish()
}

// GetReport asks the Reader to flush accumulated tag reports now,
// regardless of the ROReportSpec trigger.
type GetReport struct{}

func (*GetReport) Type() MessageType              { return MsgGetReport }
func (*GetReport) MarshalBinary() ([]byte, error) { return nil, nil }
func (*GetReport) UnmarshalBinary(data []byte) error {
	return emptyBody(MsgGetReport, data)
}

// ROAccessReport delivers accumulated tag observations and survey results.
// The Reader sends these unsolicited once specs run; there is no response.
type ROAccessReport struct {
	TagReportData      []TagReportData
	RFSurveyReportData []RFSurveyReportData
	Custom             []Custom
	Unknowns           []UnknownParameter
}

func (*ROAccessReport) Type() MessageType { return MsgROAccessReport }

func (m *ROAccessReport) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	for _, td := range m.TagReportData {
		td.encodeTo(b)
	}
	for _, rd := range m.RFSurveyReportData {
		rd.encodeTo(b)
	}
	for _, u := range m.Unknowns {
		u.encodeTo(b)
	}
	for _, c := range m.Custom {
		c.encodeTo(b)
	}
	return b.finish()
}

func (m *ROAccessReport) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		switch sub.typ {
		case ParamTagReportData:
			var td TagReportData
			td.decode(r, sub)
			m.TagReportData = append(m.TagReportData, td)
		case ParamRFSurveyReportData:
			var rd RFSurveyReportData
			rd.decode(r, sub)
			m.RFSurveyReportData = append(m.RFSurveyReportData, rd)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			m.Custom = append(m.Custom, c)
		default:
			m.Unknowns = append(m.Unknowns, r.unknown(sub))
		}
	}
	return r.finish()
}

// KeepAlive is sent by the Reader on the KeepAliveSpec interval.
// Each one must be answered with a KeepAliveAck.
type KeepAlive struct{}

func (*KeepAlive) Type() MessageType              { return MsgKeepAlive }
func (*KeepAlive) MarshalBinary() ([]byte, error) { return nil, nil }
func (*KeepAlive) UnmarshalBinary(data []byte) error {
	return emptyBody(MsgKeepAlive, data)
}

type KeepAliveAck struct{}

func (*KeepAliveAck) Type() MessageType              { return MsgKeepAliveAck }
func (*KeepAliveAck) MarshalBinary() ([]byte, error) { return nil, nil }
func (*KeepAliveAck) UnmarshalBinary(data []byte) error {
	return emptyBody(MsgKeepAliveAck, data)
}

// ReaderEventNotification announces Reader-side events:
// connection attempts, spec lifecycle transitions, GPIs, exceptions.
// The first message on any new connection is one of these carrying
// a ConnectionAttemptEvent.
type ReaderEventNotification struct {
	ReaderEventNotificationData ReaderEventNotificationData
}

func (*ReaderEventNotification) Type() MessageType { return MsgReaderEventNotification }

func (m *ReaderEventNotification) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.ReaderEventNotificationData.encodeTo(b)
	return b.finish()
}

func (m *ReaderEventNotification) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	for {
		sub, ok := r.nextParam(len(data))
		if !ok {
			break
		}
		if sub.typ == ParamReaderEventNotificationData {
			m.ReaderEventNotificationData.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
	return r.finish()
}

// IsConnectSuccess reports whether this notification is the Reader
// accepting a new connection.
func (m *ReaderEventNotification) IsConnectSuccess() bool {
	ev := m.ReaderEventNotificationData.ConnectionAttemptEvent
	return ev != nil && *ev == ConnSuccess
}

// EnableEventsAndReports releases events and reports a Reader held
// while EventsAndReports hold-on-reconnect was in effect.
type EnableEventsAndReports struct{}

func (*EnableEventsAndReports) Type() MessageType              { return MsgEnableEventsAndReports }
func (*EnableEventsAndReports) MarshalBinary() ([]byte, error) { return nil, nil }
func (*EnableEventsAndReports) UnmarshalBinary(data []byte) error {
	return emptyBody(MsgEnableEventsAndReports, data)
}

// ErrorMessage is the Reader's answer to something it couldn't parse
// or didn't expect, including version mismatches.
type ErrorMessage struct {
	LLRPStatus LLRPStatus
}

func (*ErrorMessage) Type() MessageType { return MsgErrorMessage }

func (m *ErrorMessage) Status() LLRPStatus { return m.LLRPStatus }

func (m *ErrorMessage) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	m.LLRPStatus.encodeTo(b)
	return b.finish()
}

func (m *ErrorMessage) UnmarshalBinary(data []byte) error {
	return statusOnlyBody(&m.LLRPStatus, data)
}

// CustomMessage is a vendor-defined message. The payload is opaque;
// responsibility for its layout lies with the vendor extension.
type CustomMessage struct {
	VendorID       uint32
	MessageSubtype uint8
	Data           []byte
}

func (*CustomMessage) Type() MessageType { return MsgCustomMessage }

func (m *CustomMessage) MarshalBinary() ([]byte, error) {
	b := newMsgBuilder()
	b.u32(m.VendorID)
	b.u8(m.MessageSubtype)
	b.raw(m.Data)
	return b.finish()
}

func (m *CustomMessage) UnmarshalBinary(data []byte) error {
	r := newPReader(data)
	m.VendorID = r.u32()
	m.MessageSubtype = r.u8()
	m.Data = r.raw(len(data) - r.pos)
	return r.finish()
}
