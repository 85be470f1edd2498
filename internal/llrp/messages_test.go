//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageBodiesMatchTheirType(t *testing.T) {
	for want, msg := range map[MessageType]interface{ Type() MessageType }{
		MsgGetSupportedVersion:           &GetSupportedVersion{},
		MsgGetSupportedVersionResponse:   &GetSupportedVersionResponse{},
		MsgSetProtocolVersion:            &SetProtocolVersion{},
		MsgSetProtocolVersionResponse:    &SetProtocolVersionResponse{},
		MsgGetReaderCapabilities:         &GetReaderCapabilities{},
		MsgGetReaderCapabilitiesResponse: &GetReaderCapabilitiesResponse{},
		MsgGetReaderConfig:               &GetReaderConfig{},
		MsgGetReaderConfigResponse:       &GetReaderConfigResponse{},
		MsgSetReaderConfig:               &SetReaderConfig{},
		MsgSetReaderConfigResponse:       &SetReaderConfigResponse{},
		MsgCloseConnection:               &CloseConnection{},
		MsgCloseConnectionResponse:       &CloseConnectionResponse{},
		MsgAddROSpec:                     &AddROSpec{},
		MsgAddROSpecResponse:             &AddROSpecResponse{},
		MsgDeleteROSpec:                  &DeleteROSpec{},
		MsgDeleteROSpecResponse:          &DeleteROSpecResponse{},
		MsgStartROSpec:                   &StartROSpec{},
		MsgStartROSpecResponse:           &StartROSpecResponse{},
		MsgStopROSpec:                    &StopROSpec{},
		MsgStopROSpecResponse:            &StopROSpecResponse{},
		MsgEnableROSpec:                  &EnableROSpec{},
		MsgEnableROSpecResponse:          &EnableROSpecResponse{},
		MsgDisableROSpec:                 &DisableROSpec{},
		MsgDisableROSpecResponse:         &DisableROSpecResponse{},
		MsgGetROSpecs:                    &GetROSpecs{},
		MsgGetROSpecsResponse:            &GetROSpecsResponse{},
		MsgAddAccessSpec:                 &AddAccessSpec{},
		MsgAddAccessSpecResponse:         &AddAccessSpecResponse{},
		MsgDeleteAccessSpec:              &DeleteAccessSpec{},
		MsgDeleteAccessSpecResponse:      &DeleteAccessSpecResponse{},
		MsgEnableAccessSpec:              &EnableAccessSpec{},
		MsgEnableAccessSpecResponse:      &EnableAccessSpecResponse{},
		MsgDisableAccessSpec:             &DisableAccessSpec{},
		MsgDisableAccessSpecResponse:     &DisableAccessSpecResponse{},
		MsgGetAccessSpecs:                &GetAccessSpecs{},
		MsgGetAccessSpecsResponse:        &GetAccessSpecsResponse{},
		MsgClientRequestOp:               &ClientRequestOp{},
		MsgClientRequestOpResponse:       &ClientRequestOpResponse{},
		MsgGetReport:                     &GetReport{},
		MsgROAccessReport:                &ROAccessReport{},
		MsgKeepAlive:                     &KeepAlive{},
		MsgKeepAliveAck:                  &KeepAliveAck{},
		MsgReaderEventNotification:       &ReaderEventNotification{},
		MsgEnableEventsAndReports:        &EnableEventsAndReports{},
		MsgErrorMessage:                  &ErrorMessage{},
		MsgCustomMessage:                 &CustomMessage{},
	} {
		assert.Equal(t, want, msg.Type(), "%v", want)
	}
}

func TestMessageTypeResponses(t *testing.T) {
	// Every Client-initiated message is answered by the type 10 above it,
	// except CustomMessage, which answers in kind.
	requests := []MessageType{
		MsgGetReaderCapabilities, MsgGetReaderConfig, MsgSetReaderConfig,
		MsgCloseConnection, MsgAddROSpec, MsgDeleteROSpec, MsgStartROSpec,
		MsgStopROSpec, MsgEnableROSpec, MsgDisableROSpec, MsgGetROSpecs,
		MsgAddAccessSpec, MsgDeleteAccessSpec, MsgEnableAccessSpec,
		MsgDisableAccessSpec, MsgGetAccessSpecs, MsgClientRequestOp,
		MsgGetSupportedVersion, MsgSetProtocolVersion,
	}
	for _, mt := range requests {
		resp, ok := mt.responseType()
		assert.True(t, ok, "%v", mt)
		assert.Equal(t, mt+10, resp, "%v", mt)
	}

	resp, ok := MsgCustomMessage.responseType()
	assert.True(t, ok)
	assert.Equal(t, MsgCustomMessage, resp)

	// Reader-initiated messages have no response type.
	for _, mt := range []MessageType{
		MsgROAccessReport, MsgReaderEventNotification,
		MsgKeepAlive, MsgGetReport, MsgEnableEventsAndReports, MsgErrorMessage,
	} {
		_, ok := mt.responseType()
		assert.False(t, ok, "%v", mt)
	}
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "AddROSpec", MsgAddROSpec.String())
	assert.Equal(t, "ROAccessReport", MsgROAccessReport.String())
	assert.Equal(t, "MessageType(999)", MessageType(999).String())
}

func TestStatusableResponses(t *testing.T) {
	ls := LLRPStatus{Status: StatusMsgFieldError, ErrorDescription: "bad field"}

	for _, s := range []Statusable{
		&GetReaderCapabilitiesResponse{LLRPStatus: ls},
		&AddROSpecResponse{LLRPStatus: ls},
		&EnableROSpecResponse{LLRPStatus: ls},
		&AddAccessSpecResponse{LLRPStatus: ls},
		&SetReaderConfigResponse{LLRPStatus: ls},
		&CloseConnectionResponse{LLRPStatus: ls},
	} {
		got := s.Status()
		assert.Equal(t, StatusMsgFieldError, got.Status)
		assert.Equal(t, "bad field", got.ErrorDescription)
		assert.Error(t, got.Err(s.(interface{ Type() MessageType }).Type()))
	}

	assert.NoError(t, successStatus().Err(MsgAddROSpecResponse))
}
