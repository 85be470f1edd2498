//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"encoding/json"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeController is a SpecController that records the commands it receives
// and serves capabilities from a canned JSON document.
type fakeController struct {
	mu       sync.Mutex
	capsJSON string
	failOn   map[string]error
	calls    []string
}

func newFakeController(capsJSON string) *fakeController {
	return &fakeController{capsJSON: capsJSON, failOn: map[string]error{}}
}

func (f *fakeController) op(op, device string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op+":"+device)
	return f.failOn[op]
}

// called returns how many times the named operation ran, on any device.
func (f *fakeController) called(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.calls {
		if len(c) >= len(op) && c[:len(op)] == op {
			n++
		}
	}
	return n
}

func (f *fakeController) GetCapabilities(device string) (*GetReaderCapabilitiesResponse, error) {
	if err := f.op("GetCapabilities", device); err != nil {
		return nil, err
	}

	caps := &GetReaderCapabilitiesResponse{}
	if err := json.Unmarshal([]byte(f.capsJSON), caps); err != nil {
		return nil, err
	}
	return caps, nil
}

func (f *fakeController) SetConfig(device string, _ *SetReaderConfig) error {
	return f.op("SetConfig", device)
}

func (f *fakeController) EnableCustomExtensions(device string) error {
	return f.op("EnableCustomExtensions", device)
}

func (f *fakeController) AddROSpec(device string, _ *ROSpec) error {
	return f.op("AddROSpec", device)
}

func (f *fakeController) EnableROSpec(device string, _ uint32) error {
	return f.op("EnableROSpec", device)
}

func (f *fakeController) DisableROSpec(device string, _ uint32) error {
	return f.op("DisableROSpec", device)
}

func (f *fakeController) StartROSpec(device string, _ uint32) error {
	return f.op("StartROSpec", device)
}

func (f *fakeController) StopROSpec(device string, _ uint32) error {
	return f.op("StopROSpec", device)
}

func (f *fakeController) DeleteROSpec(device string, _ uint32) error {
	return f.op("DeleteROSpec", device)
}

func (f *fakeController) DeleteAllROSpecs(device string) error {
	return f.op("DeleteAllROSpecs", device)
}

func TestNewReader(t *testing.T) {
	type testCase struct {
		testCaseName string
		deviceName   string
		capabilities string
		wantType     interface{}
		wantExtCalls int
	}

	testCases := []testCase{
		{
			testCaseName: "Test New Reader Type for Device of Type PENImpinj",
			deviceName:   "SpeedwayR-19-FE-16",
			capabilities: PENImpinjCap,
			wantType:     &ImpinjDevice{},
			wantExtCalls: 1,
		},
		{
			testCaseName: "Test New Reader Type for Device of Type PENAlien",
			deviceName:   "Alien-ALR-F800",
			capabilities: PENAlienCap,
			wantType:     &BasicDevice{},
		},
		{
			testCaseName: "Test New Reader Type for Device of Type PENZebra",
			deviceName:   "Zebra-FX7500",
			capabilities: PENZebraCap,
			wantType:     &BasicDevice{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testCaseName, func(t *testing.T) {
			cc := newFakeController(tc.capabilities)

			tagReader, err := NewReader(cc, tc.deviceName)
			require.NoError(t, err)
			require.Equal(t, reflect.TypeOf(tc.wantType), reflect.TypeOf(tagReader))

			assert.Equal(t, tc.wantExtCalls, cc.called("EnableCustomExtensions"))
			assert.Equal(t, 1, cc.called("SetConfig"))
		})
	}
}

func TestNewReader_setConfigFails(t *testing.T) {
	cc := newFakeController(PENImpinjCap)
	cc.failOn["SetConfig"] = ErrClientClosed

	_, err := NewReader(cc, "SpeedwayR-19-FE-16")
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestClientPool_UnknownReader(t *testing.T) {
	p := NewClientPool(WithCommandTimeout(time.Second))

	_, err := p.GetCapabilities("missing")
	assert.ErrorIs(t, err, ErrUnknownReader)

	assert.ErrorIs(t, p.SetConfig("missing", &SetReaderConfig{}), ErrUnknownReader)
	assert.ErrorIs(t, p.AddROSpec("missing", &ROSpec{ROSpecID: 1}), ErrUnknownReader)
	assert.ErrorIs(t, p.EnableROSpec("missing", 1), ErrUnknownReader)
	assert.ErrorIs(t, p.StartROSpec("missing", 1), ErrUnknownReader)
	assert.ErrorIs(t, p.StopROSpec("missing", 1), ErrUnknownReader)
	assert.ErrorIs(t, p.DisableROSpec("missing", 1), ErrUnknownReader)
	assert.ErrorIs(t, p.DeleteROSpec("missing", 1), ErrUnknownReader)
	assert.ErrorIs(t, p.DeleteAllROSpecs("missing"), ErrUnknownReader)
	assert.ErrorIs(t, p.EnableCustomExtensions("missing"), ErrUnknownReader)
}

func TestClientPool_registry(t *testing.T) {
	p := NewClientPool()

	c1 := NewClient()
	c2 := NewClient()
	p.Set("reader-1", c1)
	p.Set("reader-2", c2)

	got, ok := p.Get("reader-1")
	require.True(t, ok)
	assert.Same(t, c1, got)

	assert.ElementsMatch(t, []string{"reader-1", "reader-2"}, p.Names())

	p.Remove("reader-1")
	_, ok = p.Get("reader-1")
	assert.False(t, ok)

	// Removing an unknown name is a no-op.
	p.Remove("reader-1")
	assert.ElementsMatch(t, []string{"reader-2"}, p.Names())
}

const PENImpinjCap = `{
	"LLRPStatus": {
		"Status": 0,
		"ErrorDescription": "",
		"FieldError": null,
		"ParameterError": null
	},
	"GeneralDeviceCapabilities": {
		"MaxSupportedAntennas": 4,
		"CanSetAntennaProperties": false,
		"HasUTCClock": true,
		"DeviceManufacturer": 25882,
		"Model": 2001002,
		"FirmwareVersion": "5.14.0.240",
		"ReceiveSensitivities": [
			{
				"Index": 1,
				"ReceiveSensitivity": 0
			},
			{
				"Index": 2,
				"ReceiveSensitivity": 10
			}
		],
		"GPIOCapabilities": {
			"NumGPIs": 4,
			"NumGPOs": 4
		},
		"PerAntennaAirProtocols": [
			{
				"AntennaID": 1,
				"AirProtocolIDs": "AQ=="
			},
			{
				"AntennaID": 2,
				"AirProtocolIDs": "AQ=="
			},
			{
				"AntennaID": 3,
				"AirProtocolIDs": "AQ=="
			},
			{
				"AntennaID": 4,
				"AirProtocolIDs": "AQ=="
			}
		]
	},
	"LLRPCapabilities": {
		"CanDoRFSurvey": false,
		"CanReportBufferFillWarning": true,
		"SupportsClientRequestOpSpec": false,
		"CanDoTagInventoryStateAwareSingulation": false,
		"SupportsEventsAndReportHolding": true,
		"MaxPriorityLevelSupported": 1,
		"ClientRequestedOpSpecTimeout": 0,
		"MaxROSpecs": 1,
		"MaxSpecsPerROSpec": 32,
		"MaxInventoryParameterSpecsPerAISpec": 1,
		"MaxAccessSpecs": 1508,
		"MaxOpSpecsPerAccessSpec": 8
	},
	"RegulatoryCapabilities": {
		"CountryCode": 840,
		"CommunicationsStandard": 1,
		"UHFBandCapabilities": {
			"TransmitPowerLevels": [
				{
					"Index": 1,
					"TransmitPowerValue": 1000
				}
			],
			"FrequencyInformation": {
				"Hopping": true,
				"FrequencyHopTables": [
					{
						"HopTableID": 1,
						"Frequencies": [
							909250,
							908250,
							925750,
							911250
						]
					}
				],
				"FixedFrequencyTable": null
			},
			"C1G2RFModes": {
				"UHFC1G2RFModeTableEntries": [
					{
						"ModeID": 0,
						"DivideRatio": 1,
						"IsEPCHagConformant": false,
						"Modulation": 0,
						"ForwardLinkModulation": 2,
						"SpectralMask": 2,
						"BackscatterDataRate": 640000,
						"PIERatio": 1500,
						"MinTariTime": 6250,
						"MaxTariTime": 6250,
						"StepTariTime": 0
					},
					{
						"ModeID": 1,
						"DivideRatio": 1,
						"IsEPCHagConformant": false,
						"Modulation": 1,
						"ForwardLinkModulation": 2,
						"SpectralMask": 2,
						"BackscatterDataRate": 640000,
						"PIERatio": 1500,
						"MinTariTime": 6250,
						"MaxTariTime": 6250,
						"StepTariTime": 0
					},
					{
						"ModeID": 2,
						"DivideRatio": 1,
						"IsEPCHagConformant": false,
						"Modulation": 2,
						"ForwardLinkModulation": 0,
						"SpectralMask": 3,
						"BackscatterDataRate": 274000,
						"PIERatio": 2000,
						"MinTariTime": 20000,
						"MaxTariTime": 20000,
						"StepTariTime": 0
					}
				]
			}
		},
		"Custom": null
	},
	"C1G2LLRPCapabilities": {
		"SupportsBlockErase": false,
		"SupportsBlockWrite": true,
		"SupportsBlockPermalock": false,
		"SupportsTagRecommissioning": false,
		"SupportsUMIMethod2": false,
		"SupportsXPC": false,
		"MaxSelectFiltersPerQuery": 2
	},
	"Custom": null
}`

const PENAlienCap = `{
	"LLRPStatus": {
		"Status": 0,
		"ErrorDescription": "",
		"FieldError": null,
		"ParameterError": null
	},
	"GeneralDeviceCapabilities": {
		"MaxSupportedAntennas": 4,
		"CanSetAntennaProperties": false,
		"HasUTCClock": true,
		"DeviceManufacturer": 17996,
		"Model": 2001002,
		"FirmwareVersion": "5.14.0.240",
		"ReceiveSensitivities": [
			{
				"Index": 1,
				"ReceiveSensitivity": 0
			},
			{
				"Index": 2,
				"ReceiveSensitivity": 10
			}
		],
		"GPIOCapabilities": {
			"NumGPIs": 4,
			"NumGPOs": 4
		},
		"PerAntennaAirProtocols": [
			{
				"AntennaID": 1,
				"AirProtocolIDs": "AQ=="
			},
			{
				"AntennaID": 2,
				"AirProtocolIDs": "AQ=="
			},
			{
				"AntennaID": 3,
				"AirProtocolIDs": "AQ=="
			},
			{
				"AntennaID": 4,
				"AirProtocolIDs": "AQ=="
			}
		]
	},
	"LLRPCapabilities": {
		"CanDoRFSurvey": false,
		"CanReportBufferFillWarning": true,
		"SupportsClientRequestOpSpec": false,
		"CanDoTagInventoryStateAwareSingulation": false,
		"SupportsEventsAndReportHolding": true,
		"MaxPriorityLevelSupported": 1,
		"ClientRequestedOpSpecTimeout": 0,
		"MaxROSpecs": 1,
		"MaxSpecsPerROSpec": 32,
		"MaxInventoryParameterSpecsPerAISpec": 1,
		"MaxAccessSpecs": 1508,
		"MaxOpSpecsPerAccessSpec": 8
	},
	"RegulatoryCapabilities": {
		"CountryCode": 840,
		"CommunicationsStandard": 1,
		"UHFBandCapabilities": {
			"TransmitPowerLevels": [
				{
					"Index": 1,
					"TransmitPowerValue": 1000
				}
			],
			"FrequencyInformation": {
				"Hopping": true,
				"FrequencyHopTables": [
					{
						"HopTableID": 1,
						"Frequencies": [
							909250,
							908250,
							925750,
							911250
						]
					}
				],
				"FixedFrequencyTable": null
			},
			"C1G2RFModes": {
				"UHFC1G2RFModeTableEntries": [
					{
						"ModeID": 0,
						"DivideRatio": 1,
						"IsEPCHagConformant": false,
						"Modulation": 0,
						"ForwardLinkModulation": 2,
						"SpectralMask": 2,
						"BackscatterDataRate": 640000,
						"PIERatio": 1500,
						"MinTariTime": 6250,
						"MaxTariTime": 6250,
						"StepTariTime": 0
					},
					{
						"ModeID": 1,
						"DivideRatio": 1,
						"IsEPCHagConformant": false,
						"Modulation": 1,
						"ForwardLinkModulation": 2,
						"SpectralMask": 2,
						"BackscatterDataRate": 640000,
						"PIERatio": 1500,
						"MinTariTime": 6250,
						"MaxTariTime": 6250,
						"StepTariTime": 0
					},
					{
						"ModeID": 2,
						"DivideRatio": 1,
						"IsEPCHagConformant": false,
						"Modulation": 2,
						"ForwardLinkModulation": 0,
						"SpectralMask": 3,
						"BackscatterDataRate": 274000,
						"PIERatio": 2000,
						"MinTariTime": 20000,
						"MaxTariTime": 20000,
						"StepTariTime": 0
					}
				]
			}
		},
		"Custom": null
	},
	"C1G2LLRPCapabilities": {
		"SupportsBlockErase": false,
		"SupportsBlockWrite": true,
		"SupportsBlockPermalock": false,
		"SupportsTagRecommissioning": false,
		"SupportsUMIMethod2": false,
		"SupportsXPC": false,
		"MaxSelectFiltersPerQuery": 2
	},
	"Custom": null
}`

const PENZebraCap = `{
	"LLRPStatus": {
		"Status": 0,
		"ErrorDescription": "",
		"FieldError": null,
		"ParameterError": null
	},
	"GeneralDeviceCapabilities": {
		"MaxSupportedAntennas": 4,
		"CanSetAntennaProperties": false,
		"HasUTCClock": true,
		"DeviceManufacturer": 10642,
		"Model": 2001002,
		"FirmwareVersion": "5.14.0.240",
		"ReceiveSensitivities": [
			{
				"Index": 1,
				"ReceiveSensitivity": 0
			},
			{
				"Index": 2,
				"ReceiveSensitivity": 10
			}
		],
		"GPIOCapabilities": {
			"NumGPIs": 4,
			"NumGPOs": 4
		},
		"PerAntennaAirProtocols": [
			{
				"AntennaID": 1,
				"AirProtocolIDs": "AQ=="
			},
			{
				"AntennaID": 2,
				"AirProtocolIDs": "AQ=="
			},
			{
				"AntennaID": 3,
				"AirProtocolIDs": "AQ=="
			},
			{
				"AntennaID": 4,
				"AirProtocolIDs": "AQ=="
			}
		]
	},
	"LLRPCapabilities": {
		"CanDoRFSurvey": false,
		"CanReportBufferFillWarning": true,
		"SupportsClientRequestOpSpec": false,
		"CanDoTagInventoryStateAwareSingulation": false,
		"SupportsEventsAndReportHolding": true,
		"MaxPriorityLevelSupported": 1,
		"ClientRequestedOpSpecTimeout": 0,
		"MaxROSpecs": 1,
		"MaxSpecsPerROSpec": 32,
		"MaxInventoryParameterSpecsPerAISpec": 1,
		"MaxAccessSpecs": 1508,
		"MaxOpSpecsPerAccessSpec": 8
	},
	"RegulatoryCapabilities": {
		"CountryCode": 840,
		"CommunicationsStandard": 1,
		"UHFBandCapabilities": {
			"TransmitPowerLevels": [
				{
					"Index": 1,
					"TransmitPowerValue": 1000
				}
			],
			"FrequencyInformation": {
				"Hopping": true,
				"FrequencyHopTables": [
					{
						"HopTableID": 1,
						"Frequencies": [
							909250,
							908250,
							925750,
							911250
						]
					}
				],
				"FixedFrequencyTable": null
			},
			"C1G2RFModes": {
				"UHFC1G2RFModeTableEntries": [
					{
						"ModeID": 0,
						"DivideRatio": 1,
						"IsEPCHagConformant": false,
						"Modulation": 0,
						"ForwardLinkModulation": 2,
						"SpectralMask": 2,
						"BackscatterDataRate": 640000,
						"PIERatio": 1500,
						"MinTariTime": 6250,
						"MaxTariTime": 6250,
						"StepTariTime": 0
					},
					{
						"ModeID": 1,
						"DivideRatio": 1,
						"IsEPCHagConformant": false,
						"Modulation": 1,
						"ForwardLinkModulation": 2,
						"SpectralMask": 2,
						"BackscatterDataRate": 640000,
						"PIERatio": 1500,
						"MinTariTime": 6250,
						"MaxTariTime": 6250,
						"StepTariTime": 0
					},
					{
						"ModeID": 2,
						"DivideRatio": 1,
						"IsEPCHagConformant": false,
						"Modulation": 2,
						"ForwardLinkModulation": 0,
						"SpectralMask": 3,
						"BackscatterDataRate": 274000,
						"PIERatio": 2000,
						"MinTariTime": 20000,
						"MaxTariTime": 20000,
						"StepTariTime": 0
					}
				]
			}
		},
		"Custom": null
	},
	"C1G2LLRPCapabilities": {
		"SupportsBlockErase": false,
		"SupportsBlockWrite": true,
		"SupportsBlockPermalock": false,
		"SupportsTagRecommissioning": false,
		"SupportsUMIMethod2": false,
		"SupportsXPC": false,
		"MaxSelectFiltersPerQuery": 2
	},
	"Custom": null
}`
