//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCaps is a hopping-region Reader with two RF modes and power
// levels deliberately out of index order.
func testCaps() *GetReaderCapabilitiesResponse {
	return &GetReaderCapabilitiesResponse{
		GeneralDeviceCapabilities: &GeneralDeviceCapabilities{
			GPIOCapabilities: GPIOCapabilities{NumGPIs: 4, NumGPOs: 4},
		},
		LLRPCapabilities: &LLRPCapabilities{
			MaxSpecsPerROSpec:                      32,
			CanDoTagInventoryStateAwareSingulation: true,
		},
		C1G2LLRPCapabilities: &C1G2LLRPCapabilities{},
		RegulatoryCapabilities: &RegulatoryCapabilities{
			UHFBandCapabilities: &UHFBandCapabilities{
				TransmitPowerLevels: []TransmitPowerLevelTableEntry{
					{Index: 3, TransmitPowerValue: 3000},
					{Index: 1, TransmitPowerValue: 1000},
					{Index: 2, TransmitPowerValue: 2000},
				},
				FrequencyInformation: FrequencyInformation{
					Hopping: true,
					FrequencyHopTables: []FrequencyHopTable{{
						HopTableID:  1,
						Frequencies: []Kilohertz{909250, 908250, 925750},
					}},
				},
				C1G2RFModes: UHFC1G2RFModeTable{
					UHFC1G2RFModeTableEntries: []UHFC1G2RFModeTableEntry{
						{
							ModeID:              0,
							SpectralMask:        SpectralMaskMultiInterrogator,
							BackscatterDataRate: 640000,
							PIERatio:            1500,
							MinTariTime:         6250,
							MaxTariTime:         6250,
						},
						{
							ModeID:              2,
							SpectralMask:        SpectralMaskDenseInterrogator,
							BackscatterDataRate: 274000,
							PIERatio:            2000,
							MinTariTime:         20000,
							MaxTariTime:         20000,
						},
					},
				},
			},
		},
	}
}

func TestNewBasicDeviceValidation(t *testing.T) {
	_, err := NewBasicDevice(nil)
	assert.ErrorIs(t, err, ErrMissingCapInfo)

	noPower := testCaps()
	noPower.RegulatoryCapabilities.UHFBandCapabilities.TransmitPowerLevels = nil
	_, err = NewBasicDevice(noPower)
	assert.ErrorIs(t, err, ErrMissingCapInfo)

	noModes := testCaps()
	noModes.RegulatoryCapabilities.UHFBandCapabilities.C1G2RFModes.UHFC1G2RFModeTableEntries = nil
	_, err = NewBasicDevice(noModes)
	assert.ErrorIs(t, err, ErrMissingCapInfo)

	noFreqs := testCaps()
	noFreqs.RegulatoryCapabilities.UHFBandCapabilities.FrequencyInformation.FrequencyHopTables = nil
	_, err = NewBasicDevice(noFreqs)
	assert.ErrorIs(t, err, ErrMissingCapInfo)
}

func TestFindPower(t *testing.T) {
	d, err := NewBasicDevice(testCaps())
	require.NoError(t, err)

	tests := []struct {
		name      string
		target    MillibelMilliwatt
		wantIdx   uint16
		wantValue MillibelMilliwatt
	}{
		{"exact match", 2000, 2, 2000},
		{"rounds down between levels", 2500, 2, 2000},
		{"caps at the maximum", 9000, 3, 3000},
		{"below minimum returns minimum", 500, 1, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, value := d.findPower(tt.target)
			assert.Equal(t, tt.wantIdx, idx)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestTransmit(t *testing.T) {
	d, err := NewBasicDevice(testCaps())
	require.NoError(t, err)

	tx, err := d.Transmit(Behavior{Power: PowerTarget{Max: 3000}})
	require.NoError(t, err)
	assert.Equal(t, uint16(1), tx.HopTableID)
	assert.Equal(t, uint16(3), tx.TransmitPowerIndex)

	// A target below the Reader's minimum cannot be satisfied.
	_, err = d.Transmit(Behavior{Power: PowerTarget{Max: 500}})
	assert.ErrorIs(t, err, ErrUnsatisfiable)
}

func TestTransmitFixedFrequency(t *testing.T) {
	caps := testCaps()
	uhf := caps.RegulatoryCapabilities.UHFBandCapabilities
	uhf.FrequencyInformation = FrequencyInformation{
		FixedFrequencyTable: &FixedFrequencyTable{
			Frequencies: []Kilohertz{865700, 866300, 866900},
		},
	}
	d, err := NewBasicDevice(caps)
	require.NoError(t, err)

	b := Behavior{Power: PowerTarget{Max: 3000}, Frequencies: []Kilohertz{866300}}
	tx, err := d.Transmit(b)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), tx.ChannelIndex, "channel indices are 1-based")
	assert.Equal(t, uint16(3), tx.TransmitPowerIndex)

	// Without a permitted frequency there's nothing to transmit on.
	_, err = d.Transmit(Behavior{Power: PowerTarget{Max: 3000}})
	assert.ErrorIs(t, err, ErrUnsatisfiable)
}

func TestBestMode(t *testing.T) {
	d, err := NewBasicDevice(testCaps())
	require.NoError(t, err)

	// Unknown density gets the fastest mode overall.
	assert.Equal(t, uint32(0), d.bestMode(0).ModeID)

	// At or past the channel count, only dense-interrogator modes qualify.
	assert.Equal(t, uint32(2), d.bestMode(3).ModeID)
}

func TestProcessTagReportCarriesLastValues(t *testing.T) {
	d, err := NewBasicDevice(testCaps())
	require.NoError(t, err)

	antenna := AntennaID(3)
	rssi := PeakRSSI(-60)
	seen := LastSeenUTC(1589939427000000)
	full := []TagReportData{{
		EPC96:       EPC96{EPC: make([]byte, 12)},
		AntennaID:   &antenna,
		PeakRSSI:    &rssi,
		LastSeenUTC: &seen,
	}}
	d.ProcessTagReport(full)

	// A Reader may omit an enabled field whose value didn't change;
	// the processed report must carry the last value forward.
	compressed := []TagReportData{{EPC96: EPC96{EPC: make([]byte, 12)}}}
	d.ProcessTagReport(compressed)

	tag := compressed[0]
	require.NotNil(t, tag.AntennaID)
	assert.Equal(t, antenna, *tag.AntennaID)
	require.NotNil(t, tag.PeakRSSI)
	assert.Equal(t, rssi, *tag.PeakRSSI)
	require.NotNil(t, tag.LastSeenUTC)
	assert.Equal(t, seen, *tag.LastSeenUTC)

	// The filled pointers must not alias the device's own state.
	*tag.AntennaID = 9
	again := []TagReportData{{EPC96: EPC96{EPC: make([]byte, 12)}}}
	d.ProcessTagReport(again)
	assert.Equal(t, antenna, *again[0].AntennaID)
}

func TestNewROSpecSessions(t *testing.T) {
	caps := testCaps()
	caps.LLRPCapabilities.CanDoTagInventoryStateAwareSingulation = false
	d, err := NewBasicDevice(caps)
	require.NoError(t, err)

	tests := []struct {
		name        string
		scan        ScanType
		wantSession uint8
		wantFilter  bool
	}{
		{"fast uses S0", ScanFast, 0, false},
		{"normal uses S1", ScanNormal, 1, false},
		{"deep uses S2 with a select filter", ScanDeep, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := d.NewROSpec(Behavior{ScanType: tt.scan, Power: PowerTarget{Max: 3000}}, Environment{})
			require.NoError(t, err)
			require.Len(t, spec.AISpecs, 1)

			inv := spec.AISpecs[0].InventoryParameterSpecs[0].
				AntennaConfigurations[0].C1G2InventoryCommand
			require.NotNil(t, inv.SingulationControl)
			assert.Equal(t, tt.wantSession, inv.SingulationControl.Session)
			assert.Equal(t, tt.wantFilter, len(inv.Filters) != 0)
			assert.Nil(t, inv.SingulationControl.InvAwareAction)
		})
	}
}

func TestNewROSpecDeepScanDualTarget(t *testing.T) {
	d, err := NewBasicDevice(testCaps())
	require.NoError(t, err)

	spec, err := d.NewROSpec(Behavior{ScanType: ScanDeep, Power: PowerTarget{Max: 3000}}, Environment{})
	require.NoError(t, err)

	// State-aware Readers run two alternating S2 specs, A-side then B-side.
	require.Len(t, spec.AISpecs, 2)
	for i, ai := range spec.AISpecs {
		assert.Equal(t, AIStopTriggerTagObservation, ai.StopTrigger.Trigger)
		require.NotNil(t, ai.StopTrigger.TagObservationTrigger)

		sing := ai.InventoryParameterSpecs[0].
			AntennaConfigurations[0].C1G2InventoryCommand.SingulationControl
		require.NotNil(t, sing.InvAwareAction)
		assert.Equal(t, uint8(2), sing.Session)

		want := SessionStateA
		if i == 1 {
			want = SessionStateB
		}
		assert.Equal(t, want, sing.InvAwareAction.SessionState)
	}
}

func TestNewROSpecEnvironmentOverrides(t *testing.T) {
	d, err := NewBasicDevice(testCaps())
	require.NoError(t, err)

	env := Environment{PopulationSize: 42, Mobility: tagsAreInMotion}
	spec, err := d.NewROSpec(Behavior{ScanType: ScanNormal, Power: PowerTarget{Max: 3000}}, env)
	require.NoError(t, err)

	sing := spec.AISpecs[0].InventoryParameterSpecs[0].
		AntennaConfigurations[0].C1G2InventoryCommand.SingulationControl
	assert.Equal(t, uint16(42), sing.TagPopulation)
	assert.Equal(t, Millisecs32(tagsAreInMotion), sing.TagTransitTime)
}

func TestNewROSpecGPIValidation(t *testing.T) {
	d, err := NewBasicDevice(testCaps())
	require.NoError(t, err)

	b := Behavior{Power: PowerTarget{Max: 3000}}

	b.GPITrigger = &GPITrigger{Port: 0}
	_, err = d.NewROSpec(b, Environment{})
	assert.ErrorIs(t, err, ErrUnsatisfiable)

	b.GPITrigger = &GPITrigger{Port: 9}
	_, err = d.NewROSpec(b, Environment{})
	assert.ErrorIs(t, err, ErrUnsatisfiable)

	b.GPITrigger = &GPITrigger{Port: 2, Event: true}
	spec, err := d.NewROSpec(b, Environment{})
	require.NoError(t, err)
	assert.Equal(t, ROStartTriggerGPI, spec.ROBoundarySpec.StartTrigger.Trigger)
}

func TestNewImpinjDeviceFixesModeTable(t *testing.T) {
	caps := testCaps()
	caps.RegulatoryCapabilities.UHFBandCapabilities.C1G2RFModes = UHFC1G2RFModeTable{
		UHFC1G2RFModeTableEntries: []UHFC1G2RFModeTableEntry{
			{ModeID: 1, Modulation: Miller2, SpectralMask: SpectralMaskMultiInterrogator,
				BackscatterDataRate: 640000, PIERatio: 1500, MinTariTime: 6250},
			{ModeID: 1000, BackscatterDataRate: 40000, PIERatio: 1500, MinTariTime: 6250},
		},
	}

	d, err := NewImpinjDevice(caps)
	require.NoError(t, err)

	// The autoset placeholder is gone, and the surviving mode's
	// "BDR" was really a BLF in Hz: Miller2 halves it.
	require.Len(t, d.modes, 1)
	assert.Equal(t, uint32(1), d.modes[0].ModeID)
	assert.Equal(t, uint32(320000), d.modes[0].BackscatterDataRate)
}

func TestImpinjROSpecSearchModes(t *testing.T) {
	d, err := NewImpinjDevice(testCaps())
	require.NoError(t, err)

	tests := []struct {
		name        string
		behavior    Behavior
		wantMode    impinjSearchMode
		wantSession uint8
	}{
		{
			name:        "normal scans dual-target",
			behavior:    Behavior{ScanType: ScanNormal, Power: PowerTarget{Max: 3000}},
			wantMode:    impjDualTarget,
			wantSession: 1,
		},
		{
			name: "suppression switches to TagFocus",
			behavior: Behavior{ScanType: ScanFast, Power: PowerTarget{Max: 3000},
				ImpinjOptions: &ImpinjOptions{SuppressMonza: true}},
			wantMode:    impjSingleTargetSuppressed,
			wantSession: 1, // TagFocus only works in S1
		},
		{
			name:        "deep scans dual-target with reset",
			behavior:    Behavior{ScanType: ScanDeep, Power: PowerTarget{Max: 3000}},
			wantMode:    impjDualTargetWithReset,
			wantSession: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := d.NewROSpec(tt.behavior, Environment{})
			require.NoError(t, err)

			inv := spec.AISpecs[0].InventoryParameterSpecs[0].
				AntennaConfigurations[0].C1G2InventoryCommand
			assert.Equal(t, tt.wantSession, inv.SingulationControl.Session)
			assert.Nil(t, inv.SingulationControl.InvAwareAction)

			require.Len(t, inv.Custom, 1)
			assert.True(t, inv.Custom[0].Is(PENImpinj, ImpinjSearchMode))
			want := []byte{uint8(tt.wantMode >> 8), uint8(tt.wantMode)}
			assert.Equal(t, want, inv.Custom[0].Data)
		})
	}
}

func TestImpinjNewConfigEnablesPeakRSSI(t *testing.T) {
	d, err := NewImpinjDevice(testCaps())
	require.NoError(t, err)

	conf := d.NewConfig()
	assert.True(t, conf.ResetToFactoryDefaults)
	require.NotNil(t, conf.ROReportSpec)
	assert.True(t, conf.ROReportSpec.TagReportContentSelector.EnablePeakRSSI)

	require.Len(t, conf.ROReportSpec.Custom, 1)
	c := conf.ROReportSpec.Custom[0]
	assert.True(t, c.Is(PENImpinj, ImpinjTagReportContentSelector))
	assert.Equal(t, impinjEnableBool16(ImpinjEnablePeakRSSI), c.Data)
}
