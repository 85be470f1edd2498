//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"sort"

	"github.com/pkg/errors"
)

// BasicDevice distills a Reader's capability report into the pieces
// needed to turn Behaviors into ROSpecs: its RF mode and power tables,
// frequency plan, and the reporting features it supports.
type BasicDevice struct {
	modes    []UHFC1G2RFModeTableEntry
	powers   []TransmitPowerLevelTableEntry // ascending by value
	freqInfo FrequencyInformation

	// report records which optional tag report fields are enabled,
	// and last holds each field's most recent value so reports
	// compressed per LLRP's "unchanged since last sent" rule
	// can be reinflated; see ProcessTagReport.
	report TagReportContentSelector
	last   TagReportData

	nGPIs, nFreqs uint16
	nSpecsPerRO   uint32
	allowsHop     bool
	stateAware    bool
}

// ImpinjDevice specializes BasicDevice for Impinj Readers,
// which skip parts of the standard (no state-aware filtering,
// no Truncate during Select) but expose custom parameters,
// notably "search modes" that stand in for aware filtering.
type ImpinjDevice struct {
	BasicDevice
}

func NewBasicDevice(c *GetReaderCapabilitiesResponse) (*BasicDevice, error) {
	if c == nil || c.GeneralDeviceCapabilities == nil || c.LLRPCapabilities == nil ||
		c.RegulatoryCapabilities == nil || c.C1G2LLRPCapabilities == nil {
		return nil, errMissingCapInfo("capabilities")
	}

	uhf := c.RegulatoryCapabilities.UHFBandCapabilities
	if uhf == nil || len(uhf.TransmitPowerLevels) == 0 {
		return nil, errMissingCapInfo("power levels",
			"RegulatoryCapabilities", "UHFBandCapabilities", "TransmitPowerLevels")
	}

	if len(uhf.C1G2RFModes.UHFC1G2RFModeTableEntries) == 0 {
		return nil, errMissingCapInfo("RF modes",
			"RegulatoryCapabilities", "UHFBandCapabilities", "C1G2RFModes")
	}
	modes := append([]UHFC1G2RFModeTableEntry(nil), uhf.C1G2RFModes.UHFC1G2RFModeTableEntries...)

	nFreqs, err := countFrequencies(uhf.FrequencyInformation)
	if err != nil {
		return nil, err
	}

	// Power selection needs the table ordered by value;
	// Readers report it in table-index order, which needn't match.
	powers := append([]TransmitPowerLevelTableEntry(nil), uhf.TransmitPowerLevels...)
	sort.SliceStable(powers, func(i, j int) bool {
		return powers[i].TransmitPowerValue < powers[j].TransmitPowerValue
	})

	return &BasicDevice{
		modes:       modes,
		powers:      powers,
		freqInfo:    uhf.FrequencyInformation,
		nFreqs:      nFreqs,
		nGPIs:       c.GeneralDeviceCapabilities.GPIOCapabilities.NumGPIs,
		nSpecsPerRO: c.LLRPCapabilities.MaxSpecsPerROSpec,
		allowsHop:   uhf.FrequencyInformation.Hopping,
		stateAware:  c.LLRPCapabilities.CanDoTagInventoryStateAwareSingulation,
		// Mirrors the selector NewConfig enables.
		report: TagReportContentSelector{
			EnableLastSeenTimestamp: true,
			EnableAntennaID:         true,
			EnablePeakRSSI:          true,
		},
		last: TagReportData{
			ROSpecID:                 new(ROSpecID),
			SpecIndex:                new(SpecIndex),
			InventoryParameterSpecID: new(InventoryParameterSpecID),
			AntennaID:                new(AntennaID),
			PeakRSSI:                 new(PeakRSSI),
			ChannelIndex:             new(ChannelIndex),
			FirstSeenUTC:             new(FirstSeenUTC),
			LastSeenUTC:              new(LastSeenUTC),
			TagSeenCount:             new(TagSeenCount),
		},
	}, nil
}

func countFrequencies(fi FrequencyInformation) (uint16, error) {
	if fi.Hopping {
		if len(fi.FrequencyHopTables) == 0 || len(fi.FrequencyHopTables[0].Frequencies) == 0 {
			return 0, errMissingCapInfo("frequencies", "RegulatoryCapabilities",
				"UHFBandCapabilities", "FrequencyInformation", "FrequencyHopTables")
		}
		return uint16(len(fi.FrequencyHopTables[0].Frequencies)), nil
	}

	if fi.FixedFrequencyTable == nil || len(fi.FixedFrequencyTable.Frequencies) == 0 {
		return 0, errMissingCapInfo("frequencies", "RegulatoryCapabilities",
			"UHFBandCapabilities", "FrequencyInformation", "FixedFrequencyTable")
	}
	return uint16(len(fi.FixedFrequencyTable.Frequencies)), nil
}

// NewImpinjDevice builds a device model for an Impinj Reader.
//
// The mode table needs repair before use: entries with ModeID 1000
// and up are "autoset" placeholders whose RF values are fabricated,
// and the real entries report the backscatter link frequency in Hz
// where LLRP calls for the data rate in bps. Dividing BLF by the
// symbols per bit of the Miller encoding gives BDR.
func NewImpinjDevice(c *GetReaderCapabilitiesResponse) (*ImpinjDevice, error) {
	d, err := NewBasicDevice(c)
	if err != nil {
		return nil, err
	}

	kept := d.modes[:0]
	for _, m := range d.modes {
		if m.ModeID >= 1000 {
			continue
		}
		m.BackscatterDataRate >>= m.Modulation // BLF in Hz -> BDR in bps
		kept = append(kept, m)
	}
	d.modes = kept

	return &ImpinjDevice{BasicDevice: *d}, nil
}

// NewConfig returns a SetReaderConfig that factory-resets the Reader,
// then asks for one report per tag carrying the fields inventory needs.
func (d *BasicDevice) NewConfig() *SetReaderConfig {
	return &SetReaderConfig{
		ResetToFactoryDefaults: true,
		ROReportSpec: &ROReportSpec{
			Trigger: ROReportTriggerNTagsOrAIEnd,
			N:       1,
			TagReportContentSelector: TagReportContentSelector{
				EnableLastSeenTimestamp: true,
				EnableAntennaID:         true,
				EnablePeakRSSI:          true,
			},
		},
	}
}

// NewConfig additionally turns on Impinj's high-resolution RSSI reporting.
func (d *ImpinjDevice) NewConfig() *SetReaderConfig {
	conf := d.BasicDevice.NewConfig()
	conf.ROReportSpec.Custom = append(conf.ROReportSpec.Custom, Custom{
		VendorID: uint32(PENImpinj),
		Subtype:  ImpinjTagReportContentSelector,
		Data:     impinjEnableBool16(ImpinjEnablePeakRSSI),
	})
	return conf
}

// impinjEnableBool16 encodes the feature switch Impinj nests inside
// its Custom parameters: a Custom TLV whose payload is a uint16 "1".
func impinjEnableBool16(subtype ImpinjParamSubtype) []byte {
	pen := uint32(PENImpinj)
	return []byte{
		0x03, 0xff, 0x00, 14, // Custom TLV, length includes header
		uint8(pen >> 24), uint8(pen >> 16), uint8(pen >> 8), uint8(pen),
		uint8(subtype >> 24), uint8(subtype >> 16), uint8(subtype >> 8), uint8(subtype),
		0x00, 0x01,
	}
}

// ProcessTagReport reinflates a tag report in place.
//
// LLRP lets a Reader drop any enabled optional field whose value
// matches the last one it sent, so a report line is only meaningful
// given everything reported before it. For each enabled field,
// a nil value is replaced with the last one seen, and a present value
// becomes the new last seen. Reports must be fed in arrival order.
func (d *BasicDevice) ProcessTagReport(tags []TagReportData) {
	for i := range tags {
		tag := &tags[i]
		if d.report.EnableROSpecID {
			carry(&tag.ROSpecID, d.last.ROSpecID)
		}
		if d.report.EnableSpecIndex {
			carry(&tag.SpecIndex, d.last.SpecIndex)
		}
		if d.report.EnableInventoryParamSpecID {
			carry(&tag.InventoryParameterSpecID, d.last.InventoryParameterSpecID)
		}
		if d.report.EnableAntennaID {
			carry(&tag.AntennaID, d.last.AntennaID)
		}
		if d.report.EnablePeakRSSI {
			carry(&tag.PeakRSSI, d.last.PeakRSSI)
		}
		if d.report.EnableChannelIndex {
			carry(&tag.ChannelIndex, d.last.ChannelIndex)
		}
		if d.report.EnableFirstSeenTimestamp {
			carry(&tag.FirstSeenUTC, d.last.FirstSeenUTC)
		}
		if d.report.EnableLastSeenTimestamp {
			carry(&tag.LastSeenUTC, d.last.LastSeenUTC)
		}
		if d.report.EnableTagSeenCount {
			carry(&tag.TagSeenCount, d.last.TagSeenCount)
		}
	}
}

// ProcessTagReport is a no-op for Impinj Readers,
// which send every enabled field in every report.
func (d *ImpinjDevice) ProcessTagReport(_ []TagReportData) {}

// carry fills a missing report field from the last value seen,
// or records a present one as the new last value.
func carry[T any](field **T, last *T) {
	if *field == nil {
		v := *last
		*field = &v
	} else {
		*last = **field
	}
}

// Transmit picks the RFTransmitter settings for the Behavior's
// power target, or fails when even the Reader's minimum exceeds it.
func (d *BasicDevice) Transmit(b Behavior) (*RFTransmitter, error) {
	idx, value := d.findPower(b.Power.Max)
	if value > b.Power.Max {
		return nil, errors.Wrapf(ErrUnsatisfiable,
			"target power %.2f dBm is below the Reader's minimum %.2f dBm",
			float64(b.Power.Max)/100, float64(value)/100)
	}

	// Hopping regions leave the channel plan to the Reader.
	if d.allowsHop {
		return &RFTransmitter{
			HopTableID:         uint16(d.freqInfo.FrequencyHopTables[0].HopTableID),
			TransmitPowerIndex: idx,
		}, nil
	}

	// Fixed-frequency regions need a channel the Behavior permits.
	for _, want := range b.Frequencies {
		for i, f := range d.freqInfo.FixedFrequencyTable.Frequencies {
			if want == f {
				return &RFTransmitter{
					ChannelIndex:       uint16(i + 1), // channel indices are 1-based
					TransmitPowerIndex: idx,
				}, nil
			}
		}
	}

	return nil, errors.Wrapf(ErrUnsatisfiable,
		"no permitted frequency supports %.2f dBm", float64(b.Power.Max)/100)
}

// findPower returns the index and value of the highest power level
// at or below target, or the lowest level when target is below them all;
// callers that must not exceed target should check the returned value.
func (d *BasicDevice) findPower(target MillibelMilliwatt) (index uint16, value MillibelMilliwatt) {
	i := sort.Search(len(d.powers), func(i int) bool {
		return d.powers[i].TransmitPowerValue > target
	})
	if i == 0 {
		return d.powers[0].Index, d.powers[0].TransmitPowerValue
	}

	e := d.powers[i-1]
	return e.Index, e.TransmitPowerValue
}

// bestMode picks the fastest RF mode whose spectral mask suits
// the number of nearby Readers (0 when unknown).
//
// A mode's mask class says how much of the band it leaves to others;
// dense-interrogator modes trade data rate for guardbands.
// When no mode exists at the wanted density, the mask is relaxed
// until one qualifies, so a non-empty table always yields a mode.
func (d *BasicDevice) bestMode(nReaders uint) UHFC1G2RFModeTableEntry {
	mask := d.maskFor(nReaders)

	for {
		best, found := 0, false
		var bestScore float64
		for i, m := range d.modes {
			if m.SpectralMask < mask {
				continue
			}
			if score := modeScore(m); !found || score < bestScore {
				best, bestScore, found = i, score, true
			}
		}
		if found {
			return d.modes[best]
		}

		if mask == SpectralMaskUnknown {
			panic("no RF modes")
		}
		mask--
	}
}

func (d *BasicDevice) maskFor(nReaders uint) SpectralMaskType {
	switch {
	case nReaders == 0:
		return SpectralMaskUnknown
	case nReaders == 1:
		return SpectralMaskSingleInterrogator
	case nReaders >= uint(d.nFreqs) || float64(nReaders)/float64(d.nFreqs) > 0.5:
		return SpectralMaskDenseInterrogator
	default:
		return SpectralMaskMultiInterrogator
	}
}

// modeScore estimates singulation time relative to the best C1G2
// allows; lower is faster. Tari and PIE ratio approximate the forward
// link, BDR the backscatter link, and the two weigh equally.
func modeScore(m UHFC1G2RFModeTableEntry) float64 {
	const bestRTcal, bestBDR = 15625000, 640000
	fwd := (float64(m.MinTariTime) * float64(1000+m.PIERatio)) / bestRTcal
	bwd := bestBDR / float64(m.BackscatterDataRate)
	return (fwd + bwd) / 2
}

func (d *BasicDevice) checkGPI(t *GPITrigger) error {
	if t == nil {
		return nil
	}
	if t.Port == 0 || t.Port > d.nGPIs {
		return errors.Wrapf(ErrUnsatisfiable,
			"GPI trigger port %d is not in [1, %d]", t.Port, d.nGPIs)
	}
	return nil
}

// singulation maps a scan depth onto a C1G2 session strategy.
//
// Fast scans use S0, which resets whenever a tag loses power,
// so every pass sees every tag. Normal scans use S1: its flag decays
// over seconds, spreading tags across query rounds. Deep scans use S2,
// which holds as long as the tag is powered, so a second pass can
// target the flip side of the flag and reach tags the first missed.
func (d *BasicDevice) singulation(scan ScanType, e Environment) *C1G2SingulationControl {
	var s *C1G2SingulationControl
	switch scan {
	case ScanFast:
		s = &C1G2SingulationControl{Session: 0, TagPopulation: 500, TagTransitTime: 500}
	case ScanDeep:
		s = &C1G2SingulationControl{Session: 2, TagPopulation: 3000, TagTransitTime: 10000}
	default:
		s = &C1G2SingulationControl{Session: 1, TagPopulation: 1000, TagTransitTime: 5000}
	}

	if e.PopulationSize != 0 {
		s.TagPopulation = e.PopulationSize
	}
	if e.Mobility != mobilityUnknown {
		s.TagTransitTime = Millisecs32(e.Mobility)
	}

	if d.stateAware {
		state := SessionStateA
		if scan == ScanDeep {
			state = SessionStateB
		}
		s.InvAwareAction = &C1G2TagInventoryStateAwareSingulationAction{
			SessionState: state,
			SLState:      SLStateDeasserted,
		}
	}
	return s
}

// NewROSpec builds an ROSpec realizing the Behavior in the Environment.
func (d *BasicDevice) NewROSpec(b Behavior, e Environment) (*ROSpec, error) {
	if err := d.checkGPI(b.GPITrigger); err != nil {
		return nil, err
	}

	transmit, err := d.Transmit(b)
	if err != nil {
		return nil, err
	}
	mode := d.bestMode(e.NumNearbyReaders)

	var aiSpecs []AISpec
	if b.ScanType == ScanDeep && d.stateAware && d.nSpecsPerRO >= 2 {
		aiSpecs = d.deepScanSpecs(transmit, mode, e)
	} else {
		aiSpecs = []AISpec{d.continuousSpec(transmit, mode, b.ScanType, e)}
	}

	return &ROSpec{
		ROSpecID:       1, // callers usually override; zero is illegal
		ROBoundarySpec: b.Boundary(),
		AISpecs:        aiSpecs,
	}, nil
}

// continuousSpec is a single AISpec over all antennas that runs until
// the ROSpec's own boundary stops it.
func (d *BasicDevice) continuousSpec(tx *RFTransmitter, mode UHFC1G2RFModeTableEntry, scan ScanType, e Environment) AISpec {
	inv := &C1G2InventoryCommand{
		TagInventoryStateAware: d.stateAware,
		RFControl: &C1G2RFControl{
			RFModeID: uint16(mode.ModeID),
			Tari:     uint16(mode.MinTariTime),
		},
		SingulationControl: d.singulation(scan, e),
	}

	if scan == ScanDeep {
		// Without state-aware controls, a filter whose mask matches no
		// tags but whose action selects the non-matches steers the
		// Reader into a Select (S2 B to A) plus an S2 state-A query,
		// the closest a state-unaware Reader gets to a deep scan.
		action := UnawareClearMSelectU
		inv.Filters = []C1G2Filter{{
			TruncateAction:      FilterActionDoNotTruncate,
			TagInventoryMask:    C1G2TagInventoryMask{MemoryBank: 1},
			UnawareFilterAction: &action,
		}}
	}

	return AISpec{
		AntennaIDs: []AntennaID{0},
		InventoryParameterSpecs: []InventoryParameterSpec{{
			InventoryParameterSpecID: 1,
			AirProtocolID:            AirProtoEPCGlobalClass1Gen2,
			AntennaConfigurations: []AntennaConfiguration{{
				RFTransmitter:        tx,
				C1G2InventoryCommand: inv,
			}},
		}},
	}
}

// deepScanSpecs alternates two state-aware S2 specs, A-side then
// B-side, each ending once no new tags show for half a second,
// so tags singulated by one pass are eligible again on the next.
func (d *BasicDevice) deepScanSpecs(tx *RFTransmitter, mode UHFC1G2RFModeTableEntry, e Environment) []AISpec {
	specs := make([]AISpec, 2)
	for i := range specs {
		state := SessionStateA
		if i == 1 {
			state = SessionStateB
		}

		sing := &C1G2SingulationControl{
			Session:        2,
			TagPopulation:  500,
			TagTransitTime: 500,
			InvAwareAction: &C1G2TagInventoryStateAwareSingulationAction{
				SessionState: state,
				SLState:      SLStateDeasserted,
			},
		}
		if e.PopulationSize != 0 {
			sing.TagPopulation = e.PopulationSize
		}
		if e.Mobility != mobilityUnknown {
			sing.TagTransitTime = Millisecs32(e.Mobility)
		}

		specs[i] = AISpec{
			AntennaIDs: []AntennaID{0},
			StopTrigger: AISpecStopTrigger{
				Trigger: AIStopTriggerTagObservation,
				TagObservationTrigger: &TagObservationTrigger{
					Trigger: TagObsTriggerNoNewAfterT,
					T:       500,
				},
			},
			InventoryParameterSpecs: []InventoryParameterSpec{{
				InventoryParameterSpecID: uint16(i + 1),
				AirProtocolID:            AirProtoEPCGlobalClass1Gen2,
				AntennaConfigurations: []AntennaConfiguration{{
					RFTransmitter: tx,
					C1G2InventoryCommand: &C1G2InventoryCommand{
						TagInventoryStateAware: true,
						RFControl: &C1G2RFControl{
							RFModeID: uint16(mode.ModeID),
							Tari:     uint16(mode.MinTariTime),
						},
						SingulationControl: sing,
					},
				}},
			}},
		}
	}
	return specs
}

// NewROSpec builds an ROSpec using Impinj search modes
// in place of standard state-aware filtering.
func (d *ImpinjDevice) NewROSpec(b Behavior, e Environment) (*ROSpec, error) {
	if err := d.checkGPI(b.GPITrigger); err != nil {
		return nil, err
	}

	transmit, err := d.Transmit(b)
	if err != nil {
		return nil, err
	}
	mode := d.bestMode(e.NumNearbyReaders)

	sing := d.singulation(b.ScanType, e)
	sing.InvAwareAction = nil // Impinj rejects aware singulation

	search := impjDualTarget
	switch b.ScanType {
	case ScanFast, ScanNormal:
		if b.ImpinjOptions != nil && b.ImpinjOptions.SuppressMonza {
			search = impjSingleTargetSuppressed
			sing.Session = 1 // TagFocus only works in S1
		}
	case ScanDeep:
		search = impjDualTargetWithReset
	}

	return &ROSpec{
		ROSpecID:       1,
		ROBoundarySpec: b.Boundary(),
		AISpecs: []AISpec{{
			AntennaIDs: []AntennaID{0},
			InventoryParameterSpecs: []InventoryParameterSpec{{
				InventoryParameterSpecID: 1,
				AirProtocolID:            AirProtoEPCGlobalClass1Gen2,
				AntennaConfigurations: []AntennaConfiguration{{
					RFTransmitter: transmit,
					C1G2InventoryCommand: &C1G2InventoryCommand{
						RFControl:          &C1G2RFControl{RFModeID: uint16(mode.ModeID)},
						SingulationControl: sing,
						Custom: []Custom{{
							VendorID: uint32(PENImpinj),
							Subtype:  ImpinjSearchMode,
							Data:     []byte{uint8(search >> 8), uint8(search)},
						}},
					},
				}},
			}},
		}},
	}, nil
}
