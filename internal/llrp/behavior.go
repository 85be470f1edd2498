//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"strings"

	"github.com/pkg/errors"
)

// Behavior describes how a group of Readers should run inventory,
// independent of any one Reader's capabilities.
// A device model maps it onto the closest ROSpec its hardware supports.
type Behavior struct {
	GPITrigger    *GPITrigger    `json:",omitempty"`
	ImpinjOptions *ImpinjOptions `json:",omitempty"`

	ScanType    ScanType
	Duration    Millisecs32 // 0 runs until explicitly stopped
	Power       PowerTarget
	Frequencies []Kilohertz `json:",omitempty"` // ignored in hopping regions
}

// GPITrigger gates an ROSpec on a GPI port reaching a state.
type GPITrigger struct {
	Port    uint16
	Event   bool
	Timeout Millisecs32 `json:",omitempty"`
}

// ImpinjOptions only take effect on Impinj Readers.
type ImpinjOptions struct {
	// SuppressMonza turns on Impinj's TagFocus feature for S1 scans:
	// Monza tags are told to hold their session flag,
	// so each is reported once on entering the field of view
	// instead of every time the flag decays.
	// Tags from other manufacturers are unaffected.
	SuppressMonza bool
}

// PowerTarget is the highest transmit power the Behavior permits, dBm x100.
// It says nothing about antenna gains or regulatory limits.
type PowerTarget struct {
	Max MillibelMilliwatt
}

type ScanType int

const (
	ScanFast = ScanType(iota)
	ScanNormal
	ScanDeep
)

var (
	ErrMissingCapInfo = errors.New("missing capability information")
	ErrUnsatisfiable  = errors.New("behavior cannot be satisfied")
)

func errMissingCapInfo(name string, path ...string) error {
	if len(path) > 0 {
		return errors.Wrapf(ErrMissingCapInfo, "no %s in %s", name, strings.Join(path, "."))
	}
	return errors.Wrap(ErrMissingCapInfo, name)
}

// TagMobility approximates how long tags stay within an antenna's
// field of view, expressed as a transit time in milliseconds.
type TagMobility uint16

const (
	mobilityUnknown = TagMobility(0)
	tagsAreStatic   = TagMobility(500)
	tagsMayMove     = TagMobility(5000)
	tagsAreInMotion = TagMobility(10000)
)

// Environment describes the deployment around a group of Readers.
// Zero values mean "unknown".
type Environment struct {
	NumNearbyReaders uint
	PopulationSize   uint16
	Mobility         TagMobility
}

// Boundary builds the ROBoundarySpec realizing the Behavior's
// start and stop conditions.
func (b Behavior) Boundary() ROBoundarySpec {
	return ROBoundarySpec{
		StartTrigger: b.StartTrigger(),
		StopTrigger:  b.stopTrigger(),
	}
}

// StartTrigger maps the Behavior to an ROSpec start trigger.
//
// A GPITrigger gates the start on that GPI event.
// Without one, an untimed Behavior starts as soon as it's enabled,
// while a timed one waits for an explicit StartROSpec.
func (b Behavior) StartTrigger() (t ROSpecStartTrigger) {
	switch {
	case b.GPITrigger != nil:
		t.Trigger = ROStartTriggerGPI
		gpi := GPITriggerValue(*b.GPITrigger)
		t.GPITrigger = &gpi
	case b.Duration == 0:
		t.Trigger = ROStartTriggerImmediate
	default:
		t.Trigger = ROStartTriggerNone
	}
	return
}

// stopTrigger bounds a timed Behavior by its Duration;
// untimed Behaviors run until a StopROSpec arrives.
func (b Behavior) stopTrigger() (t ROSpecStopTrigger) {
	if b.Duration > 0 {
		t.Trigger = ROStopTriggerDuration
		t.DurationTriggerValue = b.Duration
	}
	return
}

var scanTypeNames = map[ScanType]string{
	ScanFast:   "Fast",
	ScanNormal: "Normal",
	ScanDeep:   "Deep",
}

func (s ScanType) MarshalText() ([]byte, error) {
	name, ok := scanTypeNames[s]
	if !ok {
		return nil, errors.Errorf("unknown ScanType: %d", int(s))
	}
	return []byte(name), nil
}

func (s *ScanType) UnmarshalText(text []byte) error {
	for st, name := range scanTypeNames {
		if name == string(text) {
			*s = st
			return nil
		}
	}
	return errors.Errorf("unknown ScanType: %q", string(text))
}
