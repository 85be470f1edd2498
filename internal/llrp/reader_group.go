//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// groupROSpecID is the ROSpecID a ReaderGroup installs on its members.
// Each member holds exactly one group-managed ROSpec at a time.
const groupROSpecID = 1

// ROGenerator maps a Behavior and Environment onto an ROSpec,
// or reports that the device cannot satisfy them.
type ROGenerator interface {
	NewROSpec(b Behavior, e Environment) (*ROSpec, error)
}

// ReportProcessor consumes TagReportData produced by ROSpecs
// its implementation generated.
type ReportProcessor interface {
	ProcessTagReport(tags []TagReportData)
}

// TagReader generates ROSpecs and processes the reports they produce.
type TagReader interface {
	ROGenerator
	ReportProcessor
}

// A ReaderGroup drives a set of named TagReaders
// under one shared Behavior and Environment.
type ReaderGroup struct {
	mu       sync.RWMutex
	readers  map[string]TagReader
	env      Environment
	behavior Behavior
}

// NewReaderGroup returns a group with a continuous 30 dBm normal scan.
func NewReaderGroup() *ReaderGroup {
	return &ReaderGroup{
		readers: map[string]TagReader{},
		behavior: Behavior{
			ImpinjOptions: &ImpinjOptions{},
			ScanType:      ScanNormal,
			Power:         PowerTarget{Max: 3000},
		},
	}
}

// Behavior returns the group's current Behavior.
func (rg *ReaderGroup) Behavior() Behavior {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.behavior
}

// Names returns the group's reader names, sorted.
func (rg *ReaderGroup) Names() []string {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	names := make([]string, 0, len(rg.readers))
	for name := range rg.readers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProcessTagReport hands tags to the named reader for refinement.
// It returns false when the group has no reader by that name.
func (rg *ReaderGroup) ProcessTagReport(name string, tags []TagReportData) bool {
	rg.mu.RLock()
	tr, ok := rg.readers[name]
	rg.mu.RUnlock()

	if !ok {
		return false
	}
	tr.ProcessTagReport(tags)
	return true
}

// RemoveReader drops the named reader from the group, if present.
func (rg *ReaderGroup) RemoveReader(name string) {
	rg.mu.Lock()
	delete(rg.readers, name)
	rg.mu.Unlock()
}

// AddReader configures the named device and brings it into the group.
//
// The device is probed for capabilities and given a fresh config,
// then any ROSpecs it holds are replaced with one generated from
// the group's Behavior. A device that cannot satisfy the Behavior
// is rejected; note the rejection can happen after its old ROSpecs
// were already deleted.
func (rg *ReaderGroup) AddReader(cc SpecController, name string) error {
	r, err := NewReader(cc, name)
	if err != nil {
		return err
	}

	rg.mu.RLock()
	b, env := rg.behavior, rg.env
	rg.mu.RUnlock()

	s, err := r.NewROSpec(b, env)
	if err != nil {
		return err
	}

	s.ROSpecID = groupROSpecID
	if err := replaceRO(cc, name, s); err != nil {
		return err
	}

	rg.mu.Lock()
	rg.readers[name] = r
	rg.mu.Unlock()
	return nil
}

// replaceRO swaps whatever ROSpecs a device holds for the given one.
// A successful delete followed by a failed add leaves the device bare.
func replaceRO(cc SpecController, name string, spec *ROSpec) error {
	if err := cc.DeleteAllROSpecs(name); err != nil {
		return err
	}
	return cc.AddROSpec(name, spec)
}

// SetBehavior validates b against every reader in the group,
// then either adopts it or returns an error naming the reader
// that rejected it, leaving the old Behavior in place.
//
// Once adopted, each reader's ROSpec is replaced concurrently.
// Per-reader replacement failures are collected into a MultiErr,
// but don't undo the adoption: the group keeps the new Behavior.
func (rg *ReaderGroup) SetBehavior(cc SpecController, b Behavior) error {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	specs := make(map[string]*ROSpec, len(rg.readers))
	for name, r := range rg.readers {
		s, err := r.NewROSpec(b, rg.env)
		if err != nil {
			return errors.WithMessagef(err, "behavior rejected by %q", name)
		}
		s.ROSpecID = groupROSpecID
		specs[name] = s
	}

	rg.behavior = b

	errs := make(chan error, len(specs))
	var wg sync.WaitGroup
	for name, s := range specs {
		wg.Add(1)
		go func(name string, s *ROSpec) {
			defer wg.Done()
			if err := replaceRO(cc, name, s); err != nil {
				errs <- errors.WithMessagef(err, "replacing ROSpec on %q", name)
			}
		}(name, s)
	}
	wg.Wait()
	close(errs)

	var merr MultiErr
	for err := range errs {
		merr = append(merr, err)
	}
	if len(merr) == 0 {
		return nil
	}
	return errors.WithMessagef(merr,
		"failed to replace ROSpec on %d readers", len(merr))
}

// MultiErr joins errors from an operation applied across readers.
type MultiErr []error

func (me MultiErr) Error() string {
	strs := make([]string, len(me))
	for i, err := range me {
		strs[i] = err.Error()
	}
	return strings.Join(strs, "; ")
}

// StartAll enables the group ROSpec on every reader.
// Behaviors without a start trigger of their own also get
// an explicit StartROSpec.
func (rg *ReaderGroup) StartAll(cc SpecController) error {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	manual := rg.behavior.StartTrigger().Trigger == ROStartTriggerNone
	var errs MultiErr
	for name := range rg.readers {
		if err := cc.EnableROSpec(name, groupROSpecID); err != nil {
			errs = append(errs, err)
		}
		if manual {
			if err := cc.StartROSpec(name, groupROSpecID); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) != 0 {
		return errs
	}
	return nil
}

// StopAll stops and disables the group ROSpec on every reader.
func (rg *ReaderGroup) StopAll(cc SpecController) error {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	manual := rg.behavior.StartTrigger().Trigger == ROStartTriggerNone
	var errs MultiErr
	for name := range rg.readers {
		if manual {
			if err := cc.StopROSpec(name, groupROSpecID); err != nil {
				errs = append(errs, err)
			}
		}
		if err := cc.DisableROSpec(name, groupROSpecID); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) != 0 {
		return errs
	}
	return nil
}
