//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrROSpecNotFound is returned for operations naming an unknown ROSpecID.
	ErrROSpecNotFound = errors.New("no such ROSpec")

	// ErrAccessSpecNotFound is returned for operations naming an unknown AccessSpecID.
	ErrAccessSpecNotFound = errors.New("no such AccessSpec")

	// ErrInvalidState is returned when a spec exists
	// but can't make the requested transition from its current state.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrDuplicateID is returned when adding a spec whose id is in use.
	ErrDuplicateID = errors.New("spec id already in use")
)

// SpecRegistry mirrors a Reader's ROSpec and AccessSpec state client-side.
//
// Methods apply the same transition rules the Reader enforces, so a caller
// that updates the registry only after a successful command (and feeds it
// ROSpecEvents for autonomous transitions) always sees the Reader's view.
// Failed transitions leave the registry untouched.
type SpecRegistry struct {
	mu      sync.RWMutex
	rospecs map[uint32]*ROSpec
	access  map[uint32]*AccessSpec
}

func NewSpecRegistry() *SpecRegistry {
	return &SpecRegistry{
		rospecs: map[uint32]*ROSpec{},
		access:  map[uint32]*AccessSpec{},
	}
}

// AddROSpec registers a new ROSpec.
// It must have a non-zero, unused id and arrive in the Disabled state.
func (r *SpecRegistry) AddROSpec(spec ROSpec) error {
	if spec.ROSpecID == 0 {
		return errors.WithMessage(ErrInvalidState, "ROSpecID 0 is reserved")
	}
	if spec.ROSpecCurrentState != ROSpecStateDisabled {
		return errors.WithMessagef(ErrInvalidState,
			"new ROSpecs must be Disabled, not %v", spec.ROSpecCurrentState)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rospecs[spec.ROSpecID]; ok {
		return errors.WithMessagef(ErrDuplicateID, "ROSpec %d", spec.ROSpecID)
	}
	r.rospecs[spec.ROSpecID] = &spec
	return nil
}

// EnableROSpec moves a Disabled ROSpec to Inactive. Id 0 enables
// every Disabled ROSpec; specs already enabled are left alone.
func (r *SpecRegistry) EnableROSpec(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == 0 {
		for _, s := range r.rospecs {
			if s.ROSpecCurrentState == ROSpecStateDisabled {
				s.ROSpecCurrentState = ROSpecStateInactive
			}
		}
		return nil
	}

	s, ok := r.rospecs[id]
	if !ok {
		return errors.WithMessagef(ErrROSpecNotFound, "ROSpec %d", id)
	}
	if s.ROSpecCurrentState != ROSpecStateDisabled {
		return errors.WithMessagef(ErrInvalidState,
			"cannot enable ROSpec %d in state %v", id, s.ROSpecCurrentState)
	}
	s.ROSpecCurrentState = ROSpecStateInactive
	return nil
}

// StartROSpec moves an Inactive ROSpec to Active.
// Unlike enable/disable/delete, start is never broadcast: id must be non-zero.
func (r *SpecRegistry) StartROSpec(id uint32) error {
	if id == 0 {
		return errors.WithMessage(ErrInvalidState, "cannot start ROSpec 0")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rospecs[id]
	if !ok {
		return errors.WithMessagef(ErrROSpecNotFound, "ROSpec %d", id)
	}
	if s.ROSpecCurrentState != ROSpecStateInactive {
		return errors.WithMessagef(ErrInvalidState,
			"cannot start ROSpec %d in state %v", id, s.ROSpecCurrentState)
	}
	s.ROSpecCurrentState = ROSpecStateActive
	return nil
}

// StopROSpec moves an Active ROSpec back to Inactive.
func (r *SpecRegistry) StopROSpec(id uint32) error {
	if id == 0 {
		return errors.WithMessage(ErrInvalidState, "cannot stop ROSpec 0")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rospecs[id]
	if !ok {
		return errors.WithMessagef(ErrROSpecNotFound, "ROSpec %d", id)
	}
	if s.ROSpecCurrentState != ROSpecStateActive {
		return errors.WithMessagef(ErrInvalidState,
			"cannot stop ROSpec %d in state %v", id, s.ROSpecCurrentState)
	}
	s.ROSpecCurrentState = ROSpecStateInactive
	return nil
}

// DisableROSpec returns an ROSpec to Disabled from any enabled state,
// stopping it first if Active. Id 0 disables all.
func (r *SpecRegistry) DisableROSpec(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == 0 {
		for _, s := range r.rospecs {
			s.ROSpecCurrentState = ROSpecStateDisabled
		}
		return nil
	}

	s, ok := r.rospecs[id]
	if !ok {
		return errors.WithMessagef(ErrROSpecNotFound, "ROSpec %d", id)
	}
	if s.ROSpecCurrentState == ROSpecStateDisabled {
		return errors.WithMessagef(ErrInvalidState, "ROSpec %d is already Disabled", id)
	}
	s.ROSpecCurrentState = ROSpecStateDisabled
	return nil
}

// DeleteROSpec removes an ROSpec in any state. Id 0 removes all.
func (r *SpecRegistry) DeleteROSpec(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == 0 {
		r.rospecs = map[uint32]*ROSpec{}
		return nil
	}

	if _, ok := r.rospecs[id]; !ok {
		return errors.WithMessagef(ErrROSpecNotFound, "ROSpec %d", id)
	}
	delete(r.rospecs, id)
	return nil
}

// ROSpec returns a copy of the identified ROSpec.
func (r *SpecRegistry) ROSpec(id uint32) (ROSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.rospecs[id]
	if !ok {
		return ROSpec{}, false
	}
	return *s, true
}

// ROSpecs returns copies of all registered ROSpecs, ordered by id.
func (r *SpecRegistry) ROSpecs() []ROSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]ROSpec, 0, len(r.rospecs))
	for _, s := range r.rospecs {
		specs = append(specs, *s)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ROSpecID < specs[j].ROSpecID })
	return specs
}

// ApplyROSpecEvent applies an autonomous transition reported by the Reader:
// start triggers firing, duration/GPI/tag-observation stops, and preemption.
// Events for unknown ROSpecs are ignored, since the Reader may report on
// specs this registry never tracked.
func (r *SpecRegistry) ApplyROSpecEvent(ev ROSpecEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rospecs[ev.ROSpecID]
	if ok {
		switch ev.EventType {
		case ROSpecStarted:
			if s.ROSpecCurrentState == ROSpecStateInactive {
				s.ROSpecCurrentState = ROSpecStateActive
			}
		case ROSpecEnded, ROSpecPreempted:
			if s.ROSpecCurrentState == ROSpecStateActive {
				s.ROSpecCurrentState = ROSpecStateInactive
			}
		}
	}

	if ev.EventType == ROSpecPreempted {
		if p, ok := r.rospecs[ev.PreemptingROSpecID]; ok &&
			p.ROSpecCurrentState == ROSpecStateInactive {
			p.ROSpecCurrentState = ROSpecStateActive
		}
	}
}

// antennaSet returns the union of an ROSpec's AISpec antenna ids.
// Antenna 0 means "all antennas" and is reported as (nil, true).
func antennaSet(s *ROSpec) (set map[AntennaID]struct{}, all bool) {
	set = map[AntennaID]struct{}{}
	for _, ai := range s.AISpecs {
		for _, a := range ai.AntennaIDs {
			if a == 0 {
				return nil, true
			}
			set[a] = struct{}{}
		}
	}
	return set, false
}

// ConflictingROSpecs reports pairs of Active ROSpecs whose antenna sets
// intersect. The Reader resolves such conflicts by priority and preemption;
// this registry only surfaces them. Each pair is ordered (low id, high id),
// and the result is sorted.
func (r *SpecRegistry) ConflictingROSpecs() [][2]uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type active struct {
		id  uint32
		set map[AntennaID]struct{}
		all bool
	}
	var actives []active
	for id, s := range r.rospecs {
		if s.ROSpecCurrentState != ROSpecStateActive {
			continue
		}
		set, all := antennaSet(s)
		actives = append(actives, active{id: id, set: set, all: all})
	}
	sort.Slice(actives, func(i, j int) bool { return actives[i].id < actives[j].id })

	var pairs [][2]uint32
	for i := 0; i < len(actives); i++ {
		for j := i + 1; j < len(actives); j++ {
			a, b := actives[i], actives[j]
			if a.all || b.all {
				pairs = append(pairs, [2]uint32{a.id, b.id})
				continue
			}
			for ant := range a.set {
				if _, ok := b.set[ant]; ok {
					pairs = append(pairs, [2]uint32{a.id, b.id})
					break
				}
			}
		}
	}
	return pairs
}

// AddAccessSpec registers a new AccessSpec.
// It must have a non-zero, unused id and arrive disabled.
func (r *SpecRegistry) AddAccessSpec(spec AccessSpec) error {
	if spec.AccessSpecID == 0 {
		return errors.WithMessage(ErrInvalidState, "AccessSpecID 0 is reserved")
	}
	if spec.IsActive {
		return errors.WithMessage(ErrInvalidState, "new AccessSpecs must be disabled")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.access[spec.AccessSpecID]; ok {
		return errors.WithMessagef(ErrDuplicateID, "AccessSpec %d", spec.AccessSpecID)
	}
	r.access[spec.AccessSpecID] = &spec
	return nil
}

// EnableAccessSpec activates an AccessSpec. Id 0 activates all.
func (r *SpecRegistry) EnableAccessSpec(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == 0 {
		for _, s := range r.access {
			s.IsActive = true
		}
		return nil
	}

	s, ok := r.access[id]
	if !ok {
		return errors.WithMessagef(ErrAccessSpecNotFound, "AccessSpec %d", id)
	}
	if s.IsActive {
		return errors.WithMessagef(ErrInvalidState, "AccessSpec %d is already active", id)
	}
	s.IsActive = true
	return nil
}

// DisableAccessSpec deactivates an AccessSpec. Id 0 deactivates all.
func (r *SpecRegistry) DisableAccessSpec(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == 0 {
		for _, s := range r.access {
			s.IsActive = false
		}
		return nil
	}

	s, ok := r.access[id]
	if !ok {
		return errors.WithMessagef(ErrAccessSpecNotFound, "AccessSpec %d", id)
	}
	if !s.IsActive {
		return errors.WithMessagef(ErrInvalidState, "AccessSpec %d is already disabled", id)
	}
	s.IsActive = false
	return nil
}

// DeleteAccessSpec removes an AccessSpec in any state. Id 0 removes all.
func (r *SpecRegistry) DeleteAccessSpec(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == 0 {
		r.access = map[uint32]*AccessSpec{}
		return nil
	}

	if _, ok := r.access[id]; !ok {
		return errors.WithMessagef(ErrAccessSpecNotFound, "AccessSpec %d", id)
	}
	delete(r.access, id)
	return nil
}

// AccessSpec returns a copy of the identified AccessSpec.
func (r *SpecRegistry) AccessSpec(id uint32) (AccessSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.access[id]
	if !ok {
		return AccessSpec{}, false
	}
	return *s, true
}

// AccessSpecs returns copies of all registered AccessSpecs, ordered by id.
func (r *SpecRegistry) AccessSpecs() []AccessSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]AccessSpec, 0, len(r.access))
	for _, s := range r.access {
		specs = append(specs, *s)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].AccessSpecID < specs[j].AccessSpecID
	})
	return specs
}
