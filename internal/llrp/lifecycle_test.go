//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disabledROSpec(id uint32, antennas ...AntennaID) ROSpec {
	return ROSpec{
		ROSpecID:           id,
		ROSpecCurrentState: ROSpecStateDisabled,
		AISpecs:            []AISpec{{AntennaIDs: antennas}},
	}
}

func TestSpecRegistryROSpecLifecycle(t *testing.T) {
	reg := NewSpecRegistry()

	require.NoError(t, reg.AddROSpec(disabledROSpec(0x04D2, 1)))

	s, ok := reg.ROSpec(0x04D2)
	require.True(t, ok)
	assert.Equal(t, ROSpecStateDisabled, s.ROSpecCurrentState)

	// Disabled -> Inactive -> Active -> Inactive -> Disabled -> gone.
	require.NoError(t, reg.EnableROSpec(0x04D2))
	s, _ = reg.ROSpec(0x04D2)
	assert.Equal(t, ROSpecStateInactive, s.ROSpecCurrentState)

	require.NoError(t, reg.StartROSpec(0x04D2))
	s, _ = reg.ROSpec(0x04D2)
	assert.Equal(t, ROSpecStateActive, s.ROSpecCurrentState)

	require.NoError(t, reg.StopROSpec(0x04D2))
	s, _ = reg.ROSpec(0x04D2)
	assert.Equal(t, ROSpecStateInactive, s.ROSpecCurrentState)

	require.NoError(t, reg.DisableROSpec(0x04D2))
	s, _ = reg.ROSpec(0x04D2)
	assert.Equal(t, ROSpecStateDisabled, s.ROSpecCurrentState)

	require.NoError(t, reg.DeleteROSpec(0x04D2))
	_, ok = reg.ROSpec(0x04D2)
	assert.False(t, ok)
}

func TestSpecRegistryROSpecAddRules(t *testing.T) {
	reg := NewSpecRegistry()

	err := reg.AddROSpec(disabledROSpec(0))
	assert.True(t, errors.Is(err, ErrInvalidState), "got %v", err)

	active := disabledROSpec(7)
	active.ROSpecCurrentState = ROSpecStateActive
	err = reg.AddROSpec(active)
	assert.True(t, errors.Is(err, ErrInvalidState), "got %v", err)

	require.NoError(t, reg.AddROSpec(disabledROSpec(7)))
	err = reg.AddROSpec(disabledROSpec(7))
	assert.True(t, errors.Is(err, ErrDuplicateID), "got %v", err)
}

func TestSpecRegistryROSpecInvalidTransitions(t *testing.T) {
	reg := NewSpecRegistry()
	require.NoError(t, reg.AddROSpec(disabledROSpec(1)))

	for _, tc := range []struct {
		name string
		op   func() error
		want error
	}{
		{"enable missing", func() error { return reg.EnableROSpec(99) }, ErrROSpecNotFound},
		{"start missing", func() error { return reg.StartROSpec(99) }, ErrROSpecNotFound},
		{"stop missing", func() error { return reg.StopROSpec(99) }, ErrROSpecNotFound},
		{"disable missing", func() error { return reg.DisableROSpec(99) }, ErrROSpecNotFound},
		{"delete missing", func() error { return reg.DeleteROSpec(99) }, ErrROSpecNotFound},
		{"start disabled", func() error { return reg.StartROSpec(1) }, ErrInvalidState},
		{"stop disabled", func() error { return reg.StopROSpec(1) }, ErrInvalidState},
		{"disable disabled", func() error { return reg.DisableROSpec(1) }, ErrInvalidState},
		{"start zero", func() error { return reg.StartROSpec(0) }, ErrInvalidState},
		{"stop zero", func() error { return reg.StopROSpec(0) }, ErrInvalidState},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.op()
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	// Failed transitions must not disturb the spec.
	s, ok := reg.ROSpec(1)
	require.True(t, ok)
	assert.Equal(t, ROSpecStateDisabled, s.ROSpecCurrentState)
}

func TestSpecRegistryBroadcastID(t *testing.T) {
	reg := NewSpecRegistry()
	require.NoError(t, reg.AddROSpec(disabledROSpec(1)))
	require.NoError(t, reg.AddROSpec(disabledROSpec(2)))
	require.NoError(t, reg.AddROSpec(disabledROSpec(3)))

	require.NoError(t, reg.EnableROSpec(0))
	for _, s := range reg.ROSpecs() {
		assert.Equal(t, ROSpecStateInactive, s.ROSpecCurrentState, "ROSpec %d", s.ROSpecID)
	}

	// Enabling all is idempotent even with a running spec in the mix.
	require.NoError(t, reg.StartROSpec(2))
	require.NoError(t, reg.EnableROSpec(0))
	s, _ := reg.ROSpec(2)
	assert.Equal(t, ROSpecStateActive, s.ROSpecCurrentState)

	require.NoError(t, reg.DisableROSpec(0))
	for _, s := range reg.ROSpecs() {
		assert.Equal(t, ROSpecStateDisabled, s.ROSpecCurrentState, "ROSpec %d", s.ROSpecID)
	}

	require.NoError(t, reg.DeleteROSpec(0))
	assert.Empty(t, reg.ROSpecs())
}

func TestSpecRegistryApplyROSpecEvent(t *testing.T) {
	reg := NewSpecRegistry()
	require.NoError(t, reg.AddROSpec(disabledROSpec(1, 1)))
	require.NoError(t, reg.AddROSpec(disabledROSpec(2, 2)))
	require.NoError(t, reg.EnableROSpec(0))

	reg.ApplyROSpecEvent(ROSpecEvent{EventType: ROSpecStarted, ROSpecID: 1})
	s, _ := reg.ROSpec(1)
	assert.Equal(t, ROSpecStateActive, s.ROSpecCurrentState)

	reg.ApplyROSpecEvent(ROSpecEvent{EventType: ROSpecEnded, ROSpecID: 1})
	s, _ = reg.ROSpec(1)
	assert.Equal(t, ROSpecStateInactive, s.ROSpecCurrentState)

	// Preemption stops the victim and starts the preemptor.
	reg.ApplyROSpecEvent(ROSpecEvent{EventType: ROSpecStarted, ROSpecID: 1})
	reg.ApplyROSpecEvent(ROSpecEvent{
		EventType:          ROSpecPreempted,
		ROSpecID:           1,
		PreemptingROSpecID: 2,
	})
	s, _ = reg.ROSpec(1)
	assert.Equal(t, ROSpecStateInactive, s.ROSpecCurrentState)
	s, _ = reg.ROSpec(2)
	assert.Equal(t, ROSpecStateActive, s.ROSpecCurrentState)

	// Events about specs the registry never saw are ignored.
	reg.ApplyROSpecEvent(ROSpecEvent{EventType: ROSpecStarted, ROSpecID: 42})
	_, ok := reg.ROSpec(42)
	assert.False(t, ok)
}

func TestSpecRegistryConflictingROSpecs(t *testing.T) {
	reg := NewSpecRegistry()
	require.NoError(t, reg.AddROSpec(disabledROSpec(1, 1, 2)))
	require.NoError(t, reg.AddROSpec(disabledROSpec(2, 2, 3)))
	require.NoError(t, reg.AddROSpec(disabledROSpec(3, 4)))
	require.NoError(t, reg.AddROSpec(disabledROSpec(4, 0))) // all antennas
	require.NoError(t, reg.EnableROSpec(0))

	assert.Empty(t, reg.ConflictingROSpecs(), "inactive specs never conflict")

	require.NoError(t, reg.StartROSpec(1))
	require.NoError(t, reg.StartROSpec(2))
	assert.Equal(t, [][2]uint32{{1, 2}}, reg.ConflictingROSpecs())

	require.NoError(t, reg.StartROSpec(3))
	assert.Equal(t, [][2]uint32{{1, 2}}, reg.ConflictingROSpecs(),
		"antenna 4 overlaps nothing")

	require.NoError(t, reg.StartROSpec(4))
	assert.Equal(t, [][2]uint32{{1, 2}, {1, 4}, {2, 4}, {3, 4}},
		reg.ConflictingROSpecs(), "antenna 0 conflicts with every active spec")
}

func TestSpecRegistryAccessSpecLifecycle(t *testing.T) {
	reg := NewSpecRegistry()

	err := reg.AddAccessSpec(AccessSpec{AccessSpecID: 0})
	assert.True(t, errors.Is(err, ErrInvalidState), "got %v", err)

	err = reg.AddAccessSpec(AccessSpec{AccessSpecID: 5, IsActive: true})
	assert.True(t, errors.Is(err, ErrInvalidState), "got %v", err)

	require.NoError(t, reg.AddAccessSpec(AccessSpec{
		AccessSpecID:  5,
		AirProtocolID: AirProtoEPCGlobalClass1Gen2,
		ROSpecID:      1,
	}))
	err = reg.AddAccessSpec(AccessSpec{AccessSpecID: 5})
	assert.True(t, errors.Is(err, ErrDuplicateID), "got %v", err)

	require.NoError(t, reg.EnableAccessSpec(5))
	s, ok := reg.AccessSpec(5)
	require.True(t, ok)
	assert.True(t, s.IsActive)

	err = reg.EnableAccessSpec(5)
	assert.True(t, errors.Is(err, ErrInvalidState), "already active: got %v", err)

	require.NoError(t, reg.DisableAccessSpec(5))
	s, _ = reg.AccessSpec(5)
	assert.False(t, s.IsActive)

	err = reg.DisableAccessSpec(5)
	assert.True(t, errors.Is(err, ErrInvalidState), "already disabled: got %v", err)

	err = reg.EnableAccessSpec(99)
	assert.True(t, errors.Is(err, ErrAccessSpecNotFound), "got %v", err)

	require.NoError(t, reg.DeleteAccessSpec(5))
	_, ok = reg.AccessSpec(5)
	assert.False(t, ok)

	err = reg.DeleteAccessSpec(5)
	assert.True(t, errors.Is(err, ErrAccessSpecNotFound), "got %v", err)
}

func TestSpecRegistryAccessSpecBroadcast(t *testing.T) {
	reg := NewSpecRegistry()
	require.NoError(t, reg.AddAccessSpec(AccessSpec{AccessSpecID: 1}))
	require.NoError(t, reg.AddAccessSpec(AccessSpec{AccessSpecID: 2}))

	require.NoError(t, reg.EnableAccessSpec(0))
	for _, s := range reg.AccessSpecs() {
		assert.True(t, s.IsActive, "AccessSpec %d", s.AccessSpecID)
	}

	require.NoError(t, reg.DisableAccessSpec(0))
	for _, s := range reg.AccessSpecs() {
		assert.False(t, s.IsActive, "AccessSpec %d", s.AccessSpecID)
	}

	require.NoError(t, reg.DeleteAccessSpec(0))
	assert.Empty(t, reg.AccessSpecs())
}

func TestSpecRegistryOrdering(t *testing.T) {
	reg := NewSpecRegistry()
	for _, id := range []uint32{30, 10, 20} {
		require.NoError(t, reg.AddROSpec(disabledROSpec(id)))
		require.NoError(t, reg.AddAccessSpec(AccessSpec{AccessSpecID: id}))
	}

	var roIDs []uint32
	for _, s := range reg.ROSpecs() {
		roIDs = append(roIDs, s.ROSpecID)
	}
	assert.Equal(t, []uint32{10, 20, 30}, roIDs)

	var asIDs []uint32
	for _, s := range reg.AccessSpecs() {
		asIDs = append(asIDs, s.AccessSpecID)
	}
	assert.Equal(t, []uint32{10, 20, 30}, asIDs)
}
