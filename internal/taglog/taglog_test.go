//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package taglog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/llrp"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "tags.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, l.Close()) })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	antenna := llrp.AntennaID(3)
	rssi := llrp.PeakRSSI(-64)
	seen := llrp.TagSeenCount(7)
	lastSeen := llrp.LastSeenUTC(1_589_939_427_000_000)

	require.NoError(t, l.Record(ctx, "speedway", []llrp.TagReportData{
		{
			EPC96:        llrp.EPC96{EPC: []byte{0x30, 0x08, 0x33, 0xB2, 0xDD, 0xD9, 0x01, 0x40, 0, 0, 0, 0}},
			AntennaID:    &antenna,
			PeakRSSI:     &rssi,
			TagSeenCount: &seen,
			LastSeenUTC:  &lastSeen,
		},
		{
			EPC96: llrp.EPC96{EPC: []byte{0x30, 0x08, 0x33, 0xB2, 0xDD, 0xD9, 0x01, 0x40, 0, 0, 0, 1}},
		},
	}))

	n, err := l.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	entries, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first: the second tag had no LastSeenUTC, so it was
	// stamped with the wall clock, well after the fixed timestamp.
	newest := entries[0]
	assert.Equal(t, "300833b2ddd9014000000001", newest.EPC)
	assert.Equal(t, "speedway", newest.Reader)
	assert.Nil(t, newest.AntennaID)
	assert.Nil(t, newest.RSSI)
	assert.Nil(t, newest.SeenCount)

	older := entries[1]
	assert.Equal(t, "300833b2ddd9014000000000", older.EPC)
	require.NotNil(t, older.AntennaID)
	assert.Equal(t, uint16(3), *older.AntennaID)
	require.NotNil(t, older.RSSI)
	assert.Equal(t, -64.0, *older.RSSI)
	require.NotNil(t, older.SeenCount)
	assert.Equal(t, uint16(7), *older.SeenCount)
	assert.Equal(t, time.UnixMicro(1_589_939_427_000_000).UTC(), older.SeenAt)
}

func TestRecentLimit(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	for i := byte(0); i < 5; i++ {
		epc := make([]byte, 12)
		epc[11] = i
		require.NoError(t, l.Record(ctx, "r", []llrp.TagReportData{
			{EPC96: llrp.EPC96{EPC: epc}},
		}))
	}

	entries, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRecordEmptyReportIsNoop(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, "r", nil))
	n, err := l.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUniqueEPCs(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	dup := llrp.EPC96{EPC: []byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}}
	other := llrp.EPC96{EPC: []byte{2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}}
	require.NoError(t, l.Record(ctx, "r", []llrp.TagReportData{
		{EPC96: dup}, {EPC96: dup}, {EPC96: other},
	}))

	epcs, err := l.UniqueEPCs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"010000000000000000000000": 2,
		"020000000000000000000000": 1,
	}, epcs)
}

func TestCloseIsIdempotent(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "tags.db"))
	require.NoError(t, err)
	require.NoError(t, l.Close())
	assert.NoError(t, l.Close())
}
