//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	stdjson "encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/llrp"
)

func testMonitor(t *testing.T) (*Monitor, *llrp.SpecRegistry) {
	t.Helper()
	reg := llrp.NewSpecRegistry()
	return New(llrp.NewReaderGroup(), reg, WithRecentTags(3)), reg
}

func get(t *testing.T, m *Monitor, path string, into interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	m.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "GET %s: %s", path, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, stdjson.Unmarshal(rec.Body.Bytes(), into))
}

func TestMonitorReadersEmpty(t *testing.T) {
	m, _ := testMonitor(t)

	var got struct{ Readers []string }
	get(t, m, "/api/v1/readers", &got)
	assert.Empty(t, got.Readers)
}

func TestMonitorBehavior(t *testing.T) {
	m, _ := testMonitor(t)

	var got llrp.Behavior
	get(t, m, "/api/v1/behavior", &got)
	assert.Equal(t, llrp.ScanNormal, got.ScanType)
	assert.Equal(t, llrp.MillibelMilliwatt(3000), got.Power.Max)
}

func TestMonitorROSpecs(t *testing.T) {
	m, reg := testMonitor(t)
	require.NoError(t, reg.AddROSpec(llrp.ROSpec{
		ROSpecID:           1,
		ROSpecCurrentState: llrp.ROSpecStateDisabled,
	}))
	require.NoError(t, reg.EnableROSpec(1))

	var got struct {
		ROSpecs []struct {
			ROSpecID uint32 `json:"roSpecID"`
			State    string `json:"state"`
		} `json:"roSpecs"`
	}
	get(t, m, "/api/v1/rospecs", &got)
	require.Len(t, got.ROSpecs, 1)
	assert.Equal(t, uint32(1), got.ROSpecs[0].ROSpecID)
	assert.Equal(t, "Inactive", got.ROSpecs[0].State)
}

func TestMonitorAccessSpecs(t *testing.T) {
	m, reg := testMonitor(t)
	require.NoError(t, reg.AddAccessSpec(llrp.AccessSpec{
		AccessSpecID: 2,
		ROSpecID:     1,
		AccessCommand: llrp.AccessCommand{
			OpSpecs: []llrp.OpSpec{llrp.C1G2Read{OpSpecID: 1, WordCount: 4}},
		},
	}))
	require.NoError(t, reg.EnableAccessSpec(2))

	var got struct {
		AccessSpecs []struct {
			AccessSpecID uint32 `json:"accessSpecID"`
			State        string `json:"state"`
			OpCount      int    `json:"opCount"`
		} `json:"accessSpecs"`
	}
	get(t, m, "/api/v1/accessspecs", &got)
	require.Len(t, got.AccessSpecs, 1)
	assert.Equal(t, uint32(2), got.AccessSpecs[0].AccessSpecID)
	assert.Equal(t, "Active", got.AccessSpecs[0].State)
	assert.Equal(t, 1, got.AccessSpecs[0].OpCount)
}

func TestMonitorTagsRing(t *testing.T) {
	m, _ := testMonitor(t)

	antenna := llrp.AntennaID(2)
	rssi := llrp.PeakRSSI(-61)
	report := func(epc byte) llrp.TagReportData {
		return llrp.TagReportData{
			EPC96:     llrp.EPC96{EPC: []byte{epc, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
			AntennaID: &antenna,
			PeakRSSI:  &rssi,
		}
	}

	// Five observations through a ring of three: only the newest survive.
	m.ProcessTagReport([]llrp.TagReportData{report(1), report(2), report(3)})
	m.ProcessTagReport([]llrp.TagReportData{report(4), report(5)})

	var got struct {
		Total uint64           `json:"total"`
		Tags  []TagObservation `json:"tags"`
	}
	get(t, m, "/api/v1/tags", &got)

	assert.Equal(t, uint64(5), got.Total)
	require.Len(t, got.Tags, 3)
	assert.Equal(t, "030000000000000000000000", got.Tags[0].EPC)
	assert.Equal(t, "050000000000000000000000", got.Tags[2].EPC)

	require.NotNil(t, got.Tags[0].AntennaID)
	assert.Equal(t, uint16(2), *got.Tags[0].AntennaID)
	require.NotNil(t, got.Tags[0].RSSI)
	assert.Equal(t, -61.0, *got.Tags[0].RSSI)
	assert.Nil(t, got.Tags[0].SeenCount)
}

func TestMonitorIndexListsRoutes(t *testing.T) {
	m, _ := testMonitor(t)

	var got struct {
		Routes []string `json:"routes"`
	}
	get(t, m, "/", &got)
	assert.Contains(t, got.Routes, "/api/v1/tags")
}
