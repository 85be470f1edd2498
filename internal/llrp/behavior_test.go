//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTypeText(t *testing.T) {
	for scan, want := range map[ScanType]string{
		ScanFast:   `"Fast"`,
		ScanNormal: `"Normal"`,
		ScanDeep:   `"Deep"`,
	} {
		data, err := json.Marshal(scan)
		require.NoError(t, err)
		assert.Equal(t, want, string(data))

		var got ScanType
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, scan, got)
	}

	_, err := ScanType(42).MarshalText()
	assert.Error(t, err)

	var s ScanType
	assert.Error(t, s.UnmarshalText([]byte("Shallow")))
}

func TestBehaviorStartTrigger(t *testing.T) {
	tests := []struct {
		name     string
		behavior Behavior
		want     ROSpecStartTriggerType
	}{
		{"untimed starts on enable", Behavior{}, ROStartTriggerImmediate},
		{"timed waits for explicit start", Behavior{Duration: 1000}, ROStartTriggerNone},
		{"GPI gates the start", Behavior{GPITrigger: &GPITrigger{Port: 1, Event: true}}, ROStartTriggerGPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.behavior.StartTrigger()
			assert.Equal(t, tt.want, got.Trigger)

			if tt.want == ROStartTriggerGPI {
				require.NotNil(t, got.GPITrigger)
				assert.Equal(t, uint16(1), got.GPITrigger.Port)
				assert.True(t, got.GPITrigger.Event)
			} else {
				assert.Nil(t, got.GPITrigger)
			}
		})
	}
}

func TestBehaviorBoundary(t *testing.T) {
	b := Behavior{Duration: 2500}
	boundary := b.Boundary()

	assert.Equal(t, ROStartTriggerNone, boundary.StartTrigger.Trigger)
	assert.Equal(t, ROStopTriggerDuration, boundary.StopTrigger.Trigger)
	assert.Equal(t, Millisecs32(2500), boundary.StopTrigger.DurationTriggerValue)

	boundary = Behavior{}.Boundary()
	assert.Equal(t, ROStartTriggerImmediate, boundary.StartTrigger.Trigger)
	assert.Equal(t, ROStopTriggerNone, boundary.StopTrigger.Trigger)
}
