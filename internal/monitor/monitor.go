//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

// Package monitor exposes a read-only HTTP view of a running LLRP session:
// the readers in the group, the current behavior, the mirrored spec
// registries, and the most recently observed tags. It never sends
// commands; it only reports what the engine already knows.
package monitor

import (
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.impcloud.net/RSP-Inventory-Suite/llrp-client/internal/llrp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	apiBase       = "/api/v1"
	readersRoute  = apiBase + "/readers"
	behaviorRoute = apiBase + "/behavior"
	roSpecsRoute  = apiBase + "/rospecs"
	accessRoute   = apiBase + "/accessspecs"
	tagsRoute     = apiBase + "/tags"
	defaultRecent = 100
)

// Monitor accumulates tag observations and serves snapshots over HTTP.
type Monitor struct {
	log      zerolog.Logger
	group    *llrp.ReaderGroup
	registry *llrp.SpecRegistry

	mu     sync.RWMutex
	recent []TagObservation // ring buffer, next points at the oldest slot
	next   int
	filled bool
	total  uint64
}

// TagObservation is one decoded tag sighting, flattened for display.
type TagObservation struct {
	EPC       string    `json:"epc"`
	AntennaID *uint16   `json:"antennaID,omitempty"`
	RSSI      *float64  `json:"rssi,omitempty"`
	SeenCount *uint16   `json:"seenCount,omitempty"`
	Observed  time.Time `json:"observed"`
}

type Opt func(*Monitor)

func WithLogger(log zerolog.Logger) Opt {
	return func(m *Monitor) { m.log = log }
}

// WithRecentTags sets how many observations the tag ring retains.
func WithRecentTags(n int) Opt {
	return func(m *Monitor) {
		if n > 0 {
			m.recent = make([]TagObservation, n)
		}
	}
}

func New(group *llrp.ReaderGroup, registry *llrp.SpecRegistry, opts ...Opt) *Monitor {
	m := &Monitor{
		log:      zerolog.Nop(),
		group:    group,
		registry: registry,
		recent:   make([]TagObservation, defaultRecent),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ProcessTagReport records observations from a decoded tag report.
// It satisfies the same contract as llrp.ReportProcessor, so it can
// sit alongside other report consumers.
func (m *Monitor) ProcessTagReport(tags []llrp.TagReportData) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range tags {
		obs := TagObservation{
			EPC:      hex.EncodeToString(tags[i].EPC()),
			Observed: now,
		}
		if tags[i].AntennaID != nil {
			v := uint16(*tags[i].AntennaID)
			obs.AntennaID = &v
		}
		if rssi, ok := tags[i].ExtractRSSI(); ok {
			obs.RSSI = &rssi
		}
		if tags[i].TagSeenCount != nil {
			v := uint16(*tags[i].TagSeenCount)
			obs.SeenCount = &v
		}

		m.recent[m.next] = obs
		m.next++
		if m.next == len(m.recent) {
			m.next = 0
			m.filled = true
		}
		m.total++
	}
}

// Routes returns the observer's route table.
func (m *Monitor) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", m.index).Methods(http.MethodGet)
	r.HandleFunc(readersRoute, m.getReaders).Methods(http.MethodGet)
	r.HandleFunc(behaviorRoute, m.getBehavior).Methods(http.MethodGet)
	r.HandleFunc(roSpecsRoute, m.getROSpecs).Methods(http.MethodGet)
	r.HandleFunc(accessRoute, m.getAccessSpecs).Methods(http.MethodGet)
	r.HandleFunc(tagsRoute, m.getTags).Methods(http.MethodGet)
	return r
}

func (m *Monitor) index(w http.ResponseWriter, _ *http.Request) {
	m.respond(w, map[string][]string{
		"routes": {readersRoute, behaviorRoute, roSpecsRoute, accessRoute, tagsRoute},
	})
}

func (m *Monitor) getReaders(w http.ResponseWriter, _ *http.Request) {
	m.respond(w, struct {
		Readers []string `json:"readers"`
	}{Readers: m.group.Names()})
}

func (m *Monitor) getBehavior(w http.ResponseWriter, _ *http.Request) {
	m.respond(w, m.group.Behavior())
}

type roSpecSummary struct {
	ROSpecID uint32 `json:"roSpecID"`
	Priority uint8  `json:"priority"`
	State    string `json:"state"`
}

func (m *Monitor) getROSpecs(w http.ResponseWriter, _ *http.Request) {
	specs := m.registry.ROSpecs()
	out := make([]roSpecSummary, len(specs))
	for i, s := range specs {
		out[i] = roSpecSummary{
			ROSpecID: s.ROSpecID,
			Priority: s.Priority,
			State:    s.ROSpecCurrentState.String(),
		}
	}
	m.respond(w, struct {
		ROSpecs   []roSpecSummary `json:"roSpecs"`
		Conflicts [][2]uint32     `json:"conflicts,omitempty"`
	}{out, m.registry.ConflictingROSpecs()})
}

type accessSpecSummary struct {
	AccessSpecID uint32 `json:"accessSpecID"`
	ROSpecID     uint32 `json:"roSpecID"`
	State        string `json:"state"`
	OpCount      int    `json:"opCount"`
}

func (m *Monitor) getAccessSpecs(w http.ResponseWriter, _ *http.Request) {
	specs := m.registry.AccessSpecs()
	out := make([]accessSpecSummary, len(specs))
	for i, s := range specs {
		out[i] = accessSpecSummary{
			AccessSpecID: s.AccessSpecID,
			ROSpecID:     s.ROSpecID,
			State:        s.State().String(),
			OpCount:      len(s.AccessCommand.OpSpecs),
		}
	}
	m.respond(w, struct {
		AccessSpecs []accessSpecSummary `json:"accessSpecs"`
	}{out})
}

func (m *Monitor) getTags(w http.ResponseWriter, _ *http.Request) {
	m.mu.RLock()
	var tags []TagObservation
	if m.filled {
		tags = make([]TagObservation, 0, len(m.recent))
		tags = append(tags, m.recent[m.next:]...)
		tags = append(tags, m.recent[:m.next]...)
	} else {
		tags = append(tags, m.recent[:m.next]...)
	}
	total := m.total
	m.mu.RUnlock()

	m.respond(w, struct {
		Total uint64           `json:"total"`
		Tags  []TagObservation `json:"tags"`
	}{total, tags})
}

func (m *Monitor) respond(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		m.log.Error().Err(err).Msg("failed to encode response")
	}
}
