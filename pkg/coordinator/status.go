// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package coordinator

import (
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/section"
)

// RealtimeDisabled is reported when no realtime channel is configured.
const RealtimeDisabled = "disabled"

// Status is the aggregate view of the dashboard sync.
type Status struct {
	// IsLoading is true while any section has not resolved its first fetch.
	IsLoading bool `json:"isLoading"`
	// HasError is true when any section's last fetch did not return live
	// data. Fallback data counts as an error.
	HasError bool            `json:"hasError"`
	Realtime string          `json:"realtime"`
	Sections []SectionStatus `json:"sections"`
}

// SectionStatus is the sync state of one section.
type SectionStatus struct {
	ID          string         `json:"id"`
	Loading     bool           `json:"loading"`
	Fetching    bool           `json:"fetching"`
	Source      section.Source `json:"source,omitempty"`
	Error       string         `json:"error,omitempty"`
	LastFetched *time.Time     `json:"lastFetched,omitempty"`
}

type sectionState struct {
	loading  bool
	// inFlight counts overlapping fetches from RefetchAll and the refetch loop.
	inFlight int
	result   *section.Result
}

func (s *sectionState) status(id string) SectionStatus {
	st := SectionStatus{ID: id, Loading: s.loading, Fetching: s.inFlight > 0}
	if s.result != nil {
		st.Source = s.result.Source
		if s.result.Err != nil {
			st.Error = s.result.Err.Error()
		}
		fetched := s.result.FetchedAt
		st.LastFetched = &fetched
	}
	return st
}

func (s *sectionState) hasError() bool {
	return s.result != nil && !s.result.OK()
}
