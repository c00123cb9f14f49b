// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"reflect"
	"sync"
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/sirupsen/logrus"
)

// Slice names one independently settable region of the store.
type Slice string

const (
	SliceReadiness      Slice = "readiness"
	SliceCohortProgress Slice = "cohortProgress"
	SlicePortfolio      Slice = "portfolio"
	SliceMentorship     Slice = "mentorship"
	SliceGamification   Slice = "gamification"
	SliceSubscription   Slice = "subscription"
	SliceNextActions    Slice = "nextActions"
	SliceEvents         Slice = "events"
	SliceHabits         Slice = "habits"
	SliceTrackOverview  Slice = "trackOverview"
	SliceCommunityFeed  Slice = "communityFeed"
	SliceLeaderboard    Slice = "leaderboard"
	SliceAICoachNudge   Slice = "aiCoachNudge"
	SliceQuickStats     Slice = "quickStats"
)

// State is one denormalized snapshot of the student's dashboard.
// Slices are independent; nothing reconciles overlapping fields between them.
type State struct {
	Readiness      dashboard.ReadinessData       `json:"readiness"`
	CohortProgress dashboard.CohortProgress      `json:"cohortProgress"`
	Portfolio      dashboard.PortfolioMetrics    `json:"portfolio"`
	Mentorship     dashboard.MentorshipData      `json:"mentorship"`
	Gamification   dashboard.GamificationData    `json:"gamification"`
	Subscription   dashboard.SubscriptionData    `json:"subscription"`
	NextActions    []dashboard.ActionItem        `json:"nextActions"`
	Events         []dashboard.EventItem         `json:"events"`
	Habits         []dashboard.HabitStatus       `json:"habits"`
	TrackOverview  dashboard.TrackOverview       `json:"trackOverview"`
	CommunityFeed  []dashboard.CommunityActivity `json:"communityFeed"`
	Leaderboard    []dashboard.LeaderboardEntry  `json:"leaderboard"`
	AICoachNudge   *dashboard.AICoachNudge       `json:"aiCoachNudge"`
	QuickStats     dashboard.QuickStats          `json:"quickStats"`
	LastUpdated    time.Time                     `json:"lastUpdated"`
}

// Listener is notified after every effective mutation of a slice.
// Notifications arrive one at a time in mutation order.
type Listener func(slice Slice, snapshot *State)

type notification struct {
	changed   []Slice
	snapshot  *State
	listeners []Listener
}

// Store is the single writable dashboard snapshot. It is only mutated through
// its setters; each setter call is applied atomically under the store lock.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
	now       func() time.Time

	// queue holds notifications in mutation order; one goroutine at a time
	// drains it.
	queue    []notification
	draining bool
}

// New creates a store with every slice at its empty default.
func New() *Store {
	return &Store{
		state:     defaultState(),
		listeners: make(map[int]Listener),
		now:       time.Now,
	}
}

func defaultState() State {
	return State{
		Readiness: dashboard.ReadinessData{
			MaxScore:       dashboard.MaxReadinessScore,
			TrendDirection: dashboard.TrendStable,
		},
		TrackOverview: dashboard.TrackOverview{Milestones: []dashboard.Milestone{}},
		NextActions:   []dashboard.ActionItem{},
		Events:        []dashboard.EventItem{},
		Habits:        []dashboard.HabitStatus{},
		CommunityFeed: []dashboard.CommunityActivity{},
		Leaderboard:   []dashboard.LeaderboardEntry{},
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(&s.state)
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Reset restores every slice to its default, e.g. on logout.
func (s *Store) Reset() {
	s.mutate(func(st *State) []Slice {
		*st = defaultState()
		return []Slice{
			SliceReadiness, SliceCohortProgress, SlicePortfolio, SliceMentorship,
			SliceGamification, SliceSubscription, SliceNextActions, SliceEvents,
			SliceHabits, SliceTrackOverview, SliceCommunityFeed, SliceLeaderboard,
			SliceAICoachNudge, SliceQuickStats,
		}
	})
	logrus.Infof("dashboard store reset")
}

// mutate applies fn under the lock and stamps LastUpdated when fn reports
// any changed slice. Listeners run outside the lock. When another goroutine
// is already delivering, it also delivers this mutation, so mutate may return
// before its listeners have run.
func (s *Store) mutate(fn func(st *State) []Slice) {
	s.mu.Lock()
	changed := fn(&s.state)
	if len(changed) == 0 {
		s.mu.Unlock()
		return
	}
	s.state.LastUpdated = s.now()
	n := notification{changed: changed, snapshot: cloneState(&s.state)}
	for _, l := range s.listeners {
		n.listeners = append(n.listeners, l)
	}
	s.queue = append(s.queue, n)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	s.drain()
}

func (s *Store) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		n := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		for _, slice := range n.changed {
			for _, l := range n.listeners {
				l(slice, n.snapshot)
			}
		}
	}
}

// replace is the shared body of the wholesale setters.
func replace[T any](s *Store, slice Slice, field func(st *State) *T, value T) {
	s.mutate(func(st *State) []Slice {
		dst := field(st)
		if reflect.DeepEqual(*dst, value) {
			return nil
		}
		*dst = value
		return []Slice{slice}
	})
}

func (s *Store) SetReadiness(v dashboard.ReadinessData) {
	if v.MaxScore <= 0 {
		v.MaxScore = dashboard.MaxReadinessScore
	}
	v.Score = ClampScore(v.Score, 0, v.MaxScore)
	replace(s, SliceReadiness, func(st *State) *dashboard.ReadinessData { return &st.Readiness }, v)
}

func (s *Store) SetCohortProgress(v dashboard.CohortProgress) {
	replace(s, SliceCohortProgress, func(st *State) *dashboard.CohortProgress { return &st.CohortProgress }, v)
}

// SetPortfolio replaces the portfolio slice, deriving the percentage when the
// server omitted it.
func (s *Store) SetPortfolio(v dashboard.PortfolioMetrics) {
	if v.Percentage == 0 {
		v.Percentage = portfolioPercentage(v)
	}
	replace(s, SlicePortfolio, func(st *State) *dashboard.PortfolioMetrics { return &st.Portfolio }, v)
}

func (s *Store) SetMentorship(v dashboard.MentorshipData) {
	replace(s, SliceMentorship, func(st *State) *dashboard.MentorshipData { return &st.Mentorship }, v)
}

func (s *Store) SetGamification(v dashboard.GamificationData) {
	replace(s, SliceGamification, func(st *State) *dashboard.GamificationData { return &st.Gamification }, v)
}

func (s *Store) SetSubscription(v dashboard.SubscriptionData) {
	replace(s, SliceSubscription, func(st *State) *dashboard.SubscriptionData { return &st.Subscription }, v)
}

func (s *Store) SetNextActions(v []dashboard.ActionItem) {
	replace(s, SliceNextActions, func(st *State) *[]dashboard.ActionItem { return &st.NextActions }, cloneSlice(v))
}

func (s *Store) SetEvents(v []dashboard.EventItem) {
	replace(s, SliceEvents, func(st *State) *[]dashboard.EventItem { return &st.Events }, cloneSlice(v))
}

func (s *Store) SetHabits(v []dashboard.HabitStatus) {
	replace(s, SliceHabits, func(st *State) *[]dashboard.HabitStatus { return &st.Habits }, cloneSlice(v))
}

func (s *Store) SetTrackOverview(v dashboard.TrackOverview) {
	v.Milestones = cloneSlice(v.Milestones)
	replace(s, SliceTrackOverview, func(st *State) *dashboard.TrackOverview { return &st.TrackOverview }, v)
}

func (s *Store) SetCommunityFeed(v []dashboard.CommunityActivity) {
	replace(s, SliceCommunityFeed, func(st *State) *[]dashboard.CommunityActivity { return &st.CommunityFeed }, cloneSlice(v))
}

func (s *Store) SetLeaderboard(v []dashboard.LeaderboardEntry) {
	replace(s, SliceLeaderboard, func(st *State) *[]dashboard.LeaderboardEntry { return &st.Leaderboard }, cloneSlice(v))
}

func (s *Store) SetAICoachNudge(v *dashboard.AICoachNudge) {
	if v != nil {
		cp := *v
		v = &cp
	}
	replace(s, SliceAICoachNudge, func(st *State) **dashboard.AICoachNudge { return &st.AICoachNudge }, v)
}

// DismissNudge clears the coaching nudge.
func (s *Store) DismissNudge() {
	s.SetAICoachNudge(nil)
}

func (s *Store) SetQuickStats(v dashboard.QuickStats) {
	replace(s, SliceQuickStats, func(st *State) *dashboard.QuickStats { return &st.QuickStats }, v)
}

// UpdatePoints applies delta to gamification and quick stats points in
// lockstep. Neither counter goes below zero.
func (s *Store) UpdatePoints(delta int) {
	s.mutate(func(st *State) []Slice {
		st.Gamification.Points = ApplyCounterDelta(st.Gamification.Points, delta)
		st.QuickStats.Points = ApplyCounterDelta(st.QuickStats.Points, delta)
		return []Slice{SliceGamification, SliceQuickStats}
	})
}

// UpdateStreak applies delta to gamification and quick stats streaks in
// lockstep. Neither counter goes below zero.
func (s *Store) UpdateStreak(delta int) {
	s.mutate(func(st *State) []Slice {
		st.Gamification.Streak = ApplyCounterDelta(st.Gamification.Streak, delta)
		st.QuickStats.Streak = ApplyCounterDelta(st.QuickStats.Streak, delta)
		return []Slice{SliceGamification, SliceQuickStats}
	})
}

// UpdateReadiness applies delta to the readiness score and the quick stats
// readiness in lockstep, clamping both to [0, 100].
func (s *Store) UpdateReadiness(delta int) {
	s.mutate(func(st *State) []Slice {
		st.Readiness.Score = ApplyScoreDelta(st.Readiness.Score, delta, 0, dashboard.MaxReadinessScore)
		st.Readiness.Trend = delta
		st.Readiness.TrendDirection = TrendFromDelta(delta)
		st.QuickStats.Readiness = ApplyScoreDelta(st.QuickStats.Readiness, delta, 0, dashboard.MaxReadinessScore)
		return []Slice{SliceReadiness, SliceQuickStats}
	})
}

// SetMissionsInReview overwrites the quick stats count of missions awaiting review.
func (s *Store) SetMissionsInReview(n int) {
	if n < 0 {
		n = 0
	}
	s.mutate(func(st *State) []Slice {
		if st.QuickStats.MissionsInReview == n {
			return nil
		}
		st.QuickStats.MissionsInReview = n
		return []Slice{SliceQuickStats}
	})
}

// PatchHabit replaces the habit with the same ID, appending it when absent.
func (s *Store) PatchHabit(h dashboard.HabitStatus) {
	s.mutate(func(st *State) []Slice {
		for i := range st.Habits {
			if st.Habits[i].ID == h.ID {
				if st.Habits[i] == h {
					return nil
				}
				st.Habits[i] = h
				return []Slice{SliceHabits}
			}
		}
		st.Habits = append(st.Habits, h)
		return []Slice{SliceHabits}
	})
}

// LogHabit marks a habit as logged today. Unknown habit IDs are added.
func (s *Store) LogHabit(habitID string, completed bool) {
	s.mutate(func(st *State) []Slice {
		for i := range st.Habits {
			if st.Habits[i].ID == habitID {
				st.Habits[i] = ApplyHabitLog(st.Habits[i], completed)
				return []Slice{SliceHabits}
			}
		}
		st.Habits = append(st.Habits, ApplyHabitLog(dashboard.HabitStatus{ID: habitID, Type: habitID}, completed))
		return []Slice{SliceHabits}
	})
}

// PatchEvent replaces the event with the same ID, appending it when absent.
func (s *Store) PatchEvent(e dashboard.EventItem) {
	s.mutate(func(st *State) []Slice {
		for i := range st.Events {
			if st.Events[i].ID == e.ID {
				if reflect.DeepEqual(st.Events[i], e) {
					return nil
				}
				st.Events[i] = e
				return []Slice{SliceEvents}
			}
		}
		st.Events = append(st.Events, e)
		return []Slice{SliceEvents}
	})
}

// SetEventRSVP records an RSVP state on a known event. Unknown IDs are ignored.
func (s *Store) SetEventRSVP(eventID, status string) {
	s.mutate(func(st *State) []Slice {
		for i := range st.Events {
			if st.Events[i].ID == eventID {
				if st.Events[i].RSVPStatus == status {
					return nil
				}
				st.Events[i].RSVPStatus = status
				return []Slice{SliceEvents}
			}
		}
		logrus.Debugf("rsvp for unknown event %s ignored by store", eventID)
		return nil
	})
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneState(in *State) *State {
	out := *in
	out.NextActions = cloneSlice(in.NextActions)
	out.Events = cloneSlice(in.Events)
	out.Habits = cloneSlice(in.Habits)
	out.CommunityFeed = cloneSlice(in.CommunityFeed)
	out.Leaderboard = cloneSlice(in.Leaderboard)
	out.TrackOverview.Milestones = cloneSlice(in.TrackOverview.Milestones)
	if in.AICoachNudge != nil {
		nudge := *in.AICoachNudge
		out.AICoachNudge = &nudge
	}
	return &out
}
