// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"fmt"
	"net/http"

	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/gateway"
	"github.com/AccelByte/extend-mission-control/pkg/section"
	"github.com/AccelByte/extend-mission-control/pkg/store"
)

func fixedPath(path string) func(section.SectionConfig) string {
	return func(section.SectionConfig) string {
		return path
	}
}

// limitedPath appends the "limit" parameter when configured.
func limitedPath(path string) func(section.SectionConfig) string {
	return func(cfg section.SectionConfig) string {
		if limit := cfg.GetParameterInt("limit", 0); limit > 0 {
			return fmt.Sprintf("%s?limit=%d", path, limit)
		}
		return path
	}
}

// NewOverviewSection loads readiness, cohort progress and quick stats.
func NewOverviewSection(config section.SectionConfig) (section.Section, error) {
	return section.NewTyped(config, section.Spec[dashboard.OverviewResponse]{
		Path: fixedPath(gateway.PathOverview),
		Write: func(st *store.Store, v dashboard.OverviewResponse) {
			st.SetReadiness(v.Readiness)
			st.SetCohortProgress(v.CohortProgress)
			st.SetQuickStats(v.QuickStats)
		},
		Fallback: func(fb *dashboard.FallbackSet) dashboard.OverviewResponse { return fb.Overview },
	})
}

// NewMetricsSection loads portfolio, mentorship, gamification and subscription.
func NewMetricsSection(config section.SectionConfig) (section.Section, error) {
	return section.NewTyped(config, section.Spec[dashboard.MetricsResponse]{
		Path: fixedPath(gateway.PathMetrics),
		Write: func(st *store.Store, v dashboard.MetricsResponse) {
			st.SetPortfolio(v.Portfolio)
			st.SetMentorship(v.Mentorship)
			st.SetGamification(v.Gamification)
			st.SetSubscription(v.Subscription)
		},
		Fallback: func(fb *dashboard.FallbackSet) dashboard.MetricsResponse { return fb.Metrics },
	})
}

func NewNextActionsSection(config section.SectionConfig) (section.Section, error) {
	return section.NewTyped(config, section.Spec[[]dashboard.ActionItem]{
		Path:     fixedPath(gateway.PathNextActions),
		Write:    (*store.Store).SetNextActions,
		Fallback: func(fb *dashboard.FallbackSet) []dashboard.ActionItem { return fb.NextActions },
	})
}

func NewEventsSection(config section.SectionConfig) (section.Section, error) {
	return section.NewTyped(config, section.Spec[[]dashboard.EventItem]{
		Path:     fixedPath(gateway.PathEvents),
		Write:    (*store.Store).SetEvents,
		Fallback: func(fb *dashboard.FallbackSet) []dashboard.EventItem { return fb.Events },
	})
}

func NewTrackOverviewSection(config section.SectionConfig) (section.Section, error) {
	return section.NewTyped(config, section.Spec[dashboard.TrackOverview]{
		Path:     fixedPath(gateway.PathTrackOverview),
		Write:    (*store.Store).SetTrackOverview,
		Fallback: func(fb *dashboard.FallbackSet) dashboard.TrackOverview { return fb.TrackOverview },
	})
}

func NewCommunityFeedSection(config section.SectionConfig) (section.Section, error) {
	return section.NewTyped(config, section.Spec[[]dashboard.CommunityActivity]{
		Path:     limitedPath(gateway.PathCommunityFeed),
		Write:    (*store.Store).SetCommunityFeed,
		Fallback: func(fb *dashboard.FallbackSet) []dashboard.CommunityActivity { return fb.CommunityFeed },
	})
}

func NewLeaderboardSection(config section.SectionConfig) (section.Section, error) {
	return section.NewTyped(config, section.Spec[[]dashboard.LeaderboardEntry]{
		Path:     limitedPath(gateway.PathLeaderboard),
		Write:    (*store.Store).SetLeaderboard,
		Fallback: func(fb *dashboard.FallbackSet) []dashboard.LeaderboardEntry { return fb.Leaderboard },
	})
}

func NewHabitsSection(config section.SectionConfig) (section.Section, error) {
	return section.NewTyped(config, section.Spec[[]dashboard.HabitStatus]{
		Path:     fixedPath(gateway.PathHabits),
		Write:    (*store.Store).SetHabits,
		Fallback: func(fb *dashboard.FallbackSet) []dashboard.HabitStatus { return fb.Habits },
	})
}

// NewAICoachNudgeSection asks the hub for a coaching nudge. The endpoint is a
// POST because the hub generates the nudge on request.
func NewAICoachNudgeSection(config section.SectionConfig) (section.Section, error) {
	return section.NewTyped(config, section.Spec[*dashboard.AICoachNudge]{
		Method:   http.MethodPost,
		Path:     fixedPath(gateway.PathAICoachNudge),
		Write:    (*store.Store).SetAICoachNudge,
		Fallback: func(fb *dashboard.FallbackSet) *dashboard.AICoachNudge { return fb.AICoachNudge },
	})
}
