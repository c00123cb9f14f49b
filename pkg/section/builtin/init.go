// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"time"

	"github.com/AccelByte/extend-mission-control/pkg/dashboard"
	"github.com/AccelByte/extend-mission-control/pkg/section"
)

// Section types provided by this package.
const (
	TypeOverview      = "builtin.overview"
	TypeMetrics       = "builtin.metrics"
	TypeNextActions   = "builtin.next_actions"
	TypeEvents        = "builtin.events"
	TypeTrackOverview = "builtin.track_overview"
	TypeCommunityFeed = "builtin.community_feed"
	TypeLeaderboard   = "builtin.leaderboard"
	TypeHabits        = "builtin.habits"
	TypeAICoachNudge  = "builtin.ai_coach_nudge"
)

// init registers all built-in section types with the factory
func init() {
	section.RegisterSectionType(TypeOverview, NewOverviewSection)
	section.RegisterSectionType(TypeMetrics, NewMetricsSection)
	section.RegisterSectionType(TypeNextActions, NewNextActionsSection)
	section.RegisterSectionType(TypeEvents, NewEventsSection)
	section.RegisterSectionType(TypeTrackOverview, NewTrackOverviewSection)
	section.RegisterSectionType(TypeCommunityFeed, NewCommunityFeedSection)
	section.RegisterSectionType(TypeLeaderboard, NewLeaderboardSection)
	section.RegisterSectionType(TypeHabits, NewHabitsSection)
	section.RegisterSectionType(TypeAICoachNudge, NewAICoachNudgeSection)
}

// DefaultConfigs returns the nine dashboard sections with their default
// staleness windows, used when no manifest is present.
func DefaultConfigs() []section.SectionConfig {
	entry := func(id, typ string, stale time.Duration) section.SectionConfig {
		return section.SectionConfig{ID: id, Type: typ, Enabled: true, StaleTime: stale}
	}
	return []section.SectionConfig{
		entry(dashboard.SectionOverview, TypeOverview, 60*time.Second),
		entry(dashboard.SectionMetrics, TypeMetrics, 60*time.Second),
		entry(dashboard.SectionNextActions, TypeNextActions, 30*time.Second),
		entry(dashboard.SectionEvents, TypeEvents, 120*time.Second),
		entry(dashboard.SectionTrackOverview, TypeTrackOverview, 300*time.Second),
		entry(dashboard.SectionCommunityFeed, TypeCommunityFeed, 30*time.Second),
		entry(dashboard.SectionLeaderboard, TypeLeaderboard, 60*time.Second),
		entry(dashboard.SectionHabits, TypeHabits, 30*time.Second),
		entry(dashboard.SectionAICoachNudge, TypeAICoachNudge, 300*time.Second),
	}
}
