// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package dashboard

// Section identifiers. Each section owns one gateway endpoint and one cache key.
const (
	SectionOverview      = "overview"
	SectionMetrics       = "metrics"
	SectionNextActions   = "next_actions"
	SectionEvents        = "events"
	SectionTrackOverview = "track_overview"
	SectionCommunityFeed = "community_feed"
	SectionLeaderboard   = "leaderboard"
	SectionHabits        = "habits"
	SectionAICoachNudge  = "ai_coach_nudge"
)

// cacheKeyPrefix scopes section cache keys.
const cacheKeyPrefix = "dashboard:"

// CacheKey returns the cache key owned by a section.
func CacheKey(sectionID string) string {
	return cacheKeyPrefix + sectionID
}

// AllSections lists the builtin sections in mount order.
func AllSections() []string {
	return []string{
		SectionOverview,
		SectionMetrics,
		SectionNextActions,
		SectionEvents,
		SectionTrackOverview,
		SectionCommunityFeed,
		SectionLeaderboard,
		SectionHabits,
		SectionAICoachNudge,
	}
}
