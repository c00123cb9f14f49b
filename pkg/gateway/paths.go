// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package gateway

import (
	"net/url"
)

// Hub API endpoints consumed by the dashboard.
const (
	PathOverview      = "/student/dashboard/overview"
	PathMetrics       = "/student/dashboard/metrics"
	PathNextActions   = "/student/dashboard/next-actions"
	PathEvents        = "/student/dashboard/events"
	PathTrackOverview = "/student/dashboard/track-overview"
	PathCommunityFeed = "/student/dashboard/community-feed"
	PathLeaderboard   = "/student/dashboard/leaderboard"
	PathHabits        = "/student/dashboard/habits"
	PathAICoachNudge  = "/student/dashboard/ai-coach-nudge"
)

// HabitLogPath is the endpoint logging one habit.
func HabitLogPath(habitID string) string {
	return "/student/coaching/habits/" + url.PathEscape(habitID) + "/log"
}

// EventRSVPPath is the endpoint recording an RSVP.
func EventRSVPPath(eventID string) string {
	return "/student/events/" + url.PathEscape(eventID) + "/rsvp"
}

// HabitLogRequest is the body of a habit log.
type HabitLogRequest struct {
	Completed bool `json:"completed"`
}

// RSVPRequest is the body of an event RSVP.
type RSVPRequest struct {
	Status string `json:"status"`
}
