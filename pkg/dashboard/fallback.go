// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package dashboard

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FallbackSet is the static dataset substituted for a section when its live
// fetch fails. Every section has an entry so the dashboard never renders empty.
type FallbackSet struct {
	Overview      OverviewResponse    `json:"overview"`
	Metrics       MetricsResponse     `json:"metrics"`
	NextActions   []ActionItem        `json:"nextActions"`
	Events        []EventItem         `json:"events"`
	TrackOverview TrackOverview       `json:"trackOverview"`
	CommunityFeed []CommunityActivity `json:"communityFeed"`
	Leaderboard   []LeaderboardEntry  `json:"leaderboard"`
	Habits        []HabitStatus       `json:"habits"`
	AICoachNudge  *AICoachNudge       `json:"aiCoachNudge"`
}

// DefaultFallbacks returns a fresh copy of the builtin fallback dataset.
func DefaultFallbacks() *FallbackSet {
	progress := 60
	return &FallbackSet{
		Overview: OverviewResponse{
			Readiness: ReadinessData{
				Score:          68,
				MaxScore:       MaxReadinessScore,
				Trend:          4,
				TrendDirection: TrendUp,
				CountdownDays:  21,
				CountdownLabel: "days to cohort graduation",
			},
			CohortProgress: CohortProgress{
				Percentage:       45,
				CurrentModule:    "Network Defense Fundamentals",
				TotalModules:     12,
				CompletedModules: 5,
				EstimatedTime:    "6 weeks",
			},
			QuickStats: QuickStats{
				Points:           1250,
				Streak:           7,
				Badges:           5,
				Readiness:        68,
				MissionsInReview: 2,
			},
		},
		Metrics: MetricsResponse{
			Portfolio: PortfolioMetrics{
				Total:      8,
				Approved:   5,
				Pending:    2,
				Rejected:   1,
				Percentage: 62.5,
			},
			Mentorship: MentorshipData{
				NextSessionDate: "TBD",
				NextSessionTime: "TBD",
				MentorName:      "Your mentor",
				SessionType:     "1:1 review",
				Status:          SessionPending,
			},
			Gamification: GamificationData{
				Points: 1250,
				Streak: 7,
				Badges: 5,
				Rank:   "Defender",
				Level:  "Intermediate",
			},
			Subscription: SubscriptionData{
				Tier:   "starter",
				Status: "active",
			},
		},
		NextActions: []ActionItem{
			{
				ID:          "fallback-mission",
				Title:       "Continue your current mission",
				Description: "Pick up where you left off",
				Type:        "mission",
				Urgency:     UrgencyHigh,
				Progress:    &progress,
				Href:        "/dashboard/student/missions",
			},
			{
				ID:          "fallback-reflect",
				Title:       "Write today's reflection",
				Description: "Keep your reflection streak alive",
				Type:        "reflection",
				Urgency:     UrgencyMedium,
				Href:        "/dashboard/student/coaching",
			},
		},
		Events:        []EventItem{},
		TrackOverview: TrackOverview{TrackName: "Cyber Defense", TrackKey: "defender", Milestones: []Milestone{}},
		CommunityFeed: []CommunityActivity{},
		Leaderboard:   []LeaderboardEntry{},
		Habits: []HabitStatus{
			{ID: HabitLearn, Type: HabitLearn},
			{ID: HabitPractice, Type: HabitPractice},
			{ID: HabitReflect, Type: HabitReflect},
		},
		AICoachNudge: &AICoachNudge{
			ID:          "fallback-nudge",
			Message:     "Small steps every day compound. Log one habit now.",
			ActionLabel: "Log habit",
			ActionHref:  "/dashboard/student/coaching",
		},
	}
}

// LoadFallbacks reads a YAML or JSON override file and overlays it on the
// builtin dataset. Sections missing from the file keep their builtin values.
func LoadFallbacks(path string) (*FallbackSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback file %s: %w", path, err)
	}

	// yaml.v3 is a superset of JSON, decode generically then re-encode so the
	// json tags on the model types drive the field mapping.
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse fallback file %s: %w", path, err)
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode fallback file %s: %w", path, err)
	}

	set := DefaultFallbacks()
	if err := json.Unmarshal(encoded, set); err != nil {
		return nil, fmt.Errorf("failed to decode fallback file %s: %w", path, err)
	}

	return set, nil
}
