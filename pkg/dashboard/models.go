// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package dashboard

import (
	"time"
)

// Trend directions reported alongside the readiness score.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Urgency levels shared by next actions and events.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Mentorship session statuses.
const (
	SessionScheduled = "scheduled"
	SessionPending   = "pending"
	SessionCompleted = "completed"
)

// Habit categories tracked on the dashboard.
const (
	HabitLearn    = "learn"
	HabitPractice = "practice"
	HabitReflect  = "reflect"
)

// RSVP states for events that require one.
const (
	RSVPGoing    = "going"
	RSVPMaybe    = "maybe"
	RSVPDeclined = "declined"
)

// MaxReadinessScore is the upper bound of the readiness score.
const MaxReadinessScore = 100

// ReadinessData is the student's overall readiness score and its trend.
type ReadinessData struct {
	Score          int    `json:"score"`
	MaxScore       int    `json:"maxScore"`
	Trend          int    `json:"trend"`
	TrendDirection string `json:"trendDirection"`
	CountdownDays  int    `json:"countdownDays"`
	CountdownLabel string `json:"countdownLabel"`
}

// CohortProgress describes how far the student is through the current cohort.
type CohortProgress struct {
	Percentage       float64    `json:"percentage"`
	CurrentModule    string     `json:"currentModule"`
	TotalModules     int        `json:"totalModules"`
	CompletedModules int        `json:"completedModules"`
	EstimatedTime    string     `json:"estimatedTimeRemaining"`
	GraduationDate   *time.Time `json:"graduationDate,omitempty"`
}

// PortfolioMetrics counts portfolio items by review state.
type PortfolioMetrics struct {
	Total      int     `json:"total"`
	Approved   int     `json:"approved"`
	Pending    int     `json:"pending"`
	Rejected   int     `json:"rejected"`
	Percentage float64 `json:"percentage"`
}

// MentorshipData holds the next mentorship session.
type MentorshipData struct {
	NextSessionDate string `json:"nextSessionDate"`
	NextSessionTime string `json:"nextSessionTime"`
	MentorName      string `json:"mentorName"`
	MentorAvatar    string `json:"mentorAvatar,omitempty"`
	SessionType     string `json:"sessionType"`
	Status          string `json:"status"`
}

// GamificationData is the gamification view of points, streak and rank.
type GamificationData struct {
	Points int    `json:"points"`
	Streak int    `json:"streak"`
	Badges int    `json:"badges"`
	Rank   string `json:"rank"`
	Level  string `json:"level"`
}

// SubscriptionData describes the student's plan.
type SubscriptionData struct {
	Tier         string     `json:"tier"`
	Status       string     `json:"status"`
	DaysLeft     *int       `json:"daysLeft,omitempty"`
	NextBilling  *time.Time `json:"nextBillingDate,omitempty"`
	UpgradeAvail bool       `json:"upgradeAvailable"`
}

// ActionItem is one card in the prioritized next-actions list.
type ActionItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Urgency     string     `json:"urgency"`
	Progress    *int       `json:"progress,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Href        string     `json:"href"`
}

// EventItem is a calendar entry shown on the dashboard.
type EventItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Date         time.Time `json:"date"`
	Urgency      string    `json:"urgency"`
	RSVPRequired bool      `json:"rsvpRequired"`
	RSVPStatus   string    `json:"rsvpStatus,omitempty"`
}

// HabitStatus is the daily state of one habit category.
type HabitStatus struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Completed   bool   `json:"completed"`
	Streak      int    `json:"streak"`
	TodayLogged bool   `json:"todayLogged"`
}

// Milestone is one step of a learning track.
type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TrackOverview summarizes the student's learning track.
type TrackOverview struct {
	TrackName       string      `json:"trackName"`
	TrackKey        string      `json:"trackKey"`
	Milestones      []Milestone `json:"milestones"`
	CompletedCount  int         `json:"completedMilestones"`
	TotalMilestones int         `json:"totalMilestones"`
}

// CommunityActivity is a read-only entry of the community feed.
type CommunityActivity struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// LeaderboardEntry is one row of the cohort leaderboard.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	User          string `json:"user"`
	Points        int    `json:"points"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}

// AICoachNudge is a single, dismissible coaching suggestion.
type AICoachNudge struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	ActionLabel string `json:"actionLabel,omitempty"`
	ActionHref  string `json:"actionHref,omitempty"`
}

// QuickStats is the compact header view of points, streak and readiness.
// It overlaps GamificationData and ReadinessData and is updated separately.
type QuickStats struct {
	Points           int `json:"points"`
	Streak           int `json:"streak"`
	Badges           int `json:"badges"`
	Readiness        int `json:"readiness"`
	MissionsInReview int `json:"missionsInReview"`
}

// OverviewResponse is the body of GET /student/dashboard/overview.
type OverviewResponse struct {
	Readiness      ReadinessData  `json:"readiness"`
	CohortProgress CohortProgress `json:"cohortProgress"`
	QuickStats     QuickStats     `json:"quickStats"`
}

// MetricsResponse is the body of GET /student/dashboard/metrics.
type MetricsResponse struct {
	Portfolio    PortfolioMetrics `json:"portfolio"`
	Mentorship   MentorshipData   `json:"mentorship"`
	Gamification GamificationData `json:"gamification"`
	Subscription SubscriptionData `json:"subscription"`
}
