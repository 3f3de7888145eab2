package dto

import "time"

// DayBucketDTO is one day of the response-rate series. Buckets are delivered
// sorted ascending by date; charting clients rely on the order.
type DayBucketDTO struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"count"`
}

type QuestionAnalyticsDTO struct {
	QuestionID     uint           `json:"question_id"`
	Prompt         string         `json:"prompt"`
	Type           string         `json:"type"`
	AnsweredCount  int            `json:"answered_count"`
	SkippedCount   int            `json:"skipped_count"`
	CompletionRate float64        `json:"completion_rate"`
	Distribution   map[string]int `json:"distribution"`
}

type FormAnalyticsDTO struct {
	FormID             uint                   `json:"form_id"`
	FormTitle          string                 `json:"form_title"`
	TotalResponses     int                    `json:"total_responses"`
	FirstResponse      *time.Time             `json:"first_response,omitempty"`
	LastResponse       *time.Time             `json:"last_response,omitempty"`
	UniqueRespondents  int                    `json:"unique_respondents"`
	AvgResponsesPerDay float64                `json:"avg_responses_per_day"`
	ResponsesByDate    []DayBucketDTO         `json:"responses_by_date"`
	QuestionAnalytics  []QuestionAnalyticsDTO `json:"question_analytics"`
}
