package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/asrayg/betterforms/internal/model"
)

// ResponseWindowDays is how far back the response-rate series reaches.
const ResponseWindowDays = 30

// Summary holds form-level response statistics. Time fields are nil when the
// form has no responses at all.
type Summary struct {
	Total             int
	First             *time.Time
	Last              *time.Time
	UniqueRespondents int
	AvgPerDay         float64
}

// Summarize computes form-level statistics over the full response set.
// Unique respondents are distinct non-empty emails, compared case-sensitively
// with no normalization. Average per day divides the total by the number of
// whole-or-partial days since the first response, never less than one.
func Summarize(responses []model.Response, now time.Time) Summary {
	s := Summary{Total: len(responses)}
	if len(responses) == 0 {
		return s
	}

	emails := make(map[string]struct{})
	first := responses[0].CreatedAt
	last := responses[0].CreatedAt
	for _, r := range responses {
		if r.CreatedAt.Before(first) {
			first = r.CreatedAt
		}
		if r.CreatedAt.After(last) {
			last = r.CreatedAt
		}
		if email := r.Email(); email != "" {
			emails[email] = struct{}{}
		}
	}
	s.First = &first
	s.Last = &last
	s.UniqueRespondents = len(emails)

	days := math.Ceil(now.Sub(first).Hours() / 24)
	if days < 1 {
		days = 1
	}
	s.AvgPerDay = float64(s.Total) / days
	return s
}

// DayBucket is one calendar day of the response-rate series.
type DayBucket struct {
	Date  string // YYYY-MM-DD, UTC
	Count int
}

// BucketByDay groups responses from the trailing window by UTC calendar day.
// The returned buckets are sorted ascending by date; callers chart them as
// delivered.
func BucketByDay(responses []model.Response, now time.Time, windowDays int) []DayBucket {
	cutoff := now.AddDate(0, 0, -windowDays)
	counts := make(map[string]int)
	for _, r := range responses {
		if r.CreatedAt.Before(cutoff) {
			continue
		}
		day := r.CreatedAt.UTC().Format("2006-01-02")
		counts[day]++
	}

	buckets := make([]DayBucket, 0, len(counts))
	for day, n := range counts {
		buckets = append(buckets, DayBucket{Date: day, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

// QuestionStats is the per-question aggregation result.
type QuestionStats struct {
	AnsweredCount  int
	SkippedCount   int
	CompletionRate float64
	Distribution   map[string]int
}

// QuestionDistribution aggregates one question's answers. Choice-like kinds
// build a value histogram: multiple-choice and linear-scale answers count
// once under their exact text, checkbox answers are split on commas and every
// trimmed non-empty piece counts separately. Other kinds report only
// answered/skipped/completion rate. Stored values are trusted, not validated
// against the question's configured options or bounds.
func QuestionDistribution(question model.Question, answers []model.Answer, totalResponses int) (QuestionStats, error) {
	stats := QuestionStats{
		AnsweredCount: len(answers),
		SkippedCount:  totalResponses - len(answers),
		Distribution:  make(map[string]int),
	}
	if totalResponses > 0 {
		stats.CompletionRate = float64(stats.AnsweredCount) / float64(totalResponses) * 100
	}

	counts, err := question.Type.CountsDistribution()
	if err != nil {
		return QuestionStats{}, fmt.Errorf("question %d: %w", question.ID, err)
	}
	if !counts {
		return stats, nil
	}

	for _, a := range answers {
		text := a.Text()
		if text == "" {
			continue
		}
		if question.Type == model.TypeCheckbox {
			for _, piece := range strings.Split(text, ",") {
				piece = strings.TrimSpace(piece)
				if piece != "" {
					stats.Distribution[piece]++
				}
			}
			continue
		}
		stats.Distribution[text]++
	}
	return stats, nil
}
