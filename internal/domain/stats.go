package domain

import "time"

// RunStats is what one pipeline run reports for its local hour bucket.
type RunStats struct {
	Country         string
	TotalCandidates int
	Published       int
	At              time.Time
}

// HourBucket is the accumulated counters stored for one local hour.
type HourBucket struct {
	Hour            int
	TotalCandidates int
	Published       int
	Runs            int
	Timestamp       time.Time
}

// DailyTotal is the rolled-up result for one local date.
type DailyTotal struct {
	TotalCandidates int
	Published       int
	RolledHours     []int
	RolledUpAt      time.Time
}

// PopularArticle is one row of a daily popular snapshot.
type PopularArticle struct {
	ID           string
	Title        string
	AITitle      string
	AIContent    string
	Category     string
	ClickedCount int
	PubDate      string
	Link         string
	Translations map[string]any
}

// DailyPopular groups the popular rows captured for one local date.
type DailyPopular struct {
	Date     string
	Articles []PopularArticle
}

// Prompt is a single LLM request.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// PushMessage is the payload handed to the push dispatcher.
type PushMessage struct {
	ArticleID string            `json:"articleId"`
	Header    string            `json:"header"`
	Title     string            `json:"title"`
	Messages  map[string]string `json:"messages"`
	Country   string            `json:"country"`
}

// PushResult summarizes the dispatcher response.
type PushResult struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
	IgnoredUsers int `json:"ignoredUsers"`
}
