// Package progress projects a backend progress snapshot into display rows.
// It formats and reorders for display only; nothing is recomputed or cached
// beyond a single fetch-display cycle.
package progress

import (
	"fmt"

	"github.com/abhisek/studymate/internal/api"
)

// recentActivityWindow caps the displayed activity feed.
const recentActivityWindow = 10

// Overview is the display-ready projection of a ProgressSnapshot.
type Overview struct {
	TotalQuizzes       int
	QuestionsAttempted int
	AverageScore       string
	WeakAreas          []WeakAreaRow
	RecentActivity     []ActivityRow
}

// WeakAreaRow is one remediation topic. Accuracy is kept numeric for bar
// rendering alongside the formatted label.
type WeakAreaRow struct {
	Topic          string
	Accuracy       float64
	AccuracyLabel  string
	TotalQuestions int
	CorrectAnswers int
}

// ActivityRow is one recent quiz, formatted for a single display line.
type ActivityRow struct {
	QuizID    string
	ShortID   string
	Score     string
	Questions int
}

// Project maps a snapshot to an Overview. Absent numeric fields display as
// zero and absent sequences as empty; weak areas keep the order received,
// recent activity is reversed and capped — display transformations only,
// the snapshot itself is never mutated.
func Project(snap *api.ProgressSnapshot) Overview {
	if snap == nil {
		snap = &api.ProgressSnapshot{}
	}

	o := Overview{
		TotalQuizzes:       snap.TotalQuizzes,
		QuestionsAttempted: snap.TotalQuestionsAttempted,
		AverageScore:       FormatPercent(snap.AverageScore),
		WeakAreas:          make([]WeakAreaRow, 0, len(snap.WeakAreas)),
		RecentActivity:     make([]ActivityRow, 0, recentActivityWindow),
	}

	for _, area := range snap.WeakAreas {
		o.WeakAreas = append(o.WeakAreas, WeakAreaRow{
			Topic:          area.Topic,
			Accuracy:       area.Accuracy,
			AccuracyLabel:  FormatPercent(area.Accuracy),
			TotalQuestions: area.TotalQuestions,
			CorrectAnswers: area.CorrectAnswers,
		})
	}

	for i := len(snap.RecentActivity) - 1; i >= 0 && len(o.RecentActivity) < recentActivityWindow; i-- {
		a := snap.RecentActivity[i]
		o.RecentActivity = append(o.RecentActivity, ActivityRow{
			QuizID:    a.QuizID,
			ShortID:   ShortID(a.QuizID),
			Score:     FormatPercent(a.Score),
			Questions: a.TotalQuestions,
		})
	}

	return o
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// ShortID abbreviates an opaque backend id for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// HistoryScoreLabel formats a quiz-history score, which is absent for
// quizzes that were never submitted.
func HistoryScoreLabel(score *float64) string {
	if score == nil {
		return "N/A"
	}
	return FormatPercent(*score)
}
