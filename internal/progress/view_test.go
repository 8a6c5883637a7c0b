package progress

import (
	"testing"

	"github.com/abhisek/studymate/internal/api"
)

func TestProject_DefensiveDefaults(t *testing.T) {
	o := Project(nil)
	if o.TotalQuizzes != 0 || o.QuestionsAttempted != 0 {
		t.Errorf("totals = %d/%d, want 0/0", o.TotalQuizzes, o.QuestionsAttempted)
	}
	if o.AverageScore != "0.0%" {
		t.Errorf("average = %q, want \"0.0%%\"", o.AverageScore)
	}
	if o.WeakAreas == nil || len(o.WeakAreas) != 0 {
		t.Errorf("weak areas = %v, want empty non-nil", o.WeakAreas)
	}
	if o.RecentActivity == nil || len(o.RecentActivity) != 0 {
		t.Errorf("recent activity = %v, want empty non-nil", o.RecentActivity)
	}
}

func TestProject_OneDecimalRounding(t *testing.T) {
	o := Project(&api.ProgressSnapshot{AverageScore: 66.666})
	if o.AverageScore != "66.7%" {
		t.Errorf("average = %q, want \"66.7%%\"", o.AverageScore)
	}
}

func TestProject_WeakAreasKeepOrder(t *testing.T) {
	snap := &api.ProgressSnapshot{
		WeakAreas: []api.WeakArea{
			{Topic: "Cells", Accuracy: 41.7, TotalQuestions: 12, CorrectAnswers: 5},
			{Topic: "Genetics", Accuracy: 55.0, TotalQuestions: 20, CorrectAnswers: 11},
		},
	}
	o := Project(snap)
	if len(o.WeakAreas) != 2 {
		t.Fatalf("weak areas = %d, want 2", len(o.WeakAreas))
	}
	if o.WeakAreas[0].Topic != "Cells" || o.WeakAreas[1].Topic != "Genetics" {
		t.Error("weak areas must keep backend order")
	}
	if o.WeakAreas[0].AccuracyLabel != "41.7%" {
		t.Errorf("accuracy label = %q", o.WeakAreas[0].AccuracyLabel)
	}
}

func TestProject_RecentActivityReversedAndCapped(t *testing.T) {
	snap := &api.ProgressSnapshot{}
	for i := 0; i < 12; i++ {
		snap.RecentActivity = append(snap.RecentActivity, api.Activity{
			QuizID: string(rune('a' + i)),
			Score:  float64(i),
		})
	}

	o := Project(snap)
	if len(o.RecentActivity) != 10 {
		t.Fatalf("recent activity = %d, want 10", len(o.RecentActivity))
	}
	if o.RecentActivity[0].QuizID != "l" {
		t.Errorf("first row = %q, want most recent \"l\"", o.RecentActivity[0].QuizID)
	}
	if o.RecentActivity[9].QuizID != "c" {
		t.Errorf("last row = %q, want \"c\"", o.RecentActivity[9].QuizID)
	}
	// Source sequence is not mutated.
	if snap.RecentActivity[0].QuizID != "a" {
		t.Error("Project must not reorder the snapshot itself")
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567..." {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("short"); got != "short" {
		t.Errorf("ShortID = %q, want unchanged", got)
	}
}

func TestHistoryScoreLabel(t *testing.T) {
	if got := HistoryScoreLabel(nil); got != "N/A" {
		t.Errorf("label = %q, want N/A", got)
	}
	v := 87.25
	if got := HistoryScoreLabel(&v); got != "87.2%" {
		t.Errorf("label = %q, want 87.2%%", got)
	}
}
