package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studymate/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show quiz progress and weak areas",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		weakOnly, _ := cmd.Flags().GetBool("weak-areas")
		if weakOnly {
			areas, err := client.WeakAreas(cmd.Context())
			if err != nil {
				return err
			}
			if len(areas) == 0 {
				fmt.Fprintln(out, "No weak areas flagged yet.")
				return nil
			}
			for _, a := range areas {
				fmt.Fprintf(out, "%-30s %s  (%d/%d correct)\n",
					a.Topic, progress.FormatPercent(a.Accuracy), a.CorrectAnswers, a.TotalQuestions)
			}
			return nil
		}

		snap, err := client.Progress(cmd.Context())
		if err != nil {
			return err
		}
		o := progress.Project(snap)

		fmt.Fprintf(out, "Quizzes taken:       %d\n", o.TotalQuizzes)
		fmt.Fprintf(out, "Questions attempted: %d\n", o.QuestionsAttempted)
		fmt.Fprintf(out, "Average score:       %s\n", o.AverageScore)

		if len(o.WeakAreas) > 0 {
			fmt.Fprintln(out, "\nWeak areas:")
			for _, a := range o.WeakAreas {
				fmt.Fprintf(out, "  %-28s %s  (%d/%d correct)\n",
					a.Topic, a.AccuracyLabel, a.CorrectAnswers, a.TotalQuestions)
			}
		}

		if len(o.RecentActivity) > 0 {
			fmt.Fprintln(out, "\nRecent quizzes:")
			for _, r := range o.RecentActivity {
				fmt.Fprintf(out, "  %s  %s  %d questions\n", r.ShortID, r.Score, r.Questions)
			}
		}
		return nil
	},
}

func init() {
	progressCmd.Flags().Bool("weak-areas", false, "Show only topics flagged for review")
}
