package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studymate/internal/progress"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quizzes, or replay a conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		conversationID, _ := cmd.Flags().GetString("conversation")
		if conversationID != "" {
			messages, err := client.ChatHistory(cmd.Context(), conversationID)
			if err != nil {
				return err
			}
			if len(messages) == 0 {
				fmt.Fprintln(out, "No messages in this conversation.")
				return nil
			}
			for _, m := range messages {
				fmt.Fprintf(out, "%s: %s\n", m.Role, m.Content)
			}
			return nil
		}

		entries, err := client.QuizHistory(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No quizzes yet.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %-6s  %d questions\n",
				e.QuizID, progress.HistoryScoreLabel(e.Score), e.TotalQuestions)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("conversation", "", "Show the transcript of a conversation id")
}
