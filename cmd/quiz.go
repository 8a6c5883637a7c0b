package cmd

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/progress"
	"github.com/abhisek/studymate/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz and answer it in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient(cmd)
		if err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("questions")
		qtype, _ := cmd.Flags().GetString("type")
		topic, _ := cmd.Flags().GetString("topic")

		params := quiz.GenerateParams{
			NumQuestions: count,
			QuestionType: qtype,
			Topic:        topic,
		}
		if err := params.Validate(); err != nil {
			return err
		}

		machine := quiz.NewMachine()
		if err := machine.StartGenerate(params); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Generating quiz...")

		q, err := client.GenerateQuiz(cmd.Context(), params.Request())
		if err != nil {
			machine.GenerateFailed()
			return err
		}
		if err := machine.GenerateSucceeded(q); err != nil {
			return err
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		for i, question := range q.Questions {
			fmt.Fprintf(out, "\n%d. %s\n", i+1, question.Question)
			for j, opt := range question.Options {
				fmt.Fprintf(out, "   %c) %s\n", 'a'+j, opt)
			}
			var answer string
			for answer == "" {
				fmt.Fprint(out, "> ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				answer = strings.TrimSpace(line)
			}

			// Accept a/b/c/d shorthand for option lists.
			if len(question.Options) > 0 && len(answer) == 1 {
				if idx := int(answer[0] - 'a'); idx >= 0 && idx < len(question.Options) {
					answer = question.Options[idx]
				}
			}
			if err := machine.SetAnswer(i, answer); err != nil {
				return err
			}
		}

		answers, err := machine.BeginSubmit()
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "\nGrading...")
		result, err := client.SubmitQuiz(cmd.Context(), q.QuizID, answers)
		if err != nil {
			machine.SubmitFailed()
			return err
		}
		if err := machine.SubmitSucceeded(result); err != nil {
			return err
		}

		fmt.Fprintf(out, "\nScore: %s (%d/%d correct)\n",
			progress.FormatPercent(result.Score), result.CorrectAnswers, result.TotalQuestions)

		indices := make([]int, 0, len(result.Results))
		for i := range result.Results {
			indices = append(indices, i)
		}
		sort.Ints(indices)
		for _, i := range indices {
			r := result.Results[i]
			mark := "✓"
			if !r.Correct {
				mark = "✗"
			}
			fmt.Fprintf(out, "  %s %d. %s\n", mark, i+1, r.Question)
			if !r.Correct {
				fmt.Fprintf(out, "      your answer: %s\n", r.UserAnswer)
				fmt.Fprintf(out, "      correct:     %s\n", r.CorrectAnswer)
			}
		}
		return nil
	},
}

func init() {
	quizCmd.Flags().IntP("questions", "n", 5, fmt.Sprintf("Number of questions (%d-%d)", quiz.MinQuestions, quiz.MaxQuestions))
	quizCmd.Flags().StringP("type", "t", api.QuestionTypeMixed, "Question type (mcq, short_answer, mixed)")
	quizCmd.Flags().String("topic", "", "Focus the quiz on a topic")
}
