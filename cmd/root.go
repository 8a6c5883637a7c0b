package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studymate",
	Short: "Study assistant for your own documents",
	Long:  "StudyMate — terminal client for a document Q&A and quiz backend. Upload notes, chat about them, and quiz yourself.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Backend base URL (default http://localhost:8000)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (0 = no limit)")
	rootCmd.PersistentFlags().String("db", "", "Path to the local study-log database (overrides STUDYMATE_DB)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
