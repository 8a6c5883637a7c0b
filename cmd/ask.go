package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question about your documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient(cmd)
		if err != nil {
			return err
		}

		conversationID, _ := cmd.Flags().GetString("conversation")
		question := strings.Join(args, " ")

		resp, err := client.SendMessage(cmd.Context(), question, conversationID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, resp.Answer)
		if len(resp.Sources) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Sources:")
			for _, src := range resp.Sources {
				fmt.Fprintf(out, "  - %s\n", src)
			}
		}
		fmt.Fprintf(out, "\nConversation: %s\n", resp.ConversationID)
		return nil
	},
}

func init() {
	askCmd.Flags().String("conversation", "", "Continue an existing conversation by id")
}
