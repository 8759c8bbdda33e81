package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var historyCopy bool

var historyCmd = &cobra.Command{
	Use:   "history <node-id>",
	Short: "List a node's snapshot history, oldest first",
	Long: `List the content digests recorded for a node, oldest first. The last
entry is what undo would restore.

Examples:
  scivault-cli history 7
  scivault-cli history 7 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNodeID(args[0])
		if err != nil {
			return err
		}

		history, err := GetSession().Store.ReadHistory(id)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Printf("node %d has no recorded versions\n", id)
			return nil
		}

		for i, digest := range history {
			fmt.Printf("%3d  %s\n", i+1, digest)
		}

		if historyCopy {
			newest := history[len(history)-1]
			if err := clipboard.WriteAll(newest); err != nil {
				return fmt.Errorf("failed to copy digest: %w", err)
			}
			fmt.Printf("copied %s to clipboard\n", newest[:8])
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyCopy, "copy", false, "copy the newest digest to the clipboard")
	rootCmd.AddCommand(historyCmd)
}
