package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List files in the data directory and their tracking state",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := GetSession().ScanInbox()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("inbox is empty")
			return nil
		}

		for _, e := range entries {
			if e.Tracked() {
				fmt.Printf("node %-4d %s\n", e.NodeID, filepath.Base(e.Path))
			} else {
				fmt.Printf("untracked %s\n", filepath.Base(e.Path))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inboxCmd)
}
