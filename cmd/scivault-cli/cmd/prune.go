package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove nodes whose working file no longer exists on disk",
	Long: `Remove tracked nodes whose working file has been moved or deleted,
along with their history rows. Vault blobs are never removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := GetSession().Store.PruneMissing()
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d node(s)\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
