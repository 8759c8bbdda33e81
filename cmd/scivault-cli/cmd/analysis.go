package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var analysisCmd = &cobra.Command{
	Use:   "analysis <node-id> [payload-file]",
	Short: "Show or overwrite a node's analysis payload",
	Long: `Without a payload file, print the node's stored analysis payload.
With one, overwrite the payload with the file's contents. The payload is
opaque to the versioning core.

Examples:
  scivault-cli analysis 7
  scivault-cli analysis 7 summary.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNodeID(args[0])
		if err != nil {
			return err
		}

		if len(args) == 1 {
			node, err := GetSession().Controller.LoadNode(id)
			if err != nil {
				return err
			}
			if node == nil {
				return fmt.Errorf("no node with id %d", id)
			}
			fmt.Println(node.AnalysisJSON)
			return nil
		}

		payload, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		if err := GetSession().Store.UpdateAnalysis(id, string(payload)); err != nil {
			return err
		}
		fmt.Printf("updated analysis for node %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analysisCmd)
}
