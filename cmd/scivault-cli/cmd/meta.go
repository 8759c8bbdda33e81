package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	metaNotes       string
	metaTemperature string
	metaSampleID    string
)

var metaCmd = &cobra.Command{
	Use:   "meta <node-id>",
	Short: "Update a node's metadata",
	Long: `Update a node's free-form metadata. Last write wins; metadata is not
versioned (only file content is).

Example:
  scivault-cli meta 7 --notes "baseline drifted" --temperature 21.5C --sample S-104`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNodeID(args[0])
		if err != nil {
			return err
		}

		if err := GetSession().Store.UpdateMetadata(id, metaNotes, metaTemperature, metaSampleID); err != nil {
			return err
		}
		fmt.Printf("updated metadata for node %d\n", id)
		return nil
	},
}

func init() {
	metaCmd.Flags().StringVar(&metaNotes, "notes", "", "free-form notes")
	metaCmd.Flags().StringVar(&metaTemperature, "temperature", "", "recorded temperature")
	metaCmd.Flags().StringVar(&metaSampleID, "sample", "", "sample identifier")
	rootCmd.AddCommand(metaCmd)
}
