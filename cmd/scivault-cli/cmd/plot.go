package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	plotX string
	plotY string
)

var plotCmd = &cobra.Command{
	Use:   "plot <node-id>",
	Short: "Save a node's preferred plot axes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNodeID(args[0])
		if err != nil {
			return err
		}
		if plotX == "" || plotY == "" {
			return fmt.Errorf("both --x and --y are required")
		}

		if err := GetSession().Store.UpdatePlotSettings(id, plotX, plotY); err != nil {
			return err
		}
		fmt.Printf("node %d will plot %s against %s\n", id, plotY, plotX)
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotX, "x", "", "x axis column")
	plotCmd.Flags().StringVar(&plotY, "y", "", "y axis column")
	rootCmd.AddCommand(plotCmd)
}
