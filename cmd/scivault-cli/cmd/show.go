package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scivault/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <node-id>",
	Short: "Show a node's full record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNodeID(args[0])
		if err != nil {
			return err
		}

		node, err := GetSession().Controller.LoadNode(id)
		if err != nil {
			return err
		}
		if node == nil {
			return fmt.Errorf("no node with id %d", id)
		}

		parent := "-"
		if node.ParentID != nil {
			parent = fmt.Sprintf("%d", *node.ParentID)
		}

		fmt.Printf("id:          %d\n", node.ID)
		fmt.Printf("name:        %s\n", node.Name)
		fmt.Printf("file:        %s\n", node.FilePath)
		fmt.Printf("branch:      %s\n", node.Branch)
		fmt.Printf("parent:      %s\n", parent)
		fmt.Printf("researcher:  %s\n", node.Researcher)
		fmt.Printf("created:     %s\n", node.CreatedAt.Format("2006-01-02 15:04"))
		if node.Notes != "" {
			fmt.Printf("notes:       %s\n", node.Notes)
		}
		if node.Temperature != "" {
			fmt.Printf("temperature: %s\n", node.Temperature)
		}
		if node.SampleID != "" {
			fmt.Printf("sample:      %s\n", node.SampleID)
		}
		if ps, err := domain.DecodePlotSettings(node.PlotSettings); err == nil && ps.X != "" {
			fmt.Printf("plot:        %s vs %s\n", ps.Y, ps.X)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
