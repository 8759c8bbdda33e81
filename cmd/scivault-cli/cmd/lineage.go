package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scivault/internal/domain"
)

var lineageCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Display the experiment version tree",
	Long: `Display every tracked node as a tree of parent/child lineage.

Example:
  scivault-cli lineage`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := GetSession().Store.GetLineage()
		if err != nil {
			return err
		}

		// Rows arrive ordered by id, so every parent is seen before its
		// children and the child map is complete by the time we print.
		children := make(map[int64][]domain.LineageRow)
		var roots []domain.LineageRow
		for _, row := range rows {
			if row.ParentID == nil {
				roots = append(roots, row)
			} else {
				children[*row.ParentID] = append(children[*row.ParentID], row)
			}
		}

		for _, root := range roots {
			printLineage(root, children, 0)
		}
		return nil
	},
}

func printLineage(row domain.LineageRow, children map[int64][]domain.LineageRow, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%d [%s] %s\n", indent, row.ID, row.Branch, row.Name)

	for _, child := range children[row.ID] {
		printLineage(child, children, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(lineageCmd)
}
