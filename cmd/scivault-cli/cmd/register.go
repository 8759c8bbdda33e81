package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	registerParent     int64
	registerBranch     string
	registerName       string
	registerResearcher string
)

var registerCmd = &cobra.Command{
	Use:   "register <file>",
	Short: "Track a file as a new experiment node",
	Long: `Track a CSV file as a node in the version tree. Registering an
already-tracked path returns the existing node instead of creating a
duplicate.

Examples:
  scivault-cli register data/run_014.csv
  scivault-cli register data/run_015.csv --parent 14 --branch anneal-trial`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		var parent *int64
		if registerParent > 0 {
			parent = &registerParent
		}

		res, err := GetSession().Controller.RegisterOrLoad(registerName, filePath, "", parent, registerBranch, registerResearcher)
		if err != nil {
			return err
		}

		if res.Existing {
			fmt.Printf("node %d already tracks %s\n", res.NodeID, filePath)
		} else {
			fmt.Printf("registered node %d (%s)\n", res.NodeID, res.Message)
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().Int64Var(&registerParent, "parent", 0, "parent node id")
	registerCmd.Flags().StringVar(&registerBranch, "branch", "main", "branch label")
	registerCmd.Flags().StringVar(&registerName, "name", "", "node name (defaults to the file name)")
	registerCmd.Flags().StringVar(&registerResearcher, "researcher", "", "researcher name")
	rootCmd.AddCommand(registerCmd)
}
