package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"scivault/internal/application/versioning"
)

var commitCmd = &cobra.Command{
	Use:   "commit <node-id> <content-file>",
	Short: "Commit new content to a node's working file, versioning the old state",
	Long: `Overwrite a node's working file with new content. The current on-disk
state is snapshotted into the vault first, so the edit can be undone. Pass
"-" to read the new content from stdin.

Examples:
  scivault-cli commit 7 corrected.csv
  cat corrected.csv | scivault-cli commit 7 -`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNodeID(args[0])
		if err != nil {
			return err
		}

		var content []byte
		if args[1] == "-" {
			content, err = io.ReadAll(os.Stdin)
		} else {
			content, err = os.ReadFile(args[1])
		}
		if err != nil {
			return fmt.Errorf("failed to read new content: %w", err)
		}

		node, err := GetSession().Controller.LoadNode(id)
		if err != nil {
			return err
		}
		if node == nil {
			return fmt.Errorf("no node with id %d", id)
		}

		payload, err := await("save", func() (interface{}, error) {
			return GetSession().Controller.CommitEdit(id, node.FilePath, content)
		})
		if err != nil {
			fmt.Println(versioning.StatusMessage(err))
			return err
		}

		res := payload.(*versioning.CommitResult)
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
}
