package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scivault/internal/application/versioning"
	"scivault/internal/domain"
)

var undoCmd = &cobra.Command{
	Use:   "undo <node-id>",
	Short: "Restore a node's working file to its previous version",
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

		payload, err := await("undo", func() (interface{}, error) {
			return GetSession().Controller.Undo(id, node.FilePath)
		})
		if errors.Is(err, domain.ErrNothingToUndo) {
			fmt.Println(versioning.StatusMessage(err))
			return nil
		}
		if err != nil {
			fmt.Println(versioning.StatusMessage(err))
			return err
		}

		res := payload.(*versioning.UndoResult)
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
}
