package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scivault/internal/application/versioning"
	"scivault/internal/domain"
)

var redoCmd = &cobra.Command{
	Use:   "redo <node-id>",
	Short: "Replay the most recently undone version of a node",
	Long: `Replay the most recently undone version. Redo state lives in memory
only, so it is available within one session and cleared by any new commit.`,
	Args: cobra.ExactArgs(1),
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

		payload, err := await("redo", func() (interface{}, error) {
			return GetSession().Controller.Redo(id, node.FilePath)
		})
		if errors.Is(err, domain.ErrNothingToRedo) {
			fmt.Println(versioning.StatusMessage(err))
			return nil
		}
		if err != nil {
			fmt.Println(versioning.StatusMessage(err))
			return err
		}

		res := payload.(*versioning.RedoResult)
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(redoCmd)
}
