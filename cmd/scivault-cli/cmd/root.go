package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"scivault/internal/application"
	"scivault/internal/application/tasks"
	"scivault/internal/config"
)

var (
	projectRoot string
	session     *application.Session
)

var rootCmd = &cobra.Command{
	Use:   "scivault-cli",
	Short: "CLI for experiment version trees",
	Long: `scivault-cli manages a project of tracked experiment files: each CSV is a
node in a version tree, and every committed edit is snapshotted into a
content-addressed vault so it can be undone and redone.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		session, err = application.OpenProject(projectRoot)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if session == nil {
			return nil
		}
		return session.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "project", "p", config.ProjectPath(), "path to the project directory")
}

// GetSession returns the initialized project session
func GetSession() *application.Session {
	return session
}

// await submits work to the background runner and blocks until its result
// comes back, the way the GUI shell's per-frame drain would observe it.
func await(kind string, fn tasks.Func) (interface{}, error) {
	s := GetSession()
	id := s.Runner.Submit(kind, fn)
	for res := range s.Runner.Results() {
		if res.ID == id {
			return res.Payload, res.Err
		}
	}
	return nil, fmt.Errorf("runner closed before %s completed", kind)
}

// parseNodeID parses a node id argument.
func parseNodeID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid node id: %s", arg)
	}
	return id, nil
}
