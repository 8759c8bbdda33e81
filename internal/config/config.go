package config

import "os"

// Layout of a project directory. Every project carries its own database and
// vault so two projects never share or collide on snapshot contents.
const (
	DBFileName     = "project_vault.db"
	VaultDirName   = ".sci_vault"
	DataDirName    = "data"
	ExportsDirName = "exports"
)

// ProjectPath returns the project root from the SCIVAULT_PROJECT env var,
// falling back to the current directory.
func ProjectPath() string {
	if env := os.Getenv("SCIVAULT_PROJECT"); env != "" {
		return env
	}
	return "."
}
