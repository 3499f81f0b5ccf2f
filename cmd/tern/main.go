package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tern/internal/derive"
	"tern/internal/driver"
	"tern/internal/project"
	"tern/internal/version"
)

// loadSession reads a manifest and builds the derivation session.
// Unknown-interface rejections surface with their diagnostic code.
func loadSession(path string) (*derive.Session, []driver.Entry, error) {
	man, err := project.LoadManifest(path)
	if err != nil {
		return nil, nil, err
	}
	sess, entries, err := driver.BuildSession(man)
	if err != nil {
		var unknown *driver.UnknownInterfaceError
		if errors.As(err, &unknown) {
			d := unknown.Diagnostic()
			return nil, nil, fmt.Errorf("%s: %s", d.Code, d.Message)
		}
		return nil, nil, err
	}
	return sess, entries, nil
}

var rootCmd = &cobra.Command{
	Use:   "tern",
	Short: "Tern interface derivation engine",
	Long:  `Tern synthesizes interface implementations for declared types and explains the ones it cannot`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
