package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tern/internal/ast"
	"tern/internal/derive"
	"tern/internal/driver"
)

var deriveCmd = &cobra.Command{
	Use:   "derive [flags] <manifest.toml>",
	Short: "Synthesize the interface implementations a manifest requests",
	Long:  `Load a type manifest, run every requested derivation, and report per request whether the implementation was synthesized, declined, or failed`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDerive,
}

func init() {
	deriveCmd.Flags().Int("jobs", 0, "max parallel eligibility workers (0=auto)")
	deriveCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	deriveCmd.Flags().Bool("disk-cache", false, "enable the persistent eligibility decision cache")
}

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	skipColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
	noteColor = color.New(color.Faint)
)

type deriveReport struct {
	Type        string       `json:"type"`
	Iface       string       `json:"iface"`
	Status      string       `json:"status"` // ok|ineligible|failed
	Members     int          `json:"members,omitempty"`
	Diagnostics []diagReport `json:"diagnostics,omitempty"`
}

type diagReport struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func runDerive(cmd *cobra.Command, args []string) error {
	applyColorMode(cmd)

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return err
	}

	sess, entries, err := loadSession(args[0])
	if err != nil {
		return err
	}

	opts := driver.Options{Jobs: jobs, MaxDiagnostics: maxDiagnostics}
	if useCache {
		cache, err := derive.OpenDiskCache("tern")
		if err != nil {
			return fmt.Errorf("failed to open decision cache: %w", err)
		}
		opts.Cache = cache
	}

	results, err := driver.DeriveAll(cmd.Context(), sess, driver.Requests(entries), opts)
	if err != nil {
		return err
	}

	names := make(map[ast.DeclID]string, len(entries))
	for _, e := range entries {
		names[e.Decl] = e.Name
	}

	reports := make([]deriveReport, 0, len(results))
	failed := 0
	for _, r := range results {
		rep := deriveReport{
			Type:  names[r.Request.Decl],
			Iface: r.Request.Iface.String(),
		}
		switch {
		case r.Err == nil:
			rep.Status = "ok"
			rep.Members = len(r.Members)
		case errors.Is(r.Err, derive.ErrIneligible):
			rep.Status = "ineligible"
		default:
			rep.Status = "failed"
			failed++
		}
		for _, d := range r.Bag.Items() {
			rep.Diagnostics = append(rep.Diagnostics, diagReport{
				Code:     d.Code.String(),
				Severity: d.Severity.String(),
				Message:  d.Message,
			})
		}
		reports = append(reports, rep)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		renderDerivePretty(out, reports)
	}

	if failed > 0 {
		return fmt.Errorf("%d derivation(s) failed", failed)
	}
	return nil
}

func renderDerivePretty(out io.Writer, reports []deriveReport) {
	for _, rep := range reports {
		switch rep.Status {
		case "ok":
			suffix := "member"
			if rep.Members != 1 {
				suffix = "members"
			}
			fmt.Fprintf(out, "%s  %s: %s (%d %s)\n", okColor.Sprint("ok"), rep.Type, rep.Iface, rep.Members, suffix)
		case "ineligible":
			fmt.Fprintf(out, "%s  %s: %s is not derivable for this shape\n", skipColor.Sprint("--"), rep.Type, rep.Iface)
		default:
			fmt.Fprintf(out, "%s  %s: %s\n", failColor.Sprint("!!"), rep.Type, rep.Iface)
		}
		for _, d := range rep.Diagnostics {
			fmt.Fprintf(out, "      %s\n", noteColor.Sprintf("%s [%s]: %s", d.Severity, d.Code, d.Message))
		}
	}
}

// applyColorMode maps the persistent --color flag onto the global color
// switch. "auto" keeps the library's own terminal detection.
func applyColorMode(cmd *cobra.Command) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
}
