package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tern/internal/derive"
	"tern/internal/iface"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <manifest.toml>",
	Short: "Report which interfaces each manifest type could derive",
	Long:  `Run only the eligibility check for every type in the manifest, against every known interface, without synthesizing anything`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("disk-cache", false, "enable the persistent eligibility decision cache")
}

type checkReport struct {
	Type      string   `json:"type"`
	Derivable []string `json:"derivable"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	applyColorMode(cmd)

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	useCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return err
	}

	sess, entries, err := loadSession(args[0])
	if err != nil {
		return err
	}

	var cache *derive.DiskCache
	if useCache {
		if cache, err = derive.OpenDiskCache("tern"); err != nil {
			return fmt.Errorf("failed to open decision cache: %w", err)
		}
	}

	reports := make([]checkReport, 0, len(entries))
	for _, e := range entries {
		rep := checkReport{Type: e.Name, Derivable: []string{}}
		for _, k := range iface.All() {
			offered := false
			if cache != nil {
				if offered, err = derive.CachedOffers(sess, cache, e.Target, e.Decl, k); err != nil {
					return err
				}
			} else {
				offered = derive.OffersDerivation(sess, e.Target, e.Decl, k)
			}
			if offered {
				rep.Derivable = append(rep.Derivable, k.String())
			}
		}
		reports = append(reports, rep)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	renderCheckPretty(out, reports)
	return nil
}

func renderCheckPretty(out io.Writer, reports []checkReport) {
	name := color.New(color.Bold)
	for _, rep := range reports {
		fmt.Fprintf(out, "%s:", name.Sprint(rep.Type))
		if len(rep.Derivable) == 0 {
			fmt.Fprintf(out, " %s\n", skipColor.Sprint("nothing derivable"))
			continue
		}
		for _, k := range rep.Derivable {
			fmt.Fprintf(out, " %s", okColor.Sprint(k))
		}
		fmt.Fprintln(out)
	}
}
