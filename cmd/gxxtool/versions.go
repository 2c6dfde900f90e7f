package gxxtool

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gxxtools/gxxtools/internal/report"
	"github.com/gxxtools/gxxtools/internal/versions"
	"github.com/spf13/cobra"
)

var versionsArch string

func init() {
	versionsCmd := &cobra.Command{
		Use:   "versions",
		Short: "Inspect installed Gaussian versions and working trees",
	}
	rootCmd.AddCommand(versionsCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List installed versions and working trees",
		Args:  cobra.NoArgs,
		RunE:  runVersionsList,
	}
	versionsCmd.AddCommand(listCmd)

	showCmd := &cobra.Command{
		Use:   "show KEYWORD",
		Short: "Show one version or working tree in detail",
		Args:  cobra.ExactArgs(1),
		RunE:  runVersionsShow,
	}
	versionsCmd.AddCommand(showCmd)

	versionsCmd.PersistentFlags().StringVar(&versionsArch, "arch", "",
		"CPU family used to materialize installation paths (ex: haswell)")
}

func versionLocation(v *versions.Version) string {
	if v.Module != "" {
		return "module " + v.Module
	}
	if versionsArch != "" {
		if p, err := v.InstallPath(versionsArch); err == nil {
			return p
		}
	}
	return v.PathTemplate
}

func workingLocation(w *versions.Working) string {
	if versionsArch != "" {
		if p, err := w.Path(versionsArch); err == nil {
			return p
		}
	}
	return w.PathTemplate
}

func runVersionsList(_ *cobra.Command, _ []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	var rows []report.VersionRow
	for _, key := range reg.VersionKeys() {
		v := reg.Versions[key]
		rows = append(rows, report.VersionRow{
			Key:        v.Key,
			Kind:       "version",
			Name:       v.Name,
			Date:       v.Date,
			Location:   versionLocation(v),
			Restricted: v.Shared != nil,
		})
	}
	for _, key := range reg.WorkingKeys() {
		w := reg.Workings[key]
		rows = append(rows, report.VersionRow{
			Key:        w.Key,
			Kind:       "working",
			Name:       w.Name,
			Date:       w.Date,
			Location:   workingLocation(w),
			Restricted: w.Shared != nil,
		})
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	return report.PrintVersions(os.Stdout, rows)
}

func runVersionsShow(_ *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	v, w, err := reg.Lookup(args[0], username())
	if err != nil {
		return err
	}

	if w != nil {
		return showWorking(v, w)
	}
	fields := [][2]string{
		{"Keyword", v.Key},
		{"Name", v.Name},
		{"Date", v.Date},
		{"Module", v.Module},
		{"Path", versionLocation(v)},
		{"Machs", strings.Join(v.Machs, ", ")},
		{"Shared", strings.Join(v.Shared, ", ")},
		{"Workings", strings.Join(v.Workings, ", ")},
	}
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	report.PrintVersionDetail(os.Stdout, fields)
	return nil
}

func showWorking(v *versions.Version, w *versions.Working) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(w)
	}
	fields := [][2]string{
		{"Keyword", w.Key},
		{"Kind", "working tree"},
		{"Based on", v.Name + " (" + w.Ref + ")"},
		{"Version", w.Version},
		{"Date", w.Date},
		{"Path", workingLocation(w)},
		{"Author", w.Author},
		{"Contact", w.Mail},
		{"Machs", strings.Join(w.Machs, ", ")},
		{"Shared", strings.Join(w.Shared, ", ")},
	}
	report.PrintVersionDetail(os.Stdout, fields)
	for _, e := range w.Changelog {
		line := e.Path
		if line == "" {
			line = "(same, " + e.Format + ")"
		} else if e.Format != "" {
			line += " (" + e.Format + ")"
		}
		fmt.Printf("Changelog: %s\n", line)
	}
	for _, kind := range w.DocKinds {
		for _, e := range w.Docs[kind] {
			line := e.Path
			if line == "" {
				line = "(same, " + e.Format + ")"
			} else if e.Format != "" {
				line += " (" + e.Format + ")"
			}
			fmt.Printf("%s: %s\n", kind, line)
		}
	}
	return nil
}
