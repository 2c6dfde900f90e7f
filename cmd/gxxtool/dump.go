package gxxtool

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gxxtools/gxxtools/internal/cache"
	"github.com/gxxtools/gxxtools/internal/ini"
	"github.com/gxxtools/gxxtools/internal/report"
	"github.com/spf13/cobra"
)

var (
	dumpFormat  string
	dumpNoCache bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the whole configuration with every reference resolved",
		Args:  cobra.NoArgs,
		RunE:  runDump,
	}
	cmd.Flags().StringVar(&dumpFormat, "format", "plain", "output format: plain | table | json | yaml | ini")
	cmd.Flags().BoolVar(&dumpNoCache, "no-cache", false, "resolve from scratch, ignoring the snapshot cache")
	rootCmd.AddCommand(cmd)
}

func runDump(_ *cobra.Command, _ []string) error {
	st, path, err := loadSite()
	if err != nil {
		return err
	}
	doc := st.Document()

	if dumpFormat == "ini" {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return report.PrintINI(os.Stdout, string(b), report.ColorEnabled(flagNoColor))
	}

	resolved, err := resolveAll(doc, path)
	if err != nil {
		return err
	}

	switch dumpFormat {
	case "plain":
		report.PrintResolved(os.Stdout, resolved)
		return nil
	case "table":
		return report.PrintTable(os.Stdout, resolved)
	case "json":
		return report.PrintJSON(os.Stdout, resolved)
	case "yaml":
		return report.PrintYAML(os.Stdout, resolved)
	default:
		return fmt.Errorf("unsupported format %q (supported: plain, table, json, yaml, ini)", dumpFormat)
	}
}

// resolveAll interpolates every key of every section, going through
// the snapshot cache when the source file is unchanged.
func resolveAll(doc *ini.Document, path string) (report.Resolved, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if !dumpNoCache {
		if snap, ok := cache.Load(name, doc.Fingerprint()); ok {
			return report.Resolved{Order: snap.Order, Sections: snap.Sections}, nil
		}
	}

	out := report.Resolved{Sections: map[string]map[string]string{}}
	for _, sec := range doc.Sections() {
		keys, err := doc.Keys(sec)
		if err != nil {
			return out, err
		}
		values := make(map[string]string, len(keys))
		for _, key := range keys {
			val, err := doc.Resolve(sec, key)
			if err != nil {
				return out, err
			}
			values[key] = val
		}
		out.Order = append(out.Order, sec)
		out.Sections[sec] = values
	}

	if !dumpNoCache && doc.Fingerprint() != 0 {
		snap := &cache.Snapshot{
			Fingerprint: doc.Fingerprint(),
			Sections:    out.Sections,
			Order:       out.Order,
		}
		// A failed cache write never fails the dump.
		_ = cache.Save(name, snap)
	}
	return out, nil
}
