package gxxtool

import (
	"strings"

	"github.com/gxxtools/gxxtools/internal/site"
	"github.com/spf13/cobra"
)

var pathNameOnly bool

func init() {
	cmd := &cobra.Command{
		Use:   "path WHAT",
		Short: "Print the location of a site file or directory",
		Long: "Path prints where a piece of the site's Gaussian infrastructure lives.\n" +
			"Supported quantities: " + strings.Join(site.PathQuantities(), ", ") + ".",
		Args: cobra.ExactArgs(1),
		RunE: runPath,
	}
	cmd.Flags().BoolVar(&pathNameOnly, "name-only", false, "print the configured file name, not the full path")
	rootCmd.AddCommand(cmd)
}

func runPath(_ *cobra.Command, args []string) error {
	st, _, err := loadSite()
	if err != nil {
		return err
	}
	p, err := st.PathFor(args[0], !pathNameOnly)
	if err != nil {
		return err
	}
	return emit(p)
}
