package gxxtool

import (
	"fmt"

	"github.com/gxxtools/gxxtools/internal/rc"
	"github.com/spf13/cobra"
)

var initOutput string

func init() {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a run-control file template",
		Long:  "Init writes a commented gxxtoolsrc template to edit with the site's configuration file locations. It refuses to overwrite an existing file.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().StringVar(&initOutput, "output", "", "destination (default: $XDG_CONFIG_HOME/gxxtools/gxxtoolsrc)")
	rootCmd.AddCommand(cmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	path := initOutput
	if path == "" {
		var err error
		if path, err = rc.DefaultPath(); err != nil {
			return err
		}
	}
	if err := rc.WriteTemplate(path); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}
