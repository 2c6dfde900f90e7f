package gxxtool

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var (
	getRaw  bool
	getType string
)

func init() {
	cmd := &cobra.Command{
		Use:   "get SECTION KEY",
		Short: "Print one resolved configuration value",
		Long:  "Get looks up SECTION.KEY in the site's gxxconfig.ini, expands every ${...} reference and prints the result.",
		Args:  cobra.ExactArgs(2),
		RunE:  runGet,
	}
	cmd.Flags().BoolVar(&getRaw, "raw", false, "print the stored value without expanding references")
	cmd.Flags().StringVar(&getType, "type", "str", "coerce the value: str | bool | list | map")
	rootCmd.AddCommand(cmd)
}

func runGet(_ *cobra.Command, args []string) error {
	section, key := args[0], args[1]
	st, _, err := loadSite()
	if err != nil {
		return err
	}
	doc := st.Document()

	if getRaw {
		raw, err := doc.Raw(section, key)
		if err != nil {
			return err
		}
		fmt.Println(raw)
		return nil
	}

	switch getType {
	case "str":
		val, err := doc.String(section, key)
		if err != nil {
			return err
		}
		return emit(val)
	case "bool":
		val, err := doc.Bool(section, key)
		if err != nil {
			return err
		}
		return emit(val)
	case "list":
		val, err := doc.List(section, key, ",")
		if err != nil {
			return err
		}
		if flagJSON {
			return emit(val)
		}
		for _, item := range val {
			fmt.Println(item)
		}
		return nil
	case "map":
		val, err := doc.Mapping(section, key, ",", ":")
		if err != nil {
			return err
		}
		if flagJSON {
			return emit(val)
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s = %s\n", k, val[k])
		}
		return nil
	default:
		return fmt.Errorf("unsupported type %q (supported: str, bool, list, map)", getType)
	}
}

// emit prints a scalar, honoring --json.
func emit(v any) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(v)
	}
	fmt.Println(v)
	return nil
}
