package versions

import (
	"fmt"
	"sort"
	"strings"
)

// gxxArchFlags maps CPU families (as named in the HPC nodes file) to
// Gaussian machine directories. The mapping follows the naming
// convention adopted on the supported clusters.
var gxxArchFlags = map[string]string{
	"nehalem":     "intel64-nehalem",
	"westmere":    "intel64-nehalem",
	"sandybridge": "intel64-sandybridge",
	"ivybridge":   "intel64-sandybridge",
	"skylake":     "intel64-haswell",
	"cascadelake": "intel64-haswell",
	"bulldozer":   "amd64-istanbul",
	"naples":      "intel64-haswell",
	"rome":        "intel64-haswell",
	"milan":       "intel64-haswell",
	"zen1":        "intel64-haswell",
	"zen2":        "intel64-haswell",
	"zen3":        "intel64-haswell",
}

// ArchFlag translates a CPU family into the Gaussian machine
// directory component used in installation paths.
func ArchFlag(cpuFamily string) (string, error) {
	flag, ok := gxxArchFlags[strings.ToLower(strings.TrimSpace(cpuFamily))]
	if !ok {
		return "", fmt.Errorf("unsupported hardware architecture %q", cpuFamily)
	}
	return flag, nil
}

// ArchFamilies lists the known CPU family names, sorted.
func ArchFamilies() []string {
	out := make([]string, 0, len(gxxArchFlags))
	for k := range gxxArchFlags {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
