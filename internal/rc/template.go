package rc

import (
	"fmt"
	"os"
	"path/filepath"
)

const template = `# Configuration file for gxxtools.
# Each section corresponds to a HPC head node hostname or domain.
# examples: "*.domain.com" or "example.domain.com"
# Multiple equivalent domains/addresses can be given, separated by commas.
# example: "example1.domain.com, example2.domain.com"
# The file should primarily contain paths to configuration files, which
# should contain the necessary information.
# Supported fields are:
# - gxx_config: path to gxxconfig.ini with general information on Gaussian
#               installation and infrastructure configuration.
# - hpc_config: path to hpcnodes.ini file, with nodes/hardware-specific
#               information.
# - gxx_versions: path to gxxversions.ini file, with information on Gaussian
#                 versions available on cluster.
# The marker {home} expands to your home directory.

[*.example.com]
gxx_config = {home}/gxxconfig_example.ini
hpc_config = {home}/hpcconfig_example.ini
gxx_versions = {home}/gxxversions_example.ini
`

// Template returns the commented run-control template written on first
// use.
func Template() string { return template }

// DefaultPath is where WriteTemplate puts a fresh run-control file:
// $XDG_CONFIG_HOME/gxxtools/gxxtoolsrc or ~/.config/gxxtools/gxxtoolsrc.
func DefaultPath() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "gxxtools", fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gxxtools", fileName), nil
}

// WriteTemplate creates a template run-control file at path, refusing
// to overwrite an existing one.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(template), 0o644)
}
