// Package site gives typed access to a gxxconfig.ini document: server
// identity and submission defaults, queue policy, the Gaussian setup
// and compiler description that build tooling and the job submitter
// read. It does not submit anything itself; consumers get resolved
// values and act on them.
package site

import (
	"fmt"
	"strings"

	"github.com/gxxtools/gxxtools/internal/ini"
)

// Section names of a gxxconfig.ini document.
const (
	SecGaussian = "GAUSSIAN"
	SecConfig   = "CONFIG"
	SecPaths    = "PATHS"
	SecCompiler = "COMPILER"
	SecQueue    = "QUEUE"
	SecServer   = "SERVER"
)

// Site wraps a parsed gxxconfig.ini document.
type Site struct {
	doc *ini.Document
}

// New wraps doc. The document is expected to be gxxconfig.ini-shaped
// but sections are only required when the corresponding view is
// requested.
func New(doc *ini.Document) *Site { return &Site{doc: doc} }

// Document exposes the underlying document for raw queries.
func (s *Site) Document() *ini.Document { return s.doc }

// Server describes the head node: who to notify, how jobs are
// dispatched, and how scratch areas are cleaned.
type Server struct {
	Alias        string // platform alias, lowercased
	Email        string // notification address format ({user} marker allowed)
	Submitter    string // job submitter; only qsub is supported
	JobType      string // "queues" or "central"
	RunLocal     bool
	CleanScratch string // cleanup command; empty means automatic
}

// Dispatch reports whether jobs go to a central dispatcher rather than
// named queues.
func (sv Server) Dispatch() bool { return sv.JobType == "central" }

// Server reads the SERVER section.
func (s *Site) Server() (Server, error) {
	var sv Server

	alias, err := s.doc.String(SecServer, "alias")
	if err != nil {
		return sv, fmt.Errorf("server alias: %w", err)
	}
	sv.Alias = strings.ToLower(alias)

	if sv.Email, err = s.doc.StringOr(SecServer, "email", ""); err != nil {
		return sv, err
	}

	sub, err := s.doc.StringOr(SecServer, "submitter", "qsub")
	if err != nil {
		return sv, err
	}
	sv.Submitter = strings.ToLower(sub)
	if sv.Submitter != "qsub" {
		return sv, fmt.Errorf("unsupported job submitter %q", sub)
	}

	jt, err := s.doc.StringOr(SecServer, "jobtype", "queues")
	if err != nil {
		return sv, err
	}
	sv.JobType = strings.ToLower(jt)
	if sv.JobType != "queues" && sv.JobType != "central" {
		return sv, fmt.Errorf("unsupported job submission type %q", jt)
	}

	if sv.RunLocal, err = s.doc.BoolOr(SecServer, "runlocal", false); err != nil {
		return sv, err
	}

	clean, err := s.doc.StringOr(SecServer, "cleanscratch", "")
	if err != nil {
		return sv, err
	}
	if strings.EqualFold(clean, "auto") {
		clean = ""
	}
	sv.CleanScratch = clean
	return sv, nil
}

// Queue describes the default queue policy.
type Queue struct {
	Default  string
	Manual   bool // queues are chosen manually (not auto-dispatched)
	Walltime string
}

// Queue reads the QUEUE section.
func (s *Site) Queue() (Queue, error) {
	var q Queue
	var err error
	if q.Default, err = s.doc.StringOr(SecQueue, "default", ""); err != nil {
		return q, err
	}
	if q.Manual, err = s.doc.BoolOr(SecQueue, "manual", true); err != nil {
		return q, err
	}
	if q.Walltime, err = s.doc.StringOr(SecQueue, "walltime", ""); err != nil {
		return q, err
	}
	return q, nil
}

// Gaussian describes how Gaussian installations are exposed on the
// cluster.
type Gaussian struct {
	Default   string // default version keyword, e.g. g16c01
	UseModule bool   // environment modules set up Gaussian
	UsePath   bool   // plain directory trees set up Gaussian
}

// Gaussian reads the GAUSSIAN section. The default version is
// mandatory.
func (s *Site) Gaussian() (Gaussian, error) {
	var g Gaussian
	var err error
	if g.Default, err = s.doc.String(SecGaussian, "default"); err != nil {
		return g, fmt.Errorf("default Gaussian version: %w", err)
	}
	if g.UseModule, err = s.doc.BoolOr(SecGaussian, "module", false); err != nil {
		return g, err
	}
	if g.UsePath, err = s.doc.BoolOr(SecGaussian, "path", true); err != nil {
		return g, err
	}
	return g, nil
}

// Compiler describes the compiler suite used to build Gaussian from
// source.
type Compiler struct {
	Name    string
	SetEnv  bool // emit environment setup before building
	Version string
	Arch    string
}

// Compiler reads the COMPILER section. The name is mandatory.
func (s *Site) Compiler() (Compiler, error) {
	var c Compiler
	var err error
	if c.Name, err = s.doc.String(SecCompiler, "name"); err != nil {
		return c, fmt.Errorf("compiler name: %w", err)
	}
	if c.SetEnv, err = s.doc.BoolOr(SecCompiler, "set_env", false); err != nil {
		return c, err
	}
	if c.Version, err = s.doc.StringOr(SecCompiler, "version", ""); err != nil {
		return c, err
	}
	if c.Arch, err = s.doc.StringOr(SecCompiler, "arch", ""); err != nil {
		return c, err
	}
	return c, nil
}

// BuildArch is one Gaussian build architecture from the GAUSSIAN
// section: where the build tree lives and which node compiles it.
type BuildArch struct {
	InstallDir string
	BuildNode  string
}

// BuildArchs parses GAUSSIAN.build_archs and its per-arch
// `build_<arch> = install_dir | build_node` entries. With strict
// false, architectures lacking a build_<arch> entry are skipped.
func (s *Site) BuildArchs(strict bool) (map[string]BuildArch, error) {
	names, err := s.doc.List(SecGaussian, "build_archs", ",")
	if err != nil {
		return nil, fmt.Errorf("build architectures: %w", err)
	}
	out := make(map[string]BuildArch, len(names))
	for _, arch := range names {
		if arch == "" {
			continue
		}
		info, err := s.doc.StringOr(SecGaussian, "build_"+arch, "")
		if err != nil {
			return nil, err
		}
		if info == "" {
			if strict {
				return nil, fmt.Errorf("missing build information for arch %q", arch)
			}
			continue
		}
		dir, node, ok := strings.Cut(info, "|")
		if !ok {
			return nil, &ini.FormatError{
				Section: SecGaussian,
				Key:     "build_" + arch,
				Msg:     "expected `installation_structure | build_node` (ex: intel64-haswell | verne)",
			}
		}
		out[arch] = BuildArch{
			InstallDir: strings.TrimSpace(dir),
			BuildNode:  strings.TrimSpace(node),
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no build architecture available")
	}
	return out, nil
}
