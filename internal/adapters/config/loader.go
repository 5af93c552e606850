// Package config provides the keel.yaml configuration loader.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file name looked up in the source root.
const DefaultFilename = "keel.yaml"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the keelfile from the given working directory and returns the
// validated build layout.
func (l *FileConfigLoader) Load(cwd string) (*domain.Layout, error) {
	filename := l.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	path := filepath.Join(cwd, filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no keelfile in working directory"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read keelfile"), "path", path)
	}

	var keelfile Keelfile
	if err := yaml.Unmarshal(data, &keelfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse keelfile"), "path", path)
	}

	return buildLayout(cwd, &keelfile)
}

func buildLayout(root string, keelfile *Keelfile) (*domain.Layout, error) {
	if len(keelfile.Projects) == 0 {
		return nil, domain.ErrNoUnitsDefined
	}

	policy, err := parsePolicy(keelfile)
	if err != nil {
		return nil, err
	}

	tree := domain.NewUnitTree()

	// The settings scope forms the root of the tree; build-scoped model
	// requests are attached to it.
	settings := &domain.Unit{
		Path:           domain.RootPath(),
		Kind:           domain.KindSettings,
		ScriptSources:  internStrings(keelfile.Settings.Scripts),
		DeclaredInputs: canonicalizeStrings(keelfile.Settings.Inputs),
		EnvReads:       keelfile.Settings.Env,
		ModelTypes:     internStrings(keelfile.Build.Models),
	}
	if err := tree.AddUnit(settings); err != nil {
		return nil, err
	}

	for rawPath, dto := range keelfile.Projects {
		unitPath, err := domain.ParseUnitPath(rawPath)
		if err != nil {
			return nil, err
		}

		unit := &domain.Unit{
			Path:           unitPath,
			Kind:           domain.KindProject,
			ScriptSources:  internStrings(dto.Scripts),
			DeclaredInputs: canonicalizeStrings(dto.Inputs),
			EnvReads:       dto.Env,
			ModelTypes:     internStrings(dto.Models),
		}
		if err := tree.AddUnit(unit); err != nil {
			return nil, err
		}
	}

	if err := tree.Validate(); err != nil {
		return nil, err
	}

	return &domain.Layout{
		Root:   root,
		Tree:   tree,
		Policy: policy,
	}, nil
}

func parsePolicy(keelfile *Keelfile) (domain.Policy, error) {
	failOn := keelfile.Problems.FailOn
	if failOn == "" {
		failOn = "error"
	}
	severity, err := domain.ParseSeverity(failOn)
	if err != nil {
		return domain.Policy{}, err
	}
	return domain.Policy{FailOn: severity}, nil
}

func internStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

func canonicalizeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)

	// Deduplicate and intern
	unique := slices.Compact(sorted)
	res := make([]domain.InternedString, len(unique))
	for i, s := range unique {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
