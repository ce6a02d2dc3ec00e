package profile

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfill/pkg/checkbox"
)

// LoadFS walks the provided filesystem and parses JSON/YAML profile files.
// When fsys is nil or no profile files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{profiles: make(map[string]Profile)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isProfileFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("profile: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawName, raw := range doc.Profiles {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("profile: file %s defines an empty profile name", path)
			}
			if _, exists := store.profiles[name]; exists {
				return fmt.Errorf("profile: duplicate profile %q (file %s)", name, path)
			}
			p, err := normaliseProfile(raw, name, path)
			if err != nil {
				return err
			}
			store.profiles[name] = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Profile returns the profile registered under name.
func (s *Store) Profile(name string) (Profile, bool) {
	if s == nil {
		return Profile{}, false
	}
	p, ok := s.profiles[strings.TrimSpace(name)]
	return p, ok
}

// Names returns the sorted profile names.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any profiles.
func (s *Store) Empty() bool {
	return s == nil || len(s.profiles) == 0
}

type documentFile struct {
	Profiles map[string]profileFile `json:"profiles" yaml:"profiles"`
}

type profileFile struct {
	Description string            `json:"description" yaml:"description"`
	Values      Values            `json:"values" yaml:"values"`
	Checkboxes  []checkbox.Target `json:"checkboxes" yaml:"checkboxes"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("profile: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("profile: parse %s: invalid JSON or YAML", source)
}

func normaliseProfile(raw profileFile, name, source string) (Profile, error) {
	p := Profile{
		Name:        name,
		Description: strings.TrimSpace(raw.Description),
		Source:      source,
		Values:      raw.Values,
		Checkboxes:  make([]checkbox.Target, 0, len(raw.Checkboxes)),
	}

	seen := make(map[int]bool, len(raw.Checkboxes))
	for idx, target := range raw.Checkboxes {
		if target.Position < 1 {
			return Profile{}, fmt.Errorf("profile: %q (file %s) checkbox %d has position %d, want >= 1", name, source, idx, target.Position)
		}
		if seen[target.Position] {
			return Profile{}, fmt.Errorf("profile: %q (file %s) lists checkbox position %d twice", name, source, target.Position)
		}
		seen[target.Position] = true
		target.Label = strings.TrimSpace(target.Label)
		p.Checkboxes = append(p.Checkboxes, target)
	}

	return p, nil
}

func isProfileFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
