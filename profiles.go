package md2docx

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Profile bundles conversion defaults under a name: a reference template,
// extra Pandoc arguments, an output naming pattern and default formats.
type Profile struct {
	Name            string   `yaml:"name"`
	DisplayName     string   `yaml:"display_name"`
	Description     string   `yaml:"description"`
	DefaultTemplate string   `yaml:"default_template"`
	PandocArgs      []string `yaml:"pandoc_args"`
	OutputNaming    string   `yaml:"output_naming"`
	DefaultFormats  []string `yaml:"default_formats"`
	TOC             bool     `yaml:"toc"`
	NumberSections  bool     `yaml:"number_sections"`
}

// Args returns the Pandoc arguments for this profile: the explicit
// PandocArgs plus --toc and --number-sections per the flags, without
// duplicating arguments already listed.
func (p *Profile) Args() []string {
	args := slices.Clone(p.PandocArgs)
	if p.TOC && !slices.Contains(args, "--toc") {
		args = append(args, "--toc")
	}
	if p.NumberSections && !slices.Contains(args, "--number-sections") {
		args = append(args, "--number-sections")
	}
	return args
}

// TemplatePath resolves the profile's template against baseDir and the
// working directory. Returns "" when the profile has no template or the
// template cannot be found anywhere.
func (p *Profile) TemplatePath(baseDir string) string {
	if p.DefaultTemplate == "" {
		return ""
	}
	resolved := ResolveTemplatePath(p.DefaultTemplate, baseDir)
	if !pathExists(resolved) {
		return ""
	}
	return resolved
}

// Formats returns the profile's default output formats, docx when unset.
func (p *Profile) Formats() []string {
	if len(p.DefaultFormats) == 0 {
		return []string{FormatDOCX}
	}
	return p.DefaultFormats
}

// ProfileStore holds named profiles in registration order.
type ProfileStore struct {
	profiles map[string]*Profile
	order    []string
}

// NewProfileStore creates a store seeded with the built-in profiles.
func NewProfileStore() *ProfileStore {
	s := &ProfileStore{profiles: make(map[string]*Profile)}
	for _, p := range builtinProfiles() {
		s.profiles[p.Name] = p
		s.order = append(s.order, p.Name)
	}
	return s
}

func builtinProfiles() []*Profile {
	return []*Profile{
		{
			Name:           "angebot",
			DisplayName:    "Angebot",
			Description:    "Angebotsdokumente mit Inhaltsverzeichnis",
			OutputNaming:   "{title}_Angebot.docx",
			TOC:            true,
			NumberSections: true,
		},
		{
			Name:           "bericht",
			DisplayName:    "Bericht",
			Description:    "Berichte und Reports mit nummerierter Gliederung",
			PandocArgs:     []string{"--standalone"},
			OutputNaming:   "{title}_Bericht.docx",
			TOC:            true,
			NumberSections: true,
		},
		{
			Name:           "analyse",
			DisplayName:    "Analyse",
			Description:    "Analysedokumente mit detaillierter Struktur",
			OutputNaming:   "{title}_Analyse.docx",
			TOC:            true,
			NumberSections: true,
		},
		{
			Name:         "script",
			DisplayName:  "Script",
			Description:  "Schulungsunterlagen und Scripts",
			OutputNaming: "{title}_Script.docx",
			TOC:          true,
		},
	}
}

// Register adds or replaces a profile. The name must be non-empty; a
// missing display name defaults to the capitalized profile name.
func (s *ProfileStore) Register(p *Profile) error {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidProfile)
	}
	if p.DisplayName == "" {
		p.DisplayName = strings.ToUpper(p.Name[:1]) + p.Name[1:]
	}
	for _, f := range p.DefaultFormats {
		if !ValidFormat(f) {
			return fmt.Errorf("%w: %s: unknown default format %q", ErrInvalidProfile, p.Name, f)
		}
	}
	if _, exists := s.profiles[p.Name]; !exists {
		s.order = append(s.order, p.Name)
	}
	s.profiles[p.Name] = p
	return nil
}

// Get looks up a profile by name.
func (s *ProfileStore) Get(name string) (*Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			ErrProfileNotFound, name, strings.Join(s.Names(), ", "))
	}
	return p, nil
}

// Names returns profile names in registration order.
func (s *ProfileStore) Names() []string {
	return slices.Clone(s.order)
}

// All returns profiles in registration order.
func (s *ProfileStore) All() []*Profile {
	all := make([]*Profile, 0, len(s.order))
	for _, name := range s.order {
		all = append(all, s.profiles[name])
	}
	return all
}

// profileFile is the on-disk shape of a custom profiles file.
type profileFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadFile registers custom profiles from a YAML file. Profiles sharing a
// built-in name replace it.
func (s *ProfileStore) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading profiles file %s: %w", path, err)
	}

	var file profileFile
	if err := yamlutil.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidProfile, filepath.Base(path), err)
	}

	for _, p := range file.Profiles {
		if err := s.Register(p); err != nil {
			return err
		}
	}
	return nil
}
