package md2docx

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestProfileStoreBuiltins(t *testing.T) {
	t.Parallel()

	s := NewProfileStore()
	want := []string{"angebot", "bericht", "analyse", "script"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	p, err := s.Get("angebot")
	if err != nil {
		t.Fatalf("Get(angebot) error = %v", err)
	}
	if p.OutputNaming != "{title}_Angebot.docx" {
		t.Errorf("OutputNaming = %q", p.OutputNaming)
	}
	if !p.TOC || !p.NumberSections {
		t.Errorf("angebot flags = toc:%v number:%v", p.TOC, p.NumberSections)
	}
}

func TestProfileStoreGetUnknown(t *testing.T) {
	t.Parallel()

	s := NewProfileStore()
	_, err := s.Get("missing")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("error = %v, want ErrProfileNotFound", err)
	}
	// The error names the alternatives.
	if !strings.Contains(err.Error(), "angebot") {
		t.Errorf("error %q does not list available profiles", err)
	}
}

func TestProfileArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile Profile
		want    []string
	}{
		{
			name:    "flags appended",
			profile: Profile{TOC: true, NumberSections: true},
			want:    []string{"--toc", "--number-sections"},
		},
		{
			name:    "no duplicate toc",
			profile: Profile{PandocArgs: []string{"--toc"}, TOC: true},
			want:    []string{"--toc"},
		},
		{
			name:    "explicit args preserved in order",
			profile: Profile{PandocArgs: []string{"--standalone"}, TOC: true},
			want:    []string{"--standalone", "--toc"},
		},
		{
			name:    "nothing enabled",
			profile: Profile{},
			want:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.profile.Args(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfileArgsDoesNotMutate(t *testing.T) {
	t.Parallel()

	p := Profile{PandocArgs: []string{"--standalone"}, TOC: true}
	p.Args()
	p.Args()
	if len(p.PandocArgs) != 1 {
		t.Errorf("PandocArgs grew to %v", p.PandocArgs)
	}
}

func TestProfileTemplatePath(t *testing.T) {
	t.Parallel()

	t.Run("empty template", func(t *testing.T) {
		t.Parallel()

		p := Profile{}
		if got := p.TemplatePath(t.TempDir()); got != "" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing template resolves to empty", func(t *testing.T) {
		t.Parallel()

		p := Profile{DefaultTemplate: "templates/missing.docx"}
		if got := p.TemplatePath(t.TempDir()); got != "" {
			t.Errorf("got %q, want empty for unresolvable template", got)
		}
	})

	t.Run("relative to base dir", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		tpl := filepath.Join(base, "angebot.docx")
		if err := os.WriteFile(tpl, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		p := Profile{DefaultTemplate: "angebot.docx"}
		if got := p.TemplatePath(base); got != tpl {
			t.Errorf("got %q, want %q", got, tpl)
		}
	})
}

func TestProfileFormats(t *testing.T) {
	t.Parallel()

	if got := (&Profile{}).Formats(); !reflect.DeepEqual(got, []string{"docx"}) {
		t.Errorf("default Formats() = %v", got)
	}
	p := &Profile{DefaultFormats: []string{"pdf", "docx"}}
	if got := p.Formats(); !reflect.DeepEqual(got, []string{"pdf", "docx"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestProfileStoreRegister(t *testing.T) {
	t.Parallel()

	t.Run("empty name rejected", func(t *testing.T) {
		t.Parallel()

		s := NewProfileStore()
		if err := s.Register(&Profile{Name: "  "}); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("error = %v, want ErrInvalidProfile", err)
		}
	})

	t.Run("invalid default format rejected", func(t *testing.T) {
		t.Parallel()

		s := NewProfileStore()
		p := &Profile{Name: "web", DefaultFormats: []string{"html"}}
		if err := s.Register(p); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("error = %v, want ErrInvalidProfile", err)
		}
	})

	t.Run("display name defaults to capitalized name", func(t *testing.T) {
		t.Parallel()

		s := NewProfileStore()
		p := &Profile{Name: "vertrag"}
		if err := s.Register(p); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if p.DisplayName != "Vertrag" {
			t.Errorf("DisplayName = %q", p.DisplayName)
		}
	})

	t.Run("replacing builtin keeps order", func(t *testing.T) {
		t.Parallel()

		s := NewProfileStore()
		if err := s.Register(&Profile{Name: "bericht", Description: "custom"}); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if got := s.Names(); !reflect.DeepEqual(got, []string{"angebot", "bericht", "analyse", "script"}) {
			t.Errorf("Names() = %v", got)
		}
		p, _ := s.Get("bericht")
		if p.Description != "custom" {
			t.Errorf("Description = %q", p.Description)
		}
	})
}

func TestProfileStoreLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := `profiles:
  - name: vertrag
    display_name: Vertrag
    description: Vertragsdokumente
    output_naming: "{title}_Vertrag.docx"
    toc: true
  - name: angebot
    description: overridden
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewProfileStore()
	if err := s.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	p, err := s.Get("vertrag")
	if err != nil {
		t.Fatalf("Get(vertrag) error = %v", err)
	}
	if p.OutputNaming != "{title}_Vertrag.docx" || !p.TOC {
		t.Errorf("loaded profile = %+v", p)
	}

	overridden, _ := s.Get("angebot")
	if overridden.Description != "overridden" {
		t.Errorf("builtin not replaced: %q", overridden.Description)
	}
}

func TestProfileStoreLoadFileErrors(t *testing.T) {
	t.Parallel()

	s := NewProfileStore()
	if err := s.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("profiles: {not: [a, list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadFile(bad); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("error = %v, want ErrInvalidProfile", err)
	}
}
