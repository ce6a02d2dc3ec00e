package profile

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/checkbox"
)

func TestLoadEmbeddedProfile(t *testing.T) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}

	p, ok := store.Profile(DefaultName)
	if !ok {
		t.Fatalf("expected %q profile, have %v", DefaultName, store.Names())
	}
	want := Values{
		DesignConsultant: "NCE",
		DesignEngineer:   "Jim Bui",
		Phone:            "(123) - 456- 7890",
		ProjectName:      "Redondo Beach Curb Ramp Rehab",
		ProjectNumber:    "123.45.678",
	}
	if diff := cmp.Diff(want, p.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(p.Checkboxes) == 0 || p.Checkboxes[0] != (checkbox.Target{Position: 1, Label: "Fire Hydrant"}) {
		t.Fatalf("unexpected checkbox targets: %+v", p.Checkboxes)
	}
}

func TestLoadFSJSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json":    {Data: []byte(`{"profiles":{"sidewalk":{"values":{"design_consultant":"ACME"},"checkboxes":[{"position":2,"label":" Tree "}]}}}`)},
		"b.yml":     {Data: []byte("profiles:\n  driveway:\n    values:\n      project_name: Driveway\n")},
		"notes.txt": {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"driveway", "sidewalk"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	sidewalk, _ := store.Profile("sidewalk")
	if diff := cmp.Diff([]checkbox.Target{{Position: 2, Label: "Tree"}}, sidewalk.Checkboxes); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
	if sidewalk.Source != "a.json" {
		t.Fatalf("expected source a.json, got %q", sidewalk.Source)
	}
}

func TestLoadFSErrors(t *testing.T) {
	cases := map[string]struct {
		files fstest.MapFS
		want  string
	}{
		"empty file": {
			files: fstest.MapFS{"x.yaml": {Data: []byte("  ")}},
			want:  "is empty",
		},
		"invalid": {
			files: fstest.MapFS{"x.yaml": {Data: []byte("profiles: [")}},
			want:  "invalid JSON or YAML",
		},
		"bad position": {
			files: fstest.MapFS{"x.yaml": {Data: []byte("profiles:\n  p:\n    checkboxes:\n      - position: 0\n")}},
			want:  "want >= 1",
		},
		"duplicate position": {
			files: fstest.MapFS{"x.yaml": {Data: []byte("profiles:\n  p:\n    checkboxes:\n      - position: 1\n      - position: 1\n")}},
			want:  "twice",
		},
		"duplicate profile": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("profiles:\n  p: {}\n")},
				"b.yaml": {Data: []byte("profiles:\n  p: {}\n")},
			},
			want: "duplicate profile",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFS(tc.files)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestNilStore(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
	var missing *Store
	if _, ok := missing.Profile("x"); ok {
		t.Fatalf("nil store should not resolve profiles")
	}
}
