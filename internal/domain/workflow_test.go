package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scout.dev/pkg/scout/internal/controller"
	m "scout.dev/pkg/scout/internal/model"
)

type fakeLoader struct {
	manifest m.Manifest
	err      error
	loaded   []m.Path
}

func (f *fakeLoader) Load(path m.Path) (m.Manifest, error) {
	f.loaded = append(f.loaded, path)
	return f.manifest, f.err
}

type memStore struct {
	saved  map[m.Path]m.Report
	stored m.Report
	err    error
}

func newMemStore() *memStore {
	return &memStore{saved: map[m.Path]m.Report{}}
}

func (s *memStore) Save(dir m.Path, report m.Report) error {
	if s.err != nil {
		return s.err
	}

	s.saved[dir] = report

	return nil
}

func (s *memStore) Load(dir m.Path) (m.Report, error) {
	if s.err != nil {
		return m.Report{}, s.err
	}

	return s.stored, nil
}

type captureUI struct {
	reports []m.Report
	paths   []controller.PathsState
}

func (c *captureUI) DisplayResolutions(_ context.Context, report m.Report) error {
	c.reports = append(c.reports, report)
	return nil
}

func (c *captureUI) DisplayPaths(_ context.Context, state controller.PathsState) error {
	c.paths = append(c.paths, state)
	return nil
}

func writeFile(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWorkflowResolve(t *testing.T) {
	t.Run("qualifies found and missing references", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "wood.png"))

		ui := &captureUI{}
		wf := NewWorkflow(&fakeLoader{}, newMemStore(), ui)

		err := wf.Resolve(context.Background(), ResolveArgs{
			ResolverArgs: ResolverArgs{Paths: []m.Path{m.Path(dir)}},
			Refs:         []m.Reference{"wood.png", "missing.png"},
			Workers:      2,
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}

		if len(ui.reports) != 1 {
			t.Fatalf("expected 1 displayed report, got %d", len(ui.reports))
		}

		report := ui.reports[0]
		if len(report.Resolutions) != 2 {
			t.Fatalf("expected 2 resolutions, got %d", len(report.Resolutions))
		}

		found := report.Resolutions[0]
		if !found.Found || found.Qualified != m.Path(filepath.Join(dir, "wood.png")) || found.Origin != m.Path(dir) {
			t.Fatalf("unexpected resolution for wood.png: %+v", found)
		}

		missing := report.Resolutions[1]
		if missing.Found || missing.Qualified != "missing.png" || missing.Origin != "" {
			t.Fatalf("unexpected resolution for missing.png: %+v", missing)
		}
	})

	t.Run("results keep input order under parallel workers", func(t *testing.T) {
		dir := t.TempDir()

		refs := make([]m.Reference, 20)
		for i := range refs {
			name := string(rune('a'+i)) + ".png"
			writeFile(t, filepath.Join(dir, name))
			refs[i] = m.Reference(name)
		}

		ui := &captureUI{}
		wf := NewWorkflow(&fakeLoader{}, newMemStore(), ui)

		err := wf.Resolve(context.Background(), ResolveArgs{
			ResolverArgs: ResolverArgs{Paths: []m.Path{m.Path(dir)}},
			Refs:         refs,
			Workers:      8,
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}

		for i, res := range ui.reports[0].Resolutions {
			if res.Ref != refs[i] {
				t.Fatalf("resolution %d out of order: got %s, want %s", i, res.Ref, refs[i])
			}
		}
	})

	t.Run("manifest seeds paths and root, CLI paths win", func(t *testing.T) {
		root := t.TempDir()
		override := t.TempDir()
		writeFile(t, filepath.Join(root, "textures", "wood.png"))
		writeFile(t, filepath.Join(override, "wood.png"))

		loader := &fakeLoader{manifest: m.Manifest{
			Root:   m.Path(root),
			Paths:  []m.Path{"textures"},
			Assets: []m.Asset{{Ref: "wood.png", Kind: m.KindTexture}},
		}}

		ui := &captureUI{}
		wf := NewWorkflow(loader, newMemStore(), ui)

		err := wf.Resolve(context.Background(), ResolveArgs{
			ResolverArgs: ResolverArgs{Paths: []m.Path{m.Path(override)}},
			Manifest:     "assets.yaml",
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}

		if len(loader.loaded) != 1 || loader.loaded[0] != "assets.yaml" {
			t.Fatalf("manifest not loaded: %v", loader.loaded)
		}

		res := ui.reports[0].Resolutions[0]
		if res.Origin != m.Path(override) {
			t.Fatalf("CLI path should shadow manifest path, origin = %s", res.Origin)
		}

		if res.Kind != m.KindTexture {
			t.Fatalf("manifest kind lost: %s", res.Kind)
		}
	})

	t.Run("saves the report when requested", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.png"))

		store := newMemStore()
		wf := NewWorkflow(&fakeLoader{}, store, &captureUI{})

		err := wf.Resolve(context.Background(), ResolveArgs{
			ResolverArgs: ResolverArgs{Paths: []m.Path{m.Path(dir)}},
			Refs:         []m.Reference{"a.png"},
			Reports:      "out",
		})
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}

		if _, ok := store.saved["out"]; !ok {
			t.Fatalf("report not saved")
		}
	})

	t.Run("fails with nothing to resolve", func(t *testing.T) {
		wf := NewWorkflow(&fakeLoader{}, newMemStore(), &captureUI{})

		err := wf.Resolve(context.Background(), ResolveArgs{})
		if err == nil {
			t.Fatalf("expected error for empty input")
		}
	})

	t.Run("propagates manifest load errors", func(t *testing.T) {
		loader := &fakeLoader{err: errors.New("boom")}
		wf := NewWorkflow(loader, newMemStore(), &captureUI{})

		err := wf.Resolve(context.Background(), ResolveArgs{Manifest: "assets.yaml"})
		if err == nil {
			t.Fatalf("expected manifest error")
		}
	})
}

func TestWorkflowCheck(t *testing.T) {
	t.Run("passes when everything resolves", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.png"))

		wf := NewWorkflow(&fakeLoader{}, newMemStore(), &captureUI{})

		err := wf.Check(context.Background(), ResolveArgs{
			ResolverArgs: ResolverArgs{Paths: []m.Path{m.Path(dir)}},
			Refs:         []m.Reference{"a.png"},
		})
		if err != nil {
			t.Fatalf("Check error: %v", err)
		}
	})

	t.Run("fails when a reference is missing", func(t *testing.T) {
		ui := &captureUI{}
		wf := NewWorkflow(&fakeLoader{}, newMemStore(), ui)

		err := wf.Check(context.Background(), ResolveArgs{
			Refs: []m.Reference{"missing.png"},
		})
		if err == nil {
			t.Fatalf("expected error for missing reference")
		}

		// The report is still displayed before the failure.
		if len(ui.reports) != 1 {
			t.Fatalf("expected report display before failure, got %d", len(ui.reports))
		}
	})
}

func TestWorkflowPaths(t *testing.T) {
	t.Run("renders root and explicit paths", func(t *testing.T) {
		ui := &captureUI{}
		wf := NewWorkflow(&fakeLoader{}, newMemStore(), ui)

		err := wf.Paths(context.Background(), PathsArgs{
			ResolverArgs: ResolverArgs{
				Root:  "/project",
				Paths: []m.Path{"textures", "/abs/shaders"},
			},
		})
		if err != nil {
			t.Fatalf("Paths error: %v", err)
		}

		state := ui.paths[0]
		if state.Root != "/project" {
			t.Fatalf("root = %q", state.Root)
		}

		if len(state.Explicit) != 2 || state.Explicit[0] != "textures" {
			t.Fatalf("explicit = %v", state.Explicit)
		}

		if state.Joined == "" {
			t.Fatalf("joined search order missing")
		}
	})
}

func TestWorkflowView(t *testing.T) {
	t.Run("displays the stored report", func(t *testing.T) {
		store := newMemStore()
		store.stored = m.Report{Resolutions: []m.Resolution{{Ref: "a.png", Found: true}}}

		ui := &captureUI{}
		wf := NewWorkflow(&fakeLoader{}, store, ui)

		if err := wf.View(context.Background(), ViewArgs{Reports: "out"}); err != nil {
			t.Fatalf("View error: %v", err)
		}

		if len(ui.reports) != 1 || ui.reports[0].Resolutions[0].Ref != "a.png" {
			t.Fatalf("stored report not displayed: %+v", ui.reports)
		}
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := newMemStore()
		store.err = errors.New("no report")

		wf := NewWorkflow(&fakeLoader{}, store, &captureUI{})

		if err := wf.View(context.Background(), ViewArgs{Reports: "out"}); err == nil {
			t.Fatalf("expected load error")
		}
	})
}

func TestWorkerCount(t *testing.T) {
	if workerCount(0) != 1 || workerCount(-3) != 1 {
		t.Fatalf("workerCount should floor at 1")
	}

	if workerCount(8) != 8 {
		t.Fatalf("workerCount should pass positive values through")
	}
}
