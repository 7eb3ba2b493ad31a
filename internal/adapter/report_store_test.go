package adapter

import (
	"path/filepath"
	"testing"

	m "scout.dev/pkg/scout/internal/model"
)

func TestLocalReportStore_SaveLoad(t *testing.T) {
	t.Run("round-trips a report", func(t *testing.T) {
		store := NewLocalReportStore()
		dir := m.Path(filepath.Join(t.TempDir(), "out"))

		report := m.Report{
			Root:        "/project",
			SearchPaths: []m.Path{"textures", "/opt/shared"},
			Resolutions: []m.Resolution{
				{Ref: "wood.png", Kind: m.KindTexture, Qualified: "/project/textures/wood.png", Origin: "textures", Found: true},
				{Ref: "missing.oso", Kind: m.KindShader, Qualified: "missing.oso", Found: false},
			},
		}

		if err := store.Save(dir, report); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		loaded, err := store.Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if loaded.Root != report.Root {
			t.Fatalf("Load() root = %q, want %q", loaded.Root, report.Root)
		}

		if len(loaded.Resolutions) != 2 {
			t.Fatalf("Load() resolutions = %d, want 2", len(loaded.Resolutions))
		}

		if loaded.Resolutions[0] != report.Resolutions[0] {
			t.Fatalf("Load() resolution[0] = %+v, want %+v", loaded.Resolutions[0], report.Resolutions[0])
		}

		if loaded.FoundCount() != 1 || loaded.MissingCount() != 1 {
			t.Fatalf("Load() counts = %d found, %d missing", loaded.FoundCount(), loaded.MissingCount())
		}
	})

	t.Run("load fails when no report exists", func(t *testing.T) {
		store := NewLocalReportStore()

		if _, err := store.Load(m.Path(t.TempDir())); err == nil {
			t.Fatalf("Load() expected error for missing report")
		}
	})
}
