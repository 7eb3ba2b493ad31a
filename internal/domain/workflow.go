// Package domain implements the resolution workflows behind the scout
// CLI commands.
package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"scout.dev/pkg/scout/internal/adapter"
	"scout.dev/pkg/scout/internal/controller"
	m "scout.dev/pkg/scout/internal/model"
	"scout.dev/pkg/scout/pkg/searchpath"
)

// ResolverArgs describes how to assemble the resolver shared by all
// workflows: an optional root, explicit search paths, and an optional
// environment variable to seed from.
type ResolverArgs struct {
	Root      m.Path
	Paths     []m.Path
	EnvVar    string
	Separator rune
}

// ResolveArgs contains the arguments for a batch resolution run.
type ResolveArgs struct {
	ResolverArgs

	Refs     []m.Reference
	Manifest m.Path
	Workers  int
	Reports  m.Path // save the report here when non-empty
}

// PathsArgs contains the arguments for rendering resolver state.
type PathsArgs struct {
	ResolverArgs

	Reversed bool
}

// ViewArgs contains the arguments for viewing a saved report.
type ViewArgs struct {
	Reports m.Path
}

// Workflow is the use-case layer wired into the CLI commands.
type Workflow interface {
	// Resolve qualifies every reference and displays (and optionally
	// persists) the resulting report. Misses are not errors.
	Resolve(ctx context.Context, args ResolveArgs) error

	// Check behaves like Resolve but fails when any reference cannot
	// be located, so the CLI exits non-zero.
	Check(ctx context.Context, args ResolveArgs) error

	// Paths displays the resolver state built from args.
	Paths(ctx context.Context, args PathsArgs) error

	// View displays a previously saved report.
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	manifests adapter.ManifestLoader
	reports   adapter.ReportStore
	ui        controller.UI
}

// NewWorkflow creates a Workflow instance with the provided
// dependencies.
func NewWorkflow(loader adapter.ManifestLoader, store adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		manifests: loader,
		reports:   store,
		ui:        ui,
	}
}

func (w *workflow) Resolve(ctx context.Context, args ResolveArgs) error {
	report, err := w.resolveAll(ctx, args)
	if err != nil {
		return err
	}

	if args.Reports != "" {
		if err := w.reports.Save(args.Reports, report); err != nil {
			slog.Error("failed to save report", "dir", args.Reports, "error", err)
			return fmt.Errorf("save report: %w", err)
		}

		slog.Info("saved report", "dir", args.Reports, "resolutions", len(report.Resolutions))
	}

	return w.ui.DisplayResolutions(ctx, report)
}

func (w *workflow) Check(ctx context.Context, args ResolveArgs) error {
	report, err := w.resolveAll(ctx, args)
	if err != nil {
		return err
	}

	if err := w.ui.DisplayResolutions(ctx, report); err != nil {
		return err
	}

	if missing := report.MissingCount(); missing > 0 {
		return fmt.Errorf("%d of %d references not found", missing, len(report.Resolutions))
	}

	return nil
}

func (w *workflow) Paths(ctx context.Context, args PathsArgs) error {
	sp, _, err := w.buildResolver(args.ResolverArgs, "")
	if err != nil {
		return err
	}

	explicit := make([]string, sp.Size())
	for i := range explicit {
		explicit[i] = sp.At(i)
	}

	return w.ui.DisplayPaths(ctx, controller.PathsState{
		Root:     sp.RootPath(),
		Explicit: explicit,
		Joined:   sp.ToString(searchpath.ListSeparator(), args.Reversed),
	})
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.reports.Load(args.Reports)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	return w.ui.DisplayResolutions(ctx, report)
}

// resolveAll builds the resolver, gathers the references from CLI args
// and the manifest, and qualifies them in parallel. The resolver is
// never mutated while workers run; concurrent read-only queries are
// safe.
func (w *workflow) resolveAll(ctx context.Context, args ResolveArgs) (m.Report, error) {
	sp, assets, err := w.buildResolver(args.ResolverArgs, args.Manifest)
	if err != nil {
		return m.Report{}, err
	}

	for _, ref := range args.Refs {
		assets = append(assets, m.Asset{Ref: ref, Kind: m.KindOther})
	}

	if len(assets) == 0 {
		return m.Report{}, fmt.Errorf("nothing to resolve: no references given and no manifest assets")
	}

	resolutions := make([]m.Resolution, len(assets))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workerCount(args.Workers))

	for i, asset := range assets {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			resolutions[i] = resolveOne(sp, asset)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("resolution interrupted", "error", err)
		return m.Report{}, fmt.Errorf("resolve references: %w", err)
	}

	explicit := make([]m.Path, sp.Size())
	for i := range explicit {
		explicit[i] = m.Path(sp.At(i))
	}

	return m.Report{
		Root:        m.Path(sp.RootPath()),
		SearchPaths: explicit,
		Resolutions: resolutions,
	}, nil
}

// buildResolver assembles the SearchPaths from the manifest seeds (if
// any) and the caller-supplied arguments. Caller paths are pushed after
// manifest paths, so they shadow them under last-added-wins.
func (w *workflow) buildResolver(args ResolverArgs, manifestPath m.Path) (*searchpath.SearchPaths, []m.Asset, error) {
	separator := args.Separator
	if separator == 0 {
		separator = searchpath.ListSeparator()
	}

	var sp *searchpath.SearchPaths
	if args.EnvVar != "" {
		sp = searchpath.NewFromEnv(args.EnvVar, separator)
	} else {
		sp = searchpath.New()
	}

	var assets []m.Asset

	root := args.Root

	if manifestPath != "" {
		manifest, err := w.manifests.Load(manifestPath)
		if err != nil {
			return nil, nil, err
		}

		if root == "" {
			root = manifest.Root
		}

		for _, p := range manifest.Paths {
			sp.PushBack(string(p))
		}

		assets = manifest.Assets
	}

	if root != "" {
		sp.SetRootPath(string(root))
	}

	for _, p := range args.Paths {
		sp.PushBack(string(p))
	}

	return sp, assets, nil
}

func resolveOne(sp *searchpath.SearchPaths, asset m.Asset) m.Resolution {
	ref := string(asset.Ref)
	qualified, origin := sp.Qualify(ref)

	return m.Resolution{
		Ref:       asset.Ref,
		Kind:      asset.Kind,
		Qualified: m.Path(qualified),
		Origin:    m.Path(origin),
		Found:     sp.Exists(ref),
	}
}

func workerCount(workers int) int {
	if workers < 1 {
		return 1
	}

	return workers
}
