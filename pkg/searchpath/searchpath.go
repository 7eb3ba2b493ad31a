// Package searchpath resolves logical, possibly relative, asset
// references (textures, shaders, includes) against an ordered list of
// candidate directories.
//
// A SearchPaths value layers three collections: paths pushed
// programmatically (explicit), paths ingested once from an environment
// variable at construction time (environment), and the merged search
// view used by Exists and Qualify. Later additions shadow earlier ones:
// the merged view is searched in reverse insertion order, so explicit
// paths win over environment paths and the most recently pushed
// explicit path wins over all.
package searchpath

import (
	"os"
	"path/filepath"
	"strings"
)

// ListSeparator returns the platform's conventional separator for path
// lists (';' on Windows, ':' elsewhere).
func ListSeparator() rune {
	return rune(os.PathListSeparator)
}

// OSLPathSeparator returns the fixed ':' separator mandated by the OSL
// shader path convention, regardless of platform.
func OSLPathSeparator() rune {
	return ':'
}

// SearchPaths is an ordered collection of search directories with an
// optional root directory anchoring relative entries.
//
// A SearchPaths must not be copied by struct assignment; use Clone.
// Concurrent mutation requires external synchronization, but read-only
// queries (Exists, Qualify, ToString) on an unmutated value are safe
// from multiple goroutines.
type SearchPaths struct {
	rootPath    string
	explicit    []string
	environment []string

	// merged is maintained so that it always equals
	// environment ++ explicit.
	merged []string
}

// New returns an empty SearchPaths: no root, no paths.
func New() *SearchPaths {
	return &SearchPaths{}
}

// NewFromEnv returns a SearchPaths seeded from the named environment
// variable, split on sep. Relative and empty entries are discarded;
// the surviving absolute entries keep their original order. An unset
// variable yields an empty SearchPaths.
//
// The environment is read exactly once, here; later changes to the
// variable are not observed.
func NewFromEnv(envvar string, sep rune) *SearchPaths {
	sp := New()

	value, ok := os.LookupEnv(envvar)
	if !ok {
		return sp
	}

	for _, entry := range strings.Split(value, string(sep)) {
		if strings.TrimSpace(entry) == "" {
			continue
		}

		if !filepath.IsAbs(entry) {
			continue
		}

		sp.environment = append(sp.environment, entry)
		sp.merged = append(sp.merged, entry)
	}

	return sp
}

// Clone returns a deep copy sharing no mutable state with sp. Mutating
// either value never affects the other.
func (sp *SearchPaths) Clone() *SearchPaths {
	cp := &SearchPaths{rootPath: sp.rootPath}

	if len(sp.explicit) > 0 {
		cp.explicit = append([]string(nil), sp.explicit...)
	}

	if len(sp.environment) > 0 {
		cp.environment = append([]string(nil), sp.environment...)
	}

	if len(sp.merged) > 0 {
		cp.merged = append([]string(nil), sp.merged...)
	}

	return cp
}

// SetRootPath stores path, converted to the platform's preferred
// separators, as the resolution anchor for relative search paths and
// references. The path is not checked for existence.
func (sp *SearchPaths) SetRootPath(path string) {
	sp.rootPath = filepath.FromSlash(path)
}

// RootPath returns the stored root path, or "" if none is set.
func (sp *SearchPaths) RootPath() string {
	return sp.rootPath
}

// HasRootPath reports whether a root path is set.
func (sp *SearchPaths) HasRootPath() bool {
	return sp.rootPath != ""
}

// Clear wipes the root path and all three path collections, restoring
// the state of a freshly constructed SearchPaths.
func (sp *SearchPaths) Clear() {
	sp.rootPath = ""
	sp.explicit = nil
	sp.environment = nil
	sp.merged = nil
}

// Reset drops the explicit paths and restores the merged view to
// exactly the environment-seeded paths. The root path is kept.
func (sp *SearchPaths) Reset() {
	sp.explicit = nil
	sp.merged = append([]string(nil), sp.environment...)
}

// Empty reports whether no explicit paths are present. Environment
// paths are invisible to Empty, Size and At.
func (sp *SearchPaths) Empty() bool {
	return len(sp.explicit) == 0
}

// Size returns the number of explicit paths.
func (sp *SearchPaths) Size() int {
	return len(sp.explicit)
}

// At returns the i-th explicit path. It panics if i is out of range;
// callers must check i < Size().
func (sp *SearchPaths) At(i int) string {
	if i < 0 || i >= len(sp.explicit) {
		panic("searchpath: index out of range")
	}

	return sp.explicit[i]
}

// PushBack appends a single path, relative or absolute, to the explicit
// paths and to the merged search view. The path is not validated
// against the filesystem. It panics if path is empty; an empty search
// path is a caller contract breach, not recoverable state.
func (sp *SearchPaths) PushBack(path string) {
	if path == "" {
		panic("searchpath: empty path")
	}

	sp.explicit = append(sp.explicit, path)
	sp.merged = append(sp.merged, path)
}

// SplitAndPushBack splits paths on sep and pushes each token in order.
// Empty tokens are dropped rather than pushed, since PushBack rejects
// empty paths. A literally empty input pushes nothing.
func (sp *SearchPaths) SplitAndPushBack(paths string, sep rune) {
	if paths == "" {
		return
	}

	for _, entry := range strings.Split(paths, string(sep)) {
		if entry == "" {
			continue
		}

		sp.PushBack(entry)
	}
}

// Remove deletes the explicit path at index i and drops it from the
// merged search view, keeping the view equal to environment ++
// explicit. It panics if i is out of range.
func (sp *SearchPaths) Remove(i int) {
	if i < 0 || i >= len(sp.explicit) {
		panic("searchpath: index out of range")
	}

	sp.explicit = append(sp.explicit[:i:i], sp.explicit[i+1:]...)
	sp.merged = append(append([]string(nil), sp.environment...), sp.explicit...)
}

// Exists reports whether ref can be located. An absolute ref is checked
// directly against the filesystem, bypassing all search paths and the
// root. A relative ref is tried against the merged search view in
// reverse insertion order (last pushed wins), with relative search
// directories anchored at the root path when one is set; then against
// the root path itself; then against the current working directory.
//
// Stat failures of any kind, including permission errors, count as
// "does not exist".
func (sp *SearchPaths) Exists(ref string) bool {
	if !filepath.IsAbs(ref) {
		for i := len(sp.merged) - 1; i >= 0; i-- {
			dir := sp.anchored(sp.merged[i])
			if pathExists(filepath.Join(dir, ref)) {
				return true
			}
		}

		if sp.HasRootPath() && pathExists(filepath.Join(sp.rootPath, ref)) {
			return true
		}
	}

	return pathExists(ref)
}

// Qualify resolves ref to a fully qualified path using the same search
// order as Exists. It returns the first match converted to the
// platform's preferred separators, along with the raw search-path entry
// that produced it. The entry is "" when the match came from the root
// path or the working-directory fallback.
//
// Qualify never fails: when nothing matches it returns the cleaned
// original reference and an empty origin.
func (sp *SearchPaths) Qualify(ref string) (qualified, origin string) {
	if !filepath.IsAbs(ref) {
		for i := len(sp.merged) - 1; i >= 0; i-- {
			entry := sp.merged[i]

			candidate := filepath.Join(sp.anchored(entry), ref)
			if pathExists(candidate) {
				return filepath.FromSlash(candidate), entry
			}
		}

		if sp.HasRootPath() {
			candidate := filepath.Join(sp.rootPath, ref)
			if pathExists(candidate) {
				return filepath.FromSlash(candidate), ""
			}
		}
	}

	return filepath.Clean(filepath.FromSlash(ref)), ""
}

// ToString joins the root path (if set) and the merged search view into
// a single sep-separated string, optionally reversed. Relative entries
// are prefixed with the root path; without a root they are skipped,
// since they cannot be expressed as absolute. Diagnostic output only,
// not meant for round-trip parsing.
func (sp *SearchPaths) ToString(sep rune, reversed bool) string {
	paths := make([]string, 0, len(sp.merged)+1)

	if sp.HasRootPath() {
		paths = append(paths, sp.rootPath)
	}

	paths = append(paths, sp.merged...)

	if reversed {
		for i, j := 0, len(paths)-1; i < j; i, j = i+1, j-1 {
			paths[i], paths[j] = paths[j], paths[i]
		}
	}

	var b strings.Builder

	for _, p := range paths {
		if !filepath.IsAbs(p) {
			if !sp.HasRootPath() {
				continue
			}

			p = filepath.Join(sp.rootPath, p)
		}

		if b.Len() > 0 {
			b.WriteRune(sep)
		}

		b.WriteString(filepath.FromSlash(p))
	}

	return b.String()
}

// anchored prefixes a relative search directory with the root path when
// one is set.
func (sp *SearchPaths) anchored(dir string) string {
	if sp.HasRootPath() && !filepath.IsAbs(dir) {
		return filepath.Join(sp.rootPath, dir)
	}

	return dir
}

// pathExists treats any stat error, "absent" and "inaccessible" alike,
// as non-existence.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
