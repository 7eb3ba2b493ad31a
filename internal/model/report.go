package model

// Resolution is the outcome of qualifying a single reference.
type Resolution struct {
	Ref       Reference `yaml:"ref"`
	Kind      Kind      `yaml:"kind,omitempty"`
	Qualified Path      `yaml:"qualified"`
	Origin    Path      `yaml:"origin,omitempty"` // search-path entry that matched; empty for root/cwd matches
	Found     bool      `yaml:"found"`
}

// Report aggregates the resolutions of one batch run.
type Report struct {
	Root        Path         `yaml:"root,omitempty"`
	SearchPaths []Path       `yaml:"search_paths,omitempty"`
	Resolutions []Resolution `yaml:"resolutions"`
}

// FoundCount counts the resolutions that located a file.
func (r Report) FoundCount() int {
	n := 0

	for _, res := range r.Resolutions {
		if res.Found {
			n++
		}
	}

	return n
}

// MissingCount counts the resolutions that did not locate a file.
func (r Report) MissingCount() int {
	return len(r.Resolutions) - r.FoundCount()
}
