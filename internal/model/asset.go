// Package model defines the data structures for asset resolution.
package model

// Path represents a file system path.
type Path string

// Reference is a logical asset reference, possibly relative, as it
// appears in a scene file or on the command line.
type Reference string

// Kind categorizes an asset reference.
type Kind string

const (
	// KindTexture marks image assets referenced by materials.
	KindTexture Kind = "texture"

	// KindShader marks compiled or source shader assets.
	KindShader Kind = "shader"

	// KindInclude marks shader include files.
	KindInclude Kind = "include"

	// KindOther marks references with no declared category.
	KindOther Kind = "other"
)

// Asset pairs a reference with its declared kind.
type Asset struct {
	Ref  Reference `yaml:"ref"`
	Kind Kind      `yaml:"kind,omitempty"`
}

// Manifest is the parsed form of an asset manifest file: references to
// resolve plus optional search-path seeds.
type Manifest struct {
	Root   Path    `yaml:"root,omitempty"`
	Paths  []Path  `yaml:"paths,omitempty"`
	Assets []Asset `yaml:"assets"`
}
