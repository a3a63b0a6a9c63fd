package cache

import "time"

// Default lifetimes of cached entries. Keys are content addressed, so a
// long TTL never serves stale data; it only bounds disk and memory use.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// KeyVersion is mixed into every key. Bump it when the layout algorithm or an
// output format changes so old entries stop matching.
const KeyVersion = "v1"

// LayoutKeyOpts are the inputs besides the tree that determine a layout.
type LayoutKeyOpts struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	ColorBy string  `json:"color_by"`
}

// ArtifactKeyOpts are the inputs besides the layout that determine a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Scale        float64 `json:"scale"`
	Legend       bool    `json:"legend"`
	MinLabelSide float64 `json:"min_label_side"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout of the tree whose canonical
	// encoding hashes to treeHash.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
	// ArtifactKey returns the key of an artifact rendered from the layout
	// whose encoding hashes to layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the content hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() DefaultKeyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", KeyVersion, treeHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", KeyVersion, layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
