package cache

// Keyer derives cache keys.
type Keyer interface {
	// ChartKey identifies a chart decoded from source bytes with the given
	// loader settings.
	ChartKey(sourceHash string, opts ChartKeyOpts) string

	// ArtifactKey identifies rendered instructions for a chart.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string
}

// ChartKeyOpts lists every loader setting that changes the decoded chart.
type ChartKeyOpts struct {
	Loader    string `json:"loader"`
	Purl      string `json:"purl"`
	Tolerance int    `json:"tolerance,omitempty"`
	CellSize  int    `json:"cell_size,omitempty"`
}

// ArtifactKeyOpts lists every render setting that changes the output.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Rows   []int  `json:"rows,omitempty"`
}

// DefaultKeyer builds keys of the form "kind:sha256(...)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ChartKey implements Keyer.
func (DefaultKeyer) ChartKey(sourceHash string, opts ChartKeyOpts) string {
	return hashKey("chart", sourceHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", chartHash, opts)
}

var _ Keyer = DefaultKeyer{}
