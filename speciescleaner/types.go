package speciescleaner

// Record is one row of the dataset reduced to the fields the classifier
// consumes. Values are the raw cell contents after normalization.
type Record struct {
	Species string `json:"species"`
	Genus   string `json:"genus,omitempty"`
}

// AnalysisReport aggregates a non-mutating pass over the dataset: how many
// rows fall into each outcome bucket, with a capped list of examples per
// bucket for the report.
type AnalysisReport struct {
	Total       int `json:"total"`
	Empty       int `json:"empty"`
	Placeholder int `json:"placeholder"`
	WithSuffix  int `json:"withSuffix"`
	Trinomial   int `json:"trinomial"`
	Clean       int `json:"clean"`

	PlaceholderExamples []string `json:"placeholderExamples,omitempty"`
	SuffixExamples      []string `json:"suffixExamples,omitempty"`
	TrinomialExamples   []string `json:"trinomialExamples,omitempty"`
	CleanExamples       []string `json:"cleanExamples,omitempty"`
}

// CleanStats aggregates the changes made by a cleaning pass, plus example
// lines collected after write-back for the report.
type CleanStats struct {
	Modified    int `json:"modified"`
	Suffixes    int `json:"suffixes"`
	Trinomials  int `json:"trinomials"`
	Invalidated int `json:"invalidated"`

	SuffixExamples    []string `json:"suffixExamples,omitempty"`
	TrinomialExamples []string `json:"trinomialExamples,omitempty"`
}

// ColumnConfig selects dataset columns by header name or 1-based "#N" index.
// Empty values fall back to automatic header detection.
type ColumnConfig struct {
	Species    string `json:"species"`
	Genus      string `json:"genus"`
	Subspecies string `json:"subspecies"`
	Suffix     string `json:"suffix"`
}

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	InputPath  string       `json:"inputPath"`
	OutputPath string       `json:"outputPath"`
	Columns    ColumnConfig `json:"columns"`
	// Workers bounds the cleaning worker pool; 0 means one worker per CPU.
	Workers int `json:"workers"`
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.InputPath == "" {
		c.InputPath = "metadata.csv"
	}
	if c.OutputPath == "" {
		c.OutputPath = "metadata_cleaned.csv"
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
}
