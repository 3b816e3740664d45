package store

// Manifest describes a data bundle and how to interpret it.
type Manifest struct {
	FormatVersion int    `json:"format_version"`
	ID            string `json:"id"`
	CreatedAt     string `json:"created_at"`
	Source        string `json:"source"`
	Senses        int    `json:"senses"`
	Sememes       int    `json:"sememes"`
	Pairs         int    `json:"pairs"`
	SensesFile    string `json:"senses_file"`
	SememesFile   string `json:"sememes_file"`
	PairsFile     string `json:"pairs_file"`
	SensesHash    string `json:"senses_hash"`
}

// SememeEntry represents one row in sememes.jsonl.
type SememeEntry struct {
	ID   string `json:"id"`
	Freq int    `json:"freq"`
}

// PairEntry represents one row in sememe_sim.jsonl.
type PairEntry struct {
	A   string  `json:"a"`
	B   string  `json:"b"`
	Sim float64 `json:"sim"`
}

const (
	manifestFile       = "manifest.json"
	defaultSensesFile  = "senses.jsonl"
	defaultSememesFile = "sememes.jsonl"
	defaultPairsFile   = "sememe_sim.jsonl"

	formatVersion = 1
)

func (m *Manifest) applyDefaults() {
	if m.SensesFile == "" {
		m.SensesFile = defaultSensesFile
	}
	if m.SememesFile == "" {
		m.SememesFile = defaultSememesFile
	}
	if m.PairsFile == "" {
		m.PairsFile = defaultPairsFile
	}
}
