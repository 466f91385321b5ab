package risk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TermList is one scoring category: a list of terms and the fixed
// weight every matching term contributes.
type TermList struct {
	Terms  []string `yaml:"terms"`
	Weight int      `yaml:"weight"`
}

// RuleTable holds all scoring categories. Tables are loaded once at
// startup and never mutated afterwards, so a single table can be
// shared by any number of concurrent evaluations.
type RuleTable struct {
	Explicit TermList `yaml:"explicit"`
	Slang    TermList `yaml:"slang"`
	Symbols  TermList `yaml:"symbols"`
	Violence TermList `yaml:"violence"`

	// AdultDomains is matched against URLs only.
	AdultDomains TermList `yaml:"adult_domains"`

	// URLKeywordWeight is the weight applied when an explicit term
	// appears inside a URL (the term list itself is Explicit.Terms).
	URLKeywordWeight int `yaml:"url_keyword_weight"`
}

// DefaultTable returns the built-in rule table.
func DefaultTable() *RuleTable {
	return &RuleTable{
		Explicit: TermList{
			Weight: 20,
			Terms: []string{
				"porn", "xxx", "sex", "nude", "naked", "explicit", "adult",
				"nsfw", "hentai", "fuck", "shit", "bitch", "ass", "dick",
				"pussy", "cock", "cum", "masturbate", "orgasm", "rape",
			},
		},
		Slang: TermList{
			Weight: 10,
			Terms: []string{
				"netflix and chill", "hook up", "fwb", "dtf", "smash",
				"thot", "simp", "daddy", "kinky", "naughty",
			},
		},
		Symbols: TermList{
			Weight: 15,
			Terms: []string{
				"🍆", "🍑", "💦", "🔥", "👅", "🌶️", "🔞",
			},
		},
		Violence: TermList{
			Weight: 15,
			Terms: []string{
				"kill", "murder", "suicide", "death", "blood", "gore",
				"torture", "weapon", "gun", "knife", "bomb",
			},
		},
		AdultDomains: TermList{
			Weight: 100,
			Terms: []string{
				"pornhub", "xvideos", "xnxx", "redtube", "youporn",
			},
		},
		URLKeywordWeight: 30,
	}
}

// LoadTable reads a rule table from a YAML file. An empty path or a
// missing file falls back to the built-in defaults.
func LoadTable(path string) (*RuleTable, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTable(), nil
		}
		return nil, err
	}

	t := DefaultTable()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parsing rule table %s: %w", path, err)
	}
	return t, nil
}
