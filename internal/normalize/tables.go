package normalize

import (
	"os"

	"gopkg.in/yaml.v3"

	"sentimizer/internal/apperr"
)

// Load reads alias/blocklist tables from a YAML resource and builds a
// Normalizer. An empty path falls back to the built-in tables.
func Load(path string) (*Normalizer, error) {
	if path == "" {
		return New(DefaultTables()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Config(err, "read alias tables")
	}

	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, apperr.Config(err, "parse alias tables")
	}

	return New(tables), nil
}

// DefaultTables returns the built-in alias and blocklist tables, collected
// from recurring mis-transcriptions in tight-end podcast episodes.
func DefaultTables() Tables {
	return Tables{
		Aliases: map[string]string{
			"joker":           "Evan Engram",
			"enjoku":          "David Njoku",
			"injoku":          "David Njoku",
			"andoku":          "David Njoku",
			"jook":            "David Njoku",
			"jooku":           "David Njoku",
			"jookus":          "David Njoku",
			"craft":           "Tucker Kraft",
			"doug craft":      "Tucker Kraft",
			"tuckercraft":     "Tucker Kraft",
			"daltton concaid": "Dalton Kincaid",
			"dolan concade":   "Dalton Kincaid",
			"dinc concaid":    "Dalton Kincaid",
			"dan concade":     "Dalton Kincaid",
			"flaco":           "Joe Flacco",
			"kd":              "George Kittle",
			"george kd":       "George Kittle",
			"hawinson":        "TJ Hockenson",
			"hinson":          "TJ Hockenson",
			"hockson":         "TJ Hockenson",
			"t.j hawinson":    "TJ Hockenson",
			"t.j. hawinson":   "TJ Hockenson",
			"tj hawinson":     "TJ Hockenson",
			"hot tockinson":   "TJ Hockenson",
			"kelsey":          "Travis Kelce",
			"kyle pittz":      "Kyle Pitts",
			"leaporta":        "Sam LaPorta",
			"leapora":         "Sam LaPorta",
			"trey mc bry":     "Trey McBride",
			"zach z":          "Zach Ertz",
			"zack z":          "Zach Ertz",
			"zacks":           "Zach Ertz",
			"sonat":           "Ben Sinnott",
			"judy":            "Jerry Jeudy",
			"cmc":             "Christian McCaffrey",
		},
		Blocklist: []string{
			"rich dodson",
			"rich",
			"dodson",
			"matt o'hara",
			"matt",
			"o'hara",
			"g price",
			"g",
			"price",
			"garrett",
			"god",
			"nerd herd",
		},
	}
}
