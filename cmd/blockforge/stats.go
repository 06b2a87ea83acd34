package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alnah/go-blockforge"
)

// runStatsCmd prints readability statistics for each input.
func runStatsCmd(args []string, env *Environment) error {
	flags, inputs, err := parseStatsFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return ErrNoInput
	}

	d, l, err := setupAnalysis(flags.common, designFlags{layout: flags.layout}, flags.wpm, env)
	if err != nil {
		return err
	}

	type fileStats struct {
		Path  string           `json:"path"`
		Stats blockforge.Stats `json:"stats"`
	}
	all := make([]fileStats, 0, len(inputs))
	for _, in := range inputs {
		if in != stdinPath && !isInputFile(in) {
			return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(in))
		}
		s, err := loadState(d, in, l, env)
		if err != nil {
			return err
		}
		all = append(all, fileStats{Path: in, Stats: d.Analyze(s)})
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}
	for i, fs := range all {
		if i > 0 {
			fmt.Fprintln(env.Stdout)
		}
		printStats(env.Stdout, fs.Path, fs.Stats)
	}
	return nil
}

func printStats(w io.Writer, path string, s blockforge.Stats) {
	fmt.Fprintln(w, path)
	fmt.Fprintf(w, "  Words:              %d\n", s.WordCount)
	fmt.Fprintf(w, "  Sentences:          %d\n", s.SentenceCount)
	fmt.Fprintf(w, "  Reading time:       %d min\n", s.ReadingTime)
	fmt.Fprintf(w, "  Reading level:      %s\n", s.ReadingLevel)
	fmt.Fprintf(w, "  Average grade:      %.1f\n", s.AvgGradeLevel)
	fmt.Fprintf(w, "  Flesch-Kincaid:     %.1f\n", s.FleschKincaid)
	fmt.Fprintf(w, "  Flesch reading:     %.1f\n", s.FleschReading)
	fmt.Fprintf(w, "  Gunning fog:        %.1f\n", s.GunningFog)
	fmt.Fprintf(w, "  SMOG:               %.1f\n", s.SMOG)
	fmt.Fprintf(w, "  Coleman-Liau:       %.1f\n", s.ColemanLiau)
	fmt.Fprintf(w, "  ARI:                %.1f\n", s.ARI)
	fmt.Fprintf(w, "  Complex words:      %d\n", s.ComplexWords)
	fmt.Fprintf(w, "  Words per sentence: %.1f\n", s.AvgSentenceLen)
}
