package main

import (
	"encoding/json"
	"os"

	"bitbucket.org/Davydov/aaconv/p4"
)

// RunSummary is storing aaconv run summary information.
type RunSummary struct {
	// Version stores aaconv version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Input is the input format.
	Input string `json:"input"`
	// Output is the output format.
	Output string `json:"output"`
	// Source is the model file or the P4 run directory.
	Source string `json:"source"`
	// OutputFile is empty if the model was written to stdout.
	OutputFile string `json:"outputFile,omitempty"`
	// RawFreqSum is the sum of frequencies before normalization.
	RawFreqSum float64 `json:"rawFreqSum"`
	// FreqAdjusted is true if the last frequency was recomputed.
	FreqAdjusted bool `json:"freqAdjusted"`
	// StoreKey is the database key if the model was saved.
	StoreKey string `json:"storeKey,omitempty"`
	// MCMC is the P4 samples summary.
	MCMC *p4.Summary `json:"mcmc,omitempty"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
}

// saveJSON writes the summary to a file, errors are only logged.
func saveJSON(fn string, summary *RunSummary) {
	j, err := json.Marshal(summary)
	if err != nil {
		log.Error(err)
		return
	}
	log.Debug(string(j))
	f, err := os.Create(fn)
	if err != nil {
		log.Error("Error creating json output file:", err)
		return
	}
	defer f.Close()
	if _, err = f.Write(j); err != nil {
		log.Error("Error writing json output file:", err)
	}
}
