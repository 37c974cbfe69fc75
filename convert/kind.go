package convert

import (
	"fmt"
	"strings"

	"bitbucket.org/Davydov/aaconv/aamodel"
)

// Kind is a model file format.
type Kind int

// Supported formats.
const (
	Unknown Kind = iota
	// P4 is the summary of P4 MCMC samples (input only).
	P4
	// PAML is the packed lower triangle format (input and output).
	PAML
	// RAxML is the full matrix format (input and output).
	RAxML
	// PhyloBayes is the upper triangle listing (output only).
	PhyloBayes
)

var kindNames = map[Kind]string{
	P4:         "p4",
	PAML:       "paml",
	RAxML:      "raxml",
	PhyloBayes: "phylobayes",
}

// aliases are descriptive names of the formats.
var aliases = map[string]Kind{
	"summary":            P4,
	"packed-linear":      PAML,
	"full-matrix":        RAxML,
	"triangular-listing": PhyloBayes,
}

var (
	// InputKinds are formats which can be read.
	InputKinds = []Kind{P4, PAML, RAxML}
	// OutputKinds are formats which can be written.
	OutputKinds = []Kind{PAML, RAxML, PhyloBayes}
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsInput returns true if models can be read in this format.
func (k Kind) IsInput() bool {
	return k == P4 || k == PAML || k == RAxML
}

// IsOutput returns true if models can be written in this format.
func (k Kind) IsOutput() bool {
	return k == PAML || k == RAxML || k == PhyloBayes
}

func lookup(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return aliases[s]
}

// expecting returns a list of formats for error messages, e.g.
// "either 'p4', 'paml' or 'raxml'".
func expecting(kinds []Kind) string {
	q := make([]string, len(kinds))
	for i, k := range kinds {
		q[i] = "'" + k.String() + "'"
	}
	return "either " + strings.Join(q[:len(q)-1], ", ") + " or " + q[len(q)-1]
}

// ParseInputKind returns input format by name.
func ParseInputKind(s string) (Kind, error) {
	if k := lookup(s); k.IsInput() {
		return k, nil
	}
	return Unknown, fmt.Errorf("%w: input format %q, expecting %s",
		aamodel.ErrUnsupportedFormat, s, expecting(InputKinds))
}

// ParseOutputKind returns output format by name.
func ParseOutputKind(s string) (Kind, error) {
	if k := lookup(s); k.IsOutput() {
		return k, nil
	}
	return Unknown, fmt.Errorf("%w: output format %q, expecting %s",
		aamodel.ErrUnsupportedFormat, s, expecting(OutputKinds))
}
