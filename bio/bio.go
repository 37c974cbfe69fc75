// Package bio provides the amino acid alphabet shared by all the
// model formats.
package bio

import "strings"

// AminoAcids is the amino acid order used by PAML, RAxML, PhyloBayes
// and P4 for rate matrices and composition vectors. It is never
// stored in the model files, all the readers and writers rely on it.
const AminoAcids = "ARNDCQEGHILKMFPSTWYV"

const (
	// NAminoAcid is the number of amino acids.
	NAminoAcid = len(AminoAcids)
	// NRate is the number of exchangeability rates of a symmetric
	// amino acid matrix (strict upper triangle).
	NRate = NAminoAcid * (NAminoAcid - 1) / 2
	// NParameter is the number of parameters of the model, rates
	// followed by composition.
	NParameter = NRate + NAminoAcid
)

// AminoAcidNum maps amino acid letters to their position in the
// alphabet.
var AminoAcidNum map[byte]int

func init() {
	AminoAcidNum = make(map[byte]int, NAminoAcid)
	for i := 0; i < NAminoAcid; i++ {
		AminoAcidNum[AminoAcids[i]] = i
	}
}

// Letters returns the alphabet as a slice of one-letter strings.
func Letters() []string {
	return strings.Split(AminoAcids, "")
}

// Header returns the alphabet separated by spaces, e.g. "A R N ...".
func Header() string {
	return strings.Join(Letters(), " ")
}

// Pair returns the two-letter name of the amino acid pair, e.g. "AR".
func Pair(i, j int) string {
	return string([]byte{AminoAcids[i], AminoAcids[j]})
}
