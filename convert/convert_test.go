package convert

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"bitbucket.org/Davydov/aaconv/aamodel"
	"bitbucket.org/Davydov/aaconv/bio"
	"bitbucket.org/Davydov/aaconv/triangle"
)

// writePAML writes 1, 2, ..., 190 and twenty 0.05 to dir/name.
func writePAML(tst *testing.T, dir, name string) {
	var b strings.Builder
	for i := 1; i <= 190; i++ {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(' ')
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Repeat("0.05 ", 20))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0666); err != nil {
		tst.Fatal(err)
	}
}

func parseFloats(tst *testing.T, fields []string) []float64 {
	v := make([]float64, len(fields))
	for i, f := range fields {
		var err error
		v[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			tst.Fatal(err)
		}
	}
	return v
}

func TestPAMLToPhyloBayes(tst *testing.T) {
	dir := tst.TempDir()
	writePAML(tst, dir, "seq.dat")
	in, err := Import(&ImportSettings{Kind: PAML, Dir: dir, Model: "seq.dat", Burnin: -1})
	if err != nil {
		tst.Fatal("Import error:", err)
	}
	if in.Source != filepath.Join(dir, "seq.dat") {
		tst.Errorf("Unexpected source %s", in.Source)
	}
	out := filepath.Join(dir, "seq.pb")
	if err = Export(in.Model, &ExportSettings{Kind: PhyloBayes, Path: out}, nil); err != nil {
		tst.Fatal("Export error:", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		tst.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	if len(lines) != 21 {
		tst.Fatalf("Expected 21 lines, got %d", len(lines))
	}
	var upper []float64
	for _, l := range lines[1:20] {
		upper = append(upper, parseFloats(tst, strings.Fields(l))...)
	}
	lower := triangle.UpperToLower(bio.NAminoAcid, upper)
	for i, v := range lower {
		if v != float64(i+1) {
			tst.Errorf("Value %d: expected %d, got %v", i, i+1, v)
		}
	}
	freq := strings.Fields(lines[20])
	if len(freq) != 20 {
		tst.Fatalf("Expected 20 frequencies, got %d", len(freq))
	}
	for _, f := range freq {
		if f != "0.05" {
			tst.Errorf("Expected 0.05, got %s", f)
		}
	}
}

func TestPAMLRoundTrip(tst *testing.T) {
	dir := tst.TempDir()
	writePAML(tst, dir, "seq.dat")
	in, err := Import(&ImportSettings{Kind: PAML, Dir: dir, Model: "seq.dat", Burnin: -1})
	if err != nil {
		tst.Fatal(err)
	}
	for _, kind := range []Kind{PAML, RAxML} {
		out := filepath.Join(dir, "out."+kind.String())
		if err = Export(in.Model, &ExportSettings{Kind: kind, Path: out}, nil); err != nil {
			tst.Fatal(err)
		}
		back, err := Import(&ImportSettings{Kind: kind, Model: out, Burnin: -1})
		if err != nil {
			tst.Fatalf("%s: error reading back: %v", kind, err)
		}
		for i, r := range in.Model.Rates {
			if math.Abs(back.Model.Rates[i]-r) > 0.0005 {
				tst.Errorf("%s: rate %d: %v != %v", kind, i, back.Model.Rates[i], r)
			}
		}
	}
}

func TestImportErrors(tst *testing.T) {
	dir := tst.TempDir()
	writePAML(tst, dir, "seq.dat")

	_, err := Import(&ImportSettings{Kind: PhyloBayes, Dir: dir, Model: "seq.dat"})
	if !errors.Is(err, aamodel.ErrUnsupportedFormat) {
		tst.Errorf("Expected unsupported format, got %v", err)
	}
	_, err = Import(&ImportSettings{Kind: PAML, Dir: filepath.Join(dir, "nodir"), Model: "seq.dat"})
	if !errors.Is(err, aamodel.ErrPathNotFound) {
		tst.Errorf("Expected path not found for missing directory, got %v", err)
	}
	_, err = Import(&ImportSettings{Kind: PAML, Dir: filepath.Join(dir, "seq.dat"), Model: "seq.dat"})
	if !errors.Is(err, aamodel.ErrPathNotFound) {
		tst.Errorf("Expected path not found for a file as directory, got %v", err)
	}
	_, err = Import(&ImportSettings{Kind: PAML, Dir: dir, Model: "nofile.dat", Burnin: -1})
	if !errors.Is(err, aamodel.ErrPathNotFound) {
		tst.Errorf("Expected path not found for missing model, got %v", err)
	}
	_, err = Import(&ImportSettings{Kind: RAxML, Dir: dir, Burnin: -1})
	if !errors.Is(err, aamodel.ErrPathNotFound) {
		tst.Errorf("Expected path not found without model, got %v", err)
	}
	_, err = Import(&ImportSettings{Kind: RAxML, Dir: dir, Model: "seq.dat", Burnin: -1})
	if !errors.Is(err, aamodel.ErrInvalidElementCount) {
		tst.Errorf("Expected invalid element count, got %v", err)
	}
	_, err = Import(&ImportSettings{Kind: P4, Dir: dir, Burnin: 10})
	if !errors.Is(err, aamodel.ErrPathNotFound) {
		tst.Errorf("Expected path not found for missing P4 files, got %v", err)
	}
}

func TestExportStdout(tst *testing.T) {
	dir := tst.TempDir()
	writePAML(tst, dir, "seq.dat")
	in, err := Import(&ImportSettings{Kind: PAML, Dir: dir, Model: "seq.dat", Burnin: -1})
	if err != nil {
		tst.Fatal(err)
	}
	var b bytes.Buffer
	if err = Export(in.Model, &ExportSettings{Kind: PAML}, &b); err != nil {
		tst.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "1.0\n2.0   3.0\n") || !strings.HasSuffix(b.String(), "0.05\n") {
		tst.Errorf("Unexpected stdout output:\n%s", b.String())
	}
	if err = Export(in.Model, &ExportSettings{Kind: P4}, &b); !errors.Is(err, aamodel.ErrUnsupportedFormat) {
		tst.Errorf("Expected unsupported format, got %v", err)
	}
}

func TestExportOverwrite(tst *testing.T) {
	dir := tst.TempDir()
	writePAML(tst, dir, "seq.dat")
	in, err := Import(&ImportSettings{Kind: PAML, Dir: dir, Model: "seq.dat", Burnin: -1})
	if err != nil {
		tst.Fatal(err)
	}
	out := filepath.Join(dir, "out.raxml")
	if err = os.WriteFile(out, []byte(strings.Repeat("garbage\n", 1000)), 0666); err != nil {
		tst.Fatal(err)
	}
	if err = Export(in.Model, &ExportSettings{Kind: RAxML, Path: out}, nil); err != nil {
		tst.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		tst.Fatal(err)
	}
	if n := strings.Count(string(b), "\n"); n != 420 {
		tst.Errorf("Expected 420 lines, got %d", n)
	}
}

func TestExportConfirm(tst *testing.T) {
	dir := tst.TempDir()
	writePAML(tst, dir, "seq.dat")
	in, err := Import(&ImportSettings{Kind: PAML, Dir: dir, Model: "seq.dat", Burnin: -1})
	if err != nil {
		tst.Fatal(err)
	}
	out := filepath.Join(dir, "seq.pb")
	var confirm, stdout bytes.Buffer
	err = Export(in.Model, &ExportSettings{Kind: PhyloBayes, Path: out, Confirm: &confirm}, &stdout)
	if err != nil {
		tst.Fatal(err)
	}
	if exp := "Your data was converted and saved in " + out + "\n"; confirm.String() != exp {
		tst.Errorf("Expected confirmation '%s', got '%s'", exp, confirm.String())
	}
	if stdout.Len() != 0 {
		tst.Errorf("Nothing should be written to stdout, got %d bytes", stdout.Len())
	}

	// model written to stdout is its own confirmation
	confirm.Reset()
	err = Export(in.Model, &ExportSettings{Kind: PhyloBayes, Confirm: &confirm}, &stdout)
	if err != nil {
		tst.Fatal(err)
	}
	if confirm.Len() != 0 || stdout.Len() == 0 {
		tst.Errorf("Unexpected output: confirmation '%s', %d bytes of model", confirm.String(), stdout.Len())
	}
}

func TestResolve(tst *testing.T) {
	if p := Resolve("dir", "m.dat"); p != filepath.Join("dir", "m.dat") {
		tst.Errorf("Unexpected path %s", p)
	}
	if p := Resolve("dir", "/tmp/m.dat"); p != "/tmp/m.dat" {
		tst.Errorf("Absolute path changed: %s", p)
	}
	if p := Resolve("dir", ""); p != "" {
		tst.Errorf("Empty path changed: %s", p)
	}
}
