/*
Aaconv converts amino acid substitution models between formats used
by phylogenetic software. A model can be read from PAML or RAxML model
files or summarized from P4 MCMC samples, and written in PAML, RAxML
or PhyloBayes format.

The basic usage of aaconv looks like this:

	aaconv convert paml phylobayes -m gcpREV.dat -o gcpREV.pb

, this will read a PAML model and write it in the PhyloBayes format.
To summarize a P4 run discarding 10% of samples:

	aaconv convert p4 paml -d run1 -b 10 -o p4model.dat

Converted models can be kept in a database:

	aaconv convert raxml paml -m LG.raxml --store models.db --key LG
	aaconv list --store models.db
	aaconv export raxml --store models.db --key LG -o LG.txt

To see all the options run:

	aaconv --help-long
*/
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/aaconv/aamodel"
	"bitbucket.org/Davydov/aaconv/convert"
	"bitbucket.org/Davydov/aaconv/modelplot"
	"bitbucket.org/Davydov/aaconv/store"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("aaconv")
var formatter = logging.MustStringFormatter(`%{message}`)

// modules are names of all package loggers.
var modules = []string{"aaconv", "aamodel", "convert", "p4", "paml", "raxml", "store"}

// command-line options
var (
	// application
	app = kingpin.New("aaconv", "amino acid substitution model format converter").Version(version)

	// logging
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")

	// convert
	convertCmd = app.Command("convert", "convert a model to another format")
	inFormat   = convertCmd.Arg("input", "input format: p4 (summary), paml (packed-linear) or raxml (full-matrix)").Required().String()
	outFormat  = convertCmd.Arg("output", "output format: paml (packed-linear), raxml (full-matrix) or phylobayes (triangular-listing)").Required().String()
	burnin     = convertCmd.Flag("burnin", "percentage of P4 MCMC samples to discard (0-100)").Short('b').Default("-1").Int()
	modelF     = convertCmd.Flag("model", "amino acid model in paml or raxml format").Short('m').String()
	outF       = convertCmd.Flag("outputfile", "output model file, stdout by default").Short('o').String()
	dirPath    = convertCmd.Flag("dirpath", "directory containing the analysis, relative paths are resolved against it").Short('d').Default(".").String()
	rateScale  = convertCmd.Flag("ratescale", "P4 exchangeabilities multiplier").Default("10000").Float64()
	noFreq     = convertCmd.Flag("nofreq", "don't write composition line to phylobayes output").Bool()
	storeF     = convertCmd.Flag("store", "save the model to a database").String()
	storeKey   = convertCmd.Flag("key", "model name in the database (default: input format and model file name)").String()
	plotF      = convertCmd.Flag("plot", "save composition bar chart to a file (png, svg, pdf)").String()
	heatmapF   = convertCmd.Flag("heatmap", "save exchangeability heat map to a file (png, svg, pdf)").String()
	jsonF      = convertCmd.Flag("json", "write json run summary to a file").String()

	// list
	listCmd    = app.Command("list", "list models saved in a database")
	listStoreF = listCmd.Flag("store", "model database").Required().String()

	// export
	exportCmd    = app.Command("export", "write a model saved in a database")
	exportFormat = exportCmd.Arg("output", "output format: paml, raxml or phylobayes").Required().String()
	exportStoreF = exportCmd.Flag("store", "model database").Required().String()
	exportKey    = exportCmd.Flag("key", "model name in the database").Required().String()
	exportOutF   = exportCmd.Flag("outputfile", "output model file, stdout by default").Short('o').String()
	exportNoFreq = exportCmd.Flag("nofreq", "don't write composition line to phylobayes output").Bool()
)

// convertSettings stores settings of a conversion run.
type convertSettings struct {
	input  string
	output string

	dir    string
	model  string
	out    string
	burnin int
	scale  float64
	noFreq bool

	store    string
	key      string
	plot     string
	heatmap  string
	jsonFile string

	// confirm receives the confirmation after a file is written.
	confirm io.Writer
}

// newConvertSettings creates convertSettings from the command line
// parameters (global variables).
func newConvertSettings() *convertSettings {
	return &convertSettings{
		input:  *inFormat,
		output: *outFormat,

		dir:    *dirPath,
		model:  *modelF,
		out:    *outF,
		burnin: *burnin,
		scale:  *rateScale,
		noFreq: *noFreq,

		store:    *storeF,
		key:      *storeKey,
		plot:     *plotF,
		heatmap:  *heatmapF,
		jsonFile: *jsonF,

		confirm: os.Stderr,
	}
}

// defaultKey returns a database key for an imported model.
func defaultKey(kind convert.Kind, source string) string {
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	return kind.String() + ":" + filepath.Base(source)
}

// runConvert reads a model, writes it in the output format and
// produces all the requested side outputs.
func runConvert(s *convertSettings, stdout io.Writer) (summary *RunSummary, err error) {
	startTime := time.Now()

	inKind, err := convert.ParseInputKind(s.input)
	if err != nil {
		return nil, err
	}
	outKind, err := convert.ParseOutputKind(s.output)
	if err != nil {
		return nil, err
	}
	if s.burnin < -1 || s.burnin > 100 {
		return nil, fmt.Errorf("%w: %d", aamodel.ErrInvalidBurnin, s.burnin)
	}
	log.Infof("Converting %s to %s", inKind, outKind)

	in, err := convert.Import(&convert.ImportSettings{
		Kind:      inKind,
		Dir:       s.dir,
		Model:     s.model,
		Burnin:    s.burnin,
		RateScale: s.scale,
	})
	if err != nil {
		return nil, err
	}
	m := in.Model
	log.Infof("Read model from %s", in.Source)
	if m.FreqAdjusted {
		log.Infof("Frequencies sum to %v, last frequency adjusted", m.RawFreqSum)
	}

	out := convert.Resolve(s.dir, s.out)
	err = convert.Export(m, &convert.ExportSettings{
		Kind:    outKind,
		Path:    out,
		NoFreq:  s.noFreq,
		Confirm: s.confirm,
	}, stdout)
	if err != nil {
		return nil, err
	}

	summary = &RunSummary{
		Version:      version,
		CommandLine:  os.Args,
		Input:        inKind.String(),
		Output:       outKind.String(),
		Source:       in.Source,
		OutputFile:   out,
		RawFreqSum:   m.RawFreqSum,
		FreqAdjusted: m.FreqAdjusted,
		MCMC:         in.Summary,
	}

	if s.store != "" {
		key := s.key
		if key == "" {
			key = defaultKey(inKind, in.Source)
		}
		if err = saveModel(s.store, key, in, inKind); err != nil {
			return nil, err
		}
		summary.StoreKey = key
	}

	title := filepath.Base(in.Source)
	if s.plot != "" {
		if err = modelplot.SaveComposition(m, title, s.plot); err != nil {
			return nil, fmt.Errorf("error saving composition plot: %v", err)
		}
		log.Infof("Composition plot saved in %s", s.plot)
	}
	if s.heatmap != "" {
		if err = modelplot.SaveRates(m, title, s.heatmap); err != nil {
			return nil, fmt.Errorf("error saving heat map: %v", err)
		}
		log.Infof("Heat map saved in %s", s.heatmap)
	}

	summary.Time = time.Since(startTime).Seconds()
	if s.jsonFile != "" {
		saveJSON(s.jsonFile, summary)
	}
	return summary, nil
}

// saveModel saves an imported model to the database.
func saveModel(fn, key string, in *convert.Imported, kind convert.Kind) error {
	db, err := store.Open(fn)
	if err != nil {
		return fmt.Errorf("error opening model database: %v", err)
	}
	defer db.Close()
	return db.Save(key, &store.Record{
		Model:  in.Model,
		Format: kind.String(),
		Source: in.Source,
	})
}

// runList prints all the models in the database.
func runList(fn string, stdout io.Writer) error {
	if _, err := os.Stat(fn); err != nil {
		return fmt.Errorf("%w: %s", aamodel.ErrPathNotFound, fn)
	}
	db, err := store.Open(fn)
	if err != nil {
		return err
	}
	defer db.Close()
	keys, err := db.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		rec, err := db.Load(key)
		if err != nil {
			log.Warningf("Cannot load %s: %v", key, err)
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\t%s\n", key, rec.Format, rec.Source, rec.Saved.Format(time.RFC3339))
	}
	return nil
}

// runExport writes a model from the database. The confirmation is
// written to confirm.
func runExport(fn, key, format, out string, noFreq bool, stdout, confirm io.Writer) error {
	kind, err := convert.ParseOutputKind(format)
	if err != nil {
		return err
	}
	if _, err := os.Stat(fn); err != nil {
		return fmt.Errorf("%w: %s", aamodel.ErrPathNotFound, fn)
	}
	db, err := store.Open(fn)
	if err != nil {
		return err
	}
	defer db.Close()
	rec, err := db.Load(key)
	if err != nil {
		return err
	}
	return convert.Export(rec.Model, &convert.ExportSettings{
		Kind:    kind,
		Path:    out,
		NoFreq:  noFreq,
		Confirm: confirm,
	}, stdout)
}

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, module := range modules {
		logging.SetLevel(level, module)
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	switch cmd {
	case convertCmd.FullCommand():
		_, err = runConvert(newConvertSettings(), os.Stdout)
	case listCmd.FullCommand():
		err = runList(*listStoreF, os.Stdout)
	case exportCmd.FullCommand():
		err = runExport(*exportStoreF, *exportKey, *exportFormat, *exportOutF, *exportNoFreq, os.Stdout, os.Stderr)
	}
	if err != nil {
		log.Fatal(err)
	}
}
