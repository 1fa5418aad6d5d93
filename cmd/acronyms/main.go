package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/cognicore/acronyms/pkg/acronyms"
	"github.com/cognicore/acronyms/pkg/acronyms/config"
	"github.com/cognicore/acronyms/pkg/acronyms/source"
	"github.com/cognicore/acronyms/pkg/acronyms/store"
	"github.com/cognicore/acronyms/pkg/acronyms/store/memstore"
	"github.com/cognicore/acronyms/pkg/acronyms/store/sqlite"
)

// demoSentences are used when no input is given.
var demoSentences = []string{
	"In here we talk about Test Driven Development (TDD) and other stuff",
	"Mission Objectives (MI) are important, so is Test Driven Development (TDD)",
	"The United Kingdom (UK) is a lovely place to live, so are other places (e.g. USA)",
}

type report struct {
	RunID     string     `json:"run_id,omitempty"`
	Sentences int64      `json:"sentences"`
	Distinct  int        `json:"distinct_pairs"`
	Pairs     []pairJSON `json:"pairs"`
	History   []pairJSON `json:"history,omitempty"`
}

type pairJSON struct {
	Acronym   string   `json:"acronym"`
	Expansion []string `json:"expansion"`
	Count     int64    `json:"count"`
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("acronyms", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "YAML config file (optional)")
		inputs     = fs.String("input", "", "Comma-separated input files, - for stdin")
		format     = fs.String("format", "", "Input format: lines, jsonl or html")
		field      = fs.String("field", "", "JSONL field holding the text (default text)")
		dbPath     = fs.String("db", "", "SQLite database to record the run in")
		top        = fs.Int("top", 0, "Number of pairs to print (0 uses config, default 20)")
		workers    = fs.Int("workers", 0, "Detection workers (0 uses config, default 1)")
		asJSON     = fs.Bool("json", false, "Print a JSON report")
		history    = fs.Bool("history", false, "Also print top pairs across all stored runs")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	applyFlags(cfg, *inputs, *format, *field, *dbPath, *top, *workers, *asJSON)
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sentences, describe, closeAll, err := openInputs(cfg.Inputs)
	if err != nil {
		return err
	}
	defer closeAll()

	table, stats, err := acronyms.AggregateParallel(ctx, sentences, cfg.Workers)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	log.Printf("Processed %s sentences from %s: %s candidates, %s distinct pairs",
		humanize.Comma(stats.Sentences), describe,
		humanize.Comma(stats.Candidates), humanize.Comma(int64(table.Len())))

	saved, err := st.SaveRun(ctx, store.Run{
		Source:    describe,
		Sentences: stats.Sentences,
		Table:     table,
	})
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	rep := report{
		Sentences: stats.Sentences,
		Distinct:  table.Len(),
		Pairs:     toJSON(table.Top(cfg.Report.Top)),
	}
	if cfg.Store.Driver == config.DriverSQLite {
		rep.RunID = saved.ID
	}
	if *history {
		hist, err := st.TopPairs(ctx, cfg.Report.Top)
		if err != nil {
			return fmt.Errorf("top pairs: %w", err)
		}
		rep.History = toJSON(hist)
	}

	if cfg.Report.JSON {
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	}

	printPairs(stdout, rep.Pairs)
	if len(rep.History) > 0 {
		fmt.Fprintln(stdout, "\nAcross all runs:")
		printPairs(stdout, rep.History)
	}
	return nil
}

// applyFlags overrides config values with any flags that were set.
func applyFlags(cfg *config.Config, inputs, format, field, dbPath string, top, workers int, asJSON bool) {
	if inputs != "" {
		cfg.Inputs = nil
		for _, p := range strings.Split(inputs, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			cfg.Inputs = append(cfg.Inputs, config.Input{Path: p, Format: format, Field: field})
		}
	}
	if dbPath != "" {
		cfg.Store = config.StoreConfig{Driver: config.DriverSQLite, Path: dbPath}
	}
	if top > 0 {
		cfg.Report.Top = top
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if asJSON {
		cfg.Report.JSON = true
	}
	cfg.ApplyDefaults()
}

func openStore(ctx context.Context, sc config.StoreConfig) (store.Store, error) {
	if sc.Driver == config.DriverSQLite {
		return sqlite.OpenSQLite(ctx, sc.Path)
	}
	return memstore.New(), nil
}

// openInputs chains every configured input into one sequence. With no
// inputs the demo sentences are used.
func openInputs(inputs []config.Input) (iter.Seq2[string, error], string, func(), error) {
	if len(inputs) == 0 {
		return source.Slice(demoSentences), "demo", func() {}, nil
	}

	var (
		files []*source.File
		seqs  []iter.Seq2[string, error]
		names []string
	)
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, in := range inputs {
		f, err := source.Open(in.Path, in.Format, in.Field)
		if err != nil {
			closeAll()
			return nil, "", nil, err
		}
		files = append(files, f)
		seqs = append(seqs, f.Sentences())
		names = append(names, in.Path)
	}

	return source.Chain(seqs...), strings.Join(names, ","), closeAll, nil
}

func toJSON(entries []acronyms.Entry) []pairJSON {
	out := make([]pairJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, pairJSON{
			Acronym:   e.Acronym,
			Expansion: e.Expansion.Words(),
			Count:     e.Count,
		})
	}
	return out
}

func printPairs(w io.Writer, pairs []pairJSON) {
	if len(pairs) == 0 {
		fmt.Fprintln(w, "No acronyms found.")
		return
	}
	for _, p := range pairs {
		fmt.Fprintf(w, "%6s  %-8s %s\n", humanize.Comma(p.Count), p.Acronym, strings.Join(p.Expansion, " "))
	}
}
