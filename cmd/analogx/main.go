package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/projectdiscovery/analogx"
	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/analogx/grid"
	"github.com/projectdiscovery/analogx/internal/runner"
	"github.com/projectdiscovery/gologger"
)

func main() {
	cliOpts := runner.ParseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := analogx.New(cliOpts.EngineOptions())
	if err != nil {
		gologger.Fatal().Msgf("failed to create engine got %v", err)
	}
	defer engine.Close()

	input, err := cliOpts.OpenInput()
	if err != nil {
		gologger.Fatal().Msgf("%v", err)
	}
	defer input.Close()

	output := getOutputWriter(cliOpts.Output)
	defer closeOutput(output, cliOpts.Output)

	switch cliOpts.Mode {
	case runner.ModeWords:
		err = runWords(ctx, engine, cliOpts, input, output)
	case runner.ModeSplit:
		err = runSplit(ctx, engine, cliOpts, input, output)
	case runner.ModeGrids:
		err = runGrids(ctx, engine, cliOpts, input, output)
	case runner.ModeClean:
		err = runClean(engine, cliOpts, input, output)
	case runner.ModeAnalogies:
		err = runAnalogies(engine, cliOpts, input, output)
	}
	if err != nil {
		gologger.Error().Msgf("%s failed: %v", cliOpts.Mode, err)
	}
}

func readList(cliOpts *runner.Options, input io.Reader) *cluster.List {
	list, err := analogx.ReadClusters(input)
	if err != nil {
		gologger.Fatal().Msgf("failed to read clusters got %v", err)
	}
	gologger.Info().Msgf("%s", analogx.Replace(analogx.ReadTemplate, map[string]interface{}{
		"clusters": list.Len(),
		"file":     inputName(cliOpts),
	}))
	return list
}

// runWords computes clusters from a word list, then assembles grids.
func runWords(ctx context.Context, engine *analogx.Engine, cliOpts *runner.Options, input io.Reader, output io.Writer) error {
	words, err := analogx.ReadWords(input)
	if err != nil {
		return err
	}
	gologger.Info().Msgf("read %d words in %s", len(words), inputName(cliOpts))
	list := engine.ClustersFromWords(words)
	gologger.Verbose().Msgf("%d classes of indistinguishable words", len(list.Indistinguishables))
	res, err := engine.Execute(ctx, list)
	if err != nil {
		return err
	}
	return writeResult(engine, cliOpts, res, output, words)
}

func runSplit(ctx context.Context, engine *analogx.Engine, cliOpts *runner.Options, input io.Reader, output io.Writer) error {
	list := readList(cliOpts, input)
	start := time.Now()
	out, err := engine.SplitList(ctx, list)
	if err != nil {
		return err
	}
	gologger.Info().Msgf("%s", analogx.Replace(analogx.SplitTemplate, map[string]interface{}{
		"input":   list.Len(),
		"output":  out.Len(),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}))
	if cliOpts.Stats {
		_ = out.Statistics(engine.Oracle()).Write(os.Stderr)
	}
	return out.Write(output)
}

func runGrids(ctx context.Context, engine *analogx.Engine, cliOpts *runner.Options, input io.Reader, output io.Writer) error {
	list := readList(cliOpts, input)
	res, err := engine.Execute(ctx, list)
	if err != nil {
		return err
	}
	var known []string
	for _, c := range list.Clusters {
		known = append(known, c.Lefts()...)
		known = append(known, c.Rights()...)
	}
	return writeResult(engine, cliOpts, res, output, known)
}

func writeResult(engine *analogx.Engine, cliOpts *runner.Options, res *analogx.Result, output io.Writer, known []string) error {
	gologger.Info().Msgf("%s", res.Summary())
	if cliOpts.Stats {
		attrs := make([]grid.Attributes, 0, len(res.Grids))
		for _, g := range res.Grids {
			attrs = append(attrs, g.Attributes())
		}
		_ = grid.ComputeStatistics(attrs).Write(os.Stderr)
	}

	var err error
	if cliOpts.Pretty {
		err = grid.PrettyPrint(output, res.Grids)
	} else {
		err = grid.Write(output, res.Grids)
	}
	if err != nil {
		return err
	}
	if cliOpts.Predict == "" {
		return nil
	}
	return writePredictions(engine, cliOpts.Predict, res.Grids, known)
}

// writePredictions writes the words solved for the holes of grids that are
// not already known.
func writePredictions(engine *analogx.Engine, path string, grids []*grid.Grid, known []string) error {
	start := time.Now()
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	dw := analogx.NewDedupingWriter(file, known...)
	if err := dw.WriteWords(engine.Predict(grids)); err != nil {
		return err
	}
	if err := dw.Close(); err != nil {
		return err
	}
	gologger.Info().Msgf("%s", analogx.Replace(analogx.PredictTemplate, map[string]interface{}{
		"words":   dw.Count(),
		"grids":   len(grids),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}))
	return nil
}

func runClean(engine *analogx.Engine, cliOpts *runner.Options, input io.Reader, output io.Writer) error {
	list := readList(cliOpts, input)
	if !cliOpts.NoDiscardDuplicates {
		list.DiscardDuplicateWords()
	}
	if cliOpts.Focus != "" {
		list.Focus(cliOpts.Focus)
	}
	engine.Clean(list)
	list.SortBySize()
	if cliOpts.Stats {
		_ = list.Statistics(engine.Oracle()).Write(os.Stderr)
	}
	if cliOpts.Paradigm {
		return list.ParadigmLexicon().Write(output)
	}
	return list.Write(output)
}

func runAnalogies(engine *analogx.Engine, cliOpts *runner.Options, input io.Reader, output io.Writer) error {
	list := readList(cliOpts, input)
	analogies := engine.Analogies(list)
	gologger.Info().Msgf("%d valid analogies in %d clusters", len(analogies), list.Len())
	out := &cluster.List{}
	for _, a := range analogies {
		out.Clusters = append(out.Clusters, a.Cluster())
	}
	return out.Write(output)
}

func inputName(cliOpts *runner.Options) string {
	if cliOpts.Input == "" {
		return "stdin"
	}
	return cliOpts.Input
}

// getOutputWriter returns the appropriate output writer
func getOutputWriter(outputPath string) io.Writer {
	if outputPath != "" {
		fs, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			gologger.Fatal().Msgf("failed to open output file %v got %v", outputPath, err)
		}
		return fs
	}
	return os.Stdout
}

// closeOutput closes the output writer if it's a file
func closeOutput(output io.Writer, outputPath string) {
	if outputPath != "" {
		if closer, ok := output.(io.Closer); ok {
			closer.Close()
		}
	}
}
