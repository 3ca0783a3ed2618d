package runner

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/projectdiscovery/analogx"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

// Modes of the command line tool.
const (
	ModeWords     = "words"
	ModeSplit     = "split"
	ModeGrids     = "grids"
	ModeClean     = "clean"
	ModeAnalogies = "analogies"
)

var modes = []string{ModeWords, ModeSplit, ModeGrids, ModeClean, ModeAnalogies}

type Options struct {
	Input               string
	Output              string
	Mode                string
	MinSize             int
	MaxSize             int
	GridClusterSize     int
	Saturation          float64
	Focus               string
	Pretty              bool
	Predict             string
	Paradigm            bool
	Stats               bool
	Workers             int
	DiskCache           bool
	NoHorizontal        bool
	NoVertical          bool
	NoDiscardDuplicates bool
	Seed                int
	Config              string
	Verbose             bool
	Debug               bool
	Silent              bool
}

func ParseFlags() *Options {
	var saturation string
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Analogical clustering of words and assembly of analogical grids.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Input, "input", "i", "", "input file of words or clusters (default stdin)"),
		flagSet.StringVar(&opts.Mode, "mode", ModeGrids, "mode to run ("+strings.Join(modes, ", ")+")"),
		flagSet.StringVarP(&opts.Focus, "focus", "F", "", "keep only the clusters containing this word"),
	)

	flagSet.CreateGroup("clusters", "Clusters",
		flagSet.IntVarP(&opts.MinSize, "min-size", "m", analogx.DefaultOptions.MinimalClusterSize, "minimal number of ratios of an output cluster"),
		flagSet.IntVarP(&opts.MaxSize, "max-size", "M", 0, "maximal number of ratios of an output cluster (0 for no limit)"),
		flagSet.IntVar(&opts.Workers, "workers", analogx.DefaultOptions.Workers, "number of clusters split in parallel"),
		flagSet.BoolVar(&opts.NoHorizontal, "no-horizontal-splitting", false, "do not split clusters by distance"),
		flagSet.BoolVar(&opts.NoVertical, "no-vertical-splitting", false, "do not split clusters by covering cliques"),
		flagSet.BoolVar(&opts.NoDiscardDuplicates, "no-discard-duplicates", false, "keep ratios repeating a word"),
		flagSet.BoolVar(&opts.DiskCache, "disk-cache", false, "store distances on disk instead of memory"),
		flagSet.IntVar(&opts.Seed, "seed", 0, "seed of the median sort sampling (0 for random)"),
	)

	flagSet.CreateGroup("grids", "Grids",
		flagSet.IntVarP(&opts.GridClusterSize, "grid-cluster-size", "c", analogx.DefaultOptions.GridClusterSize, "minimal number of ratios of a cluster inserted into a grid"),
		flagSet.StringVarP(&saturation, "saturation", "d", "0", "minimal saturation of a grid after an insertion, in [0, 1]"),
		flagSet.StringVar(&opts.Predict, "predict", "", "file to write the words predicted for the holes of the grids"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)"),
		flagSet.BoolVar(&opts.Pretty, "pretty", false, "write grids as aligned tables"),
		flagSet.BoolVar(&opts.Paradigm, "paradigm", false, "clean mode: write the paradigm lexicon instead of the clusters"),
		flagSet.BoolVar(&opts.Stats, "stats", false, "write statistics to stderr"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Debug, "debug", false, "display debug output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display analogx version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `analogx cli config file (default '$HOME/.config/analogx/config.yaml')`),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	config := opts.Config
	if config == "" {
		config = ensureDefaultConfig()
	}
	if config != "" {
		if err := flagSet.MergeConfigFile(config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	value, err := parseSaturation(saturation)
	if err != nil {
		gologger.Fatal().Msgf("Could not parse saturation: %s\n", err)
	}
	opts.Saturation = value

	if !sliceutil.Contains(modes, opts.Mode) {
		gologger.Fatal().Msgf("invalid mode: %s (must be one of %s)", opts.Mode, strings.Join(modes, ", "))
	}
	return opts
}

// EngineOptions converts the flags to engine options.
func (o *Options) EngineOptions() analogx.Options {
	return analogx.Options{
		MinimalClusterSize:  o.MinSize,
		MaximalClusterSize:  o.MaxSize,
		SaturationThreshold: o.Saturation,
		FocusWord:           o.Focus,
		GridClusterSize:     o.GridClusterSize,
		NoHorizontalSplit:   o.NoHorizontal,
		NoVerticalSplit:     o.NoVertical,
		NoDiscardDuplicates: o.NoDiscardDuplicates,
		Workers:             o.Workers,
		UseDiskCache:        o.DiskCache,
		Seed:                int64(o.Seed),
	}
}

// OpenInput opens the input file, or stdin when no file is given.
func (o *Options) OpenInput() (io.ReadCloser, error) {
	if o.Input != "" {
		if !fileutil.FileExists(o.Input) {
			return nil, errorutil.NewWithTag("analogx", "input file %v does not exist", o.Input)
		}
		return os.Open(o.Input)
	}
	if fileutil.HasStdin() {
		return io.NopCloser(os.Stdin), nil
	}
	return nil, errorutil.NewWithTag("analogx", "no input found")
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}

func parseSaturation(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > 1 {
		return 0, errorutil.New("saturation must be in [0, 1]")
	}
	return f, nil
}
