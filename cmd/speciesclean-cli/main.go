package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"yashubustudio/speciescleaner/speciescleaner"
)

// Environment variables override the config file, e.g.
// SPECIESCLEAN_OUTPUTPATH or SPECIESCLEAN_COLUMNS_SPECIES.
const envPrefix = "SPECIESCLEAN_"

// Camel-cased json tags need an explicit alias: the env value must land on
// the same key path the config file uses, otherwise koanf keeps both as
// sibling keys and the file value wins on unmarshal.
var envKeyAliases = map[string]string{
	"inputpath":  "inputPath",
	"outputpath": "outputPath",
}

// envKeyPath maps an environment variable name onto a config key path:
// SPECIESCLEAN_COLUMNS_SPECIES → columns.species.
func envKeyPath(name string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, envPrefix)), "_", ".")
	if alias, ok := envKeyAliases[key]; ok {
		return alias
	}
	return key
}

type cliOptions struct {
	configPath  string
	inputPath   string
	outputPath  string
	columns     speciescleaner.ColumnConfig
	workers     int
	analyzeOnly bool
	assumeYes   bool
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		log.Fatalf("speciesclean-cli: %v", err)
	}
}

func parseFlags() cliOptions {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.inputPath, "input", "", "CSV/TSV metadata file to clean (default from config)")
	flag.StringVar(&opts.outputPath, "output", "", "CSV/TSV file to write the cleaned metadata to")
	flag.StringVar(&opts.columns.Species, "species-column", "", "Column name or #index of the species column")
	flag.StringVar(&opts.columns.Genus, "genus-column", "", "Column name or #index of the genus column")
	flag.StringVar(&opts.columns.Subspecies, "subspecies-column", "", "Column name or #index of the subspecies column")
	flag.StringVar(&opts.columns.Suffix, "suffix-column", "", "Column name or #index of the extracted-suffix column")
	flag.IntVar(&opts.workers, "workers", 0, "Number of cleaning workers (0 = one per CPU)")
	flag.BoolVar(&opts.analyzeOnly, "analyze", false, "Only analyze and report, do not write anything")
	flag.BoolVar(&opts.assumeYes, "yes", false, "Skip the confirmation prompt")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.outputPath = strings.TrimSpace(opts.outputPath)
	return opts
}

// loadConfig layers defaults, the JSON config file and SPECIESCLEAN_*
// environment variables, in that order.
func loadConfig(path string) (speciescleaner.Config, error) {
	var cfg speciescleaner.Config
	cfg.ApplyDefaults()

	if path == "" {
		path = "config.json"
	}
	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("stat config %s: %w", path, err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKeyPath), nil); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func (o cliOptions) apply(cfg speciescleaner.Config) speciescleaner.Config {
	if o.inputPath != "" {
		cfg.InputPath = o.inputPath
	}
	if o.outputPath != "" {
		cfg.OutputPath = o.outputPath
	}
	if o.columns.Species != "" {
		cfg.Columns.Species = o.columns.Species
	}
	if o.columns.Genus != "" {
		cfg.Columns.Genus = o.columns.Genus
	}
	if o.columns.Subspecies != "" {
		cfg.Columns.Subspecies = o.columns.Subspecies
	}
	if o.columns.Suffix != "" {
		cfg.Columns.Suffix = o.columns.Suffix
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	return cfg
}

func run(opts cliOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	cfg = opts.apply(cfg)

	logger := log.New(os.Stdout, "", log.LstdFlags)
	service := speciescleaner.NewService(cfg, logger)

	table, err := speciescleaner.ReadTable(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	logger.Printf("Loaded %d records from %s", len(table.Rows), cfg.InputPath)

	cols, err := table.ResolveColumns(cfg.Columns)
	if err != nil {
		return err
	}

	report := service.Analyze(table, cols)
	fmt.Println(report.Render())

	if opts.analyzeOnly {
		return nil
	}
	if !opts.assumeYes && !confirm("Proceed with cleaning? (yes/no): ") {
		logger.Printf("Cleaning cancelled")
		return nil
	}

	stats := service.Clean(table, cols)
	if err := speciescleaner.WriteTable(cfg.OutputPath, table); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Println(stats.Render())
	fmt.Printf("クリーニング結果を %s に保存しました\n", cfg.OutputPath)
	return nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		return true
	}
	return false
}
