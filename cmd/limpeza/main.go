package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"limpeza/internal/config"
	"limpeza/internal/pipeline"
	"limpeza/internal/report"
)

func main() {
	cfg, err := config.Load()
	must(err)

	level := slog.LevelInfo
	if os.Getenv("LIMPEZA_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.InputPath, "input xlsx workbook")
		output := fs.String("output", cfg.OutputPath, "output xlsx workbook")
		quiet := fs.Bool("quiet-report", false, "skip the console analysis report")
		_ = fs.Parse(os.Args[2:])

		res := clean(cfg, logger, *input)
		if !*quiet {
			report.Write(os.Stdout, res.Clean, res.Rejected, res.Stats)
		}
		if len(res.Clean) == 0 {
			fmt.Println("no rows survived cleaning; output file not written")
			return
		}
		must(pipeline.ExportWorkbook(res.Clean, res.Rejected, *output))
		fmt.Printf("saved %d clean and %d rejected rows to %s\n", len(res.Clean), len(res.Rejected), *output)
	case "report":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.InputPath, "input xlsx workbook")
		_ = fs.Parse(os.Args[2:])

		res := clean(cfg, logger, *input)
		report.Write(os.Stdout, res.Clean, res.Rejected, res.Stats)
	default:
		usage()
		os.Exit(1)
	}
}

func clean(cfg config.Config, logger *slog.Logger, input string) pipeline.Result {
	raw, catalogRows, err := pipeline.LoadWorkbook(input, cfg)
	must(err)

	res, err := pipeline.NewCleaner(cfg, logger).Run(raw, catalogRows)
	must(err)
	return res
}

func usage() {
	fmt.Println(`usage: limpeza <command> [flags]

commands:
  run     clean the input workbook and save clean + rejected sheets
          flags: --input --output --quiet-report
  report  clean the input workbook and print the analysis report only
          flags: --input`)
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
