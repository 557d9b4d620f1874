package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/config"
)

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: convert takes one input, got %d", ErrUsage, len(positionalArgs))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 && !flags.watch {
		return fmt.Errorf("%w: no source files found in %s", ErrNoInput, inputPath)
	}

	params, err := buildConversionParams(flags, cfg)
	if err != nil {
		return err
	}

	logger := env.logger(flags.common)
	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := reportdoc.ResolvePoolSize(workers)
	if !flags.watch && len(files) > 0 && poolSize > len(files) {
		poolSize = len(files)
	}

	pool := env.NewPool(poolSize, converterOptions(cfg, timeout, logger)...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter pool", zap.Error(err))
		}
	}()

	logger.Debug("starting conversion",
		zap.String("input", inputPath),
		zap.Int("files", len(files)),
		zap.Int("workers", pool.Size()))

	results := convertBatch(ctx, pool, files, params)
	printResults(results, flags.common.quiet, flags.common.verbose, env)

	if !flags.watch {
		return batchError(results)
	}

	sw, err := newSourceWatcher(inputPath, outputDir, pool, params, flags.common, env, logger)
	if err != nil {
		return err
	}
	defer func() { _ = sw.Close() }()

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl-C to stop)\n", inputPath)
	}
	return sw.Run(ctx)
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
