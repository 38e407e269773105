package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"arbor-hq/canopy/pkg/build"
	"arbor-hq/canopy/pkg/cli"
	"arbor-hq/canopy/pkg/compiler"
	"arbor-hq/canopy/pkg/store"
)

var buildFlags struct {
	output   string
	noStore  bool
	compiler string
}

var buildCmd = &cobra.Command{
	Use:   "build <grammar-file>",
	Short: "Build a grammar description",
	Long: `Build a grammar description file into generated parser source.

The description is parsed, assembled into a typed grammar, and
validated. Only a fully valid grammar reaches the downstream compiler;
the first violation aborts the build with the compiler untouched.

Generated source goes to stdout unless --output names a file. Conflicts
reported by the compiler are printed to stderr; they do not fail the
build.

Examples:
  # Build to stdout
  canopy build grammar.json

  # Build to a file
  canopy build grammar.json -o parser.c

  # Override the configured compiler command
  canopy build grammar.json --compiler "tsc --generate"

  # Skip the artifact store for this build
  canopy build grammar.json --no-store`,
	Args: cobra.ExactArgs(1),
	RunE: buildGrammar,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildFlags.output, "output", "o", "", "write generated source to file instead of stdout")
	buildCmd.Flags().BoolVar(&buildFlags.noStore, "no-store", false, "do not archive the build artifact")
	buildCmd.Flags().StringVar(&buildFlags.compiler, "compiler", "", "compiler command, overrides configuration")
}

func buildGrammar(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	command := cfg.Compiler.Command
	if buildFlags.compiler != "" {
		command = strings.Fields(buildFlags.compiler)
	}
	if len(command) == 0 {
		return fmt.Errorf("no compiler command configured; set compiler.command or pass --compiler")
	}

	comp, err := compiler.NewExternal(command, cfg.Compiler.Timeout)
	if err != nil {
		return err
	}

	var artifacts store.Store
	if cfg.StoreEnabled() && !buildFlags.noStore {
		sqliteStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("failed to open artifact store: %w", err)
		}
		defer sqliteStore.Close()
		artifacts = sqliteStore
	}

	pipeline, err := build.NewPipeline(build.PipelineConfig{
		Compiler: comp,
		Store:    artifacts,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()
	result, err := pipeline.BuildFile(ctx, args[0])
	if err != nil {
		return cli.NewCommandError("build", err)
	}

	for _, conflict := range result.Conflicts {
		fmt.Fprintf(os.Stderr, "conflict: %s\n", conflict.Description)
	}

	if buildFlags.output != "" {
		if err := os.WriteFile(buildFlags.output, []byte(result.Code), 0o644); err != nil {
			return fmt.Errorf("failed to write generated source: %w", err)
		}
		logger.Info("generated source written",
			"grammar", result.Grammar.Name,
			"output", buildFlags.output,
			"conflicts", len(result.Conflicts),
		)
		return nil
	}

	fmt.Print(result.Code)
	return nil
}
