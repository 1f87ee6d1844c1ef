package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"hlsltools/internal/diagfmt"
	"hlsltools/internal/driver"
	"hlsltools/internal/source"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] <file>",
	Short: "List the symbols visible at a position",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbols,
}

func init() {
	symbolsCmd.Flags().Uint32("line", 1, "1-based line")
	symbolsCmd.Flags().Uint32("col", 1, "1-based column")
	symbolsCmd.Flags().Bool("intrinsics", false, "include intrinsic functions and types")
	symbolsCmd.Flags().String("format", "text", "output format (text|json)")
}

func runSymbols(cmd *cobra.Command, args []string) (err error) {
	line, err := cmd.Flags().GetUint32("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}
	col, err := cmd.Flags().GetUint32("col")
	if err != nil {
		return fmt.Errorf("failed to get col flag: %w", err)
	}
	withIntrinsics, err := cmd.Flags().GetBool("intrinsics")
	if err != nil {
		return fmt.Errorf("failed to get intrinsics flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (expected text|json)", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	finishTrace, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { finishTrace(err != nil) }()

	result, err := driver.CheckFiles(cmd.Context(), args, driver.Options{Jobs: 1, BaseDir: cfg.Root})
	if err != nil {
		return err
	}
	fr := result.Files[0]
	if fr.Bag.HasErrors() {
		diagfmt.Pretty(cmd.ErrOrStderr(), fr.Bag, result.FileSet, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeAuto})
	}
	infos, err := driver.SymbolsAt(result.FileSet, fr, source.LineCol{Line: line, Col: col}, withIntrinsics)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	_, err = fmt.Fprint(out, driver.FormatSymbols(infos))
	return err
}
