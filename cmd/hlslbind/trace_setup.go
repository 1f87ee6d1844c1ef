package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hlsltools/internal/prof"
	"hlsltools/internal/project"
	"hlsltools/internal/trace"
)

// stringSetting returns the flag value, or fallback when the flag was not
// given on the command line and fallback is non-empty.
func stringSetting(cmd *cobra.Command, name, fallback string) (string, error) {
	flags := cmd.Root().PersistentFlags()
	v, err := flags.GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if !flags.Changed(name) && fallback != "" {
		return fallback, nil
	}
	return v, nil
}

// setupTracing builds the tracer from --trace* flags, falling back to the
// [trace] section of cfg, and stores it in the command context. The cleanup
// function flushes it; in ring mode it also dumps the ring when failed
// reports true.
func setupTracing(cmd *cobra.Command, cfg *project.Config) (func(failed bool), error) {
	root := cmd.Root().PersistentFlags()

	output, err := stringSetting(cmd, "trace", cfg.Trace.Output)
	if err != nil {
		return nil, err
	}
	levelStr, err := stringSetting(cmd, "trace-level", cfg.Trace.Level)
	if err != nil {
		return nil, err
	}
	modeStr, err := stringSetting(cmd, "trace-mode", cfg.Trace.Mode)
	if err != nil {
		return nil, err
	}
	formatStr, err := stringSetting(cmd, "trace-format", "")
	if err != nil {
		return nil, err
	}
	ringSize, err := root.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := root.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return func(bool) {}, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(ctx, tracer))

	heartbeat := trace.StartHeartbeat(tracer, heartbeatInterval)

	return func(failed bool) {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if ring := trace.RingOf(tracer); ring != nil && failed {
			if err := ring.Dump(cmd.ErrOrStderr(), format); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

// setupProfiling starts the profilers named by --cpu-profile,
// --mem-profile and --runtime-trace.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root().PersistentFlags()
	var opts prof.Options
	for name, dst := range map[string]*string{"cpu-profile": &opts.CPU, "mem-profile": &opts.Mem, "runtime-trace": &opts.Trace} {
		v, err := root.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	if !opts.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
		}
	}, nil
}
