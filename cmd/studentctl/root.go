package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"student-records/internal/client"
	"student-records/internal/roster"
)

const (
	apiURLEnv     = "STUDENTS_API_URL"
	defaultAPIURL = "http://localhost:5000"
)

type options struct {
	apiURL  string
	timeout time.Duration
	verbose bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "studentctl",
		Short:         "Manage student records through the student-records API",
		SilenceUsage:  true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	defaultURL := defaultAPIURL
	if v := os.Getenv(apiURLEnv); v != "" {
		defaultURL = v
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", defaultURL, "base URL of the API (env "+apiURLEnv+")")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests at debug level")

	root.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
	)
	return root
}

// session mounts a roster against the configured API.
func session(cmd *cobra.Command, opts *options) (*roster.Roster, context.Context, context.CancelFunc, error) {
	log := newLogger(cmd.ErrOrStderr(), opts.verbose)

	api, err := client.New(opts.apiURL)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	r := roster.New(api, log)
	if err := r.Mount(ctx); err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("fetch students from %s: %w", opts.apiURL, err)
	}
	return r, ctx, cancel, nil
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
