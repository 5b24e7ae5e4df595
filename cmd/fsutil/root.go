package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/file/file"
)

type app struct {
	verbose    bool
	jsonErrors bool
	s3         s3Flags

	sys *file.System
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fsutil",
		Short:         "Inspect and modify files and directories.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts := []file.Option{file.WithLogger(a.logger(cmd.ErrOrStderr()))}

			backend, err := a.s3.backend()
			if err != nil {
				return err
			}
			if backend != nil {
				opts = append(opts, file.WithFS(backend))
			}

			a.sys = file.NewSystem(opts...)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every file operation to stderr")
	cmd.PersistentFlags().BoolVar(&a.jsonErrors, "json", false, "print errors as JSON")
	a.s3.register(cmd.PersistentFlags())

	cmd.AddCommand(
		a.catCmd(),
		a.writeCmd(),
		a.lsCmd(),
		a.mkdirCmd(),
		a.rmCmd(),
		a.rmdirCmd(),
		a.existsCmd(),
		a.pwdCmd(),
		a.pathCmd(),
	)
	return cmd
}

func (a *app) logger(w io.Writer) *slog.Logger {
	if !a.verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
