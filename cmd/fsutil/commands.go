package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/file/file"
	"github.com/jmgilman/go/file/pathutil"
)

func (a *app) catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat PATH...",
		Short: "Print file contents.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := a.cat(cmd.OutOrStdout(), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) cat(w io.Writer, path string) error {
	f, err := a.sys.Open(path, file.ModeRead)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f.Reader())
	return err
}

func (a *app) writeCmd() *cobra.Command {
	mode := modeValue(file.ModeTruncateWrite)
	perm := permValue(file.DefaultFilePermissions)
	var (
		timeout time.Duration
		atomic  bool
	)

	cmd := &cobra.Command{
		Use:   "write PATH",
		Short: "Write stdin to a file.",
		Long: `Write stdin to a file.

--mode selects how the file is opened: createWrite fails if the file exists,
truncateWrite replaces its contents and appendWrite adds to the end.
--atomic replaces the file in one step and ignores --mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if atomic {
				return a.sys.ReplaceFile(args[0], cmd.InOrStdin())
			}

			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}

			f, err := a.sys.Open(args[0], file.Mode(mode), file.WithPermissions(fsMode(perm)))
			if err != nil {
				return err
			}
			defer f.Close()

			if timeout > 0 {
				_, err = f.WriteDeadline(data, time.Now().Add(timeout))
			} else {
				_, err = f.Write(data)
			}
			if err != nil {
				return err
			}
			if err := f.Flush(); err != nil {
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().Var(&mode, "mode", "open mode (createWrite, truncateWrite, appendWrite, ...)")
	cmd.Flags().Var(&perm, "perm", "permissions for a created file")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up writing after this long")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "replace the file atomically")
	cmd.MarkFlagsMutuallyExclusive("atomic", "mode")
	return cmd
}

func (a *app) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [DIR]",
		Short: "List directory entries, sorted by name.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			names, err := a.sys.ContentsOfDirectory(dir)
			if err != nil {
				return err
			}
			slices.Sort(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (a *app) mkdirCmd() *cobra.Command {
	var parents bool
	perm := permValue(file.DefaultDirPermissions)

	cmd := &cobra.Command{
		Use:   "mkdir DIR...",
		Short: "Create directories.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts := []file.DirOption{file.WithDirPermissions(fsMode(perm))}
			if parents {
				opts = append(opts, file.WithIntermediateDirectories())
			}
			for _, dir := range args {
				if err := a.sys.CreateDirectory(dir, opts...); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing parents; an existing directory is not an error")
	cmd.Flags().Var(&perm, "perm", "permissions for created directories")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm FILE...",
		Short: "Remove files.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, path := range args {
				if err := a.sys.RemoveFile(path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) rmdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir DIR...",
		Short: "Remove directories and everything in them.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, dir := range args {
				if err := a.sys.RemoveDirectory(dir); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) existsCmd() *cobra.Command {
	var dirOnly bool

	cmd := &cobra.Command{
		Use:   "exists PATH",
		Short: "Print whether a path exists.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok := a.sys.Exists(args[0])
			if dirOnly {
				ok = a.sys.IsDirectory(args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dirOnly, "dir", "d", false, "only report true for directories")
	return cmd
}

func (a *app) pwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the working directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := a.sys.WorkingDirectory()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func (a *app) pathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Normalize path strings without touching the filesystem.",
	}

	var strip bool
	fix := &cobra.Command{
		Use:   "fix PATH",
		Short: "Collapse repeated slashes.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), pathutil.FixSlashes(args[0], strip))
		},
	}
	fix.Flags().BoolVar(&strip, "strip-trailing", false, "remove a trailing slash")

	parent := &cobra.Command{
		Use:   "parent PATH",
		Short: "Drop the last path component.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), pathutil.DropLastPathComponent(args[0]))
		},
	}

	base := &cobra.Command{
		Use:   "base PATH",
		Short: "Print the last path component.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), pathutil.LastPathComponent(args[0]))
		},
	}

	cmd.AddCommand(fix, parent, base)
	return cmd
}
