// Command fsutil exposes the file package on the command line.
//
//	fsutil mkdir -p build/out
//	echo hello | fsutil write build/out/greeting.txt
//	fsutil cat build/out/greeting.txt
//	fsutil path fix --strip-trailing //tmp//x/
//
// With --s3-bucket the same commands operate on an S3-compatible bucket:
//
//	FSUTIL_S3_ACCESS_KEY=... FSUTIL_S3_SECRET_KEY=... \
//	    fsutil --s3-endpoint localhost:9000 --s3-bucket data ls /
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmgilman/go/file/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		a.report(stderr, err)
		return 1
	}
	return 0
}

// report prints err as "error: ..." or, with --json, as an ErrorResponse.
func (a *app) report(w io.Writer, err error) {
	if a.jsonErrors {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(errors.ToJSON(err)); encErr == nil {
			return
		}
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
