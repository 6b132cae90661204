// Command spbmsg validates, formats, and inspects SPB message documents.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Environ(), os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args, environ []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{environ: environ}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var failed *failure
	if stderrors.As(err, &failed) {
		if failed.err != nil {
			_ = writef(stderr, "error: %v\n", failed.err)
		}
		return exitFailure
	}
	_ = writef(stderr, "error: %v\n", err)
	_ = writeln(stderr, root.UsageString())
	return exitUsage
}

// failure marks an error that is not a usage mistake. A nil err means the
// details were already reported.
type failure struct {
	err error
}

func (f *failure) Error() string {
	if f.err == nil {
		return "failed"
	}
	return f.err.Error()
}

func (f *failure) Unwrap() error {
	return f.err
}

func fail(err error) error {
	return &failure{err: err}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
