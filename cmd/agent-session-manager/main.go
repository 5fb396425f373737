package main

import (
	"fmt"
	"io"
	"os"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError prints err for the user and returns the exit status
func reportError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	switch serrors.GetKind(err) {
	case serrors.KindNotFound:
		fmt.Fprintln(w, "Run 'agent-session-manager list --all' or 'list --trash' to see current session ids.")
	case serrors.KindPermission:
		fmt.Fprintln(w, "Check the permissions of the data directory (--data-dir).")
	}
	return 1
}
