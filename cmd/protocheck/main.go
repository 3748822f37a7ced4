// Command protocheck validates prototype definition files without writing
// them anywhere: each file must decode, and every duplicate name or unknown
// parent is listed. With --strict any issue fails the check.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"prototypecore/internal/source"
	"prototypecore/pkg/prototype"
)

var exitFunc = os.Exit

func main() {
	exitFunc(cli(os.Args[1:], os.Stdout, os.Stderr))
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("protocheck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", false, "treat duplicate names and unknown parents as failures")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "usage: protocheck [--strict] FILE...")
		return 2
	}
	issues, err := check(context.Background(), paths)
	if err != nil {
		fmt.Fprintf(stderr, "Definition check failed: %v\n", err)
		return 1
	}
	for _, issue := range issues {
		fmt.Fprintln(stdout, issue.String())
	}
	if *strict && len(issues) > 0 {
		fmt.Fprintf(stderr, "Definition check failed: %d issue(s)\n", len(issues))
		return 1
	}
	fmt.Fprintf(stdout, "Definition check passed (%d issue(s)).\n", len(issues))
	return 0
}

// validatePath rejects empty, absolute and path-traversing references.
func validatePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(p) {
		return "", fmt.Errorf("absolute paths not allowed: %s", p)
	}
	clean := filepath.Clean(p)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("path traversal not allowed: %s", p)
	}
	return clean, nil
}

// check decodes every file in order, then builds and resolves the combined
// table, returning the issues found.
func check(ctx context.Context, paths []string) ([]prototype.Issue, error) {
	var sections []prototype.Section
	for _, p := range paths {
		safe, err := validatePath(p)
		if err != nil {
			return nil, err
		}
		got, err := source.File{Path: safe}.ReadSections(ctx)
		if err != nil {
			return nil, err
		}
		sections = append(sections, got...)
	}
	var log prototype.IssueLog
	table := prototype.BuildTable(sections, &log)
	prototype.ResolveAll(table, &log)
	return log.Issues(), nil
}
