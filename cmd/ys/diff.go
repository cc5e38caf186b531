package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/scott-cotton/cli"

	"github.com/signadot/yson-format/go-yson/node"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := canonical(args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := canonical(args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if a == b {
		return nil
	}
	if err := printDiff(cfg, cc, a, b); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// canonical renders a file's document in pretty text so the diff is
// representation-independent: binary, flat, and pretty inputs of the
// same value all canonicalize identically.
func canonical(file string) (string, error) {
	r, err := openInput(file)
	if err != nil {
		return "", err
	}
	defer r.Close()
	n, err := node.Read(r)
	if err != nil {
		return "", err
	}
	d, err := node.MarshalPretty(n)
	if err != nil {
		return "", err
	}
	return string(d) + "\n", nil
}

func printDiff(cfg *DiffConfig, cc *cli.Context, a, b string) error {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	useColor := cfg.MainConfig.useColor(cc.Out)
	del := func(s string) string { return s }
	ins := del
	if useColor {
		del = func(s string) string { return color.RedString("%s", s) }
		ins = func(s string) string { return color.GreenString("%s", s) }
	}
	for _, d := range diffs {
		var prefix string
		var paint func(string) string
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "-", del
		case diffpatch.DiffInsert:
			prefix, paint = "+", ins
		case diffpatch.DiffEqual:
			prefix, paint = " ", func(s string) string { return s }
		}
		for _, line := range splitLines(d.Text) {
			if _, err := fmt.Fprintln(cc.Out, paint(prefix+line)); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return lines
}
