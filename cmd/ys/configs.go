package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/yson-format/go-yson/format"
)

type MainConfig struct {
	B     bool `cli:"name=b aliases=bin desc='output in binary representation'"`
	T     bool `cli:"name=t aliases=text desc='output in flat text representation'"`
	P     bool `cli:"name=p aliases=pretty desc='output in pretty text representation'"`
	Color bool `cli:"name=color desc='colorize text output'"`

	Indent int `cli:"name=indent desc='pretty indent width in spaces'"`

	OutFormat *format.Format
	Kind      format.StreamKind

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) kindFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		k, err := format.ParseStreamKind(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Kind = k
		return k, nil
	})
}

// outFmt resolves the output representation from -O and the shorthand
// booleans, defaulting to pretty.
func (cfg *MainConfig) outFmt() format.Format {
	f := format.Pretty
	switch {
	case cfg.B:
		f = format.Binary
	case cfg.T:
		f = format.Text
	case cfg.P:
		f = format.Pretty
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

// useColor reports whether text output to w should be colorized: when
// -color was given, or when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Fmt *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	From string `cli:"name=from desc='input codec: yson, json, yaml, cbor'"`
	To   string `cli:"name=to desc='output codec: yson, json, yaml, cbor'"`

	Convert *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
