package main

import (
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/yson-format/go-yson/format"
	"github.com/signadot/yson-format/go-yson/stream"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachInput(cc.In, args, func(name string, r io.Reader) error {
		return viewReader(cfg, cc.Out, r)
	})
}

func viewReader(cfg *ViewConfig, w io.Writer, r io.Reader) error {
	mCfg := cfg.MainConfig
	if mCfg.useColor(w) {
		c := newColorizer(w, NewColors(), mCfg.Kind, mCfg.Indent)
		if err := stream.NewParser(r, mCfg.Kind).Parse(c); err != nil {
			return err
		}
		if !mCfg.Kind.IsFragment() {
			_, err := w.Write([]byte("\n"))
			return err
		}
		return nil
	}
	opts := []stream.WriterOption{}
	if mCfg.Indent > 0 {
		opts = append(opts, stream.WithIndent(mCfg.Indent))
	}
	if err := stream.Reformat(w, r, format.Pretty, mCfg.Kind, opts...); err != nil {
		return err
	}
	if !mCfg.Kind.IsFragment() {
		_, err := w.Write([]byte("\n"))
		return err
	}
	return nil
}
