package main

import (
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/yson-format/go-yson/stream"
)

func fmtStreams(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	mCfg := cfg.MainConfig
	opts := []stream.WriterOption{}
	if mCfg.Indent > 0 {
		opts = append(opts, stream.WithIndent(mCfg.Indent))
	}
	out := mCfg.outFmt()
	return eachInput(cc.In, args, func(name string, r io.Reader) error {
		if err := stream.Reformat(cc.Out, r, out, mCfg.Kind, opts...); err != nil {
			return err
		}
		if !mCfg.Kind.IsFragment() && !out.IsBinary() {
			_, err := cc.Out.Write([]byte("\n"))
			return err
		}
		return nil
	})
}
