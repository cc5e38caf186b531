package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/yson-format/go-yson/bridge"
	"github.com/signadot/yson-format/go-yson/node"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	decode, err := decoderFor(cfg.From)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	encode, err := encoderFor(cfg, cfg.To)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return eachInput(cc.In, args, func(name string, r io.Reader) error {
		d, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		n, err := decode(d)
		if err != nil {
			return fmt.Errorf("decoding %s as %s: %w", name, cfg.From, err)
		}
		out, err := encode(n)
		if err != nil {
			return fmt.Errorf("encoding %s as %s: %w", name, cfg.To, err)
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
		if cfg.To != "cbor" && (cfg.To != "yson" || !cfg.MainConfig.outFmt().IsBinary()) {
			_, err = cc.Out.Write([]byte("\n"))
		}
		return err
	})
}

func decoderFor(codec string) (func([]byte) (*node.Node, error), error) {
	switch codec {
	case "yson", "ys":
		return node.Unmarshal, nil
	case "json", "j":
		return bridge.FromJSON, nil
	case "yaml", "y":
		return bridge.FromYAML, nil
	case "cbor", "c":
		return bridge.FromCBOR, nil
	}
	return nil, fmt.Errorf("unknown codec %q", codec)
}

func encoderFor(cfg *ConvertConfig, codec string) (func(*node.Node) ([]byte, error), error) {
	switch codec {
	case "yson", "ys":
		return func(n *node.Node) ([]byte, error) {
			return node.Marshal(n, cfg.MainConfig.outFmt())
		}, nil
	case "json", "j":
		return bridge.ToJSON, nil
	case "yaml", "y":
		return bridge.ToYAML, nil
	case "cbor", "c":
		return bridge.ToCBOR, nil
	}
	return nil, fmt.Errorf("unknown codec %q", codec)
}
