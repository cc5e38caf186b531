package main

import (
	"testing"

	"github.com/signadot/yson-format/go-yson/format"
)

func TestOutFmt(t *testing.T) {
	cfg := &MainConfig{}
	if f := cfg.outFmt(); f != format.Pretty {
		t.Errorf("expected pretty by default, got %s", f)
	}
	cfg.B = true
	if f := cfg.outFmt(); f != format.Binary {
		t.Errorf("expected binary, got %s", f)
	}
	of := format.Text
	cfg.OutFormat = &of
	if f := cfg.outFmt(); f != format.Text {
		t.Errorf("expected -O to override shorthands, got %s", f)
	}
}
