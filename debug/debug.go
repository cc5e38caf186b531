package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Write bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("YS_DEBUG_PARSE")
	d.Write = boolEnv("YS_DEBUG_WRITE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Write() bool {
	return d.Write
}
