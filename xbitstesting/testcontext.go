package xbitstesting

import (
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	fuzz "github.com/google/gofuzz"
)

type TestContext struct {
	Log  logger.Logger
	T    *testing.T
	Fuzz *fuzz.Fuzzer
}

type TestConfig struct {
	// The fuzzer is seeded from Seed. Leave it at a fixed value so that the
	// generated fields are the same from run to run.
	Seed            int64
	TestLabelPrefix string
	LogLevel        string // defaults to "NOOP"
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T:    t,
		Fuzz: fuzz.NewWithSeed(cfg.Seed).NilChance(0),
	}
	level := cfg.LogLevel
	if level == "" {
		level = "NOOP"
	}
	logger.New(level)
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)
	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// RandomFields returns n values, each reduced to the low bits bits.
func (c *TestContext) RandomFields(n int, bits uint) []uint8 {
	mask := uint8(1<<bits - 1)
	vals := make([]uint8, n)
	for i := range vals {
		var b uint8
		c.Fuzz.Fuzz(&b)
		vals[i] = b & mask
	}
	return vals
}

// RandomLength returns a length in [0, limit), or 0 when limit is not
// positive.
func (c *TestContext) RandomLength(limit int) int {
	if limit <= 0 {
		return 0
	}
	var n uint32
	c.Fuzz.Fuzz(&n)
	return int(n % uint32(limit))
}
