package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/bcdannyboy/mcgreeks/probability"
)

const (
	envPaths         = "MCGREEKS_PATHS"
	envAntithetic    = "MCGREEKS_ANTITHETIC"
	envWorkers       = "MCGREEKS_WORKERS"
	envVariance      = "MCGREEKS_VARIANCE"
	envDisableVector = "MCGREEKS_DISABLE_VECTOR"
	envCommon        = "MCGREEKS_COMMON_RANDOM_NUMBERS"
	envSeed          = "MCGREEKS_SEED"
	envLogLevel      = "MCGREEKS_LOG_LEVEL"
)

type Config struct {
	Paths          int
	Antithetic     bool
	Workers        int // 0 = hardware parallelism
	VarianceMethod probability.VarianceMethod
	DisableVector  bool
	CommonRandom   bool // share deviates across bumped scenarios
	Seed           uint64
	Seeded         bool
	LogLevel       string
}

func Default() Config {
	return Config{
		Paths:          100000,
		Antithetic:     true,
		VarianceMethod: probability.SinglePass,
		LogLevel:       "info",
	}
}

// Load reads the optional .env files, then the process environment. A
// missing .env file is not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "loading %s", f)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	var err error

	if v, ok := lookup(envPaths); ok {
		if c.Paths, err = strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return Config{}, errors.Wrap(err, envPaths)
		}
	}
	if v, ok := lookup(envAntithetic); ok {
		if c.Antithetic, err = strconv.ParseBool(strings.TrimSpace(v)); err != nil {
			return Config{}, errors.Wrap(err, envAntithetic)
		}
	}
	if v, ok := lookup(envWorkers); ok {
		if c.Workers, err = strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return Config{}, errors.Wrap(err, envWorkers)
		}
	}
	if v, ok := lookup(envVariance); ok {
		if c.VarianceMethod, err = probability.ParseVarianceMethod(v); err != nil {
			return Config{}, errors.Wrap(err, envVariance)
		}
	}
	if v, ok := lookup(envDisableVector); ok {
		if c.DisableVector, err = strconv.ParseBool(strings.TrimSpace(v)); err != nil {
			return Config{}, errors.Wrap(err, envDisableVector)
		}
	}
	if v, ok := lookup(envCommon); ok {
		if c.CommonRandom, err = strconv.ParseBool(strings.TrimSpace(v)); err != nil {
			return Config{}, errors.Wrap(err, envCommon)
		}
	}
	if v, ok := lookup(envSeed); ok && strings.TrimSpace(v) != "" {
		if c.Seed, err = strconv.ParseUint(strings.TrimSpace(v), 10, 64); err != nil {
			return Config{}, errors.Wrap(err, envSeed)
		}
		c.Seeded = true
	}
	if v, ok := lookup(envLogLevel); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.TrimSpace(v)
	}

	if c.Paths <= 0 {
		return Config{}, errors.Errorf("%s must be positive, got %d", envPaths, c.Paths)
	}
	return c, nil
}
