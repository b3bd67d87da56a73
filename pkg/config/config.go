package config

import (
	"os"
	"runtime"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/operator-framework/fasb/pkg/cache"
	"github.com/operator-framework/fasb/pkg/lib/codec"
	"github.com/operator-framework/fasb/pkg/navigator"
	"github.com/operator-framework/fasb/pkg/output"
	"github.com/operator-framework/fasb/pkg/sampler"
)

// Config holds the settings shared by every fasb command.
type Config struct {
	Mode       navigator.ModeKind   `mapstructure:"mode"`
	Weight     navigator.WeightKind `mapstructure:"weight"`
	N          int                  `mapstructure:"n"`
	CacheSize  int                  `mapstructure:"cacheSize"`
	Heuristic  sampler.Heuristic    `mapstructure:"heuristic"`
	SampleSize int                  `mapstructure:"sampleSize"`
	Workers    int                  `mapstructure:"workers"`
	Output     output.Format        `mapstructure:"output"`
}

func Default() *Config {
	return &Config{
		Mode:      navigator.GoalOrientedMode,
		Weight:    navigator.FacetCountingWeight,
		N:         navigator.DefaultN,
		CacheSize: cache.DefaultSize,
		Heuristic: sampler.DGreedySieveMax,
		Workers:   runtime.GOMAXPROCS(0),
		Output:    output.Text,
	}
}

// LoadConfig reads a YAML file over the defaults. Environment variables
// in the path are expanded.
func LoadConfig(cfgPath string) (*Config, error) {
	d, err := os.ReadFile(os.ExpandEnv(cfgPath))
	if err != nil {
		return nil, err
	}
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(d, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", cfgPath)
	}
	cfg := Default()
	if err := cfg.Decode(raw); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", cfgPath)
	}
	return cfg, nil
}

// Decode overlays raw settings on c.
func (c *Config) Decode(raw map[string]interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       codec.HookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.N < 0 {
		return errors.Errorf("n must not be negative, got %d", c.N)
	}
	if c.CacheSize <= 0 {
		return errors.Errorf("cacheSize must be positive, got %d", c.CacheSize)
	}
	if c.SampleSize < 0 {
		return errors.Errorf("sampleSize must not be negative, got %d", c.SampleSize)
	}
	if c.Workers <= 0 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	f, err := output.ParseFormat(string(c.Output))
	if err != nil {
		return err
	}
	c.Output = f
	return nil
}
