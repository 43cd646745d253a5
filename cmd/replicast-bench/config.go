package main

import (
	"fmt"
	"time"

	"m7s.live/replicast/config"
)

const (
	ModeBlocking = "blocking"
	ModeTry      = "try"
)

type Bench struct {
	Writers    int           `yaml:"writers" env:"WRITERS" default:"4"`
	Readers    int           `yaml:"readers" env:"READERS" default:"2"`
	Messages   int           `yaml:"messages" env:"MESSAGES" default:"10000"` // per writer
	Rate       float64       `yaml:"rate" env:"RATE"`                         // messages per second per writer, 0 is unlimited
	Mode       string        `yaml:"mode" env:"MODE" default:"blocking"`      // blocking or try
	Retries    int           `yaml:"retries" env:"RETRIES" default:"3"`       // TryPublish attempts before falling back to Publish
	RetrySleep time.Duration `yaml:"retrySleep" env:"RETRY_SLEEP" default:"100us"`
	Interval   time.Duration `yaml:"interval" env:"INTERVAL" default:"1ms"` // reader update period
	Batch      int           `yaml:"batch" env:"BATCH" default:"256"`       // messages applied per reader update
}

type Config struct {
	config.Engine `yaml:",inline"`
	Bench         Bench       `yaml:"bench" envPrefix:"BENCH_"`
	HTTP          config.HTTP `yaml:"http" envPrefix:"HTTP_"` // serves /metrics and /stats when listenAddr is set
}

func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	b := &c.Bench
	switch {
	case b.Writers <= 0:
		return fmt.Errorf("%w: bench needs at least one writer", config.ErrInvalidConfig)
	case b.Readers < 0:
		return fmt.Errorf("%w: negative reader count %d", config.ErrInvalidConfig, b.Readers)
	case b.Messages <= 0:
		return fmt.Errorf("%w: messages must be positive", config.ErrInvalidConfig)
	case b.Mode != ModeBlocking && b.Mode != ModeTry:
		return fmt.Errorf("%w: unknown mode %q", config.ErrInvalidConfig, b.Mode)
	case b.Interval <= 0 || b.Batch <= 0:
		return fmt.Errorf("%w: interval and batch must be positive", config.ErrInvalidConfig)
	}
	return nil
}
