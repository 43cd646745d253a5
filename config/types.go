package config

import "fmt"

type Channel struct {
	Name     string `yaml:"name" env:"NAME"`                      // shown in logs and metrics, random when empty
	Capacity int    `yaml:"capacity" env:"CAPACITY" default:"16"` // how far the slowest reader may lag before publishers wait
}

func (c Channel) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: channel capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	return nil
}

type Log struct {
	Level   string `yaml:"level" env:"LEVEL" default:"info"`     // debug, info, warn, error or trace
	File    string `yaml:"file" env:"FILE"`                      // rotating log file, stdout only when empty
	MaxAge  int    `yaml:"maxAge" env:"MAX_AGE" default:"14"`    // days
	MaxSize int    `yaml:"maxSize" env:"MAX_SIZE" default:"100"` // megabytes
	Fatal   string `yaml:"fatal" env:"FATAL"`                    // stderr is redirected here, crash dumps included
}

// Engine is the configuration shared by every process embedding replicast.
type Engine struct {
	Channel Channel `yaml:"channel" envPrefix:"CHANNEL_"`
	Log     Log     `yaml:"log" envPrefix:"LOG_"`
}

func (e *Engine) Validate() error {
	return e.Channel.Validate()
}
