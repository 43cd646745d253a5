package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every env tag, e.g. REPLICAST_CHANNEL_CAPACITY.
const EnvPrefix = "REPLICAST_"

var ErrInvalidConfig = errors.New("invalid config")

// Load fills target, a pointer to a struct, in three steps. Later steps win:
//  1. `default` tags, decoded as yaml so durations and lists work
//  2. the yaml file at path, skipped when path is empty or missing
//  3. environment variables (after loading ./.env) named by `env` tags
func Load(path string, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to a struct, got %T", ErrInvalidConfig, target)
	}
	if err := SetDefaults(target); err != nil {
		return err
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err = yaml.Unmarshal(raw, target); err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if vd, ok := target.(interface{ Validate() error }); ok {
		return vd.Validate()
	}
	return nil
}

// SetDefaults assigns the `default` tag of every zero valued exported field,
// descending into nested structs.
func SetDefaults(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer {
		return fmt.Errorf("%w: SetDefaults needs a pointer, got %T", ErrInvalidConfig, target)
	}
	return setDefaults(v.Elem())
}

func setDefaults(v reflect.Value) error {
	t := v.Type()
	for i, j := 0, t.NumField(); i < j; i++ {
		ft, fv := t.Field(i), v.Field(i)
		if !ft.IsExported() {
			continue
		}
		if ft.Type.Kind() == reflect.Struct {
			if err := setDefaults(fv); err != nil {
				return err
			}
			continue
		}
		tag, ok := ft.Tag.Lookup("default")
		if !ok || !fv.IsZero() {
			continue
		}
		if err := yaml.Unmarshal([]byte(tag), fv.Addr().Interface()); err != nil {
			return fmt.Errorf("%w: default of %s.%s: %v", ErrInvalidConfig, t.Name(), ft.Name, err)
		}
	}
	return nil
}
