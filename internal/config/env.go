package config

import (
	"fmt"
	"os"
	"reflect"
)

// applyEnvOverrides walks the config struct and replaces any field whose
// `env` tag names a set environment variable. Every config field is a
// string; typed values (the session TTL, store and driver enums) are
// parsed and checked by validateConfig after loading.
func applyEnvOverrides(v interface{}) error {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		envName := typ.Field(i).Tag.Get("env")
		if envName == "" {
			continue
		}
		envValue, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}

		if field.Kind() != reflect.String || !field.CanSet() {
			return fmt.Errorf("config field %s tagged env:%q is not an assignable string", typ.Field(i).Name, envName)
		}
		field.SetString(envValue)
	}
	return nil
}
