// Package env reads typed settings from the process environment. Unset or
// empty variables yield the fallback; malformed values are errors naming the
// variable.
package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func String(key, fallback string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return fallback
}

func Bool(key string, fallback bool) (bool, error) {
	v, ok := lookup(key)
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid bool %q: %w", key, v, err)
	}
	return b, nil
}

func Int(key string, fallback int) (int, error) {
	v, ok := lookup(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid int %q: %w", key, v, err)
	}
	return n, nil
}
