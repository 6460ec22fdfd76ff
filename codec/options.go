package codec

import (
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/kbukum/fuel/errors"
)

// Options is the option map handed to a Factory. Keys are snake_case.
type Options map[string]any

// Bool reads a boolean option. Missing keys return false.
func (o Options) Bool(key string) (bool, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(b) {
		case "true", "yes", "1":
			return true, nil
		case "false", "no", "0", "":
			return false, nil
		}
	}
	return false, apperrors.InvalidConfig(fmt.Sprintf("codec option %s: expected bool, got %v", key, v))
}

// String reads a string option. Missing keys return "".
func (o Options) String(key string) (string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", apperrors.InvalidConfig(fmt.Sprintf("codec option %s: expected string, got %T", key, v))
	}
	return s, nil
}

// Check rejects keys outside known.
func (o Options) Check(known ...string) error {
	for key := range o {
		if !slices.Contains(known, key) {
			return apperrors.InvalidConfig(fmt.Sprintf("unknown codec option %q", key))
		}
	}
	return nil
}
