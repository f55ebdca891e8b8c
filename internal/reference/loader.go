package reference

import (
	"os"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadFile reads YAML overrides from path on top of Default. Absent keys keep
// their defaults, lists replace the default list and maps are merged by key.
func LoadFile(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read reference tables %s", path)
	}
	return Parse(raw)
}

// Parse applies YAML overrides to Default and validates the result.
func Parse(raw []byte) (*Tables, error) {
	tables := Default()
	if err := yaml.Unmarshal(raw, tables); err != nil {
		return nil, crerr.Wrap(err, "decode reference tables")
	}
	if err := Validate(tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// Validate checks table shape and that every alias targets a known round.
func Validate(t *Tables) error {
	if err := validator.New().Struct(t); err != nil {
		return crerr.Wrap(err, "invalid reference tables")
	}

	rounds := t.Rounds()
	for from, to := range t.RoundAliases {
		if rounds.Rank(to) < 0 {
			return crerr.Newf("invalid reference tables: round alias %q targets unknown round %q", from, to)
		}
	}
	return nil
}
