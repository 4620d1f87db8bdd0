// Package config provides configuration structures and utilities for scrubsnap.
// It defines every pattern literal, placeholder, seed, and path convention the
// anonymizer uses as named defaults, and lets a YAML profile override them so
// differently-named snapshots can be processed without code changes.
package config
