package model

import "errors"

var (
	ErrInvalidHex       = errors.New("invalid hex color")
	ErrNotDirectory     = errors.New("not a directory")
	ErrThemeExists      = errors.New("theme already exists")
	ErrInvalidThemeName = errors.New("invalid theme name")
	ErrNoHistory        = errors.New("no export history")
)
