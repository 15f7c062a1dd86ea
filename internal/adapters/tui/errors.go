package tui

import "errors"

var errNoEditor = errors.New("no editor configured")
