package main

import (
	"github.com/zyedidia/clipboard"
	"go.uber.org/zap"
)

type ClipMethod uint8

const (
	ClipExternal ClipMethod = iota
	ClipInternal
)

func (m ClipMethod) String() string {
	if m == ClipExternal {
		return "external"
	}
	return "internal"
}

// A Clipboard uses the system clipboard when one is available and falls back
// to a buffer private to the process otherwise.
type Clipboard struct {
	method   ClipMethod
	internal string
	log      *zap.Logger
}

// NewClipboard initializes the system clipboard for the given method, and if
// that fails, the internal method is chosen instead. The failure is logged
// but not fatal.
func NewClipboard(m ClipMethod, log *zap.Logger) *Clipboard {
	c := &Clipboard{method: ClipInternal, log: log}
	if m == ClipExternal {
		if err := clipboard.Initialize(); err != nil {
			log.Info("system clipboard unavailable", zap.Error(err))
		} else {
			c.method = ClipExternal
		}
	}
	log.Debug("clipboard ready", zap.Stringer("method", c.method))
	return c
}

func (c *Clipboard) Method() ClipMethod {
	return c.method
}

// Read receives the clipboard contents.
func (c *Clipboard) Read() (string, error) {
	if c.method == ClipExternal {
		return clipboard.ReadAll("clipboard")
	}
	return c.internal, nil
}

// Write sets the clipboard contents.
func (c *Clipboard) Write(content string) error {
	if c.method == ClipExternal {
		return clipboard.WriteAll(content, "clipboard")
	}
	c.internal = content
	return nil
}
