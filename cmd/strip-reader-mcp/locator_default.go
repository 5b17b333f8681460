//go:build !gocv

package main

import (
	"fmt"

	"github.com/ironsheep/strip-reader-mcp/internal/config"
	"github.com/ironsheep/strip-reader-mcp/internal/strip"
)

// newLocator maps a configured locator name to an implementation.
func newLocator(name string) (strip.Locator, error) {
	switch name {
	case "", config.LocatorOtsu:
		return strip.NewOtsuLocator(), nil
	case config.LocatorOpenCV:
		return nil, fmt.Errorf("locator %q needs a binary built with -tags gocv", name)
	default:
		return nil, fmt.Errorf("unknown locator %q", name)
	}
}
