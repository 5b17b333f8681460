//go:build gocv

package main

import (
	"testing"

	"github.com/ironsheep/strip-reader-mcp/internal/config"
	"github.com/ironsheep/strip-reader-mcp/internal/strip"
)

func TestNewLocator_OpenCV(t *testing.T) {
	l, err := newLocator(config.LocatorOpenCV)
	if err != nil {
		t.Fatalf("newLocator failed: %v", err)
	}
	if _, ok := l.(strip.ContourLocator); !ok {
		t.Errorf("got %T, want strip.ContourLocator", l)
	}
}
