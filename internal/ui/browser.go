package ui

import (
	"io"

	"github.com/cli/go-gh/v2/pkg/browser"
)

// NewBrowser returns a Browser honoring GH_BROWSER and BROWSER, falling back
// to the platform opener. Launcher output is discarded while the table owns
// the terminal.
func NewBrowser() Browser {
	return browser.New("", io.Discard, io.Discard)
}
