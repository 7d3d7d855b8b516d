package ui

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/muesli/termenv"
)

// systemClipboard writes through xclip/xsel/wl-copy, pbcopy or the Windows API
type systemClipboard struct{}

func (systemClipboard) SetText(text string) error {
	return clipboard.WriteAll(text)
}

// osc52Clipboard asks the terminal emulator to set the clipboard, which also
// works over SSH
type osc52Clipboard struct {
	out *termenv.Output
}

func (c osc52Clipboard) SetText(text string) error {
	c.out.Copy(text)
	return nil
}

// NewClipboard returns the best clipboard available, or nil when there is none
func NewClipboard() Clipboard {
	if !clipboard.Unsupported {
		return systemClipboard{}
	}
	if term.IsTerminal(os.Stderr) {
		return osc52Clipboard{out: termenv.NewOutput(os.Stderr)}
	}
	return nil
}
