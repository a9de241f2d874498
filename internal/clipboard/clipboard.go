package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

var (
	ErrEmpty       = errors.New("nothing to copy")
	ErrUnsupported = errors.New("no clipboard utility available")
)

// Writer copies text somewhere the user can paste it from.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	return WriteAll(text)
}

// WriteAll copies text to the system clipboard. Empty text is rejected, as
// is any write on a system without a clipboard utility (e.g. headless Linux).
func WriteAll(text string) error {
	if text == "" {
		return ErrEmpty
	}
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

