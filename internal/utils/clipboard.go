package utils

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyText writes text to the system clipboard.
func CopyText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard available (install xclip, xsel or wl-clipboard)")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
