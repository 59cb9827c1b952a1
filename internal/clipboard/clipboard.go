// Package clipboard copies text to the system clipboard, preferring the
// Wayland tool when a Wayland session is detected.
package clipboard

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// Copy places text on the system clipboard.
func Copy(text string) error {
	if isWayland() {
		if err := copyWayland(text); err == nil {
			return nil
		}
		// Fall through to the portable path if wl-copy is missing.
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

func isWayland() bool {
	return os.Getenv("WAYLAND_DISPLAY") != "" || os.Getenv("XDG_SESSION_TYPE") == "wayland"
}

func copyWayland(text string) error {
	cmd := exec.Command("wl-copy")
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wl-copy: %w", err)
	}
	return nil
}
