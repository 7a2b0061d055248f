// Package browser opens external link URLs in the system browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener launches the default browser on external graph nodes
type Opener struct{}

// NewOpener creates a new browser opener
func NewOpener() *Opener {
	return &Opener{}
}

// OpenURL opens an http(s) URL in the default browser
func (o *Opener) OpenURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open non-http URL %q", raw)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", raw)
	case "linux":
		cmd = exec.Command("xdg-open", raw)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", raw)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
