package preview

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"rbxasset/internal/ports"
)

// Ensure Opener implements Previewer
var _ ports.Previewer = (*Opener)(nil)

// Opener implements ports.Previewer by handing files to the OS default
// application
type Opener struct {
	goos string
	run  func(name string, args ...string) error
}

// NewOpener creates a new system opener
func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Preview opens the file at path without waiting for the viewer to exit
func (o *Opener) Preview(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot preview %s: %w", path, err)
	}

	name, args, err := o.command(path)
	if err != nil {
		return err
	}
	return o.run(name, args...)
}

func (o *Opener) command(path string) (string, []string, error) {
	switch o.goos {
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}

// DecodeToken turns a preview handoff token back into a filesystem path.
// Accepted forms, outermost first: percent-encoded, JSON-quoted, file://
// URI, or a plain path.
func DecodeToken(token string) (string, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return "", fmt.Errorf("empty preview token")
	}

	if strings.Contains(s, "%") {
		unescaped, err := url.QueryUnescape(s)
		if err != nil {
			return "", fmt.Errorf("invalid preview token: %w", err)
		}
		s = unescaped
	}

	if strings.HasPrefix(s, `"`) {
		var quoted string
		if err := json.Unmarshal([]byte(s), &quoted); err != nil {
			return "", fmt.Errorf("invalid preview token: %w", err)
		}
		s = quoted
	}

	if strings.HasPrefix(s, "file://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("invalid file URI: %w", err)
		}
		s = u.Path
		// file:///C:/x → C:/x
		if len(s) > 2 && s[0] == '/' && s[2] == ':' {
			s = s[1:]
		}
	}

	return s, nil
}
