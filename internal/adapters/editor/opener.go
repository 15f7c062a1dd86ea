package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"rbxasset/internal/ports"
)

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// Opener implements ports.EditorOpener using $VISUAL / $EDITOR
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
}

// OpenFile opens a file in the user's editor and waits for it to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd opening path at its first line
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	return o.CommandAt(path, 0)
}

// CommandAt returns an exec.Cmd opening path at a zero-based line. The line
// is passed in whichever form the detected editor understands.
func (o *Opener) CommandAt(path string, line int) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// $EDITOR may carry flags, e.g. "code --wait"
	fields := strings.Fields(editor)
	args := append(fields[1:], lineArgs(fields[0], path, line)...)

	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func lineArgs(editor, path string, line int) []string {
	if line <= 0 {
		return []string{path}
	}
	n := strconv.Itoa(line + 1)
	switch strings.TrimSuffix(filepath.Base(editor), ".exe") {
	case "code", "codium", "cursor":
		return []string{"-g", path + ":" + n}
	case "vi", "vim", "nvim", "nano", "emacs", "hx", "micro":
		return []string{"+" + n, path}
	default:
		return []string{path}
	}
}

func (o *Opener) findEditor() string {
	if visual := o.getenv("VISUAL"); visual != "" {
		return visual
	}
	if editor := o.getenv("EDITOR"); editor != "" {
		return editor
	}

	for _, candidate := range []string{"nvim", "vim", "vi", "nano", "code"} {
		if p, err := o.lookPath(candidate); err == nil {
			return p
		}
	}
	return ""
}
