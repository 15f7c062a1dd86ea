package cmd

import "rbxasset/internal/adapters/editor"

func openInEditor(path string, line int) error {
	c, err := editor.NewOpener().CommandAt(path, line)
	if err != nil {
		return err
	}
	return c.Run()
}
