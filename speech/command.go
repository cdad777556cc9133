package speech

import (
	"context"
	"fmt"
	"os/exec"
)

// Command speaks through a local TTS binary such as espeak. The text is
// passed as the last argument, after "--" so a line starting with a dash is
// never read as a flag.
type Command struct {
	Path string
	Args []string
}

func NewCommand(path string, args ...string) *Command {
	return &Command{Path: path, Args: args}
}

// Available reports whether the binary can be found.
func (c *Command) Available() bool {
	if c.Path == "" {
		return false
	}
	_, err := exec.LookPath(c.Path)
	return err == nil
}

func (c *Command) Speak(ctx context.Context, text string) error {
	if !c.Available() {
		return fmt.Errorf("%w: %q not found", ErrUnavailable, c.Path)
	}
	args := append(append([]string(nil), c.Args...), "--", text)
	cmd := exec.CommandContext(ctx, c.Path, args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("speech: run %s: %w", c.Path, err)
	}
	return nil
}
