package input

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/thesavant42/repotablo/internal/models"
)

// ErrNoEditor is returned when neither an editor nor a prompt is available
var ErrNoEditor = errors.New("no editor configured: set $EDITOR or pass an input")

const editorHeader = `# Paste GitHub repository links or owner/name lines below.
# Lines starting with '#' are ignored. Save and quit to continue.

`

// fromEditor opens the configured editor on a scratch file and scans what
// the user saved. Without an editor the interactive prompt is used.
func (r *Resolver) fromEditor(ctx context.Context) ([]models.RepoRef, error) {
	if strings.TrimSpace(r.Editor) == "" {
		if r.Prompt == nil {
			return nil, ErrNoEditor
		}
		text, err := r.Prompt()
		if err != nil {
			return nil, err
		}
		return ExtractText(text), nil
	}

	args, err := shlex.Split(r.Editor)
	if err != nil {
		return nil, fmt.Errorf("invalid editor command %q: %w", r.Editor, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("invalid editor command %q: no program", r.Editor)
	}

	f, err := os.CreateTemp("", "repotablo-*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(editorHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	r.logger().Debug("Opening editor", "command", args[0], "file", path)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("editor %s failed: %w", args[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp file: %w", err)
	}
	return ExtractText(string(data)), nil
}
