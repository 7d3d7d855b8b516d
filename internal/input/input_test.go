package input

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gopkg.in/h2non/gock.v1"
)

func TestMain(m *testing.M) {
	gock.DisableNetworking()
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveStdin(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		tty  bool
	}{
		{"dash", StdinArg, true},
		{"piped without argument", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resolver{
				Stdin:    strings.NewReader("cli/go-gh\nhttps://github.com/spf13/cobra\n"),
				StdinTTY: tt.tty,
			}
			refs, err := r.Resolve(context.Background(), tt.arg)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got := refStrings(refs); got != "cli/go-gh,spf13/cobra" {
				t.Errorf("Resolve() = %q", got)
			}
		})
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "list.md", "* [viper](https://github.com/spf13/viper)\n")

	refs, err := (&Resolver{StdinTTY: true}).Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := refStrings(refs); got != "spf13/viper" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/one.md", "https://github.com/cli/go-gh\n")
	writeFile(t, dir, "b/deep/two.md", "https://github.com/google/shlex\nhttps://github.com/cli/go-gh\n")
	writeFile(t, dir, "b/skip.txt", "https://github.com/not/included\n")

	refs, err := (&Resolver{StdinTTY: true}).Resolve(context.Background(), filepath.Join(dir, "**", "*.md"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := refStrings(refs); got != "cli/go-gh,google/shlex" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveErrors(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.md", "# nothing here\n")

	tests := []struct {
		name    string
		arg     string
		wantErr error
	}{
		{"no repositories", empty, ErrNoRepositories},
		{"glob without matches", filepath.Join(dir, "*.yaml"), ErrNoFiles},
		{"missing file", filepath.Join(dir, "missing.md"), os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Resolver{StdinTTY: true}).Resolve(context.Background(), tt.arg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveURLReadme(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://raw.githubusercontent.com").
		Get("/avelino/awesome-go/HEAD/README.md").
		Reply(200).
		SetHeader("Content-Type", "text/plain; charset=utf-8").
		BodyString("## CLI\n- [cobra](https://github.com/spf13/cobra) - commander\n- [urfave/cli](https://github.com/urfave/cli)\n")

	refs, err := (&Resolver{StdinTTY: true}).Resolve(context.Background(), "https://github.com/avelino/awesome-go")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := refStrings(refs); got != "spf13/cobra,urfave/cli" {
		t.Errorf("Resolve() = %q", got)
	}
	if !gock.IsDone() {
		t.Error("README was not fetched")
	}
}

func TestResolveURLHTML(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://example.com").
		Get("/stars").
		Reply(200).
		SetHeader("Content-Type", "text/html").
		BodyString(`<ul><li><a href="https://github.com/charmbracelet/huh">huh</a></li></ul>`)

	refs, err := (&Resolver{StdinTTY: true}).Resolve(context.Background(), "https://example.com/stars")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := refStrings(refs); got != "charmbracelet/huh" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveURLHTMLText(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://example.com").
		Get("/list").
		Reply(200).
		SetHeader("Content-Type", "text/html; charset=utf-8").
		BodyString(`<pre>https://github.com/cli/go-gh</pre>
<p><a href="https://github.com/spf13/cobra">cobra</a> and https://github.com/spf13/cobra again</p>`)

	refs, err := (&Resolver{StdinTTY: true}).Resolve(context.Background(), "https://example.com/list")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := refStrings(refs); got != "spf13/cobra,cli/go-gh" {
		t.Errorf("Resolve() = %q, want anchors first then text links", got)
	}
}

func TestResolveURLStatus(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://example.com").Get("/gone").Reply(410)

	if _, err := (&Resolver{StdinTTY: true}).Resolve(context.Background(), "https://example.com/gone"); err == nil {
		t.Error("Resolve() error = nil, want status error")
	}
}

func TestResolvePromptFallback(t *testing.T) {
	r := &Resolver{
		StdinTTY: true,
		Prompt: func() (string, error) {
			return "mattn/go-isatty\n", nil
		},
	}
	refs, err := r.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := refStrings(refs); got != "mattn/go-isatty" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestResolveNoEditor(t *testing.T) {
	_, err := (&Resolver{StdinTTY: true}).Resolve(context.Background(), "")
	if !errors.Is(err, ErrNoEditor) {
		t.Errorf("Resolve() error = %v, want ErrNoEditor", err)
	}
}

func TestResolveEmptyEditorCommand(t *testing.T) {
	r := &Resolver{StdinTTY: true, Editor: "# no program"}
	_, err := r.Resolve(context.Background(), "")
	if err == nil {
		t.Fatal("Resolve() error = nil, want invalid editor command")
	}
	if msg := err.Error(); !strings.Contains(msg, "invalid editor command") || strings.Contains(msg, "%!") {
		t.Errorf("Resolve() error = %q", msg)
	}
}

func TestResolveEditor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh as the editor")
	}

	r := &Resolver{
		StdinTTY: true,
		Editor:   `sh -c 'echo "https://github.com/dustin/go-humanize" >> "$0"'`,
	}
	refs, err := r.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := refStrings(refs); got != "dustin/go-humanize" {
		t.Errorf("Resolve() = %q", got)
	}
}
