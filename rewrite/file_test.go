package rewrite

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/minios-linux/chlang/filter"
	"github.com/minios-linux/chlang/pofile"
)

func newRewriter(entries map[string]string) *Rewriter {
	return &Rewriter{
		Translator: &Translator{Table: pofile.NewTable(entries)},
		Filter:     filter.Default(),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "a", want: []string{"a"}},
		{in: "a\n", want: []string{"a\n"}},
		{in: "a\r\nb\n\nc", want: []string{"a\r\n", "b\n", "\n", "c"}},
	}
	for _, tc := range tests {
		if got := splitLines(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("splitLines(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRewriteFilePreservesUntouchedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "BookmarkUI.cpp")
	input := "#include \"BookmarkUI.h\"\r\n" +
		"    title = \"Bookmarks\";\r\n" +
		"    elm_object_style_set(btn, \"Bookmarks\");\r\n" +
		"    label = \"unknown text\";\n" +
		"    broken = \"Bookmarks\n" +
		"    return 0;"

	writeFile(t, path, input)

	rw := newRewriter(map[string]string{"Bookmarks": "Zakladki"})
	var reported []*Result
	rw.OnFile = func(r *Result) { reported = append(reported, r) }

	res, err := rw.RewriteFile(path)
	if err != nil {
		t.Fatalf("RewriteFile error: %v", err)
	}
	if !res.Changed || res.Translated != 1 {
		t.Fatalf("Changed = %v, Translated = %d; want true, 1", res.Changed, res.Translated)
	}

	want := "#include \"BookmarkUI.h\"\r\n" +
		"    title = _(\"Zakladki\");\r\n" +
		"    elm_object_style_set(btn, \"Bookmarks\");\r\n" +
		"    label = \"unknown text\";\n" +
		"    broken = \"Bookmarks\n" +
		"    return 0;"
	if got := readFile(t, path); got != want {
		t.Fatalf("file content = %q, want %q", got, want)
	}
	if len(reported) != 1 || reported[0] != res {
		t.Fatalf("OnFile calls = %d", len(reported))
	}
}

func TestRewriteFileNoChangeSkipsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ZoomUI.cpp")
	input := "x = \"nothing here\";\n"
	writeFile(t, path, input)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	rw := newRewriter(map[string]string{"Zoom": "Masshtab"})
	res, err := rw.RewriteFile(path)
	if err != nil {
		t.Fatalf("RewriteFile error: %v", err)
	}
	if res.Changed {
		t.Fatal("Changed = true, want false")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !info.ModTime().Equal(old) {
		t.Fatalf("file was rewritten: mtime %v, want %v", info.ModTime(), old)
	}
	if got := readFile(t, path); got != input {
		t.Fatalf("content = %q, want %q", got, input)
	}
}

func TestRewriteFileExclusionWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "TabUI.cpp")
	input := "BROWSER_LOG(\"Tabs\");\n"
	writeFile(t, path, input)

	rw := newRewriter(map[string]string{"Tabs": "Vkladki"})
	var markers []string
	rw.OnExcluded = func(line, marker string) { markers = append(markers, marker) }

	res, err := rw.RewriteFile(path)
	if err != nil {
		t.Fatalf("RewriteFile error: %v", err)
	}
	if res.Changed {
		t.Fatal("excluded line must not be translated")
	}
	if !reflect.DeepEqual(markers, []string{"BROWSER_LOG"}) {
		t.Fatalf("excluded markers = %v, want [BROWSER_LOG]", markers)
	}
	if got := readFile(t, path); got != input {
		t.Fatalf("content = %q, want %q", got, input)
	}
}

func TestRewriteFileDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "TabUI.cpp")
	input := "s = \"Tabs\";\n"
	writeFile(t, path, input)

	rw := newRewriter(map[string]string{"Tabs": "Vkladki"})
	rw.DryRun = true
	res, err := rw.RewriteFile(path)
	if err != nil {
		t.Fatalf("RewriteFile error: %v", err)
	}
	if !res.Changed || res.Content() != "s = _(\"Vkladki\");\n" {
		t.Fatalf("result = %+v", res)
	}
	if got := readFile(t, path); got != input {
		t.Fatalf("dry run wrote the file: %q", got)
	}
}

func TestRewriteFileKeepsPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tool.cpp")
	writeFile(t, path, "s = \"Tabs\";\n")
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod: %v", err)
	}

	rw := newRewriter(map[string]string{"Tabs": "Vkladki"})
	if _, err := rw.RewriteFile(path); err != nil {
		t.Fatalf("RewriteFile error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %d entries", len(entries))
	}
}

func TestRewriteFileMissing(t *testing.T) {
	rw := newRewriter(nil)
	_, err := rw.RewriteFile(filepath.Join(t.TempDir(), "missing.cpp"))
	if !errors.Is(err, ErrFileAccess) {
		t.Fatalf("error = %v, want ErrFileAccess", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestRewriteLinesDoesNotModifyInput(t *testing.T) {
	rw := newRewriter(map[string]string{"foo": "bar"})
	in := []string{"a = \"foo\";\n", "b = 1;\n"}
	var n int
	out := rw.RewriteLines(in, &n)

	if in[0] != "a = \"foo\";\n" {
		t.Fatal("input slice was modified")
	}
	if n != 1 || out[0] != "a = _(\"bar\");\n" || out[1] != in[1] {
		t.Fatalf("RewriteLines() = %q, n = %d", out, n)
	}
}
