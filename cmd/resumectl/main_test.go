package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderHTMLOnly(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(in, []byte("姓名：张三\n技能：\n- Go"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if _, err := run(t, "render", "--in", in, "--html", "--title", "CV"); err != nil {
		t.Fatalf("render: %v", err)
	}
	html, err := os.ReadFile(filepath.Join(dir, "cv.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"<title>CV</title>", "<h2>技能</h2>", "<li>Go</li>"} {
		if !strings.Contains(string(html), want) {
			t.Fatalf("missing %q in output", want)
		}
	}
}

func TestExtract(t *testing.T) {
	in := filepath.Join(t.TempDir(), "cv.txt")
	os.WriteFile(in, []byte("  hello resume \n"), 0o644)
	out, err := run(t, "extract", in)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out != "hello resume\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestOptimizeRequiresFlags(t *testing.T) {
	if _, err := run(t, "optimize"); err == nil {
		t.Fatalf("expected missing flag error")
	}
}

func TestOptimizeRequiresAPIKey(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "cv.txt")
	job := filepath.Join(dir, "jd.txt")
	os.WriteFile(resume, []byte("resume"), 0o644)
	os.WriteFile(job, []byte("job"), 0o644)
	t.Setenv("GOOGLE_API_KEY", "")

	if _, err := run(t, "optimize", "-r", resume, "-j", job); err == nil || !strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}
