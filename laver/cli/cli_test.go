package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/laver"
	"github.com/npillmayer/laver/source"
	"github.com/npillmayer/laver/translator"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func writeSource(t *testing.T, name, text string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSessionRunsFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.cli")
	defer teardown()
	//
	out := &bytes.Buffer{}
	s := newSession(out, settings{fold: true})
	defer s.close()
	first := writeSource(t, "first.lv", "var x = \"shared\"\np: \"first\"\n")
	second := writeSource(t, "second.lv", "y = x\nprint(y)\n")
	for _, path := range []string{first, second} {
		if err := s.runFile(context.Background(), path); err != nil {
			t.Fatal(err)
		}
	}
	if out.String() != "first\nshared\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	empty := writeSource(t, "empty.lv", "\n")
	if err := s.runFile(context.Background(), empty); err != nil {
		t.Errorf("expected empty file to be no error, have %v", err)
	}
}

func TestSessionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.cli")
	defer teardown()
	//
	s := newSession(&bytes.Buffer{}, settings{fold: true})
	defer s.close()
	err := s.runFile(context.Background(), filepath.Join(t.TempDir(), "missing.lv"))
	var ioerr *source.IOError
	if !errors.As(err, &ioerr) {
		t.Errorf("expected I/O error, have %v", err)
	}
	bad := writeSource(t, "bad.lv", "p: \"ok\"\nthis is not laver\n")
	err = s.runFile(context.Background(), bad)
	var serr *laver.SyntaxError
	if !errors.As(err, &serr) || serr.Line != 2 {
		t.Errorf("expected syntax error in line 2, have %v", err)
	}
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.cli")
	defer teardown()
	//
	out := &bytes.Buffer{}
	s := newSession(out, settings{dump: true})
	defer s.close()
	path := writeSource(t, "dump.lv", "var x = \"v\"\nnewfunc: f {\np: \"in f\"\nendfunc\n")
	if err := s.runFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	dump := out.String()
	for _, expect := range []string{"print \"in f\"", "newfunc f", "variable", "function"} {
		if !strings.Contains(dump, expect) {
			t.Errorf("expected dump to contain %q", expect)
		}
	}
}

func TestSymbolTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.cli")
	defer teardown()
	//
	prog, err := translator.Translate("var x = \"v\"\narray a: [1, x]\nnewfunc: f {\nendfunc")
	if err != nil {
		t.Fatal(err)
	}
	tw := symbolTable(prog.Tables)
	if tw.Length() != 3 {
		t.Errorf("expected 3 symbols, have %d", tw.Length())
	}
	if r := tw.Render(); !strings.Contains(r, `[1, "v"]`) {
		t.Errorf("expected array to show its elements, have\n%s", r)
	}
}

func TestFoldedSourceReportsRawLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.cli")
	defer teardown()
	//
	out := &bytes.Buffer{}
	s := newSession(out, settings{fold: true})
	defer s.close()
	path := writeSource(t, "wide.lv", "ｐ：　＂안녕＂\nｘｙｚ！\n")
	err := s.runFile(context.Background(), path)
	var serr *laver.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error, have %v", err)
	}
	if serr.Line != 2 || serr.Text != "ｘｙｚ！" {
		t.Errorf("expected line 2 to be reported as written, have %q", serr.Text)
	}
	path = writeSource(t, "wide-ok.lv", "ｐ：　＂안녕＂\n")
	if err := s.runFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if out.String() != "안녕\n" {
		t.Errorf("expected folded print statement to run, output is %q", out.String())
	}
}

type fixedPaths string

func (p fixedPaths) ConfigDir() string { return string(p) }
func (p fixedPaths) LogDir() string    { return string(p) }

func TestTraceDestination(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.cli")
	defer teardown()
	//
	for i, x := range []struct {
		logfile string
		paths   AppPaths
		expect  string
	}{
		{"", fixedPaths("/logs"), ""},
		{"stderr", fixedPaths("/logs"), ""},
		{"file:///tmp/t.log", fixedPaths("/logs"), "file:///tmp/t.log"},
		{"/tmp/t.log", fixedPaths("/logs"), "file:///tmp/t.log"},
		{"t.log", fixedPaths("/logs"), "file:///logs/t.log"},
		{"t.log", fixedPaths(""), "file://t.log"},
	} {
		if d := traceDestination(x.logfile, x.paths); d != x.expect {
			t.Errorf("test %d: expected %q, have %q", i, x.expect, d)
		}
	}
}
