package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const shapesPattern = "../../internal/scan/testdata/shapes"

func TestRun_Stdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-o", "-", shapesPattern}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		"// Code generated by dummygen. DO NOT EDIT.",
		"package shapes",
		`dummy.RegisterConstructor(NewCanvas, "background", "shapes")`,
		"dummy.RegisterSealed[Shape](reflect.TypeFor[Circle](), reflect.TypeFor[*Square]())",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr without -v: %s", stderr.String())
	}
}

func TestRun_File(t *testing.T) {
	target := filepath.Join(t.TempDir(), "register.go")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-v", "-o", target, shapesPattern}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "dummy.RegisterEnum(Red, Green, Blue)") {
		t.Errorf("unexpected file content:\n%s", data)
	}
	if !strings.Contains(stderr.String(), "wrote "+target) {
		t.Errorf("expected trace output, got: %s", stderr.String())
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Errorf("exit code %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "Usage: dummygen") {
		t.Errorf("expected usage, got: %s", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"./does/not/exist"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code %d, want 1", code)
	}
}
