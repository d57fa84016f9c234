package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandlerCompilesAdditionToAsmFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.rlang")
	if err := os.WriteFile(src, []byte("(+ 2 2)"), 0o644); err != nil {
		t.Fatal(err)
	}

	status := Handler([]string{src}, map[string]string{})
	if status != 0 {
		t.Fatalf("Handler() = %d, want 0", status)
	}

	out, err := os.ReadFile(filepath.Join(dir, "prog.asm"))
	if err != nil {
		t.Fatalf("expected prog.asm to be written: %v", err)
	}
	if !strings.Contains(string(out), "global start") {
		t.Fatalf("asm output missing 'global start':\n%s", out)
	}
	if !strings.Contains(string(out), "mov rax, 4") {
		t.Fatalf("asm output for (+ 2 2) should fold to rax=4 at partial eval:\n%s", out)
	}
}

func TestHandlerReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.rlang")
	if err := os.WriteFile(src, []byte("(+ 2)"), 0o644); err != nil {
		t.Fatal(err)
	}

	status := Handler([]string{src}, map[string]string{})
	if status != -1 {
		t.Fatalf("Handler() = %d, want -1 for wrong-arity '+'", status)
	}
}

func TestHandlerHonorsOutOption(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.rlang")
	custom := filepath.Join(dir, "custom.asm")
	if err := os.WriteFile(src, []byte("(42)"), 0o644); err != nil {
		t.Fatal(err)
	}

	status := Handler([]string{src}, map[string]string{"out": custom})
	if status != 0 {
		t.Fatalf("Handler() = %d, want 0", status)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Fatalf("expected --out path to be written: %v", err)
	}
}
