package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	exts := []string{".sus"}

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write to source", fsnotify.Event{Name: "a.sus", Op: fsnotify.Write}, true},
		{"created source", fsnotify.Event{Name: "dir/b.sus", Op: fsnotify.Create}, true},
		{"removed source", fsnotify.Event{Name: "a.sus", Op: fsnotify.Remove}, false},
		{"chmod", fsnotify.Event{Name: "a.sus", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevant(tt.ev, exts); got != tt.want {
				t.Fatalf("relevant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunReportsChangedSources(t *testing.T) {
	dir := t.TempDir()

	w, err := New([]string{".sus"}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()
	w.SetDebounce(20 * time.Millisecond)

	if err := w.Add(dir); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) { changed <- path })
	}()

	target := filepath.Join(dir, "top.sus")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(target, []byte("module A {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-changed:
		if got != target {
			t.Fatalf("reported %s, want %s", got, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
