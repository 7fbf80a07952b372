package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	ctx := context.Background()
	key, err := store.Save(ctx, []byte("payload"), SaveOptions{Category: "Events", Extension: ".JPG"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(key, "events/") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("unexpected key %q", key)
	}

	abs := filepath.Join(dir, filepath.FromSlash(key))
	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(abs); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("deleting a missing file should succeed, got %v", err)
	}
}

func TestLocalStorageSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	seen := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		key, err := store.Save(context.Background(), []byte{1}, SaveOptions{Category: "posters", Extension: "png"})
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = struct{}{}
	}
}

func TestLocalStorageRejectsEmptyPayload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	if _, err := store.Save(context.Background(), nil, SaveOptions{Category: "events"}); err == nil {
		t.Fatal("expected error for empty payload")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no files, found %d", len(entries))
	}
}

func TestLocalStorageDeleteRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "uploads")
	store, err := NewLocalStorage(base)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	outside := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(outside, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, key := range []string{"../secret.txt", "events/../../secret.txt", "", "/", "events\\..\\..\\secret.txt"} {
		if err := store.Delete(context.Background(), key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside root must survive: %v", err)
	}
}

func TestBuildObjectKey(t *testing.T) {
	cases := []struct {
		opts SaveOptions
		want string
	}{
		{SaveOptions{Category: "theme", BaseName: "abc", Extension: "webp"}, "theme/abc.webp"},
		{SaveOptions{Category: "../etc", BaseName: "x y", Extension: ".png"}, "etc/x-y.png"},
		{SaveOptions{BaseName: "n"}, "misc/n.bin"},
	}
	for _, tc := range cases {
		if got := buildObjectKey(tc.opts); got != tc.want {
			t.Errorf("buildObjectKey(%+v) = %q, want %q", tc.opts, got, tc.want)
		}
	}
}
