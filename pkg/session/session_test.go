package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	sess := New("abc", "cable.svg", time.Hour)
	if sess.Row != 1 || sess.Done != 0 {
		t.Errorf("New() row/done = %d/%d, want 1/0", sess.Row, sess.Done)
	}
	if sess.IsExpired() {
		t.Error("new session should not be expired")
	}
}

func TestAdvance(t *testing.T) {
	sess := New("abc", "cable.svg", time.Hour)
	before := sess.ExpiresAt

	time.Sleep(time.Millisecond)
	sess.Advance(5, 4)
	if sess.Row != 5 || sess.Done != 4 {
		t.Errorf("row/done = %d/%d, want 5/4", sess.Row, sess.Done)
	}
	if !sess.ExpiresAt.After(before) {
		t.Error("Advance should extend expiry")
	}

	// Going back down the chart keeps the finished count.
	sess.Advance(2, 1)
	if sess.Row != 2 || sess.Done != 4 {
		t.Errorf("row/done = %d/%d, want 2/4", sess.Row, sess.Done)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "missing")
	if err != nil || got != nil {
		t.Errorf("Get(missing) = %v, %v", got, err)
	}

	sess := New("abc", "cable.svg", time.Hour)
	sess.Advance(7, 6)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	got, err = store.Get(ctx, "abc")
	if err != nil || got == nil {
		t.Fatalf("Get(abc) = %v, %v", got, err)
	}
	if got.Chart != "cable.svg" || got.Row != 7 || got.Done != 6 || got.TTL != time.Hour {
		t.Errorf("Get(abc) = %+v", got)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, "abc"); got != nil {
		t.Error("session should be deleted")
	}
	if err := store.Delete(ctx, "abc"); err != nil {
		t.Errorf("deleting twice should not fail: %v", err)
	}
}

func TestFileStoreExpired(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	old := New("old", "old.txt", -time.Minute)
	live := New("live", "live.txt", time.Hour)
	for _, s := range []*Session{old, live} {
		if err := store.Set(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0600)

	list, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "live" {
		t.Errorf("List() = %v, want only live", list)
	}

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "old.json")); !os.IsNotExist(err) {
		t.Error("Cleanup should remove expired sessions")
	}
	if _, err := os.Stat(filepath.Join(dir, "live.json")); err != nil {
		t.Error("Cleanup should keep live sessions")
	}

	if got, _ := store.Get(ctx, "old"); got != nil {
		t.Error("expired session should not be returned")
	}
}

func TestListOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())

	a := New("a", "a.txt", time.Hour)
	b := New("b", "b.txt", time.Hour)
	b.UpdatedAt = a.UpdatedAt.Add(time.Minute)
	store.Set(ctx, a)
	store.Set(ctx, b)

	list, _ := store.List(ctx)
	if len(list) != 2 || list[0].ID != "b" {
		t.Errorf("List() should put the most recent first, got %v", list)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "stitchrow", "sessions"); dir != want {
		t.Errorf("DefaultDir() = %s, want %s", dir, want)
	}
}
