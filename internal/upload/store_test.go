package upload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndList(t *testing.T) {
	s := NewStore(t.TempDir(), "https://cdn.example.com")

	url, err := s.Save("ProductImg", 12, "front.jpg", strings.NewReader("img-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "https://cdn.example.com/ProductImg/12/front.jpg" {
		t.Fatalf("url = %q", url)
	}

	names, err := s.List("ProductImg", 12)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "front.jpg" {
		t.Fatalf("names = %v", names)
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	s := NewStore(t.TempDir(), "https://cdn.example.com")
	if _, err := s.Save("ProductImg", 1, "../../etc/passwd", strings.NewReader("x")); !errors.Is(err, ErrBadExt) {
		// Base name survives but the extension check rejects it.
		t.Fatalf("err = %v", err)
	}
	if _, err := s.Save("ProductImg", 1, "shell.sh", strings.NewReader("x")); !errors.Is(err, ErrBadExt) {
		t.Fatalf("err = %v, want ErrBadExt", err)
	}
}

func TestDeleteMissingFileIsOK(t *testing.T) {
	s := NewStore(t.TempDir(), "https://cdn.example.com")
	if err := s.Delete("ProductImg", 1, "nope.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestMovePublishesDraftImages(t *testing.T) {
	base := t.TempDir()
	s := NewStore(base, "https://cdn.example.com")

	for _, name := range []string{"a.png", "b.png"} {
		if _, err := s.Save("ForumResimler", 5, name, strings.NewReader("x")); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	urls, err := s.Move("ForumResimler", "ForumPost", 5)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("urls = %v", urls)
	}
	if _, err := os.Stat(filepath.Join(base, "ForumResimler", "5", "a.png")); !os.IsNotExist(err) {
		t.Fatal("draft file still present after move")
	}
	if _, err := os.Stat(filepath.Join(base, "ForumPost", "5", "a.png")); err != nil {
		t.Fatalf("published file missing: %v", err)
	}
}
