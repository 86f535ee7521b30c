package engine

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryOrder(t *testing.T) {
	a := &MockEngine{EngineName: "a"}
	b := &MockEngine{EngineName: "b"}
	c := &MockEngine{EngineName: "c"}
	r := NewRegistryWith(a, b, c)

	names := r.Names()
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistryWith(&MockEngine{EngineName: "espeak"}, &MockEngine{EngineName: "pico"})

	if eng, ok := r.Lookup("pico"); !ok || eng.Name() != "pico" {
		t.Errorf("Lookup(pico) = %v, %v", eng, ok)
	}
	if _, ok := r.Lookup("festival"); ok {
		t.Error("Lookup(festival) found an engine that does not exist")
	}
}

// TestDefaultRegistryOrder pins the documented fallback order.
func TestDefaultRegistryOrder(t *testing.T) {
	names := NewRegistry(Config{}).Names()
	want := []string{"espeak", "pico", "builtin"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}

func TestAudioReaderFromData(t *testing.T) {
	a := &Audio{Data: []byte("RIFFdata")}
	rc, err := a.Reader()
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	defer rc.Close() //nolint:errcheck

	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "RIFFdata" {
		t.Errorf("read %q", b)
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() on in-memory audio = %v", err)
	}
}

func TestAudioReaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(path, []byte("RIFFfile"), 0o600); err != nil {
		t.Fatal(err)
	}

	a := NewFileAudio(path)
	rc, err := a.Reader()
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	b, err := io.ReadAll(rc)
	rc.Close() //nolint:errcheck
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "RIFFfile" {
		t.Errorf("read %q", b)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file %s still exists after Close", path)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
