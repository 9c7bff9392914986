package hashing_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docstamp/docstamp/pkg/hashing"
)

// SHA-256 of an empty input.
const emptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestSumKnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  emptyDigest,
		},
		{
			name:  "abc",
			input: "abc",
			want:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hashing.Sum(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sum() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSumDeterministic(t *testing.T) {
	content := bytes.Repeat([]byte("docstamp"), 4096)

	first, err := hashing.Sum(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("first Sum() error = %v", err)
	}

	second, err := hashing.Sum(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("second Sum() error = %v", err)
	}

	if first != second {
		t.Errorf("digests differ: %s vs %s", first, second)
	}
}

func TestSumDistinctContent(t *testing.T) {
	a, err := hashing.Sum(strings.NewReader("original document"))
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}

	b, err := hashing.Sum(strings.NewReader("signed document"))
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}

	if a == b {
		t.Error("distinct content produced identical digests")
	}
}

func TestSumLargerThanChunk(t *testing.T) {
	// Content spanning several 4096-byte reads must match a single-shot
	// digest of the same bytes.
	content := bytes.Repeat([]byte{0xAB}, 4096*3+17)

	whole, err := hashing.Sum(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "content.bin")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	fromFile, err := hashing.SumFile(path)
	if err != nil {
		t.Fatalf("SumFile() error = %v", err)
	}

	if whole != fromFile {
		t.Errorf("SumFile() = %s, want %s", fromFile, whole)
	}
}

func TestSumReadFailure(t *testing.T) {
	_, err := hashing.Sum(failingReader{})
	if err == nil {
		t.Fatal("expected error from failing reader, got nil")
	}
}

func TestSumFileMissing(t *testing.T) {
	_, err := hashing.SumFile(filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}
