package compare

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Bytes compares files byte for byte.
type Bytes struct{}

// NewBytes creates a byte-exact comparator
func NewBytes() *Bytes {
	return &Bytes{}
}

// Name implements Comparator.
func (b *Bytes) Name() string { return NameBytes }

// Compare implements Comparator. Options are ignored.
func (b *Bytes) Compare(gotPath, expPath string, _ Options) (*Difference, error) {
	got, err := os.ReadFile(gotPath)
	if err != nil {
		return nil, fmt.Errorf("read got file: %w", err)
	}
	exp, err := os.ReadFile(expPath)
	if err != nil {
		return nil, fmt.Errorf("read reference file: %w", err)
	}
	if bytes.Equal(got, exp) {
		return nil, nil
	}
	return &Difference{
		Part: filepath.Base(gotPath),
		Diff: fmt.Sprintf("got %d bytes, expected %d bytes, first difference at offset %d",
			len(got), len(exp), firstDiff(got, exp)),
	}, nil
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
