package speechcommands

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseSubset(t *testing.T) {
	text := "yes/abc123.wav\r\nno/def456.wav\n\nnolabel.wav\n"
	expected := Subset{
		"abc123.wav":  true,
		"def456.wav":  true,
		"nolabel.wav": true,
	}
	actual := ParseSubset(text)
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}

func TestParseSubsetEmpty(t *testing.T) {
	if s := ParseSubset("\n\n"); len(s) != 0 {
		t.Errorf("expected an empty subset but got %v", s)
	}
}

func TestReadSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validation_list.txt")
	if err := os.WriteFile(path, []byte("yes/a.wav\nno/b.wav\n"), 0644); err != nil {
		t.Fatal(err)
	}
	subset, err := ReadSubset(path)
	if err != nil {
		t.Fatal(err)
	}
	if !subset["a.wav"] || !subset["b.wav"] || len(subset) != 2 {
		t.Errorf("unexpected subset: %v", subset)
	}
	if _, err := ReadSubset(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
