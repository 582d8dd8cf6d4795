package vmf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Serialize writes the document rooted at root to w in canonical VMF form:
// tab indentation, one property per line, block order and key order exactly
// as stored. The anonymous root itself is not written.
func Serialize(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	for _, c := range root.Children {
		writeNode(bw, c, 0)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("vmf: write: %w", err)
	}
	return nil
}

// SerializeString returns the canonical text form of the document.
func SerializeString(root *Node) string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = Serialize(&sb, root)
	return sb.String()
}

func writeNode(w *bufio.Writer, n *Node, depth int) {
	ind := strings.Repeat("\t", depth)
	w.WriteString(ind)
	w.WriteString(n.Name)
	w.WriteString("\n")
	w.WriteString(ind)
	w.WriteString("{\n")
	for _, p := range n.Props {
		fmt.Fprintf(w, "%s\t\"%s\" \"%s\"\n", ind, p.Key, p.Value)
	}
	for _, c := range n.Children {
		writeNode(w, c, depth+1)
	}
	w.WriteString(ind)
	w.WriteString("}\n")
}

// WriteFile serializes the document to path atomically: the text is written
// to a uniquely named temp file in the same directory and renamed into
// place, so a failed run never leaves a truncated document behind.
func WriteFile(path string, root *Node) error {
	return writeAtomic(path, func(f *os.File) error {
		return Serialize(f, root)
	})
}

// WriteTextFile writes already-serialized document text with the same
// atomic temp-and-rename scheme as WriteFile.
func WriteTextFile(path, text string) error {
	return writeAtomic(path, func(f *os.File) error {
		if _, err := f.WriteString(text); err != nil {
			return fmt.Errorf("vmf: write: %w", err)
		}
		return nil
	})
}

func writeAtomic(path string, fill func(*os.File) error) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("vmf: create temp output: %w", err)
	}
	if err := fill(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("vmf: close temp output: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("vmf: move output into place: %w", err)
	}
	return nil
}
