package importers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name string, data []byte) {
	t.Helper()
	p := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func TestFileImporter_Drafts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "kapitel-01_der_bahnhof.txt", []byte("Der Zug kommt."))
	writeFile(t, root, "teil2/markt.md", []byte("Äpfel und Birnen."))
	writeFile(t, root, "teil2/leer.txt", []byte("  \n"))
	writeFile(t, root, "teil2/binary.txt", []byte{0xff, 0xfe, 0x00})
	writeFile(t, root, "bild.png", []byte("png"))

	importer := NewFileImporter(root, "")

	paths, err := importer.Glob()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"kapitel-01_der_bahnhof.txt",
		"teil2/binary.txt",
		"teil2/leer.txt",
		"teil2/markt.md",
	}, paths)

	drafts, err := importer.Drafts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Draft{
		{Title: "kapitel 01 der bahnhof", Content: "Der Zug kommt."},
		{Title: "markt", Content: "Äpfel und Birnen."},
	}, drafts)
}

func TestFileImporter_CustomPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", []byte("eins"))
	writeFile(t, root, "sub/b.txt", []byte("zwei"))

	paths, err := NewFileImporter(root, "*.txt").Glob()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, paths)

	_, err = NewFileImporter(root, "[").Glob()
	assert.Error(t, err)
}
