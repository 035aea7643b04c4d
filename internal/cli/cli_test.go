package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/vokabel/internal/entrypoint"
	"github.com/mrlokans/vokabel/internal/services"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seedDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "vokabel.db")

	opts := &rootOptions{dbPath: dbPath}
	app, err := opts.openApp()
	require.NoError(t, err)
	defer app.Close()
	seed(t, app)
	return dbPath
}

func seed(t *testing.T, app *entrypoint.App) {
	ctx := context.Background()
	lesson, err := app.Study.SaveLesson(ctx, services.LessonInput{
		Title:   "Wohnen",
		Content: "Das Haus ist groß. Die Tür ist rot.",
		Dict:    map[string]string{"Haus": "house"},
	})
	require.NoError(t, err)
	_, _, err = app.Study.UpsertFlashcard(ctx, services.FlashcardInput{
		Term:     "Tür",
		Meaning:  "door",
		LessonID: &lesson.ID,
	})
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "vokabel version 1.2.3\n", out)
}

func TestAnnotateCommand(t *testing.T) {
	dir := t.TempDir()
	textFile := filepath.Join(dir, "text.txt")
	dictFile := filepath.Join(dir, "dict.yaml")
	require.NoError(t, os.WriteFile(textFile, []byte("Das Haus ist groß."), 0o644))
	require.NoError(t, os.WriteFile(dictFile, []byte("Haus: house\n"), 0o644))

	t.Run("text", func(t *testing.T) {
		out, err := runCommand(t, "annotate", "--file", textFile, "--dict", dictFile)
		require.NoError(t, err)
		assert.Equal(t, "Das Haus [house] ist groß.\n", out)
	})

	t.Run("html", func(t *testing.T) {
		out, err := runCommand(t, "annotate", "--file", textFile, "--dict", dictFile, "--html")
		require.NoError(t, err)
		assert.Contains(t, out, `<span class="term" data-meaning="house" title="house">Haus</span>`)
	})

	t.Run("without dictionary", func(t *testing.T) {
		out, err := runCommand(t, "annotate", "--file", textFile)
		require.NoError(t, err)
		assert.Equal(t, "Das Haus ist groß.\n", out)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCommand(t, "annotate", "--file", filepath.Join(dir, "nope.txt"))
		assert.ErrorContains(t, err, "failed to read text")
	})
}

func TestBackfillCommand(t *testing.T) {
	dbPath := seedDB(t)

	out, err := runCommand(t, "--db", dbPath, "backfill-contexts")

	require.NoError(t, err)
	assert.Contains(t, out, "scanned")
}

func TestImportCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vokabel.db")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "erste_lektion.txt"), []byte("Guten Morgen."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leer.txt"), []byte("   "), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bild.png"), []byte("png"), 0o644))

	out, err := runCommand(t, "--db", dbPath, "import", "--dir", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "created 1 lessons, skipped 0")

	t.Run("requires a source", func(t *testing.T) {
		_, err := runCommand(t, "--db", dbPath, "import")
		assert.ErrorContains(t, err, "either --url or --dir is required")
	})

	t.Run("url and dir are exclusive", func(t *testing.T) {
		_, err := runCommand(t, "--db", dbPath, "import", "--dir", dir, "--url", "https://example.com")
		assert.Error(t, err)
	})
}

func TestExportCommand(t *testing.T) {
	dbPath := seedDB(t)

	t.Run("yaml to stdout", func(t *testing.T) {
		out, err := runCommand(t, "--db", dbPath, "export", "--format", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "Wohnen")
		assert.Contains(t, out, "Tür")
	})

	t.Run("yaml to file", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "decks.yaml")
		_, err := runCommand(t, "--db", dbPath, "export", "--format", "yaml", "--out", outFile)
		require.NoError(t, err)

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Wohnen")
	})

	t.Run("yaml to a file that cannot be created", func(t *testing.T) {
		_, err := runCommand(t, "--db", dbPath, "export", "--format", "yaml", "--out", filepath.Join(t.TempDir(), "missing", "decks.yaml"))
		assert.ErrorContains(t, err, "failed to create")
	})

	t.Run("markdown to directory", func(t *testing.T) {
		outDir := t.TempDir()
		_, err := runCommand(t, "--db", dbPath, "export", "--format", "markdown", "--out", outDir)
		require.NoError(t, err)

		files, err := filepath.Glob(filepath.Join(outDir, "*.md"))
		require.NoError(t, err)
		assert.NotEmpty(t, files)
	})

	t.Run("markdown needs a directory", func(t *testing.T) {
		_, err := runCommand(t, "--db", dbPath, "export", "--format", "markdown")
		assert.ErrorContains(t, err, "--out directory is required")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := runCommand(t, "--db", dbPath, "export", "--format", "csv")
		assert.ErrorContains(t, err, "unknown format")
	})
}
