package entrypoint

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/vokabel/internal/config"
	"github.com/mrlokans/vokabel/internal/services"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "app.db")
	return cfg
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testConfig(t), nil)
	require.NoError(t, err)
	defer app.Close()

	lesson, err := app.Study.SaveLesson(context.Background(), services.LessonInput{
		Title:   "Lektion",
		Content: "Das Haus ist groß.",
	})
	require.NoError(t, err)
	assert.NotZero(t, lesson.ID)

	assert.NotNil(t, app.WebImporter())
}

func TestNewApp_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	_, err := NewApp(cfg, nil)

	assert.ErrorContains(t, err, "failed to initialize database")
}

func TestApp_DictionaryClient(t *testing.T) {
	cfg := testConfig(t)
	app, err := NewApp(cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.DictionaryClient())

	cfg.Dictionary.Enabled = true
	client := app.DictionaryClient()
	require.NotNil(t, client)
	assert.Equal(t, "freedictionary", client.Name())
}
