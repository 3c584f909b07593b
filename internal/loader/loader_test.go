package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelrag/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDirText(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blogs.txt", "Rome in spring is magic.\n\n  \nKyoto has great temples.\n")

	docs, err := New(nil).LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.Document{
		"Rome in spring is magic.",
		"Kyoto has great temples.",
	}, docs)
}

func TestLoadDirJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "articles.json", `[{"text":"Lisbon travel notes"},{"title":"no text field"},{"text":"Porto by train"}]`)

	docs, err := New(nil).LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.Document{"Lisbon travel notes", "Porto by train"}, docs)
}

func TestLoadDirCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "trips.csv", "location,description\nBali,Surf and temples\nOslo,Fjords and museums\n")

	docs, err := New(nil).LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.Document{
		"Bali - Surf and temples",
		"Oslo - Fjords and museums",
	}, docs)
}

func TestLoadDirCSVCityColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cities.csv", "city,description\nMadrid,Tapas everywhere\n")

	docs, err := New(nil).LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.Document{"Madrid - Tapas everywhere"}, docs)
}

func TestLoadDirSkipsUnsupportedAndBroken(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "# not corpus material")
	writeFile(t, dir, "broken.json", "{not valid json")
	writeFile(t, dir, "good.txt", "One good line.")

	docs, err := New(nil).LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []domain.Document{"One good line."}, docs)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := New(nil).LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSplitterShortArticleSinglePassage(t *testing.T) {
	s := NewSplitter(5, 1)
	passages := s.Split("Just two sentences. Nothing more.")
	assert.Equal(t, []domain.Document{"Just two sentences. Nothing more."}, passages)
}

func TestSplitterLongArticleOverlaps(t *testing.T) {
	s := NewSplitter(2, 1)
	passages := s.Split("One. Two. Three. Four.")
	assert.Equal(t, []domain.Document{
		"One. Two.",
		"Two. Three.",
		"Three. Four.",
	}, passages)
}

func TestSplitterBlankArticle(t *testing.T) {
	s := NewSplitter(5, 1)
	assert.Nil(t, s.Split("   "))
}

func TestSplitterNoTerminalPunctuation(t *testing.T) {
	s := NewSplitter(3, 0)
	passages := s.Split("a bare line with no punctuation")
	assert.Equal(t, []domain.Document{"a bare line with no punctuation"}, passages)
}

func TestSplitAllFlattens(t *testing.T) {
	s := NewSplitter(1, 0)
	passages := s.SplitAll([]domain.Document{"A. B.", "C."})
	assert.Equal(t, []domain.Document{"A.", "B.", "C."}, passages)
}
