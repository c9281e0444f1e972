package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jannes/han-cihui/internal/db"
	"github.com/jannes/han-cihui/internal/wordlist"
)

func openTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestReadWordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "你好\n\nhello\n 世界 \n。\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	words, err := readWordFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"你好", "世界"}, words)
}

func TestReadWordFileMissing(t *testing.T) {
	_, err := readWordFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestOpenWordListTagRoundTrip(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	store, err := openStore()
	require.NoError(t, err)
	require.NoError(t, store.InsertWordList(wordlist.WordList{
		Metadata: wordlist.Metadata{ID: -1, BookName: "欢乐英雄", AuthorName: "古龙"},
		Chapters: []wordlist.ChapterWords{
			{Chapter: "0000-一", Words: []wordlist.TaggedWord{{Word: "好汉"}}},
		},
	}))
	metas, err := store.SelectWordListMetadata()
	require.NoError(t, err)
	require.Len(t, metas, 1)
	require.NoError(t, store.Close())

	idArg := fmt.Sprint(metas[0].ID)
	store, list, err := openWordList(idArg)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, "欢乐英雄", list.Metadata.BookName)

	require.True(t, list.TagWord("好汉", wordlist.CategoryLearn))
	require.NoError(t, store.UpdateWordListChapters(list.Metadata.ID, list.Chapters))

	store2, reloaded, err := openWordList(idArg)
	require.NoError(t, err)
	defer store2.Close()
	assert.Equal(t, []string{"好汉"}, reloaded.WordsByCategory(wordlist.CategoryLearn))
}

func TestOpenWordListMissing(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	_, _, err := openWordList("42")
	assert.Error(t, err)

	_, _, err = openWordList("not-a-number")
	assert.Error(t, err)
}

func TestCleanupWordsDryRun(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.AddExternalWords([]string{"你好/世界", "干净"}, db.StatusExternalKnown))

	require.NoError(t, cleanupWords(store, false))

	vocab, err := store.SelectAllWords()
	require.NoError(t, err)
	assert.Contains(t, vocab, "你好/世界")
	assert.NotContains(t, vocab, "你好")
}

func TestCleanupWordsConfirm(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.AddExternalWords([]string{"你好/世界", "干净"}, db.StatusExternalKnown))
	require.NoError(t, store.AddExternalWords([]string{"世界"}, db.StatusExternalIgnored))

	require.NoError(t, cleanupWords(store, true))

	vocab, err := store.SelectAllWords()
	require.NoError(t, err)
	assert.NotContains(t, vocab, "你好/世界")
	assert.Equal(t, db.StatusExternalKnown, vocab["你好"])
	assert.Equal(t, db.StatusExternalKnown, vocab["干净"])
	// Parts that already exist keep their status.
	assert.Equal(t, db.StatusExternalIgnored, vocab["世界"])
}
