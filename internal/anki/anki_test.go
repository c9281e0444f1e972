package anki

import (
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jannes/han-cihui/internal/db"
)

func TestFieldAt(t *testing.T) {
	fields := "你好\x1fhello\x1fsentence goes here"

	tests := []struct {
		index int
		want  string
	}{
		{0, "你好"},
		{1, "hello"},
		{2, "sentence goes here"},
		{3, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := FieldAt(fields, tt.index); got != tt.want {
			t.Errorf("FieldAt(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestFieldToWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "你好", []string{"你好"}},
		{"slash variants", "高兴/开心", []string{"高兴", "开心"}},
		{"space and backslash", "高兴 开心\\快乐", []string{"高兴", "开心", "快乐"}},
		{"chinese comma", "高兴，开心", []string{"高兴", "开心"}},
		{"html noise", "<b>你好</b>", []string{"你好"}},
		{"no hanzi", "hello world", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldToWords(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FieldToWords(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVocabFromNotes(t *testing.T) {
	notes := []Note{
		{Field: "你好/您好", Status: StatusActive},
		{Field: "你好", Status: StatusSuspendedUnknown},
		{Field: "世界", Status: StatusSuspendedUnknown},
		{Field: "世界", Status: StatusSuspendedKnown},
	}

	vocab := VocabFromNotes(notes)

	assert.Equal(t, db.StatusActive, vocab["你好"], "active status wins")
	assert.Equal(t, db.StatusActive, vocab["您好"])
	assert.Equal(t, db.StatusSuspendedKnown, vocab["世界"], "known wins over unknown")
}

// writeFixtureCollection creates a minimal Anki schema with one notetype
// (中文-英文, fields 中文/英文) and three notes in different card states.
func writeFixtureCollection(t *testing.T, path string) {
	t.Helper()
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	const schema = `
	CREATE TABLE notetypes (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
	CREATE TABLE fields (ntid INTEGER NOT NULL, ord INTEGER NOT NULL, name TEXT NOT NULL);
	CREATE TABLE notes (id INTEGER PRIMARY KEY, mid INTEGER NOT NULL, flds TEXT NOT NULL);
	CREATE TABLE cards (id INTEGER PRIMARY KEY, nid INTEGER NOT NULL, ord INTEGER NOT NULL,
		queue INTEGER NOT NULL, flags INTEGER NOT NULL);`
	_, err = conn.Exec(schema)
	require.NoError(t, err)

	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO notetypes (id, name) VALUES (?, ?)`, []any{1, "中文-英文"}},
		{`INSERT INTO fields (ntid, ord, name) VALUES (?, ?, ?)`, []any{1, 0, "中文"}},
		{`INSERT INTO fields (ntid, ord, name) VALUES (?, ?, ?)`, []any{1, 1, "英文"}},
		// active note
		{`INSERT INTO notes (id, mid, flds) VALUES (?, ?, ?)`, []any{10, 1, "你好\x1fhello"}},
		{`INSERT INTO cards (id, nid, ord, queue, flags) VALUES (?, ?, ?, ?, ?)`, []any{100, 10, 0, 2, 0}},
		// suspended, flagged green = known
		{`INSERT INTO notes (id, mid, flds) VALUES (?, ?, ?)`, []any{11, 1, "世界\x1fworld"}},
		{`INSERT INTO cards (id, nid, ord, queue, flags) VALUES (?, ?, ?, ?, ?)`, []any{101, 11, 0, -1, 3}},
		// suspended, no flag = unknown
		{`INSERT INTO notes (id, mid, flds) VALUES (?, ?, ?)`, []any{12, 1, "英雄\x1fhero"}},
		{`INSERT INTO cards (id, nid, ord, queue, flags) VALUES (?, ?, ?, ?, ?)`, []any{102, 12, 0, -1, 0}},
	}
	for _, s := range stmts {
		_, err = conn.Exec(s.query, s.args...)
		require.NoError(t, err)
	}
}

func TestCollectionNotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.anki2")
	writeFixtureCollection(t, path)

	col, err := OpenCollection(path)
	require.NoError(t, err)
	defer col.Close()

	notes, err := col.Notes(map[string]string{"中文-英文": "中文"})
	require.NoError(t, err)

	byField := make(map[string]NoteStatus)
	for _, note := range notes {
		byField[note.Field] = note.Status
	}
	assert.Equal(t, StatusActive, byField["你好"])
	assert.Equal(t, StatusSuspendedKnown, byField["世界"])
	assert.Equal(t, StatusSuspendedUnknown, byField["英雄"])
}

func TestSyncToStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.anki2")
	writeFixtureCollection(t, path)

	store, err := db.Open(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	defer store.Close()

	// A previously synced word no longer in the collection, and an
	// externally added word that must survive the sync.
	require.NoError(t, store.InsertOverwriteWords(map[string]db.VocabStatus{"过时": db.StatusActive}))
	require.NoError(t, store.AddExternalWords([]string{"外部"}, db.StatusExternalKnown))

	noteFields := map[string]string{"中文-英文": "中文"}
	updated, removed, err := SyncToStore(store, path, noteFields)
	require.NoError(t, err)
	assert.Equal(t, 3, updated)
	assert.Equal(t, 1, removed)

	vocab, err := store.SelectAllWords()
	require.NoError(t, err)
	assert.Equal(t, db.StatusActive, vocab["你好"])
	assert.Equal(t, db.StatusSuspendedKnown, vocab["世界"])
	assert.Equal(t, db.StatusSuspendedUnknown, vocab["英雄"])
	assert.Equal(t, db.StatusExternalKnown, vocab["外部"])
	assert.NotContains(t, vocab, "过时")
}

func TestCollectionNotesNoMatchingNotetype(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.anki2")
	writeFixtureCollection(t, path)

	col, err := OpenCollection(path)
	require.NoError(t, err)
	defer col.Close()

	notes, err := col.Notes(map[string]string{"does-not-exist": "中文"})
	require.NoError(t, err)
	assert.Empty(t, notes)
}
