// Package config resolves data locations and Anki settings from the
// environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "han-cihui"

// DataDir returns XDG_DATA_HOME/han-cihui or ~/.local/share/han-cihui.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DBPath returns the location of the application database.
func DBPath() string {
	return filepath.Join(DataDir(), "data.db")
}

// EnsureDataDir creates the data directory if it does not exist yet.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0755)
}

// AnkiDBPath returns the Anki collection to sync from. Override with
// HAN_CIHUI_ANKIDB; the default is Anki's standard location for the first
// profile.
func AnkiDBPath() string {
	if path := os.Getenv("HAN_CIHUI_ANKIDB"); path != "" {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "Anki2", "User 1", "collection.anki2")
}

// AnkiNoteFields returns the notetype-to-field pairs holding Chinese
// vocabulary, as "notetype:field" entries separated by commas in
// HAN_CIHUI_NOTE_FIELDS.
func AnkiNoteFields() map[string]string {
	spec := os.Getenv("HAN_CIHUI_NOTE_FIELDS")
	if spec == "" {
		return map[string]string{"中文-英文": "中文"}
	}

	pairs := make(map[string]string)
	for _, entry := range strings.Split(spec, ",") {
		notetype, field, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		notetype = strings.TrimSpace(notetype)
		field = strings.TrimSpace(field)
		if notetype != "" && field != "" {
			pairs[notetype] = field
		}
	}
	return pairs
}
