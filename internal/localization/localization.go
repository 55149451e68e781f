// Package localization loads the bot's message catalog from JSON files
// and resolves keys per language. Catalog files are named by language
// code (e.g. "uk.json") and hold a flat map of key to text.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Localizer resolves message keys to localized strings.
type Localizer struct {
	fallback     string
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer loads every *.json catalog found under path. fallback
// names the language tried when a key is missing elsewhere.
func NewLocalizer(path, fallback string) (*Localizer, error) {
	l := &Localizer{
		fallback:     fallback,
		translations: make(map[string]map[string]string),
	}

	files, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read localization directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(path, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", file.Name(), err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", file.Name(), err)
		}
		l.translations[strings.TrimSuffix(file.Name(), ".json")] = translations
	}

	if len(l.translations) == 0 {
		return nil, fmt.Errorf("no catalogs found under %s", path)
	}
	return l, nil
}

// GetString returns the text for a key in the given language, falling
// back to the default language and finally to the key itself.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if translations, ok := l.translations[lang]; ok {
		if value, ok := translations[key]; ok {
			return value
		}
	}
	if lang != l.fallback {
		if translations, ok := l.translations[l.fallback]; ok {
			if value, ok := translations[key]; ok {
				return value
			}
		}
	}
	return key
}

// Languages lists the loaded catalog languages.
func (l *Localizer) Languages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	langs := make([]string, 0, len(l.translations))
	for lang := range l.translations {
		langs = append(langs, lang)
	}
	return langs
}
