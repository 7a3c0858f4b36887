// Package prompts serves the LLM prompt templates embedded with the binary.
// Each JSON file maps a prompt key to its template text.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// file is one parsed prompt file.
type file struct {
	name    string
	prompts map[string]string
}

// lookup returns the prompt for the first key present.
func (f *file) lookup(keys ...string) (string, error) {
	for _, key := range keys {
		if prompt, ok := f.prompts[key]; ok {
			return prompt, nil
		}
	}
	quoted := make([]string, len(keys))
	for i, key := range keys {
		quoted[i] = fmt.Sprintf("%q", key)
	}
	return "", fmt.Errorf("prompt key %s not found in %s", strings.Join(quoted, " or "), f.name)
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*file)
)

// open parses filename from the embedded set, at most once per cache lifetime.
func open(filename string) (*file, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if f, ok := cache[filename]; ok {
		return f, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	f := &file{name: filename}
	if err := json.Unmarshal(data, &f.prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	cache[filename] = f
	return f, nil
}

// Get returns the prompt stored under key in filename, e.g. "suggestions.json".
func Get(filename, key string) (string, error) {
	f, err := open(filename)
	if err != nil {
		return "", err
	}
	return f.lookup(key)
}

// GetOr is Get with a second key tried when the first is missing.
func GetOr(filename, key, fallback string) (string, error) {
	f, err := open(filename)
	if err != nil {
		return "", err
	}
	return f.lookup(key, fallback)
}

// MustGet panics when the prompt is missing.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic("prompts: " + err.Error())
	}
	return prompt
}

// List returns the keys of filename, sorted.
func List(filename string) ([]string, error) {
	f, err := open(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(f.prompts))
	for key := range f.prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops every parsed file.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]*file)
	cacheMu.Unlock()
}

// Format substitutes {{.Key}} placeholders from data. Placeholders without a
// value are left in place.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
