package fieldconfig

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Fields map[string]Definition `json:"fields" yaml:"fields"`
}

// LoadFS walks fsys and parses every JSON/YAML file as a field document:
//
//	fields:
//	  bio:
//	    attributes: {rows: 4, maxLength: 200}
//	    validation: {min: 10, locale: en-US}
//
// The map key is the field name unless the entry sets one. A nil fsys yields
// an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fieldconfig: read %s: %w", path, err)
		}
		return loadDocument(store, data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes a single JSON or YAML document. source names it in errors.
func Parse(data []byte, source string) (*Store, error) {
	store := NewStore()
	if err := loadDocument(store, data, source); err != nil {
		return nil, err
	}
	return store, nil
}

func loadDocument(store *Store, data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for key, def := range doc.Fields {
		key = strings.TrimSpace(key)
		if strings.TrimSpace(def.Name) == "" {
			def.Name = key
		}
		def.Name = strings.TrimSpace(def.Name)
		if def.Name == "" {
			return fmt.Errorf("fieldconfig: file %s: %w", source, ErrMissingName)
		}
		def.Source = source
		if err := store.Add(def); err != nil {
			return err
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("fieldconfig: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("fieldconfig: parse %s: %w", source, err)
	}
	return doc, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
