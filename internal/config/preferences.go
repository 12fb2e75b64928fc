package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pomosync/internal/model"
)

const preferencesFileName = "preferences.yaml"

type yamlPreferences struct {
	Mode              string `yaml:"mode"`
	AutoStartNext     *bool  `yaml:"auto_start_next"`
	MusicDuringBreak  *bool  `yaml:"music_during_break"`
	PauseMusicOnPause *bool  `yaml:"pause_music_on_pause"`
}

// PreferencesFile stores mode and policy toggles as yaml.
type PreferencesFile struct {
	Path  string
	Modes []model.Mode
}

func NewPreferencesFile(path string, modes []model.Mode) *PreferencesFile {
	if len(modes) == 0 {
		modes = model.DefaultModes()
	}
	return &PreferencesFile{Path: path, Modes: modes}
}

// Load reads preferences. A missing file yields the defaults; fields absent
// from the file or naming an unknown mode keep their defaults.
func (p *PreferencesFile) Load() (model.Preferences, error) {
	prefs := model.DefaultPreferences()

	rawData, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("read preferences file: %w", err)
	}

	var fileData yamlPreferences
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return prefs, fmt.Errorf("parse preferences yaml: %w", err)
	}

	p.apply(&prefs, fileData)
	return prefs, nil
}

func (p *PreferencesFile) Save(prefs model.Preferences) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	fileData := yamlPreferences{
		Mode:              prefs.Mode,
		AutoStartNext:     boolPtr(prefs.Options.AutoStartNext),
		MusicDuringBreak:  boolPtr(prefs.Options.MusicDuringBreak),
		PauseMusicOnPause: boolPtr(prefs.Options.PauseMusicOnPause),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal preferences yaml: %w", err)
	}

	if err := os.WriteFile(p.Path, serialized, 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	return nil
}

func (p *PreferencesFile) apply(prefs *model.Preferences, fileData yamlPreferences) {
	if _, ok := model.LookupMode(p.Modes, fileData.Mode); ok {
		prefs.Mode = fileData.Mode
	}
	if fileData.AutoStartNext != nil {
		prefs.Options.AutoStartNext = *fileData.AutoStartNext
	}
	if fileData.MusicDuringBreak != nil {
		prefs.Options.MusicDuringBreak = *fileData.MusicDuringBreak
	}
	if fileData.PauseMusicOnPause != nil {
		prefs.Options.PauseMusicOnPause = *fileData.PauseMusicOnPause
	}
}

func boolPtr(value bool) *bool {
	return &value
}
