package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

const (
	appDir       = "mangasrc"
	defaultLabel = "Default"
	profileExt   = ".yaml"
)

// ConfigRoot is the per-user directory holding profiles and the preference
// store.
func ConfigRoot() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, appDir)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDir)
}

// Profiles manages named YAML configs under Root/configs and remembers which
// one is active in Root/current_config.
type Profiles struct {
	Root string
}

func DefaultProfiles() Profiles {
	return Profiles{Root: ConfigRoot()}
}

func (p Profiles) Dir() string {
	return filepath.Join(p.Root, "configs")
}

func (p Profiles) currentFile() string {
	return filepath.Join(p.Root, "current_config")
}

func (p Profiles) Path(label string) string {
	return filepath.Join(p.Dir(), label+profileExt)
}

func validLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return fmt.Errorf("invalid label %q", label)
	}

	return nil
}

// Active returns the active profile's label, or ErrNoConfig.
func (p Profiles) Active() (string, error) {
	b, err := os.ReadFile(p.currentFile())
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}

	return label, nil
}

func (p Profiles) ActivePath() (string, error) {
	label, err := p.Active()
	if err != nil {
		return "", err
	}

	return p.Path(label), nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

// List returns every profile sorted by label. A missing directory is an
// empty list.
func (p Profiles) List() ([]ConfigInfo, error) {
	entries, err := os.ReadDir(p.Dir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	active, _ := p.Active()
	var out []ConfigInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != profileExt {
			continue
		}

		label := strings.TrimSuffix(name, profileExt)
		out = append(out, ConfigInfo{
			Label:  label,
			Path:   p.Path(label),
			Active: label == active,
		})
	}

	slices.SortFunc(out, func(a, b ConfigInfo) int { return strings.Compare(a.Label, b.Label) })
	return out, nil
}

func (p Profiles) Switch(label string) error {
	if err := validLabel(label); err != nil {
		return err
	}
	if _, err := os.Stat(p.Path(label)); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	return os.WriteFile(p.currentFile(), []byte(label), 0644)
}

// Add creates a profile with default values. An existing label is an error.
func (p Profiles) Add(label string) (string, error) {
	if err := validLabel(label); err != nil {
		return "", err
	}
	path := p.Path(label)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("a config named %q already exists", label)
	}

	return path, p.Save(label, DefaultConfig())
}

// Rename moves a profile and keeps it active if it was.
func (p Profiles) Rename(oldLabel, newLabel string) error {
	if err := validLabel(oldLabel); err != nil {
		return err
	}
	if err := validLabel(newLabel); err != nil {
		return err
	}

	oldPath, newPath := p.Path(oldLabel), p.Path(newLabel)
	if _, err := os.Stat(oldPath); err != nil {
		return fmt.Errorf("config %q does not exist", oldLabel)
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}

	if active, _ := p.Active(); active == oldLabel {
		return p.Switch(newLabel)
	}

	return nil
}

// Remove deletes a profile. The Default profile cannot be removed. Removing
// the active profile activates Default and reports fellBack.
func (p Profiles) Remove(label string) (fellBack bool, err error) {
	if err := validLabel(label); err != nil {
		return false, err
	}
	if label == defaultLabel {
		return false, errors.New("cannot remove the Default config")
	}

	path := p.Path(label)
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("config %q does not exist", label)
	}

	if active, _ := p.Active(); active == label {
		if err := p.activateDefault(); err != nil {
			return false, fmt.Errorf("failed switching to Default: %w", err)
		}
		fellBack = true
	}

	return fellBack, os.Remove(path)
}

func (p Profiles) activateDefault() error {
	if _, err := os.Stat(p.Path(defaultLabel)); err == nil {
		return p.Switch(defaultLabel)
	}

	_, err := p.InitDefault()
	return err
}

// Reset overwrites the active profile with default values.
func (p Profiles) Reset() (string, error) {
	path, err := p.ActivePath()
	if err != nil {
		return "", err
	}

	return path, SaveYAML(DefaultConfig(), path)
}

// Save writes cfg as the profile named label.
func (p Profiles) Save(label string, cfg *Config) error {
	if err := validLabel(label); err != nil {
		return err
	}
	if err := os.MkdirAll(p.Dir(), 0755); err != nil {
		return err
	}

	return SaveYAML(cfg, p.Path(label))
}

// InitDefault writes the Default profile and activates it. When the profile
// already exists it is only activated and os.ErrExist is returned.
func (p Profiles) InitDefault() (string, error) {
	path := p.Path(defaultLabel)

	if _, err := os.Stat(path); err == nil {
		return path, errors.Join(os.ErrExist, p.Switch(defaultLabel))
	}

	if err := p.Save(defaultLabel, DefaultConfig()); err != nil {
		return "", err
	}

	return path, p.Switch(defaultLabel)
}
