package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskpad.db"
	DefaultLogName        = "taskpad.log"
	DefaultStorageKey     = "tasks"
	DefaultProfile        = "default"
	DefaultDateLayout     = "1/2/2006"
	DefaultSchedule       = "@every 1h"
	DefaultIcon           = "https://cdn-icons-png.flaticon.com/512/2910/2910768.png"

	envConfigPath = "TASKPAD_CONFIG"
)

type Keymap struct {
	Quit   string `toml:"quit"`
	Add    string `toml:"add"`
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Toggle string `toml:"toggle"`
	Delete string `toml:"delete"`
	Edit   string `toml:"edit"`
	Search string `toml:"search"`
	Filter string `toml:"filter"`
	Theme  string `toml:"theme"`
	Next   string `toml:"next_field"`
	Prev   string `toml:"prev_field"`

	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

type Reminders struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"`
	Icon     string `toml:"icon"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type Config struct {
	DBPath        string    `toml:"db_path"`
	Profile       string    `toml:"profile"`
	StorageKey    string    `toml:"storage_key"`
	DefaultFilter string    `toml:"default_filter"`
	Theme         string    `toml:"theme"`
	DateLayout    string    `toml:"date_layout"`
	Reminders     Reminders `toml:"reminders"`
	Log           Log       `toml:"log"`
	Keys          Keymap    `toml:"keys"`
}

// ResolveConfigPath picks $TASKPAD_CONFIG, then the user config dir, then
// the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "taskpad", DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if the file does not exist. Relative paths inside the config resolve
// against its directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.Profile == "" {
		cfg.Profile = DefaultProfile
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = DefaultDateLayout
	}
	if cfg.Reminders.Schedule == "" {
		cfg.Reminders.Schedule = DefaultSchedule
	}
	if cfg.Reminders.Icon == "" {
		cfg.Reminders.Icon = DefaultIcon
	}
	return cfg.resolve(path), nil
}

func (c Config) resolve(path string) Config {
	dir := filepath.Dir(path)
	c.DBPath = resolvePath(dir, c.DBPath)
	c.Log.File = resolvePath(dir, c.Log.File)
	return c
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		Profile:       DefaultProfile,
		StorageKey:    DefaultStorageKey,
		DefaultFilter: "all",
		Theme:         "light",
		DateLayout:    DefaultDateLayout,
		Reminders: Reminders{
			Enabled:  true,
			Schedule: DefaultSchedule,
			Icon:     DefaultIcon,
		},
		Log: Log{
			Level: "info",
			File:  DefaultLogName,
		},
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Toggle:  " ",
			Delete:  "d",
			Edit:    "e",
			Search:  "/",
			Filter:  "f",
			Theme:   "t",
			Next:    "tab",
			Prev:    "shift+tab",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}
