package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Section and key names used by the core section of a repository config.
const (
	SectionCore             = "core"
	KeyRepositoryFormat     = "repositoryformatversion"
	KeyFileMode             = "filemode"
	KeyBare                 = "bare"
	DefaultRepositoryFormat = "0"
)

var loadOptions = ini.LoadOptions{InsensitiveKeys: true}

// ErrUnstableValue is returned by CheckValue for values that would change
// when the file is read back.
var ErrUnstableValue = errors.New("value cannot be stored unchanged")

func init() {
	// key = value, one space on each side, no column alignment
	ini.PrettyFormat = false
	ini.PrettyEqual = true
}

// Config is a section/key/value document backed by an ini file.
type Config struct {
	file *ini.File
}

// New returns an empty config.
func New() *Config {
	return &Config{file: ini.Empty(loadOptions)}
}

// Default returns the config written into every new repository.
func Default() *Config {
	c := New()
	c.Set(SectionCore, KeyRepositoryFormat, DefaultRepositoryFormat)
	c.Set(SectionCore, KeyFileMode, "false")
	c.Set(SectionCore, KeyBare, "false")

	return c
}

// Load reads and parses the config file at path. A missing file is reported
// with an error satisfying errors.Is(err, fs.ErrNotExist).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return c, nil
}

// Parse parses config text.
func Parse(data []byte) (*Config, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, err
	}

	return &Config{file: f}, nil
}

// Get returns the value of key in section and whether it was present.
func (c *Config) Get(section, key string) (string, bool) {
	sec, err := c.file.GetSection(section)
	if err != nil {
		return "", false
	}

	if !sec.HasKey(key) {
		return "", false
	}

	return sec.Key(key).Value(), true
}

// Set assigns value to key in section, creating both as needed.
func (c *Config) Set(section, key, value string) {
	c.file.Section(section).Key(key).SetValue(value)
}

// Unset removes key from section and reports whether it existed. A section
// left without keys is removed as well.
func (c *Config) Unset(section, key string) bool {
	sec, err := c.file.GetSection(section)
	if err != nil || !sec.HasKey(key) {
		return false
	}

	sec.DeleteKey(key)

	if len(sec.Keys()) == 0 {
		c.file.DeleteSection(section)
	}

	return true
}

// Sections returns a copy of the whole document as section -> key -> value.
// The implicit default section is omitted when it holds no keys.
func (c *Config) Sections() map[string]map[string]string {
	out := make(map[string]map[string]string)

	for _, sec := range c.file.Sections() {
		if sec.Name() == ini.DefaultSection && len(sec.Keys()) == 0 {
			continue
		}

		keys := make(map[string]string, len(sec.Keys()))
		for _, k := range sec.Keys() {
			keys[k.Name()] = k.Value()
		}

		out[sec.Name()] = keys
	}

	return out
}

// WriteTo writes the config text to w.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	return c.file.WriteTo(w)
}

// Bytes returns the config text.
func (c *Config) Bytes() ([]byte, error) {
	var buf bytes.Buffer

	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Save writes the config to path, replacing any existing file.
func (c *Config) Save(path string) error {
	data, err := c.Bytes()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// CheckValue reports values that Set accepts but that do not survive a save
// and reload unchanged. The parser strips one pair of enclosing quotes, so
// "q" would be read back as q.
func CheckValue(value string) error {
	c := New()
	c.Set("check", "value", value)

	data, err := c.Bytes()
	if err != nil {
		return err
	}

	back, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnstableValue, value)
	}

	if got, _ := back.Get("check", "value"); got != value {
		return fmt.Errorf("%w: %q is read back as %q", ErrUnstableValue, value, got)
	}

	return nil
}

// SplitName splits a dotted name into section and key. The git style
// "remote.origin.url" addresses key url of section `remote "origin"`.
func SplitName(name string) (section, key string, err error) {
	first := strings.Index(name, ".")
	last := strings.LastIndex(name, ".")

	if first <= 0 || last == len(name)-1 {
		return "", "", fmt.Errorf("invalid config name %q (expected section.key)", name)
	}

	key = name[last+1:]

	if first == last {
		return name[:first], key, nil
	}

	sub := name[first+1 : last]
	if sub == "" {
		return "", "", fmt.Errorf("invalid config name %q (empty subsection)", name)
	}

	return fmt.Sprintf("%s %q", name[:first], sub), key, nil
}

// JoinName is the inverse of SplitName.
func JoinName(section, key string) string {
	name, sub, ok := strings.Cut(section, " ")
	if !ok {
		return section + "." + key
	}

	if unquoted, err := strconv.Unquote(sub); err == nil {
		sub = unquoted
	}

	return name + "." + sub + "." + key
}
