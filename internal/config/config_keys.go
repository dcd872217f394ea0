// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the config command, where settings are addressed
// by dotted keys (e.g., "search.max_matches").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". Defaults apply only
// when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var keys = []string{
	"author.name", "author.email",
	"search.max_matches", "search.timeout",
	"ripgrep.version", "ripgrep.cache_dir", "ripgrep.system",
	"read.limit",
	"shell.timeout",
	"web.timeout", "web.max_content",
	"limits.max_path", "limits.max_content", "limits.max_line_length",
}

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return slices.Clone(keys)
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(keys, key)
}

// Get returns the effective value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "search.max_matches":
		return strconv.Itoa(c.MaxMatches()), nil
	case "search.timeout":
		return c.SearchTimeout().String(), nil
	case "ripgrep.version":
		return c.RipgrepVersion(), nil
	case "ripgrep.cache_dir":
		return c.RipgrepCacheDir(), nil
	case "ripgrep.system":
		return strconv.FormatBool(c.RipgrepSystem()), nil
	case "read.limit":
		return strconv.Itoa(c.ReadLimit()), nil
	case "shell.timeout":
		return c.ShellTimeout().String(), nil
	case "web.timeout":
		return c.WebTimeout().String(), nil
	case "web.max_content":
		return strconv.Itoa(c.WebMaxContent()), nil
	case "limits.max_path":
		return strconv.Itoa(c.MaxPath()), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	case "limits.max_line_length":
		return strconv.Itoa(c.MaxLineLength()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

func positiveInt(key, value string) (*int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
	}
	return &n, nil
}

func timeout(key, value string) (*string, error) {
	d, err := parseTimeout(key, value)
	if err != nil {
		return nil, err
	}
	s := d.String()
	return &s, nil
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "search.max_matches":
		c.Search.MaxMatches, err = positiveInt(key, value)
	case "search.timeout":
		c.Search.Timeout, err = timeout(key, value)
	case "ripgrep.version":
		c.Ripgrep.Version = strings.TrimPrefix(value, "v")
	case "ripgrep.cache_dir":
		c.Ripgrep.CacheDir = value
	case "ripgrep.system":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: ripgrep.system must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Ripgrep.System = &b
	case "read.limit":
		c.Read.Limit, err = positiveInt(key, value)
	case "shell.timeout":
		c.Shell.Timeout, err = timeout(key, value)
	case "web.timeout":
		c.Web.Timeout, err = timeout(key, value)
	case "web.max_content":
		c.Web.MaxContent, err = positiveInt(key, value)
	case "limits.max_path":
		var n *int
		if n, err = positiveInt(key, value); err == nil {
			c.Limits.MaxPath = n
		}
	case "limits.max_content":
		n, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_content must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxContent = &n
	case "limits.max_line_length":
		var n *int
		if n, err = positiveInt(key, value); err == nil {
			c.Limits.MaxLineLength = n
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err != nil {
		return err
	}
	return c.Validate()
}

// All returns all effective configuration values as a map.
func (c *Config) All() map[string]string {
	m := make(map[string]string, len(keys))
	for _, k := range keys {
		m[k], _ = c.Get(k)
	}
	return m
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "search.max_matches":
		return c.Search.MaxMatches != nil
	case "search.timeout":
		return c.Search.Timeout != nil
	case "ripgrep.version":
		return c.Ripgrep.Version != ""
	case "ripgrep.cache_dir":
		return c.Ripgrep.CacheDir != ""
	case "ripgrep.system":
		return c.Ripgrep.System != nil
	case "read.limit":
		return c.Read.Limit != nil
	case "shell.timeout":
		return c.Shell.Timeout != nil
	case "web.timeout":
		return c.Web.Timeout != nil
	case "web.max_content":
		return c.Web.MaxContent != nil
	case "limits.max_path":
		return c.Limits.MaxPath != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	case "limits.max_line_length":
		return c.Limits.MaxLineLength != nil
	default:
		return false
	}
}
