package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"gopkg.in/yaml.v3"
)

// tracerKeys are the tracers of the calculator modules.
var tracerKeys = []string{"lrcalc.lr", "lrcalc.scanner", "lrcalc.runtime", "lrcalc.calc", "lrcalc.repl"}

// yamlConfig is a schuko.Configuration read from a YAML document. Nested
// mappings are flattened to dotted keys:
//
//    trace:
//      lrcalc:
//        calc: Debug
//
// becomes "trace.lrcalc.calc" = "Debug".
type yamlConfig struct {
	values map[string]string
}

var _ schuko.Configuration = (*yamlConfig)(nil)

// loadConfig reads the configuration from path. If path is empty, it
// searches for a configuration file of application 'crepl'; if there is none,
// the configuration holds defaults only.
func loadConfig(path string) (*yamlConfig, error) {
	if path == "" {
		if found := schuko.LocateConfig("crepl", "", []string{"yaml", "yml"}); len(found) > 0 {
			path = found[0]
		}
	}
	if path == "" {
		return newConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}
	conf, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("configuration %s: %w", path, err)
	}
	return conf, nil
}

func newConfig() *yamlConfig {
	return &yamlConfig{values: make(map[string]string)}
}

func parseConfig(data []byte) (*yamlConfig, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	conf := newConfig()
	conf.flatten("", doc)
	return conf, nil
}

func (c *yamlConfig) flatten(prefix string, m map[string]interface{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case map[string]interface{}:
			c.flatten(key, x)
		case []interface{}:
			items := make([]string, len(x))
			for i, item := range x {
				items[i] = fmt.Sprint(item)
			}
			c.values[key] = strings.Join(items, ",")
		case nil:
			c.values[key] = ""
		default:
			c.values[key] = fmt.Sprint(x)
		}
	}
}

// Set sets a configuration value, returning the previous one.
func (c *yamlConfig) Set(key, value string) string {
	old := c.values[key]
	c.values[key] = value
	return old
}

// InitDefaults is part of interface schuko.Configuration.
func (c *yamlConfig) InitDefaults() {
	defaults := map[string]string{
		"prompt":          "calc> ",
		"tracing.adapter": "go",
		"trace.root":      "Error",
	}
	for k, v := range defaults {
		if !c.IsSet(k) {
			c.values[k] = v
		}
	}
}

// IsSet is part of interface schuko.Configuration.
func (c *yamlConfig) IsSet(key string) bool {
	_, ok := c.values[key]
	return ok
}

// GetString is part of interface schuko.Configuration.
func (c *yamlConfig) GetString(key string) string {
	return c.values[key]
}

// GetInt is part of interface schuko.Configuration.
func (c *yamlConfig) GetInt(key string) int {
	n, err := strconv.Atoi(c.values[key])
	if err != nil {
		return 0
	}
	return n
}

// GetBool is part of interface schuko.Configuration.
func (c *yamlConfig) GetBool(key string) bool {
	b, err := strconv.ParseBool(c.values[key])
	return err == nil && b
}

// IsInteractive is part of interface schuko.Configuration.
func (c *yamlConfig) IsInteractive() bool {
	return true
}

// setTraceLevel sets the level of all calculator tracers.
func (c *yamlConfig) setTraceLevel(level string) {
	for _, key := range tracerKeys {
		c.values["trace."+key] = level
	}
}

// constants returns the user constants, sorted by name.
func (c *yamlConfig) constants() ([]string, map[string]float64, error) {
	var names []string
	consts := make(map[string]float64)
	for k, v := range c.values {
		if !strings.HasPrefix(k, "constants.") {
			continue
		}
		name := strings.TrimPrefix(k, "constants.")
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("constant %s is not a number: %q", name, v)
		}
		names = append(names, name)
		consts[name] = x
	}
	sort.Strings(names)
	return names, consts, nil
}
