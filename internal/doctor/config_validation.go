package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/launch/internal/config"
	"github.com/conn-castle/launch/internal/messages"
)

type configUnknownKeyDetail struct {
	Path       string
	Allowed    []string
	Suggestion string
}

// configSchemaNode is a table in the config schema. Leaves have no children.
type configSchemaNode struct {
	children map[string]*configSchemaNode
}

var (
	configSchemaOnce sync.Once
	configSchemaRoot *configSchemaNode
)

// summarizeUnknownKeys returns a compact summary suitable for single-line output.
func summarizeUnknownKeys(details []configUnknownKeyDetail) string {
	paths := make([]string, 0, len(details))
	for _, detail := range details {
		paths = append(paths, detail.Path)
	}
	sort.Strings(paths)
	return fmt.Sprintf(messages.DoctorConfigUnknownKeysFmt, strings.Join(paths, ", "))
}

// formatUnknownKeyRecommendation renders a multi-line recommendation for unknown keys.
func formatUnknownKeyRecommendation(configPath string, details []configUnknownKeyDetail) string {
	lines := []string{fmt.Sprintf(messages.DoctorConfigUnknownKeysHeaderFmt, configPath)}
	for _, detail := range details {
		var line string
		if len(detail.Allowed) > 0 {
			line = fmt.Sprintf(messages.DoctorConfigUnknownKeyFmt, detail.Path, strings.Join(detail.Allowed, ", "))
		} else {
			line = fmt.Sprintf(messages.DoctorConfigUnknownKeyLeafFmt, detail.Path)
		}
		if detail.Suggestion != "" {
			line = fmt.Sprintf(messages.DoctorConfigUnknownKeySuggestFmt, line, detail.Suggestion)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// configUnknownKeys returns the keys in the file at configPath that config.Config does not declare.
func configUnknownKeys(configPath string) ([]configUnknownKeyDetail, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var details []configUnknownKeyDetail
	findUnknownConfigKeys(raw, configSchema(), "", &details)
	sort.Slice(details, func(i, j int) bool {
		return details[i].Path < details[j].Path
	})
	return details, nil
}

func configSchema() *configSchemaNode {
	configSchemaOnce.Do(func() {
		configSchemaRoot = buildSchema(reflect.TypeOf(config.Config{}))
	})
	return configSchemaRoot
}

// buildSchema constructs a schema tree from the toml tags of t.
func buildSchema(t reflect.Type) *configSchemaNode {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return &configSchemaNode{}
	}
	node := &configSchemaNode{children: make(map[string]*configSchemaNode)}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key := strings.Split(strings.TrimSpace(field.Tag.Get("toml")), ",")[0]
		if key == "" || key == "-" {
			continue
		}
		node.children[key] = buildSchema(field.Type)
	}
	return node
}

func findUnknownConfigKeys(raw map[string]any, schema *configSchemaNode, path string, details *[]configUnknownKeyDetail) {
	allowed := schema.allowedKeys()
	for key, value := range raw {
		child, ok := schema.children[key]
		if !ok {
			*details = append(*details, configUnknownKeyDetail{
				Path:       joinConfigPath(path, key),
				Allowed:    allowed,
				Suggestion: suggestKeyRename(key, schema, path),
			})
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			findUnknownConfigKeys(nested, child, joinConfigPath(path, key), details)
		}
	}
}

func (n *configSchemaNode) allowedKeys() []string {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	keys := make([]string, 0, len(n.children))
	for key := range n.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func joinConfigPath(path string, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// suggestKeyRename maps an unknown key to a known key in the same table, if one
// differs only by case or by dashes in place of underscores.
func suggestKeyRename(key string, schema *configSchemaNode, path string) string {
	if schema == nil || len(schema.children) == 0 {
		return ""
	}
	normalized := strings.ReplaceAll(key, "-", "_")
	for allowed := range schema.children {
		if strings.EqualFold(normalized, allowed) {
			return joinConfigPath(path, allowed)
		}
	}
	return ""
}
