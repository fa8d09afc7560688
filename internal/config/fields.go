package config

import "github.com/conn-castle/launch/internal/messages"

// FieldType classifies the kind of value a config field accepts.
type FieldType string

const (
	// FieldEnum accepts one of a fixed set of options.
	FieldEnum FieldType = "enum"
	// FieldList accepts an ordered list of strings.
	FieldList FieldType = "list"
	// FieldCommand accepts a command line split with shell quoting rules.
	FieldCommand FieldType = "command"
)

// FieldOption describes a single selectable value for a field.
type FieldOption struct {
	Value       string
	Description string
}

// FieldDef describes a single config field's type and valid options.
type FieldDef struct {
	Key     string
	Type    FieldType
	Options []FieldOption
}

// fields is the ordered registry of config fields the wizard and validation share.
var fields = []FieldDef{
	{Key: "install.dependencies", Type: FieldList},
	{Key: "install.refresh_command", Type: FieldCommand},
	{Key: "install.install_command", Type: FieldCommand},
	{
		Key:  "ui.theme",
		Type: FieldEnum,
		Options: []FieldOption{
			{Value: "latte", Description: messages.ConfigThemeLatteDescription},
			{Value: "tokyo-night-moon", Description: messages.ConfigThemeTokyoNightMoonDescription},
		},
	},
	{
		Key:  "log.level",
		Type: FieldEnum,
		Options: []FieldOption{
			{Value: "debug", Description: messages.ConfigLogLevelDebugDescription},
			{Value: "info", Description: messages.ConfigLogLevelInfoDescription},
			{Value: "warn", Description: messages.ConfigLogLevelWarnDescription},
			{Value: "error", Description: messages.ConfigLogLevelErrorDescription},
		},
	},
}

var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Key] = i
	}
	return idx
}

// LookupField returns the field definition for the given config key.
// Returns false when the key is not in the catalog.
func LookupField(key string) (FieldDef, bool) {
	i, ok := fieldIndex[key]
	if !ok {
		return FieldDef{}, false
	}
	return copyFieldDef(fields[i]), true
}

// FieldOptionValues returns the option values for a field as a plain string slice.
// Returns nil when the key is not in the catalog or has no options.
func FieldOptionValues(key string) []string {
	f, ok := LookupField(key)
	if !ok || len(f.Options) == 0 {
		return nil
	}
	values := make([]string, len(f.Options))
	for i, opt := range f.Options {
		values[i] = opt.Value
	}
	return values
}

// copyFieldDef returns a deep copy of a FieldDef so callers cannot mutate the registry.
func copyFieldDef(f FieldDef) FieldDef {
	if len(f.Options) > 0 {
		opts := make([]FieldOption, len(f.Options))
		copy(opts, f.Options)
		f.Options = opts
	}
	return f
}
