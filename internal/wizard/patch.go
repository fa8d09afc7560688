// Package wizard implements the interactive first-run wizard: it installs the
// base dependencies and then offers to adjust the config file.
//
// Config updates use line-based editing so that comments and key order in
// the user's file survive. go-toml is used only to reject files that do not
// parse before any line is touched.
package wizard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"

	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/templates"
)

type tomlBlock struct {
	name  string
	lines []string
}

type tomlDocument struct {
	preamble []string
	sections map[string]*tomlBlock
	arrays   map[string][]*tomlBlock
	order    []string
}

// PatchConfig applies wizard choices to TOML config content.
// Sections are emitted in template order; sections the template does not know
// follow sorted by name. Untouched choices leave their keys as they are.
func PatchConfig(content string, choices *Choices) (string, error) {
	if _, err := toml.LoadBytes([]byte(content)); err != nil {
		return "", fmt.Errorf(messages.WizardParseConfigFailedFmt, err)
	}

	templateBytes, err := templates.Read("config.toml")
	if err != nil {
		return "", fmt.Errorf(messages.WizardReadTemplateFailedFmt, err)
	}

	templateDoc := parseTomlDocument(string(templateBytes))
	currentDoc := parseTomlDocument(content)

	output := make([]string, 0, len(templateDoc.order)*8)
	output = append(output, trimTrailingEmptyLines(choosePreamble(currentDoc.preamble, templateDoc.preamble))...)

	for _, name := range templateDoc.order {
		templateBlock := templateDoc.sections[name]
		block := selectSectionBlock(currentDoc.sections[name], templateBlock)
		applySectionUpdates(name, block, templateBlock, choices)
		appendBlock(&output, block.lines)
	}
	for _, block := range extraSectionBlocks(currentDoc.sections, templateDoc.sections) {
		appendBlock(&output, block.lines)
	}
	for _, block := range extraArrayBlocks(currentDoc.arrays) {
		appendBlock(&output, block.lines)
	}

	return strings.Join(trimTrailingEmptyLines(output), "\n") + "\n", nil
}

// choosePreamble keeps the user's leading comments unless there are none.
func choosePreamble(current []string, template []string) []string {
	if len(trimEmptyLines(current)) > 0 {
		return cloneLines(current)
	}
	return cloneLines(template)
}

// selectSectionBlock returns a copy of current, or of template when the
// section is missing from the user's file.
func selectSectionBlock(current *tomlBlock, template *tomlBlock) *tomlBlock {
	if current != nil {
		return cloneBlock(current)
	}
	return cloneBlock(template)
}

func applySectionUpdates(name string, block *tomlBlock, templateBlock *tomlBlock, choices *Choices) {
	if choices == nil {
		return
	}
	switch name {
	case "install":
		if choices.DependenciesTouched {
			setKeyValue(block, templateBlock, "dependencies", formatTomlArray(choices.Dependencies), "")
		}
	case "ui":
		if choices.ThemeTouched {
			setKeyValue(block, templateBlock, "theme", strconv.Quote(choices.Theme), "")
		}
	}
}

// setKeyValue replaces the value of key in block, including every
// continuation line of a multiline array, or inserts it after afterKey.
// Indentation and inline comments come from the existing line, then the template.
func setKeyValue(block *tomlBlock, templateBlock *tomlBlock, key string, value string, afterKey string) {
	if idx, ok := findActiveKeyIndex(block.lines, key); ok {
		end := multilineValueEndIndex(block.lines, idx)
		base, _ := parseKeyLine(block.lines[idx], key)
		if end > idx {
			base.inlineComment = ""
		}
		newLine := buildKeyLine(base, key, value)
		lines := append([]string(nil), block.lines[:idx]...)
		lines = append(lines, newLine)
		block.lines = append(lines, block.lines[end+1:]...)
		return
	}

	var base keyLine
	if templateBlock != nil {
		if idx, ok := findActiveKeyIndex(templateBlock.lines, key); ok && multilineValueEndIndex(templateBlock.lines, idx) == idx {
			base, _ = parseKeyLine(templateBlock.lines[idx], key)
		}
	}
	insertLine(block, key, buildKeyLine(base, key, value), afterKey)
}

// insertLine replaces a commented-out key line or inserts newLine after afterKey.
func insertLine(block *tomlBlock, key string, newLine string, afterKey string) {
	for i, line := range block.lines {
		if parsed, ok := parseKeyLine(line, key); ok && parsed.commented {
			block.lines[i] = newLine
			return
		}
	}
	at := findInsertIndex(block.lines, afterKey)
	block.lines = append(block.lines[:at], append([]string{newLine}, block.lines[at:]...)...)
}

// keyLine holds a parsed key/value line with comment metadata.
type keyLine struct {
	raw           string
	indent        string
	commented     bool
	inlineComment string
}

// findActiveKeyIndex returns the index of the first uncommented assignment to
// key, skipping the continuation lines of multiline values.
func findActiveKeyIndex(lines []string, key string) (int, bool) {
	for i := 0; i < len(lines); i++ {
		if parsed, ok := parseKeyLine(lines[i], key); ok && !parsed.commented {
			return i, true
		}
		i = multilineValueEndIndex(lines, i)
	}
	return 0, false
}

// parseKeyLine parses a possibly commented `key = value` line.
// Returns false when the line does not assign key.
func parseKeyLine(line string, key string) (keyLine, bool) {
	indentLen := len(line) - len(strings.TrimLeft(line, " \t"))
	indent := line[:indentLen]
	trimmed := line[indentLen:]
	commented := false
	if strings.HasPrefix(trimmed, "#") {
		commented = true
		trimmed = strings.TrimLeft(strings.TrimPrefix(trimmed, "#"), " \t")
	}
	if !strings.HasPrefix(trimmed, key) {
		return keyLine{}, false
	}
	rest := strings.TrimSpace(trimmed[len(key):])
	if !strings.HasPrefix(rest, "=") {
		return keyLine{}, false
	}
	inline := ""
	if pos := commentIndex(trimmed); pos >= 0 {
		inline = strings.TrimSpace(trimmed[pos:])
	}
	return keyLine{raw: line, indent: indent, commented: commented, inlineComment: inline}, true
}

// buildKeyLine renders a key/value line using indentation and inline comment from base.
func buildKeyLine(base keyLine, key string, value string) string {
	line := fmt.Sprintf("%s%s = %s", base.indent, key, value)
	if base.inlineComment != "" {
		line += " " + base.inlineComment
	}
	return line
}

// findInsertIndex returns the line index to insert a new key line after afterKey.
// lines should include the section header as the first entry.
func findInsertIndex(lines []string, afterKey string) int {
	if len(lines) == 0 {
		return 0
	}
	if afterKey != "" {
		if idx, ok := findActiveKeyIndex(lines, afterKey); ok {
			return multilineValueEndIndex(lines, idx) + 1
		}
	}
	end := len(lines)
	for end > 1 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return end
}

// multilineValueEndIndex returns the index of the last line of a value that
// starts at startIdx. Returns startIdx when the value fits on a single line
// or its brackets never balance.
func multilineValueEndIndex(lines []string, startIdx int) int {
	if startIdx >= len(lines) {
		return startIdx
	}
	line := lines[startIdx]
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return startIdx
	}
	eqIdx := strings.Index(line, "=")
	if eqIdx < 0 {
		return startIdx
	}
	valuePart := strings.TrimSpace(line[eqIdx+1:])

	var opener, closer byte
	switch {
	case strings.HasPrefix(valuePart, "["):
		opener, closer = '[', ']'
	case strings.HasPrefix(valuePart, "{"):
		opener, closer = '{', '}'
	default:
		return startIdx
	}

	depth := 0
	for i := startIdx; i < len(lines); i++ {
		from := 0
		if i == startIdx {
			from = eqIdx + 1
		}
		depth += countBracketDepth(lines[i][from:], opener, closer)
		if depth <= 0 {
			return i
		}
	}
	return startIdx
}

// countBracketDepth counts the net bracket depth change in a line, skipping
// brackets inside quoted strings and stopping at unquoted # comments.
func countBracketDepth(s string, opener, closer byte) int {
	depth := 0
	inDouble := false
	inSingle := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inDouble {
			if ch == '\\' {
				i++
				continue
			}
			if ch == '"' {
				inDouble = false
			}
			continue
		}
		if inSingle {
			if ch == '\'' {
				inSingle = false
			}
			continue
		}
		switch ch {
		case '"':
			inDouble = true
		case '\'':
			inSingle = true
		case '#':
			return depth
		case opener:
			depth++
		case closer:
			depth--
		}
	}
	return depth
}

// commentIndex returns the byte offset of the first # outside a quoted
// string, or -1.
func commentIndex(s string) int {
	inDouble := false
	inSingle := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inDouble && ch == '\\':
			i++
		case inDouble:
			inDouble = ch != '"'
		case inSingle:
			inSingle = ch != '\''
		case ch == '"':
			inDouble = true
		case ch == '\'':
			inSingle = true
		case ch == '#':
			return i
		}
	}
	return -1
}

// formatTomlArray renders values as a single-line TOML array of strings.
func formatTomlArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// parseTomlDocument splits TOML content into preamble lines, section blocks, and array-of-table blocks.
func parseTomlDocument(content string) tomlDocument {
	lines := strings.Split(content, "\n")
	sections := make(map[string]*tomlBlock)
	arrays := make(map[string][]*tomlBlock)
	var order []string
	var preamble []string
	var current *tomlBlock
	var currentIsArray bool

	flush := func() {
		if current == nil {
			return
		}
		if currentIsArray {
			arrays[current.name] = append(arrays[current.name], current)
		} else if _, exists := sections[current.name]; !exists {
			sections[current.name] = current
			order = append(order, current.name)
		}
		current = nil
		currentIsArray = false
	}

	for _, line := range lines {
		name, isArray, ok := parseTomlHeader(line)
		if ok {
			flush()
			current = &tomlBlock{name: name, lines: []string{line}}
			currentIsArray = isArray
			continue
		}
		if current == nil {
			preamble = append(preamble, line)
			continue
		}
		current.lines = append(current.lines, line)
	}
	flush()

	return tomlDocument{
		preamble: preamble,
		sections: sections,
		arrays:   arrays,
		order:    order,
	}
}

// parseTomlHeader detects a TOML table header line and extracts its name.
// Returns the name, whether it's an array-of-table, and a match flag.
func parseTomlHeader(line string) (string, bool, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false, false
	}
	if pos := commentIndex(trimmed); pos >= 0 {
		trimmed = strings.TrimSpace(trimmed[:pos])
	}
	if strings.HasPrefix(trimmed, "[[") && strings.HasSuffix(trimmed, "]]") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, "[["), "]]"))
		return name, true, name != ""
	}
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]"))
		return name, false, name != ""
	}
	return "", false, false
}

func cloneBlock(block *tomlBlock) *tomlBlock {
	if block == nil {
		return &tomlBlock{}
	}
	return &tomlBlock{name: block.name, lines: cloneLines(block.lines)}
}

func cloneLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// appendBlock appends a block to the output, inserting a single blank line between blocks.
func appendBlock(output *[]string, block []string) {
	trimmed := trimEmptyLines(block)
	if len(trimmed) == 0 {
		return
	}
	if len(*output) > 0 && (*output)[len(*output)-1] != "" {
		*output = append(*output, "")
	}
	*output = append(*output, trimmed...)
}

// trimEmptyLines removes leading and trailing blank lines from a block.
func trimEmptyLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

func trimTrailingEmptyLines(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

// extraSectionBlocks returns non-template section blocks sorted by name.
func extraSectionBlocks(sections map[string]*tomlBlock, templateSections map[string]*tomlBlock) []*tomlBlock {
	extra := make([]*tomlBlock, 0)
	for name, block := range sections {
		if _, exists := templateSections[name]; exists {
			continue
		}
		extra = append(extra, cloneBlock(block))
	}
	sort.Slice(extra, func(i, j int) bool {
		return extra[i].name < extra[j].name
	})
	return extra
}

// extraArrayBlocks returns array-of-table blocks sorted by name, keeping file
// order within one array.
func extraArrayBlocks(arrays map[string][]*tomlBlock) []*tomlBlock {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)
	extra := make([]*tomlBlock, 0)
	for _, name := range names {
		for _, block := range arrays[name] {
			extra = append(extra, cloneBlock(block))
		}
	}
	return extra
}
