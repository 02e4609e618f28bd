package config

import (
	"fmt"
	"strconv"
	"strings"

	// toml v1 is used for syntax validation only; the actual edit is
	// line-based so user comments and formatting survive rewrites.
	toml "github.com/pelletier/go-toml"

	"github.com/beaconworks/devstrap/internal/messages"
)

type tomlBlock struct {
	name  string
	lines []string
}

type tomlDocument struct {
	preamble []string
	blocks   []*tomlBlock
}

// PatchSet sets a dotted key (e.g. "managers.order", "wsl.default_distro")
// in config.toml content, preserving comments and unrelated formatting.
// The value is typed by shape: true/false and integers stay bare, a value
// in [brackets] passes through as a TOML array, everything else is quoted.
// The patched document is re-validated before it is returned.
func PatchSet(content string, dottedKey string, rawValue string) (string, error) {
	if _, err := toml.LoadBytes([]byte(content)); err != nil {
		return "", fmt.Errorf(messages.ConfigPatchParseFailedFmt, err)
	}

	section, key, err := splitKey(dottedKey)
	if err != nil {
		return "", err
	}
	value := formatTomlValue(rawValue)

	doc := parseTomlDocument(content)
	block := doc.section(section)
	if block == nil {
		block = &tomlBlock{name: section, lines: []string{"[" + section + "]"}}
		doc.blocks = append(doc.blocks, block)
	}
	setKeyLine(block, key, value)

	patched := doc.render()
	if _, err := toml.LoadBytes([]byte(patched)); err != nil {
		return "", fmt.Errorf(messages.ConfigPatchInvalidResultFmt, dottedKey, err)
	}
	return patched, nil
}

func splitKey(dottedKey string) (section string, key string, err error) {
	trimmed := strings.TrimSpace(dottedKey)
	idx := strings.LastIndex(trimmed, ".")
	if idx <= 0 || idx == len(trimmed)-1 {
		return "", "", fmt.Errorf(messages.ConfigPatchBadKeyFmt, dottedKey)
	}
	return trimmed[:idx], trimmed[idx+1:], nil
}

// formatTomlValue renders a raw CLI value as a TOML literal.
func formatTomlValue(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "true" || trimmed == "false" {
		return trimmed
	}
	if _, err := strconv.Atoi(trimmed); err == nil {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		return trimmed
	}
	return strconv.Quote(trimmed)
}

// setKeyLine replaces the first assignment of key in the block, reusing
// its indentation and inline comment. A commented-out line for the key is
// uncommented in place; otherwise the new line is inserted after the
// section header.
func setKeyLine(block *tomlBlock, key string, value string) {
	commentedAt := -1
	for i, line := range block.lines {
		parsed, ok := parseKeyLine(line, key)
		if !ok {
			continue
		}
		if parsed.commented {
			if commentedAt < 0 {
				commentedAt = i
			}
			continue
		}
		block.lines[i] = buildKeyLine(parsed, key, value)
		return
	}
	if commentedAt >= 0 {
		parsed, _ := parseKeyLine(block.lines[commentedAt], key)
		block.lines[commentedAt] = buildKeyLine(parsed, key, value)
		return
	}
	newLine := key + " = " + value
	block.lines = append(block.lines[:1], append([]string{newLine}, block.lines[1:]...)...)
}

type keyLine struct {
	indent        string
	commented     bool
	inlineComment string
}

// parseKeyLine matches `key = value` lines, commented or not, and captures
// the indentation and inline comment so a rewrite keeps both.
func parseKeyLine(line string, key string) (keyLine, bool) {
	indentLen := len(line) - len(strings.TrimLeft(line, " \t"))
	parsed := keyLine{indent: line[:indentLen]}
	rest := line[indentLen:]
	if strings.HasPrefix(rest, "#") {
		parsed.commented = true
		rest = strings.TrimLeft(strings.TrimPrefix(rest, "#"), " \t")
	}
	if !strings.HasPrefix(rest, key) {
		return keyLine{}, false
	}
	rest = strings.TrimSpace(rest[len(key):])
	if !strings.HasPrefix(rest, "=") {
		return keyLine{}, false
	}
	if pos := inlineCommentIndex(rest); pos >= 0 {
		parsed.inlineComment = strings.TrimSpace(rest[pos:])
	}
	return parsed, true
}

// inlineCommentIndex finds the start of a # comment outside quoted strings.
func inlineCommentIndex(s string) int {
	inDouble := false
	inSingle := false
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case inDouble:
			if ch == '\\' {
				i++
			} else if ch == '"' {
				inDouble = false
			}
		case inSingle:
			if ch == '\'' {
				inSingle = false
			}
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

func buildKeyLine(base keyLine, key string, value string) string {
	line := base.indent + key + " = " + value
	if base.inlineComment != "" {
		line += " " + base.inlineComment
	}
	return line
}

func (d *tomlDocument) section(name string) *tomlBlock {
	for _, block := range d.blocks {
		if block.name == name {
			return block
		}
	}
	return nil
}

func (d *tomlDocument) render() string {
	out := make([]string, 0, len(d.preamble))
	out = append(out, trimBlankEdges(d.preamble)...)
	for _, block := range d.blocks {
		lines := trimBlankEdges(block.lines)
		if len(lines) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return strings.Join(out, "\n") + "\n"
}

func trimBlankEdges(lines []string) []string {
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

// parseTomlDocument splits content into preamble lines and table blocks in
// order of appearance.
func parseTomlDocument(content string) *tomlDocument {
	doc := &tomlDocument{}
	var current *tomlBlock
	for _, line := range strings.Split(content, "\n") {
		if name, ok := parseTomlHeader(line); ok {
			current = &tomlBlock{name: name, lines: []string{line}}
			doc.blocks = append(doc.blocks, current)
			continue
		}
		if current == nil {
			doc.preamble = append(doc.preamble, line)
			continue
		}
		current.lines = append(current.lines, line)
	}
	return doc
}

func parseTomlHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if pos := inlineCommentIndex(trimmed); pos >= 0 {
		trimmed = strings.TrimSpace(trimmed[:pos])
	}
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") || strings.HasPrefix(trimmed, "[[") {
		return "", false
	}
	name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	return name, name != ""
}
