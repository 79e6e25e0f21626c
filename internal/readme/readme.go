// Package readme scrapes server README files for configuration hints.
// Everything it returns is advisory: malformed snippets are skipped, never reported as errors.
package readme

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNoEnvVars is returned by ExtractEnv when the README mentions no environment variables.
var ErrNoEnvVars = errors.New("no environment variables found in README")

// fileNames are tried in order by Read.
var fileNames = []string{"README.md", "readme.md", "Readme.md"}

var (
	envLineRe     = regexp.MustCompile(`(?m)^[A-Z_][A-Z0-9_]*=(?:<[^>]+>|\S+)`)
	fenceRe       = regexp.MustCompile("(?s)```([A-Za-z]*)[^\\n]*\\n(.*?)```")
	envFragmentRe = regexp.MustCompile(`"env"\s*:\s*\{([^}]+)\}`)
	envPairRe     = regexp.MustCompile(`"([^"]+)"\s*:\s*"([^"]+)"`)
	pipInstallRe  = regexp.MustCompile(`pip install [^\s]+`)
	urlRe         = regexp.MustCompile(`https?://[\w.-]+/[^\s)"']+`)
)

// Read returns the README of dir, or "" when there is none.
func Read(dir string) string {
	for _, name := range fileNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data)
		}
	}
	return ""
}

// ExtractEnv collects environment variable names and example values from README content.
// 'KEY=value' lines are read first, then 'env' objects of JSON snippets, which overwrite line values.
// The result only depends on content.
func ExtractEnv(content string) (map[string]string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	env := map[string]string{}

	for _, line := range envLineRe.FindAllString(content, -1) {
		key, value, _ := strings.Cut(line, "=")
		if key != "" && value != "" {
			env[key] = value
		}
	}

	for _, block := range jsonBlocks(content) {
		mergeBlockEnv(env, block)
	}

	if len(env) == 0 {
		return nil, ErrNoEnvVars
	}

	return env, nil
}

// OfficialName returns the first server key of the first 'mcpServers' snippet in content.
func OfficialName(content string) (string, bool) {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	for _, block := range jsonBlocks(content) {
		var doc struct {
			MCPServers json.RawMessage `json:"mcpServers"`
		}
		if err := json.Unmarshal([]byte(block), &doc); err != nil || len(doc.MCPServers) == 0 {
			continue
		}
		if key, ok := firstKey(doc.MCPServers); ok {
			return key, true
		}
	}

	return "", false
}

// PythonSnippet is the install information published in a Python server's README.
type PythonSnippet struct {
	// Config is the first 'mcpServers' JSON snippet, re-encoded.
	Config json.RawMessage

	// PipInstall is the first 'pip install <package>' command, if any.
	PipInstall string

	// URL is the first link in the README, if any.
	URL string
}

// ExtractPythonSnippet returns the first non-Docker 'mcpServers' snippet along with the first
// pip install command and the first URL. It returns false when there is no such snippet.
func ExtractPythonSnippet(content string) (PythonSnippet, bool) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	noDocker := fenceRe.ReplaceAllStringFunc(content, func(fence string) string {
		if strings.Contains(strings.ToLower(fence), "docker") {
			return ""
		}
		return fence
	})

	var snippet PythonSnippet
	for _, block := range jsonBlocks(noDocker) {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal([]byte(block), &doc); err != nil {
			continue
		}
		if _, ok := doc["mcpServers"]; !ok {
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, []byte(block)); err != nil {
			continue
		}
		snippet.Config = compact.Bytes()
		break
	}

	if snippet.Config == nil {
		return PythonSnippet{}, false
	}

	snippet.PipInstall = pipInstallRe.FindString(noDocker)
	snippet.URL = urlRe.FindString(noDocker)

	return snippet, true
}

// Launch returns the command and args of the first server in the snippet's 'mcpServers' object.
func (p PythonSnippet) Launch() (string, []string, bool) {
	var doc struct {
		MCPServers json.RawMessage `json:"mcpServers"`
	}
	if err := json.Unmarshal(p.Config, &doc); err != nil {
		return "", nil, false
	}

	name, ok := firstKey(doc.MCPServers)
	if !ok {
		return "", nil, false
	}

	var servers map[string]struct {
		Command string   `json:"command"`
		Args    []string `json:"args"`
	}
	if err := json.Unmarshal(doc.MCPServers, &servers); err != nil {
		return "", nil, false
	}

	server := servers[name]
	if strings.TrimSpace(server.Command) == "" {
		return "", nil, false
	}

	return server.Command, server.Args, true
}

// jsonBlocks returns the candidate JSON objects of content, in document order per fence:
// the leading object of a json-tagged (or untagged) fence, then, in fences of any language,
// every object starting a line that mentions "env" or "mcpServers". A fence that mentions
// "env" without yielding such an object is returned whole so the regex fallback can read it.
// Bare objects outside fences follow. Objects are cut out by brace matching.
func jsonBlocks(content string) []string {
	var blocks []string
	seen := map[string]struct{}{}
	add := func(obj string) {
		if _, ok := seen[obj]; ok {
			return
		}
		seen[obj] = struct{}{}
		blocks = append(blocks, obj)
	}

	for _, m := range fenceRe.FindAllStringSubmatch(content, -1) {
		body := strings.TrimSpace(m[2])

		switch strings.ToLower(m[1]) {
		case "", "json", "jsonc", "json5":
			if obj, ok := balancedObject(body, 0); ok {
				add(obj)
			}
		}

		objs := lineObjects(body)
		for _, obj := range objs {
			add(obj)
		}
		if len(objs) == 0 && strings.Contains(body, `"env"`) {
			add(body)
		}
	}

	for _, obj := range lineObjects(fenceRe.ReplaceAllString(content, "")) {
		add(obj)
	}

	return blocks
}

// lineObjects returns the objects of s that open at the start of a line (after indentation)
// and mention "env" or "mcpServers".
func lineObjects(s string) []string {
	var objs []string

	offset := 0
	for _, line := range strings.SplitAfter(s, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "{") {
			start := offset + len(line) - len(trimmed)
			if obj, ok := balancedObject(s, start); ok &&
				(strings.Contains(obj, `"env"`) || strings.Contains(obj, `"mcpServers"`)) {
				objs = append(objs, obj)
			}
		}
		offset += len(line)
	}

	return objs
}

// balancedObject returns the JSON object starting at s[start], which must be '{'.
// Braces inside strings are ignored. It returns false when the object is not closed.
func balancedObject(s string, start int) (string, bool) {
	if start >= len(s) || s[start] != '{' {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// mergeBlockEnv adds the string values of the block's 'env' object and of every
// 'mcpServers.*.env' object. Blocks that are not valid JSON fall back to regex extraction.
func mergeBlockEnv(env map[string]string, block string) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(block), &doc); err != nil {
		if m := envFragmentRe.FindStringSubmatch(block); m != nil {
			for _, pair := range envPairRe.FindAllStringSubmatch(m[1], -1) {
				env[pair[1]] = pair[2]
			}
		}
		return
	}

	addStrings(env, doc["env"])

	servers, _ := doc["mcpServers"].(map[string]any)
	for _, server := range servers {
		if s, ok := server.(map[string]any); ok {
			addStrings(env, s["env"])
		}
	}
}

func addStrings(dst map[string]string, src any) {
	m, _ := src.(map[string]any)
	for k, v := range m {
		if s, ok := v.(string); ok {
			dst[k] = s
		}
	}
}

// firstKey returns the first key of a JSON object in document order.
func firstKey(raw json.RawMessage) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", false
	}
	if !dec.More() {
		return "", false
	}

	tok, err = dec.Token()
	if err != nil {
		return "", false
	}
	key, ok := tok.(string)

	return key, ok
}
