package template

import (
	"regexp"
	"strings"
)

var (
	tagPattern     = regexp.MustCompile(`(?s)\{\{-?(.*?)-?\}\}|\{%-?\s*(\w+)(.*?)-?%\}`)
	literalPattern = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)
	pathPattern    = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z0-9_]+)*`)
)

var keywords = map[string]struct{}{
	"and": {}, "or": {}, "not": {}, "in": {}, "is": {},
	"true": {}, "false": {}, "True": {}, "False": {},
	"none": {}, "None": {}, "nil": {},
	"reversed": {}, "sorted": {},
}

// scanReferences lists the variable paths a source may read from its context,
// in order of first appearance. Loop and set variables are excluded.
func scanReferences(source string) [][]string {
	locals := map[string]struct{}{"forloop": {}}
	var exprs []string

	for _, match := range tagPattern.FindAllStringSubmatch(source, -1) {
		if match[2] == "" {
			exprs = append(exprs, match[1])
			continue
		}
		args := match[3]
		switch match[2] {
		case "if", "elif":
			exprs = append(exprs, args)
		case "for":
			head, tail, ok := strings.Cut(args, " in ")
			if !ok {
				continue
			}
			for _, name := range strings.Split(head, ",") {
				if name = strings.TrimSpace(name); name != "" {
					locals[name] = struct{}{}
				}
			}
			exprs = append(exprs, tail)
		case "set":
			name, value, ok := strings.Cut(args, "=")
			if !ok {
				continue
			}
			locals[strings.TrimSpace(name)] = struct{}{}
			exprs = append(exprs, value)
		}
	}

	seen := make(map[string]struct{})
	var refs [][]string
	for _, expr := range exprs {
		for _, path := range expressionPaths(expr) {
			segments := strings.Split(path, ".")
			if _, ok := locals[segments[0]]; ok {
				continue
			}
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			refs = append(refs, segments)
		}
	}
	return refs
}

func expressionPaths(expr string) []string {
	expr = literalPattern.ReplaceAllStringFunc(expr, func(lit string) string {
		return strings.Repeat(" ", len(lit))
	})

	var paths []string
	for _, loc := range pathPattern.FindAllStringIndex(expr, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isTokenByte(expr[start-1]) {
			continue
		}
		if filterName(expr[:start]) {
			continue
		}
		path := expr[start:end]
		if _, ok := keywords[path]; ok {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func isTokenByte(b byte) bool {
	return b == '.' || b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

func filterName(prefix string) bool {
	return strings.HasSuffix(strings.TrimRight(prefix, " \t"), "|")
}

// defined reports whether every segment of path resolves inside ctx. Values
// that are not string keyed maps are not inspected further.
func defined(ctx map[string]any, path []string) bool {
	var current any = ctx
	for _, segment := range path {
		fields, ok := stringMap(current)
		if !ok {
			return true
		}
		value, ok := fields[segment]
		if !ok {
			return false
		}
		current = value
	}
	return true
}

func stringMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[string]string:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}
