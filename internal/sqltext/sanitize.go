// Package sqltext cleans stored SQL source text (views, routines, triggers)
// so that two definitions can be compared for semantic equality.
package sqltext

import (
	"regexp"
	"strings"
)

// StripComments removes "--" line comments and "/* */" block comments.
// Block comments may nest. Text inside single-quoted literals, double-quoted
// identifiers and bracketed identifiers is left alone.
func StripComments(sql string) string {
	var sb strings.Builder
	sb.Grow(len(sql))

	n := len(sql)
	for i := 0; i < n; {
		c := sql[i]
		switch {
		case c == '\'' || c == '"' || c == '[':
			end := closeQuote(sql, i)
			sb.WriteString(sql[i:end])
			i = end
		case c == '-' && i+1 < n && sql[i+1] == '-':
			for i < n && sql[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && sql[i+1] == '*':
			depth := 0
			for i < n {
				if i+1 < n && sql[i] == '/' && sql[i+1] == '*' {
					depth++
					i += 2
					continue
				}
				if i+1 < n && sql[i] == '*' && sql[i+1] == '/' {
					depth--
					i += 2
					if depth == 0 {
						break
					}
					continue
				}
				i++
			}
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// closeQuote returns the index just past the quoted run starting at start.
// Doubled quote characters are escapes. An unterminated run extends to the end.
func closeQuote(sql string, start int) int {
	open := sql[start]
	closing := open
	if open == '[' {
		closing = ']'
	}
	for i := start + 1; i < len(sql); i++ {
		if sql[i] != closing {
			continue
		}
		if i+1 < len(sql) && sql[i+1] == closing {
			i++
			continue
		}
		return i + 1
	}
	return len(sql)
}

// RemoveBlankLines drops empty and whitespace-only lines, trims trailing
// whitespace from the others and normalises line endings to "\n"
func RemoveBlankLines(sql string) string {
	lines := strings.Split(strings.ReplaceAll(sql, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// CollapseSpaces turns each run of spaces and tabs inside a line into one
// space. Leading indentation and quoted runs are kept as written.
func CollapseSpaces(sql string) string {
	var sb strings.Builder
	sb.Grow(len(sql))

	n := len(sql)
	lineStart := true
	for i := 0; i < n; {
		c := sql[i]
		switch {
		case c == '\n':
			sb.WriteByte(c)
			lineStart = true
			i++
		case c == ' ' || c == '\t':
			j := i
			for j < n && (sql[j] == ' ' || sql[j] == '\t') {
				j++
			}
			if lineStart {
				sb.WriteString(sql[i:j])
			} else {
				sb.WriteByte(' ')
			}
			i = j
		case c == '\'' || c == '"' || c == '[':
			end := closeQuote(sql, i)
			sb.WriteString(sql[i:end])
			lineStart = false
			i = end
		default:
			sb.WriteByte(c)
			lineStart = false
			i++
		}
	}
	return sb.String()
}

// Sanitize strips comments, collapses inner whitespace and drops blank lines
func Sanitize(sql string) string {
	return RemoveBlankLines(CollapseSpaces(StripComments(sql)))
}

var viewPreamble = regexp.MustCompile(`(?is)^\s*(?:CREATE\s+OR\s+ALTER|CREATE|ALTER)\s+VIEW\s+.*?\sAS\s+`)

// StripViewPreamble removes a leading "CREATE VIEW <name> ... AS" so that
// only the SELECT body remains. Text without the preamble is returned as is.
func StripViewPreamble(sql string) string {
	loc := viewPreamble.FindStringIndex(sql)
	if loc == nil {
		return sql
	}
	return sql[loc[1]:]
}
