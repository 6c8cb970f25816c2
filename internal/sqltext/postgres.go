package sqltext

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// NormalizePostgres parses sql with the PostgreSQL parser and deparses it
// back, which canonicalises whitespace, keyword case and redundant
// parentheses. The second result is false when sql does not parse.
func NormalizePostgres(sql string) (string, bool) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return "", false
	}

	parseResult, err := pg_query.Parse(sql)
	if err != nil {
		return "", false
	}
	if len(parseResult.Stmts) == 0 {
		return "", false
	}

	deparsed, err := pg_query.Deparse(parseResult)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(deparsed), true
}

// EquivalentPostgres reports whether a and b deparse to the same statement.
// Either side failing to parse means not equivalent.
func EquivalentPostgres(a, b string) bool {
	na, ok := NormalizePostgres(a)
	if !ok {
		return false
	}
	nb, ok := NormalizePostgres(b)
	if !ok {
		return false
	}
	return na == nb
}
