package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const schemaName = "volunteer"

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func table(name string) string {
	return schemaName + "." + name
}

// buildUpdateClause creates the SET clause for ON CONFLICT DO UPDATE
// e.g., "name = EXCLUDED.name, label = EXCLUDED.label"
func buildUpdateClause(fields []string) string {
	var clause string
	for i, field := range fields {
		if i > 0 {
			clause += ", "
		}
		clause += fmt.Sprintf("%s = EXCLUDED.%s", field, field)
	}
	return clause
}
