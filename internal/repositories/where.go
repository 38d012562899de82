package repositories

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

// add appends a condition; every %d in cond is replaced with the next placeholder index.
func (b *whereBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	n := len(b.args)
	placeholders := make([]any, strings.Count(cond, "%d"))
	for i := range placeholders {
		placeholders[i] = n
	}
	b.conds = append(b.conds, fmt.Sprintf(cond, placeholders...))
}

func (b *whereBuilder) sql() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeContains builds a substring pattern for LIKE ... ESCAPE '\' with the
// wildcards in q matched literally.
func likeContains(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// next returns the placeholder for an argument appended after the conditions.
func (b *whereBuilder) next(arg any) string {
	b.args = append(b.args, arg)
	return fmt.Sprintf("$%d", len(b.args))
}
