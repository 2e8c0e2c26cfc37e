package postgres

import (
	"fmt"
	"strings"

	"github.com/tasktrack/tasktrack-api/internal/store"
)

// buildTaskPredicate turns a TaskFilter into a WHERE clause and its
// positional arguments. Each present filter contributes one equality
// predicate; the predicates are joined with AND. An empty filter produces an
// empty clause so the query matches every row.
//
// The returned clause starts with " WHERE " when non-empty, so it can be
// appended directly to a base query. Argument placeholders start at $1;
// callers appending further arguments (LIMIT/OFFSET) continue numbering from
// len(args)+1.
func buildTaskPredicate(filter store.TaskFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority = $%d", len(args)))
	}

	if filter.AssignedToID != nil {
		args = append(args, *filter.AssignedToID)
		clauses = append(clauses, fmt.Sprintf("assigned_to_id = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
