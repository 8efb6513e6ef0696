package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

// NewPostgresStore wires every repository to one *sql.DB.
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		Components:  NewPostgresComponents(db),
		Users:       NewPostgresUsers(db),
		Threads:     NewPostgresThreads(db),
		SavedBuilds: NewPostgresSavedBuilds(db),
	}
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == pqUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pqCode(err) == pqForeignKeyViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches s literally anywhere
// in the column, the same way MatchComponent does in memory.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
