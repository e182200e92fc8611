package pgdb

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolation
	}
	return false
}

func paginate(b squirrel.SelectBuilder, pg *entity.PaginationInput) squirrel.SelectBuilder {
	if pg == nil {
		return b
	}
	if pg.Limit > 0 {
		b = b.Limit(uint64(pg.Limit))
	}
	if pg.Offset > 0 {
		b = b.Offset(uint64(pg.Offset))
	}
	return b
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
