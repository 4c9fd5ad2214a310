package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type queryLog struct {
	sqls []string
	vars [][]any
}

// newDryRunDB opens a dialect stub that builds SQL without executing it and
// records every built query so tests can assert on the generated statements.
func newDryRunDB(t *testing.T) (*gorm.DB, *queryLog) {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	recorded := &queryLog{}
	err = db.Callback().Query().After("gorm:query").Register("record_sql", func(tx *gorm.DB) {
		recorded.sqls = append(recorded.sqls, tx.Statement.SQL.String())
		recorded.vars = append(recorded.vars, tx.Statement.Vars)
	})
	require.NoError(t, err)
	return db, recorded
}
