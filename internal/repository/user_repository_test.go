package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFacultyIncludesSchoollessRows(t *testing.T) {
	db, recorded := newDryRunDB(t)
	repo := NewUserRepository(db)
	schoolID := uuid.New()

	_, err := repo.FindFaculty(&schoolID)
	require.NoError(t, err)
	require.NotEmpty(t, recorded.sqls)

	assert.Contains(t, recorded.sqls[0], "school_id = ? OR school_id IS NULL")
	assert.Contains(t, recorded.vars[0], &schoolID)
}

func TestFindFacultyByNamesNilSchool(t *testing.T) {
	db, recorded := newDryRunDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindFacultyByNames([]string{"Ada"}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, recorded.sqls)

	assert.Contains(t, recorded.sqls[0], "school_id IS NULL")
	assert.NotContains(t, recorded.sqls[0], "school_id = ?")
}

func TestFindFacultyBySchoolNilSchool(t *testing.T) {
	db, recorded := newDryRunDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindFacultyBySchool(nil)
	require.NoError(t, err)
	require.NotEmpty(t, recorded.sqls)

	assert.Contains(t, recorded.sqls[0], "school_id IS NULL")
	assert.NotContains(t, recorded.sqls[0], "school_id = ?")
}
