package store

import (
	"strings"
	"testing"

	"devtinder-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func TestBuildUpdateValues(t *testing.T) {
	t.Parallel()

	upd, err := parseUpdate(map[string]any{
		"age":      float64(28),
		"photoUrl": "https://example.com/jane.jpg",
		"bio":      "gopher",
		"skills":   []any{"go", "sql"},
	})
	require.NoError(t, err)

	values, err := buildUpdateValues(upd)
	require.NoError(t, err)

	assert.Equal(t, 28, values["age"])
	assert.Equal(t, "https://example.com/jane.jpg", values["photo_url"])
	assert.Equal(t, "gopher", values["bio"])
	assert.Equal(t, `["go","sql"]`, values["skills"], "skills must reach the driver as one JSON string")
}

// The skills list must collapse into a single column assignment. A raw
// []string in an Updates map expands into one placeholder per entry,
// which is invalid row-value SQL on Postgres.
func TestGormUpdate_SkillsAsSingleAssignment(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	upd, err := parseUpdate(map[string]any{"skills": []any{"go", "sql"}})
	require.NoError(t, err)
	values, err := buildUpdateValues(upd)
	require.NoError(t, err)

	tx := db.Model(&model.User{}).Where("id = ?", 1).Updates(values)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "`skills`=?")
	assert.NotContains(t, sql, "`skills`=(?,?)")
	assert.Equal(t, 1, strings.Count(sql, "skills"))
	assert.Contains(t, tx.Statement.Vars, `["go","sql"]`)
}
