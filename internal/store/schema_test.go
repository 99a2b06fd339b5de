package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	pg, err := dialectFor("pgx")
	require.NoError(t, err)
	lite, err := dialectFor("sqlite3")
	require.NoError(t, err)

	query := "UPDATE Task SET employee_id = ? WHERE task_id = ? AND project_id = ?"

	assert.Equal(t, "UPDATE Task SET employee_id = $1 WHERE task_id = $2 AND project_id = $3", pg.rebind(query))
	assert.Equal(t, query, lite.rebind(query))
}

func TestSplitStatements(t *testing.T) {
	script := `
-- leading comment
CREATE TABLE a (id INTEGER);

CREATE INDEX idx_a ON a(id);
   ;
`
	stmts := splitStatements(script)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (id INTEGER)", stmts[0])
	assert.Equal(t, "CREATE INDEX idx_a ON a(id)", stmts[1])
}

func TestEmbeddedSchemas(t *testing.T) {
	for driver, d := range dialects {
		t.Run(driver, func(t *testing.T) {
			content, err := schemaFS.ReadFile("schema/" + d.schemaFile)
			require.NoError(t, err)

			stmts := splitStatements(string(content))
			assert.Len(t, stmts, 5)
			assert.Contains(t, stmts[0], "Project")
			assert.Contains(t, stmts[1], "Employee")
			assert.Contains(t, stmts[2], "Task")
		})
	}
}
