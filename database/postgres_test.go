package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSQLStatements(t *testing.T) {
	content := `
-- schema header comment
CREATE TABLE IF NOT EXISTS companies (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL
);

-- another comment
CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);
`
	statements := parseSQLStatements(content)

	require.Len(t, statements, 2)
	assert.Contains(t, statements[0], "CREATE TABLE IF NOT EXISTS companies")
	assert.Contains(t, statements[0], "name VARCHAR(255) NOT NULL")
	assert.NotContains(t, statements[0], "--")
	assert.Contains(t, statements[1], "CREATE INDEX")
}

func TestParseSQLStatementsTrailingWithoutSemicolon(t *testing.T) {
	statements := parseSQLStatements("SELECT 1;\nSELECT 2")
	require.Len(t, statements, 2)
	assert.Equal(t, "SELECT 1", statements[0])
	assert.Equal(t, "SELECT 2", statements[1])
}

func TestParseSQLStatementsEmpty(t *testing.T) {
	assert.Empty(t, parseSQLStatements(""))
	assert.Empty(t, parseSQLStatements("-- only comments\n\n"))
}
