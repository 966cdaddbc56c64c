package db

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jonathan/resume-formatter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Sorted(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_resumes.sql", names[0])
}

func TestMigrations_CreateTables(t *testing.T) {
	sql, err := migrationFiles.ReadFile("migrations/001_resumes.sql")
	require.NoError(t, err)

	for _, table := range []string{"resumes", "resume_documents"} {
		assert.Contains(t, string(sql), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, string(sql), "UNIQUE (resume_id, format)")
	assert.Contains(t, string(sql), "ON DELETE CASCADE")
}

func TestResume_JSONShape(t *testing.T) {
	record := types.NewResumeRecord()
	record.Name = "Ada"
	res := Resume{Name: "Ada", Record: record}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "record")
	assert.NotContains(t, m, "source", "empty source should be omitted")
	assert.Equal(t, "Ada", m["record"].(map[string]any)["name"])
}

func TestDocument_ContentNotSerialized(t *testing.T) {
	data, err := json.Marshal(Document{Format: "docx", FileName: "Ada.docx", Content: []byte("PK")})
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "PK"))
	assert.Contains(t, string(data), `"file_name":"Ada.docx"`)
}
