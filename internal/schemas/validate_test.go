package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-formatter/internal/parsing"
	"github.com/jonathan/resume-formatter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestValidateRecordJSON_Files(t *testing.T) {
	tests := []struct {
		name      string
		jsonFile  string
		wantError bool
	}{
		{name: "valid record", jsonFile: "valid_record.json", wantError: false},
		{name: "missing required field", jsonFile: "missing_field.json", wantError: true},
		{name: "wrong type", jsonFile: "type_mismatch.json", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecordJSON(readTestdata(t, tt.jsonFile))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError, got %T: %v", err, err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateRecordJSON_FieldPaths(t *testing.T) {
	err := ValidateRecordJSON(readTestdata(t, "type_mismatch.json"))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)

	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "professionalSummary")
	assert.Contains(t, fields, "education.0.wasAwarded")
	assert.Contains(t, fields, "technicalSkills.Languages")
}

func TestValidateRecordJSON_MalformedJSON(t *testing.T) {
	err := ValidateRecordJSON([]byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateRecord_RootErrorsUseRootField(t *testing.T) {
	err := ValidateRecord([]string{"not", "an", "object"})
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateRecord_NormalizerOutputAlwaysConforms(t *testing.T) {
	inputs := []any{
		nil,
		"text",
		[]any{1.0, 2.0},
		map[string]any{},
		map[string]any{"name": "Ada", "education": "not an array"},
		map[string]any{
			"employmentHistory": map[string]any{"projects": "none", "responsibilities": "Led"},
			"technicalSkills":   map[string]any{"Languages": []any{"Go", 1.0, nil}},
			"skillCategories":   []any{map[string]any{"subCategories": map[string]any{"skills": true}}},
			"certifications":    []any{"bad", map[string]any{"name": []any{}}},
		},
	}

	for _, input := range inputs {
		record := parsing.Normalize(input)
		assert.NoError(t, ValidateRecord(record), "input: %#v", input)
	}
}

func TestValidateRecord_EmptyRecord(t *testing.T) {
	assert.NoError(t, ValidateRecord(types.NewResumeRecord()))
}

const nameSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func TestValidateAgainst(t *testing.T) {
	assert.NoError(t, ValidateAgainst([]byte(nameSchema), []byte(`{"name": "test"}`)))

	err := ValidateAgainst([]byte(nameSchema), []byte(`{"age": 30}`))
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateAgainst_BadSchema(t *testing.T) {
	err := ValidateAgainst([]byte(`{"type": 12}`), []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "education.0.wasAwarded", Message: "must be a boolean"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. education.0.wasAwarded")
}
