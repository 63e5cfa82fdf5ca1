package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"pull_secrets", "PullSecrets"},
		{"run-as", "RunAs"},
		{"runAs", "RunAs"},
		{"envs", "Envs"},
		{"StageCD", "StageCD"},
		{"target", "Target"},
		{"spec", "Spec"},
		{"a.b/c", "ABC"},
		{"", ""},
		{"__", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPascalCase(tt.input))
		})
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "type", "Type"},
		{"leading digit", "3_mode", "T3Mode"},
		{"only separators", "--", "Field"},
		{"already pascal", "Action", "Action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Identifier(tt.input))
		})
	}
}

func TestTypeAndFieldNameAgree(t *testing.T) {
	for _, s := range []string{"stage_cd", "Move", "when-cond"} {
		assert.Equal(t, TypeName(s), FieldName(s))
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"UserProfile", "user_profile"},
		{"StageCD", "stage_cd"},
		{"HTTPServer", "http_server"},
		{"step-exec", "step_exec"},
		{"Retry", "retry"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSnakeCase(tt.input))
		})
	}
}
