package ciutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCI(t *testing.T) {
	t.Helper()
	for _, v := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI,
		EnvDatabaseURL, EnvTaskboardTestDBURL, EnvTaskboardDatabaseURL} {
		t.Setenv(v, "")
	}
}

func TestIsCI(t *testing.T) {
	clearCI(t)
	assert.False(t, IsCI())

	t.Setenv(EnvGitHubActions, "true")
	assert.True(t, IsCI())
}

func TestGetEnvWithFallbacks(t *testing.T) {
	clearCI(t)
	t.Setenv("TASKBOARD_B", "second")

	assert.Equal(t, "second", GetEnvWithFallbacks([]string{"TASKBOARD_A", "TASKBOARD_B"}, "def", nil))
	assert.Equal(t, "def", GetEnvWithFallbacks([]string{"TASKBOARD_UNSET"}, "def", nil))

	t.Setenv("TASKBOARD_A", "first")
	assert.Equal(t, "first", GetEnvWithFallbacks([]string{"TASKBOARD_A", "TASKBOARD_B"}, "def", nil))
}

func TestGetTestDatabaseURL(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		clearCI(t)
		assert.Empty(t, GetTestDatabaseURL(nil))
	})

	t.Run("local url is untouched", func(t *testing.T) {
		clearCI(t)
		t.Setenv(EnvTaskboardTestDBURL, "postgres://u:p@localhost:5432")
		assert.Equal(t, "postgres://u:p@localhost:5432", GetTestDatabaseURL(nil))
	})

	t.Run("ci fills defaults", func(t *testing.T) {
		clearCI(t)
		t.Setenv(EnvCI, "true")
		t.Setenv(EnvDatabaseURL, "postgres://u:p@localhost:5432")
		assert.Equal(t, "postgres://u:p@localhost:5432/taskboard_test?sslmode=disable", GetTestDatabaseURL(nil))
	})

	t.Run("ci keeps explicit values", func(t *testing.T) {
		clearCI(t)
		t.Setenv(EnvCI, "true")
		t.Setenv(EnvDatabaseURL, "postgres://u:p@db/board?sslmode=require")
		assert.Equal(t, "postgres://u:p@db/board?sslmode=require", GetTestDatabaseURL(nil))
	})
}

func TestStandardizeDatabaseURLIgnoresOtherSchemes(t *testing.T) {
	got, err := standardizeDatabaseURL("mysql://u:p@h/db")
	require.NoError(t, err)
	assert.Equal(t, "mysql://u:p@h/db", got)
}
