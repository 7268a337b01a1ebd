package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRunHashesArgs(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader(""), &out, []string{"one", "two"}, "", bcrypt.MinCost))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(lines[0]), []byte("one")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(lines[1]), []byte("two")))
}

func TestRunReadsStdin(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader("тест123\r\n\n"), &out, nil, "", bcrypt.MinCost))

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("тест123")))
}

func TestRunEmitsInsert(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader(""), &out, []string{"pw"}, "o'brien", bcrypt.MinCost))

	assert.True(t, strings.HasPrefix(out.String(),
		"INSERT INTO users (username, password_hash) VALUES ('o''brien', '$2a$04$"))
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(strings.NewReader(""), &out, nil, "", bcrypt.MinCost))
	assert.Error(t, run(strings.NewReader(""), &out, []string{"a", "b"}, "alice", bcrypt.MinCost))
	assert.Error(t, run(strings.NewReader(""), &out, []string{"a"}, "", 99))
}
