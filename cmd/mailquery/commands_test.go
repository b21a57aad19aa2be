package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQueryJoinsArgs(t *testing.T) {
	input, err := readQuery([]string{"from:john", "hello"}, "")
	require.NoError(t, err)
	assert.Equal(t, "from:john hello", input)
}

func TestReadQueryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.txt")
	require.NoError(t, os.WriteFile(path, []byte("from:john hello\n"), 0o644))

	input, err := readQuery(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "from:john hello", input)

	// the file wins over positional arguments
	input, err = readQuery([]string{"ignored"}, path)
	require.NoError(t, err)
	assert.Equal(t, "from:john hello", input)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	_, err = readQuery(nil, empty)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestValidateCmdFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.txt")
	require.NoError(t, os.WriteFile(path, []byte(`"unclosed`), 0o644))

	cmd := &ValidateCmd{QueryFile: path}
	err := cmd.Run(&Context{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestValidateCmd(t *testing.T) {
	cmd := &ValidateCmd{Query: []string{"hello", "world"}}
	assert.NoError(t, cmd.Run(&Context{}))

	cmd = &ValidateCmd{Query: []string{"(a"}}
	err := cmd.Run(&Context{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestParseCmdHonorsConfigPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mailquery.yaml")
	require.NoError(t, os.WriteFile(path, []byte("disallowed: [body]\n"), 0o644))

	cmd := &ParseCmd{Query: []string{"body:secret"}}
	err := cmd.Run(&Context{Config: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body")

	cmd = &ParseCmd{Query: []string{"from:john"}, JSON: true}
	assert.NoError(t, cmd.Run(&Context{Config: path}))
}

func TestOperatorsCmd(t *testing.T) {
	cmd := &OperatorsCmd{Query: []string{"from:a", "-to:b"}}
	assert.NoError(t, cmd.Run(&Context{}))
}
