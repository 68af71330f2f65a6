package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typer/internal/config"
	"github.com/verte-zerg/typer/internal/wordlist"
)

func TestWordlistCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "words.txt")

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"wordlist", "--out", out})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), out)

	words, err := wordlist.LoadWords(out)
	require.NoError(t, err)
	assert.Equal(t, wordlist.Default(), words)

	cmd = newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"wordlist", "--out", out})
	assert.Error(t, cmd.Execute(), "existing file must not be overwritten")

	cmd = newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"wordlist", "--out", out, "--force"})
	assert.NoError(t, cmd.Execute())
	wordlistForce = false
}

func TestLoadWords(t *testing.T) {
	words, err := loadWords("")
	require.NoError(t, err)
	assert.NotEmpty(t, words)

	_, err = loadWords(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte(" \n"), 0o644))
	_, err = loadWords(empty)
	assert.ErrorIs(t, err, wordlist.ErrEmptyWordList)
}

func TestBuildLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := buildLogger(&buf, false, logFormatJSON)
	logger.Debugf("hidden")
	logger.Infof("hello %s", "world")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello world", entry["msg"])
	assert.Equal(t, Version, entry["version"])
}

func TestNewLoggerDisabled(t *testing.T) {
	logger, closeLog, err := newLogger("", true, logFormatText)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closeLog())
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "typer.log")
	logger, closeLog, err := newLogger(path, true, logFormatText)
	require.NoError(t, err)
	logger.Infof("written")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}

func TestValidateLogFormat(t *testing.T) {
	assert.NoError(t, validateLogFormat(logFormatText))
	assert.NoError(t, validateLogFormat(logFormatJSON))
	assert.Error(t, validateLogFormat("xml"))
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("wordlist", "/from/flag"))

	fromFile := "/from/file"
	applyStringConfig(cmd, "wordlist", &practiceWordList, &fromFile)
	assert.Equal(t, "/from/flag", practiceWordList)

	seed := int64(9)
	applyInt64Config(cmd, "seed", &practiceSeed, &seed)
	assert.Equal(t, int64(9), practiceSeed)

	practiceWordList, practiceSeed = "", 0
}

func TestDefaultConfigTemplateIsValid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := config.DefaultConfigPath()
	require.NoError(t, ensureConfigFile(path))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.FileConfig{}, cfg)
}
