package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/reviewskim/cmd/reviewskim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"ingest", "list", "show", "reviews", "delete", "chart", "popular"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	parser, err := kong.New(&main.CLI{},
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
		kong.Vars{"db": "test.db", "base_url": "http://localhost"},
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range commands {
		assert.Contains(t, stdout.String(), cmd)
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		for _, cmd := range commands {
			assert.Contains(t, stdout.String(), cmd)
		}
		assert.Contains(t, stdout.String(), "Usage:")
		assert.Contains(t, stdout.String(), "Flags:")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		assert.ErrorContains(t, err, "no command specified")
	})

	t.Run("unknown command is an error", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "test.db")

		err := main.NewMain().Run(context.Background(), []string{"--db", db, "summarize"}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Error(t, err)
	})

	t.Run("list on empty database", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--db", db, "list"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No movies found")
	})
}

func TestMain_Run_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db := filepath.Join(dir, "from-config.db")
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("db: "+db+"\nrps: 0.5\n"), 0644))

	err := main.NewMain().Run(context.Background(), []string{"--config", config, "list"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, err)
	_, err = os.Stat(db)
	assert.NoError(t, err, "database should be created at the configured path")
}

func TestMain_Run_IngestFromArchive(t *testing.T) {
	t.Parallel()

	db := filepath.Join(t.TempDir(), "test.db")
	run := func(args ...string) (string, string, error) {
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), append([]string{"--db", db}, args...), stdout, stderr)
		return stdout.String(), stderr.String(), err
	}

	stdout, stderr, err := run("ingest", "--replay", "testdata/archive", "1300854")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, `Ingested "Iron Man 3" (tt1300854): 3 reviews, 0 skipped`)

	stdout, _, err = run("ingest", "--replay", "testdata/archive", "1300854")
	require.NoError(t, err)
	assert.Contains(t, stdout, "already stored")

	stdout, _, err = run("list", "--name", "IRON MAN 3")
	require.NoError(t, err)
	assert.Equal(t, "tt1300854  Iron Man 3 (2013)  3 reviews\n", stdout)

	stdout, _, err = run("show", "1300854")
	require.NoError(t, err)
	assert.Contains(t, stdout, "released 3 May 2013, budget $200000000, gross $408992272, 3 reviews")
	assert.Contains(t, stdout, "3 reviews stored")

	stdout, _, err = run("reviews", "1300854", "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#0 Stark raving fun\nby critic1234567 (ur1234567) from United Kingdom on 26 April 2013, score 8, useful 12/3\nBetter than the second one.")
	assert.Contains(t, stdout, "#1 The twist\nby viewer (ur7654321) from - on 3 May 2013, score -, useful -/- [spoilers]\nThe Mandarin is not who you think.")
	assert.Contains(t, stdout, "#2 Too long")

	_, stderr, err = run("delete", "1300854")
	require.Error(t, err)
	assert.Contains(t, stderr, "--force")

	stdout, _, err = run("delete", "1300854", "--force")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted")

	_, _, err = run("show", "1300854")
	assert.Error(t, err)
}

func TestMain_Run_ReplayMissingPage(t *testing.T) {
	t.Parallel()

	db := filepath.Join(t.TempDir(), "test.db")
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(),
		[]string{"--db", db, "ingest", "--replay", "testdata/archive", "1408101"}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "not archived")
}
