package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/config"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/state"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage"
)

// cli runs command lines against one SQLite file, like separate invocations would.
type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, db: filepath.Join(t.TempDir(), "lists.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	err := run(append([]string{"--db", c.db}, args...), strings.NewReader(""), &out, &errOut)
	return out.String() + errOut.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func TestListsOnEmptyDatabase(t *testing.T) {
	out := newCLI(t).mustRun("lists")
	assert.Contains(t, out, "Shopping lists (0 lists)")
	assert.Contains(t, out, "Nothing here yet")
}

func TestCreateAddAndRemove(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("create", "Weekly", "groceries")
	assert.Contains(t, out, "1. • Weekly groceries (#1)")

	out = c.mustRun("add", "1", "Milk", "--quantity", "2")
	assert.Contains(t, out, "Weekly groceries (1 product)")
	assert.Contains(t, out, "1. • Milk ×2 (#1)")

	c.mustRun("add", "1", "Eggs")
	out = c.mustRun("products", "1")
	assert.Contains(t, out, "(2 products)")
	assert.Contains(t, out, "2. • Eggs ×1 (#2)")

	out = c.mustRun("remove", "1", "--list", "1")
	assert.NotContains(t, out, "Milk")
	assert.Contains(t, out, "Eggs")
}

func TestArchiveAndUnarchive(t *testing.T) {
	c := newCLI(t)
	c.mustRun("create", "Party")

	out := c.mustRun("archive", "1")
	assert.Contains(t, out, "Archived lists (1 list)")
	assert.Contains(t, out, "▣ Party")

	assert.Contains(t, c.mustRun("lists"), "Nothing here yet")
	assert.Contains(t, c.mustRun("lists", "--archived"), "Party")

	// Archived lists can still be opened.
	assert.Contains(t, c.mustRun("products", "1"), "Party (archived)")

	out = c.mustRun("unarchive", "1")
	assert.Contains(t, out, "1. • Party (#1)")
}

func TestErrors(t *testing.T) {
	c := newCLI(t)
	c.mustRun("create", "Groceries")

	_, err := c.run("products", "9")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = c.run("products", "abc")
	assert.ErrorContains(t, err, `invalid id "abc"`)

	out, err := c.run("add", "1", "Milk", "--quantity", "0")
	assert.ErrorIs(t, err, storage.ErrInvalid)
	assert.True(t, state.IsMutationError(err))
	assert.Contains(t, out, "Adding product failed")

	_, err = c.run("remove", "5", "--list", "1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLanguageFlag(t *testing.T) {
	out := newCLI(t).mustRun("--lang", "de", "lists")
	assert.Contains(t, out, "Einkaufslisten (0 Listen)")
}

func TestMemoryFlagKeepsNothing(t *testing.T) {
	c := newCLI(t)
	c.mustRun("--memory", "create", "Scratch")
	assert.NotContains(t, c.mustRun("lists"), "Scratch")
}

func TestShell(t *testing.T) {
	input := strings.Join([]string{
		"new Groceries",
		"open 1",
		"add Oat milk 2",
		"add Bread",
		"rm 2",
		"back",
		"archive 1",
		"archived",
		"open 7",
		"dance",
		"quit",
	}, "\n")

	var out bytes.Buffer
	err := run([]string{"--memory", "shell"}, strings.NewReader(input), &out, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "1. • Groceries (#1)")
	assert.Contains(t, text, "1. • Oat milk ×2 (#1)")
	assert.Contains(t, text, "2. • Bread ×1 (#2)")
	assert.Contains(t, text, "← back")
	assert.Contains(t, text, "Archived lists (1 list)")
	assert.Contains(t, text, "There is no item 7")
	assert.Contains(t, text, "Unknown command dance")
}

func TestShellReportsFailures(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--memory", "shell"}, strings.NewReader("new\nadd Milk\n"), &out, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "✗ Creating list failed")
	assert.Contains(t, text, "Open a list first")
}

func TestNameAndQuantity(t *testing.T) {
	tests := []struct {
		args     []string
		name     string
		quantity int64
	}{
		{[]string{"Milk"}, "Milk", 1},
		{[]string{"Milk", "3"}, "Milk", 3},
		{[]string{"Oat", "milk", "2"}, "Oat milk", 2},
		{[]string{"7"}, "7", 1},
		{nil, "", 1},
	}
	for _, tt := range tests {
		name, quantity := nameAndQuantity(tt.args)
		assert.Equal(t, tt.name, name)
		assert.Equal(t, tt.quantity, quantity)
	}
}

func TestConfigWritesEffectiveSettings(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "out.toml")

	out := c.mustRun("--lang", "de", "config", path)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, c.db, cfg.DatabasePath)
	assert.Equal(t, "de", cfg.Language)
}
