package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tilery/tilery/internal/config"
	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/boardio"
)

// testCLI builds a CLI with a silent logger and default config, bypassing
// the host's config file.
func testCLI() *CLI {
	return &CLI{
		Logger: log.New(io.Discard),
		Config: config.Default(),
	}
}

// runCommand executes the root command with the given arguments.
func runCommand(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func tempBoard(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "board.tiles")
}

func TestAddCommandCreatesTiles(t *testing.T) {
	c := testCLI()
	path := tempBoard(t)

	if err := runCommand(t, c, "add", "hi", "--board", path); err != nil {
		t.Fatalf("add: %v", err)
	}

	tiles, err := boardio.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(tiles) != 2 {
		t.Fatalf("%d tiles, want 2", len(tiles))
	}
	if tiles[0].Char != 'h' || tiles[1].Char != 'i' {
		t.Errorf("chars = %c%c, want hi", tiles[0].Char, tiles[1].Char)
	}
}

func TestAddCommandAppends(t *testing.T) {
	c := testCLI()
	path := tempBoard(t)

	if err := runCommand(t, c, "add", "ab", "--board", path); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, c, "add", "c", "--board", path); err != nil {
		t.Fatal(err)
	}

	tiles, _ := boardio.Read(path)
	if len(tiles) != 3 {
		t.Fatalf("%d tiles after two adds, want 3", len(tiles))
	}
	seen := board.NewIDSet()
	for _, tile := range tiles {
		if seen.Has(tile.ID) {
			t.Fatalf("duplicate tile id %d", tile.ID)
		}
		seen.Add(tile.ID)
	}
}

func TestShuffleCommandKeepsTileSet(t *testing.T) {
	c := testCLI()
	path := tempBoard(t)

	if err := runCommand(t, c, "add", "word", "--board", path); err != nil {
		t.Fatal(err)
	}
	before, _ := boardio.Read(path)

	if err := runCommand(t, c, "shuffle", "--board", path); err != nil {
		t.Fatalf("shuffle: %v", err)
	}

	after, _ := boardio.Read(path)
	if len(after) != len(before) {
		t.Fatalf("shuffle changed tile count: %d -> %d", len(before), len(after))
	}
	for i := range after {
		if after[i].Char != before[i].Char || after[i].ID != before[i].ID {
			t.Errorf("tile %d identity changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestArrangeCommand(t *testing.T) {
	c := testCLI()
	path := tempBoard(t)

	if err := runCommand(t, c, "add", "hello", "--board", path); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, c, "arrange", "--board", path); err != nil {
		t.Fatalf("arrange: %v", err)
	}

	// Rows layout puts all tiles of a short word on one line.
	tiles, _ := boardio.Read(path)
	for _, tile := range tiles[1:] {
		if tile.Offset.Y != tiles[0].Offset.Y {
			t.Errorf("row arrange left tile %d at y=%v, want %v", tile.ID, tile.Offset.Y, tiles[0].Offset.Y)
		}
	}

	if err := runCommand(t, c, "arrange", "--circle", "--board", path); err != nil {
		t.Fatalf("arrange --circle: %v", err)
	}
	circled, _ := boardio.Read(path)
	rows := map[float64]bool{}
	for _, tile := range circled {
		rows[tile.Offset.Y] = true
	}
	if len(rows) < 2 {
		t.Error("circle arrange should spread tiles across rows")
	}
}

func TestAddCommandRejectsBadPath(t *testing.T) {
	c := testCLI()
	if err := runCommand(t, c, "add", "x", "--board", "bad\x00path"); err == nil {
		t.Error("control characters in the board path should be rejected")
	}
}

func TestDefaultBoardPathHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	path, err := defaultBoardPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "tilery", "board.tiles")
	if path != want {
		t.Errorf("defaultBoardPath() = %q, want %q", path, want)
	}
}
