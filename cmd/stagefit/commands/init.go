package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agiangrant/stagefit"
)

// Init implements the 'stagefit init' command
func Init(args []string) error {
	return runInit(os.Stdout, args)
}

func runInit(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	dir := fs.String("dir", ".", "Directory to write stagefit.toml into")
	force := fs.Bool("force", false, "Overwrite an existing stagefit.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := filepath.Join(*dir, stagefit.ConfigFile)
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(*dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", *dir, err)
	}
	if err := stagefit.SaveConfig(path, stagefit.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(w, "  ✓ Created %s\n", path)
	return nil
}
