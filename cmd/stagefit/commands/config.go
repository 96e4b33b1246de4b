package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/stagefit"
)

// loadConfig loads path, or the nearest stagefit.toml when path is empty.
// With no file at all it returns the defaults.
func loadConfig(path string) (stagefit.Config, string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return stagefit.Config{}, "", err
		}
		path = stagefit.FindConfig(cwd)
	}
	if path == "" {
		return stagefit.DefaultConfig(), "", nil
	}

	cfg, err := stagefit.LoadConfig(path)
	if err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

// Config implements the 'stagefit config' command
func Config(args []string) error {
	return runConfig(os.Stdout, args)
}

func runConfig(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to stagefit.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if path == "" {
		fmt.Fprintln(w, "# defaults (no stagefit.toml found)")
	} else {
		fmt.Fprintf(w, "# %s\n", path)
	}
	_, err = w.Write(data)
	return err
}
