package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/styleguide/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing configuration file"`
	Dir   string `arg:"" optional:"" type:"path" help:"Directory to scaffold (defaults to the directory of --config)"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	dir := i.Dir
	if dir == "" {
		dir = filepath.Dir(root.Config)
	}
	return RunInit(dir, i.Force)
}

func RunInit(dir string, force bool) error {
	fmt.Printf("Initializing style guide in %s\n", dir)
	created, err := config.Init(dir, force)
	if err != nil {
		fmt.Println("Initialization failed")
		return err
	}
	for _, path := range created {
		fmt.Printf("  created %s\n", path)
	}
	fmt.Println("initialized successfully")
	return nil
}
