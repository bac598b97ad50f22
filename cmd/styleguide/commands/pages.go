package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/styleguide/internal/build"
	"git.home.luguber.info/inful/styleguide/internal/config"
	"git.home.luguber.info/inful/styleguide/internal/docblock"
)

// PagesCmd lists the pages a build would write.
type PagesCmd struct {
	JSON bool `name:"json" help:"Print the page list as JSON"`
}

type pageListing struct {
	FileName string          `json:"file_name"`
	Title    string          `json:"title,omitempty"`
	Blocks   []docblock.Meta `json:"blocks"`
}

func (p *PagesCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	session, err := build.Assemble(ctx, cfg)
	if err != nil {
		return err
	}
	return writePages(os.Stdout, session, p.JSON)
}

func writePages(w io.Writer, session *build.Session, asJSON bool) error {
	var listing []pageListing
	for _, name := range session.Pages.Names() {
		page, _ := session.Pages.Get(name)
		listing = append(listing, pageListing{FileName: name, Title: page.Title(), Blocks: page.Blocks})
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	}

	for _, l := range listing {
		if l.Title != "" {
			_, _ = fmt.Fprintf(w, "%s  %s\n", l.FileName, styleMuted.Render(l.Title))
		} else {
			_, _ = fmt.Fprintln(w, l.FileName)
		}
		for _, b := range l.Blocks {
			line := "  - " + b.Name
			if b.Parent != "" {
				line += " (parent " + b.Parent + ")"
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}
	for _, msg := range session.Report.WarningMessages() {
		_, _ = fmt.Fprintln(w, styleWarning.Render("warning: ")+msg)
	}
	return nil
}
