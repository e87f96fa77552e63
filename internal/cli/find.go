package cli

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/modal"
	"github.com/nikbrunner/folio/internal/picker"
)

var (
	findList bool
	findJSON bool
	findOpen bool
)

var findCmd = &cobra.Command{
	Use:   "find <query...>",
	Short: "Find items in the gallery",
	Long: `Filters the gallery by query, matching section names and descriptions
as well as item titles, notes and tags. With several hits an interactive
picker chooses one; --list prints all of them instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().BoolVarP(&findList, "list", "l", false, "print every hit instead of picking one")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "output hits as JSON")
	findCmd.Flags().BoolVarP(&findOpen, "open", "o", false, "open the chosen item's source in the browser")
	rootCmd.AddCommand(findCmd)
}

// findHit is the JSON form of one search hit.
type findHit struct {
	Section string   `json:"section"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Src     string   `json:"src,omitempty"`
	Note    string   `json:"note,omitempty"`
	Tags    []string `json:"tags"`
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	doc, _, err := loadDocument(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	vm := gallery.Project(gallery.AppState{Document: doc, Query: query}, gallery.Options{
		DefaultTitle: cfg.Title,
		Suggestions:  cfg.Suggestions,
	})
	entries := picker.Entries(vm)

	if findJSON {
		return outputFindJSON(cmd, entries)
	}

	if len(entries) == 0 {
		cmd.Println(vm.StatusMessage)
		if len(vm.Suggestions) > 0 {
			cmd.Printf("Did you mean: %s\n", strings.Join(vm.Suggestions, ", "))
		}
		return nil
	}

	if findList {
		outputFindList(cmd, entries)
		return nil
	}

	chosen := entries[0]
	if len(entries) > 1 {
		p := tea.NewProgram(picker.New(entries, query), tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		pick, ok := final.(picker.Picker)
		if !ok || pick.Cancelled() {
			return nil
		}
		if chosen, ok = pick.Selected(); !ok {
			return nil
		}
	}

	printEntry(cmd, chosen)
	if findOpen && chosen.Card.Item.Src != "" {
		openURL(chosen.Card.Item.Src)
	}
	return nil
}

func outputFindJSON(cmd *cobra.Command, entries []picker.Entry) error {
	hits := make([]findHit, len(entries))
	for i, e := range entries {
		p := e.Card.Payload()
		hits[i] = findHit{
			Section: e.Section,
			Type:    p.Type,
			Title:   p.Title,
			Src:     p.Src,
			Note:    p.Note,
			Tags:    p.Tags,
		}
	}

	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal hits: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFindList(cmd *cobra.Command, entries []picker.Entry) {
	for i, e := range entries {
		// Format: [N] Title (Badge) - Section
		cmd.Printf("[%d] %s (%s) - %s\n", i+1, e.Card.Item.Title, e.Card.Badge, e.Section)
		if e.Card.Item.Src != "" {
			cmd.Printf("    %s\n", e.Card.Item.Src)
		}
		if tags := e.Card.Payload().TagLine(); tags != "" {
			cmd.Printf("    tags: %s\n", tags)
		}
	}
}

// printEntry prints the modal content of the chosen entry.
func printEntry(cmd *cobra.Command, e picker.Entry) {
	v := modal.Present(e.Card.Payload())

	cmd.Printf("%s (%s) - %s\n", v.Title, e.Card.Badge, e.Section)
	switch {
	case v.Media.Message != "":
		cmd.Println(v.Media.Message)
	case v.Media.Src != "":
		cmd.Println(v.Media.Src)
	}
	for _, line := range v.Lines() {
		cmd.Println(line)
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "linux":
		c = exec.Command("xdg-open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if c != nil {
		_ = c.Start()
	}
}
