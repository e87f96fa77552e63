package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/folio/internal/culler"
	"github.com/nikbrunner/folio/internal/storage"
)

var (
	checkJSON        bool
	checkConcurrency int
)

// errUnhealthy makes `folio check` exit non-zero without repeating the report.
var errUnhealthy = errors.New("some sources are not reachable")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every item source is reachable",
	Long: `Checks the source of every image, video and YouTube item. Remote
sources get a HEAD request (GET when HEAD is refused); relative sources are
resolved against the document's URL or directory.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output results as JSON")
	checkCmd.Flags().IntVarP(&checkConcurrency, "concurrency", "c", 0, "parallel checks (default from config)")
	rootCmd.AddCommand(checkCmd)
}

// checkResult is the JSON form of one check result.
type checkResult struct {
	Section    string `json:"section"`
	Index      int    `json:"index"`
	Title      string `json:"title"`
	Src        string `json:"src"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	log, done, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer done()

	doc, src, err := loadDocument(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	opts := culler.Options{
		Concurrency: cfg.Check.Concurrency,
		Timeout:     time.Duration(cfg.Check.TimeoutSeconds) * time.Second,
	}
	if checkConcurrency > 0 {
		opts.Concurrency = checkConcurrency
	}
	switch s := src.(type) {
	case *storage.FileSource:
		opts.BaseDir = filepath.Dir(s.Path())
	case *storage.HTTPSource:
		if base, err := url.Parse(s.String()); err == nil {
			opts.BaseURL = base
		}
	}

	targets := culler.Targets(doc)
	log.Debug("checking sources", zap.Int("targets", len(targets)), zap.Int("concurrency", opts.Concurrency))

	results := culler.CheckSources(cmd.Context(), targets, opts)

	if checkJSON {
		if err := outputCheckJSON(cmd, results); err != nil {
			return err
		}
	} else {
		outputCheckReport(cmd, results)
	}

	if len(results) > culler.Summary(results)[culler.Healthy] {
		return errUnhealthy
	}
	return nil
}

func outputCheckJSON(cmd *cobra.Command, results []culler.Result) error {
	out := make([]checkResult, len(results))
	for i, r := range results {
		out[i] = checkResult{
			Section:    r.Target.Section,
			Index:      r.Target.Index,
			Title:      r.Target.Item.Title,
			Src:        r.Target.Item.Src,
			Status:     r.Status.String(),
			StatusCode: r.StatusCode,
			Error:      r.Error,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputCheckReport(cmd *cobra.Command, results []culler.Result) {
	if len(results) == 0 {
		cmd.Println("No sources to check.")
		return
	}

	for _, r := range results {
		if r.Status == culler.Healthy {
			continue
		}
		// Format: [status] Section / Title - reason
		cmd.Printf("[%s] %s / %s - %s\n", r.Status, r.Target.Section, r.Target.Item.Title, r.Error)
		cmd.Printf("    %s\n", r.Target.Item.Src)
	}

	counts := culler.Summary(results)
	cmd.Printf("%d checked: %d ok, %d dead, %d unreachable, %d invalid\n",
		len(results), counts[culler.Healthy], counts[culler.Dead], counts[culler.Unreachable], counts[culler.Invalid])
}
