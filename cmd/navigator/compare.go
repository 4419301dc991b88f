package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/career-navigator/internal/fetch"
	"github.com/jonathan/career-navigator/internal/types"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a resume against one job description",
	Long: `Score a resume against a single job description and print why it fits, why it does not,
the missing skills and suggested resume bullets.

The job description comes from a text file (--jd-file) or is fetched from a posting URL (--jd-url).
Pages that render with JavaScript need --browser, which uses a local Chrome or Chromium.`,
	RunE: runCompare,
}

var (
	compareProfileID      string
	compareResumeTextFile string
	compareJDFile         string
	compareJDURL          string
	compareBrowser        bool
)

func init() {
	addGenAIFlags(compareCmd)
	compareCmd.Flags().StringVar(&compareProfileID, "profile-id", "", "Saved profile to compare")
	compareCmd.Flags().StringVar(&compareResumeTextFile, "resume-text-file", "", "Resume text file to compare")
	compareCmd.Flags().StringVar(&compareJDFile, "jd-file", "", "Job description text file")
	compareCmd.Flags().StringVar(&compareJDURL, "jd-url", "", "Job posting URL to fetch the description from")
	compareCmd.Flags().BoolVar(&compareBrowser, "browser", false, "Render --jd-url in a headless browser when the page is thin")

	compareCmd.MarkFlagsMutuallyExclusive("jd-file", "jd-url")
	compareCmd.MarkFlagsOneRequired("jd-file", "jd-url")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	apiKey, _, err := genAICredentials(cmd)
	if err != nil {
		return err
	}
	if compareProfileID == "" && compareResumeTextFile == "" {
		return fmt.Errorf("either --profile-id or --resume-text-file must be provided")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	req := &types.CompareRequest{ProfileID: compareProfileID, APIKey: apiKey}
	if compareResumeTextFile != "" {
		req.ResumeText, err = readTextFile(compareResumeTextFile)
		if err != nil {
			return err
		}
	}

	if compareJDFile != "" {
		req.JDText, err = readTextFile(compareJDFile)
		if err != nil {
			return err
		}
	} else {
		fetchOpts := fetch.DefaultOptions()
		fetchOpts.Timeout = app.cfg.Timeout()
		page, err := fetch.JobDescription(ctx, compareJDURL, &fetch.DescriptionOptions{
			Fetch:   fetchOpts,
			Browser: compareBrowser || app.cfg.UseBrowser,
			Logger:  app.logger,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch job description: %w", err)
		}
		app.logger.Info("fetched job description",
			slog.String("url", page.URL),
			slog.String("portal", string(page.Portal)),
			slog.Bool("rendered", page.Rendered),
			slog.Int("chars", len(page.Text)))
		req.JDText = page.Text
	}

	cmp, err := app.client.Compare(ctx, req)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	app.printer.PrintComparison(cmp)
	return nil
}
