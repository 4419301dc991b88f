package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/career-navigator/internal/types"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <resume.pdf>",
	Short: "Upload a PDF resume and print the extracted skills",
	Long:  "Upload a PDF resume to the matching API. The API parses it and returns a profile with the skills it extracted, ready for review.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	profile, err := uploadResume(cmd, args[0])
	if err != nil {
		return err
	}

	app.printer.PrintProfile(profile)
	fmt.Fprintf(cmd.OutOrStdout(), "Next: navigator search --profile-id %s --role <role>\n", profile.ID)
	return nil
}

// uploadResume validates and uploads a resume file, storing the profile in the session.
func uploadResume(cmd *cobra.Command, path string) (*types.Profile, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("resume must be a PDF file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume: %w", err)
	}
	defer func() { _ = f.Close() }()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	profile, err := app.client.UploadResume(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}
	app.store.SetProfile(profile)
	return profile, nil
}
