package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-analyzer/internal/bootstrap"
	"resume-analyzer/internal/extract"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a single analysis from local files and print the result as JSON",
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("job", "", "path to a job description text file")
	analyzeCmd.Flags().String("resume", "", "path to the resume (PDF or TXT)")
	analyzeCmd.Flags().String("type", "", "resume media type (default: detected from the file extension)")
	_ = analyzeCmd.MarkFlagRequired("job")
	_ = analyzeCmd.MarkFlagRequired("resume")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	jobPath, _ := cmd.Flags().GetString("job")
	resumePath, _ := cmd.Flags().GetString("resume")
	mimeType, _ := cmd.Flags().GetString("type")

	job, err := os.ReadFile(jobPath)
	if err != nil {
		return fmt.Errorf("reading job description: %w", err)
	}
	resume, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}
	if mimeType == "" {
		mimeType = extract.DetectMimeType("", filepath.Base(resumePath))
	}
	if !extract.IsAllowedUploadType(mimeType) {
		return errors.New("unsupported resume type: only PDF, DOC, DOCX, and TXT files are allowed")
	}

	ctx := cmd.Context()
	a, err := bootstrap.Build(ctx, cfg, bootstrap.Options{SkipRouter: true})
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := extract.ExtractText(ctx, resume, mimeType)
	if err != nil {
		return err
	}
	result, sessionID, err := a.AnalysesService.Analyze(ctx, string(job), text)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"success":   true,
		"analysis":  result,
		"sessionId": sessionID,
	})
}
