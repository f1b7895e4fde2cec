package main

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	apierrors "github.com/lacson1/UK-property-management/internal/errors"
	"github.com/lacson1/UK-property-management/internal/export"
)

const defaultAPI = "http://localhost:8080"

func exportCmd() *cobra.Command {
	var (
		format string
		outDir string
		api    string
	)

	cmd := &cobra.Command{
		Use:   "export <properties|transactions|maintenance|tenants>",
		Short: "Download an export from a running API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := export.ParseEntity(args[0])
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			path, size, err := downloadExport(cmd, api, entity, f, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", path, size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "output format: csv, pdf or xlsx")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to save the file in")
	cmd.Flags().StringVar(&api, "api", envOr("PROPCTL_API", defaultAPI), "base URL of the API")
	return cmd
}

func downloadExport(cmd *cobra.Command, api string, entity export.Entity, format export.Format, outDir string) (string, int, error) {
	client := resty.New().
		SetBaseURL(api).
		SetTimeout(time.Minute)

	var apiErr apierrors.ErrorResponse
	resp, err := client.R().
		SetContext(cmd.Context()).
		SetPathParam("entity", string(entity)).
		SetQueryParam("format", string(format)).
		SetError(&apiErr).
		Get("/api/v1/exports/{entity}")
	if err != nil {
		return "", 0, fmt.Errorf("failed to reach %s: %w", api, err)
	}
	if resp.StatusCode() != http.StatusOK {
		if apiErr.Error.Message != "" {
			return "", 0, fmt.Errorf("export failed (%s): %s", apiErr.Error.Code, apiErr.Error.Message)
		}
		return "", 0, fmt.Errorf("export failed: %s", resp.Status())
	}

	name := attachmentName(resp.Header().Get("Content-Disposition"))
	if name == "" {
		name = fmt.Sprintf("%s.%s", entity, format)
	}

	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, resp.Body(), 0o644); err != nil {
		return "", 0, fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, len(resp.Body()), nil
}

// attachmentName returns the bare file name of a Content-Disposition header.
func attachmentName(header string) string {
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	if params["filename"] == "" {
		return ""
	}
	return filepath.Base(params["filename"])
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
