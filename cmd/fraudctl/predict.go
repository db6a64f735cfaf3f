package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	recordFile    string
	clientTimeout time.Duration
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Classify a record against a running server",
	Long:  "Reads a JSON object of named numeric features from --file (or stdin with -) and posts it to the server's predict endpoint.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var in io.Reader = cmd.InOrStdin()
		if recordFile != "-" {
			f, err := os.Open(recordFile)
			if err != nil {
				return fmt.Errorf("open record: %w", err)
			}
			defer f.Close()
			in = f
		}

		var record map[string]float64
		if err := json.NewDecoder(in).Decode(&record); err != nil {
			return fmt.Errorf("decode record: %w", err)
		}

		body, err := json.Marshal(record)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, endpoint("/api/predict"), bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		return send(cmd, req)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query server health",
	Long:  "Reports whether the server has its model loaded. Exits non-zero when it does not.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, endpoint("/api/health"), nil)
		if err != nil {
			return err
		}
		return send(cmd, req)
	},
}

func endpoint(path string) string {
	return strings.TrimSuffix(serverURL, "/") + path
}

// send performs req, prints the response body, and fails on non-2xx.
func send(cmd *cobra.Command, req *http.Request) error {
	client := &http.Client{Timeout: clientTimeout}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, data, "", "  ") == nil {
		data = pretty.Bytes()
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(data)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("server responded %s", resp.Status)
	}
	return nil
}

func init() {
	predictCmd.Flags().StringVarP(&recordFile, "file", "f", "-", "JSON record file, - for stdin")
	rootCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 30*time.Second, "HTTP client timeout")
	rootCmd.AddCommand(predictCmd, healthCmd)
}
