package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
)

func init() {
	var wait bool
	var waitTimeout time.Duration

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wait {
				healthy, body, err := probeHealth()
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(os.Stdout, body)
				if !healthy {
					os.Exit(1)
				}
				return nil
			}

			// Exponential backoff until the service reports healthy or
			// the wait window expires.
			policy := backoff.NewExponentialBackOff()
			policy.InitialInterval = 500 * time.Millisecond
			policy.MaxInterval = 5 * time.Second
			policy.MaxElapsedTime = waitTimeout

			body, err := backoff.RetryWithData(func() (string, error) {
				healthy, body, err := probeHealth()
				if err != nil {
					return "", err
				}
				if !healthy {
					return "", fmt.Errorf("service not healthy yet")
				}
				return body, nil
			}, policy)
			if err != nil {
				return fmt.Errorf("service did not become healthy within %s: %w", waitTimeout, err)
			}
			_, _ = fmt.Fprintln(os.Stdout, body)
			return nil
		},
	}
	healthCmd.Flags().BoolVar(&wait, "wait", false, "Retry until healthy")
	healthCmd.Flags().DurationVar(&waitTimeout, "wait-timeout", 60*time.Second, "Give up after this long with --wait")
	rootCmd.AddCommand(healthCmd)
}

// probeHealth hits /api/health once. The endpoint answers 200 or 503; the
// status field carries the same verdict for the body we print.
func probeHealth() (bool, string, error) {
	resp, err := client().R().Get("/api/health")
	if err != nil {
		return false, "", err
	}
	if resp.IsError() {
		return false, resp.String(), fmt.Errorf("http %d", resp.StatusCode())
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return false, resp.String(), err
	}
	return body.Status == "healthy", resp.String(), nil
}
