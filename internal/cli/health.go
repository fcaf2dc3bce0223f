package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amehta/credlens/internal/analyzer"
)

// healthCmd probes the analysis service.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the analysis service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadedConfig()
		client := buildClient(cfg)

		health, err := client.Health(context.Background())
		if err != nil {
			var aerr *analyzer.Error
			if errors.As(err, &aerr) {
				return fmt.Errorf("%s: %s", client.BaseURL(), aerr.Message)
			}
			return err
		}

		fmt.Printf("endpoint:       %s\n", client.BaseURL())
		fmt.Printf("status:         %s\n", health.Status)
		if health.Service != "" {
			fmt.Printf("service:        %s\n", health.Service)
		}
		fmt.Printf("api configured: %t\n", health.APIConfigured)
		if len(health.SupportedFormats) > 0 {
			fmt.Printf("formats:        %s\n", strings.Join(health.SupportedFormats, ", "))
		}
		if health.MaxFileSize != "" {
			fmt.Printf("max file size:  %s\n", health.MaxFileSize)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
