package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graphlod/internal/dashboard"
)

var dashboardOut string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render Grafana dashboards from templates",
	Long:  "dashboard renders the Grafana dashboard templates with values from the environment (PROMETHEUS_DATASOURCE_UID).",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dashboard.Render(dashboardOut); err != nil {
			return err
		}
		fmt.Printf("dashboards rendered to %s\n", dashboardOut)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOut, "out", "dashboards", "Output directory for rendered dashboards")
}
