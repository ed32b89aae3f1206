package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server and account status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}
				if health, err := apiClient.Ready(ctx); err == nil {
					summary["server"] = health.Status
				} else {
					summary["server"] = "unreachable"
				}
				if acct, err := apiClient.Me(ctx); err == nil {
					summary["account"] = acct
				}
				if records, err := apiClient.ListValidations(ctx); err == nil {
					summary["validations"] = len(records)
				}
				return printOutput(summary)
			}

			fmt.Println("Idea Validator")
			fmt.Println(strings.Repeat("=", 40))

			if health, err := apiClient.Ready(ctx); err != nil {
				fmt.Printf("  Server:       unreachable (%v)\n", err)
				return nil
			} else {
				fmt.Printf("  Server:       %s\n", health.Status)
			}

			acct, err := apiClient.Me(ctx)
			if err != nil {
				fmt.Printf("  Account:      (error: %v)\n", err)
			} else {
				fmt.Printf("  Account:      %s\n", acct.Email)
				fmt.Printf("  Plan:         %s\n", acct.Plan)
				if acct.Plan == "free" {
					fmt.Printf("  Usage:        %d of 2 this month\n", acct.ValidationsThisMonth)
				} else {
					fmt.Printf("  Usage:        %d this month\n", acct.ValidationsThisMonth)
				}
			}

			records, err := apiClient.ListValidations(ctx)
			if err != nil {
				fmt.Printf("  Validations:  (error: %v)\n", err)
			} else {
				fmt.Printf("  Validations:  %d total\n", len(records))
			}

			return nil
		},
	}
}
