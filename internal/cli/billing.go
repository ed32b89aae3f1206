package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newBillingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Plan and billing commands",
	}

	cmd.AddCommand(newBillingUpgradeCmd())

	return cmd
}

func newBillingUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade to the Pro plan via Stripe checkout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := apiClient.CreateCheckout(ctx)
			if err != nil {
				return fmt.Errorf("failed to create checkout session: %w", err)
			}

			fmt.Println("Open this URL in your browser to complete the upgrade:")
			fmt.Println(session.URL)
			return nil
		},
	}
}
