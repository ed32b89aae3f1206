package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tayashahzad4-eng/Idea-validater/pkg/client"
)

func newValidateCmd() *cobra.Command {
	var req client.SubmitValidationRequest

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Submit a product idea for AI validation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.IdeaName == "" {
				req.IdeaName = promptInput("Idea name: ")
			}
			if req.IdeaDescription == "" {
				req.IdeaDescription = promptInput("Description: ")
			}
			if req.TargetAudience == "" {
				req.TargetAudience = promptInput("Target audience: ")
			}
			if req.ProductFormat == "" {
				req.ProductFormat = promptInput("Product format (SaaS, mobile app, ...): ")
			}
			if req.ExpectedPrice == "" {
				req.ExpectedPrice = promptInput("Expected price: ")
			}

			fmt.Println("Analyzing... this can take up to a minute.")

			ctx := context.Background()
			created, err := apiClient.SubmitValidation(ctx, req)
			if err != nil {
				if apiErr, ok := err.(*client.APIError); ok && apiErr.IsQuotaExceeded() {
					return fmt.Errorf("%s (run 'ideavalidator billing upgrade')", apiErr.Message)
				}
				return fmt.Errorf("validation failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(created)
			}

			fmt.Printf("Validation #%d complete.\n\n", created.ID)
			printReport(created.AIOutput)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.IdeaName, "name", "", "idea name")
	cmd.Flags().StringVar(&req.IdeaDescription, "description", "", "idea description")
	cmd.Flags().StringVar(&req.TargetAudience, "audience", "", "target audience")
	cmd.Flags().StringVar(&req.ProductFormat, "format", "", "product format")
	cmd.Flags().StringVar(&req.ExpectedPrice, "price", "", "expected price")
	cmd.Flags().StringVar(&req.TargetCountry, "country", "", "target country (default Global)")

	return cmd
}

func newValidationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validations",
		Short: "Browse past validation reports",
	}

	cmd.AddCommand(newValidationsListCmd())
	cmd.AddCommand(newValidationsGetCmd())

	return cmd
}

func newValidationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List validations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			records, err := apiClient.ListValidations(ctx)
			if err != nil {
				return fmt.Errorf("failed to list validations: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(records)
			}

			if len(records) == 0 {
				fmt.Println("No validations yet. Run 'ideavalidator validate' to submit one.")
				return nil
			}

			table := NewTable("ID", "IDEA", "VERDICT", "CREATED")
			for _, rec := range records {
				verdict := "?"
				var report struct {
					Verdict string `json:"verdict"`
				}
				if err := json.Unmarshal(rec.AIOutput, &report); err == nil && report.Verdict != "" {
					verdict = report.Verdict
				}
				table.AddRow(
					strconv.FormatInt(rec.ID, 10),
					truncate(rec.IdeaName, 40),
					verdict,
					rec.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newValidationsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one validation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid validation ID: %s", args[0])
			}

			ctx := context.Background()
			rec, err := apiClient.GetValidation(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get validation: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(rec)
			}

			fmt.Printf("Idea:      %s\n", rec.IdeaName)
			fmt.Printf("Audience:  %s\n", rec.TargetAudience)
			fmt.Printf("Format:    %s\n", rec.ProductFormat)
			fmt.Printf("Price:     %s\n", rec.ExpectedPrice)
			if rec.TargetCountry != "" {
				fmt.Printf("Country:   %s\n", rec.TargetCountry)
			}
			fmt.Printf("Created:   %s\n\n", rec.CreatedAt.Format("2006-01-02 15:04"))
			printReport(rec.AIOutput)
			return nil
		},
	}
}

// printReport renders the structured AI report for terminal reading.
func printReport(raw json.RawMessage) {
	var report struct {
		DemandScore              float64  `json:"demand_score"`
		DemandReason             string   `json:"demand_reason"`
		CompetitionIntensity     float64  `json:"competition_intensity"`
		CompetitionReason        string   `json:"competition_reason"`
		DifferentiationPotential float64  `json:"differentiation_potential"`
		MonetizationDifficulty   float64  `json:"monetization_difficulty"`
		ScalabilityScore         float64  `json:"scalability_score"`
		Verdict                  string   `json:"verdict"`
		NicheNarrowing           string   `json:"niche_narrowing"`
		UniquePositioningAngles  []string `json:"unique_positioning_angles"`
		First100CustomerStrategy string   `json:"first_100_customer_strategy"`
		SuggestedPriceRange      string   `json:"suggested_price_range"`
	}
	if err := json.Unmarshal(raw, &report); err != nil {
		fmt.Println(string(raw))
		return
	}

	fmt.Printf("Verdict: %s\n", report.Verdict)
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("  Demand:           %.0f/10  %s\n", report.DemandScore, truncate(report.DemandReason, 60))
	fmt.Printf("  Competition:      %.0f/10  %s\n", report.CompetitionIntensity, truncate(report.CompetitionReason, 60))
	fmt.Printf("  Differentiation:  %.0f/10\n", report.DifferentiationPotential)
	fmt.Printf("  Monetization:     %.0f/10\n", report.MonetizationDifficulty)
	fmt.Printf("  Scalability:      %.0f/10\n", report.ScalabilityScore)
	if report.NicheNarrowing != "" {
		fmt.Printf("\nNiche: %s\n", report.NicheNarrowing)
	}
	if len(report.UniquePositioningAngles) > 0 {
		fmt.Println("\nPositioning angles:")
		for _, angle := range report.UniquePositioningAngles {
			fmt.Printf("  - %s\n", angle)
		}
	}
	if report.First100CustomerStrategy != "" {
		fmt.Printf("\nFirst 100 customers: %s\n", report.First100CustomerStrategy)
	}
	if report.SuggestedPriceRange != "" {
		fmt.Printf("Suggested price: %s\n", report.SuggestedPriceRange)
	}
}
