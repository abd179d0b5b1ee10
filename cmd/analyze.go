package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/YagYk/FairDeal/internal/model"
)

var analyzeFlags struct {
	role        string
	experience  float64
	companyType string
	location    string
	industry    string
	output      string
	noLLM       bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <contract file>",
	Short: "Analyze an employment contract for fairness",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "cmd: read contract %s", args[0])
		}

		p, cleanup, err := buildPipeline(cmd.Context(), !analyzeFlags.noLLM)
		if err != nil {
			return err
		}
		defer cleanup()

		doc := model.NewDocument(filepath.Base(args[0]), string(raw))
		result, err := p.Analyze(cmd.Context(), doc, model.Context{
			Role:            analyzeFlags.role,
			ExperienceYears: analyzeFlags.experience,
			CompanyType:     analyzeFlags.companyType,
			Location:        analyzeFlags.location,
			Industry:        analyzeFlags.industry,
		})
		if err != nil {
			return err
		}

		if analyzeFlags.output == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(result), "cmd: encode result")
		}
		printAnalysis(result)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlags.role, "role", "", "role to benchmark against (overrides extraction)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.experience, "experience", 0, "years of experience")
	analyzeCmd.Flags().StringVar(&analyzeFlags.companyType, "company-type", "", "company type: service, product, or startup")
	analyzeCmd.Flags().StringVar(&analyzeFlags.location, "location", "", "offer location")
	analyzeCmd.Flags().StringVar(&analyzeFlags.industry, "industry", "", "industry segment")
	analyzeCmd.Flags().StringVar(&analyzeFlags.output, "output", "table", "output format: table or json")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.noLLM, "no-llm", false, "disable the model-backed fallback and narration")
	rootCmd.AddCommand(analyzeCmd)
}

func printAnalysis(result *model.AnalysisResult) {
	s := result.Score
	fmt.Printf("\nOverall score: %.0f / 100  [%s]  (confidence %.0f%%)\n\n", s.OverallScore, s.Grade, s.Confidence*100)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tVALUE\tMETHOD")
	printField(w, "Role", result.Extraction.Role, "%v")
	printField(w, "Company", result.Extraction.Company, "%v")
	printField(w, "Annual CTC (INR)", result.Extraction.CTCInr, "%.0f")
	printField(w, "Notice period (days)", result.Extraction.NoticePeriodDays, "%.0f")
	printField(w, "Bond amount (INR)", result.Extraction.BondAmountInr, "%.0f")
	printField(w, "Non-compete (months)", result.Extraction.NonCompeteMonths, "%.0f")
	printField(w, "Probation (months)", result.Extraction.ProbationMonths, "%.0f")
	fmt.Fprintf(w, "Benefits\t%d categories\t\n", result.Extraction.BenefitsCount)
	w.Flush()

	if b := result.Benchmark; b.Available() {
		fmt.Printf("\nMarket position: %.0fth percentile (cohort of %d, median ₹%.0f)\n",
			*b.PercentileSalary, b.CohortSize, b.MarketMedian)
		for _, step := range b.BroadenSteps {
			fmt.Printf("  cohort broadened: %s\n", step)
		}
	}

	if len(s.Badges) > 0 {
		fmt.Printf("\nBadges: %v  (multiplier %.2f)\n", s.Badges, s.Multiplier)
	}

	if len(result.RedFlags) > 0 {
		fmt.Println("\nRed flags:")
		for _, f := range result.RedFlags {
			fmt.Printf("  [%s] %s\n", f.Severity, f.Explanation)
		}
	}
	if len(result.FavorableTerms) > 0 {
		fmt.Println("\nIn your favor:")
		for _, term := range result.FavorableTerms {
			fmt.Printf("  %s: %s\n", term.Term, term.Explanation)
		}
	}

	if len(result.Negotiation) > 0 {
		fmt.Println("\nNegotiation playbook:")
		for _, pt := range result.Negotiation {
			fmt.Printf("  %d. %s -> %s (%s odds)\n", pt.Priority, pt.Topic, pt.TargetTerm, pt.SuccessProbability)
		}
	}

	for _, warning := range result.Warnings {
		fmt.Printf("\nnote: %s\n", warning)
	}
	if result.Narration != "" {
		fmt.Printf("\n%s\n", result.Narration)
	}
}

func printField(w *tabwriter.Writer, label string, f *model.ExtractedField, format string) {
	if !f.Present() {
		fmt.Fprintf(w, "%s\tnot found\t\n", label)
		return
	}
	value := fmt.Sprintf("%v", f.Value)
	if format == "%.0f" {
		if v, ok := f.Float(); ok {
			value = fmt.Sprintf("%.0f", v)
		}
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", label, value, f.Method)
}
