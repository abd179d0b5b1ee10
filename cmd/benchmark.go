package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/YagYk/FairDeal/internal/benchmark"
)

var benchmarkFlags struct {
	role        string
	salary      float64
	notice      int
	experience  float64
	companyType string
	location    string
	industry    string
	output      string
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Place a salary and notice period against market data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchmarkFlags.role == "" {
			return eris.New("cmd: --role is required")
		}

		engine, err := loadBenchmarkEngine()
		if err != nil {
			return err
		}

		result := engine.Benchmark(benchmark.Query{
			Role:            benchmarkFlags.role,
			ExperienceYears: benchmarkFlags.experience,
			CompanyType:     benchmarkFlags.companyType,
			Location:        benchmarkFlags.location,
			Industry:        benchmarkFlags.industry,
			SalaryInr:       benchmarkFlags.salary,
			NoticeDays:      benchmarkFlags.notice,
		})

		if benchmarkFlags.output == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(result), "cmd: encode result")
		}

		fmt.Printf("Cohort: %d records\n", result.CohortSize)
		for _, step := range result.BroadenSteps {
			fmt.Printf("  broadened: %s\n", step)
		}
		if result.PercentileSalary != nil {
			fmt.Printf("Salary percentile: %.0f\n", *result.PercentileSalary)
			fmt.Printf("Market: mean ₹%.0f, median ₹%.0f, p25 ₹%.0f, p75 ₹%.0f\n",
				result.MarketMean, result.MarketMedian, result.MarketP25, result.MarketP75)
		}
		if result.PercentileNotice != nil {
			fmt.Printf("Notice percentile: %.0f\n", *result.PercentileNotice)
		}
		if result.Warning != "" {
			fmt.Printf("note: %s\n", result.Warning)
		}
		return nil
	},
}

func init() {
	benchmarkCmd.Flags().StringVar(&benchmarkFlags.role, "role", "", "role to benchmark (required)")
	benchmarkCmd.Flags().Float64Var(&benchmarkFlags.salary, "salary", 0, "annual CTC in INR")
	benchmarkCmd.Flags().IntVar(&benchmarkFlags.notice, "notice", 0, "notice period in days")
	benchmarkCmd.Flags().Float64Var(&benchmarkFlags.experience, "experience", 0, "years of experience")
	benchmarkCmd.Flags().StringVar(&benchmarkFlags.companyType, "company-type", "", "company type: service, product, or startup")
	benchmarkCmd.Flags().StringVar(&benchmarkFlags.location, "location", "", "offer location")
	benchmarkCmd.Flags().StringVar(&benchmarkFlags.industry, "industry", "", "industry segment")
	benchmarkCmd.Flags().StringVar(&benchmarkFlags.output, "output", "table", "output format: table or json")
	rootCmd.AddCommand(benchmarkCmd)
}
