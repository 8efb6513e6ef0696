package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/pcease-api/services"
	"github.com/LovationAdmin/pcease-api/utils"
)

var (
	recBudget  float64
	recUseCase string
	recBrand   string
	recCatalog string
	recJSON    bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a build for a budget against a catalog file",
	Long: `Runs the build advisor offline against the embedded catalog or --catalog.

Example:
  pcease recommend --budget 100000 --use-case gaming --brand AMD`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().Float64Var(&recBudget, "budget", 0, "Total budget in INR (required, > 0)")
	recommendCmd.Flags().StringVar(&recUseCase, "use-case", services.DefaultUseCase, "gaming, productivity, content-creation, programming, general, workstation")
	recommendCmd.Flags().StringVar(&recBrand, "brand", "", "Preferred CPU brand (AMD or Intel)")
	recommendCmd.Flags().StringVar(&recCatalog, "catalog", "", "YAML catalog file (default: embedded catalog)")
	recommendCmd.Flags().BoolVar(&recJSON, "json", false, "Print the full JSON response")
	_ = recommendCmd.MarkFlagRequired("budget")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recBudget <= 0 {
		return fmt.Errorf("--budget must be greater than 0")
	}
	grouped, err := loadCatalog(recCatalog)
	if err != nil {
		return err
	}

	rec := services.FlattenCatalog(grouped).Recommend(recBudget, recUseCase, recBrand)
	resp := rec.Response()
	out := cmd.OutOrStdout()

	if recJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprint(out, services.ExportBuildText(rec.Build))
	fmt.Fprintf(out, "Budget: ₹%s (%s)\n", utils.FormatINR(resp.Budget), resp.UseCase)
	fmt.Fprintf(out, "Status: %s, remaining ₹%s, %d/%d parts, %d downgrade steps\n",
		resp.Status, utils.FormatINR(resp.Remaining), resp.ComponentCount, resp.TotalSlots, resp.DowngradeSteps)
	for _, w := range resp.Warnings {
		fmt.Fprintf(out, "⚠️  %s\n", w)
	}
	return nil
}
