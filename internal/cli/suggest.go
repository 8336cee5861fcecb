package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"go-benefit-recommender/internal/domain"
	"go-benefit-recommender/internal/recommendation"
	"go-benefit-recommender/pkg/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// offerFile is the YAML layout accepted by --file.
type offerFile struct {
	ID           int64   `yaml:"id"`
	Title        string  `yaml:"title"`
	Description  string  `yaml:"description"`
	ContractType string  `yaml:"contract_type"`
	WorkMode     string  `yaml:"work_mode"`
	SalaryMin    float64 `yaml:"salary_min"`
	SalaryMax    float64 `yaml:"salary_max"`
}

type explainOutput struct {
	Suggestions []domain.Suggestion        `json:"suggestions"`
	Explanation recommendation.Explanation `json:"explanation"`
	Weights     string                     `json:"weights"`
}

func newSuggestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print ranked benefit suggestions for an offer as JSON",
		Example: `  benefits suggest --title "Senior Java Developer" --contract CDI --mode HYBRID --salary-min 6000 --salary-max 8000
  benefits suggest --file offer.yaml --limit 5 --explain`,
		Args: cobra.NoArgs,
		RunE: runSuggest,
	}

	cmd.Flags().String("title", "", "offer title")
	cmd.Flags().String("description", "", "offer description")
	cmd.Flags().String("contract", "", "contract type (CDI, CDD, Stage, Freelance, ...)")
	cmd.Flags().String("mode", "", "work mode (REMOTE, ON_SITE, HYBRID, ...)")
	cmd.Flags().Float64("salary-min", 0, "minimum monthly salary")
	cmd.Flags().Float64("salary-max", 0, "maximum monthly salary")
	cmd.Flags().IntP("limit", "n", recommendation.DefaultMaxSuggestions, "maximum number of suggestions")
	cmd.Flags().StringP("file", "f", "", "YAML file with the offer fields; flags override it")
	cmd.Flags().StringP("weights", "w", "", "YAML weight table (default is the built-in table)")
	cmd.Flags().Int("max-text-length", recommendation.DefaultMaxTextLength, "characters of offer text scanned for keywords")
	cmd.Flags().Bool("explain", false, "include the extracted features and fired rule groups")

	return cmd
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	logger.InitWriter(cmd.ErrOrStderr(), level)

	offer, err := offerFromFlags(cmd)
	if err != nil {
		return err
	}

	weightsFile, _ := cmd.Flags().GetString("weights")
	weights, err := recommendation.LoadWeights(weightsFile)
	if err != nil {
		return err
	}
	maxTextLen, _ := cmd.Flags().GetInt("max-text-length")
	engine, err := recommendation.NewEngine(
		recommendation.WithWeights(weights),
		recommendation.WithMaxTextLength(maxTextLen),
	)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	suggestions := engine.Suggest(offer, limit)
	logger.Log.Debug("Ranked suggestions", "count", len(suggestions), "weights", engine.Fingerprint())

	var out interface{} = suggestions
	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		out = explainOutput{
			Suggestions: suggestions,
			Explanation: engine.Explain(offer),
			Weights:     engine.Fingerprint(),
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// offerFromFlags reads --file first, then applies every flag the user set.
func offerFromFlags(cmd *cobra.Command) (*domain.Offer, error) {
	var f offerFile
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading offer file: %w", err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing offer file %s: %w", path, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		f.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		f.Description, _ = flags.GetString("description")
	}
	if flags.Changed("contract") {
		f.ContractType, _ = flags.GetString("contract")
	}
	if flags.Changed("mode") {
		f.WorkMode, _ = flags.GetString("mode")
	}
	if flags.Changed("salary-min") {
		f.SalaryMin, _ = flags.GetFloat64("salary-min")
	}
	if flags.Changed("salary-max") {
		f.SalaryMax, _ = flags.GetFloat64("salary-max")
	}

	return &domain.Offer{
		ID:           f.ID,
		Title:        f.Title,
		Description:  f.Description,
		ContractType: f.ContractType,
		WorkMode:     f.WorkMode,
		SalaryMin:    f.SalaryMin,
		SalaryMax:    f.SalaryMax,
	}, nil
}
