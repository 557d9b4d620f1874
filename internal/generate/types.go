package generate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-reportdoc/internal/yamlutil"
)

// Sentinel errors for generation.
var (
	ErrMissingField         = errors.New("missing required business field")
	ErrInvalidDetailLevel   = errors.New("invalid detail level")
	ErrInvalidManualType    = errors.New("invalid manual type")
	ErrInvalidLang          = errors.New("invalid generation language")
	ErrTemplateNotFound     = errors.New("business template not found")
	ErrLoadBusinessData     = errors.New("failed to load business data")
	ErrMissingAPIKey        = errors.New("no API key configured")
	ErrEmptyResponse        = errors.New("model returned an empty response")
	ErrInvalidBenchmarkJSON = errors.New("model returned invalid benchmark JSON")
	ErrGeneration           = errors.New("generation request failed")
)

// DetailLevel controls how deep a generated report goes.
type DetailLevel string

const (
	DetailSummary       DetailLevel = "summary"
	DetailDetailed      DetailLevel = "detailed"
	DetailComprehensive DetailLevel = "comprehensive"
)

// ManualType selects which operations manual to generate.
type ManualType string

const (
	ManualFinancialPolicies ManualType = "financial_policies"
	ManualFinancialSOPs     ManualType = "financial_sops"
	ManualAdminSOPs         ManualType = "admin_sops"
)

// ManualTypes lists every manual kind in display order.
func ManualTypes() []ManualType {
	return []ManualType{ManualFinancialPolicies, ManualFinancialSOPs, ManualAdminSOPs}
}

// ParseManualType validates s as a manual kind.
func ParseManualType(s string) (ManualType, error) {
	for _, m := range ManualTypes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be financial_policies, financial_sops or admin_sops)", ErrInvalidManualType, s)
}

// Supported prompt languages.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// Competitor is one entry of the competitor analysis input.
type Competitor struct {
	Name        string `yaml:"name"`
	MarketShare string `yaml:"market_share"`
	Strengths   string `yaml:"strengths"`
	Weaknesses  string `yaml:"weaknesses"`
}

// BusinessData describes the organization a report is generated for.
type BusinessData struct {
	OrganizationName             string       `yaml:"organization_name"`
	LegalForm                    string       `yaml:"legal_form"`
	Sector                       string       `yaml:"sector"`
	Size                         string       `yaml:"size"`
	CompanyLocation              string       `yaml:"company_location"`
	KeyDepartments               string       `yaml:"key_departments"`
	CurrentAccountingSystem      string       `yaml:"current_accounting_system"`
	OperationalProcessesOverview string       `yaml:"operational_processes_overview"`
	DetailLevel                  DetailLevel  `yaml:"detail_level"`
	TargetAudience               string       `yaml:"target_audience,omitempty"`
	CustomChartOfAccounts        string       `yaml:"custom_chart_of_accounts,omitempty"`
	CustomCostCenters            string       `yaml:"custom_cost_centers,omitempty"`
	CustomStrengths              string       `yaml:"custom_strengths,omitempty"`
	CustomWeaknesses             string       `yaml:"custom_weaknesses,omitempty"`
	CustomOpportunities          string       `yaml:"custom_opportunities,omitempty"`
	CustomThreats                string       `yaml:"custom_threats,omitempty"`
	Competitors                  []Competitor `yaml:"competitors,omitempty"`
}

// Validate checks that every field the prompts rely on is present and that
// the detail level, when set, is known.
func (b *BusinessData) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"organization_name", b.OrganizationName},
		{"legal_form", b.LegalForm},
		{"sector", b.Sector},
		{"size", b.Size},
		{"company_location", b.CompanyLocation},
		{"key_departments", b.KeyDepartments},
		{"current_accounting_system", b.CurrentAccountingSystem},
		{"operational_processes_overview", b.OperationalProcessesOverview},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	switch b.DetailLevel {
	case "", DetailSummary, DetailDetailed, DetailComprehensive:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be summary, detailed or comprehensive)", ErrInvalidDetailLevel, b.DetailLevel)
	}
}

// namedCompetitors drops competitors whose name is blank.
func (b *BusinessData) namedCompetitors() []Competitor {
	var out []Competitor
	for _, c := range b.Competitors {
		if strings.TrimSpace(c.Name) != "" {
			out = append(out, c)
		}
	}
	return out
}

// LoadBusinessData reads business data from a YAML file. Unknown keys are
// rejected so typos surface instead of silently producing a thinner report.
func LoadBusinessData(path string) (*BusinessData, error) {
	var data BusinessData
	if err := yamlutil.ReadFileStrict(path, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadBusinessData, err)
	}
	return &data, nil
}

// KPIBenchmark compares one company metric with its industry average.
type KPIBenchmark struct {
	KPI             string  `json:"kpi"`
	CompanyValue    float64 `json:"companyValue"`
	IndustryAverage float64 `json:"industryAverage"`
	Unit            string  `json:"unit"`
	Explanation     string  `json:"explanation"`
}

// normalizeLang maps an empty language to English and rejects the rest.
func normalizeLang(lang string) (string, error) {
	switch lang {
	case "", LangEnglish:
		return LangEnglish, nil
	case LangArabic:
		return LangArabic, nil
	default:
		return "", fmt.Errorf("%w: %q (must be en or ar)", ErrInvalidLang, lang)
	}
}
