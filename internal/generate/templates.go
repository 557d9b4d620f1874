package generate

import (
	"fmt"
	"slices"
)

// Template is a starter profile that pre-fills business data.
type Template struct {
	Name        string
	Description string
	Data        BusinessData
}

var templates = map[string]Template{
	"ecommerce_startup": {
		Name:        "ecommerce_startup",
		Description: "Small remote e-commerce team running dropshipping",
		Data: BusinessData{
			Sector:                       "E-commerce & Retail",
			Size:                         "1-15 employees",
			CompanyLocation:              "Global (Remote)",
			KeyDepartments:               "Marketing, Customer Support, Operations/Logistics, Product Management",
			CurrentAccountingSystem:      "Excel Spreadsheets and Shopify Payments reporting",
			OperationalProcessesOverview: "We sell products online via a Shopify store using a dropshipping model. Marketing is mainly on social media. Order fulfillment is handled by third-party suppliers, which causes occasional delays and quality control issues.",
			DetailLevel:                  DetailDetailed,
			TargetAudience:               "Founders & Investors",
		},
	},
	"manufacturing_company": {
		Name:        "manufacturing_company",
		Description: "Mid-sized industrial manufacturer on SAP Business One",
		Data: BusinessData{
			Sector:                       "Industrial Manufacturing",
			Size:                         "150 employees",
			CompanyLocation:              "Dammam, Saudi Arabia",
			KeyDepartments:               "Production, Quality Control, Supply Chain, R&D, Sales",
			CurrentAccountingSystem:      "SAP Business One",
			OperationalProcessesOverview: "We import raw materials and run a production line in two shifts. Inventory of raw materials and finished goods is tracked in the ERP, but stock counts often differ from the system and production planning relies on manual spreadsheets.",
			DetailLevel:                  DetailComprehensive,
			TargetAudience:               "Board of Directors & Senior Management",
		},
	},
	"service_business": {
		Name:        "service_business",
		Description: "Consultancy billing clients by project milestone",
		Data: BusinessData{
			Sector:                       "Professional Services / Consultancy",
			Size:                         "40 employees",
			CompanyLocation:              "Dubai, UAE",
			KeyDepartments:               "Client Services, Business Development, Project Management, HR & Finance",
			CurrentAccountingSystem:      "QuickBooks Online",
			OperationalProcessesOverview: "Most clients come through referrals. Projects are invoiced on milestones, and tracking billable hours against budgets is manual, which delays invoicing and hides project overruns.",
			DetailLevel:                  DetailDetailed,
			TargetAudience:               "Department Heads & Project Managers",
		},
	},
}

// TemplateNames returns the built-in template names, sorted.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupTemplate returns the named template.
func LookupTemplate(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return t, nil
}

// ApplyTemplate fills the empty fields of data from the named template.
// Fields already set are kept.
func ApplyTemplate(data *BusinessData, name string) error {
	t, err := LookupTemplate(name)
	if err != nil {
		return err
	}
	src := t.Data

	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&data.OrganizationName, src.OrganizationName)
	fill(&data.LegalForm, src.LegalForm)
	fill(&data.Sector, src.Sector)
	fill(&data.Size, src.Size)
	fill(&data.CompanyLocation, src.CompanyLocation)
	fill(&data.KeyDepartments, src.KeyDepartments)
	fill(&data.CurrentAccountingSystem, src.CurrentAccountingSystem)
	fill(&data.OperationalProcessesOverview, src.OperationalProcessesOverview)
	fill(&data.TargetAudience, src.TargetAudience)
	fill(&data.CustomChartOfAccounts, src.CustomChartOfAccounts)
	fill(&data.CustomCostCenters, src.CustomCostCenters)
	fill(&data.CustomStrengths, src.CustomStrengths)
	fill(&data.CustomWeaknesses, src.CustomWeaknesses)
	fill(&data.CustomOpportunities, src.CustomOpportunities)
	fill(&data.CustomThreats, src.CustomThreats)
	if data.DetailLevel == "" {
		data.DetailLevel = src.DetailLevel
	}
	if len(data.Competitors) == 0 && len(src.Competitors) > 0 {
		data.Competitors = slices.Clone(src.Competitors)
	}
	return nil
}
