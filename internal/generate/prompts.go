package generate

import (
	"fmt"
	"strings"

	"github.com/alnah/go-reportdoc/internal/render"
)

// Prompt is a system instruction plus the user turn sent to a model.
type Prompt struct {
	System string
	User   string
}

// reportSection is one mandatory section of the consulting report. Titles
// stay in English in both languages so headings and TOC anchors are stable.
type reportSection struct {
	title string
	en    string
	ar    string
}

var reportSections = []reportSection{
	{
		"Executive Summary",
		"A concise summary outlining: the company's current situation, key challenges, most important recommendations, and a diagnostic summary.",
		"ملخص تنفيذي موجز يوضح: وضع المنشأة الحالي، أبرز التحديات، أهم التوصيات، وخلاصة التشخيص.",
	},
	{
		"Company Overview",
		"A professional overview of the company including: business activity, target audience, operational status, current structure, and financial situation (based on available info).",
		"لمحة احترافية عن المنشأة تشمل: نوع النشاط، الفئة المستهدفة، الوضع التشغيلي، الهيكل الحالي، والوضع المالي (بناءً على المعلومات المتاحة).",
	},
	{
		"Current State Assessment",
		"A detailed description of the current state based on user inputs, including: analysis of operations, workflow, management structure, internal controls, policy and procedure evaluation, and technology/systems assessment.",
		"وصف تفصيلي للحالة الراهنة استنادًا إلى مدخلات المستخدم، ويشمل: تحليل الوضع التشغيلي، سير العمليات، الهيكل الإداري، الرقابة الداخلية، تقييم السياسات والإجراءات، وتقييم التكنولوجيا والأنظمة.",
	},
	{
		"SWOT Based on User Input",
		"Use the user-provided SWOT data to create a table.",
		"استخدم بيانات SWOT التي أدخلها المستخدم لإنشاء جدول.",
	},
	{
		"Competitor Analysis",
		"Use the user-provided competitor data to create a table showing strengths, weaknesses, market share, and exploitable gaps.",
		"استخدم بيانات المنافسين المدخلة لإنشاء جدول يوضح نقاط القوة والضعف والحصة السوقية والفجوات التي يمكن استغلالها.",
	},
	{
		"GAP Analysis",
		"A comparative analysis between the current and ideal state in the following areas: Management, Operations, Technology, Human Resources, Marketing & Sales, and Quality & Control.",
		"تحليل مقارن بين الوضع الحالي والمثالي في المجالات التالية: الفجوات الإدارية، فجوات العمليات، فجوات التقنية، فجوات الموارد البشرية، فجوات التسويق والمبيعات، وفجوات الجودة والرقابة.",
	},
	{
		"Recommended Strategic Initiatives",
		"Actionable strategic initiatives such as: organizational structure development, customer experience improvement, SOP enhancement, digital transformation, reporting system implementation, and proposed KPIs.",
		"مبادرات استراتيجية قابلة للتطبيق مثل: تطوير الهيكل الإداري، تحسين تجربة العملاء، تحسين الإجراءات التشغيلية (SOPs)، التحول الرقمي، بناء نظام تقارير، ومؤشرات أداء رئيسية (KPIs) مقترحة.",
	},
	{
		"Process Reengineering (BPR)",
		"Reengineering of current processes with proposed improved workflows, including: a text-based workflow diagram, input/output definitions, and a RACI matrix for key tasks.",
		"إعادة هندسة العمليات الحالية مع اقتراح تدفقات عمل محسّنة، ويشمل: مخطط سير عمل نصي (workflow)، تحديد المدخلات والمخرجات، ومصفوفة RACI للمهام الأساسية.",
	},
	{
		"Organizational Structure",
		"A proposed organizational structure suitable for the company, outlining: key departments, a general description of each, and the distribution of authority.",
		"اقتراح هيكل تنظيمي مناسب للمنشأة، يوضح: الإدارات الأساسية، وصف عام لكل إدارة، وتوزيع الصلاحيات.",
	},
	{
		"Financial & Operational KPIs",
		"A set of measurable Key Performance Indicators (KPIs): Financial, Operational, Quality, and HR indicators.",
		"مجموعة مؤشرات أداء رئيسية (KPIs) قابلة للقياس: مؤشرات مالية، مؤشرات تشغيلية، مؤشرات جودة، ومؤشرات موارد بشرية.",
	},
	{
		"30-60-90 Day Roadmap",
		"An implementation roadmap in a table format.",
		"خارطة طريق تنفيذية على شكل جدول.",
	},
	{
		"Final Recommendations",
		"A general summary, the top 10 focused recommendations, potential implementation risks, and conditions for success.",
		"خلاصة عامة، أهم 10 توصيات مركزة، المخاطر المحتملة عند التنفيذ، وشروط النجاح.",
	},
}

// ReportSectionCount is the number of mandatory report sections.
func ReportSectionCount() int { return len(reportSections) }

// labels holds the per-language strings of the user prompts.
type labels struct {
	reportIntro    string
	dataHeading    string
	organization   string
	legalForm      string
	sector         string
	size           string
	location       string
	departments    string
	accounting     string
	operations     string
	audience       string
	chartAccounts  string
	costCenters    string
	strengths      string
	weaknesses     string
	opportunities  string
	threats        string
	competitors    string
	competitor     string
	compName       string
	compShare      string
	compStrengths  string
	compWeaknesses string
	notSpecified   string
	depth          map[DetailLevel]string
}

var promptLabels = map[string]labels{
	LangEnglish: {
		reportIntro:    "Please generate a complete consulting report based on the following business data, strictly adhering to the structure and formatting required in the system instructions.",
		dataHeading:    "**Business Data:**",
		organization:   "Organization Name",
		legalForm:      "Legal Form",
		sector:         "Sector",
		size:           "Size",
		location:       "Company Location",
		departments:    "Key Departments",
		accounting:     "Current Accounting System",
		operations:     "Operational Processes Overview",
		audience:       "Target Audience for Report",
		chartAccounts:  "Chart of Accounts (from user)",
		costCenters:    "Cost Centers (from user)",
		strengths:      "Strengths (from user)",
		weaknesses:     "Weaknesses (from user)",
		opportunities:  "Opportunities (from user)",
		threats:        "Threats (from user)",
		competitors:    "Competitor Information",
		competitor:     "Competitor",
		compName:       "Name",
		compShare:      "Market Share",
		compStrengths:  "Strengths",
		compWeaknesses: "Weaknesses",
		notSpecified:   "Not specified",
		depth: map[DetailLevel]string{
			DetailSummary: "**Required Detail Level: Summary**\n" +
				"- Goal: Provide a quick overview for C-level executives.\n" +
				"- Brevity: Keep explanations brief and focus on high-level insights.\n" +
				"- Tables: Limit to top 3-5 items.\n" +
				"- Focus: Mainly on Executive Summary and immediate recommendations.\n" +
				"- Length: Keep paragraphs short and direct.\n",
			DetailDetailed: "**Required Detail Level: Detailed**\n" +
				"- Goal: Provide a standard balanced consulting report.\n" +
				"- Balance: Explain points clearly with sufficient context and practical examples.\n" +
				"- Tables: Provide complete tables.\n" +
				"- Analysis: Go into depth on gap analysis and initiatives.\n",
			DetailComprehensive: "**Required Detail Level: Comprehensive**\n" +
				"- Goal: A complete reference for implementation.\n" +
				"- Depth: Provide exhaustive, deep-dive analysis for every section.\n" +
				"- Details: Do not omit any detail (numbers, forecasts, responsibilities).\n" +
				"- Roadmap: Must be very detailed with sub-tasks.\n" +
				"- Tables: Expanded and comprehensive.\n",
		},
	},
	LangArabic: {
		reportIntro:    "يرجى إنشاء تقرير استشاري كامل بناءً على بيانات العمل التالية، مع الالتزام الصارم بالهيكل والتنسيق المطلوبين في تعليمات النظام.",
		dataHeading:    "**بيانات العمل:**",
		organization:   "اسم المنظمة",
		legalForm:      "الشكل القانوني",
		sector:         "القطاع",
		size:           "الحجم",
		location:       "الموقع",
		departments:    "الأقسام الرئيسية",
		accounting:     "نظام المحاسبة الحالي",
		operations:     "نظرة عامة على العمليات التشغيلية",
		audience:       "الجمهور المستهدف للتقرير",
		chartAccounts:  "دليل الحسابات (من المستخدم)",
		costCenters:    "مراكز التكلفة (من المستخدم)",
		strengths:      "نقاط القوة (من المستخدم)",
		weaknesses:     "نقاط الضعف (من المستخدم)",
		opportunities:  "الفرص (من المستخدم)",
		threats:        "التهديدات (من المستخدم)",
		competitors:    "معلومات عن المنافسين",
		competitor:     "المنافس",
		compName:       "الاسم",
		compShare:      "الحصة السوقية",
		compStrengths:  "نقاط القوة",
		compWeaknesses: "نقاط الضعف",
		notSpecified:   "غير محدد",
		depth: map[DetailLevel]string{
			DetailSummary: "**مستوى التفاصيل المطلوب: ملخص (Summary)**\n" +
				"- الهدف: تقديم نظرة عامة سريعة للإدارة العليا.\n" +
				"- الإيجاز: اختصر الشرح وركز على النقاط الجوهرية فقط.\n" +
				"- الجداول: اكتفِ بأهم 3-5 عناصر في كل جدول.\n" +
				"- التركيز: الملخص التنفيذي والتوصيات العاجلة هي الأهم.\n" +
				"- الطول: اجعل الفقرات قصيرة ومباشرة.\n",
			DetailDetailed: "**مستوى التفاصيل المطلوب: مفصل (Detailed)**\n" +
				"- الهدف: تقديم تقرير استشاري قياسي.\n" +
				"- التوازن: اشرح النقاط بوضوح مع تقديم سياق كافٍ.\n" +
				"- الجداول: قدم جداول كاملة.\n" +
				"- التحليل: تعمق في تحليل الفجوات والمبادرات بشكل متوازن.\n",
			DetailComprehensive: "**مستوى التفاصيل المطلوب: شامل (Comprehensive)**\n" +
				"- الهدف: مرجع كامل للتنفيذ.\n" +
				"- العمق: قدم تحليلاً جذرياً وعميقاً جداً لكل نقطة.\n" +
				"- التفاصيل: لا تترك أي تفصيل دون ذكره (الأرقام، التوقعات، المسؤوليات).\n" +
				"- خطة التنفيذ: يجب أن تكون مفصلة جداً مع مهام فرعية.\n" +
				"- الجداول: موسعة وشاملة لكل البيانات المتاحة.\n",
		},
	},
}

const reportRulesEN = `You are a world-class strategic consultant, combining the methodologies of McKinsey, Bain, Deloitte, and Accenture.
Your task is to generate a professional, comprehensive management report based on user inputs, strictly adhering to the specified structure and formatting.

**Mandatory Rules:**
1.  **Language:** Use English.
2.  **Structure:** Adhere to the %[3]d-section structure in order. Do not omit or add any sections.
3.  **Formatting:**
    *   Use clear headings for each section (e.g., "# 1. Executive Summary").
    *   Place a horizontal rule "%[1]s" on its own line between each section.
    *   Add a "%[2]s" tag before each major section (from 2 to %[3]d).
    *   Use clear tables for the SWOT, Competitor, and Roadmap analyses. Separate table cells with " | ".
    *   Maintain a formal, specific, and consultative tone. Do not use conversational language.

**Mandatory Report Structure:**
`

const reportRulesAR = `أنت مستشار استراتيجي عالمي يجمع بين أسلوب McKinsey و Bain و Deloitte و Accenture.
مهمتك هي تقديم تقرير إداري احترافي شامل بناءً على مدخلات المستخدم، مع الالتزام الصارم بالهيكل والتنسيق المحددين.

**قواعد إلزامية:**
1.  **اللغة:** استخدم اللغة العربية.
2.  **الهيكل:** التزم بالهيكل المكون من %[3]d قسمًا بالترتيب. لا تحذف أو تضيف أي قسم.
3.  **التنسيق:**
    *   استخدم عناوين واضحة لكل قسم (مثال: "# 1. Executive Summary").
    *   ضع فاصل خط أفقي "%[1]s" في سطر مستقل بين كل قسم وآخر.
    *   أضف علامة "%[2]s" قبل كل قسم رئيسي (من 2 إلى %[3]d).
    *   استخدم جداول واضحة عند تحليل SWOT والمنافسين وخارطة الطريق. افصل خلايا الجدول بـ " | ".
    *   كن محددًا، رسميًا، واستشاريًا في أسلوبك. لا تستخدم لغة حوارية.

**هيكل التقرير الإلزامي:**
`

// ReportPrompt builds the consulting report prompt for data in lang.
func ReportPrompt(data *BusinessData, lang string) (Prompt, error) {
	lang, err := normalizeLang(lang)
	if err != nil {
		return Prompt{}, err
	}

	rules := reportRulesEN
	if lang == LangArabic {
		rules = reportRulesAR
	}

	var sys strings.Builder
	fmt.Fprintf(&sys, rules, render.RuleToken, render.PageBreakMarker, len(reportSections))
	for i, s := range reportSections {
		sys.WriteString("\n")
		if i > 0 {
			sys.WriteString(render.PageBreakMarker + "\n")
		}
		desc := s.en
		if lang == LangArabic {
			desc = s.ar
		}
		fmt.Fprintf(&sys, "# %d. %s\n%s\n", i+1, s.title, desc)
	}

	return Prompt{System: sys.String(), User: reportUserPrompt(data, promptLabels[lang])}, nil
}

func reportUserPrompt(data *BusinessData, l labels) string {
	var b strings.Builder
	b.WriteString(l.reportIntro + "\n\n" + l.dataHeading + "\n")

	field := func(label, value string) {
		fmt.Fprintf(&b, "- **%s:** %s\n", label, value)
	}
	optional := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			field(label, value)
		}
	}

	field(l.organization, data.OrganizationName)
	field(l.legalForm, data.LegalForm)
	field(l.sector, data.Sector)
	field(l.size, data.Size)
	optional(l.location, data.CompanyLocation)
	field(l.departments, data.KeyDepartments)
	field(l.accounting, data.CurrentAccountingSystem)
	field(l.operations, data.OperationalProcessesOverview)

	level := data.DetailLevel
	if _, ok := l.depth[level]; !ok {
		level = DetailComprehensive
	}
	b.WriteString("\n" + l.depth[level])

	optional(l.audience, data.TargetAudience)
	optional(l.chartAccounts, data.CustomChartOfAccounts)
	optional(l.costCenters, data.CustomCostCenters)
	optional(l.strengths, data.CustomStrengths)
	optional(l.weaknesses, data.CustomWeaknesses)
	optional(l.opportunities, data.CustomOpportunities)
	optional(l.threats, data.CustomThreats)

	if comps := data.namedCompetitors(); len(comps) > 0 {
		orNone := func(s string) string {
			if strings.TrimSpace(s) == "" {
				return l.notSpecified
			}
			return s
		}
		fmt.Fprintf(&b, "- **%s:**", l.competitors)
		for i, c := range comps {
			fmt.Fprintf(&b, "\n  - **%s %d:**", l.competitor, i+1)
			fmt.Fprintf(&b, "\n    - %s: %s", l.compName, c.Name)
			fmt.Fprintf(&b, "\n    - %s: %s", l.compShare, orNone(c.MarketShare))
			fmt.Fprintf(&b, "\n    - %s: %s", l.compStrengths, orNone(c.Strengths))
			fmt.Fprintf(&b, "\n    - %s: %s", l.compWeaknesses, orNone(c.Weaknesses))
		}
		b.WriteString("\n")
	}
	return b.String()
}

var manualSystemEN = map[ManualType]string{
	ManualFinancialPolicies: `As a financial expert and governance consultant with 20 years of experience, operating in the style of the BIG4 firms.
Your task is to prepare a **comprehensive and professional Financial Policies Manual** tailored to the company based on the provided data.

**Strict Rules:**
1.  **Mandatory Structure:** The manual must contain the following eleven sections in order, numbered:
    1.  Delegation of Authority (DoA) Policy
    2.  Expenditure Policy
    3.  Procurement Policy
    4.  Revenue and Collection Policy
    5.  Cash and Bank Management Policy
    6.  Fixed Assets Policy
    7.  Inventory Policy
    8.  Contracts and Agreements Policy
    9.  Budgeting and Financial Planning Policy
    10. Financial Reporting Policy
    11. Accounting Integration with Other Systems Policy
2.  **Format for Each Policy:** Each policy must contain the following subheadings, **using Markdown format (###)**:
    *   **### 1. Purpose**
    *   **### 2. Scope**
    *   **### 3. Definitions**
    *   **### 4. Policy** (This is the most detailed section)
    *   **### 5. Responsibilities**
    *   **### 6. Controls**
3.  **Quality:** Use professional, easy-to-understand language that is directly applicable. Provide practical examples and use tables where necessary.
4.  **Customization:** Use the company's data to tailor the policy content to reflect its size, activity, and geographical location.
`,
	ManualFinancialSOPs: `As a financial process reengineering expert (in the style of Accenture), prepare a detailed, step-by-step **Financial Procedures Manual (SOPs)** for the company based on the provided data.

**Strict Rules:**
1.  **Specialization:** Focus exclusively on **financial procedures (SOPs)**. Do not include policies or administrative procedures.
2.  **Mandatory Structure:** The manual must contain eight procedures in order, numbered.
3.  **Format for Each SOP:** Each of the eight procedures must contain the following subheadings in order, **using Markdown format (###)**:
    *   **### 1. Purpose**
    *   **### 2. Scope**
    *   **### 3. Inputs**
    *   **### 4. Sequential Steps**: You **MUST** explicitly reference the user's specific accounting system and departments in these steps to ensure customization.
    *   **### 5. Outputs**
    *   **### 6. Constraints**
    *   **### 7. Responsibilities**
    *   **### 8. Forms Used**
4.  **Quality:** The steps must be clear, logical, and practical. Use formal and direct English.
5.  **Customization:** Adapt the procedures to reflect the specific operations of the company, considering its accounting system and key departments mentioned in the data.
`,
	ManualAdminSOPs: `As a consultant in administrative process improvement (in the style of Deloitte), prepare a comprehensive and practical **Administrative Procedures Manual (SOPs)** for the company based on the provided data.

**Strict Rules:**
1.  **Specialization:** Focus exclusively on **administrative and operational procedures**. Do not include financial procedures.
2.  **Mandatory Structure:** The manual must contain eight procedures in order, numbered.
3.  **Format for Each SOP:** Each of the eight procedures must contain the following subheadings in order, **using Markdown format (###)**:
    *   **### 1. Purpose**
    *   **### 2. Scope**
    *   **### 3. Inputs**
    *   **### 4. Sequential Steps**: You **MUST** explicitly reference the relevant departments (e.g., HR, Sales) in the steps to ensure customization.
    *   **### 5. Outputs**
    *   **### 6. Constraints**
    *   **### 7. Responsibilities**
    *   **### 8. Forms Used**
4.  **Quality:** The procedures must be clear, applicable, and contribute to improving organizational efficiency. Use formal and direct English.
5.  **Customization:** Design the procedures to fit the nature of the company's business and sector (e.g., e-commerce, manufacturing, services) based on the input data.
`,
}

var manualSystemAR = map[ManualType]string{
	ManualFinancialPolicies: `أنت خبير مالي ومستشار حوكمة بخبرة 20 عامًا، وتعمل بأسلوب شركات BIG4.
مهمتك هي إعداد **دليل سياسات مالية شامل واحترافي** ومخصص للمنشأة بناءً على البيانات المقدمة.

**قواعد صارمة:**
1.  **الهيكل الإلزامي:** يجب أن يحتوي الدليل على الأقسام الإحدى عشر التالية بالترتيب، مع ترقيمها:
    1.  سياسة الصلاحيات المالية (DoA)
    2.  سياسة المصروفات
    3.  سياسة المشتريات
    4.  سياسة الإيرادات والتحصيل
    5.  سياسة إدارة النقدية والبنوك
    6.  سياسة الأصول الثابتة
    7.  سياسة المخزون
    8.  سياسة العقود والاتفاقيات
    9.  سياسة الموازنات والتخطيط المالي
    10. سياسة التقارير المالية
    11. سياسة الربط المحاسبي مع الأنظمة الأخرى
2.  **تنسيق كل سياسة:** يجب أن تحتوي كل سياسة على العناوين الفرعية التالية، **مع استخدام تنسيق Markdown (###) للعناوين الفرعية**:
    *   **### 1. الهدف**
    *   **### 2. النطاق**
    *   **### 3. التعاريف**
    *   **### 4. السياسة** (هذا هو الجزء الأكثر تفصيلاً)
    *   **### 5. المسؤوليات**
    *   **### 6. الضوابط**
3.  **الجودة:** استخدم لغة احترافية، سهلة الفهم، وقابلة للتطبيق مباشرة. قدم أمثلة عملية عند الضرورة واستخدم جداول إذا لزم الأمر.
4.  **التخصيص:** استخدم بيانات المنشأة لتخصيص محتوى السياسات ليعكس حجمها ونشاطها ومنطقتها الجغرافية.
`,
	ManualFinancialSOPs: `بصفتك خبيرًا في إعادة هندسة العمليات المالية (على غرار Accenture)، قم بإعداد **دليل إجراءات مالية (SOPs)** مفصل وخطوة بخطوة للمنشأة بناءً على البيانات المقدمة.

**قواعد صارمة:**
1.  **التخصص:** ركز حصريًا على **الإجراءات المالية (SOPs)**. لا تقم بتضمين سياسات أو إجراءات إدارية.
2.  **الهيكل الإلزامي:** يجب أن يحتوي الدليل على ثمانية إجراءات بالترتيب، مع ترقيمها.
3.  **تنسيق كل إجراء (SOP):** يجب أن يحتوي كل إجراء من الإجراءات الثمانية على العناوين الفرعية التالية بالترتيب، **مع استخدام تنسيق Markdown (###)**:
    *   **### 1. الهدف** (Purpose)
    *   **### 2. النطاق** (Scope)
    *   **### 3. المدخلات** (Inputs)
    *   **### 4. الخطوات بالتسلسل** (Sequential Steps): **يجب** ذكر اسم النظام المحاسبي للمستخدم وأسماء الأقسام في الخطوات لضمان التخصيص.
    *   **### 5. المخرجات** (Outputs)
    *   **### 6. القيود** (Constraints)
    *   **### 7. المسؤوليات** (Responsibilities)
    *   **### 8. النماذج المستخدمة** (Forms Used)
4.  **الجودة:** يجب أن تكون الخطوات واضحة، منطقية، وعملية. استخدم لغة عربية رسمية ومباشرة.
5.  **التخصيص:** قم بتكييف الإجراءات لتعكس العمليات المحددة للمنشأة، مع الأخذ في الاعتبار نظامها المحاسبي وأقسامها الرئيسية المذكورة في البيانات.
`,
	ManualAdminSOPs: `بصفتك مستشارًا في تحسين العمليات الإدارية (على غرار Deloitte)، قم بإعداد **دليل إجراءات إدارية (Administrative SOPs)** شامل وعملي للمنشأة بناءً على البيانات المقدمة.

**قواعد صارمة:**
1.  **التخصص:** ركز حصريًا على **الإجراءات الإدارية والتشغيلية**. لا تقم بتضمين إجراءات مالية.
2.  **الهيكل الإلزامي:** يجب أن يحتوي الدليل على ثمانية إجراءات بالترتيب، مع ترقيمها.
3.  **تنسيق كل إجراء (SOP):** يجب أن يحتوي كل إجراء من الإجراءات الثمانية على العناوين الفرعية التالية بالترتيب، **مع استخدام تنسيق Markdown (###)**:
    *   **### 1. الهدف** (Purpose)
    *   **### 2. النطاق** (Scope)
    *   **### 3. المدخلات** (Inputs)
    *   **### 4. الخطوات بالتسلسل** (Sequential Steps): **يجب** ذكر أسماء الأقسام المعنية (مثل الموارد البشرية، المبيعات) في الخطوات لضمان التخصيص.
    *   **### 5. المخرجات** (Outputs)
    *   **### 6. القيود** (Constraints)
    *   **### 7. المسؤوليات** (Responsibilities)
    *   **### 8. النماذج المستخدمة** (Forms Used)
4.  **الجودة:** يجب أن تكون الإجراءات واضحة، قابلة للتطبيق، وتساهم في تحسين الكفاءة التنظيمية. استخدم لغة عربية رسمية ومباشرة.
5.  **التخصيص:** صمم الإجراءات لتناسب طبيعة عمل المنشأة وقطاعها (تجارة إلكترونية، صناعية، خدماتية، إلخ) بناءً على البيانات المدخلة.
`,
}

const manualUserEN = `Prepare the requested manual based on the following company data:

- **Company Name:** %s
- **Legal Form:** %s
- **Activity:** %s
- **Geographic Area:** %s
- **Size:** %s
- **Key Departments:** %s
- **Current System:** %s
- **Process Summary:** %s
%s
Start producing the required manual immediately, strictly adhering to all rules specified in the system instructions and Markdown formatting.
`

const manualUserAR = `قم بإعداد الدليل المطلوب بناءً على بيانات المنشأة التالية:

- **اسم الشركة:** %s
- **الشكل القانوني:** %s
- **النشاط:** %s
- **المنطقة الجغرافية:** %s
- **الحجم:** %s
- **الأقسام الرئيسية:** %s
- **النظام الحالي:** %s
- **ملخص العمليات:** %s
%s
ابدأ فورًا بإنتاج الدليل المطلوب كاملاً، مع الالتزام الصارم بجميع القواعد المحددة في تعليمات النظام وتنسيقات Markdown.
`

// maxAnalysisContext caps how much of a prior report is quoted into a
// manual prompt.
const maxAnalysisContext = 12000

// ManualPrompt builds the prompt for one operations manual. analysis is the
// previously generated report; when non-empty it is quoted as context.
func ManualPrompt(data *BusinessData, kind ManualType, analysis, lang string) (Prompt, error) {
	lang, err := normalizeLang(lang)
	if err != nil {
		return Prompt{}, err
	}
	if _, err := ParseManualType(string(kind)); err != nil {
		return Prompt{}, err
	}

	system, user, contextHeading := manualSystemEN[kind], manualUserEN, "**Diagnostic report (context):**"
	if lang == LangArabic {
		system, user, contextHeading = manualSystemAR[kind], manualUserAR, "**التقرير التشخيصي (للسياق):**"
	}

	var extra string
	if a := strings.TrimSpace(analysis); a != "" {
		if len(a) > maxAnalysisContext {
			a = strings.ToValidUTF8(a[:maxAnalysisContext], "")
		}
		extra = "\n" + contextHeading + "\n" + a + "\n"
	}

	return Prompt{
		System: system,
		User: fmt.Sprintf(user,
			data.OrganizationName, data.LegalForm, data.Sector, data.CompanyLocation,
			data.Size, data.KeyDepartments, data.CurrentAccountingSystem,
			data.OperationalProcessesOverview, extra),
	}, nil
}

const benchmarkEN = `You are an expert financial data analyst. Based on the company description below, estimate 5 key financial or operational KPIs for this specific company and compare them to the industry average.

Data:
- Sector: %s
- Size: %s
- Operational Overview: %s

Requirement:
Output strictly JSON only (Array of objects). No markdown, no extra text.
Format for each object:
{
  "kpi": "KPI Name in English",
  "companyValue": estimated_number_for_company,
  "industryAverage": industry_average_number,
  "unit": "Unit (e.g., %%, $, days)",
  "explanation": "Very short reason for the estimate"
}

Estimate the company values based on the challenges/strengths implied in the operational overview (e.g., if they mention inventory issues, make Inventory Turnover worse than average).
`

const benchmarkAR = `أنت محلل بيانات مالية خبير. بناءً على وصف الشركة أدناه، قم بتقدير 5 مؤشرات أداء رئيسية (KPIs) مالية أو تشغيلية هامة لهذه الشركة ومقارنتها بمتوسط الصناعة.

البيانات:
- القطاع: %s
- الحجم: %s
- الوصف التشغيلي: %s

المطلوب:
أخرج البيانات بصيغة JSON فقط (Array of objects). لا تضف أي نص آخر.
الهيكل المطلوب لكل عنصر:
{
  "kpi": "اسم المؤشر بالعربية",
  "companyValue": رقم_تقديري_للشركة,
  "industryAverage": رقم_متوسط_الصناعة,
  "unit": "الوحدة (مثال: %%, $, يوم)",
  "explanation": "شرح قصير جداً لسبب التقدير"
}

قدر القيم بناءً على التحديات المذكورة في الوصف (مثلاً إذا كان الوصف يذكر مشاكل في المخزون، اجعل دوران المخزون أسوأ من السوق).
`

// BenchmarkPrompt builds the KPI benchmark prompt. It has no system
// instruction; the model is asked for a bare JSON array.
func BenchmarkPrompt(data *BusinessData, lang string) (Prompt, error) {
	lang, err := normalizeLang(lang)
	if err != nil {
		return Prompt{}, err
	}
	tmpl := benchmarkEN
	if lang == LangArabic {
		tmpl = benchmarkAR
	}
	return Prompt{User: fmt.Sprintf(tmpl, data.Sector, data.Size, data.OperationalProcessesOverview)}, nil
}
