package config

// Config represents the application configuration
type Config struct {
	Institution InstitutionConfig `toml:"institution"`
	Fields      FieldConfig       `toml:"fields"`
	Weights     WeightConfig      `toml:"weights"`
	Thresholds  ThresholdConfig   `toml:"thresholds"`
	Keywords    KeywordConfig     `toml:"keywords"`
	Regions     RegionConfig      `toml:"regions"`
	Dedup       DedupConfig       `toml:"dedup"`
	Engine      EngineConfig      `toml:"engine"`
	Output      OutputConfig      `toml:"output"`
	Logging     LoggingConfig     `toml:"logging"`
}

// InstitutionConfig names the institution whose own scholarships are scored
// as a competing demand on its funds
type InstitutionConfig struct {
	Name    string   `toml:"name"`    // Used in reason text
	Aliases []string `toml:"aliases"` // Matched on word boundaries in scholarship text
}

// FieldConfig lists, per canonical fact, the spreadsheet headers to try in order.
// The first header present with a non-blank value wins.
type FieldConfig struct {
	Age                   []string `toml:"age"`
	Degree                []string `toml:"degree"`
	Country               []string `toml:"country"`
	PersonalStatement     []string `toml:"personal_statement"`
	SelfSponsorship       []string `toml:"self_sponsorship"`
	FamilySupport         []string `toml:"family_support"`
	PrivateLoan           []string `toml:"private_loan"`
	ThirdPartyScholarship []string `toml:"third_party_scholarship"`
	OtherFunding          []string `toml:"other_funding"`

	// Identity columns used by the deduplicator
	Timestamp []string `toml:"timestamp"`
	Email     []string `toml:"email"`
	FirstName []string `toml:"first_name"`
	LastName  []string `toml:"last_name"`
	BirthDate []string `toml:"birth_date"`
}

// WeightConfig holds the signed points each rule contributes
type WeightConfig struct {
	SelfFunding                   int `toml:"self_funding"`
	FamilyFunding                 int `toml:"family_funding"`
	PrivateLoan                   int `toml:"private_loan"`
	ExternalScholarshipConfirmed  int `toml:"external_scholarship_confirmed"`
	ExternalScholarshipPlanned    int `toml:"external_scholarship_planned"`
	InstitutionScholarshipReliant int `toml:"institution_scholarship_reliant"`
	StatementNeed                 int `toml:"statement_need"`
	DegreeMature                  int `toml:"degree_mature"`        // has degree, age >= mature_age
	DegreeYoungGraduate           int `toml:"degree_young_graduate"` // has degree, graduate_age <= age < mature_age
	NoDegreeMature                int `toml:"no_degree_mature"`     // no degree, age >= mature_age
	Region                        int `toml:"region"`
	MatureAge                     int `toml:"mature_age"`
	GraduateAge                   int `toml:"graduate_age"`
}

// ThresholdConfig holds the clamp bounds and category cut-offs
type ThresholdConfig struct {
	MinScore    int `toml:"min_score"`
	MaxScore    int `toml:"max_score"`
	TopPriority int `toml:"top_priority"`
	High        int `toml:"high"`
	Medium      int `toml:"medium"`
}

// KeywordConfig contains the text heuristics word lists.
// All entries are matched against lower-cased, trimmed text.
type KeywordConfig struct {
	Negative            []string `toml:"negative"`             // Cleaned text equal to one of these is always false
	Affirmative         []string `toml:"affirmative"`          // Cleaned text equal to one of these is always true
	ScholarshipYes      []string `toml:"scholarship_yes"`      // Bare answers treated as an unconfirmed scholarship plan
	SelfFunding         []string `toml:"self_funding"`         // Substrings implying self funding
	FamilyFunding       []string `toml:"family_funding"`       // Substrings implying family funding
	PrivateLoan         []string `toml:"private_loan"`         // Substrings implying a loan
	ScholarshipDomain   []string `toml:"scholarship_domain"`   // Text without any of these is not about scholarships
	InstitutionContext  []string `toml:"institution_context"`  // "school"/"university", paired with scholarship_stem
	ScholarshipStem     []string `toml:"scholarship_stem"`     // "scholar"
	ScholarshipPlanning []string `toml:"scholarship_planning"` // Words marking a future application
	StatementNeed       []string `toml:"statement_need"`       // Personal statement phrases asking for aid
}

// RegionConfig lists the top priority regions, checked in this order
type RegionConfig struct {
	Canada    []string `toml:"canada"`
	US        []string `toml:"us"`
	Europe    []string `toml:"europe"`
	Caribbean []string `toml:"caribbean"`

	// Exclude blocks a region match when the country text contains any of
	// these, e.g. "ukraine" to keep "uk" from matching it
	Exclude []string `toml:"exclude"`
}

// DedupConfig contains deduplication settings
type DedupConfig struct {
	Enabled          bool     `toml:"enabled"`
	TimestampLayouts []string `toml:"timestamp_layouts"`
}

// EngineConfig contains batch execution settings
type EngineConfig struct {
	Workers           int `toml:"workers"`
	ParallelThreshold int `toml:"parallel_threshold"` // Batches smaller than this are scored sequentially
}

// OutputConfig contains presentation and export settings
type OutputConfig struct {
	HighPriorityMinScore int      `toml:"high_priority_min_score"`
	HighPriorityColumns  []string `toml:"high_priority_columns"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns a Config with the tuned rule set
func Default() *Config {
	return &Config{
		Institution: InstitutionConfig{
			Name:    "All Saints",
			Aliases: []string{"all saints", "asu"},
		},
		Fields: FieldConfig{
			Age:                   []string{"Age", "Age (2)", "Date of Birth", "Birth Year"},
			Degree:                []string{"Has Degree", "Degree", "Degree (2)", "Degree (3)"},
			Country:               []string{"Country of Citizenship", "Country", "Citizenship"},
			PersonalStatement:     []string{"Personal Statement", "Statement"},
			SelfSponsorship:       []string{"Self Sponsorship", "SelfSponsorship"},
			FamilySupport:         []string{"Parent/Family Support", "Family Support", "FamilySupport"},
			PrivateLoan:           []string{"Private Loan", "PrivateLoan"},
			ThirdPartyScholarship: []string{"Third Party Scholarship", "ThirdPartyScholarship"},
			OtherFunding:          []string{"Other Sources", "Other Funding Sources", "OtherSources"},
			Timestamp:             []string{"Date Created", "Timestamp", "Submitted"},
			Email:                 []string{"Email", "Email Address"},
			FirstName:             []string{"Name", "First Name", "First"},
			LastName:              []string{"Last", "Last Name"},
			BirthDate:             []string{"Date of Birth", "Birth Date", "DOB", "Age"},
		},
		Weights: WeightConfig{
			SelfFunding:                   18,
			FamilyFunding:                 28,
			PrivateLoan:                   24,
			ExternalScholarshipConfirmed:  14,
			ExternalScholarshipPlanned:    8,
			InstitutionScholarshipReliant: -15,
			StatementNeed:                 -10,
			DegreeMature:                  17,
			DegreeYoungGraduate:           12,
			NoDegreeMature:                7,
			Region:                        40,
			MatureAge:                     24,
			GraduateAge:                   21,
		},
		Thresholds: ThresholdConfig{
			MinScore:    0,
			MaxScore:    100,
			TopPriority: 70,
			High:        50,
			Medium:      35,
		},
		Keywords: KeywordConfig{
			Negative:       []string{"", "none", "no", "no source", "nothing", "n/a", "na", "nil"},
			Affirmative:    []string{"yes"},
			ScholarshipYes: []string{"yes", "y"},
			SelfFunding: []string{
				"self", "own savings", "saving", "working", "salary", "income", "job",
			},
			FamilyFunding: []string{
				"parent", "family", "uncle", "aunt", "relative", "guardian", "grand",
				"spouse", "husband", "wife", "brother", "sister", "sibling",
				"father", "mother",
			},
			PrivateLoan: []string{"loan", "bank", "credit", "lender"},
			ScholarshipDomain: []string{
				"scholar", "bursary", "grant", "sponsor", "fund",
				"nsfas", "chevening", "fulbright",
			},
			InstitutionContext:  []string{"school", "university"},
			ScholarshipStem:     []string{"scholar"},
			ScholarshipPlanning: []string{"plan", "planning", "apply", "applying", "seek", "seeking", "looking"},
			StatementNeed: []string{
				"scholarship", "financial aid", "bursary",
				"can't afford", "cannot afford",
				"need support", "help with fees", "help pay", "help me pay",
				"fund my studies", "sponsor me",
			},
		},
		Regions: RegionConfig{
			Canada: []string{"canada"},
			US:     []string{"united states", "usa", "u.s.a", "america"},
			Europe: []string{
				"united kingdom", "uk", "england", "scotland", "wales", "ireland",
				"germany", "france", "italy", "spain", "portugal", "netherlands",
				"belgium", "sweden", "norway", "denmark", "finland", "switzerland",
				"austria", "poland", "greece", "czech", "hungary", "romania", "iceland",
			},
			Caribbean: []string{
				"barbados", "jamaica", "trinidad", "tobago", "bahamas", "bermuda",
				"cayman", "grenada", "st. lucia", "st lucia", "saint lucia",
				"st. vincent", "st vincent", "saint vincent", "grenadines",
				"antigua", "barbuda", "dominica", "haiti", "cuba", "puerto rico",
				"aruba", "curacao", "curaçao", "bonaire", "sint maarten",
				"st. maarten", "st maarten", "saint martin", "st. kitts", "st kitts",
				"saint kitts", "nevis", "anguilla", "montserrat", "turks and caicos",
				"virgin islands", "bvi", "guadeloupe", "martinique",
				"saint barthelemy", "st. barts", "caribbean",
			},
			Exclude: []string{},
		},
		Dedup: DedupConfig{
			Enabled: true,
			TimestampLayouts: []string{
				"2006-01-02 15:04:05",
				"2006-01-02T15:04:05Z07:00",
				"2006-01-02T15:04:05",
				"2006-01-02 15:04",
				"1/2/2006 15:04:05",
				"1/2/2006 15:04",
				"1/2/2006 3:04:05 PM",
				"2006-01-02",
			},
		},
		Engine: EngineConfig{
			Workers:           4,
			ParallelThreshold: 500,
		},
		Output: OutputConfig{
			HighPriorityMinScore: 50,
			HighPriorityColumns: []string{
				"Name",
				"Last",
				"Cell Phone Number",
				"WhatsApp Phone Number",
				"Email",
				"Program of Interest",
				"Country of Citizenship",
				"Score",
				"Category",
				"Reasons",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
