package config

import (
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SourceConfig points at lead files. Empty paths use the bundled sample datasets.
type SourceConfig struct {
	FundingPath string `yaml:"funding_path" mapstructure:"funding_path"`
	PersonPath  string `yaml:"person_path" mapstructure:"person_path"`
}

// ScoringConfig configures the scoring pipeline and both rubrics.
type ScoringConfig struct {
	Concurrency int                 `yaml:"concurrency" mapstructure:"concurrency"`
	CurrentYear int                 `yaml:"current_year" mapstructure:"current_year"`
	Funding     FundingRubricConfig `yaml:"funding" mapstructure:"funding"`
	Person      PersonRubricConfig  `yaml:"person" mapstructure:"person"`
}

// TierConfig awards Percent of a factor's weight once a value reaches Min.
type TierConfig struct {
	Min     int64 `yaml:"min" mapstructure:"min"`
	Percent int   `yaml:"percent" mapstructure:"percent"`
}

// LabelTierConfig awards Percent of a factor's weight for an exact label.
type LabelTierConfig struct {
	Label   string `yaml:"label" mapstructure:"label"`
	Percent int    `yaml:"percent" mapstructure:"percent"`
}

// RankConfig holds the inclusive lower bounds of the upper three rank tiers.
// Anything below Medium is Low.
type RankConfig struct {
	VeryHigh int `yaml:"very_high" mapstructure:"very_high"`
	High     int `yaml:"high" mapstructure:"high"`
	Medium   int `yaml:"medium" mapstructure:"medium"`
}

// FundingRubricConfig is the rule table for funding leads.
type FundingRubricConfig struct {
	StageWeight     int `yaml:"stage_weight" mapstructure:"stage_weight"`
	AmountWeight    int `yaml:"amount_weight" mapstructure:"amount_weight"`
	InvestorWeight  int `yaml:"investor_weight" mapstructure:"investor_weight"`
	HiringWeight    int `yaml:"hiring_weight" mapstructure:"hiring_weight"`
	TechRolesWeight int `yaml:"tech_roles_weight" mapstructure:"tech_roles_weight"`

	TargetRounds     []string          `yaml:"target_rounds" mapstructure:"target_rounds"`
	TopTierInvestors []string          `yaml:"top_tier_investors" mapstructure:"top_tier_investors"`
	AmountTiers      []TierConfig      `yaml:"amount_tiers" mapstructure:"amount_tiers"`
	HiringTiers      []LabelTierConfig `yaml:"hiring_tiers" mapstructure:"hiring_tiers"`
	TechRoleTiers    []TierConfig      `yaml:"tech_role_tiers" mapstructure:"tech_role_tiers"`

	Ranks RankConfig `yaml:"ranks" mapstructure:"ranks"`
}

// PersonRubricConfig is the rule table for person leads.
type PersonRubricConfig struct {
	RoleWeight          int `yaml:"role_weight" mapstructure:"role_weight"`
	CompanyWeight       int `yaml:"company_weight" mapstructure:"company_weight"`
	InVitroWeight       int `yaml:"in_vitro_weight" mapstructure:"in_vitro_weight"`
	NAMWeight           int `yaml:"nam_weight" mapstructure:"nam_weight"`
	LocationWeight      int `yaml:"location_weight" mapstructure:"location_weight"`
	ScientificWeight    int `yaml:"scientific_weight" mapstructure:"scientific_weight"`

	// PublicationWindowYr is how many years before CurrentYear a publication
	// still counts as recent. Unset means the default of 2; 0 keeps only
	// current-year publications.
	PublicationWindowYr *int `yaml:"publication_window_years" mapstructure:"publication_window_years"`

	// CurrentYear anchors publication recency. Zero means "not yet resolved";
	// the caller must set it before building a rubric.
	CurrentYear int `yaml:"current_year" mapstructure:"current_year"`

	RoleKeywords       []string `yaml:"role_keywords" mapstructure:"role_keywords"`
	TargetStages       []string `yaml:"target_stages" mapstructure:"target_stages"`
	InVitroTags        []string `yaml:"in_vitro_tags" mapstructure:"in_vitro_tags"`
	NAMTags            []string `yaml:"nam_tags" mapstructure:"nam_tags"`
	HubLocations       []string `yaml:"hub_locations" mapstructure:"hub_locations"`
	ScientificKeywords []string `yaml:"scientific_keywords" mapstructure:"scientific_keywords"`

	Ranks RankConfig `yaml:"ranks" mapstructure:"ranks"`
}

// ExportConfig configures CSV and XLSX export.
type ExportConfig struct {
	MaxColumnWidth int    `yaml:"max_column_width" mapstructure:"max_column_width"`
	FundingSheet   string `yaml:"funding_sheet" mapstructure:"funding_sheet"`
	PersonSheet    string `yaml:"person_sheet" mapstructure:"person_sheet"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Rubric tables are defaulted by the scorer package so that
	// a partial override in config.yaml keeps the remaining defaults.
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_limit_burst", 40)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("scoring.concurrency", 4)
	v.SetDefault("scoring.current_year", 0)
	v.SetDefault("export.max_column_width", 50)
	v.SetDefault("export.funding_sheet", "FundScout Leads")
	v.SetDefault("export.person_sheet", "Lead Agent Leads")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on.
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Scoring.Concurrency < 1 || c.Scoring.Concurrency > 64 {
		errs = append(errs, "scoring.concurrency must be between 1 and 64")
	}
	if c.Scoring.CurrentYear < 0 {
		errs = append(errs, "scoring.current_year must be >= 0")
	}
	// Both modes export workbooks.
	if msg := checkSheetName(c.Export.FundingSheet); msg != "" {
		errs = append(errs, "export.funding_sheet "+msg)
	}
	if msg := checkSheetName(c.Export.PersonSheet); msg != "" {
		errs = append(errs, "export.person_sheet "+msg)
	}

	switch mode {
	case "score":
		if c.Export.MaxColumnWidth <= 0 {
			errs = append(errs, "export.max_column_width must be > 0")
		}
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RateLimitRPS < 0 {
			errs = append(errs, "server.rate_limit_rps must be >= 0")
		}
		if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
			errs = append(errs, "server.rate_limit_burst must be >= 1 when rate limiting is enabled")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// checkSheetName applies Excel's worksheet naming rules and returns a
// description of the first violation, or "" if name is usable.
func checkSheetName(name string) string {
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return "must not be empty"
	case n > 31:
		return "must be at most 31 characters"
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return `must not contain any of : \ / ? * [ ]`
	}
	return ""
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
