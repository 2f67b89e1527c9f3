// Package model defines the lead records consumed by the scoring engine and
// the scored results it produces.
package model

// HiringTier grades a company's hiring velocity.
type HiringTier string

const (
	HiringTierA       HiringTier = "A"
	HiringTierB       HiringTier = "B"
	HiringTierC       HiringTier = "C"
	HiringTierUnknown HiringTier = "Unknown"
)

// FundingStage is the latest financing stage of a company.
type FundingStage string

const (
	StageSeed         FundingStage = "Seed"
	StageSeriesA      FundingStage = "Series A"
	StageSeriesB      FundingStage = "Series B"
	StageSeriesC      FundingStage = "Series C"
	StageIPO          FundingStage = "IPO"
	StagePublic       FundingStage = "Public"
	StageBootstrapped FundingStage = "Bootstrapped"
)

// FundingLead is a company that recently announced a funding round.
type FundingLead struct {
	ID            string     `json:"id" yaml:"id"`
	Company       string     `json:"company" yaml:"company"`
	Domain        string     `json:"domain" yaml:"domain"`
	LinkedIn      string     `json:"linkedin,omitempty" yaml:"linkedin"`
	Amount        int64      `json:"amount" yaml:"amount"`
	Round         string     `json:"round" yaml:"round"`
	LeadInvestor  string     `json:"leadInvestor" yaml:"lead_investor"`
	Investors     []string   `json:"investors" yaml:"investors"`
	Country       string     `json:"country" yaml:"country"`
	DateAnnounced string     `json:"dateAnnounced,omitempty" yaml:"date_announced"`
	HiringTier    HiringTier `json:"hiringTier" yaml:"hiring_tier"`
	TechRoles     int        `json:"techRoles" yaml:"tech_roles"`
	ATSProvider   string     `json:"atsProvider,omitempty" yaml:"ats_provider"`
	CareersURL    string     `json:"careersUrl,omitempty" yaml:"careers_url"`
	SourceURL     string     `json:"sourceUrl,omitempty" yaml:"source_url"`
}

// Company describes the employer of a person lead.
type Company struct {
	Name           string       `json:"name" yaml:"name"`
	HQLocation     string       `json:"hqLocation" yaml:"hq_location"`
	RemoteFriendly bool         `json:"isRemoteFriendly" yaml:"remote_friendly"`
	FundingStage   FundingStage `json:"fundingStage" yaml:"funding_stage"`
	Technographics []string     `json:"technographics" yaml:"technographics"`
	Industry       string       `json:"industry" yaml:"industry"`
}

// Publication is a paper authored by a person lead.
type Publication struct {
	Title    string   `json:"title" yaml:"title"`
	Year     int      `json:"year" yaml:"year"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// PersonLead is an individual prospect at a life-science company.
type PersonLead struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Title        string        `json:"title" yaml:"title"`
	Company      Company       `json:"company" yaml:"company"`
	Location     string        `json:"location" yaml:"location"`
	Email        string        `json:"email,omitempty" yaml:"email"`
	LinkedInURL  string        `json:"linkedinUrl,omitempty" yaml:"linkedin_url"`
	Publications []Publication `json:"publications" yaml:"publications"`
}
