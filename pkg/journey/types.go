package journey

// FeatureCategory classifies a free-tier feature's role in the free-plan
// user experience.
type FeatureCategory string

// Known feature categories.
const (
	// CategoryCore marks features that deliver the product's primary value.
	CategoryCore FeatureCategory = "core"

	// CategoryEducational marks features that teach users the product.
	CategoryEducational FeatureCategory = "educational"

	// CategoryValueDemo marks features that demonstrate paid-tier value.
	CategoryValueDemo FeatureCategory = "value-demo"

	// CategoryConnection marks features that connect users to each other.
	CategoryConnection FeatureCategory = "connection"
)

// Feature is a free-tier product capability.
type Feature struct {
	Name     string          `json:"name" yaml:"name"`
	Category FeatureCategory `json:"category" yaml:"category"`
}

// Challenge is a user problem captured on the canvas.
type Challenge struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Solution addresses a Challenge, referenced by identifier. Many solutions
// may reference one challenge; consumers resolve by first match.
type Solution struct {
	ID          string `json:"id" yaml:"id"`
	ChallengeID string `json:"challengeId" yaml:"challenge_id"`
	Text        string `json:"text" yaml:"text"`
}

// PricingKind classifies how a business model gates its free tier.
// The signup-friction derivation is a three-way classification over this
// kind: payment-gated trials, usage-capped trials, and everything else.
type PricingKind string

// Known pricing kinds.
const (
	// PricingFreeTrial is a time-boxed trial requiring payment details up front.
	PricingFreeTrial PricingKind = "free-trial"

	// PricingUsageTrial is a trial capped by usage allowance.
	PricingUsageTrial PricingKind = "usage-trial"

	// PricingFreemium is a permanently free tier with paid upgrades.
	PricingFreemium PricingKind = "freemium"

	// PricingOpenCore is a free community edition with a commercial edition.
	PricingOpenCore PricingKind = "open-core"

	// PricingSandbox is a free non-production environment.
	PricingSandbox PricingKind = "sandbox"
)

// BusinessModel is a selectable pricing/distribution model.
type BusinessModel struct {
	ID      string      `json:"id" yaml:"id"`
	Name    string      `json:"name" yaml:"name"`
	Pricing PricingKind `json:"pricing" yaml:"pricing"`
}

// UserJourney is the derived five-stage journey document. A fresh value is
// produced on each synthesis; stored documents are never mutated in place.
type UserJourney struct {
	Discovery  DiscoveryStage  `json:"discovery"`
	Signup     SignupStage     `json:"signup"`
	Activation ActivationStage `json:"activation"`
	Engagement EngagementStage `json:"engagement"`
	Conversion ConversionStage `json:"conversion"`
}

// DiscoveryStage describes how users find the product.
type DiscoveryStage struct {
	Problem        string `json:"problem"`
	Trigger        string `json:"trigger"`
	InitialThought string `json:"initialThought"`
}

// SignupStage describes the entry experience.
type SignupStage struct {
	Friction    string   `json:"friction"`
	TimeToValue string   `json:"timeToValue"`
	Guidance    []string `json:"guidance"`
}

// ActivationStage describes the first success.
type ActivationStage struct {
	FirstWin      string `json:"firstWin"`
	AhaFeature    string `json:"ahaFeature"`
	TimeToSuccess string `json:"timeToSuccess"`
}

// EngagementStage describes ongoing use of the free tier.
type EngagementStage struct {
	CoreTasks     []string `json:"coreTasks"`
	Collaboration []string `json:"collaboration"`
	Limitations   string   `json:"limitations"`
}

// ConversionStage describes the upgrade path.
type ConversionStage struct {
	Triggers     []string `json:"triggers"`
	NextFeatures []string `json:"nextFeatures"`
}
