package journey

import "strings"

// Canned journey fragments. These are fixed copy, not derived from input.
const (
	defaultInitialThought = "Maybe there's a tool that can fix this"
	timeToSuccess         = "< 30 minutes"
	timeToValueFast       = "< 5 minutes"
	timeToValueSlow       = "5-15 minutes"

	frictionCreditCard   = "Credit card required"
	frictionUsageLimits  = "Usage limits apply"
	frictionNoCreditCard = "No credit card required"
)

func conversionTriggers() []string {
	return []string{
		"Usage limit reached",
		"Team collaboration needed",
		"Advanced features required",
		"Scale operations",
	}
}

func conversionNextFeatures() []string {
	return []string{
		"Advanced analytics",
		"Team workspaces",
		"Priority support",
		"API access",
	}
}

// Inputs holds the form-state slices the synthesizer derives from.
type Inputs struct {
	Model       *BusinessModel
	Features    []Feature
	Challenges  []Challenge
	Solutions   []Solution
	Description string
}

// Synthesize derives a fresh UserJourney from the given inputs.
//
// When the model is unset or the feature list is empty the synthesizer has
// nothing to say: it returns (nil, nil) and the caller keeps whatever
// journey it already holds. A non-nil error is returned only for a
// limitations-table gap, in which case no journey is produced at all.
func Synthesize(in Inputs, table *LimitationsTable) (*UserJourney, error) {
	if in.Model == nil || len(in.Features) == 0 {
		return nil, nil
	}

	limitations, err := table.Lookup(in.Model.ID)
	if err != nil {
		return nil, err
	}

	var firstChallenge *Challenge
	if len(in.Challenges) > 0 {
		firstChallenge = &in.Challenges[0]
	}

	var firstSolution *Solution
	if firstChallenge != nil {
		for i := range in.Solutions {
			if in.Solutions[i].ChallengeID == firstChallenge.ID {
				firstSolution = &in.Solutions[i]
				break
			}
		}
	}

	j := &UserJourney{}

	j.Discovery.Problem = firstSentence(in.Description)
	if firstChallenge != nil {
		j.Discovery.Trigger = firstChallenge.Title
	}
	j.Discovery.InitialThought = defaultInitialThought

	j.Signup.Friction = frictionFor(in.Model.Pricing)
	if hasCategory(in.Features, CategoryCore) {
		j.Signup.TimeToValue = timeToValueFast
	} else {
		j.Signup.TimeToValue = timeToValueSlow
	}
	j.Signup.Guidance = namesByCategory(in.Features, CategoryEducational)

	if firstSolution != nil {
		j.Activation.FirstWin = firstSolution.Text
	}
	j.Activation.AhaFeature = firstNameByCategory(in.Features, CategoryValueDemo)
	j.Activation.TimeToSuccess = timeToSuccess

	j.Engagement.CoreTasks = namesByCategory(in.Features, CategoryCore)
	j.Engagement.Collaboration = namesByCategory(in.Features, CategoryConnection)
	j.Engagement.Limitations = limitations

	j.Conversion.Triggers = conversionTriggers()
	j.Conversion.NextFeatures = conversionNextFeatures()

	return j, nil
}

// frictionFor classifies the signup friction by pricing kind. Trials that
// gate on payment details and usage-capped trials get their own copy;
// everything else falls through to the no-card default.
func frictionFor(kind PricingKind) string {
	switch kind {
	case PricingFreeTrial:
		return frictionCreditCard
	case PricingUsageTrial:
		return frictionUsageLimits
	default:
		return frictionNoCreditCard
	}
}

// firstSentence returns the text before the first period, or the whole
// string when no period is present.
func firstSentence(s string) string {
	if i := strings.Index(s, "."); i >= 0 {
		return s[:i]
	}
	return s
}

func hasCategory(features []Feature, cat FeatureCategory) bool {
	for _, f := range features {
		if f.Category == cat {
			return true
		}
	}
	return false
}

func namesByCategory(features []Feature, cat FeatureCategory) []string {
	names := []string{}
	for _, f := range features {
		if f.Category == cat {
			names = append(names, f.Name)
		}
	}
	return names
}

func firstNameByCategory(features []Feature, cat FeatureCategory) string {
	for _, f := range features {
		if f.Category == cat {
			return f.Name
		}
	}
	return ""
}
