package journey

// BuiltinModels returns the built-in selectable business models.
// Every model listed here has an entry in the default limitations table.
func BuiltinModels() []BusinessModel {
	return []BusinessModel{
		{ID: "freemium", Name: "Freemium", Pricing: PricingFreemium},
		{ID: "free-trial", Name: "Free Trial", Pricing: PricingFreeTrial},
		{ID: "usage-trial", Name: "Usage-Capped Trial", Pricing: PricingUsageTrial},
		{ID: "open-core", Name: "Open Core", Pricing: PricingOpenCore},
		{ID: "sandbox", Name: "Developer Sandbox", Pricing: PricingSandbox},
	}
}

// ModelByID looks up a built-in business model by identifier.
func ModelByID(id string) (*BusinessModel, bool) {
	for _, m := range BuiltinModels() {
		if m.ID == id {
			return &m, true
		}
	}
	return nil, false
}
