package rules

// DefaultRules returns the built-in category table for UK personal
// banking feeds. Order matters: "boots" appears under both Shopping and
// Health, and resolves to Shopping because it is declared first.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "Groceries", Keywords: []string{"tesco", "sainsbury", "aldi", "lidl", "asda", "morrisons", "waitrose", "food", "supermarket"}},
		{Name: "Transport", Keywords: []string{"uber", "tfl", "train", "tube", "bus", "petrol", "fuel", "shell", "bp"}},
		{Name: "Salary", Keywords: []string{"salary", "payroll", "income", "wage", "payment from"}},
		{Name: "Utilities", Keywords: []string{"thames water", "british gas", "ee", "vodafone", "sky", "virgin", "council tax", "rent"}},
		{Name: "Entertainment", Keywords: []string{"netflix", "spotify", "cinema", "restaurant", "pub", "bar", "cafe"}},
		{Name: "Shopping", Keywords: []string{"amazon", "ebay", "boots", "primark", "online purchase"}},
		{Name: "Health", Keywords: []string{"boots", "pharmacy", "doctor", "hospital", "superdrug"}},
		{Name: "Travel", Keywords: []string{"ryanair", "easyjet", "booking.com", "hotel", "eurostar"}},
	}
}

// DefaultTable returns a Table over DefaultRules.
func DefaultTable() *Table {
	return NewTable(DefaultRules())
}
