package merchants

// defaultTable is the built-in merchant database, grouped by category.
// Order matters only for confidence ties, where the earlier entry wins.
var defaultTable = []Pattern{
	// Food & Dining
	{Keywords: []string{"AMAZON MKTPL", "AMAZON.COM", "AMAZON PRIME"}, CategoryName: "Shopping", Confidence: 0.9},
	{Keywords: []string{"UBER EATS", "UBEREATS", "DOORDASH", "GRUBHUB", "POSTMATES"}, CategoryName: "Food & Dining", SubcategoryName: "Restaurants", Confidence: 0.95},
	{Keywords: []string{"CHIPOTLE", "MCDONALDS", "SUBWAY", "STARBUCKS", "DUNKIN"}, CategoryName: "Food & Dining", SubcategoryName: "Fast Food", Confidence: 0.95},
	{Keywords: []string{"RESTAURANT", "CAFE", "BISTRO", "DINER", "PIZZ"}, CategoryName: "Food & Dining", SubcategoryName: "Restaurants", Confidence: 0.8},
	{Keywords: []string{"WHOLE FOODS", "TRADER JOE", "SAFEWAY", "WALMART", "TARGET", "COSTCO"}, CategoryName: "Food & Dining", SubcategoryName: "Groceries", Confidence: 0.9},
	{Keywords: []string{"GROCERY", "MARKET", "SUPERMARKET"}, CategoryName: "Food & Dining", SubcategoryName: "Groceries", Confidence: 0.8},

	// Transportation
	{Keywords: []string{"UBER", "LYFT", "RIDESHARE"}, CategoryName: "Transportation", SubcategoryName: "Uber/Lyft", Confidence: 0.95},
	{Keywords: []string{"SHELL", "CHEVRON", "EXXON", "BP ", "MOBIL", "ARCO"}, CategoryName: "Transportation", SubcategoryName: "Gas", Confidence: 0.9},
	{Keywords: []string{"PARKING", "PARK METER"}, CategoryName: "Transportation", SubcategoryName: "Parking", Confidence: 0.9},
	{Keywords: []string{"METRO", "BART", "MUNI", "TRANSIT"}, CategoryName: "Transportation", SubcategoryName: "Public Transit", Confidence: 0.85},

	// Shopping
	{Keywords: []string{"AMAZON", "AMZN"}, CategoryName: "Shopping", SubcategoryName: "Electronics", Confidence: 0.8},
	{Keywords: []string{"BEST BUY", "APPLE STORE", "MICRO CENTER"}, CategoryName: "Shopping", SubcategoryName: "Electronics", Confidence: 0.9},
	{Keywords: []string{"ZARA", "H&M", "GAP", "OLD NAVY", "NORDSTROM", "MACY"}, CategoryName: "Shopping", SubcategoryName: "Clothing", Confidence: 0.9},
	{Keywords: []string{"TARGET", "WALMART", "COSTCO"}, CategoryName: "Shopping", Confidence: 0.85},

	// Housing
	{Keywords: []string{"RENT", "REDPOINT", "PROPERTY MANAGEMENT", "HOUSING"}, CategoryName: "Housing", SubcategoryName: "Rent", Confidence: 0.9},
	{Keywords: []string{"PG&E", "ELECTRIC", "UTILITY", "WATER BILL", "GAS BILL"}, CategoryName: "Housing", SubcategoryName: "Utilities", Confidence: 0.9},
	{Keywords: []string{"INTERNET", "COMCAST", "XFINITY", "AT&T", "VERIZON FIO"}, CategoryName: "Housing", SubcategoryName: "Internet", Confidence: 0.9},

	// Healthcare
	{Keywords: []string{"PHARMACY", "CVS", "WALGREENS", "RITE AID"}, CategoryName: "Healthcare", SubcategoryName: "Pharmacy", Confidence: 0.9},
	{Keywords: []string{"DOCTOR", "MEDICAL", "CLINIC", "HOSPITAL"}, CategoryName: "Healthcare", SubcategoryName: "Doctor Visits", Confidence: 0.85},
	{Keywords: []string{"DENTAL", "DENTIST"}, CategoryName: "Healthcare", SubcategoryName: "Dental", Confidence: 0.9},

	// Entertainment
	{Keywords: []string{"NETFLIX", "SPOTIFY", "HULU", "DISNEY+", "HBO"}, CategoryName: "Entertainment", SubcategoryName: "Streaming Services", Confidence: 0.95},
	{Keywords: []string{"MOVIE", "CINEMA", "AMC THEATR", "REGAL"}, CategoryName: "Entertainment", SubcategoryName: "Movies", Confidence: 0.9},
	{Keywords: []string{"STEAM", "PLAYSTATION", "XBOX", "NINTENDO"}, CategoryName: "Entertainment", SubcategoryName: "Games", Confidence: 0.9},

	// Subscriptions
	{Keywords: []string{"GITHUB", "ADOBE", "MICROSOFT 365", "GOOGLE ONE"}, CategoryName: "Subscriptions", SubcategoryName: "Software", Confidence: 0.95},
	{Keywords: []string{"GYM", "FITNESS", "PLANET FITNESS", "24 HOUR"}, CategoryName: "Subscriptions", SubcategoryName: "Memberships", Confidence: 0.9},

	// Travel
	{Keywords: []string{"AIRLINE", "UNITED AIR", "DELTA", "AMERICAN AIR", "SOUTHWEST"}, CategoryName: "Travel", SubcategoryName: "Flights", Confidence: 0.95},
	{Keywords: []string{"HOTEL", "MARRIOTT", "HILTON", "HYATT", "AIRBNB"}, CategoryName: "Travel", SubcategoryName: "Hotels", Confidence: 0.9},

	// Fees
	{Keywords: []string{"FEE", "CHARGE", "ATM WITHDRAW"}, CategoryName: "Fees & Charges", SubcategoryName: "Bank Fees", Confidence: 0.85},
	{Keywords: []string{"LATE FEE", "OVERDRAFT"}, CategoryName: "Fees & Charges", SubcategoryName: "Late Fees", Confidence: 0.95},

	// Income
	{Keywords: []string{"SALARY", "PAYROLL", "DIRECT DEP"}, CategoryName: "Income", SubcategoryName: "Salary", Confidence: 0.9},
	{Keywords: []string{"ZELLE", "VENMO", "PAYPAL"}, CategoryName: "Income", SubcategoryName: "Family Support", Confidence: 0.7},
	{Keywords: []string{"REFUND", "REIMBURSEMENT"}, CategoryName: "Income", SubcategoryName: "Refunds", Confidence: 0.85},
	{Keywords: []string{"INTEREST EARNED", "INTEREST PAID"}, CategoryName: "Income", SubcategoryName: "Interest", Confidence: 0.95},

	// Indian market
	{Keywords: []string{"SWIGGY", "ZOMATO", "DUNZO"}, CategoryName: "Food & Dining", SubcategoryName: "Restaurants", Confidence: 0.95},
	{Keywords: []string{"OLA", "OLA CABS", "RAPIDO"}, CategoryName: "Transportation", SubcategoryName: "Uber/Lyft", Confidence: 0.95},
	{Keywords: []string{"BIGBASKET", "GROFERS", "BLINKIT"}, CategoryName: "Food & Dining", SubcategoryName: "Groceries", Confidence: 0.9},
	{Keywords: []string{"RELIANCE DIGITAL", "CROMA"}, CategoryName: "Shopping", SubcategoryName: "Electronics", Confidence: 0.9},
	{Keywords: []string{"FLIPKART", "MYNTRA", "AJIO"}, CategoryName: "Shopping", Confidence: 0.85},
	{Keywords: []string{"CANTEEN", "MESS"}, CategoryName: "Food & Dining", Confidence: 0.8},
}
