package domain

// seedClients is the demonstration roster shown when the remote store is unreachable
var seedClients = []Client{
	{ID: "0", Gender: GenderFemale, Name: "Steele Burch", Company: "TELEPARK", Age: 21, Picture: DefaultPicture, Registered: ParseTimestamp("2021-05-31T02:20:58 -09:00"), Currency: CurrencyUSD, SubscriptionCost: "1000.00"},
	{ID: "1", Gender: GenderMale, Name: "Muriel Leonard", Company: "CINESANCT", Age: 35, Picture: DefaultPicture, Registered: ParseTimestamp("2015-04-20T07:24:27 -09:00"), Currency: CurrencyINR, SubscriptionCost: "2000.00"},
	{ID: "2", Gender: GenderFemale, Name: "Joann Byers", Company: "SCENTRIC", Age: 37, Picture: DefaultPicture, Registered: ParseTimestamp("2019-05-19T12:47:34 -09:00"), Currency: CurrencyYen, SubscriptionCost: "20000.00"},
	{ID: "3", Gender: GenderFemale, Name: "Hinton Hensley", Company: "SONIQUE", Age: 23, Picture: DefaultPicture, Registered: ParseTimestamp("2014-04-22T07:16:12 -09:00"), Currency: CurrencyYen, SubscriptionCost: "2000.00"},
	{ID: "4", Gender: GenderMale, Name: "Louella Thomas", Company: "KOG", Age: 38, Picture: DefaultPicture, Registered: ParseTimestamp("2021-05-01T06:15:25 -09:00"), Currency: CurrencyCAD, SubscriptionCost: "500.00"},
	{ID: "5", Gender: GenderFemale, Name: "Sykes Mueller", Company: "GENEKOM", Age: 28, Picture: DefaultPicture, Registered: ParseTimestamp("2023-03-23T05:40:50 -09:00"), Currency: CurrencyUSD, SubscriptionCost: "500.00"},
	{ID: "6", Gender: GenderMale, Name: "Barron Bowen", Company: "EBIDCO", Age: 38, Picture: DefaultPicture, Registered: ParseTimestamp("2019-10-18T07:26:00 -09:00"), Currency: CurrencySGD, SubscriptionCost: "500.00"},
}

// SeedClients returns a fresh copy of the demonstration roster
func SeedClients() []Client {
	out := make([]Client, len(seedClients))
	copy(out, seedClients)
	return out
}
