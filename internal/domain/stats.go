package domain

import "math"

// Stats holds the dashboard aggregates for a roster
type Stats struct {
	TotalClients int
	Companies    int
	TotalRevenue float64
	AverageAge   int
}

// ComputeStats aggregates the roster. Revenue sums subscription costs
// without currency conversion.
func ComputeStats(clients []Client) Stats {
	s := Stats{TotalClients: len(clients)}
	if len(clients) == 0 {
		return s
	}

	companies := make(map[string]struct{}, len(clients))
	ageSum := 0
	for _, c := range clients {
		companies[c.Company] = struct{}{}
		s.TotalRevenue += CostValue(c.SubscriptionCost)
		ageSum += c.Age
	}
	s.Companies = len(companies)
	s.AverageAge = int(math.Round(float64(ageSum) / float64(len(clients))))
	return s
}
