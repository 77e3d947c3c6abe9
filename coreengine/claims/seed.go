package claims

import (
	"fmt"
	"math/rand"
)

// Seed distribution. 670 claims total, 120 of the New claims at SLA High.
const (
	seedNew            = 400
	seedInvestigating  = 150
	seedReadyToApprove = 101
	seedClosed         = 19
	seedHighPriority   = 120
	seedFirstClaimNum  = 124
)

var seedNames = []string{
	"Rahul Sharma", "Priya Patel", "Amit Kumar", "Sneha Reddy", "Rajesh Iyer",
	"Kavita Singh", "Arjun Mehta", "Deepika Nair", "Vikram Chopra", "Ananya Desai",
	"Rohan Gupta", "Meera Joshi", "Karthik Rao", "Divya Krishnan", "Sanjay Verma",
	"Pooja Menon", "Aditya Shah", "Riya Kapoor", "Nikhil Pandey", "Shreya Agarwal",
}

var seedVehicles = []string{
	"2018 Honda City", "2020 Maruti Swift", "2019 Hyundai Creta", "2021 Tata Nexon",
	"2017 Ford EcoSport", "2022 Kia Seltos", "2019 Mahindra XUV500", "2020 Toyota Innova",
	"2018 Volkswagen Polo", "2021 Skoda Rapid", "2019 Renault Duster", "2020 Nissan Kicks",
	"2017 Honda Jazz", "2022 MG Hector", "2018 Hyundai i20", "2021 Maruti Baleno",
	"2019 Tata Harrier", "2020 Jeep Compass", "2018 Ford Figo", "2021 Honda WRV",
}

var seedRisks = []SLARisk{SLALow, SLAMedium, SLAHigh}

// Seed generates the synthetic working set: 400 New, 150 Investigating,
// 101 Ready to Approve and 19 Closed claims, with the first 120 New claims
// at SLA High. Ordering matches generation order (oldest batch first) so
// that Repository.Add-ing them in reverse yields the inbox layout.
func Seed(rng *rand.Rand) []Claim {
	out := make([]Claim, 0, seedNew+seedInvestigating+seedReadyToApprove+seedClosed)
	num := seedFirstClaimNum

	for i := 0; i < seedNew; i++ {
		risk := SLALow
		switch {
		case i < seedHighPriority:
			risk = SLAHigh
		case i%2 == 0:
			risk = SLAMedium
		}
		out = append(out, Claim{
			ID:              seedID(&num),
			ClaimantName:    seedNames[i%len(seedNames)],
			Status:          StatusNew,
			Vehicle:         seedVehicle(i, "MH", "AB", 1000),
			FNOLDate:        seedFNOL(rng, 15+(i%10)),
			SLARisk:         risk,
			EstimatedAmount: fmt.Sprintf("%d", 25000+rng.Intn(75000)),
		})
	}

	for i := 0; i < seedInvestigating; i++ {
		approved := rng.Intn(50000)
		out = append(out, Claim{
			ID:              seedID(&num),
			ClaimantName:    seedNames[i%len(seedNames)],
			Status:          StatusInvestigating,
			Vehicle:         seedVehicle(i, "DL", "CD", 5000),
			FNOLDate:        seedFNOL(rng, 10+(i%15)),
			SLARisk:         seedRisks[i%3],
			EstimatedAmount: fmt.Sprintf("%d", 30000+rng.Intn(70000)),
			ApprovedAmount:  approved,
		})
	}

	for i := 0; i < seedReadyToApprove; i++ {
		out = append(out, Claim{
			ID:              seedID(&num),
			ClaimantName:    seedNames[i%len(seedNames)],
			Status:          StatusReadyToApprove,
			Vehicle:         seedVehicle(i, "KA", "EF", 3000),
			FNOLDate:        seedFNOL(rng, 5+(i%20)),
			SLARisk:         SLALow,
			EstimatedAmount: fmt.Sprintf("%d", 20000+rng.Intn(60000)),
			ApprovedAmount:  20000 + rng.Intn(60000),
		})
	}

	for i := 0; i < seedClosed; i++ {
		amount := 20000 + rng.Intn(50000)
		out = append(out, Claim{
			ID:              seedID(&num),
			ClaimantName:    seedNames[i%len(seedNames)],
			Status:          StatusClosed,
			Vehicle:         seedVehicle(i, "TN", "GH", 7000),
			FNOLDate:        seedFNOL(rng, 1+(i%25)),
			SLARisk:         SLALow,
			EstimatedAmount: fmt.Sprintf("%d", amount),
			ApprovedAmount:  amount,
			DisbursedAmount: amount,
		})
	}

	return out
}

// SeedRepository fills the repository with the synthetic working set,
// preserving the generated ordering in List() (first generated claim first).
func SeedRepository(repo *Repository, rng *rand.Rand) error {
	generated := Seed(rng)
	// Add prepends, so insert in reverse to keep generation order.
	for i := len(generated) - 1; i >= 0; i-- {
		if err := repo.Add(generated[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedID(num *int) string {
	id := fmt.Sprintf("AC-2025-%05d", *num)
	*num++
	return id
}

func seedVehicle(i int, state, series string, base int) string {
	plate := fmt.Sprintf("%s%02d%s%04d", state, i%100, series, (base+i)%10000)
	return fmt.Sprintf("%s (%s)", seedVehicles[i%len(seedVehicles)], plate)
}

func seedFNOL(rng *rand.Rand, day int) string {
	return fmt.Sprintf("%d Oct 2025, %02d:%02d", day, rng.Intn(24), rng.Intn(60))
}
