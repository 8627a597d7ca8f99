package sources

import (
	"fmt"
	"time"

	"github.com/healthprice-aggregator/internal/domain"
)

// Sample data returned while upstream integrations run in stub mode. The
// records are deterministic: the same inputs always produce the same
// payloads, which keeps cached and uncached responses identical.

func sampleTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func govSource(name, url string) domain.DataSource {
	return domain.DataSource{
		Name:                name,
		Type:                "government",
		URL:                 url,
		LastFetched:         sampleTimestamp(),
		ConfidenceLevel:     "high",
		RequiresAttribution: true,
	}
}

func commercialSource(name string) domain.DataSource {
	return domain.DataSource{
		Name:            name,
		Type:            "commercial",
		LastFetched:     sampleTimestamp(),
		ConfidenceLevel: "medium",
	}
}

type providerSeed struct {
	npi    string
	name   string
	ptype  string
	street string
	city   string
	zip    string
	lat    float64
	lng    float64
	rating float64
	stars  float64
}

var providerSeeds = []providerSeed{
	{"1234567890", "Cedars-Sinai Medical Center", "hospital", "8700 Beverly Blvd", "Los Angeles", "90048", 34.0755, -118.3800, 4.8, 5},
	{"1234567891", "UCLA Medical Center", "hospital", "757 Westwood Plaza", "Los Angeles", "90095", 34.0664, -118.4455, 4.7, 5},
	{"1234567892", "Providence Saint John's Health Center", "hospital", "2121 Santa Monica Blvd", "Santa Monica", "90404", 34.0297, -118.4738, 4.5, 4},
	{"1234567893", "Torrance Memorial Medical Center", "hospital", "3330 Lomita Blvd", "Torrance", "90505", 33.8105, -118.3454, 4.3, 4},
	{"1234567894", "Kaiser Permanente Los Angeles", "hospital", "4867 W Sunset Blvd", "Los Angeles", "90027", 34.0977, -118.2946, 4.1, 4},
}

func sampleProviders() []domain.Provider {
	providers := make([]domain.Provider, 0, len(providerSeeds))
	for i, seed := range providerSeeds {
		providers = append(providers, domain.Provider{
			ID:   fmt.Sprintf("prov-%03d", i+1),
			NPI:  seed.npi,
			Name: seed.name,
			Type: seed.ptype,
			Address: domain.Address{
				Street:  seed.street,
				City:    seed.city,
				State:   "CA",
				ZipCode: seed.zip,
				Country: "US",
			},
			Contact:     domain.ContactInfo{Phone: fmt.Sprintf("310-555-%04d", 1000+i)},
			Coordinates: domain.Coordinates{Lat: seed.lat, Lng: seed.lng},
			Accreditations: []domain.Accreditation{
				{Name: "Hospital Accreditation", Organization: "Joint Commission", Status: "accredited"},
			},
			QualityRatings: domain.QualityRatings{
				Overall:             seed.rating,
				PatientSatisfaction: seed.rating - 0.2,
				SafetyScore:         seed.rating - 0.1,
				CMSStarRating:       seed.stars,
				ReviewCount:         1200 + i*310,
				Sources:             []domain.DataSource{govSource("CMS Hospital Compare", "https://data.cms.gov/provider-data/")},
			},
			Services:          []string{"emergency", "surgery", "imaging", "laboratory"},
			AcceptedInsurance: []string{"Aetna", "Blue Shield", "Cigna", "UnitedHealthcare", "Medicare"},
			IsVerified:        true,
			LastUpdated:       sampleTimestamp(),
			DataSource:        govSource("NPPES NPI Registry", "https://npiregistry.cms.hhs.gov/"),
		})
	}
	return providers
}

func procedureName(code string) string {
	switch code {
	case "27447":
		return "Total Knee Replacement"
	case "45378":
		return "Colonoscopy"
	case "70553":
		return "MRI Brain With and Without Contrast"
	default:
		return "Medical Procedure"
	}
}

func procedureBasePrice(code string) float64 {
	if code == "27447" {
		return 35000
	}
	return 5000
}

// sampleProcedurePrices builds one price record per sample provider. The
// price varies deterministically with provider index so the statistical
// helpers see a spread, and the confidence score climbs with index offset
// by confBase so records from differently seeded sources disagree in a
// predictable way.
func sampleProcedurePrices(sourceName, code string, confBase int, source domain.DataSource) []domain.ProcedurePrice {
	base := procedureBasePrice(code)
	providers := sampleProviders()

	prices := make([]domain.ProcedurePrice, 0, len(providers))
	for i, provider := range providers {
		cash := base + float64(i)*750 - 1500
		prices = append(prices, domain.ProcedurePrice{
			ID:            fmt.Sprintf("%s-%s-%s", sourceName, code, provider.ID),
			ProcedureCode: code,
			ProcedureName: procedureName(code),
			Description:   procedureName(code) + " including facility and physician fees",
			Category:      "surgery",
			ProviderID:    provider.ID,
			ProviderName:  provider.Name,
			Pricing: domain.PricingDetails{
				CashPrice:         cash,
				ChargemasterPrice: cash * 2.4,
				MedicareRate:      cash * 0.42,
				SelfPayDiscount:   15,
			},
			NegotiatedRates: []domain.NegotiatedRate{
				{InsurerID: "bcbs", InsurerName: "Blue Shield", PlanType: "PPO", NegotiatedPrice: cash * 0.72, InNetwork: true},
				{InsurerID: "aetna", InsurerName: "Aetna", PlanType: "HMO", NegotiatedPrice: cash * 0.68, InNetwork: true},
			},
			ConfidenceScore: confBase + i*3,
			LastUpdated:     sampleTimestamp(),
			DataSources:     []domain.DataSource{source},
		})
	}
	return prices
}

type pharmacySeed struct {
	id    string
	name  string
	ptype string
}

var pharmacySeeds = []pharmacySeed{
	{"pharm-cvs", "CVS Pharmacy", "retail"},
	{"pharm-wag", "Walgreens", "retail"},
	{"pharm-rad", "Rite Aid", "retail"},
	{"pharm-cos", "Costco Pharmacy", "retail"},
	{"pharm-wmt", "Walmart Pharmacy", "retail"},
}

// sampleDrugPrices builds one quote per sample pharmacy. The list price
// varies with pharmacy index; the coupon discount is a fixed fraction so
// each discount program ranks pharmacies the same way but at different
// effective prices.
func sampleDrugPrices(drugID, zipCode, couponProvider string, discount float64) []domain.DrugPrice {
	quotes := make([]domain.DrugPrice, 0, len(pharmacySeeds))
	for i, seed := range pharmacySeeds {
		list := 150 + float64(i)*12 - 24
		quotes = append(quotes, domain.DrugPrice{
			DrugID:       drugID,
			PharmacyID:   seed.id,
			PharmacyName: seed.name,
			PharmacyType: seed.ptype,
			PharmacyAddress: &domain.Address{
				City:    "Los Angeles",
				State:   "CA",
				ZipCode: zipCode,
				Country: "US",
			},
			Price:           list,
			PriceWithCoupon: list * (1 - discount),
			CouponCode:      fmt.Sprintf("%s-%s-%d", couponProvider, drugID, i),
			CouponProvider:  couponProvider,
			Quantity:        30,
			DaysSupply:      30,
			LastUpdated:     sampleTimestamp(),
			DataSource:      commercialSource(couponProvider),
		})
	}
	return quotes
}

func sampleDrugs() []domain.Drug {
	return []domain.Drug{
		{
			ID:                   "drug-001",
			NDC:                  "0071-0155-23",
			Name:                 "Lipitor",
			GenericName:          "atorvastatin calcium",
			BrandNames:           []string{"Lipitor"},
			Manufacturer:         "Pfizer",
			DosageForm:           "tablet",
			Strength:             "20mg",
			Quantity:             30,
			IsGeneric:            false,
			RequiresPrescription: true,
			TherapeuticClass:     "HMG-CoA reductase inhibitor",
			Interactions: []domain.DrugInteraction{
				{InteractingDrug: "gemfibrozil", Severity: "major", Description: "Increased risk of myopathy and rhabdomyolysis"},
			},
		},
		{
			ID:                   "drug-002",
			NDC:                  "0378-3952-77",
			Name:                 "Atorvastatin",
			GenericName:          "atorvastatin calcium",
			Manufacturer:         "Mylan",
			DosageForm:           "tablet",
			Strength:             "20mg",
			Quantity:             30,
			IsGeneric:            true,
			RequiresPrescription: true,
			TherapeuticClass:     "HMG-CoA reductase inhibitor",
		},
	}
}

func sampleTelemedicineProviders() []domain.TelemedicineProvider {
	return []domain.TelemedicineProvider{
		{
			ID:          "tele-001",
			Name:        "Teladoc Health",
			Description: "24/7 virtual visits for primary care, mental health, and dermatology",
			Services: []domain.TelemedicineService{
				{Name: "General Medical Visit", Description: "Urgent care and everyday health concerns", Price: 89, Duration: 15, Category: "primary_care"},
				{Name: "Therapy Session", Description: "Licensed therapist visit", Price: 99, Duration: 45, Category: "mental_health"},
			},
			Pricing:      domain.TelemedicinePricing{ConsultationFee: 89, InsuranceCopay: 0},
			Availability: domain.TelemedicineAvailability{Is247: true, AverageWaitTime: 10, SameDayAvailable: true},
			Ratings:      domain.TelemedicineRatings{Overall: 4.4, ReviewCount: 91000, ResponseTime: 12},
			AcceptedInsurance: []string{"Aetna", "Cigna", "UnitedHealthcare"},
			Languages:         []string{"English", "Spanish"},
			Specialties:       []string{"primary_care", "mental_health", "dermatology"},
			StatesAvailable:   []string{"ALL"},
			Website:           "https://www.teladoc.com",
		},
		{
			ID:          "tele-002",
			Name:        "MDLIVE",
			Description: "Board-certified doctors by phone or video",
			Services: []domain.TelemedicineService{
				{Name: "Urgent Care Visit", Description: "Non-emergency medical care", Price: 85, Duration: 15, Category: "urgent_care"},
			},
			Pricing:      domain.TelemedicinePricing{ConsultationFee: 85},
			Availability: domain.TelemedicineAvailability{Is247: true, AverageWaitTime: 15, SameDayAvailable: true},
			Ratings:      domain.TelemedicineRatings{Overall: 4.2, ReviewCount: 48000, ResponseTime: 18},
			AcceptedInsurance: []string{"Blue Shield", "Cigna"},
			Languages:         []string{"English", "Spanish"},
			Specialties:       []string{"primary_care", "urgent_care", "dermatology"},
			StatesAvailable:   []string{"ALL"},
			Website:           "https://www.mdlive.com",
		},
	}
}

func sampleEmergencyRooms() []domain.EmergencyRoom {
	erCosts := domain.ERCostEstimate{
		LowAcuity:      domain.PriceRange{Min: 150, Max: 400, Median: 250, Percentile25: 200, Percentile75: 325},
		ModerateAcuity: domain.PriceRange{Min: 400, Max: 1500, Median: 800, Percentile25: 600, Percentile75: 1100},
		HighAcuity:     domain.PriceRange{Min: 1500, Max: 6000, Median: 3000, Percentile25: 2200, Percentile75: 4200},
		Critical:       domain.PriceRange{Min: 6000, Max: 25000, Median: 12000, Percentile25: 9000, Percentile75: 17000},
	}
	return []domain.EmergencyRoom{
		{
			ID:              "er-001",
			ProviderID:      "prov-001",
			HospitalName:    "Cedars-Sinai Emergency Department",
			Address:         domain.Address{Street: "8700 Beverly Blvd", City: "Los Angeles", State: "CA", ZipCode: "90048", Country: "US"},
			Coordinates:     domain.Coordinates{Lat: 34.0755, Lng: -118.3800},
			Contact:         domain.ContactInfo{Phone: "310-423-8780"},
			CurrentWaitTime: 45,
			WaitTimeTrend:   "stable",
			CapacityStatus:  "moderate",
			TraumaLevel:     1,
			PediatricER:     true,
			StrokeCenter:    true,
			CardiacCenter:   true,
			LastUpdated:     sampleTimestamp(),
			EstimatedCosts:  erCosts,
		},
		{
			ID:              "er-002",
			ProviderID:      "prov-002",
			HospitalName:    "UCLA Emergency Department",
			Address:         domain.Address{Street: "757 Westwood Plaza", City: "Los Angeles", State: "CA", ZipCode: "90095", Country: "US"},
			Coordinates:     domain.Coordinates{Lat: 34.0664, Lng: -118.4455},
			Contact:         domain.ContactInfo{Phone: "310-825-2111"},
			CurrentWaitTime: 62,
			WaitTimeTrend:   "increasing",
			CapacityStatus:  "high",
			TraumaLevel:     1,
			PediatricER:     true,
			StrokeCenter:    true,
			CardiacCenter:   true,
			LastUpdated:     sampleTimestamp(),
			EstimatedCosts:  erCosts,
		},
	}
}

func sampleUrgentCare() []domain.UrgentCare {
	return []domain.UrgentCare{
		{
			ID:              "uc-001",
			Name:            "Carbon Health Urgent Care",
			Address:         domain.Address{Street: "8500 Wilshire Blvd", City: "Beverly Hills", State: "CA", ZipCode: "90211", Country: "US"},
			Coordinates:     domain.Coordinates{Lat: 34.0667, Lng: -118.3774},
			Contact:         domain.ContactInfo{Phone: "310-555-2200"},
			CurrentWaitTime: 20,
			WalkInAccepted:  true,
			ServicesOffered: []string{"x-ray", "lab_tests", "stitches", "vaccinations"},
			Pricing:         domain.UrgentCarePricing{VisitFee: 175, XrayFee: 120, LabFee: 60},
			AcceptedInsurance: []string{"Aetna", "Blue Shield", "Cigna"},
			Ratings:           domain.QualityRatings{Overall: 4.6, ReviewCount: 870},
		},
		{
			ID:              "uc-002",
			Name:            "Exer Urgent Care",
			Address:         domain.Address{Street: "3870 Crenshaw Blvd", City: "Los Angeles", State: "CA", ZipCode: "90008", Country: "US"},
			Coordinates:     domain.Coordinates{Lat: 34.0161, Lng: -118.3350},
			Contact:         domain.ContactInfo{Phone: "310-555-3300"},
			CurrentWaitTime: 35,
			WalkInAccepted:  true,
			ServicesOffered: []string{"x-ray", "lab_tests", "iv_fluids"},
			Pricing:         domain.UrgentCarePricing{VisitFee: 150, XrayFee: 100, LabFee: 55},
			AcceptedInsurance: []string{"Cigna", "UnitedHealthcare", "Medicare"},
			Ratings:           domain.QualityRatings{Overall: 4.4, ReviewCount: 640},
		},
	}
}

func sampleClinicalTrials(condition string) []domain.ClinicalTrial {
	return []domain.ClinicalTrial{
		{
			ID:           "trial-001",
			NCTID:        "NCT04567890",
			Title:        "Phase 3 Study of Novel Treatment for " + condition,
			BriefSummary: "Randomized, double-blind, placebo-controlled study evaluating efficacy and safety",
			Status:       "recruiting",
			Phase:        "Phase 3",
			StudyType:    "interventional",
			Conditions:   []string{condition},
			Interventions: []domain.TrialIntervention{
				{Type: "drug", Name: "Investigational Compound XYZ-123"},
			},
			Eligibility: domain.TrialEligibility{
				Gender:            "all",
				MinAge:            18,
				MaxAge:            75,
				HealthyVolunteers: false,
				Criteria:          []string{"Confirmed diagnosis", "No prior treatment within 6 months"},
			},
			Locations: []domain.TrialLocation{
				{Facility: "UCLA Medical Center", City: "Los Angeles", State: "CA", Country: "US", Status: "recruiting"},
			},
			Sponsor: "National Institutes of Health",
			Compensation: &domain.TrialCompensation{
				Amount:              500,
				Frequency:           "per visit",
				Description:         "Compensation for time and travel",
				TravelReimbursement: true,
			},
			StartDate:   "2025-03-01",
			Enrollment:  domain.TrialEnrollment{Current: 145, Target: 300},
			ContactInfo: domain.ContactInfo{Phone: "800-555-0199", Email: "trials@example.org"},
			LastUpdated: sampleTimestamp(),
		},
	}
}

func sampleDestinations() []domain.MedicalTourismDestination {
	return []domain.MedicalTourismDestination{
		{
			ID:      "dest-1",
			Country: "Mexico",
			City:    "Tijuana",
			Hospitals: []domain.InternationalHospital{
				{
					ID:   "intl-hosp-001",
					Name: "Hospital Angeles Tijuana",
					Address: domain.Address{
						Street: "Av. Paseo de los Heroes 10999", City: "Tijuana", State: "BC", Country: "MX",
					},
					Accreditations: []domain.Accreditation{
						{Name: "International Accreditation", Organization: "JCI", Status: "accredited"},
					},
					Specialties:                  []string{"bariatric_surgery", "orthopedics", "dentistry"},
					InternationalPatientServices: true,
					InterpreterServices:          []string{"English", "Spanish"},
					Website:                      "https://www.hospitalangelestijuana.example",
					Ratings:                      domain.QualityRatings{Overall: 4.5, ReviewCount: 2100},
				},
			},
			PopularProcedures: []domain.TourismProcedure{
				{ProcedureName: "Total Knee Replacement", AverageCostLocal: 12000, AverageCostUS: 35000, SavingsPercentage: 66, RecoveryTimeWeeks: 6, HospitalStayDays: 3},
				{ProcedureName: "Gastric Sleeve", AverageCostLocal: 4500, AverageCostUS: 19000, SavingsPercentage: 76, RecoveryTimeWeeks: 2, HospitalStayDays: 2},
			},
			AverageSavings: 65,
			TravelInfo:     sampleTravelInfo("Tijuana"),
			CostOfLiving:   sampleCostOfLiving("Tijuana"),
			VisaRequirements: domain.VisaInfo{
				Required: false,
			},
			LanguagesSpoken:   []string{"Spanish", "English"},
			QualityIndicators: domain.TourismQuality{JCIAccreditedHospitals: 3, MedicalTourismRanking: 2},
		},
		{
			ID:      "dest-2",
			Country: "Thailand",
			City:    "Bangkok",
			Hospitals: []domain.InternationalHospital{
				{
					ID:   "intl-hosp-002",
					Name: "Bumrungrad International Hospital",
					Address: domain.Address{
						Street: "33 Soi Sukhumvit 3", City: "Bangkok", Country: "TH",
					},
					Accreditations: []domain.Accreditation{
						{Name: "International Accreditation", Organization: "JCI", Status: "accredited"},
					},
					Specialties:                  []string{"cardiology", "oncology", "orthopedics"},
					InternationalPatientServices: true,
					InterpreterServices:          []string{"English", "Thai", "Arabic", "Japanese"},
					Website:                      "https://www.bumrungrad.example",
					Ratings:                      domain.QualityRatings{Overall: 4.7, ReviewCount: 5400},
				},
			},
			PopularProcedures: []domain.TourismProcedure{
				{ProcedureName: "Total Knee Replacement", AverageCostLocal: 14000, AverageCostUS: 35000, SavingsPercentage: 60, RecoveryTimeWeeks: 6, HospitalStayDays: 4},
			},
			AverageSavings: 58,
			TravelInfo:     sampleTravelInfo("Bangkok"),
			CostOfLiving:   sampleCostOfLiving("Bangkok"),
			VisaRequirements: domain.VisaInfo{
				Required: true, Type: "tourist", ProcessingTimeDays: 5, MedicalVisaAvailable: true, EVisaAvailable: true,
			},
			LanguagesSpoken:   []string{"Thai", "English"},
			QualityIndicators: domain.TourismQuality{JCIAccreditedHospitals: 60, MedicalTourismRanking: 1},
		},
	}
}

func sampleTravelInfo(city string) domain.TravelInfo {
	if city == "Bangkok" {
		return domain.TravelInfo{
			FlightEstimate:        domain.PriceRange{Min: 700, Max: 1600, Median: 1050, Percentile25: 900, Percentile75: 1300},
			FlightDurationHours:   17.5,
			AccommodationPerNight: domain.PriceRange{Min: 40, Max: 220, Median: 90, Percentile25: 60, Percentile75: 140},
			LocalTransportDaily:   10,
			MealCostDaily:         20,
			RecommendedStayDays:   14,
		}
	}
	return domain.TravelInfo{
		FlightEstimate:        domain.PriceRange{Min: 150, Max: 450, Median: 250, Percentile25: 200, Percentile75: 350},
		FlightDurationHours:   3.5,
		AccommodationPerNight: domain.PriceRange{Min: 50, Max: 180, Median: 95, Percentile25: 70, Percentile75: 130},
		LocalTransportDaily:   15,
		MealCostDaily:         25,
		RecommendedStayDays:   10,
	}
}

func sampleCostOfLiving(city string) domain.CostOfLivingData {
	if city == "Bangkok" {
		return domain.CostOfLivingData{Index: 38, MealCostAverage: 7, PublicTransport: 1, Taxi: 3, Currency: "THB", ExchangeRate: 36.5}
	}
	return domain.CostOfLivingData{Index: 42, MealCostAverage: 8, PublicTransport: 1.5, Taxi: 5, Currency: "MXN", ExchangeRate: 17.2}
}

func sampleFlightPrices() domain.PriceRange {
	return domain.PriceRange{Min: 300, Max: 1000, Median: 550, Percentile25: 400, Percentile75: 750}
}

func sampleInsurancePlans(state string) []domain.InsurancePlan {
	return []domain.InsurancePlan{
		{
			ID:          "plan-001",
			CarrierID:   "carrier-bsc",
			CarrierName: "Blue Shield",
			PlanName:    "Silver 70 PPO",
			PlanType:    "PPO",
			MetalLevel:  "silver",
			Premium:     domain.CoverageTier{Individual: 420, Family: 1250},
			Deductible:  domain.CoverageTier{Individual: 4750, Family: 9500},
			OutOfPocketMax: domain.CoverageTier{Individual: 8700, Family: 17400},
			Copays: domain.PlanCopays{
				PrimaryCare: 45, Specialist: 85, UrgentCare: 75, EmergencyRoom: 450, GenericDrug: 17, BrandDrug: 60,
			},
			Coinsurance:    30,
			HSAEligible:    false,
			NetworkSize:    64000,
			Rating:         3.5,
			StateAvailable: []string{state},
		},
		{
			ID:          "plan-002",
			CarrierID:   "carrier-kp",
			CarrierName: "Kaiser Permanente",
			PlanName:    "Bronze 60 HDHP HMO",
			PlanType:    "HDHP",
			MetalLevel:  "bronze",
			Premium:     domain.CoverageTier{Individual: 310, Family: 930},
			Deductible:  domain.CoverageTier{Individual: 7000, Family: 14000},
			OutOfPocketMax: domain.CoverageTier{Individual: 8050, Family: 16100},
			Copays: domain.PlanCopays{
				PrimaryCare: 0, Specialist: 0, UrgentCare: 0, EmergencyRoom: 0, GenericDrug: 0, BrandDrug: 0,
			},
			Coinsurance:    40,
			HSAEligible:    true,
			NetworkSize:    23000,
			Rating:         4.0,
			StateAvailable: []string{state},
		},
	}
}
