package domain

// ==========================================
// Providers & Hospitals
// ==========================================

// Provider is a healthcare facility or practitioner sourced from the NPI
// registry and enriched from quality-rating feeds.
type Provider struct {
	ID                string         `json:"id"`
	NPI               string         `json:"npi"`
	Name              string         `json:"name"`
	Type              string         `json:"type"` // hospital, clinic, urgent_care, imaging_center, surgery_center, physician
	Specialty         string         `json:"specialty,omitempty"`
	Address           Address        `json:"address"`
	Contact           ContactInfo    `json:"contact"`
	Coordinates       Coordinates    `json:"coordinates"`
	Accreditations    []Accreditation `json:"accreditations"`
	QualityRatings    QualityRatings `json:"qualityRatings"`
	Services          []string       `json:"services"`
	AcceptedInsurance []string       `json:"acceptedInsurance"`
	OperatingHours    OperatingHours `json:"operatingHours"`
	ImageURL          string         `json:"imageUrl,omitempty"`
	Website           string         `json:"website,omitempty"`
	IsVerified        bool           `json:"isVerified"`
	LastUpdated       string         `json:"lastUpdated"`
	DataSource        DataSource     `json:"dataSource"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type ContactInfo struct {
	Phone string `json:"phone"`
	Fax   string `json:"fax,omitempty"`
	Email string `json:"email,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Accreditation struct {
	Name           string `json:"name"`
	Organization   string `json:"organization"` // JCI, NCQA, Joint Commission, AAAHC, DNV, Other
	Status         string `json:"status"`       // accredited, pending, expired
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// QualityRatings aggregates scores from multiple rating bodies. Overall is
// on a 0-5 scale.
type QualityRatings struct {
	Overall             float64      `json:"overall"`
	PatientSatisfaction float64      `json:"patientSatisfaction,omitempty"`
	SafetyScore         float64      `json:"safetyScore,omitempty"`
	ReadmissionRate     float64      `json:"readmissionRate,omitempty"`
	MortalityRate       float64      `json:"mortalityRate,omitempty"`
	InfectionRate       float64      `json:"infectionRate,omitempty"`
	LeapfrogGrade       string       `json:"leapfrogGrade,omitempty"`
	CMSStarRating       float64      `json:"cmsStarRating,omitempty"`
	ReviewCount         int          `json:"reviewCount"`
	Sources             []DataSource `json:"sources"`
}

type OperatingHours struct {
	Monday       *DayHours `json:"monday,omitempty"`
	Tuesday      *DayHours `json:"tuesday,omitempty"`
	Wednesday    *DayHours `json:"wednesday,omitempty"`
	Thursday     *DayHours `json:"thursday,omitempty"`
	Friday       *DayHours `json:"friday,omitempty"`
	Saturday     *DayHours `json:"saturday,omitempty"`
	Sunday       *DayHours `json:"sunday,omitempty"`
	Is24Hours    bool      `json:"is24Hours,omitempty"`
	HolidayHours string    `json:"holidayHours,omitempty"`
}

type DayHours struct {
	Open     string `json:"open"`
	Close    string `json:"close"`
	IsClosed bool   `json:"isClosed,omitempty"`
}

// ==========================================
// Procedure Pricing
// ==========================================

// ProcedurePrice is one provider's price for one CPT/HCPCS procedure code,
// merged from multiple transparency sources. ConfidenceScore is a 0-100
// trust heuristic used as the merge tie-break signal.
type ProcedurePrice struct {
	ID              string           `json:"id"`
	ProcedureCode   string           `json:"procedureCode"`
	ProcedureName   string           `json:"procedureName"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	ProviderID      string           `json:"providerId"`
	ProviderName    string           `json:"providerName"`
	Pricing         PricingDetails   `json:"pricing"`
	NegotiatedRates []NegotiatedRate `json:"negotiatedRates"`
	NationalAverage float64          `json:"nationalAverage"`
	RegionalAverage float64          `json:"regionalAverage"`
	PriceRange      PriceRange       `json:"priceRange"`
	ConfidenceScore int              `json:"confidenceScore"`
	LastUpdated     string           `json:"lastUpdated"`
	DataSources     []DataSource     `json:"dataSources"`
}

type PricingDetails struct {
	CashPrice          float64 `json:"cashPrice"`
	ChargemasterPrice  float64 `json:"chargemasterPrice,omitempty"`
	MedicareRate       float64 `json:"medicareRate,omitempty"`
	MedicaidRate       float64 `json:"medicaidRate,omitempty"`
	SelfPayDiscount    float64 `json:"selfPayDiscount,omitempty"`
	FinancingAvailable bool    `json:"financingAvailable,omitempty"`
}

type NegotiatedRate struct {
	InsurerID       string  `json:"insurerId"`
	InsurerName     string  `json:"insurerName"`
	PlanType        string  `json:"planType"`
	NegotiatedPrice float64 `json:"negotiatedPrice"`
	InNetwork       bool    `json:"inNetwork"`
}

// PriceRange reports nearest-rank descriptive statistics over a price set.
type PriceRange struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Median       float64 `json:"median"`
	Percentile25 float64 `json:"percentile25"`
	Percentile75 float64 `json:"percentile75"`
}

// ==========================================
// Prescription Drugs
// ==========================================

type Drug struct {
	ID                   string            `json:"id"`
	NDC                  string            `json:"ndc"`
	Name                 string            `json:"name"`
	GenericName          string            `json:"genericName"`
	BrandNames           []string          `json:"brandNames"`
	Manufacturer         string            `json:"manufacturer"`
	DosageForm           string            `json:"dosageForm"`
	Strength             string            `json:"strength"`
	Quantity             int               `json:"quantity"`
	IsGeneric            bool              `json:"isGeneric"`
	RequiresPrescription bool              `json:"requiresPrescription"`
	ControlledSubstance  bool              `json:"controlledSubstance,omitempty"`
	TherapeuticClass     string            `json:"therapeuticClass"`
	Interactions         []DrugInteraction `json:"interactions"`
}

type DrugPrice struct {
	DrugID          string     `json:"drugId"`
	PharmacyID      string     `json:"pharmacyId"`
	PharmacyName    string     `json:"pharmacyName"`
	PharmacyType    string     `json:"pharmacyType"` // retail, mail_order, online
	PharmacyAddress *Address   `json:"pharmacyAddress,omitempty"`
	Price           float64    `json:"price"`
	PriceWithCoupon float64    `json:"priceWithCoupon,omitempty"`
	CouponCode      string     `json:"couponCode,omitempty"`
	CouponProvider  string     `json:"couponProvider,omitempty"` // GoodRx, RxSaver, SingleCare, Blink Health, Other
	Quantity        int        `json:"quantity"`
	DaysSupply      int        `json:"daysSupply"`
	LastUpdated     string     `json:"lastUpdated"`
	DataSource      DataSource `json:"dataSource"`
}

// EffectivePrice is what a patient actually pays: the coupon price when a
// coupon exists, the list price otherwise.
func (p DrugPrice) EffectivePrice() float64 {
	if p.PriceWithCoupon > 0 {
		return p.PriceWithCoupon
	}
	return p.Price
}

type DrugInteraction struct {
	InteractingDrug string `json:"interactingDrug"`
	Severity        string `json:"severity"` // major, moderate, minor
	Description     string `json:"description"`
}

// ==========================================
// Telemedicine
// ==========================================

type TelemedicineProvider struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Logo              string                   `json:"logo,omitempty"`
	Description       string                   `json:"description"`
	Services          []TelemedicineService    `json:"services"`
	Pricing           TelemedicinePricing      `json:"pricing"`
	Availability      TelemedicineAvailability `json:"availability"`
	Ratings           TelemedicineRatings      `json:"ratings"`
	AcceptedInsurance []string                 `json:"acceptedInsurance"`
	Languages         []string                 `json:"languages"`
	Specialties       []string                 `json:"specialties"`
	StatesAvailable   []string                 `json:"statesAvailable"`
	Website           string                   `json:"website"`
	AppStoreURL       string                   `json:"appStoreUrl,omitempty"`
	PlayStoreURL      string                   `json:"playStoreUrl,omitempty"`
}

type TelemedicineService struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"` // minutes
	Category    string  `json:"category"` // primary_care, mental_health, dermatology, urgent_care, specialist, other
}

type TelemedicinePricing struct {
	ConsultationFee     float64 `json:"consultationFee"`
	SubscriptionMonthly float64 `json:"subscriptionMonthly,omitempty"`
	SubscriptionAnnual  float64 `json:"subscriptionAnnual,omitempty"`
	InsuranceCopay      float64 `json:"insuranceCopay,omitempty"`
}

type TelemedicineAvailability struct {
	Is247             bool `json:"is24_7"`
	AverageWaitTime   int  `json:"averageWaitTime"` // minutes
	ScheduleInAdvance bool `json:"scheduleInAdvance"`
	SameDayAvailable  bool `json:"sameDayAvailable"`
}

type TelemedicineRatings struct {
	Overall      float64 `json:"overall"`
	ReviewCount  int     `json:"reviewCount"`
	ResponseTime int     `json:"responseTime"` // average minutes
}

// ==========================================
// Emergency Services
// ==========================================

// EmergencyRoom carries a real-time wait time, so cached copies go stale
// within minutes.
type EmergencyRoom struct {
	ID              string         `json:"id"`
	ProviderID      string         `json:"providerId"`
	HospitalName    string         `json:"hospitalName"`
	Address         Address        `json:"address"`
	Coordinates     Coordinates    `json:"coordinates"`
	Contact         ContactInfo    `json:"contact"`
	CurrentWaitTime int            `json:"currentWaitTime"` // minutes
	WaitTimeTrend   string         `json:"waitTimeTrend"`   // increasing, decreasing, stable
	CapacityStatus  string         `json:"capacityStatus"`  // low, moderate, high, critical
	TraumaLevel     int            `json:"traumaLevel,omitempty"`
	PediatricER     bool           `json:"pediatricER"`
	StrokeCenter    bool           `json:"strokeCenter"`
	CardiacCenter   bool           `json:"cardiacCenter"`
	BurnCenter      bool           `json:"burnCenter"`
	LastUpdated     string         `json:"lastUpdated"`
	EstimatedCosts  ERCostEstimate `json:"estimatedCosts"`
}

type ERCostEstimate struct {
	LowAcuity      PriceRange `json:"lowAcuity"`
	ModerateAcuity PriceRange `json:"moderateAcuity"`
	HighAcuity     PriceRange `json:"highAcuity"`
	Critical       PriceRange `json:"critical"`
}

type UrgentCare struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Address           Address           `json:"address"`
	Coordinates       Coordinates       `json:"coordinates"`
	Contact           ContactInfo       `json:"contact"`
	OperatingHours    OperatingHours    `json:"operatingHours"`
	CurrentWaitTime   int               `json:"currentWaitTime,omitempty"`
	WalkInAccepted    bool              `json:"walkInAccepted"`
	ServicesOffered   []string          `json:"servicesOffered"`
	Pricing           UrgentCarePricing `json:"pricing"`
	AcceptedInsurance []string          `json:"acceptedInsurance"`
	Ratings           QualityRatings    `json:"ratings"`
}

type UrgentCarePricing struct {
	VisitFee float64 `json:"visitFee"`
	XrayFee  float64 `json:"xrayFee,omitempty"`
	LabFee   float64 `json:"labFee,omitempty"`
}

// EmergencyServices is the combined payload for an emergency search.
type EmergencyServices struct {
	EmergencyRooms []EmergencyRoom `json:"emergencyRooms"`
	UrgentCare     []UrgentCare    `json:"urgentCare"`
}

// ==========================================
// Clinical Trials
// ==========================================

type ClinicalTrial struct {
	ID                      string              `json:"id"`
	NCTID                   string              `json:"nctId"`
	Title                   string              `json:"title"`
	BriefSummary            string              `json:"briefSummary"`
	DetailedDescription     string              `json:"detailedDescription,omitempty"`
	Status                  string              `json:"status"` // recruiting, not_yet_recruiting, active_not_recruiting, completed, suspended, terminated, withdrawn
	Phase                   string              `json:"phase"`
	StudyType               string              `json:"studyType"` // interventional, observational
	Conditions              []string            `json:"conditions"`
	Interventions           []TrialIntervention `json:"interventions"`
	Eligibility             TrialEligibility    `json:"eligibility"`
	Locations               []TrialLocation     `json:"locations"`
	Sponsor                 string              `json:"sponsor"`
	Compensation            *TrialCompensation  `json:"compensation,omitempty"`
	StartDate               string              `json:"startDate"`
	EstimatedCompletionDate string              `json:"estimatedCompletionDate,omitempty"`
	Enrollment              TrialEnrollment     `json:"enrollment"`
	ContactInfo             ContactInfo         `json:"contactInfo"`
	LastUpdated             string              `json:"lastUpdated"`
}

type TrialIntervention struct {
	Type        string `json:"type"` // drug, device, biological, procedure, behavioral, other
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type TrialEligibility struct {
	Gender            string   `json:"gender"` // all, male, female
	MinAge            int      `json:"minAge"`
	MaxAge            int      `json:"maxAge"`
	HealthyVolunteers bool     `json:"healthyVolunteers"`
	Criteria          []string `json:"criteria"`
}

type TrialLocation struct {
	Facility     string `json:"facility"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Status       string `json:"status"`
	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

type TrialCompensation struct {
	Amount              float64 `json:"amount,omitempty"`
	Frequency           string  `json:"frequency,omitempty"`
	Description         string  `json:"description"`
	TravelReimbursement bool    `json:"travelReimbursement"`
}

type TrialEnrollment struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

// ==========================================
// Medical Tourism
// ==========================================

type MedicalTourismDestination struct {
	ID                string                  `json:"id"`
	Country           string                  `json:"country"`
	City              string                  `json:"city"`
	Hospitals         []InternationalHospital `json:"hospitals"`
	PopularProcedures []TourismProcedure      `json:"popularProcedures"`
	AverageSavings    float64                 `json:"averageSavings"` // percentage vs US
	TravelInfo        TravelInfo              `json:"travelInfo"`
	CostOfLiving      CostOfLivingData        `json:"costOfLiving"`
	VisaRequirements  VisaInfo                `json:"visaRequirements"`
	LanguagesSpoken   []string                `json:"languagesSpoken"`
	QualityIndicators TourismQuality          `json:"qualityIndicators"`
}

type InternationalHospital struct {
	ID                           string          `json:"id"`
	Name                         string          `json:"name"`
	Address                      Address         `json:"address"`
	Accreditations               []Accreditation `json:"accreditations"`
	Specialties                  []string        `json:"specialties"`
	InternationalPatientServices bool            `json:"internationalPatientServices"`
	InterpreterServices          []string        `json:"interpreterServices"`
	Website                      string          `json:"website"`
	Ratings                      QualityRatings  `json:"ratings"`
}

type TourismProcedure struct {
	ProcedureName     string  `json:"procedureName"`
	AverageCostLocal  float64 `json:"averageCostLocal"`
	AverageCostUS     float64 `json:"averageCostUS"`
	SavingsPercentage float64 `json:"savingsPercentage"`
	RecoveryTimeWeeks int     `json:"recoveryTimeWeeks"`
	HospitalStayDays  int     `json:"hospitalStayDays"`
}

type TravelInfo struct {
	FlightEstimate        PriceRange `json:"flightEstimate"`
	FlightDurationHours   float64    `json:"flightDurationHours"`
	AccommodationPerNight PriceRange `json:"accommodationPerNight"`
	LocalTransportDaily   float64    `json:"localTransportDaily"`
	MealCostDaily         float64    `json:"mealCostDaily"`
	RecommendedStayDays   int        `json:"recommendedStayDays"`
}

type CostOfLivingData struct {
	Index           float64 `json:"index"` // relative to US = 100
	MealCostAverage float64 `json:"mealCostAverage"`
	PublicTransport float64 `json:"publicTransport"`
	Taxi            float64 `json:"taxi"`
	Currency        string  `json:"currency"`
	ExchangeRate    float64 `json:"exchangeRate"`
}

type VisaInfo struct {
	Required            bool   `json:"required"`
	Type                string `json:"type,omitempty"`
	ProcessingTimeDays  int    `json:"processingTimeDays,omitempty"`
	MedicalVisaAvailable bool  `json:"medicalVisaAvailable,omitempty"`
	EVisaAvailable      bool   `json:"eVisaAvailable,omitempty"`
}

type TourismQuality struct {
	JCIAccreditedHospitals int `json:"jciAccreditedHospitals"`
	MedicalTourismRanking  int `json:"medicalTourismRanking,omitempty"`
}

// TravelCostBreakdown itemizes the full cost of a medical-tourism trip.
type TravelCostBreakdown struct {
	Flights       PriceRange `json:"flights"`
	Accommodation float64    `json:"accommodation"`
	Meals         float64    `json:"meals"`
	Transport     float64    `json:"transport"`
	Total         PriceRange `json:"total"`
}

// TourismCostResult pairs a destination with its computed trip cost.
type TourismCostResult struct {
	Destination MedicalTourismDestination `json:"destination"`
	TravelCosts TravelCostBreakdown       `json:"travelCosts"`
}

// ==========================================
// Insurance
// ==========================================

type InsurancePlan struct {
	ID             string        `json:"id"`
	CarrierID      string        `json:"carrierId"`
	CarrierName    string        `json:"carrierName"`
	PlanName       string        `json:"planName"`
	PlanType       string        `json:"planType"` // HMO, PPO, EPO, POS, HDHP, Catastrophic
	MetalLevel     string        `json:"metalLevel,omitempty"`
	Premium        CoverageTier  `json:"premium"`
	Deductible     CoverageTier  `json:"deductible"`
	OutOfPocketMax CoverageTier  `json:"outOfPocketMax"`
	Copays         PlanCopays    `json:"copays"`
	Coinsurance    float64       `json:"coinsurance"` // percentage
	HSAEligible    bool          `json:"hsaEligible"`
	NetworkSize    int           `json:"networkSize"`
	Rating         float64       `json:"rating,omitempty"`
	StateAvailable []string      `json:"stateAvailable"`
}

type CoverageTier struct {
	Individual float64 `json:"individual"`
	Family     float64 `json:"family"`
}

type PlanCopays struct {
	PrimaryCare   float64 `json:"primaryCare"`
	Specialist    float64 `json:"specialist"`
	UrgentCare    float64 `json:"urgentCare"`
	EmergencyRoom float64 `json:"emergencyRoom"`
	GenericDrug   float64 `json:"genericDrug"`
	BrandDrug     float64 `json:"brandDrug"`
}

// ==========================================
// Wearables & Health Metrics
// ==========================================

// SupportedDevice describes a wearable integration the sync endpoint accepts.
type SupportedDevice struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Platform string   `json:"platform"`
	Metrics  []string `json:"metrics"`
	AuthType string   `json:"authType"`
}

// SupportedDevices is the static catalog of wearable integrations. The IDs
// double as the valid deviceType values for sync requests.
func SupportedDevices() []SupportedDevice {
	return []SupportedDevice{
		{ID: "apple_health", Name: "Apple Health", Platform: "iOS", Metrics: []string{"steps", "heartRate", "sleep", "activeMinutes", "caloriesBurned"}, AuthType: "healthkit"},
		{ID: "google_fit", Name: "Google Fit", Platform: "Android", Metrics: []string{"steps", "heartRate", "sleep", "activeMinutes", "caloriesBurned"}, AuthType: "oauth2"},
		{ID: "fitbit", Name: "Fitbit", Platform: "Cross-platform", Metrics: []string{"steps", "heartRate", "sleep", "activeMinutes", "caloriesBurned", "weight"}, AuthType: "oauth2"},
		{ID: "garmin", Name: "Garmin", Platform: "Cross-platform", Metrics: []string{"steps", "heartRate", "sleep", "activeMinutes", "caloriesBurned", "stress"}, AuthType: "oauth2"},
		{ID: "oura", Name: "Oura Ring", Platform: "Cross-platform", Metrics: []string{"sleep", "heartRate", "readiness", "activity"}, AuthType: "oauth2"},
		{ID: "withings", Name: "Withings", Platform: "Cross-platform", Metrics: []string{"weight", "bloodPressure", "sleep", "steps"}, AuthType: "oauth2"},
	}
}

// IsSupportedDevice reports whether deviceType is in the catalog.
func IsSupportedDevice(deviceType string) bool {
	for _, d := range SupportedDevices() {
		if d.ID == deviceType {
			return true
		}
	}
	return false
}

type HealthMetrics struct {
	UserID           string                `json:"userId"`
	Date             string                `json:"date"`
	HeartRate        *VitalReading         `json:"heartRate,omitempty"`
	BloodPressure    *BloodPressureReading `json:"bloodPressure,omitempty"`
	BloodGlucose     *GlucoseReading       `json:"bloodGlucose,omitempty"`
	Steps            int                   `json:"steps,omitempty"`
	ActiveMinutes    int                   `json:"activeMinutes,omitempty"`
	CaloriesBurned   int                   `json:"caloriesBurned,omitempty"`
	Sleep            *SleepData            `json:"sleep,omitempty"`
	Weight           float64               `json:"weight,omitempty"`
	BodyFat          float64               `json:"bodyFat,omitempty"`
	OxygenSaturation float64               `json:"oxygenSaturation,omitempty"`
	RespiratoryRate  float64               `json:"respiratoryRate,omitempty"`
	Temperature      float64               `json:"temperature,omitempty"`
	Source           string                `json:"source"`
}

type VitalReading struct {
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Timestamp string  `json:"timestamp"`
	Context   string  `json:"context,omitempty"` // resting, active, sleeping
}

type BloodPressureReading struct {
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Pulse     int    `json:"pulse"`
	Timestamp string `json:"timestamp"`
}

type GlucoseReading struct {
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"` // mg/dL, mmol/L
	Timestamp   string  `json:"timestamp"`
	MealContext string  `json:"mealContext,omitempty"`
}

type SleepData struct {
	TotalMinutes     int     `json:"totalMinutes"`
	DeepSleepMinutes int     `json:"deepSleepMinutes"`
	LightSleepMinutes int    `json:"lightSleepMinutes"`
	REMSleepMinutes  int     `json:"remSleepMinutes"`
	AwakeMinutes     int     `json:"awakeMinutes"`
	SleepScore       float64 `json:"sleepScore,omitempty"`
	Bedtime          string  `json:"bedtime"`
	WakeTime         string  `json:"wakeTime"`
}
