package model

// Service is one bookable treatment. ID is what the form submits, Name is what
// the clinic API stores as serviceName.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMin int    `json:"duration_min"`
}

var ServiceCatalog = []Service{
	{ID: "consultation", Name: "Free Consultation", DurationMin: 30},
	{ID: "body-contouring", Name: "Body Contouring", DurationMin: 60},
	{ID: "cryolipolysis", Name: "Cryolipolysis Fat Freezing", DurationMin: 60},
	{ID: "cavitation", Name: "Ultrasonic Cavitation", DurationMin: 45},
	{ID: "lymphatic-drainage", Name: "Lymphatic Drainage Massage", DurationMin: 60},
	{ID: "cellulite-treatment", Name: "Cellulite Treatment", DurationMin: 45},
	{ID: "skin-tightening", Name: "RF Skin Tightening", DurationMin: 45},
	{ID: "ems-sculpting", Name: "EMS Muscle Sculpting", DurationMin: 30},
}

func LookupService(id string) (Service, bool) {
	for _, s := range ServiceCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceIDs returns the catalog identifiers, used by validator oneof tags.
func ServiceIDs() []string {
	ids := make([]string, 0, len(ServiceCatalog))
	for _, s := range ServiceCatalog {
		ids = append(ids, s.ID)
	}
	return ids
}
