package catalog

// Destination is a single travel destination record.
type Destination struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Country     string   `json:"country" yaml:"country"`
	Description string   `json:"description" yaml:"description"`
	Image       string   `json:"image" yaml:"image"`
	Category    string   `json:"category" yaml:"category"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Price       string   `json:"price" yaml:"price"`
	Activities  []string `json:"activities" yaml:"activities"`
}

// Agency is a single tour agency record.
type Agency struct {
	ID            int      `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Logo          string   `json:"logo" yaml:"logo"`
	Description   string   `json:"description" yaml:"description"`
	Rating        float64  `json:"rating" yaml:"rating"`
	ReviewCount   int      `json:"review_count" yaml:"review_count"`
	Specialties   []string `json:"specialties" yaml:"specialties"`
	FoundedYear   int      `json:"founded_year" yaml:"founded_year"`
	Locations     []string `json:"locations" yaml:"locations"`
	Website       string   `json:"website" yaml:"website"`
	FeaturedImage string   `json:"featured_image" yaml:"featured_image"`
}

// Headquarters returns the agency's first listed location, or "" when it has none.
func (a Agency) Headquarters() string {
	if len(a.Locations) == 0 {
		return ""
	}
	return a.Locations[0]
}

// Offices returns up to two locations following the headquarters.
func (a Agency) Offices() []string {
	if len(a.Locations) <= 1 {
		return []string{}
	}
	end := min(len(a.Locations), 3)
	return append([]string(nil), a.Locations[1:end]...)
}

// Highlight is a titled blurb on the about page.
type Highlight struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// TeamMember is a person shown on the about page.
type TeamMember struct {
	Name     string `json:"name" yaml:"name"`
	Position string `json:"position" yaml:"position"`
	Image    string `json:"image" yaml:"image"`
}

// About holds the static about page content.
type About struct {
	Name        string       `json:"name" yaml:"name"`
	Tagline     string       `json:"tagline" yaml:"tagline"`
	FoundedYear int          `json:"founded_year" yaml:"founded_year"`
	Story       []string     `json:"story" yaml:"story"`
	Mission     string       `json:"mission" yaml:"mission"`
	Pillars     []Highlight  `json:"pillars" yaml:"pillars"`
	Team        []TeamMember `json:"team" yaml:"team"`
	Reasons     []Highlight  `json:"reasons" yaml:"reasons"`
}

// ItineraryDay is one day of a sample trip itinerary.
type ItineraryDay struct {
	Day         string `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
