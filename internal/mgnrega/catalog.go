package mgnrega

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
)

// Catalog maps state display names to the districts tracked for seeding and
// fallback generation.
type Catalog map[string][]string

// States returns the catalog's state names in stable order.
func (c Catalog) States() []string {
	states := make([]string, 0, len(c))
	for s := range c {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// Districts returns the total number of districts across all states.
func (c Catalog) Districts() int {
	n := 0
	for _, ds := range c {
		n += len(ds)
	}
	return n
}

// DefaultCatalog is the built-in sample of high-MGNREGA-activity states and
// their major districts.
func DefaultCatalog() Catalog {
	return Catalog{
		"Bihar":          {"Patna", "Gaya", "Muzaffarpur", "Bhagalpur", "Darbhanga", "Nalanda", "Rohtas", "Purnia", "Begusarai", "Siwan"},
		"Uttar Pradesh":  {"Lucknow", "Kanpur", "Varanasi", "Agra", "Allahabad", "Meerut", "Bareilly", "Aligarh", "Gorakhpur", "Noida"},
		"Madhya Pradesh": {"Bhopal", "Indore", "Jabalpur", "Gwalior", "Ujjain", "Sagar", "Rewa", "Satna", "Dewas", "Ratlam"},
		"Rajasthan":      {"Jaipur", "Jodhpur", "Udaipur", "Kota", "Ajmer", "Bikaner", "Alwar", "Bhilwara", "Sikar", "Bharatpur"},
		"Maharashtra":    {"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad", "Thane", "Solapur", "Kolhapur", "Ahmednagar", "Satara"},
		"West Bengal":    {"Kolkata", "Howrah", "Darjeeling", "Murshidabad", "Malda", "Barddhaman", "Nadia", "North 24 Parganas", "South 24 Parganas", "Hugli"},
		"Odisha":         {"Bhubaneswar", "Cuttack", "Puri", "Rourkela", "Sambalpur", "Berhampur", "Balasore", "Bhadrak", "Angul", "Koraput"},
		"Jharkhand":      {"Ranchi", "Jamshedpur", "Dhanbad", "Bokaro", "Deoghar", "Hazaribagh", "Giridih", "Ramgarh", "Dumka", "Palamu"},
		"Chhattisgarh":   {"Raipur", "Bilaspur", "Durg", "Korba", "Rajnandgaon", "Bhilai", "Jagdalpur", "Raigarh", "Dhamtari", "Mahasamund"},
		"Andhra Pradesh": {"Visakhapatnam", "Vijayawada", "Guntur", "Nellore", "Tirupati", "Kakinada", "Rajahmundry", "Kurnool", "Anantapur", "Kadapa"},
	}
}

// LoadCatalog reads a YAML catalog file mapping state names to district
// lists. Deployments tracking a different set of districts point
// MGNREGA_CATALOG at their own file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("catalog %s contains no states", path)
	}
	return c, nil
}

// ActiveCatalog returns the catalog from MGNREGA_CATALOG when set and
// readable, else the built-in default.
func ActiveCatalog() Catalog {
	path := os.Getenv("MGNREGA_CATALOG")
	if path == "" {
		return DefaultCatalog()
	}
	c, err := LoadCatalog(path)
	if err != nil {
		log.Printf("[mgnrega] falling back to built-in catalog: %v", err)
		return DefaultCatalog()
	}
	return c
}
