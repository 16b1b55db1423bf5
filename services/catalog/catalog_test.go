package catalog

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"hussboss/models"
	"hussboss/services/backend"
	"hussboss/services/backend/backendtest"
)

var sample = []models.ServiceType{
	{ID: 1, Name: "Plumber"},
	{ID: 2, Name: "Electrician"},
	{ID: 3, Name: "AC Repair"},
	{ID: 4, Name: "Painter"},
}

func names(services []models.ServiceType) []string {
	out := make([]string, 0, len(services))
	for _, s := range services {
		out = append(out, s.Name)
	}
	return out
}

func TestFilterServices_TypingPlu(t *testing.T) {
	services := []models.ServiceType{{Name: "Plumber"}, {Name: "Electrician"}}
	got := names(FilterServices(services, "plu"))
	if !reflect.DeepEqual(got, []string{"Plumber"}) {
		t.Errorf("FilterServices(plu) = %v, want [Plumber]", got)
	}
}

func TestFilterServices_MatchesSubset(t *testing.T) {
	queries := []string{"", "p", "P", "ER", "repair", "ac r", "zzz", "i", " "}
	for _, q := range queries {
		got := FilterServices(sample, q)

		var want []models.ServiceType
		for _, s := range sample {
			if strings.Contains(strings.ToLower(s.Name), strings.ToLower(q)) {
				want = append(want, s)
			}
		}
		if len(want) == 0 {
			want = []models.ServiceType{}
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FilterServices(%q) = %v, want %v", q, names(got), names(want))
		}

		again := FilterServices(got, q)
		if !reflect.DeepEqual(again, got) {
			t.Errorf("FilterServices(%q) not idempotent: %v then %v", q, names(got), names(again))
		}
	}
}

func TestFilterServices_StableOrder(t *testing.T) {
	got := names(FilterServices(sample, "e"))
	want := []string{"Plumber", "Electrician", "AC Repair", "Painter"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestFilterLocations(t *testing.T) {
	locations := []models.Location{"Kathmandu", "Lalitpur", "Bhaktapur", "Pokhara"}
	tests := []struct {
		q    string
		want []models.Location
	}{
		{"", locations},
		{"pur", []models.Location{"Lalitpur", "Bhaktapur"}},
		{"KATH", []models.Location{"Kathmandu"}},
		{"chitwan", []models.Location{}},
	}
	for _, tt := range tests {
		if got := FilterLocations(locations, tt.q); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FilterLocations(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestFindService(t *testing.T) {
	cat := &Catalog{Services: sample}

	if s, ok := cat.FindService("  plumber "); !ok || s.ID != 1 {
		t.Errorf("FindService(plumber) = %+v, %v", s, ok)
	}
	if _, ok := cat.FindService("plumb"); ok {
		t.Error("FindService matched a prefix")
	}
	if _, ok := cat.FindService(""); ok {
		t.Error("FindService matched empty name")
	}
	if s, ok := cat.ServiceByID(3); !ok || s.Name != "AC Repair" {
		t.Errorf("ServiceByID(3) = %+v, %v", s, ok)
	}

	var empty *Catalog
	if got := empty.FilterServices("x"); len(got) != 0 {
		t.Errorf("nil catalog filter = %v", got)
	}
}

type prefixIcons struct{}

func (prefixIcons) IconURL(raw string) string { return "cdn:" + raw }

func TestLoader_Load(t *testing.T) {
	srv := backendtest.NewServer(t)
	client := backend.NewHTTPClient(srv.URL, 5*time.Second, nil)

	cat, err := NewLoader(client, prefixIcons{}, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := names(cat.Services); !reflect.DeepEqual(got, []string{"Plumber", "Electrician"}) {
		t.Errorf("services = %v", got)
	}
	if !strings.HasPrefix(cat.Services[0].ImageURL, "cdn:") {
		t.Errorf("icon not rewritten: %q", cat.Services[0].ImageURL)
	}
	if len(cat.Locations) != 3 {
		t.Errorf("locations = %v", cat.Locations)
	}
	if srv.Calls("GET /services") != 1 || srv.Calls("GET /locations") != 1 {
		t.Errorf("calls: services=%d locations=%d, want 1 each", srv.Calls("GET /services"), srv.Calls("GET /locations"))
	}
}

func TestLoader_LoadPartialFailure(t *testing.T) {
	srv := backendtest.NewServer(t)
	srv.FailNext("GET /services", 1)
	client := backend.NewHTTPClient(srv.URL, 5*time.Second, nil)

	cat, err := NewLoader(client, nil, nil).Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(cat.Services) != 0 {
		t.Errorf("services = %v, want empty", cat.Services)
	}
	if len(cat.Locations) != 3 {
		t.Errorf("locations = %v, want all three", cat.Locations)
	}
	if got := cat.FilterServices("plu"); len(got) != 0 {
		t.Errorf("filter on failed list = %v", got)
	}
	// No retry.
	if n := srv.Calls("GET /services"); n != 1 {
		t.Errorf("services calls = %d, want 1", n)
	}
}

func TestDetailsFor(t *testing.T) {
	if d := DetailsFor("AC Repair"); d.Steps[1] != "Gas Refill" {
		t.Errorf("AC Repair = %+v", d)
	}
	if d := DetailsFor("plumber"); len(d.Steps) != 4 || d.Steps[0] != "Leak Detection" {
		t.Errorf("plumber = %+v", d)
	}
	if d := DetailsFor("Gardener"); d.Desc != defaultDetails.Desc {
		t.Errorf("default = %+v", d)
	}
}
