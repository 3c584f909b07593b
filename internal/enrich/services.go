package enrich

import (
	"context"
	"fmt"
)

// RouteService estimates travel between two places.
type RouteService interface {
	Route(ctx context.Context, origin, destination string) (string, error)
}

// RestaurantService looks up restaurants in a city, optionally by cuisine.
type RestaurantService interface {
	Restaurants(ctx context.Context, city, cuisine string) ([]string, error)
}

// HotelService looks up lodging options in a city.
type HotelService interface {
	Hotels(ctx context.Context, city string) ([]string, error)
}

// AttractionService looks up points of interest in a city. Unlike the other
// lookups it has no synthetic fallback: an empty result stands for "nothing
// found" and the enricher substitutes generic suggested-activity text.
type AttractionService interface {
	Attractions(ctx context.Context, city string) ([]string, error)
}

// StaticRoute answers with a fixed driving estimate. It doubles as the
// deterministic fallback when a real routing service is unavailable.
type StaticRoute struct{}

func (StaticRoute) Route(_ context.Context, origin, destination string) (string, error) {
	return fmt.Sprintf("Driving from %s to %s takes approximately 6 hours and covers 500km.", origin, destination), nil
}

// StaticRestaurants answers with canned restaurant names.
type StaticRestaurants struct{}

func (StaticRestaurants) Restaurants(_ context.Context, _ string, cuisine string) ([]string, error) {
	if cuisine != "" {
		return []string{cuisine + " Delight", "Authentic " + cuisine + " Kitchen"}, nil
	}
	return []string{"Gourmet Bistro", "Family Diner", "Healthy Greens"}, nil
}

// StaticHotels answers with canned city-branded hotel names.
type StaticHotels struct {
	PetFriendly bool
}

func (s StaticHotels) Hotels(_ context.Context, city string) ([]string, error) {
	hotels := []string{city + " Inn", city + " Grand Hotel", city + " Stay & Go"}
	if s.PetFriendly {
		for i := range hotels {
			hotels[i] += " (Pet Friendly)"
		}
	}
	return hotels, nil
}
