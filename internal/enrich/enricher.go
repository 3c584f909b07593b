// Package enrich synthesizes auxiliary natural-language facts from a
// structured query intent via best-effort external lookups.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"travelrag/internal/domain"
)

const fallbackLine = "No specific trip details were detected. Provide general travel recommendations."

// Enricher builds the tool-context block of the prompt. Every lookup is
// best-effort: an error or empty result falls back to deterministic synthetic
// text so the pipeline never blocks on an unavailable service. Attractions
// alone fall back to a generic suggested-activity line instead of invented
// place names.
type Enricher struct {
	routes      RouteService
	restaurants RestaurantService
	hotels      HotelService
	attractions AttractionService
	logger      *zap.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithRoutes replaces the static route estimator.
func WithRoutes(s RouteService) Option { return func(e *Enricher) { e.routes = s } }

// WithRestaurants replaces the static restaurant lookup.
func WithRestaurants(s RestaurantService) Option { return func(e *Enricher) { e.restaurants = s } }

// WithHotels replaces the static hotel lookup.
func WithHotels(s HotelService) Option { return func(e *Enricher) { e.hotels = s } }

// WithAttractions sets the points-of-interest lookup.
func WithAttractions(s AttractionService) Option { return func(e *Enricher) { e.attractions = s } }

// New creates an Enricher with static fallback services unless overridden.
func New(logger *zap.Logger, opts ...Option) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Enricher{
		routes:      StaticRoute{},
		restaurants: StaticRestaurants{},
		hotels:      StaticHotels{PetFriendly: true},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich produces ordered fact lines joined by newlines. Output is never
// empty: an all-unset intent yields exactly one generic instruction line.
func (e *Enricher) Enrich(ctx context.Context, intent domain.QueryIntent) string {
	var lines []string

	if intent.Origin != nil && intent.Destination != nil {
		lines = append(lines, e.routeLine(ctx, *intent.Origin, *intent.Destination))
	}
	if intent.Destination != nil {
		dest := *intent.Destination
		if intent.Cuisine != nil {
			lines = append(lines, e.restaurantLine(ctx, dest, *intent.Cuisine))
		}
		lines = append(lines, e.attractionLine(ctx, dest))
		if intent.Cuisine == nil {
			lines = append(lines, e.restaurantLine(ctx, dest, ""))
		}
		lines = append(lines, e.hotelLine(ctx, dest))
	}
	if intent.Budget != nil {
		lines = append(lines, fmt.Sprintf("The traveler has a budget of around $%d.", *intent.Budget))
	}
	if intent.Duration != nil {
		lines = append(lines, fmt.Sprintf("The trip should last about %d days.", *intent.Duration))
	}

	if len(lines) == 0 {
		return fallbackLine
	}
	return strings.Join(lines, "\n")
}

func (e *Enricher) routeLine(ctx context.Context, origin, destination string) string {
	if line, err := e.routes.Route(ctx, origin, destination); err == nil && line != "" {
		return line
	} else if err != nil {
		e.logger.Warn("route lookup failed, using synthetic estimate",
			zap.String("origin", origin), zap.String("destination", destination), zap.Error(err))
	}
	line, _ := StaticRoute{}.Route(ctx, origin, destination)
	return line
}

func (e *Enricher) restaurantLine(ctx context.Context, city, cuisine string) string {
	names, err := e.restaurants.Restaurants(ctx, city, cuisine)
	if err != nil || len(names) == 0 {
		if err != nil {
			e.logger.Warn("restaurant lookup failed, using canned suggestions",
				zap.String("city", city), zap.Error(err))
		}
		names, _ = StaticRestaurants{}.Restaurants(ctx, city, cuisine)
	}
	if cuisine != "" {
		return fmt.Sprintf("Recommended %s restaurants in %s: %s", cuisine, city, strings.Join(names, ", "))
	}
	return fmt.Sprintf("Popular restaurants in %s: %s", city, strings.Join(names, ", "))
}

func (e *Enricher) attractionLine(ctx context.Context, city string) string {
	if e.attractions != nil {
		names, err := e.attractions.Attractions(ctx, city)
		if err != nil {
			e.logger.Warn("attractions lookup failed", zap.String("city", city), zap.Error(err))
		}
		if len(names) > 0 {
			return fmt.Sprintf("Top attractions in %s: %s", city, strings.Join(names, ", "))
		}
	}
	return fmt.Sprintf("Suggest well-known attractions and typical activities in %s.", city)
}

func (e *Enricher) hotelLine(ctx context.Context, city string) string {
	names, err := e.hotels.Hotels(ctx, city)
	if err != nil || len(names) == 0 {
		if err != nil {
			e.logger.Warn("hotel lookup failed, using canned suggestions",
				zap.String("city", city), zap.Error(err))
		}
		names, _ = StaticHotels{PetFriendly: true}.Hotels(ctx, city)
	}
	return fmt.Sprintf("Hotel options in %s: %s", city, strings.Join(names, ", "))
}
