package routes

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/buswatch/buswatch/pkg/transit"
	"github.com/gofiber/fiber/v2"
)

type stubRouteStore struct {
	routes []*transit.Route
}

func (s stubRouteStore) Get(ctx context.Context, identifier string) (*transit.Route, error) {
	for _, route := range s.routes {
		if route.PrimaryIdentifier == identifier {
			return route, nil
		}
	}
	return nil, nil
}

func (s stubRouteStore) List(ctx context.Context) ([]*transit.Route, error) {
	return s.routes, nil
}

type stubStopStore struct {
	stops map[string]*transit.Stop
}

func (s stubStopStore) Get(ctx context.Context, identifier string) (*transit.Stop, error) {
	return s.stops[identifier], nil
}

func newRoutesTestApp(routeStore stubRouteStore, stopStore stubStopStore) *fiber.App {
	app := fiber.New()
	RoutesRouter(app.Group("/routes"), routeStore, stopStore)
	return app
}

func TestListRoutes(t *testing.T) {
	app := newRoutesTestApp(stubRouteStore{routes: []*transit.Route{
		{PrimaryIdentifier: "94B-O", Name: "94B", Direction: "Outbound"},
		{PrimaryIdentifier: "26A-I", Name: "26A", Direction: "Inbound"},
	}}, stubStopStore{})

	response, err := app.Test(httptest.NewRequest("GET", "/routes/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", response.StatusCode, fiber.StatusOK)
	}

	var body []map[string]any
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		t.Fatalf("failed decoding response: %v", err)
	}

	if len(body) != 2 {
		t.Fatalf("got %d routes, want 2", len(body))
	}
	if body[0]["id"] != "94B-O" {
		t.Errorf("first route id = %v, want 94B-O", body[0]["id"])
	}
}

func TestListRoutesEmpty(t *testing.T) {
	app := newRoutesTestApp(stubRouteStore{}, stubStopStore{})

	response, err := app.Test(httptest.NewRequest("GET", "/routes/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if response.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want %d", response.StatusCode, fiber.StatusNotFound)
	}
}

func TestGetStopsPerRoute(t *testing.T) {
	routeStore := stubRouteStore{routes: []*transit.Route{
		{
			PrimaryIdentifier: "94B-O",
			Stops: []transit.RouteStop{
				{StopRef: "700000015001", Sequence: 1},
				{StopRef: "700000015099", Sequence: 2},
			},
		},
	}}
	stopStore := stubStopStore{stops: map[string]*transit.Stop{
		"700000015001": {PrimaryIdentifier: "700000015001", Name: "City Hall"},
	}}

	app := newRoutesTestApp(routeStore, stopStore)

	response, err := app.Test(httptest.NewRequest("GET", "/routes/94B-O/stops", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", response.StatusCode, fiber.StatusOK)
	}

	var body []map[string]any
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		t.Fatalf("failed decoding response: %v", err)
	}

	if len(body) != 2 {
		t.Fatalf("got %d stops, want 2", len(body))
	}
	if body[0]["name"] != "City Hall" {
		t.Errorf("first stop name = %v, want City Hall", body[0]["name"])
	}
	if _, named := body[1]["name"]; named {
		t.Error("unresolvable stop should omit the name")
	}
}

func TestGetStopsPerRouteUnknownRoute(t *testing.T) {
	app := newRoutesTestApp(stubRouteStore{}, stubStopStore{})

	response, err := app.Test(httptest.NewRequest("GET", "/routes/99X-O/stops", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if response.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want %d", response.StatusCode, fiber.StatusNotFound)
	}
}
