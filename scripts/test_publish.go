//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/flight-telemetry/internal/domain"
	"github.com/flight-telemetry/internal/pkg/geo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type airport struct {
	code     string
	lat, lon float64
}

var airports = map[string]airport{
	"IAD": {"IAD", 38.9531, -77.4565},
	"JFK": {"JFK", 40.6413, -73.7781},
	"ORD": {"ORD", 41.9742, -87.9073},
	"LAX": {"LAX", 33.9416, -118.4085},
}

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	flight := flag.String("flight", "CA101", "flight number")
	from := flag.String("from", "IAD", "departure airport")
	to := flag.String("to", "JFK", "arrival airport")
	steps := flag.Int("steps", 10, "number of positions between airports")
	interval := flag.Duration("interval", time.Second, "delay between positions")
	speed := flag.Float64("speed", 450, "ground speed, mph")
	flag.Parse()

	dep, ok := airports[*from]
	if !ok {
		log.Fatalf("Unknown airport %s", *from)
	}
	arr, ok := airports[*to]
	if !ok {
		log.Fatalf("Unknown airport %s", *to)
	}

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// линейная интерполяция достаточна для демонстрации на коротких перелётах
	for i := 0; i <= *steps; i++ {
		t := float64(i) / float64(*steps)
		lat := dep.lat + (arr.lat-dep.lat)*t
		lon := dep.lon + (arr.lon-dep.lon)*t
		remaining := geo.CalculateDistance(lat, lon, arr.lat, arr.lon)

		event := domain.LocationEvent{
			ID:               uuid.New(),
			FlightNumber:     *flight,
			DepartureAirport: dep.code,
			ArrivalAirport:   arr.code,
			Latitude:         lat,
			Longitude:        lon,
			Speed:            *speed,
			Altitude:         35000,
			RemainingMiles:   remaining,
			RemainingMinutes: int(remaining / *speed * 60),
			ReportedAt:       time.Now().UTC(),
		}

		data, err := json.Marshal(event)
		if err != nil {
			log.Fatalf("Failed to marshal event: %v", err)
		}

		id, err := client.XAdd(ctx, &redis.XAddArgs{
			Stream: domain.StreamFlightTelemetry,
			Values: map[string]interface{}{"data": string(data)},
		}).Result()
		if err != nil {
			log.Fatalf("Failed to publish event: %v", err)
		}

		fmt.Printf("%s  %s  %.4f, %.4f  remaining %.1f mi  no-fly=%v\n",
			id, event.FlightNumber, lat, lon, remaining, geo.IsInNoFlyZone(lat, lon))

		if i < *steps {
			time.Sleep(*interval)
		}
	}

	// Алерты, опубликованные воркером
	alerts, err := client.XRange(ctx, domain.StreamNoFlyAlerts, "-", "+").Result()
	if err != nil {
		log.Fatalf("Failed to read alerts: %v", err)
	}
	fmt.Printf("\n%d alerts in %s\n", len(alerts), domain.StreamNoFlyAlerts)
	for _, msg := range alerts {
		fmt.Printf("  %s  %v\n", msg.ID, msg.Values["data"])
	}
}
