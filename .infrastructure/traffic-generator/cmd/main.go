package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_generator_requests_total",
		Help: "Запросы к waste-service по маршруту и статусу",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "traffic_generator_request_duration_seconds",
		Help:    "Длительность запроса к waste-service в секундах",
		Buckets: []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
	}, []string{"route"})
)

type target struct {
	route string
	path  func() string
}

// публичные маршруты: ping и трекинг доставки (обычно 404, нагружает rate limiter по IP)
var targets = []target{
	{route: "/ping", path: func() string { return "/ping" }},
	{route: "/deliveries/tracking/{trackingNumber}", path: func() string {
		return fmt.Sprintf("/deliveries/tracking/TRK-%s-%04d", time.Now().UTC().Format("20060102150405"), rand.Intn(10000))
	}},
}

func hit(client *http.Client, baseURL string, t target) {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(t.route).Observe(time.Since(start).Seconds())
	}()

	resp, err := client.Get(baseURL + t.path())
	if err != nil {
		requestsTotal.WithLabelValues(t.route, "error").Inc()
		return
	}
	_ = resp.Body.Close()
	requestsTotal.WithLabelValues(t.route, strconv.Itoa(resp.StatusCode)).Inc()
}

func main() {
	baseURL := os.Getenv("TARGET_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":2112", nil) //nolint:errcheck,gosec // вспомогательный сервер метрик

	client := &http.Client{Timeout: 5 * time.Second}
	for {
		hit(client, baseURL, targets[rand.Intn(len(targets))])
		time.Sleep(time.Duration(50+rand.Intn(450)) * time.Millisecond)
	}
}
