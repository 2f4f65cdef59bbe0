package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	tpmsGrpc "liyu1981.xyz/tpms-service/pkg/grpc"
)

var maxTires int = 1000
var tiresPerVehicle int = 4
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient tpmsGrpc.TPMSServiceClient
var token string

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

var tireLabels = []string{"Front Left", "Front Right", "Rear Left", "Rear Right"}

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	token = registerAndLogin()
	fmt.Printf("benchmark user logged in\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = tpmsGrpc.NewTPMSServiceClient(conn)

	fmt.Printf("gRPC client created\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	tireIDs := make([]string, 0, maxTires)
	var tireIDsMu sync.Mutex
	wg := sync.WaitGroup{}
	for i := range maxTires / tiresPerVehicle {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vehicleID := createVehicle(i)
			for _, label := range tireLabels[:tiresPerVehicle] {
				tireID := createTire(vehicleID, label)
				tireIDsMu.Lock()
				tireIDs = append(tireIDs, tireID)
				tireIDsMu.Unlock()
			}
			fmt.Printf("\rcreated tires for vehicle %v", i)
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated %v tires: used time=%v seconds, throughput=%v tire/second\n",
		len(tireIDs), usedTime.Seconds(), float64(len(tireIDs))/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for _, tireID := range tireIDs {
		wg.Add(1)
		go func() {
			doAction(tireID)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v tires: used time=%v seconds, throughput=%v action/second\n",
		len(tireIDs), usedTime.Seconds(), float64(len(tireIDs)*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func postJSON(path string, payload any, auth bool) map[string]any {
	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://%s%s", httpHostPort, path), bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode >= http.StatusBadRequest {
		panic(fmt.Sprintf("POST %s: status=%v, body=%v", path, resp.StatusCode, body))
	}
	return body
}

func registerAndLogin() string {
	email := uuid.NewString() + "@bench.local"
	postJSON("/auth/register", map[string]string{"name": "Benchmark", "email": email, "password": "benchmark"}, false)
	body := postJSON("/auth/login", map[string]string{"email": email, "password": "benchmark"}, false)
	return body["token"].(string)
}

func createVehicle(i int) string {
	body := postJSON("/api/vehicles", map[string]any{"make": "Bench", "model": fmt.Sprintf("Model %d", i), "year": 2020}, true)
	return body["vehicle_id"].(string)
}

func createTire(vehicleID, label string) string {
	body := postJSON("/api/tires", map[string]any{
		"vehicle_id":       vehicleID,
		"label":            label,
		"optimal_pressure": 2.2,
		"pressure_unit":    "bar",
	}, true)
	return body["tire_id"].(string)
}

func grpcContext() context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func doAction(tireID string) {
	actions := []func(){
		genPostReadingAction(tireID),
		genGetReadingsAction(tireID),
		genGetNotificationsAction(),
	}
	actionNames := []string{
		"PostReading",
		"GetReadings",
		"GetNotifications",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for tire %v", actionNames[index], tireID)
		rndMu.Lock()
		pause := time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
		rndMu.Unlock()
		time.Sleep(pause)
	}
}

func genPostReadingAction(tireID string) func() {
	return func() {
		useHttp := flipCoin()

		// spread around the optimum so every alert type shows up
		p := rndFloat64(1.3, 3.0, 2)

		if useHttp {
			jsonData, _ := json.Marshal(map[string]string{
				"pressure_value": fmt.Sprintf("%.2f", p),
				"pressure_unit":  "bar",
			})
			req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("http://%s/api/tires/%s/readings", httpHostPort, tireID), bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
		} else {
			resp, err := grpcClient.AddReading(grpcContext(), &tpmsGrpc.AddReadingRequest{
				TireID:        tireID,
				PressureValue: json.Number(fmt.Sprintf("%.2f", p)),
				PressureUnit:  "bar",
			})
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if !resp.Status.Success {
				fmt.Printf("\nresponse success = false: %v\n", resp.Status)
			}
		}
	}
}

func genGetReadingsAction(tireID string) func() {
	return func() {
		useHttp := flipCoin()

		if useHttp {
			req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("http://%s/api/tires/%s/readings?days=1", httpHostPort, tireID), nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp)
			}
		} else {
			resp, err := grpcClient.GetReadings(grpcContext(), &tpmsGrpc.GetReadingsRequest{TireID: tireID, Days: 1})
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if !resp.Status.Success {
				fmt.Printf("\nresponse success = false: %v\n", resp.Status)
			}
		}
	}
}

func genGetNotificationsAction() func() {
	return func() {
		resp, err := grpcClient.GetNotifications(grpcContext(), &tpmsGrpc.GetNotificationsRequest{Limit: 10})
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		if !resp.Status.Success {
			fmt.Printf("\nresponse success = false: %v\n", resp.Status)
		}
	}
}
