// Smoke requester: drives a full order lifecycle against a running instance.
// Needs ADMIN_TOKEN for the status-advance steps; without it they are skipped.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"
)

var baseURL = envOr("BASE_URL", "http://localhost:8080")

func main() {
	email := fmt.Sprintf("smoke-%d@example.com", rand.Intn(1_000_000))

	do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": "smoke-password",
	})

	login := do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": "smoke-password",
	})
	token, _ := login["token"].(string)
	if token == "" {
		fmt.Println("no token issued, aborting")
		os.Exit(1)
	}

	placed := do(http.MethodPost, "/api/orders", token, map[string]any{
		"items": []map[string]any{
			{"name": "Margherita", "quantity": 2, "price": 850},
			{"name": "Cola", "quantity": 1, "price": 120},
		},
	})
	orderID, _ := placed["id"].(string)
	if orderID == "" {
		fmt.Println("order not placed, aborting")
		os.Exit(1)
	}

	do(http.MethodGet, "/api/orders", token, nil)
	do(http.MethodGet, "/api/orders/"+orderID, token, nil)

	if admin := os.Getenv("ADMIN_TOKEN"); admin != "" {
		for _, status := range []string{"preparing", "out_for_delivery", "delivered"} {
			do(http.MethodPut, "/api/orders/"+orderID+"/status", admin, map[string]any{"status": status})
			time.Sleep(100 * time.Millisecond)
		}
		// delivered orders are outside the cancel window, expect 400
		do(http.MethodDelete, "/api/orders/"+orderID, token, nil)
		return
	}

	do(http.MethodDelete, "/api/orders/"+orderID, token, nil)
	// a second cancel should report the order gone
	do(http.MethodDelete, "/api/orders/"+orderID, token, nil)
}

func do(method, path, token string, payload any) map[string]any {
	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		json.NewEncoder(body).Encode(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Println("request error:", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("request error:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	out := make(map[string]any)
	json.NewDecoder(resp.Body).Decode(&out)
	fmt.Println(method, path, "->", resp.Status)
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
