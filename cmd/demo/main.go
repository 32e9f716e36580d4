// Command demo is an interactive terminal client for the CalmMind API.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/calmmind/calmmind/internal/chat"
)

func main() {
	apiURL := envOrDefault("CALMMIND_API_URL", "http://localhost:8080")
	userID := envOrDefault("CALMMIND_USER_ID", "demo-user")

	fmt.Println("CalmMind CLI Demo")
	fmt.Printf("Ensure the API is running at %s before chatting.\n", apiURL)
	fmt.Println("Type 'quit' to exit.")
	fmt.Println()

	client := &http.Client{Timeout: 90 * time.Second}
	scanner := bufio.NewScanner(os.Stdin)
	var context string

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println("\nExiting.")
			return
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if lower := strings.ToLower(message); lower == "quit" || lower == "exit" {
			fmt.Println("Goodbye!")
			return
		}

		result, err := chatOnce(client, apiURL, userID, message, context)
		if err != nil {
			fmt.Printf("[error] Request failed: %v\n", err)
			continue
		}

		fmt.Printf("CalmMind: %s\n\n", result.Reply)
		fmt.Printf("Risk level: %s (score=%.2f, sentiment=%.2f)\n", result.RiskLevel, result.RiskScore, result.Sentiment)
		fmt.Printf("Alerts: %s\n\n", formatAlerts(result.Alerts))

		// Carry the exchange forward so the model sees prior turns
		transcript, _ := json.Marshal(map[string]string{"user": message, "assistant": result.Reply})
		if context != "" {
			context += "\n"
		}
		context += string(transcript)
	}
}

func chatOnce(client *http.Client, apiURL, userID, message, context string) (*chat.Response, error) {
	payload := map[string]string{"user_id": userID, "message": message}
	if context != "" {
		payload["context"] = context
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(apiURL+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result chat.Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

func formatAlerts(alerts []string) string {
	if len(alerts) == 0 {
		return "None"
	}
	return strings.Join(alerts, "; ")
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
