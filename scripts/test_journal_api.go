package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, the agent can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(title string) {
	color.Cyan("\n=== %s ===", title)
}

func check(resp *http.Response, body []byte, err error) {
	if err != nil {
		color.Red("FAILED: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("FAILED: status %d", resp.StatusCode)
		prettyPrint(body)
		os.Exit(1)
	}
	color.Green("OK (status %d)", resp.StatusCode)
	prettyPrint(body)
}

func main() {
	step("Get current session")
	resp, body, err := sendRequest("GET", "/journal/v1/session", nil)
	check(resp, body, err)

	step("Send a message")
	resp, body, err = sendRequest("POST", "/journal/v1/message", map[string]string{
		"content": "I had a hard day",
	})
	check(resp, body, err)

	step("List entries")
	resp, body, err = sendRequest("GET", "/journal/v1/entries", nil)
	check(resp, body, err)

	step("Grouped entries")
	resp, body, err = sendRequest("GET", "/journal/v1/entries/grouped", nil)
	check(resp, body, err)

	step("Filter entries")
	resp, body, err = sendRequest("GET", "/journal/v1/entries?q=hard", nil)
	check(resp, body, err)

	step("Start new entry")
	resp, body, err = sendRequest("POST", "/journal/v1/session/new", nil)
	check(resp, body, err)

	color.Green("\nAll journal API checks passed")
}
