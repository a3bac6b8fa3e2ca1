// Smoke test client for a running simpleserve instance.
package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"strings"
)

func main() {
	base := flag.String("addr", "http://localhost:8080", "Base URL of the server under test")
	flag.Parse()

	path := "/smoke-test?check=1"
	res, err := http.Get(*base + path)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatal(err)
	}

	if res.StatusCode != http.StatusOK {
		log.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(string(body), path) {
		log.Fatalf("body does not echo the request path %s", path)
	}

	log.Println("smoke test passed")
}
