// cmd/simulate/main.go
//
// simulate drives a running server the way the demo frontend does: it lists the
// catalog, builds a quote with a plain product, a colored product and a reordered
// kit, submits it and prints the stored quote.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/quote-manager/internal/models"
	"github.com/javajoker/quote-manager/internal/services"
	"github.com/javajoker/quote-manager/internal/utils"
)

type client struct {
	baseURL string
	http    *http.Client
}

func main() {
	apiURL := flag.String("api", envOr("API_URL", "http://localhost:8000"), "base URL of the quote API")
	seed := flag.Bool("seed", true, "seed the catalog before running")
	flag.Parse()

	cl := &client{baseURL: *apiURL, http: &http.Client{Timeout: 10 * time.Second}}

	if *seed {
		if err := cl.do(http.MethodPost, "/v1/seed", nil, nil); err != nil {
			logrus.WithError(err).Fatal("Seed failed")
		}
	}

	banner("1. Fetch Products")
	var products []models.Product
	if err := cl.do(http.MethodGet, "/v1/products", nil, &products); err != nil {
		logrus.WithError(err).Fatal("Listing products failed")
	}
	for _, p := range products {
		fmt.Printf("ID %d: %s (Price: %s) | Kit: %t | Colors: %v\n", p.ID, p.Name, p.Price, p.IsKit, p.Colors)
	}

	banner("2. Build a Quote")
	req, err := buildQuote(products, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		logrus.WithError(err).Fatal("Catalog is missing demo products")
	}
	body, _ := json.MarshalIndent(req, "", "  ")
	fmt.Printf("Quote to send:\n%s\n", body)

	banner("3. POST /v1/quotes")
	var created services.QuoteCreated
	if err := cl.do(http.MethodPost, "/v1/quotes", req, &created); err != nil {
		logrus.WithError(err).Fatal("Creating quote failed")
	}
	fmt.Printf("Response: id=%d total=%s\n", created.ID, created.Total)

	banner("4. GET /v1/quotes/{id}")
	var quote services.QuoteView
	if err := cl.do(http.MethodGet, fmt.Sprintf("/v1/quotes/%d", created.ID), nil, &quote); err != nil {
		logrus.WithError(err).Fatal("Fetching quote failed")
	}
	out, _ := json.MarshalIndent(quote, "", "  ")
	fmt.Printf("Quote details:\n%s\n", out)
}

// buildQuote picks one plain product, one colored product with a random color
// and quantity 2, and the first kit with its components reversed.
func buildQuote(products []models.Product, rnd *rand.Rand) (*services.CreateQuoteRequest, error) {
	var plain, colored, kit *models.Product
	for i := range products {
		p := &products[i]
		switch {
		case p.IsKit && kit == nil:
			kit = p
		case p.HasColors && len(p.Colors) > 0 && colored == nil:
			colored = p
		case !p.IsKit && !p.HasColors && plain == nil:
			plain = p
		}
	}
	if plain == nil || colored == nil || kit == nil {
		return nil, fmt.Errorf("need a plain product, a colored product and a kit")
	}

	one, two := 1, 2
	color := colored.Colors[rnd.Intn(len(colored.Colors))]
	kitOrder := slices.Clone(kit.KitComponents)
	slices.Reverse(kitOrder)

	return &services.CreateQuoteRequest{
		Customer: fmt.Sprintf("TestUser%d", 1000+rnd.Intn(9000)),
		Items: []services.QuoteItemRequest{
			{ProductID: plain.ID, Quantity: &one},
			{ProductID: colored.ID, Quantity: &two, Color: &color},
			{ProductID: kit.ID, Quantity: &one, KitOrder: kitOrder},
		},
	}, nil
}

func (cl *client) do(method, path string, in, out interface{}) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, cl.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cl.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	envelope := utils.APIResponse{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	if !envelope.Success {
		if envelope.Error != nil {
			return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, envelope.Error.Message)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	return nil
}

func banner(msg string) {
	line := bytes.Repeat([]byte("="), len(msg))
	fmt.Printf("\n%s\n%s\n%s\n", line, msg, line)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
