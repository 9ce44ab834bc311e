// Package doctors searches the public NPI registry for providers the
// scheduling flow can book against.
package doctors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SearchParams narrows a registry lookup. Limit is capped by the registry at
// 200; zero means the registry default.
type SearchParams struct {
	PostalCode   string
	Specialty    string
	TaxonomyCode string
	Limit        int
}

// Client queries the NPI registry API.
type Client struct {
	baseURL    string
	version    string
	httpClient *http.Client
}

func NewClient(baseURL, version string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		version:    version,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Registry wire types. Only the fields the Doctor mapping reads.
type registryResponse struct {
	ResultCount int              `json:"result_count"`
	Results     []registryResult `json:"results"`
}

type registryResult struct {
	Number string `json:"number"`
	Basic  struct {
		FirstName        string `json:"first_name"`
		LastName         string `json:"last_name"`
		Credential       string `json:"credential"`
		OrganizationName string `json:"organization_name"`
	} `json:"basic"`
	Addresses []struct {
		AddressPurpose  string `json:"address_purpose"`
		Address1        string `json:"address_1"`
		City            string `json:"city"`
		State           string `json:"state"`
		PostalCode      string `json:"postal_code"`
		TelephoneNumber string `json:"telephone_number"`
	} `json:"addresses"`
	Taxonomies []struct {
		Desc    string `json:"desc"`
		Primary bool   `json:"primary"`
	} `json:"taxonomies"`
}

// Search queries the registry and maps results into Doctors.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Doctor, error) {
	q := url.Values{}
	q.Set("version", c.version)
	if params.PostalCode != "" {
		q.Set("postal_code", params.PostalCode)
	}
	if params.Specialty != "" {
		q.Set("taxonomy_description", params.Specialty)
	}
	if params.TaxonomyCode != "" {
		q.Set("taxonomy_code", params.TaxonomyCode)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	endpoint := c.baseURL + "/api/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var parsed registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding registry response: %w", err)
	}

	doctors := make([]Doctor, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		doctors = append(doctors, mapDoctor(r))
	}
	return doctors, nil
}

func mapDoctor(r registryResult) Doctor {
	d := Doctor{NPI: r.Number, Name: providerName(r)}

	for _, t := range r.Taxonomies {
		if t.Primary && d.Specialty == "" {
			d.Specialty = t.Desc
		} else if d.SubSpecialty == "" {
			d.SubSpecialty = t.Desc
		}
	}
	// Registries sometimes return no primary taxonomy at all.
	if d.Specialty == "" && len(r.Taxonomies) > 0 {
		d.Specialty = r.Taxonomies[0].Desc
	}

	for _, a := range r.Addresses {
		if a.AddressPurpose != "LOCATION" {
			continue
		}
		d.Hospital = r.Basic.OrganizationName
		if d.Hospital == "" {
			d.Hospital = a.Address1
		}
		d.Address = joinAddress(a.Address1, a.City, a.State, a.PostalCode)
		d.Phone = a.TelephoneNumber
		break
	}
	return d
}

func providerName(r registryResult) string {
	if r.Basic.OrganizationName != "" && r.Basic.FirstName == "" {
		return r.Basic.OrganizationName
	}
	name := strings.TrimSpace(r.Basic.FirstName + " " + r.Basic.LastName)
	if r.Basic.Credential != "" {
		name += ", " + r.Basic.Credential
	}
	return name
}

func joinAddress(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
