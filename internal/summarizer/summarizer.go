// Package summarizer é o colaborador opaco de geração de resumo do
// evento. Qualquer falha (serviço ausente, erro de rede, resposta
// inválida) degrada para um texto fixo — nunca propaga erro.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/PalcoPro/band-agenda/internal/models"
)

const placeholder = "Resumo indisponível no momento."

type Summarizer interface {
	Summarize(ctx context.Context, ev models.Event, bandName string) string
}

type Client struct {
	endpoint string
	http     *http.Client
}

func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type summarizeRequest struct {
	Event    models.Event `json:"event"`
	BandName string       `json:"band_name"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

func (c *Client) Summarize(ctx context.Context, ev models.Event, bandName string) string {
	if c.endpoint == "" {
		return placeholder
	}

	payload, err := json.Marshal(summarizeRequest{Event: ev, BandName: bandName})
	if err != nil {
		return placeholder
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return placeholder
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("summarizer indisponível: %v", err)
		return placeholder
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return placeholder
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Summary == "" {
		return placeholder
	}
	return out.Summary
}
