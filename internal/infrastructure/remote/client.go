package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appsync "github.com/ShreyashDhakate/Caton-IMS-sub000/internal/application/sync"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/internal/domain/entity"
	"github.com/ShreyashDhakate/Caton-IMS-sub000/pkg/logger"
)

var _ appsync.RemoteStore = (*Client)(nil)

// Client implementa el puerto RemoteStore contra el almacén documental del
// hospital vía HTTP/JSON. Usa net/http de la stdlib; no requiere librerías de
// terceros. Los payloads laxos del remoto solo se tocan en normalize.go.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el gateway remoto. timeout acota cada llamada individual;
// el backend del hospital puede tardar varios segundos bajo carga.
func NewClient(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// FetchAll descarga todos los medicamentos del tenant y los normaliza. Un
// payload malformado se omite y se cuenta; nunca tumba la descarga completa.
func (c *Client) FetchAll(ctx context.Context, hospitalID string) ([]entity.Medicine, int, error) {
	var wires []wireMedicine
	endpoint := fmt.Sprintf("%s/hospitals/%s/medicines", c.baseURL, url.PathEscape(hospitalID))
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &wires); err != nil {
		return nil, 0, err
	}

	medicines := make([]entity.Medicine, 0, len(wires))
	skipped := 0
	for _, w := range wires {
		m, err := normalize(w, hospitalID)
		if err != nil {
			skipped++
			c.log.Warn().Err(err).Str("name", w.Name).Msg("documento remoto omitido al normalizar")
			continue
		}
		medicines = append(medicines, m)
	}
	return medicines, skipped, nil
}

// Exists consulta si ya hay un documento con ese lote y nombre en el tenant.
func (c *Client) Exists(ctx context.Context, batchNumber, name, hospitalID string) (bool, error) {
	q := url.Values{}
	q.Set("batch_number", batchNumber)
	q.Set("name", name)
	endpoint := fmt.Sprintf("%s/hospitals/%s/medicines/exists?%s",
		c.baseURL, url.PathEscape(hospitalID), q.Encode())

	var out struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// Insert crea el documento remoto.
func (c *Client) Insert(ctx context.Context, m entity.Medicine) error {
	endpoint := fmt.Sprintf("%s/hospitals/%s/medicines", c.baseURL, url.PathEscape(m.HospitalID))
	return c.do(ctx, http.MethodPost, endpoint, toWire(m), nil)
}

// Update reemplaza el documento remoto identificado por el ID local.
func (c *Client) Update(ctx context.Context, m entity.Medicine) error {
	endpoint := fmt.Sprintf("%s/hospitals/%s/medicines/%s",
		c.baseURL, url.PathEscape(m.HospitalID), url.PathEscape(m.ID))
	return c.do(ctx, http.MethodPut, endpoint, toWire(m), nil)
}

// Delete elimina el documento remoto.
func (c *Client) Delete(ctx context.Context, id, hospitalID string) error {
	endpoint := fmt.Sprintf("%s/hospitals/%s/medicines/%s",
		c.baseURL, url.PathEscape(hospitalID), url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// do ejecuta una llamada HTTP/JSON. Los fallos de transporte y los 5xx se
// reportan como ErrRemoteUnavailable (transitorio, reintentable); cualquier
// otro status no-2xx es un error definitivo con extracto del cuerpo.
func (c *Client) do(ctx context.Context, method, endpoint string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remoto: serializar payload: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("remoto: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, ctx.Err())
		}
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20)) // max 4 MB
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d: %s", domain.ErrRemoteUnavailable, resp.StatusCode, excerpt(raw))
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, excerpt(raw))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("remoto: status %d: %s", resp.StatusCode, excerpt(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("remoto: decodificar respuesta: %w", err)
		}
	}
	return nil
}

// excerpt recorta el cuerpo de error para los logs.
func excerpt(raw []byte) string {
	const max = 256
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max] + "…"
	}
	return s
}
