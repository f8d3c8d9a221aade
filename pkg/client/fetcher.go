package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Ventanas de caché por defecto: dentro de freshTTL se sirve de caché sin ir
// a la red; pasado evictTTL la entrada se descarta por completo.
const (
	defaultFreshTTL = 30 * time.Second
	defaultEvictTTL = 5 * time.Minute
)

type cacheEntry struct {
	body    []byte
	fetched time.Time
}

// Fetcher capa de lectura autenticada sobre la API: GET con decodificación
// JSON, exactamente un reintento ante fallo y caché TTL por ruta.
type Fetcher struct {
	client   *Client
	freshTTL time.Duration
	evictTTL time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry

	now func() time.Time // inyectable en pruebas
}

// FetcherOptions configuración opcional del fetcher.
type FetcherOptions struct {
	FreshTTL time.Duration
	EvictTTL time.Duration
}

// NewFetcher construye el fetcher sobre un cliente autenticado.
func NewFetcher(c *Client, opts FetcherOptions) *Fetcher {
	f := &Fetcher{
		client:   c,
		freshTTL: opts.FreshTTL,
		evictTTL: opts.EvictTTL,
		cache:    make(map[string]cacheEntry),
		now:      time.Now,
	}
	if f.freshTTL <= 0 {
		f.freshTTL = defaultFreshTTL
	}
	if f.evictTTL <= 0 {
		f.evictTTL = defaultEvictTTL
	}
	return f
}

// Get obtiene path y decodifica la respuesta en out. Dentro de la ventana
// fresca responde de caché; si la petición falla, reintenta exactamente una
// vez antes de devolver el error.
func (f *Fetcher) Get(ctx context.Context, path string, out any) error {
	now := f.now()

	f.mu.Lock()
	f.evictStale(now)
	if e, ok := f.cache[path]; ok && now.Sub(e.fetched) < f.freshTTL {
		body := e.body
		f.mu.Unlock()
		return json.Unmarshal(body, out)
	}
	f.mu.Unlock()

	body, err := f.fetch(ctx, path)
	if err != nil {
		// Un único reintento; un segundo fallo se propaga.
		body, err = f.fetch(ctx, path)
		if err != nil {
			return err
		}
	}

	f.mu.Lock()
	f.cache[path] = cacheEntry{body: body, fetched: f.now()}
	f.mu.Unlock()

	return json.Unmarshal(body, out)
}

// Do ejecuta una mutación autenticada (POST, PUT, DELETE) y decodifica la
// respuesta en out (out puede ser nil). Aplica el mismo reintento único que
// Get y, si la mutación llega al servidor, invalida la entrada de caché de la
// ruta para que la próxima lectura vea el estado nuevo.
func (f *Fetcher) Do(ctx context.Context, method, path string, in, out any) error {
	err := f.client.doJSON(ctx, method, path, f.client.AccessToken(), in, out)
	if err != nil {
		// Un único reintento; un segundo fallo se propaga.
		if err = f.client.doJSON(ctx, method, path, f.client.AccessToken(), in, out); err != nil {
			return err
		}
	}
	f.Invalidate(path)
	return nil
}

// Invalidate elimina una ruta de la caché (p. ej. tras una mutación).
func (f *Fetcher) Invalidate(path string) {
	f.mu.Lock()
	delete(f.cache, path)
	f.mu.Unlock()
}

func (f *Fetcher) fetch(ctx context.Context, path string) ([]byte, error) {
	var raw json.RawMessage
	if err := f.client.doJSON(ctx, http.MethodGet, path, f.client.AccessToken(), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// evictStale descarta entradas más viejas que la ventana de desalojo.
// Se llama con el lock tomado.
func (f *Fetcher) evictStale(now time.Time) {
	for k, e := range f.cache {
		if now.Sub(e.fetched) >= f.evictTTL {
			delete(f.cache, k)
		}
	}
}
