// Package server exposes the colour engine over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/MeKo-Tech/polished/internal/color"
	"github.com/MeKo-Tech/polished/internal/expr"
	"github.com/MeKo-Tech/polished/internal/swatch"
)

// SwatchSource is the read side of a swatch book.
type SwatchSource interface {
	Get(name string) (swatch.Swatch, error)
	List() ([]swatch.Swatch, error)
}

// APIConfig configures the colour API.
type APIConfig struct {
	// SwatchDBPath enables the /api/v1/swatches endpoints when set.
	SwatchDBPath string
	CacheControl string
}

// API serves colour operations as JSON.
type API struct {
	swatches     SwatchSource
	closer       func() error
	logger       *slog.Logger
	cacheControl string

	totalRequests atomic.Int64
	totalFailed   atomic.Int64
}

// Status reports request counters.
type Status struct {
	TotalRequests int64 `json:"total_requests"`
	TotalFailed   int64 `json:"total_failed"`
	Swatches      bool  `json:"swatches"`
}

// ColorResponse is the body of a successful colour operation.
type ColorResponse struct {
	Color string     `json:"color"`
	RGB   *color.RGB `json:"rgb,omitempty"`
	HSL   *color.HSL `json:"hsl,omitempty"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewAPI creates the API, opening the swatch book if one is configured.
func NewAPI(cfg APIConfig, logger *slog.Logger) (*API, error) {
	if cfg.CacheControl == "" {
		cfg.CacheControl = "no-store"
	}

	a := &API{logger: logger, cacheControl: cfg.CacheControl}
	if cfg.SwatchDBPath != "" {
		reader, err := swatch.OpenReader(cfg.SwatchDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open swatch book: %w", err)
		}
		a.swatches = reader
		a.closer = reader.Close
	}
	return a, nil
}

// WithSwatches sets the swatch source directly.
func (a *API) WithSwatches(src SwatchSource) *API {
	a.swatches = src
	return a
}

// Close releases the swatch book, if any.
func (a *API) Close() error {
	if a.closer != nil {
		return a.closer()
	}
	return nil
}

// Status returns the current request counters.
func (a *API) Status() Status {
	return Status{
		TotalRequests: a.totalRequests.Load(),
		TotalFailed:   a.totalFailed.Load(),
		Swatches:      a.swatches != nil,
	}
}

// Handler returns the API routes.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/parse", a.handle(func(r *http.Request) (any, error) {
		c, err := color.ParseToRGB(query(r, "color"))
		if err != nil {
			return nil, err
		}
		return ColorResponse{Color: c.String(), RGB: &c}, nil
	}))
	mux.HandleFunc("GET /api/v1/hsl", a.handle(func(r *http.Request) (any, error) {
		h, err := color.ParseToHSL(query(r, "color"))
		if err != nil {
			return nil, err
		}
		return ColorResponse{Color: color.ToHSLString(h), HSL: &h}, nil
	}))
	mux.HandleFunc("GET /api/v1/adjust-hue", a.amountOp("degree", color.AdjustHue[string]))
	mux.HandleFunc("GET /api/v1/saturate", a.amountOp("amount", color.Saturate[string]))
	mux.HandleFunc("GET /api/v1/desaturate", a.amountOp("amount", color.Desaturate[string]))
	mux.HandleFunc("GET /api/v1/lighten", a.amountOp("amount", color.Lighten[string]))
	mux.HandleFunc("GET /api/v1/darken", a.amountOp("amount", color.Darken[string]))
	mux.HandleFunc("GET /api/v1/tint", a.amountOp("percentage", color.Tint[string]))
	mux.HandleFunc("GET /api/v1/shade", a.amountOp("percentage", color.Shade[string]))
	mux.HandleFunc("GET /api/v1/mix", a.handle(func(r *http.Request) (any, error) {
		out, err := color.Mix(query(r, "weight"), color.Text(query(r, "color1")), color.Text(query(r, "color2")))
		if err != nil {
			return nil, err
		}
		return ColorResponse{Color: out}, nil
	}))
	mux.HandleFunc("GET /api/v1/eval", a.handle(func(r *http.Request) (any, error) {
		out, err := expr.Eval(query(r, "expr"))
		if err != nil {
			return nil, err
		}
		return ColorResponse{Color: out}, nil
	}))
	mux.HandleFunc("GET /api/v1/swatches", a.handle(func(r *http.Request) (any, error) {
		if a.swatches == nil {
			return nil, errNoSwatchBook
		}
		list, err := a.swatches.List()
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []swatch.Swatch{}
		}
		return list, nil
	}))
	mux.HandleFunc("GET /api/v1/swatches/{name}", a.handle(func(r *http.Request) (any, error) {
		if a.swatches == nil {
			return nil, errNoSwatchBook
		}
		s, err := a.swatches.Get(r.PathValue("name"))
		if err != nil {
			return nil, err
		}
		return s, nil
	}))
	mux.HandleFunc("GET /api/v1/status", func(w http.ResponseWriter, r *http.Request) {
		a.writeJSON(w, http.StatusOK, a.Status())
	})

	return mux
}

var errNoSwatchBook = errors.New("no swatch book configured")

func query(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}

func (a *API) amountOp(param string, f func(string, color.Input) (string, error)) http.HandlerFunc {
	return a.handle(func(r *http.Request) (any, error) {
		out, err := f(query(r, param), color.Text(query(r, "color")))
		if err != nil {
			return nil, err
		}
		return ColorResponse{Color: out}, nil
	})
}

func (a *API) handle(fn func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.totalRequests.Add(1)

		body, err := fn(r)
		if err != nil {
			a.totalFailed.Add(1)
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				a.log().Error("request failed", "path", r.URL.Path, "error", err)
			} else {
				a.log().Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
			}
			a.writeJSON(w, status, ErrorResponse{Error: err.Error()})
			return
		}
		a.writeJSON(w, http.StatusOK, body)
	}
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		serr *expr.SyntaxError
		aerr *color.AmountError
	)
	switch {
	case errors.Is(err, color.ErrInvalidColor), errors.As(err, &aerr), errors.As(err, &serr):
		return http.StatusBadRequest
	case errors.Is(err, swatch.ErrNotFound), errors.Is(err, errNoSwatchBook):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", a.cacheControl)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log().Error("failed to encode response", "error", err)
	}
}

func (a *API) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}
