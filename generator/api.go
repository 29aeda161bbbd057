package generator

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cardhelper/cardforge/generator/models"
	"github.com/cardhelper/cardforge/internal/authmsg"
)

// API is the HTTP surface of the generator service.
type API struct {
	svc *Service
	cfg *Config
}

func NewAPI(svc *Service, cfg *Config) *API {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &API{svc: svc, cfg: cfg}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/cards", func(r chi.Router) {
		r.Post("/", a.generate)
		r.Get("/bulk", a.bulk)
	})
}

type generateRequest struct {
	BIN      string `json:"bin"`
	Quantity int    `json:"quantity"`
}

// cardView presents a record to the form-filling consumer: cardNumber
// carries the grouped display string.
type cardView struct {
	*models.Card
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
}

type generateResponse struct {
	BatchID string     `json:"batch_id"`
	Cards   []cardView `json:"cards"`
}

func (a *API) generate(w http.ResponseWriter, r *http.Request) {
	req := generateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.BIN == "" {
		req.BIN = a.cfg.DefaultBIN
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if req.Quantity > a.cfg.MaxBatch {
		http.Error(w, fmt.Sprintf("quantity exceeds %d", a.cfg.MaxBatch), http.StatusBadRequest)
		return
	}

	cards, err := a.svc.GenerateBatch(r.Context(), req.BIN, req.Quantity)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	views := make([]cardView, len(cards))
	for i, c := range cards {
		views[i] = cardView{Card: c, CardNumber: c.FormattedNumber, ExpiryDate: c.ExpiryDate()}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(generateResponse{
		BatchID: uuid.New().String(),
		Cards:   views,
	})
}

func (a *API) bulk(w http.ResponseWriter, r *http.Request) {
	bin := r.URL.Query().Get("bin")
	if bin == "" {
		bin = a.cfg.DefaultBIN
	}
	count := 1
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "count must be a positive integer", http.StatusBadRequest)
			return
		}
		count = n
	}
	if count > a.cfg.MaxBatch {
		http.Error(w, fmt.Sprintf("count exceeds %d", a.cfg.MaxBatch), http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "plain", "iso8583":
	default:
		http.Error(w, "unsupported format: "+format, http.StatusBadRequest)
		return
	}

	cards, err := a.svc.GenerateBatch(r.Context(), bin, count)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, c := range cards {
		if format == "iso8583" {
			raw, err := authmsg.Pack(authmsg.Request{
				PAN:        c.Number,
				ExpiryYYMM: c.ExpiryYYMM(),
				Amount:     100,
				Currency:   "840",
			})
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			fmt.Fprintln(w, hex.EncodeToString(raw))
			continue
		}
		fmt.Fprintln(w, c.Line())
	}
}

func writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyBIN):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrBINTooLong):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
