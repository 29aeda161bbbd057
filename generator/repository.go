package generator

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"

	"github.com/cardhelper/cardforge/generator/models"
	"github.com/cardhelper/cardforge/internal/luhn"
)

var ErrConflict = errors.New("conflict")

// Repository logs generated cards and answers uniqueness checks. The
// default backend keeps everything in memory; NewPGRepository persists
// to Postgres. Full PANs are never stored at rest, only an HMAC hash
// plus BIN and last four digits.
type Repository struct {
	mu       sync.RWMutex
	cards    []*models.Card
	panIndex map[string]struct{}

	db      *sql.DB
	hashKey []byte
}

func NewRepository() *Repository {
	return &Repository{panIndex: make(map[string]struct{})}
}

// NewPGRepository constructs a db-backed repository.
func NewPGRepository(db *sql.DB, hashKey []byte) *Repository {
	return &Repository{db: db, hashKey: hashKey}
}

func (r *Repository) hashPAN(pan string) []byte {
	h := hmac.New(sha256.New, r.hashKey)
	h.Write([]byte(pan))
	return h.Sum(nil)
}

// ExistsCardNumber reports whether a number was already handed out.
func (r *Repository) ExistsCardNumber(ctx context.Context, pan string) (bool, error) {
	if r.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		_, ok := r.panIndex[pan]
		return ok, nil
	}
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(1) FROM cardforge.generated_cards WHERE pan_hash=$1`,
		r.hashPAN(pan)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SaveCard records a generated card; ErrConflict when the number is
// already logged.
func (r *Repository) SaveCard(ctx context.Context, card *models.Card) error {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.panIndex[card.Number]; ok {
			return fmt.Errorf("card number exists: %w", ErrConflict)
		}
		r.cards = append(r.cards, card)
		r.panIndex[card.Number] = struct{}{}
		return nil
	}
	bin := card.Number
	if len(bin) > 9 {
		bin = bin[:9]
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO cardforge.generated_cards(pan_hash, bin, last4, brand, expiry_yymm)
        VALUES ($1,$2,$3,$4,$5)
    `, r.hashPAN(card.Number), bin, luhn.LastN(card.Number, 4), card.Brand, card.ExpiryYYMM())
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// Ping returns backend readiness.
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == "23505" {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		return true
	}
	return false
}
