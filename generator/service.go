package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/cardhelper/cardforge/generator/models"
	"github.com/cardhelper/cardforge/internal/bindb"
	"github.com/cardhelper/cardforge/internal/cvv"
	"github.com/cardhelper/cardforge/internal/expiry"
	"github.com/cardhelper/cardforge/internal/luhn"
	"github.com/cardhelper/cardforge/internal/markov"
)

var (
	// ErrEmptyBIN: no digits left after stripping non-digit input.
	ErrEmptyBIN = errors.New("bin is required")
	// ErrBINTooLong: the prefix leaves no room for account digits
	// within the resolved brand length.
	ErrBINTooLong = errors.New("bin too long for brand length")
	// ErrChecksumFault: check-digit arithmetic disagreed with
	// validation after bounded retries. Unreachable by construction.
	ErrChecksumFault = errors.New("checksum consistency fault")
)

const (
	checksumAttempts = 3
	uniqueAttempts   = 5
	tailWindow       = 3
)

// Source supplies the uniform randomness behind digit and expiry
// sampling. The default delegates to the shared math/rand source,
// which is safe for concurrent generation.
type Source interface {
	Float64() float64
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) Intn(n int) int   { return rand.Intn(n) }

// Service synthesizes checksum-valid card records. Each call is an
// independent pipeline; no state carries over between calls.
type Service struct {
	resolver *bindb.Resolver
	model    *markov.Model
	repo     *Repository // optional generated-card log
	cfg      *Config

	src Source
	now func() time.Time
}

func NewService(resolver *bindb.Resolver, repo *Repository, cfg *Config) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	src := Source(globalSource{})
	return &Service{
		resolver: resolver,
		model:    &markov.Model{Roll: src.Float64},
		repo:     repo,
		cfg:      cfg,
		src:      src,
		now:      time.Now,
	}
}

// GenerateCard synthesizes one card record for the given BIN prefix.
func (s *Service) GenerateCard(ctx context.Context, binPrefix string) (*models.Card, error) {
	bin := luhn.Normalize(binPrefix)
	if bin == "" {
		return nil, ErrEmptyBIN
	}

	profile := s.resolver.Resolve(ctx, bin)
	accountLen := profile.Length - len(bin) - 1
	if accountLen <= 0 {
		return nil, fmt.Errorf("bin %s against %s length %d: %w",
			bin, profile.Brand, profile.Length, ErrBINTooLong)
	}

	full, err := s.synthesizeNumber(ctx, bin, profile, accountLen)
	if err != nil {
		return nil, err
	}

	exp := expiry.Generate(s.now(), s.src)
	code := cvv.Derive(full, exp.MMYY(), profile.CVVLength)

	card := &models.Card{
		Number:          full,
		FormattedNumber: formatNumber(full, profile.Brand),
		ExpiryMonth:     exp.MonthString(),
		ExpiryYear:      exp.YearString(),
		CVV:             code,
		Brand:           profile.Brand,
		Bank:            profile.Bank,
		Country:         profile.Country,
		Type:            profile.Type,
	}

	if s.repo != nil {
		if err := s.repo.SaveCard(ctx, card); err != nil && !errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("recording card: %w", err)
		}
	}
	return card, nil
}

// GenerateBatch synthesizes count records for the BIN.
func (s *Service) GenerateBatch(ctx context.Context, binPrefix string, count int) ([]*models.Card, error) {
	if count <= 0 {
		count = 1
	}
	cards := make([]*models.Card, 0, count)
	for i := 0; i < count; i++ {
		card, err := s.GenerateCard(ctx, binPrefix)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// synthesizeNumber builds a checksum-valid number, retrying against the
// card log so the same number is not handed out twice.
func (s *Service) synthesizeNumber(ctx context.Context, bin string, profile bindb.BrandProfile, accountLen int) (string, error) {
	for attempt := 0; attempt < uniqueAttempts; attempt++ {
		full, err := s.buildNumber(bin, profile, accountLen)
		if err != nil {
			return "", err
		}
		if s.repo == nil {
			return full, nil
		}
		used, err := s.repo.ExistsCardNumber(ctx, full)
		if err != nil {
			return "", fmt.Errorf("uniqueness check: %w", err)
		}
		if !used {
			return full, nil
		}
	}
	return "", fmt.Errorf("no unused number for bin %s after %d attempts", bin, uniqueAttempts)
}

func (s *Service) buildNumber(bin string, profile bindb.BrandProfile, accountLen int) (string, error) {
	for attempt := 0; attempt < checksumAttempts; attempt++ {
		partial := bin + s.accountSegment(bin, profile.Bank, accountLen)
		full := partial + luhn.CheckDigit(partial)
		if luhn.Validate(full) {
			return full, nil
		}
	}
	return "", ErrChecksumFault
}

// accountSegment produces length digits: the lead digits biased by the
// BIN tail and bank-name seed, the middle drawn from the transition
// model, and the tail uniform with immediate repeats rejected.
func (s *Service) accountSegment(bin, bank string, length int) string {
	var b strings.Builder
	b.Grow(length)

	lead := 2
	if length < lead {
		lead = length
	}
	seed := (binTail(bin) + bankSeed(bank)) % 100
	for i := 0; i < lead; i++ {
		lo := seed % 7 // window [lo, lo+3] stays inside 0..9
		b.WriteByte(digitByte(lo + s.src.Intn(4)))
		seed /= 10
	}

	tail := tailWindow
	if length < tail {
		tail = length
	}
	for b.Len() < length-tail {
		b.WriteByte(digitByte(s.model.NextDigit(b.String(), bin)))
	}

	seg := b.String()
	for len(seg) < length {
		d := digitByte(s.src.Intn(10))
		if len(seg) > 0 && d == seg[len(seg)-1] {
			continue // redraw on immediate repetition
		}
		seg += string(d)
	}
	return seg
}

func binTail(bin string) int {
	v, _ := strconv.Atoi(luhn.LastN(bin, 4))
	return v
}

// bankSeed folds a bank name into 0..99 with a rolling multiply-shift
// hash over its character codes.
func bankSeed(name string) int {
	if name == "" || name == "Unknown" {
		return 0
	}
	h := 0
	for _, r := range name {
		h = h<<5 - h + int(r)
	}
	if h < 0 {
		h = -h
	}
	return h % 100
}

func digitByte(d int) byte {
	return byte('0' + d)
}

// formatNumber groups digits for display: 4-6-5 for American Express,
// 4-digit groups otherwise.
func formatNumber(num, brand string) string {
	if brand == "American Express" && len(num) == 15 {
		return num[:4] + " " + num[4:10] + " " + num[10:]
	}
	var groups []string
	for i := 0; i < len(num); i += 4 {
		end := i + 4
		if end > len(num) {
			end = len(num)
		}
		groups = append(groups, num[i:end])
	}
	return strings.Join(groups, " ")
}
