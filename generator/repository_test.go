package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/cardhelper/cardforge/generator/models"
)

func TestRepository_SaveAndExists(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	ok, err := repo.ExistsCardNumber(ctx, "4532015112830366")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("empty repository reports number as used")
	}

	card := &models.Card{
		Number:      "4532015112830366",
		ExpiryMonth: "05",
		ExpiryYear:  "29",
		Brand:       "Visa",
	}
	if err := repo.SaveCard(ctx, card); err != nil {
		t.Fatal(err)
	}

	ok, err = repo.ExistsCardNumber(ctx, "4532015112830366")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("saved number not found")
	}
}

func TestRepository_SaveDuplicate(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	card := &models.Card{Number: "4532015112830366", Brand: "Visa"}
	if err := repo.SaveCard(ctx, card); err != nil {
		t.Fatal(err)
	}
	err := repo.SaveCard(ctx, card)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
}

func TestRepository_Ping(t *testing.T) {
	repo := NewRepository()
	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("in-memory ping failed: %v", err)
	}
}
