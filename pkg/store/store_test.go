package store

import (
	"context"
	"testing"
	"time"

	"github.com/orcalab/speed/pkg/describe"
	"github.com/orcalab/speed/pkg/errors"
)

func testDesc(n int) *describe.Description {
	return &describe.Description{
		NTotal: n,
		NPop:   map[string]int{"n_exc": n},
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, err := s.Put(ctx, "wta", testDesc(50))
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Put should assign an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Put should set CreatedAt")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "wta" || got.Description.NTotal != 50 {
		t.Errorf("Get = %+v", got)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodeDescriptionNotFound) {
		t.Errorf("error code = %v, want DESCRIPTION_NOT_FOUND", errors.GetCode(err))
	}
}

func TestMemoryStoreList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, _ := s.Put(ctx, "first", testDesc(1))
	// List orders by creation time, newest first
	second, _ := s.Put(ctx, "second", testDesc(2))
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List returned %d records, want 2", len(records))
	}
	if records[0].Name != "second" {
		t.Errorf("List order = [%s, %s], want newest first", records[0].Name, records[1].Name)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, _ := s.Put(ctx, "doomed", testDesc(1))
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); err == nil {
		t.Error("deleted record should be gone")
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, errors.ErrCodeDescriptionNotFound) {
		t.Errorf("double delete error code = %v, want DESCRIPTION_NOT_FOUND", errors.GetCode(err))
	}
}
