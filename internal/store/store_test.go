package store

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	tests := []struct {
		name string
		save func(string) error
		load func() (string, error)
	}{
		{
			name: "cart",
			save: func(v string) error { return st.SaveCart(ctx, "sid", v) },
			load: func() (string, error) { return st.LoadCart(ctx, "sid") },
		},
		{
			name: "display mode",
			save: func(v string) error { return st.SaveDisplayMode(ctx, "sid", v) },
			load: func() (string, error) { return st.LoadDisplayMode(ctx, "sid") },
		},
		{
			name: "theme",
			save: func(v string) error { return st.SaveTheme(ctx, "sid", v) },
			load: func() (string, error) { return st.LoadTheme(ctx, "sid") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Missing keys read back empty without error.
			if v, err := tt.load(); err != nil || v != "" {
				t.Fatalf("load before save = %q, %v; want empty, nil", v, err)
			}

			if err := tt.save("value-1"); err != nil {
				t.Fatalf("save error = %v", err)
			}
			if v, err := tt.load(); err != nil || v != "value-1" {
				t.Fatalf("load = %q, %v; want value-1, nil", v, err)
			}
		})
	}
}

func TestMemoryStoreDeleteCart(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	st.SaveCart(ctx, "sid", "[]")
	if err := st.DeleteCart(ctx, "sid"); err != nil {
		t.Fatalf("DeleteCart() error = %v", err)
	}
	if v, _ := st.LoadCart(ctx, "sid"); v != "" {
		t.Errorf("cart after delete = %q, want empty", v)
	}
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	st.SaveCart(ctx, "sid-1", "cart-1")
	st.SaveCart(ctx, "sid-2", "cart-2")

	if v, _ := st.LoadCart(ctx, "sid-1"); v != "cart-1" {
		t.Errorf("sid-1 cart = %q, want cart-1", v)
	}
	if v, _ := st.LoadCart(ctx, "sid-2"); v != "cart-2" {
		t.Errorf("sid-2 cart = %q, want cart-2", v)
	}
}
