package registry

import (
	"errors"
	"io"
	"testing"
)

func TestProgressReader(t *testing.T) {
	t.Run("reports cumulative bytes per read", func(t *testing.T) {
		type call struct{ transferred, total int64 }
		var calls []call

		r := newProgressReader([]byte("hello"), func(transferred, total int64) {
			calls = append(calls, call{transferred, total})
		})

		buf := make([]byte, 2)
		var got []byte
		for {
			n, err := r.Read(buf)
			got = append(got, buf[:n]...)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
		}

		if string(got) != "hello" {
			t.Errorf("read %q, want %q", got, "hello")
		}

		var prev int64
		for i, c := range calls {
			if c.total != 5 {
				t.Fatalf("call %d: total = %d, want 5", i, c.total)
			}
			if c.transferred < prev {
				t.Fatalf("call %d: cumulative count decreased", i)
			}
			prev = c.transferred
		}
		if calls[len(calls)-1].transferred != 5 {
			t.Errorf("final transferred = %d, want 5", calls[len(calls)-1].transferred)
		}
	})

	t.Run("reading past the end", func(t *testing.T) {
		r := newProgressReader([]byte("ab"), nil)

		buf := make([]byte, 8)
		n, err := r.Read(buf)
		if n != 2 || err != nil {
			t.Fatalf("first read: n=%d err=%v", n, err)
		}
		n, err = r.Read(buf)
		if n != 0 || !errors.Is(err, io.EOF) {
			t.Errorf("read past end: n=%d err=%v, want 0, EOF", n, err)
		}
	})

	t.Run("nil observer is fine", func(t *testing.T) {
		r := newProgressReader([]byte("data"), nil)
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(got) != "data" {
			t.Errorf("read %q, want %q", got, "data")
		}
	})

	t.Run("does not mutate the source buffer", func(t *testing.T) {
		src := []byte("immutable")
		r := newProgressReader(src, func(int64, int64) {})
		if _, err := io.ReadAll(r); err != nil {
			t.Fatal(err)
		}
		if string(src) != "immutable" {
			t.Error("source buffer changed")
		}
	})
}
