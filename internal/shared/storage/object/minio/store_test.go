package minio

import (
	"context"
	"strings"
	"testing"
)

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Options{Endpoint: "localhost:9000"}); err == nil {
		t.Fatalf("expected missing bucket to be rejected")
	}
}

func TestInvalidKeysFailBeforeNetwork(t *testing.T) {
	s := &Store{bucket: "documents"}
	ctx := context.Background()
	if _, err := s.Put(ctx, "../x", "text/plain", strings.NewReader("x"), 1); err == nil {
		t.Fatalf("expected Put to reject traversal")
	}
	if err := s.Remove(ctx, ""); err == nil {
		t.Fatalf("expected Remove to reject empty key")
	}
	if _, err := s.Open(ctx, "a/../../b"); err == nil {
		t.Fatalf("expected Open to reject traversal")
	}
}
