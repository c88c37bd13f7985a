package authbackend

import (
	"context"
	"errors"
	"testing"
)

func TestStaticCredentialStore(t *testing.T) {
	store := NewStaticCredentialStore(map[string]string{"alice": "hunter2"})

	pw, err := store.PasswordFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("password for alice: %v", err)
	}
	if pw != "hunter2" {
		t.Fatalf("password = %q, want hunter2", pw)
	}

	_, err = store.PasswordFor(context.Background(), "bob")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	store.Set("bob", "swordfish")
	pw, err = store.PasswordFor(context.Background(), "bob")
	if err != nil {
		t.Fatalf("password for bob: %v", err)
	}
	if pw != "swordfish" {
		t.Fatalf("password = %q, want swordfish", pw)
	}
}

func TestStaticCredentialStoreCopiesInput(t *testing.T) {
	seed := map[string]string{"alice": "hunter2"}
	store := NewStaticCredentialStore(seed)

	seed["alice"] = "mutated"

	pw, err := store.PasswordFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("password for alice: %v", err)
	}
	if pw != "hunter2" {
		t.Fatalf("password = %q, want hunter2 (input mutation leaked in)", pw)
	}
}

func TestStaticSecretResolver(t *testing.T) {
	resolver := NewStaticSecretResolver(map[string]string{"10.0.0.1": "s3cr3t"})

	secret, err := resolver.SecretFor("10.0.0.1")
	if err != nil {
		t.Fatalf("secret for 10.0.0.1: %v", err)
	}
	if secret != "s3cr3t" {
		t.Fatalf("secret = %q, want s3cr3t", secret)
	}

	_, err = resolver.SecretFor("10.0.0.2")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
