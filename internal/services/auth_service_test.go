package services_test

import (
	"testing"

	"coursiva/internal/repos"
	"coursiva/internal/services"
)

func TestRegister_DuplicateEmailRejectedByStore(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	svc := &services.AuthService{Users: repos.NewUserRepo(db)}

	if _, err := svc.Register("marie@coursiva.test", "Marie", "Passw0rd!", "", ""); err != nil {
		t.Fatal(err)
	}
	// same email, different case: the unique index is case-insensitive
	_, err = svc.Register("MARIE@coursiva.test", "Marie bis", "Passw0rd!", "", "")
	if err != services.ErrEmailTaken {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestLogin_GoodAndBadPassword(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	svc := &services.AuthService{Users: repos.NewUserRepo(db)}

	if _, err := svc.Register("paul@coursiva.test", "Paul", "Passw0rd!", "", ""); err != nil {
		t.Fatal(err)
	}

	u, err := svc.Login("sid-1", "paul@coursiva.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "paul@coursiva.test" {
		t.Fatalf("unexpected user %+v", u)
	}

	cur, err := svc.CurrentUser("sid-1")
	if err != nil || cur.ID != u.ID {
		t.Fatalf("session not bound: %v %+v", err, cur)
	}

	if _, err := svc.Login("sid-2", "paul@coursiva.test", "wrong-pass"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
}
