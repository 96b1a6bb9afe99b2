package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/icco/goshogi"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    config
		wantErr bool
	}{
		{
			name: "dev defaults",
			env:  map[string]string{},
			want: config{Port: "8080", IsDev: true, Secret: "dev-secret-change-me", Host: "localhost:8080"},
		},
		{
			name: "production",
			env: map[string]string{
				"PORT": "9000", "NAT_ENV": "production", "AUTH_JWT_SECRET": "s",
				"DATABASE_URL": "postgres://x", "HOST": "shogi.example", "RULES_FILE": "r.yaml",
			},
			want: config{Port: "9000", DatabaseURL: "postgres://x", Secret: "s", Host: "shogi.example", RulesFile: "r.yaml"},
		},
		{
			name:    "production without secret",
			env:     map[string]string{"NAT_ENV": "production"},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := loadConfig(func(k string) string { return tc.env[k] })
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRules(t *testing.T) {
	book, err := rules("")
	if err != nil {
		t.Fatal(err)
	}
	if len(book) != len(goshogi.BuiltinRules()) {
		t.Errorf("got %d rules", len(book))
	}

	path := filepath.Join(t.TempDir(), "rules.yaml")
	yaml := `
rules:
  - id: 42
    name: tiny
    size: [1, 2]
    players:
      - {name: sente, mark: "+", facing: up}
      - {name: gote, mark: "-", facing: down}
    pieces:
      fu: {name: pawn, moves: [{dx: 0, dy: -1, range: 1}]}
    init:
      ban:
        - {x: 1, y: 2, direction: 0, species: fu}
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	book, err = rules(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := book.Rule(42); err != nil {
		t.Error(err)
	}
	if _, err := book.Rule(goshogi.RuleHirate); err != nil {
		t.Error(err)
	}

	if _, err := rules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
