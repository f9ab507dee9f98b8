package settle

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

var testKeys = map[string]string{
	keyProgramID:      "GW2jbvRmaebmETgSLxefGbUtUxwQFCAQZPzmJwj2SEBt",
	keyUser:           "3zPirfHzUbkhy7Mx6vUim7GaMM435ikqYaxjT7HC91Bu",
	keyRealmPDA:       "GfKDdo8uDxTA2HJzj26vixW661SRyQUn1B2tajDacmeE",
	keyUserAccountPDA: "H5fmc3b5ouK9uo5NDWNqP5dhaQSd3MTyGKm9cYvZokeL",
	keySpaceshipPDA:   "F4RccoG5pp6EnHpREeAgN62ZwxnuE5dsR3symBYejWqe",
	"OPPONENT_1":      "Gee1U1iKvXf41b5yEqSy9NaPDgjsGEfs8xAU9c4yDzP2",
	"OPPONENT_2":      "BM67ndbf72EfZ2vaWyXo4Mc1dprXAC4Eq5nMoJ35kbXM",
	"OPPONENT_3":      "6jpePpKqhGaVyiunQqHJWdBVA55CUb2kBqpojGVRZ6xJ",
	"OPPONENT_4":      "2o5Fqfutk86wPLqZ38RcikVswtf75b6FZbYEG5KHFcWq",
	"OPPONENT_5":      "8fgFYvMEXyjgQg8iu9b3B5mByrs6zFiVHBBD8fbnmDZi",
}

// testBlob builds a well-formed container params blob, with overrides for
// the failure cases: an empty override drops the key entirely.
func testBlob(overrides map[string]string) []byte {
	fields := map[string]string{keyFaction: "1"}
	for key, value := range testKeys {
		fields[key] = value
	}
	for key, value := range overrides {
		if value == "" {
			delete(fields, key)
		} else {
			fields[key] = value
		}
	}
	pairs := make([]string, 0, len(fields))
	for key, value := range fields {
		pairs = append(pairs, key+"="+value)
	}
	return []byte(strings.Join(pairs, ","))
}

func TestDecodeContainerParams(t *testing.T) {
	p, err := DecodeContainerParams(testBlob(nil))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if p.ProgramID.String() != testKeys[keyProgramID] {
		t.Fatalf("program id mismatch: %s", p.ProgramID)
	}
	if p.SpaceshipPDA.String() != testKeys[keySpaceshipPDA] {
		t.Fatalf("spaceship mismatch: %s", p.SpaceshipPDA)
	}
	if p.Faction != 1 {
		t.Fatalf("faction = %d, want 1", p.Faction)
	}
	for i := range p.Opponents {
		want := testKeys[fmt.Sprintf("OPPONENT_%d", i+1)]
		if p.Opponents[i].String() != want {
			t.Fatalf("opponent %d mismatch: %s", i+1, p.Opponents[i])
		}
	}
}

func TestDecodeContainerParamsFactionRange(t *testing.T) {
	p, err := DecodeContainerParams(testBlob(map[string]string{keyFaction: "255"}))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if p.Faction != 255 {
		t.Fatalf("faction = %d, want 255", p.Faction)
	}
}

func TestDecodeContainerParamsErrors(t *testing.T) {
	cases := []struct {
		name string
		blob []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not a params blob")},
		{"missing program", testBlob(map[string]string{keyProgramID: ""})},
		{"missing faction", testBlob(map[string]string{keyFaction: ""})},
		{"missing opponent", testBlob(map[string]string{"OPPONENT_3": ""})},
		{"bad pubkey", testBlob(map[string]string{keyUser: "not-base58!"})},
		{"short pubkey", testBlob(map[string]string{keyRealmPDA: "abc"})},
		{"faction overflow", testBlob(map[string]string{keyFaction: "256"})},
		{"faction negative", testBlob(map[string]string{keyFaction: "-1"})},
		{"faction text", testBlob(map[string]string{keyFaction: "red"})},
		{"unknown key", testBlob(map[string]string{"EXTRA": "1"})},
		{"dangling pair", append(testBlob(nil), []byte(",loose")...)},
	}
	for _, tc := range cases {
		if _, err := DecodeContainerParams(tc.blob); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("%s: expected ErrInvalidParams, got %v", tc.name, err)
		}
	}
}

func TestDecodeContainerParamsRejectsDuplicates(t *testing.T) {
	blob := append(testBlob(nil), []byte(","+keyFaction+"=2")...)
	if _, err := DecodeContainerParams(blob); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for duplicate key, got %v", err)
	}
}
