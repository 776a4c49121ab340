// Package answers holds the trivia answer database. It is loaded once at
// startup and never mutated afterwards.
package answers

import (
	"encoding/json"
	"log"
	"os"
	"strings"
)

// RandSource supplies the uniform draw used by PickOne. *rand.Rand satisfies
// it; tests inject a deterministic implementation.
type RandSource interface {
	Intn(n int) int
}

// Store maps an uppercase lookup key to its candidate answers.
type Store struct {
	answers map[string][]string
	rng     RandSource
}

// NewStore builds a store from an already-parsed answer map. Keys are
// normalized to upper case.
func NewStore(answers map[string][]string, rng RandSource) *Store {
	normalized := make(map[string][]string, len(answers))
	for key, candidates := range answers {
		normalized[strings.ToUpper(key)] = candidates
	}
	return &Store{answers: normalized, rng: rng}
}

// LoadStore reads the answer database from a JSON file shaped as
// { "KEY": ["answer", ...], ... }. A missing or malformed file degrades to an
// empty store so the rest of the bot stays operable without trivia data.
func LoadStore(path string, rng RandSource) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("ERROR: Answer database %s not found: %v", path, err)
		return NewStore(nil, rng)
	}

	var answers map[string][]string
	if err := json.Unmarshal(data, &answers); err != nil {
		log.Printf("ERROR: Answer database %s is malformed: %v", path, err)
		return NewStore(nil, rng)
	}

	return NewStore(answers, rng)
}

// Lookup returns the candidate answers for a key, matching case-insensitively.
// The returned slice is empty when the key is absent.
func (s *Store) Lookup(key string) []string {
	return s.answers[strings.ToUpper(key)]
}

// PickOne draws one candidate uniformly at random for the given key. The
// second return value is false when the key is absent or has no candidates.
func (s *Store) PickOne(key string) (string, bool) {
	candidates := s.Lookup(key)
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[s.rng.Intn(len(candidates))], true
}

// Len returns the number of loaded keys.
func (s *Store) Len() int {
	return len(s.answers)
}
