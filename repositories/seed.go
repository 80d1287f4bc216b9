package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pskpp/festival/models"
)

// Seed is the initial site content, read from a YAML file.
type Seed struct {
	Events   []models.Event         `yaml:"events"`
	Theme    *models.Theme          `yaml:"theme"`
	About    *models.AboutContent   `yaml:"about"`
	Contact  *models.ContactContent `yaml:"contact"`
	Footer   *models.FooterContent  `yaml:"footer"`
	Hero     *models.HeroBackground `yaml:"hero"`
	Sponsors []models.Sponsor       `yaml:"sponsors"`
	Gallery  []models.GalleryItem   `yaml:"gallery"`
	Links    []models.ManagedLink   `yaml:"links"`
	Profile  *models.AdminProfile   `yaml:"admin_profile"`
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a seed document. Unknown fields are rejected so that typos
// in hand-written seed files do not go unnoticed.
func ParseSeed(data []byte) (*Seed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if err := seed.validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// validatable is a seeded document that checks its own fields.
type validatable interface {
	Validate() error
}

type seededItem interface {
	Keyed
	validatable
}

// validateItems checks every item of a seeded collection and that ids are
// present and unique.
func validateItems[T seededItem](key string, items []T) error {
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		id := item.Key()
		if id == "" {
			return fmt.Errorf("seed %s #%d has no id", key, i+1)
		}
		if seen[id] {
			return fmt.Errorf("seed %s id %q is duplicated", key, id)
		}
		seen[id] = true
		if err := item.Validate(); err != nil {
			return fmt.Errorf("seed %s %q: %w", key, id, err)
		}
	}
	return nil
}

func (s *Seed) validate() error {
	if err := validateItems(KeyEvents, s.Events); err != nil {
		return err
	}
	if err := validateItems(KeySponsors, s.Sponsors); err != nil {
		return err
	}
	if err := validateItems(KeyGallery, s.Gallery); err != nil {
		return err
	}
	if err := validateItems(KeyLinks, s.Links); err != nil {
		return err
	}

	docs := []struct {
		key string
		doc validatable
		set bool
	}{
		{KeyTheme, s.Theme, s.Theme != nil},
		{KeyAbout, s.About, s.About != nil},
		{KeyContact, s.Contact, s.Contact != nil},
		{KeyFooter, s.Footer, s.Footer != nil},
		{KeyHero, s.Hero, s.Hero != nil},
		{KeyProfile, s.Profile, s.Profile != nil},
	}
	for _, d := range docs {
		if !d.set {
			continue
		}
		if err := d.doc.Validate(); err != nil {
			return fmt.Errorf("seed %s: %w", d.key, err)
		}
	}
	return nil
}

// SeedSummary counts what a seed file holds, per document key.
type SeedSummary map[string]int

func (s *Seed) Summary() SeedSummary {
	count := func(present bool) int {
		if present {
			return 1
		}
		return 0
	}
	return SeedSummary{
		KeyEvents:   len(s.Events),
		KeyTheme:    count(s.Theme != nil),
		KeyAbout:    count(s.About != nil),
		KeyContact:  count(s.Contact != nil),
		KeyFooter:   count(s.Footer != nil),
		KeyHero:     count(s.Hero != nil),
		KeySponsors: len(s.Sponsors),
		KeyGallery:  len(s.Gallery),
		KeyLinks:    len(s.Links),
		KeyProfile:  count(s.Profile != nil),
	}
}

// ApplySeed writes the seeded documents. Documents that already exist are left
// alone unless overwrite is set. It returns the keys that were written.
func ApplySeed(ctx context.Context, store DocumentStore, seed *Seed, overwrite bool) ([]string, error) {
	type entry struct {
		key   string
		value any
		set   bool
	}
	entries := []entry{
		{KeyEvents, seed.Events, seed.Events != nil},
		{KeyTheme, seed.Theme, seed.Theme != nil},
		{KeyAbout, seed.About, seed.About != nil},
		{KeyContact, seed.Contact, seed.Contact != nil},
		{KeyFooter, seed.Footer, seed.Footer != nil},
		{KeyHero, seed.Hero, seed.Hero != nil},
		{KeySponsors, seed.Sponsors, seed.Sponsors != nil},
		{KeyGallery, seed.Gallery, seed.Gallery != nil},
		{KeyLinks, seed.Links, seed.Links != nil},
		{KeyProfile, seed.Profile, seed.Profile != nil},
	}

	var written []string
	for _, e := range entries {
		if !e.set {
			continue
		}
		if !overwrite {
			_, err := store.Load(ctx, e.key)
			if err == nil {
				continue
			}
			if !errors.Is(err, ErrDocumentNotFound) {
				return written, err
			}
		}
		if err := saveDocument(ctx, store, e.key, e.value); err != nil {
			return written, err
		}
		written = append(written, e.key)
	}
	return written, nil
}
