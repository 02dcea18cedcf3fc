package scene

import (
	"github.com/matzehuels/tether/pkg/errors"
)

// Validate checks the whole scene: element geometry, unique identifiers,
// link options and that every link refers to a declared element.
func (s *Scene) Validate() error {
	if err := s.ValidateElements(); err != nil {
		return err
	}
	if err := s.ValidateLinks(); err != nil {
		return err
	}

	known := make(map[string]bool, len(s.Elements))
	for _, e := range s.Elements {
		known[e.ID] = true
	}
	for _, l := range s.Links {
		for _, ref := range []string{l.From, l.To} {
			if !known[ref] {
				return errors.New(errors.ErrCodeInvalidScene, "link %q refers to unknown element %q", l.Key(), ref)
			}
		}
	}
	return nil
}

// ValidateElements checks element identifiers and geometry.
func (s *Scene) ValidateElements() error {
	if c := s.Container; c != nil && !c.IsFinite() {
		return errors.New(errors.ErrCodeInvalidScene, "container origin must be finite")
	}

	seen := make(map[string]bool, len(s.Elements))
	for _, e := range s.Elements {
		if err := errors.ValidateID(e.ID); err != nil {
			return err
		}
		if seen[e.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate element %q", e.ID)
		}
		seen[e.ID] = true

		for _, v := range []struct {
			name string
			val  float64
		}{{"x", e.X}, {"y", e.Y}} {
			if err := errors.ValidateFinite(e.ID+"."+v.name, v.val); err != nil {
				return err
			}
		}
		for _, v := range []struct {
			name string
			val  float64
		}{{"width", e.Width}, {"height", e.Height}} {
			if err := errors.ValidateNonNegative(e.ID+"."+v.name, v.val); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateLinks checks links without resolving their references. Use it
// when elements come from an external layout provider.
func (s *Scene) ValidateLinks() error {
	seen := make(map[string]bool, len(s.Links))
	for _, l := range s.Links {
		if err := errors.ValidateID(l.From); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "link from")
		}
		if err := errors.ValidateID(l.To); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "link to")
		}
		key := l.Key()
		if l.ID != "" {
			if err := errors.ValidateID(l.ID); err != nil {
				return err
			}
		}
		if seen[key] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate link %q (set an id)", key)
		}
		seen[key] = true

		if err := checkLen(key, "from_point", l.FromPoint, 2); err != nil {
			return err
		}
		if err := checkLen(key, "to_point", l.ToPoint, 2); err != nil {
			return err
		}
		if err := checkLen(key, "from_area", l.FromArea, 4); err != nil {
			return err
		}
		if err := checkLen(key, "to_area", l.ToArea, 4); err != nil {
			return err
		}

		if err := l.Options(nil).Validate(); err != nil {
			return errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidScene), err, "link %q", key)
		}
	}
	return nil
}

func checkLen(link, field string, vs []float64, n int) error {
	if vs == nil {
		return nil
	}
	if len(vs) != n {
		return errors.New(errors.ErrCodeInvalidScene, "link %q: %s needs %d numbers, got %d", link, field, n, len(vs))
	}
	for _, v := range vs {
		if err := errors.ValidateFinite(link+"."+field, v); err != nil {
			return err
		}
	}
	return nil
}
