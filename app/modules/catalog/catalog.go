// Package catalog is the static course registry. Courses are compiled into
// the binary; the engine only ever reads them.
package catalog

import (
	"errors"
	"math/rand"
	"strings"
	"sync"

	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

// ErrNoCourseMatch indicates no catalog course carries the requested class.
var ErrNoCourseMatch = errors.New("no course matches the requested speed class")

// ErrCourseNotFound indicates a by-name lookup missed.
var ErrCourseNotFound = errors.New("course not found")

// Catalog is a read-only course registry with a seedable selection source so
// course draws are deterministic under test. rand.Rand is not safe for
// concurrent use, so draws serialize on the mutex.
type Catalog struct {
	courses []tournamenttypes.Course

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a catalog over the built-in course table.
func New(rng *rand.Rand) *Catalog {
	return NewWithCourses(courses, rng)
}

// NewWithCourses builds a catalog over an explicit course table.
func NewWithCourses(cs []tournamenttypes.Course, rng *rand.Rand) *Catalog {
	return &Catalog{courses: cs, rng: rng}
}

// Courses returns the full course table.
func (c *Catalog) Courses() []tournamenttypes.Course {
	out := make([]tournamenttypes.Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// RandomCourse draws uniformly among courses matching the class filter.
// SpeedClassAny (or empty) matches every course.
func (c *Catalog) RandomCourse(class tournamenttypes.SpeedClass) (tournamenttypes.Course, error) {
	matches := c.matching(class)
	if len(matches) == 0 {
		return tournamenttypes.Course{}, ErrNoCourseMatch
	}
	c.mu.Lock()
	i := c.rng.Intn(len(matches))
	c.mu.Unlock()
	return matches[i], nil
}

// ByName looks a course up case-insensitively.
func (c *Catalog) ByName(name string) (tournamenttypes.Course, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, course := range c.courses {
		if strings.ToLower(course.Name) == needle {
			return course, nil
		}
	}
	return tournamenttypes.Course{}, ErrCourseNotFound
}

// Search returns up to limit courses whose names contain the term, for the
// gateway's autocomplete.
func (c *Catalog) Search(term string, limit int) []tournamenttypes.Course {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" || limit <= 0 {
		return nil
	}
	var out []tournamenttypes.Course
	for _, course := range c.courses {
		if strings.Contains(strings.ToLower(course.Name), needle) {
			out = append(out, course)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func (c *Catalog) matching(class tournamenttypes.SpeedClass) []tournamenttypes.Course {
	if class == "" || class == tournamenttypes.SpeedClassAny {
		return c.courses
	}
	var matches []tournamenttypes.Course
	for _, course := range c.courses {
		for _, cc := range course.Classes {
			if cc == class {
				matches = append(matches, course)
				break
			}
		}
	}
	return matches
}
