package product

import "errors"

var ErrUnknownProduct = errors.New("unknown course product")

// Course is the purchasable course variant.
//   - self-paced: every module is unlocked immediately
//   - live: modules unlock on a schedule
type Course string

const (
	CourseSelfPaced Course = "self-paced"
	CourseLive      Course = "live"

	Default = CourseLive
)

func (c Course) String() string {
	return string(c)
}

func (c Course) IsValid() bool {
	switch c {
	case CourseSelfPaced, CourseLive:
		return true
	default:
		return false
	}
}

// Parse maps an optional request value to a course; empty selects Default.
func Parse(s string) (Course, error) {
	if s == "" {
		return Default, nil
	}
	c := Course(s)
	if !c.IsValid() {
		return "", ErrUnknownProduct
	}
	return c, nil
}
