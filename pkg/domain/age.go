package domain

import (
	"fmt"
	"time"
)

// birthdateLayout is the only accepted input format for birthdates.
const birthdateLayout = "2006-01-02"

// maxPlausibleAge bounds how far in the past a birthdate may lie.
const maxPlausibleAge = 150

// AgeOutcome is the result of evaluating a caller-supplied birthdate.
// IsOver18 and Age are meaningful only when IsValid is true. Error carries
// a human-readable reason when the date is invalid, or when the date is
// valid but the person is under 18.
type AgeOutcome struct {
	IsValid  bool   `json:"isValid"`
	IsOver18 bool   `json:"isOver18"`
	Age      int    `json:"age,omitempty"`
	Error    string `json:"error,omitempty"`
}

// IsOver18 returns true if the person with the given birth date is 18 years old or older
// at the specified reference time. Uses calendar arithmetic (AddDate) for accurate
// birthday-boundary handling.
//
// Example:
//
//	birthDate := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
//	now := time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC) // Exactly 18th birthday
//	IsOver18(birthDate, now) // returns true
func IsOver18(birthDate, now time.Time) bool {
	adultAt := birthDate.UTC().AddDate(18, 0, 0)
	return !now.UTC().Before(adultAt)
}

// AgeInYears computes age in whole years at the reference time, decrementing
// when the birthday has not yet occurred this year. A Feb 29 birthdate rolls
// to Mar 1 in non-leap years, matching AddDate normalization.
func AgeInYears(birthDate, now time.Time) int {
	birthDate = birthDate.UTC()
	now = now.UTC()
	years := now.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(years, 0, 0)
	if now.Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// EvaluateBirthdate validates a birthdate string and computes the age outcome
// at the given reference time. Pure and deterministic; callers pass time.Now()
// in production and fixed instants in tests.
//
// Rejected inputs: anything not in YYYY-MM-DD form, non-existent calendar
// dates, future dates, and dates implying an age above 150 years.
func EvaluateBirthdate(value string, now time.Time) AgeOutcome {
	birthDate, err := time.Parse(birthdateLayout, value)
	if err != nil {
		return AgeOutcome{Error: "birthdate must be a valid date in YYYY-MM-DD format"}
	}
	now = now.UTC()
	if birthDate.After(now) {
		return AgeOutcome{Error: "birthdate cannot be in the future"}
	}
	if birthDate.AddDate(maxPlausibleAge, 0, 0).Before(now) {
		return AgeOutcome{Error: fmt.Sprintf("birthdate implies an age above %d years", maxPlausibleAge)}
	}

	age := AgeInYears(birthDate, now)
	outcome := AgeOutcome{
		IsValid:  true,
		IsOver18: IsOver18(birthDate, now),
		Age:      age,
	}
	if !outcome.IsOver18 {
		outcome.Error = "must be at least 18 years old"
	}
	return outcome
}
