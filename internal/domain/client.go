package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultPicture is used when a client is created without a picture URL
const DefaultPicture = "http://placehold.it/32x32"

const (
	MinAge = 1
	MaxAge = 120
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the accepted genders in display order
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
	CurrencyYen Currency = "Yen"
	CurrencyCAD Currency = "CAD"
	CurrencySGD Currency = "SGD"
)

// Currencies lists the accepted currencies in display order
var Currencies = []Currency{CurrencyUSD, CurrencyINR, CurrencyYen, CurrencyCAD, CurrencySGD}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyINR, CurrencyYen, CurrencyCAD, CurrencySGD:
		return true
	}
	return false
}

// Symbol returns the display symbol, falling back to the code itself
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyINR:
		return "₹"
	case CurrencyYen:
		return "¥"
	case CurrencyCAD:
		return "C$"
	case CurrencySGD:
		return "S$"
	default:
		return string(c)
	}
}

// Client is a roster entry. ID and Registered are assigned once at creation.
type Client struct {
	ID               string    `json:"id"`
	Gender           Gender    `json:"gender"`
	Name             string    `json:"name"`
	Company          string    `json:"company"`
	Age              int       `json:"age"`
	Picture          string    `json:"picture"`
	Registered       Timestamp `json:"registered"`
	Currency         Currency  `json:"currency"`
	SubscriptionCost string    `json:"subscriptionCost"`
}

// FormatCost renders the subscription cost with its currency symbol
func (c Client) FormatCost() string {
	return fmt.Sprintf("%s %s", c.Currency.Symbol(), c.SubscriptionCost)
}

// Validate returns a *ValidationError if the client breaks a field constraint
func (c Client) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	return c.candidate().Validate()
}

func (c Client) candidate() NewClient {
	return NewClient{
		Name:             c.Name,
		Company:          c.Company,
		Age:              c.Age,
		Gender:           c.Gender,
		Picture:          c.Picture,
		Currency:         c.Currency,
		SubscriptionCost: c.SubscriptionCost,
	}
}

// NewClient holds the fields an operator supplies when adding a client.
// The roster store assigns ID and Registered.
type NewClient struct {
	Name             string
	Company          string
	Age              int
	Gender           Gender
	Picture          string
	Currency         Currency
	SubscriptionCost string
}

// Normalize trims text fields, defaults the picture and formats the cost.
// A cost that does not parse is left as-is for Validate to report.
func (n NewClient) Normalize() NewClient {
	n.Name = strings.TrimSpace(n.Name)
	n.Company = strings.TrimSpace(n.Company)
	n.Picture = strings.TrimSpace(n.Picture)
	if n.Picture == "" {
		n.Picture = DefaultPicture
	}
	n.SubscriptionCost = normalizeCost(n.SubscriptionCost)
	return n
}

// Validate returns a *ValidationError naming the first invalid field
func (n NewClient) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if strings.TrimSpace(n.Company) == "" {
		return &ValidationError{Field: "company", Message: "is required"}
	}
	if err := validateAge(n.Age); err != nil {
		return err
	}
	if !n.Gender.Valid() {
		return &ValidationError{Field: "gender", Message: fmt.Sprintf("must be one of male, female, other (got %q)", n.Gender)}
	}
	if !n.Currency.Valid() {
		return &ValidationError{Field: "currency", Message: fmt.Sprintf("must be one of USD, INR, Yen, CAD, SGD (got %q)", n.Currency)}
	}
	return validateCost(n.SubscriptionCost)
}

// Build constructs the full client from an already validated candidate
func (n NewClient) Build(id string, registered Timestamp) Client {
	return Client{
		ID:               id,
		Gender:           n.Gender,
		Name:             n.Name,
		Company:          n.Company,
		Age:              n.Age,
		Picture:          n.Picture,
		Registered:       registered,
		Currency:         n.Currency,
		SubscriptionCost: n.SubscriptionCost,
	}
}

// ClientPatch is a partial update. Nil fields are left untouched.
// There are no ID or Registered fields: both are immutable.
type ClientPatch struct {
	Name             *string   `json:"name,omitempty"`
	Company          *string   `json:"company,omitempty"`
	Age              *int      `json:"age,omitempty"`
	Gender           *Gender   `json:"gender,omitempty"`
	Picture          *string   `json:"picture,omitempty"`
	Currency         *Currency `json:"currency,omitempty"`
	SubscriptionCost *string   `json:"subscriptionCost,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Company == nil && p.Age == nil && p.Gender == nil &&
		p.Picture == nil && p.Currency == nil && p.SubscriptionCost == nil
}

// Normalize returns a copy with trimmed strings and a formatted cost
func (p ClientPatch) Normalize() ClientPatch {
	if p.Name != nil {
		p.Name = Ptr(strings.TrimSpace(*p.Name))
	}
	if p.Company != nil {
		p.Company = Ptr(strings.TrimSpace(*p.Company))
	}
	if p.Picture != nil {
		pic := strings.TrimSpace(*p.Picture)
		if pic == "" {
			pic = DefaultPicture
		}
		p.Picture = &pic
	}
	if p.SubscriptionCost != nil {
		p.SubscriptionCost = Ptr(normalizeCost(*p.SubscriptionCost))
	}
	return p
}

// Validate checks only the supplied fields
func (p ClientPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if p.Company != nil && strings.TrimSpace(*p.Company) == "" {
		return &ValidationError{Field: "company", Message: "cannot be empty"}
	}
	if p.Age != nil {
		if err := validateAge(*p.Age); err != nil {
			return err
		}
	}
	if p.Gender != nil && !p.Gender.Valid() {
		return &ValidationError{Field: "gender", Message: fmt.Sprintf("must be one of male, female, other (got %q)", *p.Gender)}
	}
	if p.Currency != nil && !p.Currency.Valid() {
		return &ValidationError{Field: "currency", Message: fmt.Sprintf("must be one of USD, INR, Yen, CAD, SGD (got %q)", *p.Currency)}
	}
	if p.SubscriptionCost != nil {
		return validateCost(*p.SubscriptionCost)
	}
	return nil
}

// Apply merges the supplied fields into c (shallow merge)
func (p ClientPatch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Age != nil {
		c.Age = *p.Age
	}
	if p.Gender != nil {
		c.Gender = *p.Gender
	}
	if p.Picture != nil {
		c.Picture = *p.Picture
	}
	if p.Currency != nil {
		c.Currency = *p.Currency
	}
	if p.SubscriptionCost != nil {
		c.SubscriptionCost = *p.SubscriptionCost
	}
}

func validateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return &ValidationError{Field: "age", Message: fmt.Sprintf("must be between %d and %d (got %d)", MinAge, MaxAge, age)}
	}
	return nil
}

func validateCost(cost string) error {
	if strings.TrimSpace(cost) == "" {
		return &ValidationError{Field: "subscriptionCost", Message: "is required"}
	}
	v, err := strconv.ParseFloat(cost, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: "subscriptionCost", Message: fmt.Sprintf("must be a decimal amount (got %q)", cost)}
	}
	if v < 0 {
		return &ValidationError{Field: "subscriptionCost", Message: "cannot be negative"}
	}
	return nil
}

// normalizeCost formats a parseable amount with two decimal places
func normalizeCost(cost string) string {
	cost = strings.TrimSpace(cost)
	v, err := strconv.ParseFloat(cost, 64)
	if err != nil {
		return cost
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// CostValue parses a subscription cost, returning 0 for unparseable input
func CostValue(cost string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cost), 64)
	if err != nil {
		return 0
	}
	return v
}

// Ptr returns a pointer to v, for building patches
func Ptr[T any](v T) *T {
	return &v
}
