package validate

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/safar/go-paper-store/internal/orderstatus"
)

type ErrorCode int

const (
	ErrorID ErrorCode = iota + 1
	IDNotEqual
	ErrorName
	PropertyNotFound
	Discontinued
	Price
	Stock
	StatusInvalid
	PageNumber
	PageItems
	PriceRange
	NoProducts
	Quantity
	Cursor
	PricePrecision
	PriceLimit
	PageItemsLimit
	PageNumberLimit
	InternalServerError
)

// MaxPageItems bounds every page size a caller may ask for.
const MaxPageItems = 100

// maxPrice is the first value papers.price NUMERIC(12, 2) cannot hold.
var maxPrice = decimal.New(1, 10)

const undefinedMessage = "This error is undefined"

var messages = map[ErrorCode]string{
	ErrorID:             "Id is required",
	IDNotEqual:          "Wrong request entity is not present",
	ErrorName:           "Name is required",
	PropertyNotFound:    "Property is not present",
	Discontinued:        "Discontinued value is required",
	Price:               "Price must be bigger than zero",
	Stock:               "Stock value can not be negative",
	StatusInvalid:       "Status invalid",
	PageNumber:          "Page number can not be negative",
	PageItems:           "Page items must be bigger than zero",
	PriceRange:          "Minimum price can not exceed maximum price",
	NoProducts:          "Order must contain at least one product",
	Quantity:            "Quantity must be bigger than zero",
	Cursor:              "Cursor is invalid",
	PricePrecision:      "Price can have at most two decimal places",
	PriceLimit:          "Price must be less than 10000000000",
	PageItemsLimit:      "Page items can not exceed 100",
	PageNumberLimit:     "Page number is too large",
	InternalServerError: "An internal server error occurred",
}

// Message returns the user-facing text for code.
func Message(code ErrorCode) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return undefinedMessage
}

type FieldError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"-"`
	Message string    `json:"message"`
}

// Errors collects every failed rule of one request.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// Has reports whether a rule with code failed.
func (e Errors) Has(code ErrorCode) bool {
	for _, fe := range e {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// New reports a single failed rule.
func New(field string, code ErrorCode) Errors {
	return Errors{{Field: field, Code: code, Message: Message(code)}}
}

func (e *Errors) add(field string, code ErrorCode) {
	*e = append(*e, FieldError{Field: field, Code: code, Message: Message(code)})
}

func (e Errors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func ID(field string, id int64) error {
	var errs Errors
	if id <= 0 {
		errs.add(field, ErrorID)
	}
	return errs.err()
}

// ParseID reads a positive integer id from raw path or query text.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, New(field, ErrorID)
	}
	return id, nil
}

// IDList parses a comma separated id list, silently dropping entries that
// are not integers.
func IDList(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func Paper(name string, price decimal.Decimal, stock int) error {
	var errs Errors
	if strings.TrimSpace(name) == "" {
		errs.add("name", ErrorName)
	}
	switch {
	case !price.IsPositive():
		errs.add("price", Price)
	case !price.Equal(price.Round(2)):
		errs.add("price", PricePrecision)
	case price.GreaterThanOrEqual(maxPrice):
		errs.add("price", PriceLimit)
	}
	if stock < 0 {
		errs.add("stock", Stock)
	}
	return errs.err()
}

// PaperEdit also requires the body id to address the same paper as the path.
func PaperEdit(pathID, bodyID int64, name string, price decimal.Decimal, stock int) error {
	var errs Errors
	if pathID <= 0 {
		errs.add("paperId", ErrorID)
	} else if bodyID != pathID {
		errs.add("id", IDNotEqual)
	}
	if err := Paper(name, price, stock); err != nil {
		errs = append(errs, err.(Errors)...)
	}
	return errs.err()
}

// Name requires a non-blank display name.
func Name(field, name string) error {
	var errs Errors
	if strings.TrimSpace(name) == "" {
		errs.add(field, ErrorName)
	}
	return errs.err()
}

func PropertyName(name string) error {
	return Name("propertyName", name)
}

// Page checks a 0-based catalog page. The offset pageNumber*pageItems has
// to fit in an int.
func Page(pageNumber, pageItems int) error {
	var errs Errors
	if pageNumber < 0 {
		errs.add("pageNumber", PageNumber)
	}
	switch {
	case pageItems <= 0:
		errs.add("pageItems", PageItems)
	case pageItems > MaxPageItems:
		errs.add("pageItems", PageItemsLimit)
	case pageNumber > math.MaxInt/pageItems:
		errs.add("pageNumber", PageNumberLimit)
	}
	return errs.err()
}

// OffsetPage checks a 1-based page of pageSize items, pageSize already
// clamped by the caller.
func OffsetPage(page, pageSize int) error {
	if pageSize > 0 && page-1 > math.MaxInt/pageSize {
		return New("page", PageNumberLimit)
	}
	return nil
}

// Prices checks the optional inclusive price bounds of a filter.
func Prices(min, max decimal.NullDecimal) error {
	var errs Errors
	if min.Valid && min.Decimal.IsNegative() {
		errs.add("minimumRange", Price)
	}
	if max.Valid && max.Decimal.IsNegative() {
		errs.add("maximumRange", Price)
	}
	if min.Valid && max.Valid && min.Decimal.GreaterThan(max.Decimal) {
		errs.add("priceRange", PriceRange)
	}
	return errs.err()
}

// Status returns the canonical spelling of a status name.
func Status(text string) (string, error) {
	s, err := orderstatus.Parse(text)
	if err != nil {
		return "", New("status", StatusInvalid)
	}
	return s.String(), nil
}

func Order(customerID int64, quantities []int) error {
	var errs Errors
	if customerID <= 0 {
		errs.add("customerId", ErrorID)
	}
	if len(quantities) == 0 {
		errs.add("orderPlacedProducts", NoProducts)
	}
	for i, q := range quantities {
		if q <= 0 {
			errs.add("orderPlacedProducts["+strconv.Itoa(i)+"].quantity", Quantity)
		}
	}
	return errs.err()
}

// Search trims a free-text search term and caps its length.
func Search(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > 100 {
		s = strings.TrimSpace(string(r[:100]))
	}
	return s
}
