// Package validators contains the pure request-shape checks run before any
// persistence. Each validator inspects a bound payload and returns a
// per-field error map accumulating every violation, so clients get all form
// hints in a single response instead of one failure at a time.
package validators

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{8,14}$`)
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// CustomerPayload is the customer block of a checkout submission.
type CustomerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Wilaya  int    `json:"Wilaya"`
}

// OrderItemPayload is one cart line of a checkout submission. Name,
// reference and price are client-held snapshots of the product at the time
// it was added to the cart.
type OrderItemPayload struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Reference string  `json:"reference"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderRequest is the payload for placing an order.
type OrderRequest struct {
	Customer *CustomerPayload   `json:"customer"`
	Items    []OrderItemPayload `json:"items"`
}

// ContactRequest is the payload for the public contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidateRegistration checks a registration payload. On success it trims
// the name fields in place so the stored values are normalized. The email is
// validated as submitted: surrounding whitespace fails the format check.
func ValidateRegistration(req *RegisterRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(req.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if req.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailRegex.MatchString(req.Email) {
		errs["email"] = "Invalid email format"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	} else if len(req.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters long"
	}
	if req.ConfirmPassword == "" {
		errs["confirmPassword"] = "Password confirmation is required"
	} else if req.Password != "" && req.Password != req.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}

	if len(errs) > 0 {
		return errs
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	return nil
}

// ValidateOrder checks a checkout payload: the customer block, the region
// code and every cart line.
func ValidateOrder(req *OrderRequest) map[string]string {
	errs := make(map[string]string)

	if req.Customer == nil {
		errs["customer"] = "Missing customer data"
	} else {
		c := req.Customer
		if strings.TrimSpace(c.Name) == "" || len(strings.TrimSpace(c.Name)) < 2 {
			errs["name"] = "Name is required and must be at least 2 characters long"
		}
		if !emailRegex.MatchString(c.Email) {
			errs["email"] = "Invalid email format"
		}
		if !phoneRegex.MatchString(c.Phone) {
			errs["phone"] = "Phone must be 8 to 14 digits"
		}
		if len(strings.TrimSpace(c.Address)) < 3 {
			errs["address"] = "Address is required and must be at least 3 characters long"
		}
		if c.Wilaya < 1 || c.Wilaya > 58 {
			errs["Wilaya"] = "Wilaya must be between 1 and 58"
		}
	}

	if len(req.Items) == 0 {
		errs["items"] = "Order must include at least one item"
	}
	for _, item := range req.Items {
		if item.ProductID == 0 || item.Name == "" || item.Reference == "" {
			errs["items"] = "Each item needs a product id, name and reference"
			break
		}
		if item.Quantity < 1 {
			errs["items"] = "Item quantity must be at least 1"
			break
		}
		if item.Price <= 0 {
			errs["items"] = "Item price must be positive"
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateContact checks a contact form payload. The subject is optional
// but capped at 80 characters.
func ValidateContact(req *ContactRequest) map[string]string {
	errs := make(map[string]string)

	if len(strings.TrimSpace(req.Name)) < 2 {
		errs["name"] = "Name is required and must be at least 2 characters long"
	}
	if !emailRegex.MatchString(req.Email) {
		errs["email"] = "A valid email is required"
	}
	if req.Subject != "" && utf8.RuneCountInString(strings.TrimSpace(req.Subject)) > 80 {
		errs["subject"] = "Subject cannot be longer than 80 characters"
	}
	if len(strings.TrimSpace(req.Message)) < 5 {
		errs["message"] = "Message is required and must be at least 5 characters long"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
