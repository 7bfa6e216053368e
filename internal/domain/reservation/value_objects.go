package reservation

import "strings"

// Holder identifies who made a reservation. Both fields are opaque to the domain.
type Holder struct {
	name  string
	email string
}

func NewHolder(name, email string) Holder {
	return Holder{
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
	}
}

func (h Holder) Name() string {
	return h.name
}

func (h Holder) Email() string {
	return h.email
}
