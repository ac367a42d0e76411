package validation

// FieldError is a single failed rule on a form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects field failures in the order they were found.
type Errors []FieldError

// Has reports whether field has at least one failure.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// For returns the messages recorded for field.
func (e Errors) For(field string) []string {
	var messages []string
	for _, fe := range e {
		if fe.Field == field {
			messages = append(messages, fe.Message)
		}
	}
	return messages
}

// Messages returns every message in order.
func (e Errors) Messages() []string {
	messages := make([]string, len(e))
	for i, fe := range e {
		messages[i] = fe.Message
	}
	return messages
}
