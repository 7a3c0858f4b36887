package form

import "fmt"

// UnknownTemplateError indicates a template id that is not in the catalog
type UnknownTemplateError struct {
	ID string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template: %s", e.ID)
}

// PaymentRequiredError indicates a premium template chosen without a subscription
type PaymentRequiredError struct {
	TemplateID string
}

func (e *PaymentRequiredError) Error() string {
	return fmt.Sprintf("template %s requires a subscription", e.TemplateID)
}
