package upstream

import (
	"context"
	"net/http"
)

// Inquiry is a contact-form submission forwarded to the backend.
type Inquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// SubmitInquiry forwards a contact/inquiry form to the backend.
func (c *Client) SubmitInquiry(ctx context.Context, inq Inquiry) error {
	_, err := c.do(ctx, http.MethodPost, "/inquiries", nil, "", inq, nil)
	return err
}
