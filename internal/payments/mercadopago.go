package payments

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Client creates Mercado Pago checkout preferences for approved
// reservations. A nil *Client disables payments; callers treat failures
// as best-effort and never block the approval on them.
type Client struct {
	prefs preference.Client
}

func New(accessToken string) (*Client, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Client{prefs: preference.NewClient(cfg)}, nil
}

type CheckoutInput struct {
	ReservationID string
	Title         string
	Amount        float64
	PayerEmail    string
}

// CreateCheckout returns the checkout URL for the reservation total.
func (c *Client) CreateCheckout(ctx context.Context, in CheckoutInput) (string, error) {
	if c == nil {
		return "", nil
	}

	req := preference.Request{
		ExternalReference: in.ReservationID,
		Items: []preference.ItemRequest{
			{
				Title:     in.Title,
				Quantity:  1,
				UnitPrice: in.Amount,
			},
		},
	}
	if in.PayerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: in.PayerEmail}
	}

	pref, err := c.prefs.Create(ctx, req)
	if err != nil {
		return "", err
	}

	return pref.InitPoint, nil
}
