package response

import (
	"course-checkout/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type CheckoutResponse struct {
	URL string `json:"url"`
}

type CheckoutSessionResponse struct {
	ID            string `json:"id"`
	PaymentStatus string `json:"paymentStatus"`
	CustomerEmail string `json:"customerEmail"`
	ProductType   string `json:"productType"`
}

func FromCheckoutSessionView(v *queries.CheckoutSessionView) (*CheckoutSessionResponse, error) {
	res := &CheckoutSessionResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	return res, nil
}
