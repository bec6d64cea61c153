package request

import (
	"course-checkout/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type CreateCheckoutRequest struct {
	SuccessURL  string `json:"successUrl" binding:"required"`
	CancelURL   string `json:"cancelUrl" binding:"required"`
	ProductType string `json:"productType" binding:"omitempty,oneof=self-paced live"`
}

func (r *CreateCheckoutRequest) ToInput() (commands.CreateCheckoutInput, error) {
	var in commands.CreateCheckoutInput
	err := copier.Copy(&in, r)
	return in, err
}
