package api

import "grocery-assistant/internal/common/validation"

const maxUtteranceLength = 500

var (
	commandSchema = validation.MustCompile("command-request", validation.Object(map[string]interface{}{
		"text": validation.StringField(maxUtteranceLength),
	}, "text"))

	priceSchema = validation.MustCompile("price-request", validation.Object(map[string]interface{}{
		"item": validation.StringField(100),
	}, "item"))

	suggestSchema = validation.MustCompile("suggest-request", validation.Object(map[string]interface{}{
		"input": map[string]interface{}{"type": "string", "maxLength": 2000},
	}, "input"))

	quantitySchema = validation.MustCompile("quantity-request", validation.Object(map[string]interface{}{
		"quantity": map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 999},
	}, "quantity"))
)

type commandRequest struct {
	Text string `json:"text"`
}

type priceRequest struct {
	Item string `json:"item"`
}

type suggestRequest struct {
	Input string `json:"input"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}
