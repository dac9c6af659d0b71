// Package payment shapes subscription purchases into the payment
// provider's request format and submits them over HTTP.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// BasketItem is one purchasable line.
type BasketItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category1 string `json:"category1"`
	ItemType  string `json:"itemType"`
	Price     string `json:"price"`
}

// Card carries the payment instrument as entered on the payment page.
type Card struct {
	CardHolderName string `json:"cardHolderName"`
	CardNumber     string `json:"cardNumber"`
	ExpireMonth    string `json:"expireMonth"`
	ExpireYear     string `json:"expireYear"`
	CVC            string `json:"cvc"`
	RegisterCard   string `json:"registerCard"`
}

// Buyer identifies the purchaser to the provider.
type Buyer struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Surname             string `json:"surname"`
	GSMNumber           string `json:"gsmNumber"`
	Email               string `json:"email"`
	IdentityNumber      string `json:"identityNumber"`
	RegistrationAddress string `json:"registrationAddress"`
	IP                  string `json:"ip"`
	City                string `json:"city"`
	Country             string `json:"country"`
}

// Address is the billing or shipping contact block.
type Address struct {
	ContactName string `json:"contactName"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Address     string `json:"address"`
}

// Request is the full provider payload for one payment.
type Request struct {
	Locale          string       `json:"locale"`
	ConversationID  string       `json:"conversationId"`
	Price           string       `json:"price"`
	PaidPrice       string       `json:"paidPrice"`
	Currency        string       `json:"currency"`
	Installment     string       `json:"installment"`
	BasketID        string       `json:"basketId"`
	PaymentChannel  string       `json:"paymentChannel"`
	PaymentGroup    string       `json:"paymentGroup"`
	PaymentCard     Card         `json:"paymentCard"`
	Buyer           Buyer        `json:"buyer"`
	BillingAddress  Address      `json:"billingAddress"`
	ShippingAddress Address      `json:"shippingAddress"`
	BasketItems     []BasketItem `json:"basketItems"`
}

// Response is the provider's answer. Status "success" means the payment
// went through; anything else carries the provider's error fields.
type Response struct {
	Status         string `json:"status"`
	PaymentID      string `json:"paymentId"`
	ConversationID string `json:"conversationId"`
	ErrorCode      string `json:"errorCode"`
	ErrorMessage   string `json:"errorMessage"`
}

// BasketID derives the basket identifier from purchase time and buyer,
// matching the ids already stored alongside subscriptions.
func BasketID(now time.Time, userID int64) string {
	return fmt.Sprintf("B%s%d", now.Format("20060102150405"), userID)
}

// NewRequest assembles a subscription payment. Single installment, Turkish
// locale and TRY are fixed for this storefront.
func NewRequest(now time.Time, userID int64, price string, item BasketItem, card Card, buyer Buyer, billing Address) Request {
	basketID := BasketID(now, userID)
	return Request{
		Locale:          "tr",
		ConversationID:  basketID,
		Price:           price,
		PaidPrice:       price,
		Currency:        "TRY",
		Installment:     "1",
		BasketID:        basketID,
		PaymentChannel:  "WEB",
		PaymentGroup:    "SUBSCRIPTION",
		PaymentCard:     card,
		Buyer:           buyer,
		BillingAddress:  billing,
		ShippingAddress: billing,
		BasketItems:     []BasketItem{item},
	}
}

// Client submits payment requests.
type Client struct {
	baseURL    string
	apiKey     string
	secretKey  string
	httpClient *http.Client
}

func New(baseURL, apiKey, secretKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreatePayment posts the request to the provider. A non-success status
// in the provider's body returns an error carrying its code and message.
func (c *Client) CreatePayment(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("payment: encode: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment/auth", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("payment: build: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Basic "+c.apiKey+":"+c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("payment: post: %w", err)
	}
	defer resp.Body.Close()

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("payment: decode: %w", err)
	}
	if out.Status != "success" {
		return out, fmt.Errorf("payment: %s: %s", out.ErrorCode, out.ErrorMessage)
	}
	return out, nil
}
