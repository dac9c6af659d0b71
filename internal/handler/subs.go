package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/middleware"
	"github.com/mercass/storefront/internal/payment"
	"github.com/mercass/storefront/internal/queue"
	"github.com/mercass/storefront/internal/secure"
	queuepublisher "github.com/mercass/storefront/internal/service"
	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/utils"
)

// Subs records a subscription purchase for a user.
func (h *Handler) Subs(c echo.Context) error {
	return h.runRaw(c, store.Proc("sp_addSubs",
		store.P("userId", utils.ParseInt(c.FormValue("userId"), 0)),
		store.P("subId", utils.ParseInt(c.FormValue("subId"), 0))))
}

// AddNewSubs joins the newsletter list and publishes the signup event.
func (h *Handler) AddNewSubs(c echo.Context) error {
	email := c.FormValue("email")

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Store.Run(ctx, store.Proc("sp_addNewsSubs", store.P("Email", email)))
	if err != nil {
		return h.fail(c, err)
	}

	// Broker failures only cost the audit entry, never the signup.
	_ = queuepublisher.PublishNewsletterSubscribed(ctx, queue.NewsletterSubscribedEvent{
		Email:        email,
		SubscribedAt: time.Now().UTC().Format(time.RFC3339),
	})

	first := res.First()
	if len(first) == 0 {
		return c.JSON(http.StatusOK, store.Row{})
	}
	return c.JSON(http.StatusOK, first[0])
}

// PaySubscription initiates the provider payment for a subscription plan
// and, on success, records the subscription and publishes the activation
// event. A card the buyer asked to keep is sealed before it is bound into
// the card-reference procedure.
func (h *Handler) PaySubscription(c echo.Context) error {
	userID := middleware.UserID(c)
	subID := utils.ParseInt(c.FormValue("subId"), 0)
	price := c.FormValue("price")
	now := time.Now().UTC()

	item := payment.BasketItem{
		ID:        fmt.Sprintf("SUB%d", subID),
		Name:      c.FormValue("planName"),
		Category1: "Subscription",
		ItemType:  "VIRTUAL",
		Price:     price,
	}
	card := payment.Card{
		CardHolderName: c.FormValue("cardHolderName"),
		CardNumber:     c.FormValue("cardNumber"),
		ExpireMonth:    c.FormValue("expireMonth"),
		ExpireYear:     c.FormValue("expireYear"),
		CVC:            c.FormValue("cvc"),
		RegisterCard:   c.FormValue("registerCard"),
	}
	sess, _ := middleware.Session(c)
	buyer := payment.Buyer{
		ID:                  fmt.Sprint(userID),
		Name:                c.FormValue("buyerName"),
		Surname:             c.FormValue("buyerSurname"),
		GSMNumber:           c.FormValue("gsmNumber"),
		Email:               c.FormValue("buyerEmail"),
		IdentityNumber:      c.FormValue("identityNumber"),
		RegistrationAddress: c.FormValue("address"),
		IP:                  c.RealIP(),
		City:                c.FormValue("city"),
		Country:             "Türkiye",
	}
	billing := payment.Address{
		ContactName: buyer.Name + " " + buyer.Surname,
		City:        buyer.City,
		Country:     buyer.Country,
		Address:     buyer.RegistrationAddress,
	}

	req := payment.NewRequest(now, userID, price, item, card, buyer, billing)

	ctx, cancel := reqCtx(c)
	defer cancel()
	resp, err := h.Payments.CreatePayment(ctx, req)
	if err != nil {
		// A provider rejection carries the provider's body; a transport or
		// decode failure leaves it empty and is a server fault.
		if resp.Status != "" || resp.ErrorCode != "" {
			return c.JSON(http.StatusPaymentRequired, echo.Map{
				"ErrCode":    resp.ErrorCode,
				"ErrMessage": resp.ErrorMessage,
			})
		}
		return h.fail(c, err)
	}

	res, err := h.Store.Run(ctx, store.Proc("sp_addSubs",
		store.P("userId", userID),
		store.P("subId", subID)))
	if err != nil {
		return h.fail(c, err)
	}

	if card.RegisterCard == "1" {
		sealed, err := secure.Encrypt(h.Secret, resp.PaymentID)
		if err != nil {
			return h.fail(c, err)
		}
		ref, err := json.Marshal(sealed)
		if err != nil {
			return h.fail(c, err)
		}
		if _, err := h.Store.Run(ctx, store.Proc("sp_addUserCardRef",
			store.P("userId", userID),
			store.P("cardRef", string(ref)))); err != nil {
			return h.fail(c, err)
		}
	}

	subscriptionID := int64(0)
	if first := res.First(); len(first) > 0 {
		subscriptionID = int64(utils.AnyInt(first[0]["Id"], 0))
	}
	_ = queuepublisher.PublishSubscriptionActivated(ctx, queue.SubscriptionActivatedEvent{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		UserName:       sess.UserName,
		PlanName:       item.Name,
		Price:          price,
		Currency:       "TRY",
		PaymentID:      resp.PaymentID,
		BasketID:       req.BasketID,
		ActivatedAt:    now.Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"Success":   1,
		"paymentId": resp.PaymentID,
		"basketId":  req.BasketID,
	})
}
