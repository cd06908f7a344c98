package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearthwick-api/internal/config"
	"hearthwick-api/internal/mail"
	"hearthwick-api/internal/model"
	"hearthwick-api/pkg/apierror"
)

type stubAvailability struct {
	m model.AvailabilityMap
}

func (s stubAvailability) GetAvailability(ctx context.Context) model.AvailabilityMap {
	return s.m
}

type stubPromos struct {
	result model.PromoValidation
}

func (s stubPromos) Validate(ctx context.Context, code string, subtotal float64) model.PromoValidation {
	return s.result
}

type fakeMailer struct {
	sent     []mail.Message
	failAll  bool
	failFrom int // fail the Nth send onward (1-based); 0 means never
}

func (f *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	if f.failAll || (f.failFrom > 0 && len(f.sent)+1 >= f.failFrom) {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, msg)
	return nil
}

var testMailCfg = config.MailConfig{
	FromName:    "Hearth & Wick",
	FromAddress: "orders@hearthwick.test",
	ShopAddress: "shop@hearthwick.test",
}

func validOrder() model.OrderRequest {
	return model.OrderRequest{
		CustomerName: "Ada Lovelace",
		Email:        "ada@example.com",
		Address:      "12 Analytical Way",
		Items: []model.OrderItem{
			{Scent: "Lavender Fields", Size: model.Size8oz, Quantity: 2},
			{Scent: "Sandalwood", Size: model.Size16oz, Quantity: 1},
		},
	}
}

func TestSubmitComputesTotals(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewOrderService(stubAvailability{}, stubPromos{}, mailer, testMailCfg)

	conf, err := svc.Submit(context.Background(), validOrder())
	require.NoError(t, err)

	// 2 x $24 + 1 x $38.
	assert.Equal(t, 86.0, conf.Subtotal)
	assert.Equal(t, 0.0, conf.Discount)
	assert.Equal(t, 86.0, conf.Total)
	assert.NotEmpty(t, conf.OrderNumber)

	// Customer confirmation plus the shop copy.
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "ada@example.com", mailer.sent[0].To)
	assert.Equal(t, "shop@hearthwick.test", mailer.sent[1].To)
}

func TestSubmitAppliesPromoDiscount(t *testing.T) {
	mailer := &fakeMailer{}
	promos := stubPromos{result: model.PromoValidation{
		Valid: true, Code: "SAVE10", Type: model.PromoTypeFlat, Value: 10, DiscountAmount: 10,
	}}
	svc := NewOrderService(stubAvailability{}, promos, mailer, testMailCfg)

	order := validOrder()
	order.PromoCode = "save10"

	conf, err := svc.Submit(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, 86.0, conf.Subtotal)
	assert.Equal(t, 10.0, conf.Discount)
	assert.Equal(t, 76.0, conf.Total)
}

func TestSubmitRejectsInvalidPromo(t *testing.T) {
	mailer := &fakeMailer{}
	promos := stubPromos{result: model.PromoValidation{
		Valid: false, Error: "This promo code has expired.",
	}}
	svc := NewOrderService(stubAvailability{}, promos, mailer, testMailCfg)

	order := validOrder()
	order.PromoCode = "BYGONE"

	_, err := svc.Submit(context.Background(), order)

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "This promo code has expired.", apiErr.Message)
	assert.Empty(t, mailer.sent)
}

func TestSubmitGatesOnAvailability(t *testing.T) {
	avail := stubAvailability{m: model.AvailabilityMap{
		"Lavender Fields": {Size8oz: false, Size16oz: true},
	}}
	svc := NewOrderService(avail, stubPromos{}, &fakeMailer{}, testMailCfg)

	_, err := svc.Submit(context.Background(), validOrder())

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "Lavender Fields (8oz) is currently out of stock.", apiErr.Message)
}

func TestSubmitFailsOpenForScentsMissingFromMap(t *testing.T) {
	// The map knows nothing about either ordered scent: both pass the gate.
	avail := stubAvailability{m: model.AvailabilityMap{
		"Vanilla Bean": {Size8oz: false, Size16oz: false},
	}}
	svc := NewOrderService(avail, stubPromos{}, &fakeMailer{}, testMailCfg)

	_, err := svc.Submit(context.Background(), validOrder())

	assert.NoError(t, err)
}

func TestSubmitFailsWhenConfirmationEmailFails(t *testing.T) {
	mailer := &fakeMailer{failAll: true}
	svc := NewOrderService(stubAvailability{}, stubPromos{}, mailer, testMailCfg)

	_, err := svc.Submit(context.Background(), validOrder())

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "Failed to submit the order. Please try again.", apiErr.Message)
}

func TestSubmitFailsWhenShopCopyFails(t *testing.T) {
	// The customer confirmation goes out, then the shop copy fails. With no
	// order database the shop copy is the order record, so the submission
	// must still fail.
	mailer := &fakeMailer{failFrom: 2}
	svc := NewOrderService(stubAvailability{}, stubPromos{}, mailer, testMailCfg)

	_, err := svc.Submit(context.Background(), validOrder())

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "Failed to submit the order. Please try again.", apiErr.Message)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ada@example.com", mailer.sent[0].To)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewOrderService(stubAvailability{}, stubPromos{}, &fakeMailer{}, testMailCfg)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.OrderRequest)
	}{
		{"missing name", func(o *model.OrderRequest) { o.CustomerName = " " }},
		{"bad email", func(o *model.OrderRequest) { o.Email = "not-an-email" }},
		{"missing address", func(o *model.OrderRequest) { o.Address = "" }},
		{"empty cart", func(o *model.OrderRequest) { o.Items = nil }},
		{"unknown scent", func(o *model.OrderRequest) { o.Items[0].Scent = "Motor Oil" }},
		{"unknown size", func(o *model.OrderRequest) { o.Items[0].Size = "12oz" }},
		{"zero quantity", func(o *model.OrderRequest) { o.Items[0].Quantity = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)

			_, err := svc.Submit(ctx, order)

			var apiErr *apierror.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, 400, apiErr.Status)
		})
	}
}

func TestContactRelaysToShopInbox(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewOrderService(stubAvailability{}, stubPromos{}, mailer, testMailCfg)

	err := svc.Contact(context.Background(), model.ContactRequest{
		Name:    "Grace",
		Email:   "grace@example.com",
		Message: "Do you ship to Hawaii?",
	})
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "shop@hearthwick.test", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "Grace")
}

func TestContactValidation(t *testing.T) {
	svc := NewOrderService(stubAvailability{}, stubPromos{}, &fakeMailer{}, testMailCfg)
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.ContactRequest
	}{
		{"missing name", model.ContactRequest{Email: "a@b.c", Message: "hi"}},
		{"bad email", model.ContactRequest{Name: "A", Email: "nope", Message: "hi"}},
		{"missing message", model.ContactRequest{Name: "A", Email: "a@b.c", Message: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Contact(ctx, tt.req)
			var apiErr *apierror.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, 400, apiErr.Status)
		})
	}
}
