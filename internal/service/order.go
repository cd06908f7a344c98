package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hearthwick-api/internal/config"
	"hearthwick-api/internal/mail"
	"hearthwick-api/internal/model"
	"hearthwick-api/pkg/apierror"
	"hearthwick-api/pkg/uid"
)

// AvailabilityReader is the slice of InventoryService the checkout gate needs.
type AvailabilityReader interface {
	GetAvailability(ctx context.Context) model.AvailabilityMap
}

// PromoChecker is the slice of PromoService the checkout path needs.
type PromoChecker interface {
	Validate(ctx context.Context, code string, subtotal float64) model.PromoValidation
}

// OrderService handles storefront order submission and the contact form.
// There is no order database: a submitted order exists as the pair of emails
// it produces, so email delivery failures fail the submission.
type OrderService struct {
	inventory AvailabilityReader
	promos    PromoChecker
	mailer    mail.Mailer
	mailCfg   config.MailConfig
}

// NewOrderService creates an order service.
func NewOrderService(inventory AvailabilityReader, promos PromoChecker, mailer mail.Mailer, mailCfg config.MailConfig) *OrderService {
	return &OrderService{
		inventory: inventory,
		promos:    promos,
		mailer:    mailer,
		mailCfg:   mailCfg,
	}
}

// Submit validates the payload, recomputes the subtotal server-side, gates
// each line on cached availability, applies the promo code, and emails the
// confirmation and the shop notification.
func (s *OrderService) Submit(ctx context.Context, req model.OrderRequest) (*model.OrderConfirmation, error) {
	if err := validateOrder(req); err != nil {
		return nil, err
	}

	// Availability gate uses the same cached map the storefront shows, with
	// the same fail-open policy for scents missing from it.
	avail := s.inventory.GetAvailability(ctx)
	var subtotal float64
	for _, item := range req.Items {
		if !model.IsSizeAvailable(avail, item.Scent, item.Size) {
			return nil, apierror.BadRequest(fmt.Sprintf("%s (%s) is currently out of stock.", item.Scent, item.Size))
		}
		price, _ := model.PriceFor(item.Size)
		subtotal += price * float64(item.Quantity)
	}

	var discount float64
	promoCode := strings.TrimSpace(req.PromoCode)
	if promoCode != "" {
		result := s.promos.Validate(ctx, promoCode, subtotal)
		if !result.Valid {
			return nil, apierror.BadRequest(result.Error)
		}
		discount = result.DiscountAmount
		req.PromoCode = result.Code
	}

	conf := &model.OrderConfirmation{
		OrderNumber: uid.OrderNumber(),
		Subtotal:    subtotal,
		Discount:    discount,
		Total:       subtotal - discount,
	}

	html, err := mail.OrderConfirmationHTML(req, *conf)
	if err != nil {
		log.Printf("[order] confirmation template failed: %v", err)
		return nil, apierror.Internal("Failed to prepare the order confirmation.")
	}
	if err := s.mailer.Send(ctx, mail.Message{
		FromName: s.mailCfg.FromName,
		From:     s.mailCfg.FromAddress,
		To:       req.Email,
		Subject:  fmt.Sprintf("Your Hearth & Wick order %s", conf.OrderNumber),
		HTML:     html,
		Text:     mail.OrderNotificationText(req, *conf),
	}); err != nil {
		log.Printf("[order] confirmation send failed: %v", err)
		return nil, apierror.Internal("Failed to submit the order. Please try again.")
	}

	// The shop copy must land too: with no order database, an order the shop
	// never hears about does not exist, so this failure fails the submission
	// even though the customer confirmation already went out.
	if s.mailCfg.ShopAddress != "" {
		if err := s.mailer.Send(ctx, mail.Message{
			FromName: s.mailCfg.FromName,
			From:     s.mailCfg.FromAddress,
			To:       s.mailCfg.ShopAddress,
			Subject:  fmt.Sprintf("New order %s", conf.OrderNumber),
			HTML:     html,
			Text:     mail.OrderNotificationText(req, *conf),
		}); err != nil {
			log.Printf("[order] shop notification send failed: %v", err)
			return nil, apierror.Internal("Failed to submit the order. Please try again.")
		}
	}

	return conf, nil
}

// Contact relays a contact form message to the shop inbox.
func (s *OrderService) Contact(ctx context.Context, req model.ContactRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apierror.BadRequest("Please enter your name.")
	}
	if !validEmail(req.Email) {
		return apierror.BadRequest("Please enter a valid email address.")
	}
	if strings.TrimSpace(req.Message) == "" {
		return apierror.BadRequest("Please enter a message.")
	}

	html, err := mail.ContactHTML(req)
	if err != nil {
		log.Printf("[contact] template failed: %v", err)
		return apierror.Internal("Failed to send your message.")
	}
	if err := s.mailer.Send(ctx, mail.Message{
		FromName: s.mailCfg.FromName,
		From:     s.mailCfg.FromAddress,
		To:       s.mailCfg.ShopAddress,
		Subject:  fmt.Sprintf("Contact form: %s", req.Name),
		HTML:     html,
		Text:     req.Message,
	}); err != nil {
		log.Printf("[contact] send failed: %v", err)
		return apierror.Internal("Failed to send your message. Please try again.")
	}
	return nil
}

func validateOrder(req model.OrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return apierror.BadRequest("Please enter your name.")
	}
	if !validEmail(req.Email) {
		return apierror.BadRequest("Please enter a valid email address.")
	}
	if strings.TrimSpace(req.Address) == "" {
		return apierror.BadRequest("Please enter a shipping address.")
	}
	if len(req.Items) == 0 {
		return apierror.BadRequest("Your cart is empty.")
	}
	for _, item := range req.Items {
		if !model.KnownScent(item.Scent) {
			return apierror.BadRequest(fmt.Sprintf("Unknown scent: %q.", item.Scent))
		}
		if _, ok := model.PriceFor(item.Size); !ok {
			return apierror.BadRequest(fmt.Sprintf("Unknown size: %q.", item.Size))
		}
		if item.Quantity <= 0 {
			return apierror.BadRequest("Item quantity must be at least 1.")
		}
	}
	return nil
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
