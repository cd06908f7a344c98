package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"hearthwick-api/internal/model"
)

var orderTmpl = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #3b2f2a;">
  <h2>Thank you for your order, {{.CustomerName}}!</h2>
  <p>Order <strong>{{.OrderNumber}}</strong> is confirmed. Here's what's on its way:</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    {{range .Items}}
    <tr>
      <td>{{.Scent}} ({{.Size}})</td>
      <td>&times; {{.Quantity}}</td>
      <td style="text-align: right;">${{.LineTotal}}</td>
    </tr>
    {{end}}
  </table>
  <p>
    Subtotal: ${{.Subtotal}}<br>
    {{if .Discount}}Discount: &minus;${{.Discount}}<br>{{end}}
    <strong>Total: ${{.Total}}</strong>
  </p>
  <p>Shipping to:<br>{{.Address}}</p>
  <p>&mdash; Hearth &amp; Wick</p>
</body>
</html>`))

var contactTmpl = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #3b2f2a;">
  <h2>New message from the contact form</h2>
  <p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt; wrote:</p>
  <blockquote>{{.Message}}</blockquote>
</body>
</html>`))

type orderTmplItem struct {
	Scent     string
	Size      model.Size
	Quantity  int
	LineTotal string
}

type orderTmplData struct {
	CustomerName string
	OrderNumber  string
	Address      string
	Items        []orderTmplItem
	Subtotal     string
	Discount     string
	Total        string
}

// OrderConfirmationHTML renders the customer-facing order confirmation.
func OrderConfirmationHTML(req model.OrderRequest, conf model.OrderConfirmation) (string, error) {
	data := orderTmplData{
		CustomerName: req.CustomerName,
		OrderNumber:  conf.OrderNumber,
		Address:      req.Address,
		Subtotal:     dollars(conf.Subtotal),
		Total:        dollars(conf.Total),
	}
	if conf.Discount > 0 {
		data.Discount = dollars(conf.Discount)
	}
	for _, item := range req.Items {
		price, _ := model.PriceFor(item.Size)
		data.Items = append(data.Items, orderTmplItem{
			Scent:     item.Scent,
			Size:      item.Size,
			Quantity:  item.Quantity,
			LineTotal: dollars(price * float64(item.Quantity)),
		})
	}

	var buf bytes.Buffer
	if err := orderTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OrderNotificationText renders the plain-text copy sent to the shop inbox.
func OrderNotificationText(req model.OrderRequest, conf model.OrderConfirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s from %s <%s>\n\n", conf.OrderNumber, req.CustomerName, req.Email)
	for _, item := range req.Items {
		fmt.Fprintf(&b, "  %s (%s) x %d\n", item.Scent, item.Size, item.Quantity)
	}
	fmt.Fprintf(&b, "\nSubtotal: $%s\n", dollars(conf.Subtotal))
	if conf.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -$%s (%s)\n", dollars(conf.Discount), req.PromoCode)
	}
	fmt.Fprintf(&b, "Total: $%s\n\nShip to:\n%s\n", dollars(conf.Total), req.Address)
	if req.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", req.Notes)
	}
	return b.String()
}

// ContactHTML renders the contact form relay.
func ContactHTML(req model.ContactRequest) (string, error) {
	var buf bytes.Buffer
	if err := contactTmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func dollars(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.2f", v), ".00")
}
