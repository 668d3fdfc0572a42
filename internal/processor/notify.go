package processor

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	NotificationCustomerEmail  = "CUSTOMER_EMAIL"
	NotificationSalesTeamAlert = "SALES_TEAM_ALERT"

	defaultRecipient = "Cliente"
	defaultStatus    = "processado"
	salesTeam        = "sales_team"
)

// Notification is a message ready for an external dispatcher.
type Notification struct {
	Type      string `json:"type"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// ComposeNotifications always addresses the customer, and also alerts the
// sales team when the order is strictly above the window's average.
func ComposeNotifications(order OrderDetails, report SalesReport) []Notification {
	customer := order.CustomerName
	if customer == "" {
		customer = defaultRecipient
	}
	status := order.Status
	if status == "" {
		status = defaultStatus
	}
	total := formatBRL(order.Total)

	notifications := []Notification{{
		Type:      NotificationCustomerEmail,
		Recipient: customer,
		Subject:   fmt.Sprintf("Pedido #%s processado", order.OrderID),
		Message: fmt.Sprintf("Olá %s,\n\nSeu pedido foi processado com sucesso!\nTotal: %s\nStatus: %s",
			customer, total, status),
	}}

	if order.Total > report.Trends.AvgOrderValue {
		notifications = append(notifications, Notification{
			Type:      NotificationSalesTeamAlert,
			Recipient: salesTeam,
			Subject:   "Pedido de Alto Valor Processado",
			Message: fmt.Sprintf("Pedido #%s processado com valor acima da média:\nValor: %s\nCliente: %s",
				order.OrderID, total, customer),
		})
	}

	return notifications
}

// formatBRL rounds half away from zero on the shortest decimal form of
// amount, so 2.675 prints as R$2.68.
func formatBRL(amount float64) string {
	return "R$" + decimal.NewFromFloat(amount).StringFixed(2)
}
