package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
)

const (
	messageHeader = "اريد طلب الكتب التالية:"
	messageFooter = "يرجي تأكيد التوفر وإرسال طريقة الدفع"
)

// Service composes the checkout hand-off link. The order summary is
// pre-filled into a messaging URL; nothing is awaited or parsed back.
type Service struct {
	number string
}

func NewService(whatsAppNumber string) *Service {
	return &Service{number: whatsAppNumber}
}

func (s *Service) Link(cart model.Cart) (string, error) {
	if len(cart.Items) == 0 {
		return "", errs.ErrEmptyCart
	}

	lines := make([]string, 0, len(cart.Items)+3)
	lines = append(lines, messageHeader)
	for _, item := range cart.Items {
		lines = append(lines, fmt.Sprintf("- %s (x%d)", item.Title, item.Quantity))
	}
	lines = append(lines, fmt.Sprintf("المجموع: %d", cart.TotalPrice), messageFooter)

	message := strings.Join(lines, "\n")
	return "https://wa.me/" + s.number + "?text=" + url.QueryEscape(message), nil
}
